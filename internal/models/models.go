package models

import "fmt"

// Category is the provenance of a wallpaper: the standalone Media page or a
// dated Release page.
type Category string

const (
	CategoryMedia   Category = "media"
	CategoryRelease Category = "release"
)

// ParseCategory validates a user-supplied category string.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryMedia, CategoryRelease:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown category %q (valid: %s, %s)", s, CategoryMedia, CategoryRelease)
}

type (
	// WallpaperRecord is one advertised wallpaper at one resolution.
	// Records are built by the scraper and never mutated afterwards.
	WallpaperRecord struct {
		// Name is the release title, or the image filename stem for media
		// wallpapers. Never empty for a well-formed record.
		Name string

		// Resolution is the size token exactly as advertised, e.g.
		// "1920x1200". Treated as an opaque exact-match key.
		Resolution string

		// URL is absolute and https-schemed.
		URL string

		Category Category

		// ReleaseDate is an ISO date ("2006-01-02") derived from the release
		// URL slug. Empty when the slug is not a date, and for media records.
		ReleaseDate string

		// Sequence is the 1-based index of the wallpaper block on a release
		// page. 0 for media records.
		Sequence int
	}

	Config struct {
		// Paths
		SavePath string `toml:"SavePath"`

		// Downloader behavior
		Concurrency      int    `toml:"Concurrency"`
		NamingPolicy     string `toml:"NamingPolicy"`
		SkipConfirmation bool   `toml:"SkipConfirmation"`

		ClientTimeoutSec int `toml:"ClientTimeoutSec"`

		// Site URLs. Left empty these default to guildwars2.com; tests point
		// them at local fixture servers.
		BaseURL     string `toml:"BaseURL"`
		MediaURL    string `toml:"MediaURL"`
		ReleasesURL string `toml:"ReleasesURL"`
	}

	// Summary reports what one pipeline run did.
	Summary struct {
		Found      int // records extracted into the catalog
		Filtered   int // records selected by the user's filter
		Downloaded int
		Failed     int
	}
)

func (s Summary) String() string {
	return fmt.Sprintf("found=%d filtered=%d downloaded=%d failed=%d",
		s.Found, s.Filtered, s.Downloaded, s.Failed)
}
