package scraper

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-gw2walls/internal/models"
)

const mediaPage = `<html><body>
<ul class="wallpapers">
  <li class="wallpaper">
    <img src="/global/wallpapers/foo-crop.jpg">
    <ul class="sizes">
      <li><a href="//cdn/x1920.jpg">1920x1200</a></li>
      <li><a href="/media/x1280.jpg">1280x1024</a></li>
    </ul>
  </li>
  <li class="wallpaper">
    <img src="//cdn/wallpapers/bar-crop.jpg">
    <ul class="sizes">
      <li><a href="https://cdn/bar-1920.jpg">1920x1200</a></li>
    </ul>
  </li>
</ul>
</body></html>`

const releasesPage = `<html><body>
<section class="release-canvas">
  <ul>
    <li><a href="/en/the-game/releases/august-12-2014/">Escape from Lions Arch</a></li>
    <li><a href="/en/the-game/releases/august-2014/">Festival of the Four Winds</a></li>
  </ul>
</section>
<section class="release-canvas">
  <ul>
    <li><a href="/en/the-game/releases/not-a-date/">Sky Pirates of Tyria</a></li>
    <li><a href="/en/the-game/releases/quiet-release/">Quiet Release</a></li>
    <li><a href="/en/the-game/releases/broken-release/">Broken Release</a></li>
  </ul>
</section>
</body></html>`

func releasePage(title string, lists ...string) string {
	return fmt.Sprintf("<html><head><title>%s | GuildWars2.com</title></head><body>%s</body></html>",
		title, strings.Join(lists, "\n"))
}

// newFixtureSite serves a small copy of the wallpaper site layout.
func newFixtureSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	pages := map[string]string{
		"/en/media/wallpapers/":  mediaPage,
		"/en/the-game/releases/": releasesPage,
		"/en/the-game/releases/august-12-2014/": releasePage("Escape from Lions Arch",
			`<ul class="wallpaper"><li><a href="//cdn/escape-1.jpg">1920x1200</a></li><li><a href="//cdn/escape-1-small.jpg">1280x1024</a></li></ul>`,
			`<ul class="resolutions"><li><a href="//cdn/escape-2.jpg">1920x1200</a></li></ul>`),
		"/en/the-game/releases/august-2014/": releasePage("Festival of the Four Winds",
			`<ul class="wallpaper"><li><a href="/img/festival-1.jpg">1920x1200</a></li></ul>`),
		"/en/the-game/releases/not-a-date/": releasePage("Sky Pirates of Tyria",
			`<ul class="resolutions"><li><a href="//cdn/pirates-1.jpg">1920x1200</a></li></ul>`),
		"/en/the-game/releases/quiet-release/": releasePage("Quiet Release",
			`<p>No wallpapers this time.</p>`),
	}
	for path, body := range pages {
		body := body
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, body)
		})
	}
	mux.HandleFunc("/en/the-game/releases/broken-release/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestScraper(srv *httptest.Server) *Scraper {
	return New(srv.Client(), models.Config{
		BaseURL:     srv.URL,
		MediaURL:    srv.URL + "/en/media/wallpapers/",
		ReleasesURL: srv.URL + "/en/the-game/releases/",
	})
}

func TestMediaWallpapers(t *testing.T) {
	srv := newFixtureSite(t)
	records, err := newTestScraper(srv).MediaWallpapers()
	if err != nil {
		t.Fatalf("MediaWallpapers() error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3: %+v", len(records), records)
	}

	first := records[0]
	want := models.WallpaperRecord{
		Name:       "foo",
		Resolution: "1920x1200",
		URL:        "https://cdn/x1920.jpg",
		Category:   models.CategoryMedia,
	}
	if first != want {
		t.Errorf("first record = %+v, want %+v", first, want)
	}

	// Site-relative hrefs are prefixed with the site origin.
	if got, want := records[1].URL, srv.URL+"/media/x1280.jpg"; got != want {
		t.Errorf("second record URL = %q, want %q", got, want)
	}
	if records[2].Name != "bar" {
		t.Errorf("third record name = %q, want %q", records[2].Name, "bar")
	}

	for _, rec := range records {
		if strings.HasPrefix(rec.URL, "//") || strings.HasPrefix(rec.URL, "/") {
			t.Errorf("record URL %q is not absolute", rec.URL)
		}
		if rec.Sequence != 0 || rec.ReleaseDate != "" {
			t.Errorf("media record carries release-only fields: %+v", rec)
		}
	}
}

func TestMediaWallpapersFatalOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestScraper(srv).MediaWallpapers()
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
	if fe.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("FetchError status = %d, want %d", fe.StatusCode, http.StatusServiceUnavailable)
	}
	if !strings.Contains(fe.URL, srv.URL) {
		t.Errorf("FetchError URL = %q, want it to carry the page URL", fe.URL)
	}
}

func TestReleaseWallpapers(t *testing.T) {
	srv := newFixtureSite(t)
	records, err := newTestScraper(srv).ReleaseWallpapers()
	if err != nil {
		t.Fatalf("ReleaseWallpapers() error: %v", err)
	}

	// The broken release contributes zero records but does not abort the
	// crawl; the quiet release has no wallpaper lists at all.
	byName := map[string][]models.WallpaperRecord{}
	for _, rec := range records {
		if rec.Category != models.CategoryRelease {
			t.Errorf("record %+v has category %q, want release", rec, rec.Category)
		}
		if strings.HasPrefix(rec.URL, "//") || strings.HasPrefix(rec.URL, "/") {
			t.Errorf("record URL %q is not absolute", rec.URL)
		}
		byName[rec.Name] = append(byName[rec.Name], rec)
	}
	if len(records) != 5 {
		t.Fatalf("got %d records, want 5: %+v", len(records), records)
	}

	escape := byName["Escape from Lions Arch"]
	if len(escape) != 3 {
		t.Fatalf("got %d Escape records, want 3: %+v", len(escape), escape)
	}
	// Both wallpaper blocks were counted, ul.wallpaper before ul.resolutions.
	if got := []int{escape[0].Sequence, escape[1].Sequence, escape[2].Sequence}; got[0] != 1 || got[1] != 1 || got[2] != 2 {
		t.Errorf("Escape sequence numbers = %v, want [1 1 2]", got)
	}
	for _, rec := range escape {
		if rec.ReleaseDate != "2014-08-12" {
			t.Errorf("Escape record date = %q, want 2014-08-12", rec.ReleaseDate)
		}
	}

	festival := byName["Festival of the Four Winds"]
	if len(festival) != 1 || festival[0].ReleaseDate != "2014-08-01" {
		t.Errorf("Festival records = %+v, want one record dated 2014-08-01", festival)
	}
	if festival[0].URL != srv.URL+"/img/festival-1.jpg" {
		t.Errorf("Festival URL = %q, want %q", festival[0].URL, srv.URL+"/img/festival-1.jpg")
	}

	pirates := byName["Sky Pirates of Tyria"]
	if len(pirates) != 1 || pirates[0].ReleaseDate != "" {
		t.Errorf("Sky Pirates records = %+v, want one record with no date", pirates)
	}
	if pirates[0].Sequence != 1 {
		t.Errorf("Sky Pirates sequence = %d, want 1", pirates[0].Sequence)
	}

	if len(byName["Quiet Release"]) != 0 {
		t.Errorf("Quiet Release should contribute zero records, got %+v", byName["Quiet Release"])
	}
}

func TestReleaseWallpapersFatalOnIndexError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/en/the-game/releases/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := newTestScraper(srv).ReleaseWallpapers()
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError for the index page, got %v", err)
	}
}

func TestWallpapersCombinesMediaAndReleases(t *testing.T) {
	srv := newFixtureSite(t)
	records, err := newTestScraper(srv).Wallpapers()
	if err != nil {
		t.Fatalf("Wallpapers() error: %v", err)
	}
	if len(records) != 8 {
		t.Fatalf("got %d records, want 8 (3 media + 5 release)", len(records))
	}
	// Media records come first.
	for _, rec := range records[:3] {
		if rec.Category != models.CategoryMedia {
			t.Errorf("expected media records first, got %+v", rec)
		}
	}
}
