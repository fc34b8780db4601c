package scraper

import (
	"path"
	"strings"
	"time"
)

// titleSuffix is the boilerplate guildwars2.com appends to every page title.
const titleSuffix = " | GuildWars2.com"

// allowedNameChars is the filename-safe set release names are reduced to.
// Anything else (punctuation, non-ASCII) is dropped, not replaced.
const allowedNameChars = "-_.() " +
	"abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789"

// releaseDateLayouts are tried in this order against the release URL slug.
// Month-Year must stay first: the historical tools tried the patterns in
// this order and the tie-break is load-bearing.
var releaseDateLayouts = []string{"January-2006", "January-2-2006"}

// mediaName derives a wallpaper name from the preview image src: the
// filename with its extension and the "-crop" suffix stripped.
func mediaName(src string) string {
	if src == "" {
		return ""
	}
	base := path.Base(src)
	name := strings.TrimSuffix(base, path.Ext(base))
	return strings.TrimSuffix(name, "-crop")
}

// releaseName reduces a release page title to its filename-friendly form.
func releaseName(title string) string {
	title = strings.TrimSuffix(strings.TrimSpace(title), titleSuffix)
	var b strings.Builder
	for _, r := range title {
		if strings.ContainsRune(allowedNameChars, r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// releaseDateFromURL extracts the release date from the second-to-last path
// segment of a release URL (".../releases/august-12-2014/"). A slug that is
// not a date yields an empty string, not an error.
func releaseDateFromURL(pageURL string) string {
	parts := strings.Split(pageURL, "/")
	if len(parts) < 2 {
		return ""
	}
	slug := capitalize(parts[len(parts)-2])
	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, slug); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// capitalize uppercases the leading month of a URL slug; time.Parse wants
// "August" where the slug has "august".
func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
