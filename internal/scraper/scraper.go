// Package scraper turns the guildwars2.com wallpaper pages into a normalized
// sequence of WallpaperRecord. It knows three page shapes: the Media >
// Wallpapers listing, the Releases index, and the individual release pages
// linked from it.
package scraper

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"go-gw2walls/internal/models"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

const userAgent = "gw2walls/1.0"

// wallpaperListClasses are the <ul> classes that mark a wallpaper block on a
// release page. Scanned in this fixed order; each block found increments the
// record sequence number.
var wallpaperListClasses = []string{"wallpaper", "resolutions"}

// Scraper crawls the wallpaper pages of one site.
type Scraper struct {
	client      *http.Client
	baseURL     string
	mediaURL    string
	releasesURL string
}

// New creates a Scraper. A nil client gets a default with a conservative
// timeout; cfg supplies the site URLs (tests point these at fixture servers).
func New(client *http.Client, cfg models.Config) *Scraper {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Scraper{
		client:      client,
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		mediaURL:    cfg.MediaURL,
		releasesURL: cfg.ReleasesURL,
	}
}

// Wallpapers collects every wallpaper advertised on the site: the media
// listing first, then all releases. Either top-level page failing is fatal.
func (s *Scraper) Wallpapers() ([]models.WallpaperRecord, error) {
	media, err := s.MediaWallpapers()
	if err != nil {
		return nil, err
	}
	releases, err := s.ReleaseWallpapers()
	if err != nil {
		return nil, err
	}
	return append(media, releases...), nil
}

// MediaWallpapers parses the Media > Wallpapers page. Each li.wallpaper
// listing yields one record per size link under it.
func (s *Scraper) MediaWallpapers() ([]models.WallpaperRecord, error) {
	log.Infof("Collecting media wallpapers from %s", s.mediaURL)
	doc, err := s.fetchDocument(s.mediaURL)
	if err != nil {
		return nil, err
	}

	var records []models.WallpaperRecord
	doc.Find("li.wallpaper").Each(func(_ int, item *goquery.Selection) {
		name := mediaName(item.Find("img").First().AttrOr("src", ""))
		if name == "" {
			log.Warn("Skipping media listing without a usable preview image")
			return
		}
		item.Find("a").Each(func(_ int, link *goquery.Selection) {
			if rec, ok := s.sizeLink(link, name); ok {
				rec.Category = models.CategoryMedia
				records = append(records, rec)
			}
		})
	})

	log.Infof("Found %d media wallpapers", len(records))
	return records, nil
}

// ReleaseWallpapers parses the Releases index, then crawls each release page
// concurrently. A single release failing is logged and contributes zero
// records; only the index page itself is fatal.
func (s *Scraper) ReleaseWallpapers() ([]models.WallpaperRecord, error) {
	log.Infof("Collecting releases from %s", s.releasesURL)
	doc, err := s.fetchDocument(s.releasesURL)
	if err != nil {
		return nil, err
	}

	urls := s.releaseURLs(doc)
	log.Infof("Found %d release pages", len(urls))

	// Release counts are small (tens), so every page is fetched at once.
	// The shared slice is the only mutable state; one release's records are
	// appended as a block so they stay contiguous and internally ordered.
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		records []models.WallpaperRecord
	)
	for _, u := range urls {
		wg.Add(1)
		go func(pageURL string) {
			defer wg.Done()
			recs, err := s.releaseWallpapers(pageURL)
			if err != nil {
				log.WithError(err).Errorf("Skipping release %s", pageURL)
				return
			}
			mu.Lock()
			records = append(records, recs...)
			mu.Unlock()
		}(u)
	}
	wg.Wait()

	log.Infof("Found %d release wallpapers", len(records))
	return records, nil
}

// releaseURLs resolves every release link on the index page to an absolute
// release-page URL, in document order.
func (s *Scraper) releaseURLs(doc *goquery.Document) []string {
	var urls []string
	doc.Find("section.release-canvas").Each(func(_ int, canvas *goquery.Selection) {
		canvas.Find("li").Each(func(_ int, item *goquery.Selection) {
			href, ok := item.Find("a").First().Attr("href")
			if !ok || href == "" {
				return
			}
			urls = append(urls, s.absoluteURL(href))
		})
	})
	return urls
}

// releaseWallpapers parses one release page. The shared name comes from the
// page title, the date from the URL slug, and the sequence number counts the
// wallpaper blocks found on the page.
func (s *Scraper) releaseWallpapers(pageURL string) ([]models.WallpaperRecord, error) {
	doc, err := s.fetchDocument(pageURL)
	if err != nil {
		return nil, err
	}

	name := releaseName(doc.Find("title").First().Text())
	if name == "" {
		log.Warnf("Release %s has no usable title, skipping", pageURL)
		return nil, nil
	}
	date := releaseDateFromURL(pageURL)
	log.Debugf("Collecting %s (%s) wallpapers", name, date)

	var records []models.WallpaperRecord
	sequence := 0
	for _, class := range wallpaperListClasses {
		doc.Find("ul." + class).Each(func(_ int, list *goquery.Selection) {
			sequence++
			list.Find("a").Each(func(_ int, link *goquery.Selection) {
				if rec, ok := s.sizeLink(link, name); ok {
					rec.Category = models.CategoryRelease
					rec.ReleaseDate = date
					rec.Sequence = sequence
					records = append(records, rec)
				}
			})
		})
	}
	return records, nil
}

// sizeLink builds the common fields of a record from one size/resolution
// link. Links missing an href or visible text cannot form a well-formed
// record and are dropped.
func (s *Scraper) sizeLink(link *goquery.Selection, name string) (models.WallpaperRecord, bool) {
	href, ok := link.Attr("href")
	resolution := strings.TrimSpace(link.Text())
	if !ok || href == "" || resolution == "" {
		return models.WallpaperRecord{}, false
	}
	return models.WallpaperRecord{
		Name:       name,
		Resolution: resolution,
		URL:        s.absoluteURL(href),
	}, true
}

// fetchDocument retrieves a page and parses it. Non-2xx responses and
// unparseable markup both surface as a *FetchError carrying the URL.
func (s *Scraper) fetchDocument(pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequest(http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: pageURL, StatusCode: resp.StatusCode, Err: err}
	}
	return doc, nil
}

// absoluteURL normalizes an href to an absolute https URL. The site mixes
// protocol-relative CDN links (//host/...) with site-relative paths (/...).
func (s *Scraper) absoluteURL(href string) string {
	switch {
	case strings.HasPrefix(href, "//"):
		return "https:" + href
	case strings.HasPrefix(href, "/"):
		return s.baseURL + href
	}
	return href
}
