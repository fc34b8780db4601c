package scraper

import "fmt"

// FetchError reports a page that could not be retrieved or parsed: a
// transport failure, a non-2xx status, or markup the parser rejected.
// For the two top-level pages (media, releases index) it is fatal; for an
// individual release page the crawl logs it and moves on.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }
