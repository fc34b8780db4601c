// Package pipeline sequences the full run: crawl the site, build the
// catalog, filter it, resolve destination paths, and drive the download
// workers to completion. It is the single entry point the CLI calls.
package pipeline

import (
	"io"
	"net/http"
	"os"
	"time"

	"go-gw2walls/internal/catalog"
	"go-gw2walls/internal/downloader"
	"go-gw2walls/internal/models"
	"go-gw2walls/internal/paths"
	"go-gw2walls/internal/scraper"

	"github.com/gosuri/uilive"
	log "github.com/sirupsen/logrus"
)

// Options is one run's user selection.
type Options struct {
	// Resolution is the required exact-match filter, e.g. "1920x1200".
	Resolution string
	// SavePath is the destination root, already expanded to an absolute path.
	SavePath string
	// ReleaseName optionally narrows the selection to one release/wallpaper
	// name; Category to one provenance. Empty means "any".
	ReleaseName string
	Category    models.Category

	Policy      paths.Policy
	Concurrency int

	// Confirm, when set, is asked once after filtering and before any image
	// fetch. Returning false ends the run with the counts so far and no
	// downloads.
	Confirm func(found, filtered int) bool
}

// Pipeline wires the scraper and downloader with shared configuration.
type Pipeline struct {
	cfg models.Config

	scraper *scraper.Scraper
	dl      *downloader.Downloader

	// Progress receives the live worker lines during the download phase.
	// Defaults to stdout; tests point it at io.Discard.
	Progress io.Writer
}

// New builds a pipeline from the loaded config. Page fetches and image
// fetches get separate clients: pages are small and want a short timeout,
// images can be large.
func New(cfg models.Config) *Pipeline {
	pageClient := &http.Client{Timeout: time.Duration(cfg.ClientTimeoutSec) * time.Second}
	return &Pipeline{
		cfg:      cfg,
		scraper:  scraper.New(pageClient, cfg),
		dl:       downloader.NewDownloader(nil),
		Progress: os.Stdout,
	}
}

// Crawl extracts every wallpaper advertised on the site into a catalog.
// An empty crawl fails with catalog.ErrEmptyCatalog before any filtering.
func (p *Pipeline) Crawl() (*catalog.Catalog, error) {
	records, err := p.scraper.Wallpapers()
	if err != nil {
		return nil, err
	}
	cat := catalog.New(records)
	if cat.Len() == 0 {
		return nil, catalog.ErrEmptyCatalog
	}
	return cat, nil
}

// Run executes the whole pipeline and reports what happened. Filter errors
// abort before any image is fetched; per-image failures are counted in the
// summary instead of aborting the run.
func (p *Pipeline) Run(opts Options) (models.Summary, error) {
	cat, err := p.Crawl()
	if err != nil {
		return models.Summary{}, err
	}
	summary := models.Summary{Found: cat.Len()}

	selected, err := cat.Filter(opts.Resolution, opts.ReleaseName, opts.Category)
	if err != nil {
		return summary, err
	}
	summary.Filtered = len(selected)
	log.Infof("Selected %d of %d wallpapers", summary.Filtered, summary.Found)

	if opts.Confirm != nil && !opts.Confirm(summary.Found, summary.Filtered) {
		log.Info("Download cancelled by user.")
		return summary, nil
	}

	jobs := make([]downloader.Job, 0, len(selected))
	for _, rec := range selected {
		jobs = append(jobs, downloader.Job{
			URL:        rec.URL,
			TargetPath: paths.Resolve(rec, opts.SavePath, opts.Policy),
		})
	}

	writer := uilive.New()
	writer.Out = p.Progress
	writer.Start()
	summary.Downloaded, summary.Failed = p.dl.Run(jobs, opts.Concurrency, writer)
	writer.Stop()

	return summary, nil
}
