package downloader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gosuri/uilive"
	log "github.com/sirupsen/logrus"
)

// Job pairs a source URL with the destination path its bytes go to.
type Job struct {
	URL        string
	TargetPath string
}

// Run retrieves every job with at most `concurrency` fetches in flight and
// returns once each one has either succeeded or failed. One item failing
// never aborts its siblings; it is logged and counted. There are no retries.
func (d *Downloader) Run(jobList []Job, concurrency int, writer *uilive.Writer) (downloaded, failed int) {
	if concurrency < 1 {
		concurrency = 1
	}
	if writer == nil {
		writer = uilive.New()
		writer.Out = io.Discard
	}

	jobs := make(chan Job, len(jobList))
	var wg sync.WaitGroup
	var okCount, failCount int64

	log.Infof("Starting %d download workers for %d jobs", concurrency, len(jobList))
	for w := 1; w <= concurrency; w++ {
		wg.Add(1)
		go d.worker(w, jobs, &wg, writer, &okCount, &failCount)
	}

	for _, j := range jobList {
		jobs <- j
	}
	close(jobs)

	wg.Wait()
	return int(okCount), int(failCount)
}

// worker drains the job channel until it is closed.
func (d *Downloader) worker(id int, jobs <-chan Job, wg *sync.WaitGroup, writer *uilive.Writer, okCount, failCount *int64) {
	defer wg.Done()
	log.Debugf("Download worker %d starting", id)
	for job := range jobs {
		baseFilename := filepath.Base(job.TargetPath)
		fmt.Fprintf(writer.Newline(), "Worker %d: Downloading %s...\n", id, baseFilename)

		// Duplicate naming-policy output overwrites silently apart from this
		// warning; the last write wins.
		if _, err := os.Stat(job.TargetPath); err == nil {
			log.Warnf("Worker %d: Overwriting existing file %s", id, job.TargetPath)
		}

		startTime := time.Now()
		if err := d.DownloadFile(job.TargetPath, job.URL); err != nil {
			log.WithError(err).Errorf("Worker %d: Failed to download %s to %s", id, job.URL, job.TargetPath)
			fmt.Fprintf(writer.Newline(), "Worker %d: Error downloading %s: %v\n", id, baseFilename, err)
			atomic.AddInt64(failCount, 1)
			continue
		}
		atomic.AddInt64(okCount, 1)
		fmt.Fprintf(writer.Newline(), "Worker %d: Saved %s (%v)\n",
			id, baseFilename, time.Since(startTime).Round(time.Millisecond))
	}
	log.Debugf("Download worker %d finished", id)
}
