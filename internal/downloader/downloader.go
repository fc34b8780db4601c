package downloader

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go-gw2walls/internal/helpers"

	log "github.com/sirupsen/logrus"
)

// Custom Downloader Errors
var (
	ErrHttpStatus  = errors.New("unexpected HTTP status code")
	ErrFileSystem  = errors.New("filesystem error") // Covers create, write, rename
	ErrHttpRequest = errors.New("HTTP request creation/execution error")
)

// Downloader retrieves remote image bytes and writes them to disk.
type Downloader struct {
	client *http.Client
}

// NewDownloader creates a new Downloader instance.
func NewDownloader(client *http.Client) *Downloader {
	if client == nil {
		// Provide a default client if none is passed
		client = &http.Client{
			Timeout: 15 * time.Minute,
		}
	}
	return &Downloader{client: client}
}

// DownloadFile downloads a file from the specified URL to the target
// filepath. The body is streamed into a temporary file in the target
// directory and renamed into place, so a failed transfer never leaves a
// partial file at the destination and memory stays bounded for large images.
func (d *Downloader) DownloadFile(targetFilepath string, url string) error {
	targetDir := filepath.Dir(targetFilepath)
	if !helpers.CheckAndMakeDir(targetDir) {
		return fmt.Errorf("%w: failed to create target directory %s", ErrFileSystem, targetDir)
	}

	tempFile, err := os.CreateTemp(targetDir, filepath.Base(targetFilepath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating temporary file for %s: %v", ErrFileSystem, targetFilepath, err)
	}
	// Remove the temp file unless the rename below claimed it.
	shouldCleanupTemp := true
	defer func() {
		if shouldCleanupTemp {
			if removeErr := os.Remove(tempFile.Name()); removeErr != nil && !os.IsNotExist(removeErr) {
				log.WithError(removeErr).Warnf("Failed to remove temporary file %s", tempFile.Name())
			}
		}
	}()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: creating download request for %s: %v", ErrHttpRequest, url, err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: performing request for %s: %v", ErrHttpRequest, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: received status %d from %s", ErrHttpStatus, resp.StatusCode, url)
	}

	counter := &helpers.CounterWriter{Writer: tempFile}
	if _, err = io.Copy(counter, resp.Body); err != nil {
		return fmt.Errorf("%w: writing temporary file %s: %v", ErrFileSystem, tempFile.Name(), err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("%w: closing temporary file %s: %v", ErrFileSystem, tempFile.Name(), err)
	}

	if err = os.Rename(tempFile.Name(), targetFilepath); err != nil {
		return fmt.Errorf("%w: renaming temporary file %s to %s: %v", ErrFileSystem, tempFile.Name(), targetFilepath, err)
	}
	shouldCleanupTemp = false

	log.Infof("Saved %s (%s)", targetFilepath, helpers.BytesToSize(counter.Total))
	return nil
}
