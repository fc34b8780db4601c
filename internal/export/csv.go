// Package export serializes a crawled catalog for consumption outside the
// tool.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"go-gw2walls/internal/models"
)

// csvHeader is the column contract: one row per record, catalog order.
var csvHeader = []string{"resolution", "name", "category", "date", "url"}

// WriteCSV writes the records as CSV, header first.
func WriteCSV(w io.Writer, records []models.WallpaperRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range records {
		row := []string{r.Resolution, r.Name, string(r.Category), r.ReleaseDate, r.URL}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row for %s: %w", r.URL, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
