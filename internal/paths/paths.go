// Package paths maps a wallpaper record and a naming policy to the local
// file path it should be written to. It never touches the filesystem;
// directory creation belongs to the downloader.
package paths

import (
	"fmt"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"go-gw2walls/internal/models"
)

// Policy selects how local filenames are derived from a record.
type Policy int

const (
	// Bare uses the last path segment of the source URL unchanged.
	Bare Policy = iota
	// Info builds "{date} {name} {sequence} {resolution}.jpg", with empty
	// fields collapsed.
	Info
	// InfoFolders is Info nested one level under a folder named for the
	// record's category.
	InfoFolders
)

var policyNames = map[Policy]string{
	Bare:        "bare",
	Info:        "info",
	InfoFolders: "info-folders",
}

func (p Policy) String() string {
	if s, ok := policyNames[p]; ok {
		return s
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParsePolicy maps the config/flag spelling of a policy to its value.
func ParsePolicy(s string) (Policy, error) {
	for p, name := range policyNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown naming policy %q (valid: bare, info, info-folders)", s)
}

// Resolve returns the destination path for a record under root. The result
// is deterministic: the same record and policy always map to the same path.
func Resolve(rec models.WallpaperRecord, root string, policy Policy) string {
	switch policy {
	case Info:
		return filepath.Join(root, infoName(rec))
	case InfoFolders:
		return filepath.Join(root, string(rec.Category), infoName(rec))
	default:
		return filepath.Join(root, path.Base(rec.URL))
	}
}

// infoName joins the record's descriptive fields with single spaces,
// dropping the empty ones so a media record (no date, no sequence) doesn't
// carry stray gaps.
func infoName(rec models.WallpaperRecord) string {
	fields := []string{rec.ReleaseDate, rec.Name}
	if rec.Sequence > 0 {
		fields = append(fields, strconv.Itoa(rec.Sequence))
	}
	fields = append(fields, rec.Resolution)

	kept := fields[:0]
	for _, f := range fields {
		if f != "" {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ") + ".jpg"
}
