// Package stdlib discovers sprite files in a local plantuml-stdlib checkout.
package stdlib

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar"

	holonlog "github.com/holon-run/spritegen/pkg/log"
)

// ErrFolderNotFound is returned when a family folder does not exist.
var ErrFolderNotFound = errors.New("sprite folder not found")

// excludedMarkers are substrings of file names that never become sprites.
var excludedMarkers = []string{"LARGE", "all"}

// Excluded reports whether the file name carries an excluded marker.
func Excluded(name string) bool {
	base := filepath.Base(name)
	for _, marker := range excludedMarkers {
		if strings.Contains(base, marker) {
			return true
		}
	}
	return false
}

// Discover returns every file below root/folder whose name ends with suffix,
// sorted so repeated runs produce identical catalogs. Returned paths include
// the root prefix.
func Discover(root, folder, suffix string) ([]string, error) {
	dir := filepath.Join(root, folder)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFolderNotFound, dir)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrFolderNotFound, dir)
	}

	pattern := filepath.Join(escape(dir), "**", "*"+escape(suffix))
	matches, err := doublestar.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to glob %s: %w", pattern, err)
	}

	paths := make([]string, 0, len(matches))
	skipped := 0
	for _, m := range matches {
		if Excluded(m) {
			skipped++
			continue
		}
		if fi, err := os.Stat(m); err != nil || fi.IsDir() {
			continue
		}
		paths = append(paths, m)
	}
	sort.Strings(paths)

	holonlog.Debug("discovered sprite files", "dir", dir, "suffix", suffix, "files", len(paths), "excluded", skipped)
	return paths, nil
}

var globEscaper = strings.NewReplacer(`*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`, `{`, `\{`, `}`, `\}`)

func escape(s string) string {
	if filepath.Separator == '\\' {
		// backslash is the separator there, not an escape
		return s
	}
	return globEscaper.Replace(s)
}
