// Package rules holds the pure string rules used to turn a discovered sprite
// file into a catalog entry: path normalization, display naming, color
// classification and reference tags.
package rules

import (
	"path"
	"path/filepath"
	"strings"
)

// Normalizer turns a raw file path into a catalog key such as
// "awslib14/Compute/EC2".
type Normalizer struct {
	// Root is stripped from the front of every path.
	Root string
	// Suffix is the file ending stripped from the end, e.g. ".puml" or "-sprite.puml".
	Suffix string
}

// Normalize canonicalizes raw. A path without Suffix is returned without
// stripping anything from its end. Root and Suffix are stripped until the
// path stops changing, so a normalized key normalizes to itself.
func (n Normalizer) Normalize(raw string) string {
	root := ""
	if n.Root != "" {
		root = strings.TrimSuffix(path.Clean(toSlash(n.Root)), "/")
		if root == "." {
			root = ""
		}
	}

	p := toSlash(raw)
	for {
		next := n.strip(p, root)
		if next == p {
			return p
		}
		p = next
	}
}

func (n Normalizer) strip(p, root string) string {
	if root != "" && strings.HasPrefix(p, root+"/") {
		p = p[len(root):]
	}
	if n.Suffix != "" {
		p = strings.TrimSuffix(p, n.Suffix)
	}
	if p == "" {
		return ""
	}
	p = path.Clean(p)
	if p == "." || p == "/" {
		return ""
	}
	return strings.TrimPrefix(p, "/")
}

func toSlash(p string) string {
	return strings.ReplaceAll(filepath.ToSlash(p), `\`, "/")
}

// Category returns the first segment of p below folder. With an empty folder
// it is simply the first segment.
func Category(p, folder string) string {
	folder = strings.Trim(toSlash(folder), "/")
	rest := strings.TrimPrefix(p, "/")
	if folder != "" {
		if rest == folder {
			return ""
		}
		rest = strings.TrimPrefix(rest, folder+"/")
	}
	category, _, _ := strings.Cut(rest, "/")
	return category
}

// LastSegment returns everything after the final "/".
func LastSegment(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}
