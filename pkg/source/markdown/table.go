// Package markdown turns the upstream sprites-list markdown table into image
// sprites.
package markdown

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/holon-run/spritegen/pkg/sprite"
)

// DefaultSeparator is the header separator row of the sprites list.
const DefaultSeparator = "|--------|------|"

var (
	// ErrNoHeader means the separator row never appeared.
	ErrNoHeader = errors.New("table header separator not found")
	// ErrMalformedRow means a data row lacks the key or the (path) image link.
	ErrMalformedRow = errors.New("malformed table row")
)

var imagePathPattern = regexp.MustCompile(`\((.+)\)`)

// Table describes how rows map to image sprites.
type Table struct {
	// Separator marks the line after which data rows start.
	Separator string
	// FolderToken is removed from every extracted image path, e.g. "pngs".
	FolderToken string
	// BaseLocator is prefixed to the remaining path, e.g. "img:GILBARBARA_PNG_URL".
	BaseLocator string
	// NamePrefix is put in front of "<key>-img".
	NamePrefix string
	// Strip lists substrings removed from each row before splitting.
	Strip []string
}

type parseState int

const (
	beforeHeader parseState = iota
	inRows
)

// Parse converts lines into image sprites. Any malformed row fails the whole
// table; no partial result is returned.
func (t Table) Parse(lines []string) ([]sprite.Sprite, error) {
	separator := t.Separator
	if separator == "" {
		separator = DefaultSeparator
	}

	state := beforeHeader
	var sprites []sprite.Sprite
	for i, line := range lines {
		line = strings.TrimRight(line, "\r\n")
		switch state {
		case beforeHeader:
			if strings.TrimSpace(line) == separator {
				state = inRows
				sprites = []sprite.Sprite{}
			}
		case inRows:
			if strings.TrimSpace(line) == "" {
				continue
			}
			s, err := t.parseRow(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			sprites = append(sprites, s)
		}
	}

	if state == beforeHeader {
		return nil, fmt.Errorf("%w: %q", ErrNoHeader, separator)
	}
	return sprites, nil
}

func (t Table) parseRow(line string) (sprite.Sprite, error) {
	for _, s := range t.Strip {
		line = strings.ReplaceAll(line, s, "")
	}

	cols := strings.Split(line, "|")
	if len(cols) < 3 {
		return sprite.Sprite{}, fmt.Errorf("%w: expected two columns in %q", ErrMalformedRow, line)
	}
	key := strings.TrimSpace(cols[1])
	if key == "" {
		return sprite.Sprite{}, fmt.Errorf("%w: empty key in %q", ErrMalformedRow, line)
	}
	match := imagePathPattern.FindStringSubmatch(strings.TrimSpace(cols[2]))
	if match == nil {
		return sprite.Sprite{}, fmt.Errorf("%w: no image path in %q", ErrMalformedRow, line)
	}

	return sprite.Sprite{
		Kind:    sprite.KindImage,
		Name:    t.NamePrefix + key + "-img",
		Locator: t.locator(match[1]),
	}, nil
}

func (t Table) locator(imagePath string) string {
	if t.FolderToken != "" {
		imagePath = strings.ReplaceAll(imagePath, t.FolderToken, "")
	}
	for strings.Contains(imagePath, "//") {
		imagePath = strings.ReplaceAll(imagePath, "//", "/")
	}
	return strings.TrimSuffix(t.BaseLocator, "/") + "/" + strings.TrimPrefix(imagePath, "/")
}
