package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/moby/sys/atomicwriter"

	holonlog "github.com/holon-run/spritegen/pkg/log"
	"github.com/holon-run/spritegen/pkg/sprite"
)

// Encode renders set as compact JSON with "<" and ">" left unescaped.
func Encode(set *sprite.Set) ([]byte, error) {
	out := *set
	if out.Sprites == nil {
		// "sprites" stays an array for empty families
		out.Sprites = []sprite.Sprite{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("failed to encode sprite set %q: %w", set.Name, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Write encodes set in memory and replaces dest in a single atomic rename,
// so readers never observe a partially written catalog. It returns the
// number of bytes written.
func Write(set *sprite.Set, dest string) (int, error) {
	data, err := Encode(set)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := atomicwriter.WriteFile(dest, data, 0o644); err != nil {
		return 0, fmt.Errorf("failed to write sprite set %q: %w", dest, err)
	}

	holonlog.Debug("wrote sprite set", "set", set.Name, "path", dest, "sprites", len(set.Sprites), "size", humanize.Bytes(uint64(len(data))))
	return len(data), nil
}

// Decode parses a sprite set document.
func Decode(data []byte) (*sprite.Set, error) {
	var set sprite.Set
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse sprite set: %w", err)
	}
	return &set, nil
}

// Load reads and parses the sprite set at path.
func Load(path string) (*sprite.Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sprite set: %w", err)
	}
	set, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}
