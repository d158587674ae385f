package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	holonlog "github.com/holon-run/spritegen/pkg/log"
	"github.com/holon-run/spritegen/pkg/sprite"
)

// ErrSpriteNotFound is returned by Library.ByName for unknown names.
var ErrSpriteNotFound = errors.New("sprite not found")

// Entry is a sprite resolved from a library together with the includes and
// definitions inherited from its set.
type Entry struct {
	sprite.Sprite
	Set                   string
	AdditionalIncludes    []string
	AdditionalDefinitions []string
}

// Library indexes the sprites of several sets by lower-cased name. Adding a
// sprite whose name is already present replaces the earlier one.
type Library struct {
	sets   []string
	byName map[string]Entry
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{byName: make(map[string]Entry)}
}

// Add indexes every named sprite of set.
func (l *Library) Add(set *sprite.Set) {
	l.sets = append(l.sets, set.Name)
	for _, s := range set.Sprites {
		if s.Name == "" {
			continue
		}
		e := Entry{Sprite: s, Set: set.Name}
		e.AdditionalDefinitions = appendUnique(nil, set.AdditionalDefinitions...)
		if s.Kind == sprite.KindReference {
			e.AdditionalIncludes = appendUnique(nil, set.AdditionalIncludes...)
		}
		key := strings.ToLower(s.Name)
		if prev, ok := l.byName[key]; ok {
			holonlog.Debug("sprite name replaced", "name", key, "previous_set", prev.Set, "set", set.Name)
		}
		l.byName[key] = e
	}
}

// LoadFile loads one sprite set file into the library.
func (l *Library) LoadFile(path string) (*sprite.Set, error) {
	set, err := Load(path)
	if err != nil {
		return nil, err
	}
	l.Add(set)
	return set, nil
}

// LoadDir loads every *.json file in dir, in lexical order.
func (l *Library) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read catalog directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		if _, err := l.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Sets returns the names of the loaded sets in load order.
func (l *Library) Sets() []string {
	return append([]string(nil), l.sets...)
}

// Len returns the number of distinct sprite names.
func (l *Library) Len() int {
	return len(l.byName)
}

// ByName looks up a sprite case-insensitively. The error lists names that
// contain the requested one.
func (l *Library) ByName(name string) (Entry, error) {
	key := strings.ToLower(name)
	if e, ok := l.byName[key]; ok {
		return e, nil
	}

	var candidates []string
	if re, err := regexp.Compile(regexp.QuoteMeta(key)); err == nil {
		for _, e := range l.FindByNameContaining(re) {
			candidates = append(candidates, strings.ToLower(e.Name))
		}
	}
	return Entry{}, fmt.Errorf("%w: %s. Possible matches: [%s]", ErrSpriteNotFound, key, strings.Join(candidates, ", "))
}

// ByNameOrNil looks up a sprite case-insensitively.
func (l *Library) ByNameOrNil(name string) *Entry {
	if e, ok := l.byName[strings.ToLower(name)]; ok {
		return &e
	}
	return nil
}

// FindByNameContaining returns all sprites whose lower-cased name matches re,
// sorted by name.
func (l *Library) FindByNameContaining(re *regexp.Regexp) []Entry {
	var found []Entry
	for key, e := range l.byName {
		if re.MatchString(key) {
			found = append(found, e)
		}
	}
	sort.Slice(found, func(i, j int) bool {
		return strings.ToLower(found[i].Name) < strings.ToLower(found[j].Name)
	})
	return found
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		dup := false
		for _, existing := range dst {
			if existing == v {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, v)
		}
	}
	return dst
}
