// Package catalog builds sprite sets from discovered stdlib paths, writes them
// as JSON and loads them back into a name-indexed library.
package catalog

import (
	"github.com/holon-run/spritegen/pkg/rules"
	"github.com/holon-run/spritegen/pkg/sprite"
)

// Rules bundles the per-family transformations applied to every path.
type Rules struct {
	Normalizer rules.Normalizer
	// Folder is the family directory the category is taken below.
	Folder    string
	Name      rules.NamingRule
	Color     rules.Classifier
	Reference rules.ReferenceRule
}

// Build maps every raw path to a stdlib reference sprite, in input order.
// Nothing is filtered or deduplicated.
func Build(paths []string, r Rules) []sprite.Sprite {
	name := r.Name
	if name == nil {
		name = rules.DefaultName
	}

	sprites := make([]sprite.Sprite, 0, len(paths))
	for _, raw := range paths {
		p := r.Normalizer.Normalize(raw)
		s := sprite.Sprite{
			Kind:    sprite.KindReference,
			Name:    name(p),
			Locator: "<" + p + ">",
		}
		if r.Color != nil {
			s.Color = r.Color(rules.Category(p, r.Folder))
		}
		if r.Reference != nil {
			s.Reference = r.Reference(p)
		}
		sprites = append(sprites, s)
	}
	return sprites
}

// Duplicates returns every name that occurs more than once in sprites, in
// order of its second occurrence.
func Duplicates(sprites []sprite.Sprite) []string {
	seen := make(map[string]int, len(sprites))
	var dups []string
	for _, s := range sprites {
		seen[s.Name]++
		if seen[s.Name] == 2 {
			dups = append(dups, s.Name)
		}
	}
	return dups
}
