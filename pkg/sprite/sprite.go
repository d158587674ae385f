// Package sprite defines sprite sets and their JSON encoding as read by the
// diagram library's sprite loader.
package sprite

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Kind tells how a sprite is resolved by the renderer.
type Kind string

const (
	// KindImage sprites embed an image by URL.
	KindImage Kind = "image"
	// KindReference sprites point into the PlantUML standard library.
	KindReference Kind = "reference"
)

const (
	typePlantUML = "PlantUmlSprite"
	typeImage    = "ImageSprite"
)

// ErrMissingType is returned when a decoded sprite has no "@type".
var ErrMissingType = errors.New("sprite is missing @type")

// Sprite is one catalog item.
type Sprite struct {
	Kind Kind
	Name string
	// Locator is the image URL for image sprites and the "<stdlib/path>"
	// include expression for reference sprites.
	Locator   string
	Color     string
	Reference string
}

// Set is a named collection of sprites written as one JSON document.
type Set struct {
	Name                  string   `json:"name"`
	Source                string   `json:"source"`
	AdditionalIncludes    []string `json:"additionalIncludes,omitempty"`
	AdditionalDefinitions []string `json:"additionalDefinitions,omitempty"`
	Sprites               []Sprite `json:"sprites"`
}

type plantUMLSprite struct {
	Type      string `json:"@type"`
	Name      string `json:"name"`
	Path      string `json:"path"`
	Reference string `json:"reference,omitempty"`
	Color     string `json:"color,omitempty"`
}

type imageSprite struct {
	Type string `json:"@type"`
	Name string `json:"name,omitempty"`
	URL  string `json:"url"`
}

// MarshalJSON encodes s in the polymorphic "@type" shape.
func (s Sprite) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case KindReference:
		return marshal(plantUMLSprite{
			Type:      typePlantUML,
			Name:      s.Name,
			Path:      s.Locator,
			Reference: s.Reference,
			Color:     s.Color,
		})
	case KindImage:
		return marshal(imageSprite{Type: typeImage, Name: s.Name, URL: s.Locator})
	default:
		return nil, fmt.Errorf("cannot encode sprite %q: unknown kind %q", s.Name, s.Kind)
	}
}

// marshal keeps "<" and ">" literal in include expressions.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalJSON decodes both sprite shapes.
func (s *Sprite) UnmarshalJSON(data []byte) error {
	var head struct {
		Type string `json:"@type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	switch head.Type {
	case typePlantUML:
		var p plantUMLSprite
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*s = Sprite{Kind: KindReference, Name: p.Name, Locator: p.Path, Color: p.Color, Reference: p.Reference}
	case typeImage:
		var i imageSprite
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = Sprite{Kind: KindImage, Name: i.Name, Locator: i.URL}
	case "":
		return ErrMissingType
	default:
		return fmt.Errorf("unknown sprite type %q", head.Type)
	}
	return nil
}
