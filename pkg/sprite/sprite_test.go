package sprite

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestSpriteMarshalReference(t *testing.T) {
	s := Sprite{Kind: KindReference, Name: "aws-Compute-EC2", Locator: "<awslib14/Compute/EC2>", Color: "#ED7100"}
	data, err := s.MarshalJSON()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"@type":"PlantUmlSprite","name":"aws-Compute-EC2","path":"<awslib14/Compute/EC2>","color":"#ED7100"}`
	if string(data) != want {
		t.Errorf("got %s\nwant %s", data, want)
	}
}

func TestSpriteMarshalImage(t *testing.T) {
	s := Sprite{Kind: KindImage, Name: "logos-docker-img", Locator: "img:GILBARBARA_PNG_URL/docker.png"}
	data, err := s.MarshalJSON()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"@type":"ImageSprite","name":"logos-docker-img","url":"img:GILBARBARA_PNG_URL/docker.png"}`
	if string(data) != want {
		t.Errorf("got %s\nwant %s", data, want)
	}
}

func TestSpriteMarshalUnknownKind(t *testing.T) {
	if _, err := json.Marshal(Sprite{Name: "x"}); err == nil {
		t.Fatal("expected error for sprite without kind")
	}
}

func TestSetOmitsEmptyOptionalKeys(t *testing.T) {
	set := Set{
		Name:    "Logos plantuml-stdlib Sprites",
		Source:  "https://example.com/logos/",
		Sprites: []Sprite{{Kind: KindReference, Name: "logos-go", Locator: "<logos/go>"}},
	}
	data, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, key := range []string{"additionalIncludes", "additionalDefinitions", "null"} {
		if strings.Contains(string(data), key) {
			t.Errorf("encoded set should not contain %q: %s", key, data)
		}
	}
}

func TestSetKeepsEmptySource(t *testing.T) {
	data, err := json.Marshal(Set{Name: "bare", Sprites: []Sprite{}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := `{"name":"bare","source":"","sprites":[]}`; string(data) != want {
		t.Errorf("got %s\nwant %s", data, want)
	}
}

func TestSetDecode(t *testing.T) {
	input := `{
		"name": "mixed",
		"additionalDefinitions": ["URL https://example.com"],
		"sprites": [
			{"@type": "PlantUmlSprite", "name": "ma-account", "path": "<material/account>", "reference": "ma_account"},
			{"@type": "ImageSprite", "name": "logos-go-img", "url": "img:URL/go.png"}
		]
	}`
	var set Set
	if err := json.Unmarshal([]byte(input), &set); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(set.Sprites) != 2 {
		t.Fatalf("expected 2 sprites, got %d", len(set.Sprites))
	}
	if got := set.Sprites[0]; got.Kind != KindReference || got.Reference != "ma_account" || got.Locator != "<material/account>" {
		t.Errorf("unexpected reference sprite: %+v", got)
	}
	if got := set.Sprites[1]; got.Kind != KindImage || got.Locator != "img:URL/go.png" {
		t.Errorf("unexpected image sprite: %+v", got)
	}
	if set.AdditionalIncludes != nil {
		t.Errorf("AdditionalIncludes = %v, want nil", set.AdditionalIncludes)
	}
}

func TestSpriteDecodeErrors(t *testing.T) {
	var s Sprite
	if err := json.Unmarshal([]byte(`{"name":"x"}`), &s); !errors.Is(err, ErrMissingType) {
		t.Errorf("expected ErrMissingType, got %v", err)
	}
	if err := json.Unmarshal([]byte(`{"@type":"OpenIconicSprite","name":"&x"}`), &s); err == nil {
		t.Error("expected error for unsupported sprite type")
	}
}
