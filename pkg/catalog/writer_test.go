package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/holon-run/spritegen/pkg/sprite"
)

func testSet() *sprite.Set {
	return &sprite.Set{
		Name:   "Kubernetes plantuml-stdlib Sprites",
		Source: "https://github.com/plantuml/plantuml-stdlib/tree/master/stdlib/k8s/",
		Sprites: []sprite.Sprite{
			{Kind: sprite.KindReference, Name: "k8s-pod", Locator: "<k8s/OSS/pod>", Color: "#66ABDD"},
			{Kind: sprite.KindReference, Name: "k8s-svc", Locator: "<k8s/OSS/svc>", Color: "#66ABDD"},
			{Kind: sprite.KindReference, Name: "k8s-ns", Locator: "<k8s/OSS/ns>", Color: "#66ABDD"},
		},
	}
}

func TestWriteRoundTrip(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "nested", "k8s_stdlib_sprites.json")
	set := testSet()

	if _, err := Write(set, dest); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("output is not a JSON object: %v", err)
	}
	for _, key := range []string{"additionalIncludes", "additionalDefinitions"} {
		if _, ok := raw[key]; ok {
			t.Errorf("key %q should be absent", key)
		}
	}
	var sprites []json.RawMessage
	if err := json.Unmarshal(raw["sprites"], &sprites); err != nil {
		t.Fatalf("sprites is not an array: %v", err)
	}
	if len(sprites) != 3 {
		t.Errorf("expected 3 sprites, got %d", len(sprites))
	}

	loaded, err := Load(dest)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Name != set.Name || loaded.Source != set.Source {
		t.Errorf("loaded header = %q/%q", loaded.Name, loaded.Source)
	}
	for i := range set.Sprites {
		if loaded.Sprites[i] != set.Sprites[i] {
			t.Errorf("sprite %d = %+v, want %+v", i, loaded.Sprites[i], set.Sprites[i])
		}
	}
}

func TestWriteIncludesWhenPresent(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "aws.json")
	set := testSet()
	set.AdditionalIncludes = []string{"<awslib14/AWSCommon>"}

	if _, err := Write(set, dest); err != nil {
		t.Fatalf("Write: %v", err)
	}
	loaded, err := Load(dest)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.AdditionalIncludes) != 1 || loaded.AdditionalIncludes[0] != "<awslib14/AWSCommon>" {
		t.Errorf("AdditionalIncludes = %v", loaded.AdditionalIncludes)
	}
}

func TestWriteOverwrites(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.json")
	if err := os.WriteFile(dest, []byte("stale content that is longer than the new catalog ......................................................................................................................................................................................................................................................................"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Write(testSet(), dest); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := Load(dest); err != nil {
		t.Fatalf("overwritten file does not parse: %v", err)
	}
}

func TestWriteEmptySetKeepsSpritesArray(t *testing.T) {
	set := &sprite.Set{Name: "empty"}
	data, err := Encode(set)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(data) != `{"name":"empty","source":"","sprites":[]}` {
		t.Errorf("Encode() = %s", data)
	}
	if set.Sprites != nil {
		t.Error("Encode must not modify the set")
	}
}

func TestEncodeKeepsAngleBrackets(t *testing.T) {
	set := testSet()
	set.AdditionalIncludes = []string{"<k8s/Common>"}
	set.Sprites = set.Sprites[:1]

	data, err := Encode(set)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := `{"name":"Kubernetes plantuml-stdlib Sprites",` +
		`"source":"https://github.com/plantuml/plantuml-stdlib/tree/master/stdlib/k8s/",` +
		`"additionalIncludes":["<k8s/Common>"],` +
		`"sprites":[{"@type":"PlantUmlSprite","name":"k8s-pod","path":"<k8s/OSS/pod>","color":"#66ABDD"}]}`
	if string(data) != want {
		t.Errorf("Encode() = %s\nwant %s", data, want)
	}
}

func TestWriteReportsSize(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "k8s.json")
	n, err := Write(testSet(), dest)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	info, err := os.Stat(dest)
	if err != nil {
		t.Fatal(err)
	}
	if int64(n) != info.Size() {
		t.Errorf("Write() = %d bytes, file has %d", n, info.Size())
	}
}

func TestWriteInvalidSpriteLeavesNoFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "broken.json")
	set := &sprite.Set{Name: "broken", Sprites: []sprite.Sprite{{Name: "no-kind"}}}

	if _, err := Write(set, dest); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Errorf("no file should be written, stat err = %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
