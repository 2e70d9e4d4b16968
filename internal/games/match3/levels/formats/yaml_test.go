package formats

import "testing"

func TestParseYAML(t *testing.T) {
	data := []byte(`
id: " demo "
name: Demo
tile_kinds: 5
goal:
  score: 900
  moves: 12
layout:
  - " RGB "
  - GBR
  - BRG
metadata:
  author: test
`)

	lvl, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML() failed: %v", err)
	}
	if lvl.ID != "demo" || lvl.Name != "Demo" {
		t.Errorf("id/name = %q/%q", lvl.ID, lvl.Name)
	}
	// Size falls back to the layout
	if lvl.Width != 3 || lvl.Height != 3 {
		t.Errorf("size = %dx%d, want 3x3", lvl.Width, lvl.Height)
	}
	if lvl.Layout[0] != "RGB" {
		t.Errorf("layout rows should be trimmed, got %q", lvl.Layout[0])
	}
	if lvl.TileKinds != 5 || lvl.TargetScore != 900 || lvl.MoveLimit != 12 {
		t.Errorf("parsed = %+v", lvl)
	}
	if lvl.Metadata["author"] != "test" {
		t.Errorf("metadata = %v", lvl.Metadata)
	}
}

func TestParseYAMLDefaults(t *testing.T) {
	lvl, err := ParseYAML([]byte("id: bare\nsize: {w: 5, h: 6}\n"))
	if err != nil {
		t.Fatalf("ParseYAML() failed: %v", err)
	}
	if lvl.TileKinds != DefaultTileKinds {
		t.Errorf("TileKinds = %d, want default %d", lvl.TileKinds, DefaultTileKinds)
	}
	if lvl.Width != 5 || lvl.Height != 6 || lvl.Layout != nil {
		t.Errorf("parsed = %+v", lvl)
	}
}

func TestParseYAMLInvalid(t *testing.T) {
	if _, err := ParseYAML([]byte("id: [unclosed")); err == nil {
		t.Error("malformed YAML should fail")
	}
}
