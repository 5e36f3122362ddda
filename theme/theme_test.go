package theme

import (
	"strings"
	"testing"
)

func TestParseGPL(t *testing.T) {
	src := `GIMP Palette
Name: test
Columns: 2
# comment
  0   0   0	black
255 255 255	white
bad line here
`
	p, err := ParseGPL(strings.NewReader(src), "test")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "test" || len(p.Colors) != 2 {
		t.Fatalf("palette = %+v", p)
	}
	if mid := p.Lookup(0.5); mid != (RGB{127, 127, 127}) {
		t.Errorf("Lookup(0.5) = %v", mid)
	}
	if p.Index(5) != (RGB{255, 255, 255}) || p.Index(-1) != (RGB{0, 0, 0}) {
		t.Error("Index should clamp")
	}
}

func TestParseGPLEmpty(t *testing.T) {
	if _, err := ParseGPL(strings.NewReader("GIMP Palette\n"), "empty"); err == nil {
		t.Error("expected error for palette without colors")
	}
}

func TestDefaultTheme(t *testing.T) {
	th := Default()
	if th.Palette.Name != DefaultPalette {
		t.Errorf("name = %q", th.Palette.Name)
	}
	if len(th.Palette.Colors) != 10 {
		t.Errorf("colors = %d", len(th.Palette.Colors))
	}
	if th.Notation().Cross != 'x' {
		t.Error("notation style should use theme runes")
	}
}
