package pretty

import "testing"

func TestDefaultOptions_Stable(t *testing.T) {
	d := DefaultOptions
	if d.ExactGlyph == "" || d.PartialGlyph == "" {
		t.Fatalf("glyphs must be non-empty")
	}
	// Spot checks of current defaults (don’t lock everything, just the external look)
	if d.ExactGlyph != "|" || d.PartialGlyph != "¦" || d.Width != 60 || !d.Ruler {
		t.Fatalf("DefaultOptions visual defaults changed")
	}
	var zero Options
	if zero.width() != 60 || zero.ExactGlyphOrDefault() != "|" || zero.PartialGlyphOrDefault() != "¦" {
		t.Fatalf("zero Options must fall back to defaults")
	}
}
