package core

import "testing"

func TestParseBrush(t *testing.T) {
	b, err := ParseBrush("#ff8000")
	if err != nil {
		t.Fatalf("ParseBrush failed: %v", err)
	}
	if !b.Solid {
		t.Error("Expected solid brush")
	}
	if b.R != 255 || b.G != 128 || b.B != 0 {
		t.Errorf("Expected (255, 128, 0), got (%d, %d, %d)", b.R, b.G, b.B)
	}

	if _, err := ParseBrush("not-a-color"); err == nil {
		t.Error("Expected error for malformed hex string")
	}

	none, err := ParseBrush("none")
	if err != nil {
		t.Fatalf("ParseBrush(none) failed: %v", err)
	}
	if none.Solid {
		t.Error("Expected transparent brush for \"none\"")
	}
}

func TestBrushHexRoundTrip(t *testing.T) {
	b := NewBrush(30, 35, 40)
	got, err := ParseBrush(b.Hex())
	if err != nil {
		t.Fatalf("ParseBrush(%q) failed: %v", b.Hex(), err)
	}
	if got != b {
		t.Errorf("Expected %v, got %v", b, got)
	}

	if BrushTransparent.Hex() != "none" {
		t.Errorf("Expected \"none\", got %q", BrushTransparent.Hex())
	}
}

func TestBrushLightenDarken(t *testing.T) {
	mid := NewBrush(100, 100, 100)

	lighter := mid.Lighten(0.2)
	if lighter.R <= mid.R {
		t.Errorf("Expected lighter red channel, got %d vs %d", lighter.R, mid.R)
	}

	darker := mid.Darken(0.2)
	if darker.R >= mid.R {
		t.Errorf("Expected darker red channel, got %d vs %d", darker.R, mid.R)
	}

	// Transparent brushes pass through untouched
	if got := BrushTransparent.Lighten(0.5); got.Solid {
		t.Error("Expected transparent brush to stay transparent")
	}
}

func TestBrushBlend(t *testing.T) {
	black := NewBrush(0, 0, 0)
	white := NewBrush(255, 255, 255)

	if got := black.Blend(white, 0); got != black {
		t.Errorf("Expected t=0 to keep receiver, got %v", got)
	}
	if got := black.Blend(white, 1); got != white {
		t.Errorf("Expected t=1 to produce other, got %v", got)
	}

	mid := black.Blend(white, 0.5)
	if mid.R == 0 || mid.R == 255 {
		t.Errorf("Expected intermediate channel value, got %d", mid.R)
	}

	// Blending with transparent keeps the solid side
	if got := black.Blend(BrushTransparent, 0.5); got != black {
		t.Errorf("Expected solid side to win, got %v", got)
	}
}
