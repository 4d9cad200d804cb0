package imaging

import (
	"image"
	"testing"
)

func TestOverlay_Dimensions(t *testing.T) {
	src := uniformGray(120, 100, 255)
	out := Overlay(src, image.Rect(10, 10, 100, 100), nil)
	if out.Bounds().Dx() != 120 || out.Bounds().Dy() != 100 {
		t.Fatalf("dimensions: got %dx%d, want 120x100", out.Bounds().Dx(), out.Bounds().Dy())
	}
}

func TestOverlay_DrawsBoardOutline(t *testing.T) {
	src := uniformGray(100, 100, 255)
	out := Overlay(src, image.Rect(20, 20, 80, 80), nil)

	c := out.NRGBAAt(20, 20)
	if c.R != 255 || c.G != 64 {
		t.Errorf("outline corner: got %v", c)
	}
	far := out.NRGBAAt(5, 5)
	if far.R != 255 || far.G != 255 || far.B != 255 {
		t.Errorf("pixel outside board changed: got %v", far)
	}
}

func TestOverlay_ConfidenceTint(t *testing.T) {
	src := uniformGray(90, 90, 255)
	board := image.Rect(0, 0, 90, 90)

	low := Overlay(src, board, []CellShade{{Row: 4, Col: 4, Confidence: 0}})
	high := Overlay(src, board, []CellShade{{Row: 4, Col: 4, Confidence: 100}})

	// Center of cell (4,4) is the image center.
	lc := low.NRGBAAt(45, 45)
	hc := high.NRGBAAt(45, 45)
	if lc.R <= lc.G {
		t.Errorf("low confidence should tint red, got %v", lc)
	}
	if hc.G <= hc.R {
		t.Errorf("high confidence should tint green, got %v", hc)
	}
}

func TestOverlay_IgnoresOutOfRangeShades(t *testing.T) {
	src := uniformGray(90, 90, 255)
	out := Overlay(src, image.Rect(0, 0, 90, 90), []CellShade{{Row: 9, Col: 0, Confidence: 50}})
	c := out.NRGBAAt(45, 45)
	if c.R != 255 || c.G != 255 || c.B != 255 {
		t.Errorf("out-of-range shade tinted image: got %v", c)
	}
}
