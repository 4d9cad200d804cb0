package detection

import (
	"image"
	"image/color"
	"testing"
)

func gray(v uint8) color.Gray {
	return color.Gray{Y: v}
}

func uniformGray(w, h int, v uint8) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, w, h))
	for i := range g.Pix {
		g.Pix[i] = v
	}
	return g
}

func countEdges(e *image.Gray) int {
	n := 0
	for _, v := range e.Pix {
		if v == 255 {
			n++
		}
	}
	return n
}

func TestEdgeMap_Uniform(t *testing.T) {
	for _, v := range []uint8{0, 128, 255} {
		edges := EdgeMap(uniformGray(50, 50, v), 0.2)
		if n := countEdges(edges); n != 0 {
			t.Errorf("uniform %d: got %d edge pixels, want 0", v, n)
		}
	}
}

func TestEdgeMap_StepEdge(t *testing.T) {
	g := uniformGray(100, 50, 255)
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			g.SetGray(x, y, gray(0))
		}
	}

	edges := EdgeMap(g, 0.2)

	found := false
	for x := 48; x <= 52; x++ {
		if edges.GrayAt(x, 25).Y == 255 {
			found = true
		}
	}
	if !found {
		t.Error("no edge detected at the step boundary")
	}
	if edges.GrayAt(10, 25).Y != 0 {
		t.Error("edge detected inside a flat region")
	}
}

func TestEdgeMap_BorderRingStaysClear(t *testing.T) {
	g := uniformGray(40, 40, 255)
	for y := 0; y < 40; y++ {
		g.SetGray(20, y, gray(0))
	}

	edges := EdgeMap(g, 0.2)
	for x := 0; x < 40; x++ {
		if edges.GrayAt(x, 0).Y != 0 || edges.GrayAt(x, 39).Y != 0 {
			t.Fatal("edge marked on the border ring")
		}
	}
}

func TestEdgeMap_AdaptiveThresholdSuppressesWeakGradients(t *testing.T) {
	g := uniformGray(100, 40, 128)
	// Strong step at x=30, faint step at x=70.
	for y := 0; y < 40; y++ {
		for x := 0; x < 30; x++ {
			g.SetGray(x, y, gray(0))
		}
		for x := 70; x < 100; x++ {
			g.SetGray(x, y, gray(138))
		}
	}

	edges := EdgeMap(g, 0.2)

	strong := false
	for x := 28; x <= 32; x++ {
		if edges.GrayAt(x, 20).Y == 255 {
			strong = true
		}
	}
	if !strong {
		t.Error("strong edge missing")
	}
	for x := 68; x <= 72; x++ {
		if edges.GrayAt(x, 20).Y == 255 {
			t.Fatal("faint edge should fall below the adaptive threshold")
		}
	}
}
