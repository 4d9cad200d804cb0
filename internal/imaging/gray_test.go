package imaging

import (
	"image"
	"image/color"
	"testing"
)

func uniformGray(w, h int, v uint8) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, w, h))
	for i := range g.Pix {
		g.Pix[i] = v
	}
	return g
}

func TestGrayscale_Luma(t *testing.T) {
	tests := []struct {
		name string
		in   color.NRGBA
		want uint8
	}{
		{"white", color.NRGBA{255, 255, 255, 255}, 255},
		{"black", color.NRGBA{0, 0, 0, 255}, 0},
		{"pure red", color.NRGBA{255, 0, 0, 255}, 76},   // 0.299 * 255
		{"pure green", color.NRGBA{0, 255, 0, 255}, 150}, // 0.587 * 255
		{"pure blue", color.NRGBA{0, 0, 255, 255}, 29},   // 0.114 * 255
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
			for y := 0; y < 2; y++ {
				for x := 0; x < 2; x++ {
					img.SetNRGBA(x, y, tt.in)
				}
			}
			g := Grayscale(img)
			got := g.Pix[0]
			if diff := int(got) - int(tt.want); diff < -1 || diff > 1 {
				t.Errorf("luma: got %d, want %d±1", got, tt.want)
			}
		})
	}
}

func TestDenoise_BorderCarriesSource(t *testing.T) {
	g := uniformGray(10, 10, 200)
	g.Pix[0] = 17 // corner stays exactly as-is

	out := Denoise(g)
	if out.Pix[0] != 17 {
		t.Errorf("border pixel: got %d, want 17", out.Pix[0])
	}
	for x := 0; x < 10; x++ {
		if out.Pix[(9)*out.Stride+x] != 200 {
			t.Errorf("bottom border pixel %d: got %d, want 200", x, out.Pix[9*out.Stride+x])
		}
	}
}

func TestDenoise_SmoothsImpulse(t *testing.T) {
	g := uniformGray(9, 9, 0)
	g.SetGray(4, 4, color.Gray{255})

	out := Denoise(g)

	// Center keeps 4/16 of the impulse, direct neighbors 2/16.
	if got := out.GrayAt(4, 4).Y; got != 63 {
		t.Errorf("center: got %d, want 63", got)
	}
	if got := out.GrayAt(4, 3).Y; got != 31 {
		t.Errorf("neighbor: got %d, want 31", got)
	}
	if got := out.GrayAt(4, 1).Y; got != 0 {
		t.Errorf("far pixel: got %d, want 0", got)
	}
}

func TestDenoise_TinyImage(t *testing.T) {
	g := uniformGray(2, 2, 128)
	out := Denoise(g)
	for i, v := range out.Pix {
		if v != 128 {
			t.Errorf("pixel %d: got %d, want 128", i, v)
		}
	}
}

func TestStats(t *testing.T) {
	t.Run("uniform has zero deviation", func(t *testing.T) {
		mean, stddev := Stats(uniformGray(8, 8, 100))
		if mean != 100 {
			t.Errorf("mean: got %v, want 100", mean)
		}
		if stddev != 0 {
			t.Errorf("stddev: got %v, want 0", stddev)
		}
	})

	t.Run("two-level split", func(t *testing.T) {
		g := uniformGray(2, 1, 0)
		g.Pix[1] = 200
		mean, stddev := Stats(g)
		if mean != 100 {
			t.Errorf("mean: got %v, want 100", mean)
		}
		if stddev != 100 {
			t.Errorf("stddev: got %v, want 100", stddev)
		}
	})

	t.Run("empty image", func(t *testing.T) {
		mean, stddev := Stats(image.NewGray(image.Rect(0, 0, 0, 0)))
		if mean != 0 || stddev != 0 {
			t.Errorf("got (%v, %v), want (0, 0)", mean, stddev)
		}
	})
}
