package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
)

// Stretch increases the contrast of a grayscale image by scaling every
// intensity away from the image mean by factor, clamped to [0, 255].
// A factor of 1.0 returns an unchanged copy.
func Stretch(g *image.Gray, factor float64) *image.Gray {
	mean, _ := Stats(g)

	width := g.Bounds().Dx()
	height := g.Bounds().Dy()
	out := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := mean + (float64(g.Pix[y*g.Stride+x])-mean)*factor
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			out.Pix[y*out.Stride+x] = uint8(v)
		}
	}
	return out
}

// Binarize thresholds a grayscale image at the given luma level: pixels
// above level become white, the rest black. Helps recognition on noisy
// photographed boards; clean screenshots tend to regress under it.
func Binarize(g *image.Gray, level uint8) *image.Gray {
	return segment.Threshold(g, level)
}

// DilateInk thickens the dark strokes of a grayscale cell by one pixel:
// a pixel turns black if any of its 3x3 neighbors is black. In bild's
// bright-region terms this is an erosion, since ink is dark.
func DilateInk(g *image.Gray) *image.Gray {
	return Grayscale(effect.Erode(g, 1))
}

// Pad surrounds a grayscale image with a uniform white border of px
// pixels. Character recognizers perform poorly on glyphs that touch the
// image boundary.
func Pad(g *image.Gray, px int) *image.Gray {
	if px <= 0 {
		px = 0
	}
	width := g.Bounds().Dx()
	height := g.Bounds().Dy()

	out := image.NewGray(image.Rect(0, 0, width+2*px, height+2*px))
	for i := range out.Pix {
		out.Pix[i] = 255
	}
	for y := 0; y < height; y++ {
		copy(out.Pix[(y+px)*out.Stride+px:(y+px)*out.Stride+px+width], g.Pix[y*g.Stride:y*g.Stride+width])
	}
	return out
}
