package imaging

import (
	"image"
	"math"
)

// Grayscale converts an image to 8-bit grayscale using ITU-R BT.601
// luminance weights (0.299*R + 0.587*G + 0.114*B).
func Grayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	out := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			luma := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			out.Pix[y*out.Stride+x] = uint8(math.Round(luma))
		}
	}
	return out
}

// Denoise applies a 3x3 Gaussian-weighted blur to the interior of a
// grayscale image:
//
//	1 2 1
//	2 4 2   divided by 16
//	1 2 1
//
// The outermost one-pixel ring is not convolved; it carries the source
// intensity unchanged so the edge detector never sees a synthetic frame
// around the image.
func Denoise(g *image.Gray) *image.Gray {
	width := g.Bounds().Dx()
	height := g.Bounds().Dy()

	out := image.NewGray(image.Rect(0, 0, width, height))
	copy(out.Pix, g.Pix)

	if width < 3 || height < 3 {
		return out
	}

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			sum := 1*int(g.Pix[(y-1)*g.Stride+x-1]) + 2*int(g.Pix[(y-1)*g.Stride+x]) + 1*int(g.Pix[(y-1)*g.Stride+x+1]) +
				2*int(g.Pix[y*g.Stride+x-1]) + 4*int(g.Pix[y*g.Stride+x]) + 2*int(g.Pix[y*g.Stride+x+1]) +
				1*int(g.Pix[(y+1)*g.Stride+x-1]) + 2*int(g.Pix[(y+1)*g.Stride+x]) + 1*int(g.Pix[(y+1)*g.Stride+x+1])
			out.Pix[y*out.Stride+x] = uint8(sum / 16)
		}
	}
	return out
}

// Stats returns the mean and standard deviation of the intensity values
// of a grayscale image. An empty image yields (0, 0).
func Stats(g *image.Gray) (mean, stddev float64) {
	width := g.Bounds().Dx()
	height := g.Bounds().Dy()
	n := width * height
	if n == 0 {
		return 0, 0
	}

	var sum float64
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			sum += float64(g.Pix[y*g.Stride+x])
		}
	}
	mean = sum / float64(n)

	var sq float64
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			d := float64(g.Pix[y*g.Stride+x]) - mean
			sq += d * d
		}
	}
	return mean, math.Sqrt(sq / float64(n))
}
