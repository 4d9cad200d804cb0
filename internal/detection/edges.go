package detection

import (
	"image"
	"math"
)

// EdgeMap computes a binary edge map of a grayscale image using 3x3
// Sobel kernels. The gradient magnitude is sqrt(gx²+gy²); pixels whose
// magnitude exceeds frac of the maximum observed magnitude become edges
// (255), everything else 0.
//
// The threshold adapts per image, so low-contrast photographs and crisp
// screenshots produce comparably dense maps. The one-pixel border is
// never marked as an edge.
func EdgeMap(g *image.Gray, frac float64) *image.Gray {
	width := g.Bounds().Dx()
	height := g.Bounds().Dy()

	out := image.NewGray(image.Rect(0, 0, width, height))
	if width < 3 || height < 3 {
		return out
	}

	magnitude := make([]float64, width*height)
	var maxMag float64
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			tl := int(g.Pix[(y-1)*g.Stride+x-1])
			tc := int(g.Pix[(y-1)*g.Stride+x])
			tr := int(g.Pix[(y-1)*g.Stride+x+1])
			ml := int(g.Pix[y*g.Stride+x-1])
			mr := int(g.Pix[y*g.Stride+x+1])
			bl := int(g.Pix[(y+1)*g.Stride+x-1])
			bc := int(g.Pix[(y+1)*g.Stride+x])
			br := int(g.Pix[(y+1)*g.Stride+x+1])

			gx := float64(-tl + tr - 2*ml + 2*mr - bl + br)
			gy := float64(-tl - 2*tc - tr + bl + 2*bc + br)
			mag := math.Sqrt(gx*gx + gy*gy)

			magnitude[y*width+x] = mag
			if mag > maxMag {
				maxMag = mag
			}
		}
	}

	if maxMag == 0 {
		return out
	}

	threshold := maxMag * frac
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			if magnitude[y*width+x] > threshold {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}
