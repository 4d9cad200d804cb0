package imaging

import (
	"image"
	"image/color"
	"image/draw"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// CellShade ties a board cell to the confidence of its recognition,
// for rendering in a diagnostic overlay. Confidence is 0-100.
type CellShade struct {
	Row        int
	Col        int
	Confidence float64
}

// Overlay renders recognition diagnostics onto a copy of the source
// image: the detected board rectangle as a solid outline, and a
// translucent tint over each shaded cell whose hue runs from red
// (confidence 0) to green (confidence 100). Cells without a shade entry
// are left untinted.
//
// The result is meant for humans debugging a misdetected board, not for
// further processing.
func Overlay(src image.Image, board image.Rectangle, shades []CellShade) *image.NRGBA {
	bounds := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), src, bounds.Min, draw.Src)

	board = board.Intersect(out.Bounds())
	if board.Empty() {
		return out
	}

	cellW := float64(board.Dx()) / GridSize
	cellH := float64(board.Dy()) / GridSize
	for _, s := range shades {
		if s.Row < 0 || s.Row >= GridSize || s.Col < 0 || s.Col >= GridSize {
			continue
		}
		tint := confidenceColor(s.Confidence)
		x0 := board.Min.X + int(float64(s.Col)*cellW)
		y0 := board.Min.Y + int(float64(s.Row)*cellH)
		x1 := board.Min.X + int(float64(s.Col+1)*cellW)
		y1 := board.Min.Y + int(float64(s.Row+1)*cellH)
		tintRect(out, image.Rect(x0, y0, x1, y1), tint, 0.3)
	}

	outline(out, board, color.NRGBA{R: 255, G: 64, B: 64, A: 255}, 3)
	return out
}

// confidenceColor maps confidence 0-100 onto a red-to-green hue ramp.
func confidenceColor(confidence float64) color.NRGBA {
	if confidence < 0 {
		confidence = 0
	} else if confidence > 100 {
		confidence = 100
	}
	c := colorful.Hsv(confidence/100*120, 0.9, 0.9)
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// tintRect alpha-blends a solid color over a rectangle of the image.
func tintRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA, alpha float64) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i+0] = blend(img.Pix[i+0], c.R, alpha)
			img.Pix[i+1] = blend(img.Pix[i+1], c.G, alpha)
			img.Pix[i+2] = blend(img.Pix[i+2], c.B, alpha)
		}
	}
}

func blend(base, over uint8, alpha float64) uint8 {
	return uint8(float64(base)*(1-alpha) + float64(over)*alpha)
}

// outline draws a rectangle border of the given thickness, inset into
// the rectangle.
func outline(img *image.NRGBA, r image.Rectangle, c color.NRGBA, thickness int) {
	for t := 0; t < thickness; t++ {
		inset := r.Inset(t)
		if inset.Empty() {
			return
		}
		for x := inset.Min.X; x < inset.Max.X; x++ {
			img.SetNRGBA(x, inset.Min.Y, c)
			img.SetNRGBA(x, inset.Max.Y-1, c)
		}
		for y := inset.Min.Y; y < inset.Max.Y; y++ {
			img.SetNRGBA(inset.Min.X, y, c)
			img.SetNRGBA(inset.Max.X-1, y, c)
		}
	}
}
