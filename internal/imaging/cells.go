package imaging

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// GridSize is the number of cells per board side.
const GridSize = 9

// Cell is one of the 81 segmented cell images, identified by its
// (row, col) position on the board. Cells are always produced in
// row-major order: index = row*9 + col.
type Cell struct {
	Row int
	Col int
	Img *image.Gray
}

// Index returns the row-major position of the cell, in [0, 81).
func (c Cell) Index() int {
	return c.Row*GridSize + c.Col
}

// CropSquare extracts the largest centered square inside r from a
// grayscale image. The square side is min(r.Dx(), r.Dy()); the leftover
// slack in the longer dimension is split evenly on both sides.
func CropSquare(g *image.Gray, r image.Rectangle) *image.Gray {
	r = r.Intersect(g.Bounds())
	size := r.Dx()
	if r.Dy() < size {
		size = r.Dy()
	}
	left := r.Min.X + (r.Dx()-size)/2
	top := r.Min.Y + (r.Dy()-size)/2

	out := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+size], g.Pix[(top+y)*g.Stride+left:(top+y)*g.Stride+left+size])
	}
	return out
}

// SplitCells partitions a square board image into 81 cells in row-major
// order.
//
// Each cell covers size/9 pixels per side. A marginRatio fraction of the
// cell is trimmed from every side to discard bleed from the grid lines,
// and the trimmed region is upscaled with Lanczos resampling so its
// shorter side reaches target pixels, pasted onto a blank white canvas.
func SplitCells(board *image.Gray, marginRatio float64, target int) []Cell {
	size := board.Bounds().Dx()
	cellSize := size / GridSize
	margin := int(float64(cellSize) * marginRatio)
	if 2*margin >= cellSize {
		margin = 0
	}

	cells := make([]Cell, 0, GridSize*GridSize)
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			x0 := col*cellSize + margin
			y0 := row*cellSize + margin
			x1 := (col+1)*cellSize - margin
			y1 := (row+1)*cellSize - margin

			trimmed := imaging.Crop(board, image.Rect(x0, y0, x1, y1))
			scaled := upscale(trimmed, target)

			cells = append(cells, Cell{Row: row, Col: col, Img: scaled})
		}
	}
	return cells
}

// upscale resizes src so its shorter side is target pixels, preserving
// aspect ratio, and renders it onto a white canvas.
func upscale(src *image.NRGBA, target int) *image.Gray {
	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	if w == 0 || h == 0 {
		return image.NewGray(image.Rect(0, 0, target, target))
	}

	var resized *image.NRGBA
	if w <= h {
		resized = imaging.Resize(src, target, 0, imaging.Lanczos)
	} else {
		resized = imaging.Resize(src, 0, target, imaging.Lanczos)
	}

	canvas := imaging.New(resized.Bounds().Dx(), resized.Bounds().Dy(), color.White)
	canvas = imaging.Paste(canvas, resized, image.Pt(0, 0))
	return Grayscale(canvas)
}
