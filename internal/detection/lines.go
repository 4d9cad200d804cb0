package detection

import (
	"image"
	"sort"
)

// Orientation distinguishes horizontal from vertical grid lines.
type Orientation int

const (
	// Horizontal lines span a row of the image.
	Horizontal Orientation = iota
	// Vertical lines span a column of the image.
	Vertical
)

// Line is a detected grid line candidate: a row or column whose longest
// contiguous run of edge pixels covers a large fraction of the image
// dimension. Strength is that fraction, in (0, 1].
type Line struct {
	Orientation Orientation
	Pos         int
	Strength    float64
}

// DetectLines scans a binary edge map for horizontal and vertical line
// candidates.
//
// For every row, the longest contiguous run of edge pixels is measured;
// rows whose run covers at least runFrac of the width yield a horizontal
// line with strength run/width. Columns are scanned symmetrically
// against the height. Results are ordered by position.
func DetectLines(edges *image.Gray, runFrac float64) (horizontal, vertical []Line) {
	width := edges.Bounds().Dx()
	height := edges.Bounds().Dy()

	for y := 0; y < height; y++ {
		run, best := 0, 0
		for x := 0; x < width; x++ {
			if edges.Pix[y*edges.Stride+x] == 255 {
				run++
				if run > best {
					best = run
				}
			} else {
				run = 0
			}
		}
		if width > 0 {
			strength := float64(best) / float64(width)
			if strength >= runFrac {
				horizontal = append(horizontal, Line{Orientation: Horizontal, Pos: y, Strength: strength})
			}
		}
	}

	for x := 0; x < width; x++ {
		run, best := 0, 0
		for y := 0; y < height; y++ {
			if edges.Pix[y*edges.Stride+x] == 255 {
				run++
				if run > best {
					best = run
				}
			} else {
				run = 0
			}
		}
		if height > 0 {
			strength := float64(best) / float64(height)
			if strength >= runFrac {
				vertical = append(vertical, Line{Orientation: Vertical, Pos: x, Strength: strength})
			}
		}
	}

	return horizontal, vertical
}

// GroupLines merges lines that sit within margin pixels of each other,
// keeping the strongest member of each group at its exact position.
// A thick grid border otherwise produces a cluster of near-identical
// lines, one per edge row. The result is sorted by position.
func GroupLines(lines []Line, margin int) []Line {
	if len(lines) == 0 {
		return nil
	}

	sorted := make([]Line, len(lines))
	copy(sorted, lines)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Pos < sorted[j].Pos })

	grouped := []Line{sorted[0]}
	last := sorted[0].Pos
	for _, l := range sorted[1:] {
		if l.Pos-last <= margin {
			if l.Strength > grouped[len(grouped)-1].Strength {
				grouped[len(grouped)-1] = l
			}
		} else {
			grouped = append(grouped, l)
		}
		last = l.Pos
	}

	sort.Slice(grouped, func(i, j int) bool { return grouped[i].Pos < grouped[j].Pos })
	return grouped
}
