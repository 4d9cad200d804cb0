package grid

import (
	"image"
	"strings"

	"github.com/gridscan/gridscan/internal/detection"
)

// CellResult is the recognition outcome for one cell.
type CellResult struct {
	// Row and Col identify the cell, each in [0, 9).
	Row int `json:"row"`
	Col int `json:"col"`

	// Digit is the resolved digit 1-9, or nil when the cell is empty or
	// unresolved. Never 0: a zero in the puzzle string means "no digit"
	// and only appears at final assembly.
	Digit *int `json:"digit"`

	// Confidence is the engine's score for this cell, 0-100. Zero for
	// cells that were never submitted to the engine.
	Confidence float64 `json:"confidence"`

	// Text is the raw recognized text, trimmed. Empty for skipped cells.
	Text string `json:"text"`
}

// Result is the outcome of recognizing one board image.
type Result struct {
	// Puzzle is the 81-character board string in row-major order, each
	// character '0'-'9' with '0' meaning empty or unresolved.
	Puzzle string `json:"puzzle"`

	// Confidence is the mean engine confidence over all cells that
	// resolved to a digit; 0 when none did.
	Confidence float64 `json:"confidence"`

	// Cells holds all 81 per-cell results in row-major order.
	Cells []CellResult `json:"cells"`

	// Board is the located board rectangle in source image coordinates.
	Board image.Rectangle `json:"-"`

	// Strategy that located the board.
	Strategy detection.Strategy `json:"-"`
}

// assemble builds the final Result from the 81 cell results.
func assemble(cells []CellResult, located detection.Located) *Result {
	var sb strings.Builder
	sb.Grow(len(cells))

	var sum float64
	resolved := 0
	for _, c := range cells {
		if c.Digit != nil {
			sb.WriteByte('0' + byte(*c.Digit))
			sum += c.Confidence
			resolved++
		} else {
			sb.WriteByte('0')
		}
	}

	confidence := 0.0
	if resolved > 0 {
		confidence = sum / float64(resolved)
	}

	return &Result{
		Puzzle:     sb.String(),
		Confidence: confidence,
		Cells:      cells,
		Board:      located.Rect,
		Strategy:   located.Strategy,
	}
}
