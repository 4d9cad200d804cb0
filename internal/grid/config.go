package grid

import (
	"github.com/gridscan/gridscan/internal/detection"
)

// Config collects every tunable of the recognition pipeline. Use
// DefaultConfig as the starting point; the zero value is not usable.
type Config struct {
	// CellMarginRatio is the fraction trimmed from each side of a cell
	// to discard bleed from the grid lines.
	CellMarginRatio float64

	// TargetCellSize is the pixel size the shorter side of a trimmed
	// cell is upscaled to before recognition.
	TargetCellSize int

	// MinConfidence is the engine confidence floor (0-100) below which
	// a resolved digit is discarded. Kept very low: the confusion
	// correction table carries most of the validation burden.
	MinConfidence float64

	// EmptyStdDevThreshold classifies a cell as empty when the standard
	// deviation of its intensity falls below it. Empty cells are never
	// submitted to the engine, which both saves time and keeps the
	// recognizer from hallucinating digits on blank paper.
	EmptyStdDevThreshold float64

	// ContrastFactor stretches cell contrast around the mean intensity.
	ContrastFactor float64

	// BinarizeThreshold is the luma cut for cell binarization, applied
	// only on boards located through the margined edge-detection path.
	BinarizeThreshold uint8

	// PaddingPixels of white border added around a processed cell.
	PaddingPixels int

	// EdgeThresholdFraction of the maximum gradient magnitude is the
	// adaptive edge threshold.
	EdgeThresholdFraction float64

	// Rectangle tunes the board locator, including the fallback
	// strategy order.
	Rectangle detection.Config

	// Workers is the number of parallel recognition workers, each with
	// a private engine instance. Values below 1 mean sequential.
	Workers int
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		CellMarginRatio:       0.154,
		TargetCellSize:        100,
		MinConfidence:         5,
		EmptyStdDevThreshold:  8,
		ContrastFactor:        1.5,
		BinarizeThreshold:     160,
		PaddingPixels:         20,
		EdgeThresholdFraction: 0.2,
		Rectangle:             detection.DefaultConfig(),
		Workers:               1,
	}
}
