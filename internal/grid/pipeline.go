package grid

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/gridscan/gridscan/internal/detection"
	"github.com/gridscan/gridscan/internal/imaging"
	"github.com/gridscan/gridscan/internal/ocr"
)

var (
	// ErrImageLoad reports an undecodable input. Fatal: the run aborts
	// with no partial result.
	ErrImageLoad = errors.New("image undecodable")

	// ErrRectangleNotFound reports that every board-location strategy
	// failed. Fatal: cropping garbage and recognizing it would produce
	// a plausible-looking but meaningless puzzle string.
	ErrRectangleNotFound = errors.New("board rectangle not found")
)

// Recognizer runs the full board-recognition pipeline. It is safe for
// concurrent use: each run works on fresh buffers and acquires its own
// engines from the factory.
type Recognizer struct {
	cfg     Config
	factory ocr.Factory
}

// New creates a Recognizer with the given tuning and engine factory.
func New(cfg Config, factory ocr.Factory) *Recognizer {
	return &Recognizer{cfg: cfg, factory: factory}
}

// RecognizeFile loads the image at path and recognizes it.
func (r *Recognizer) RecognizeFile(ctx context.Context, path string) (*Result, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	return r.Recognize(ctx, img)
}

// RecognizeBytes decodes an in-memory image blob and recognizes it.
func (r *Recognizer) RecognizeBytes(ctx context.Context, data []byte) (*Result, error) {
	img, err := imaging.DecodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	return r.Recognize(ctx, img)
}

// Recognize runs the pipeline on a decoded image: locate the board,
// crop and segment it, recognize all 81 cells, aggregate.
func (r *Recognizer) Recognize(ctx context.Context, img image.Image) (*Result, error) {
	gray := imaging.Grayscale(img)
	denoised := imaging.Denoise(gray)
	edges := detection.EdgeMap(denoised, r.cfg.EdgeThresholdFraction)

	located, ok := detection.Locate(denoised, edges, r.cfg.Rectangle)
	if !ok {
		return nil, ErrRectangleNotFound
	}

	// Crop from the unblurred grayscale: the denoised buffer exists for
	// the edge detector, glyphs should stay crisp.
	board := imaging.CropSquare(gray, located.Rect)
	cells := imaging.SplitCells(board, r.cfg.CellMarginRatio, r.cfg.TargetCellSize)

	// Binarization regresses on clean full-frame screenshots; it only
	// helps on photographed pages where the locator had to carve the
	// board out of surrounding content.
	binarize := located.Margined && located.Strategy != detection.StrategyDark

	results, err := r.recognizeCells(ctx, cells, binarize)
	if err != nil {
		return nil, err
	}
	return assemble(results, located), nil
}
