package grid

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gridscan/gridscan/internal/imaging"
	"github.com/gridscan/gridscan/internal/ocr"
)

// recognizeCells runs the per-cell stage over all 81 cells and returns
// results indexed row-major. Engines are acquired from the factory up
// front and released before returning, on every path.
func (r *Recognizer) recognizeCells(ctx context.Context, cells []imaging.Cell, binarize bool) ([]CellResult, error) {
	workers := r.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(cells) {
		workers = len(cells)
	}

	engines := make([]ocr.Engine, 0, workers)
	defer func() {
		for _, eng := range engines {
			eng.Close()
		}
	}()
	for i := 0; i < workers; i++ {
		eng, err := r.factory()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire engine: %w", err)
		}
		engines = append(engines, eng)
	}

	results := make([]CellResult, len(cells))

	if workers == 1 {
		for _, cell := range cells {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[cell.Index()] = r.recognizeCell(engines[0], cell, binarize)
		}
		return results, nil
	}

	jobs := make(chan imaging.Cell)
	var wg sync.WaitGroup
	for _, eng := range engines {
		wg.Add(1)
		go func(eng ocr.Engine) {
			defer wg.Done()
			for cell := range jobs {
				// Each worker writes only its own row-major slots.
				results[cell.Index()] = r.recognizeCell(eng, cell, binarize)
			}
		}(eng)
	}

	var cancelErr error
feed:
	for _, cell := range cells {
		select {
		case <-ctx.Done():
			cancelErr = ctx.Err()
			break feed
		case jobs <- cell:
		}
	}
	close(jobs)
	wg.Wait()

	if cancelErr != nil {
		return nil, cancelErr
	}
	return results, nil
}

// recognizeCell classifies one cell as empty or resolves its digit. It
// never fails: anything that goes wrong degrades the cell to "no
// digit".
func (r *Recognizer) recognizeCell(eng ocr.Engine, cell imaging.Cell, binarize bool) CellResult {
	result := CellResult{Row: cell.Row, Col: cell.Col}

	_, stddev := imaging.Stats(cell.Img)
	if stddev < r.cfg.EmptyStdDevThreshold {
		// Blank paper. Skipping the engine here is as much about not
		// hallucinating digits as it is about speed.
		return result
	}

	processed := imaging.Stretch(cell.Img, r.cfg.ContrastFactor)
	if binarize {
		processed = imaging.Binarize(processed, r.cfg.BinarizeThreshold)
	}

	raw, err := eng.Recognize(imaging.Pad(processed, r.cfg.PaddingPixels))
	if err != nil {
		return result
	}
	result.Text = strings.TrimSpace(raw.Text)
	result.Confidence = raw.Confidence

	if digit, ok := ocr.ResolveDigit(raw.Text); ok && raw.Confidence >= r.cfg.MinConfidence {
		result.Digit = &digit
		return result
	}

	// A literal zero off a binarized board usually means thin strokes
	// broke apart under thresholding; retry once with thickened ink.
	if result.Text == "0" && binarize {
		retry, err := eng.Recognize(imaging.Pad(imaging.DilateInk(processed), r.cfg.PaddingPixels))
		if err != nil {
			return result
		}
		if digit, ok := ocr.ResolveDigit(retry.Text); ok && retry.Confidence >= r.cfg.MinConfidence {
			result.Digit = &digit
			result.Text = strings.TrimSpace(retry.Text)
			result.Confidence = retry.Confidence
		}
	}

	return result
}
