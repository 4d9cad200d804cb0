package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// Result is the raw outcome of recognizing one cell image.
type Result struct {
	// Text is the recognized text, untrimmed.
	Text string

	// Confidence is the engine's confidence score, 0-100.
	Confidence float64
}

// Engine recognizes a single character in a cell image. Implementations
// are not safe for concurrent use; create one engine per worker.
type Engine interface {
	Recognize(img image.Image) (Result, error)
	Close() error
}

// Factory creates engines. The recognizer acquires engines through a
// Factory so tests can substitute stubs and workers can hold private
// instances.
type Factory func() (Engine, error)

// Tesseract is an Engine backed by a gosseract client configured for
// single-character page segmentation.
type Tesseract struct {
	client *gosseract.Client
	closed bool
}

// NewTesseract creates a Tesseract engine. The returned engine holds a
// native client and must be closed exactly once when done.
func NewTesseract() (*Tesseract, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_CHAR); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	return &Tesseract{client: client}, nil
}

// Recognize runs OCR on a cell image. The confidence comes from the
// symbol-level iterator; when Tesseract reports no symbols the
// confidence is 0 even if text was produced.
func (t *Tesseract) Recognize(img image.Image) (Result, error) {
	if t.closed {
		return Result{}, fmt.Errorf("recognize on closed engine")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Result{}, fmt.Errorf("failed to encode cell: %w", err)
	}
	if err := t.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return Result{}, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := t.client.Text()
	if err != nil {
		return Result{}, fmt.Errorf("OCR failed: %w", err)
	}

	confidence := 0.0
	if boxes, err := t.client.GetBoundingBoxes(gosseract.RIL_SYMBOL); err == nil {
		for _, box := range boxes {
			if box.Word == "" {
				continue
			}
			if box.Confidence > confidence {
				confidence = box.Confidence
			}
		}
	}

	return Result{Text: text, Confidence: confidence}, nil
}

// Close releases the native client. Only the first call has an effect.
func (t *Tesseract) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	return t.client.Close()
}
