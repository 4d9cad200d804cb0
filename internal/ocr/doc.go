// Package ocr wraps the Tesseract engine (via gosseract/v2) for
// single-character digit recognition, and resolves the engine's raw
// text output into a digit 1-9.
//
// # Prerequisites
//
// Tesseract must be installed on the system together with the English
// language data:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// # Engine Lifecycle
//
// An Engine is an explicit handle: construct it, use it, Close it. One
// engine serves one goroutine; for parallel cell recognition, create one
// engine per worker through a Factory. Close is safe to call more than
// once but only the first call releases the underlying client.
//
// # Digit Resolution
//
// Tesseract is a general-purpose recognizer not built for digits-only
// grids, so its output needs correction: a "1" often comes back as "l"
// or "|", a "7" as ")" or "J". ResolveDigit applies a fixed confusion
// table after trying the text verbatim. The table carries most of the
// validation burden; confidence thresholds downstream can therefore be
// very low.
package ocr
