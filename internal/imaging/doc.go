// Package imaging provides the pixel-buffer operations of the recognition
// pipeline: image decoding, grayscale conversion and denoising, board
// cropping, cell segmentation, and the per-cell preprocessing applied
// before character recognition.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner:
// X increases rightward, Y increases downward. Regions use an inclusive
// top-left and exclusive bottom-right, matching image.Rectangle.
//
// # Buffer Ownership
//
// Every function returns a freshly allocated buffer and never mutates its
// input. Each pipeline stage therefore owns the buffer it produced and can
// hand it to the next stage without aliasing concerns.
//
// # Intensity Convention
//
// Grayscale buffers use 0 for black and 255 for white. Digit strokes are
// dark on a light background; "ink" in this package always means low
// intensity.
package imaging
