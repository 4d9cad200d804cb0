// Package grid turns a photographed or screenshotted 9x9 puzzle image
// into an 81-character digit string with per-cell confidence.
//
// The pipeline runs strictly downstream for one image: decode,
// grayscale and denoise, edge map, board rectangle location, square
// crop, segmentation into 81 cells, then per-cell emptiness
// classification, preprocessing, and digit recognition, finally
// aggregated into a Result.
//
// # Errors
//
// Two failures are fatal and abort the run with no partial result: an
// undecodable input (ErrImageLoad) and a board that none of the
// location strategies can find (ErrRectangleNotFound). Everything that
// goes wrong inside a single cell - the engine erroring, unusable text,
// confidence below the floor - degrades that one cell to "no digit" and
// shows up only in the cell metadata and the aggregate confidence.
//
// # Concurrency
//
// Stages up to segmentation are sequential. Cell recognition is the
// only stage with real latency and has no cross-cell data dependency,
// so Config.Workers > 1 fans cells out over a pool of private engine
// instances; results are reassembled by row-major index and the
// aggregate is only computed once all 81 cells are in. The context is
// checked between cell submissions, since a heavy engine can take tens
// of seconds over 81 calls. Engines are always released before
// Recognize returns, on every path.
//
// Recognition is deterministic: the same pixels produce the same
// Result.
package grid
