// Package detection locates the puzzle board rectangle inside a
// photographed or screenshotted image.
//
// The pipeline runs in three steps:
//
//  1. Edge map: Sobel gradient magnitudes thresholded adaptively at a
//     fraction of the maximum observed magnitude.
//  2. Line detection: for every row and column, the longest contiguous
//     run of edge pixels; runs covering at least half the dimension
//     become candidate grid lines, grouped within a small tolerance.
//  3. Rectangle search: every pair of horizontal lines and pair of
//     vertical lines is scored by area, squareness, and distance from
//     the image border; the best candidate wins.
//
// When too few lines survive grouping, two fallbacks run in a
// configurable order: a projection-profile scan over edge density, and a
// dark-pixel bounding box over raw intensity. Photographs with headers
// or captions above the grid are the reason for the border penalty in
// the scoring: the outer frame of the page would otherwise outscore the
// grid itself.
//
// All functions are deterministic; identical inputs yield identical
// rectangles.
package detection
