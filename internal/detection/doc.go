// Package detection finds rectangular objects in an image and annotates them
// with their estimated physical size.
//
// # Pipeline
//
// Detect follows the classic outline pipeline:
//
//  1. Edge Detection: grayscale conversion, then Canny with fixed thresholds
//  2. Contour Extraction: 8-connected components of edge pixels, keeping only
//     the external ones
//  3. Bounding Boxes: one axis-aligned rectangle per contour
//  4. Filtering: rectangles at or below the noise floor in either dimension
//     are dropped
//  5. Conversion: pixel sizes become centimetres through a fixed scale
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Rect widths and heights count pixels inclusively
//
// # Ordering
//
// Results are sorted by the top-left corner (Y first, then X) so that the
// measurements file is stable across runs.
//
// # Limitations
//
// An "object" is any external outline. Overlapping outlines are reported
// separately, a filled shape touching another merges with it into one
// rectangle, and nothing here checks that an outline is actually
// rectangular. Photographs with texture produce many spurious boxes.
package detection
