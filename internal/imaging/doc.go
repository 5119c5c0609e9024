// Package imaging provides the raster primitives the measurement pipeline is
// built on: loading and resizing, Canny edge detection, the reference grid,
// and the drawing operations used to annotate the working image.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Line and rectangle end points are inclusive
//
// # Working Image
//
// Resize always returns a fresh *image.NRGBA. Every drawing function in this
// package mutates that buffer in place and clips silently at its bounds, so
// annotations near the frame edge never fail. The buffer is not safe for
// concurrent mutation; the pipeline owns it from a single goroutine.
//
// # Color Representation
//
// Annotation colours are opaque color.NRGBA values. ParseColor accepts the
// hex notation used in configuration files ("#RRGGBB" or "#RGB").
//
// # Error Handling
//
// Load is the only fallible operation here. Its errors wrap ErrDecode,
// whether the file is missing, unreadable or in an unsupported format.
package imaging
