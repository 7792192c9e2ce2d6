// Package pixproc provides a parallel, row-based pixel processing engine.
//
// # Overview
//
// pixproc walks a rectangular region of a source buffer row by row, hands
// each pixel to a [PixelFunc] that writes into a target buffer, and reports
// progress once per finished row. Rows are spread across a worker pool; each
// row belongs to exactly one worker, so pixel data needs no locking.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/pixproc"
//		"github.com/gogpu/pixproc/filter"
//	)
//
//	e := pixproc.NewEngine()
//	defer e.Close()
//
//	src, _ := pixproc.LoadPixmap("input.png")
//	out, err := filter.ApplyBackground(ctx, e, src, pixproc.White)
//
// # Buffers and Accessors
//
// A [Buffer] hands out a [PixelAccessor] through Lock. The engine acquires
// one accessor for the source and one for the target per call and releases
// both on every return path. [Pixmap] is the in-memory implementation.
//
// # Clipping
//
// Only the source rectangle drives iteration. Rows outside
// [sourceRect.Y, sourceRect.Bottom()) and columns outside
// [sourceRect.X, sourceRect.Right()) are never read or written, and the
// span is further clipped to both buffers' extents. The target rectangle is
// accepted for interface compatibility and is not used for clipping.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
package pixproc

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
