// Package heatmap colors density tiles through a gradient lookup table.
//
// # Overview
//
// A heat map tile starts as an intensity raster: an RGBA buffer whose alpha
// channel carries a 0-255 density value. heatmap turns it into a colored
// tile of the same size in two steps:
//
//  1. BuildGradient samples a linear ramp through a few color stops into a
//     256-entry GradientTable, one entry per intensity.
//  2. Colorize rewrites each pixel's RGB with the table entry selected by
//     its alpha. Alpha itself is kept, and fully transparent pixels are
//     left alone.
//
// # Quick Start
//
//	stops, err := heatmap.ParseGradient([]byte(`{"0.4":"blue","0.6":"cyan","0.7":"lime","0.8":"yellow","1":"red"}`))
//	if err != nil {
//	    return err
//	}
//	table, err := heatmap.BuildGradient(stops)
//	if err != nil {
//	    return err
//	}
//	if err := heatmap.Colorize(tile.Pix, table); err != nil {
//	    return err
//	}
//
// # Tiles
//
// Tile is anything that can draw itself into a Pixmap. ColoredTile wraps an
// intensity Tile and colorizes its output, and Renderer draws many tiles in
// parallel with gradient tables shared through a GradientCache.
//
// # Concurrency
//
// BuildGradient is a pure function and a GradientTable is immutable, so a
// single table may be used by any number of concurrent Colorize calls on
// distinct buffers.
//
// # Errors
//
// Malformed stops are reported as *InvalidStopError (matching
// ErrInvalidStop) and shape violations as *InvalidBufferError (matching
// ErrInvalidBuffer). Neither is transient: fix the input and call again.
package heatmap

// Version is the current version of the library.
const Version = "0.3.0"
