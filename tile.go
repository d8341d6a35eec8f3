package heatmap

import (
	"errors"
	"image"
)

// Tile is one cell of a tiled visualization that can render itself.
type Tile interface {
	// Draw renders the tile into a fresh pixmap owned by the caller.
	Draw() (*Pixmap, error)
}

// TileFunc adapts an ordinary function to the Tile interface.
type TileFunc func() (*Pixmap, error)

// Draw calls f.
func (f TileFunc) Draw() (*Pixmap, error) {
	return f()
}

// ImageTile is a Tile backed by an already rendered intensity image.
// Each Draw returns a new copy, so the image is never modified.
type ImageTile struct {
	Image image.Image

	// Gray selects luminance instead of alpha as the intensity source.
	Gray bool
}

// Draw implements Tile.
func (t ImageTile) Draw() (*Pixmap, error) {
	if t.Image == nil {
		return nil, errors.New("heatmap: image tile has no image")
	}
	if t.Gray {
		return IntensityFromGray(t.Image), nil
	}
	return FromImage(t.Image), nil
}

// ColoredTile decorates an intensity tile: it draws the base tile and then
// colorizes the result through its gradient table.
type ColoredTile struct {
	base  Tile
	table *GradientTable
}

// NewColoredTile wraps base with the given gradient table.
// The table is shared, not copied.
func NewColoredTile(base Tile, table *GradientTable) *ColoredTile {
	return &ColoredTile{base: base, table: table}
}

// NewColoredTileFromStops builds a gradient from stops and wraps base with it.
func NewColoredTileFromStops(base Tile, stops []ColorStop) (*ColoredTile, error) {
	table, err := BuildGradient(stops)
	if err != nil {
		return nil, err
	}
	return NewColoredTile(base, table), nil
}

// Base returns the wrapped intensity tile.
func (t *ColoredTile) Base() Tile {
	return t.base
}

// Gradient returns the lookup table used to colorize.
func (t *ColoredTile) Gradient() *GradientTable {
	return t.table
}

// Draw implements Tile.
func (t *ColoredTile) Draw() (*Pixmap, error) {
	if t.base == nil {
		return nil, errors.New("heatmap: colored tile has no base tile")
	}
	pm, err := t.base.Draw()
	if err != nil {
		return nil, err
	}
	if err := pm.Colorize(t.table); err != nil {
		return nil, err
	}
	return pm, nil
}
