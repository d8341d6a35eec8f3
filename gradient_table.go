package heatmap

import "image/color"

// GradientSize is the number of entries in every GradientTable,
// one per possible 8-bit intensity.
const GradientSize = 256

// GradientTable is a 256-entry color lookup table indexed by intensity.
//
// Entries are non-premultiplied 8-bit RGBA, packed 4 bytes per entry so the
// colorize loop can index them directly. A table is immutable once built and
// may be shared by any number of goroutines.
type GradientTable struct {
	lut [GradientSize * 4]uint8
}

// NewGradientTable creates a table from explicit samples.
// It fails with *InvalidBufferError unless len(samples) is exactly 256.
func NewGradientTable(samples []color.NRGBA) (*GradientTable, error) {
	if len(samples) != GradientSize {
		return nil, &InvalidBufferError{Len: len(samples), Reason: "gradient table needs exactly 256 entries"}
	}
	t := &GradientTable{}
	for i, s := range samples {
		t.set(i, s)
	}
	return t, nil
}

func (t *GradientTable) set(i int, c color.NRGBA) {
	j := i * 4
	t.lut[j+0] = c.R
	t.lut[j+1] = c.G
	t.lut[j+2] = c.B
	t.lut[j+3] = c.A
}

// Len returns the number of entries, always 256.
func (t *GradientTable) Len() int {
	return GradientSize
}

// At returns the entry for intensity i.
func (t *GradientTable) At(i uint8) color.NRGBA {
	j := int(i) * 4
	return color.NRGBA{R: t.lut[j], G: t.lut[j+1], B: t.lut[j+2], A: t.lut[j+3]}
}

// Samples returns a copy of all 256 entries.
func (t *GradientTable) Samples() []color.NRGBA {
	out := make([]color.NRGBA, GradientSize)
	for i := range out {
		out[i] = t.At(uint8(i))
	}
	return out
}

// Equal reports whether two tables hold identical entries.
func (t *GradientTable) Equal(other *GradientTable) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.lut == other.lut
}
