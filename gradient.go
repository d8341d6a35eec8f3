package heatmap

import (
	"math"
	"sort"
)

// ColorStop represents a color at a specific position in a gradient.
type ColorStop struct {
	Offset float64 // Position in gradient, 0.0 to 1.0
	Color  RGBA    // Color at this position
}

// BuildGradient renders a linear color ramp through stops and samples it
// into a 256-entry lookup table, entry i taken at position i/255.
//
// Stops may be given in any order. Between two adjacent stops each channel
// (R, G, B, A) is blended linearly on its encoded value. Positions before the
// first stop or after the last take that stop's color.
//
// Stops sharing an offset form a hard step: the ramp approaches the
// earliest-defined of them from the left, and the latest-defined one holds
// at and after the shared offset.
//
// An empty stop list yields an all-zero (transparent black) table and a
// single stop fills the whole table with its color.
//
// BuildGradient fails with *InvalidStopError when an offset is NaN,
// infinite, or outside [0, 1], or when a color channel is not a finite
// value in [0, 1].
func BuildGradient(stops []ColorStop) (*GradientTable, error) {
	for i, s := range stops {
		if err := validateOffset(i, s.Offset); err != nil {
			return nil, err
		}
		if err := validateColor(i, s); err != nil {
			return nil, err
		}
	}

	t := &GradientTable{}
	if len(stops) == 0 {
		Logger().Debug("heatmap: built empty gradient")
		return t, nil
	}

	sorted := sortStops(stops)
	for i := 0; i < GradientSize; i++ {
		pos := float64(i) / (GradientSize - 1)
		t.set(i, colorAtOffset(sorted, pos).NRGBA())
	}

	Logger().Debug("heatmap: built gradient", "stops", len(stops))
	return t, nil
}

func validateOffset(index int, offset float64) error {
	switch {
	case math.IsNaN(offset):
		return stopError(index, offset, "position is not a number")
	case math.IsInf(offset, 0):
		return stopError(index, offset, "position is infinite")
	case offset < 0 || offset > 1:
		return stopError(index, offset, "position outside [0, 1]")
	}
	return nil
}

func validateColor(index int, s ColorStop) error {
	for _, v := range [4]float64{s.Color.R, s.Color.G, s.Color.B, s.Color.A} {
		// NaN fails both comparisons, so test it explicitly.
		if math.IsNaN(v) || v < 0 || v > 1 {
			return stopError(index, s.Offset, "color component outside [0, 1]")
		}
	}
	return nil
}

// sortStops returns a copy of stops ordered by offset.
// Stops with equal offsets keep their input order.
func sortStops(stops []ColorStop) []ColorStop {
	sorted := make([]ColorStop, len(stops))
	copy(sorted, stops)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	return sorted
}

// colorAtOffset returns the interpolated color at t for stops already
// sorted by sortStops. stops must not be empty.
func colorAtOffset(stops []ColorStop, t float64) RGBA {
	first, last := stops[0], stops[len(stops)-1]
	if t < first.Offset {
		return first.Color
	}
	if t >= last.Offset {
		return last.Color
	}

	// First stop strictly after t. Its predecessor is the last stop at or
	// before t, so a run of equal offsets resolves to its latest entry.
	idx := sort.Search(len(stops), func(i int) bool {
		return stops[i].Offset > t
	})
	lo, hi := stops[idx-1], stops[idx]

	localT := (t - lo.Offset) / (hi.Offset - lo.Offset)
	return lo.Color.Lerp(hi.Color, localT)
}
