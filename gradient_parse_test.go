package heatmap

import (
	"errors"
	"image/color"
	"strings"
	"testing"
)

func TestParseColorStop(t *testing.T) {
	s, err := ParseColorStop("0.25", "#ff0000")
	if err != nil {
		t.Fatalf("ParseColorStop: %v", err)
	}
	if s.Offset != 0.25 || s.Color.NRGBA() != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("ParseColorStop = %+v", s)
	}

	s, err = ParseColorStop(" 1 ", "white")
	if err != nil || s.Offset != 1 {
		t.Errorf("ParseColorStop(\" 1 \") = %+v, %v", s, err)
	}
}

func TestParseColorStop_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		position string
		color    string
		reason   string
	}{
		{"non-numeric", "abc", "red", "not numeric"},
		{"empty", "", "red", "not numeric"},
		{"out of range", "1.01", "red", "outside"},
		{"negative", "-0.5", "red", "outside"},
		{"nan", "NaN", "red", "not a number"},
		{"bad color", "0.5", "reddish", "bad color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseColorStop(tt.position, tt.color)
			if !errors.Is(err, ErrInvalidStop) {
				t.Fatalf("error = %v, want ErrInvalidStop", err)
			}
			if !strings.Contains(err.Error(), tt.reason) {
				t.Errorf("error %q does not mention %q", err, tt.reason)
			}
			var se *InvalidStopError
			if errors.As(err, &se) && se.Position != tt.position {
				t.Errorf("Position = %q, want %q", se.Position, tt.position)
			}
		})
	}
}

func TestParseColorStop_BadColorWrapsCause(t *testing.T) {
	_, err := ParseColorStop("0.5", "nope")
	if !errors.Is(err, ErrInvalidColor) {
		t.Errorf("error %v should wrap ErrInvalidColor", err)
	}
}

func TestParseGradient_Object(t *testing.T) {
	stops, err := ParseGradient([]byte(`{"1.0": "red", "0.4": "blue", "0.7": "lime"}`))
	if err != nil {
		t.Fatalf("ParseGradient: %v", err)
	}
	if len(stops) != 3 {
		t.Fatalf("got %d stops, want 3", len(stops))
	}
	// Document order is preserved.
	want := []float64{1.0, 0.4, 0.7}
	for i, s := range stops {
		if s.Offset != want[i] {
			t.Errorf("stops[%d].Offset = %v, want %v", i, s.Offset, want[i])
		}
	}
	if stops[2].Color.NRGBA() != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("lime parsed as %v", stops[2].Color.NRGBA())
	}
}

func TestParseGradient_Array(t *testing.T) {
	stops, err := ParseGradient([]byte(`[[0, "#000000"], {"offset": 1, "color": "rgb(255,255,255)"}]`))
	if err != nil {
		t.Fatalf("ParseGradient: %v", err)
	}
	if len(stops) != 2 || stops[0].Offset != 0 || stops[1].Offset != 1 {
		t.Fatalf("stops = %+v", stops)
	}
	if stops[1].Color != White {
		t.Errorf("stops[1].Color = %+v, want white", stops[1].Color)
	}
}

func TestParseGradient_Empty(t *testing.T) {
	for _, in := range []string{`{}`, `[]`} {
		stops, err := ParseGradient([]byte(in))
		if err != nil {
			t.Errorf("ParseGradient(%s) error: %v", in, err)
		}
		if len(stops) != 0 {
			t.Errorf("ParseGradient(%s) = %v, want no stops", in, stops)
		}
	}
}

func TestParseGradient_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", `nope`},
		{"scalar", `42`},
		{"string", `"red"`},
		{"non-numeric key", `{"low": "blue"}`},
		{"out of range key", `{"2": "blue"}`},
		{"numeric color", `{"0.5": 7}`},
		{"bad color", `{"0.5": "ultraviolet"}`},
		{"short pair", `[[0.5]]`},
		{"position object", `[[{"x": 1}, "red"]]`},
		{"missing offset", `[{"color": "red"}]`},
		{"scalar element", `[0.5]`},
		{"trailing data", `{"0": "red"} {"1": "blue"}`},
		{"truncated", `{"0": "red"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stops, err := ParseGradient([]byte(tt.in))
			if err == nil {
				t.Fatalf("ParseGradient(%s) = %v, want error", tt.in, stops)
			}
			if !errors.Is(err, ErrInvalidStop) {
				t.Errorf("error %v does not match ErrInvalidStop", err)
			}
		})
	}
}

func TestParseGradient_ErrorIndex(t *testing.T) {
	_, err := ParseGradient([]byte(`{"0": "red", "0.5": "blue", "9": "green"}`))
	var se *InvalidStopError
	if !errors.As(err, &se) {
		t.Fatalf("error %T is not *InvalidStopError", err)
	}
	if se.Index != 2 || se.Position != "9" {
		t.Errorf("Index, Position = %d, %q; want 2, \"9\"", se.Index, se.Position)
	}
}

func TestParseGradient_EndToEnd(t *testing.T) {
	stops, err := ParseGradient([]byte(`{"0.0": "#000000", "1.0": "#ffffff"}`))
	if err != nil {
		t.Fatalf("ParseGradient: %v", err)
	}
	table := mustBuild(t, stops)

	pix := []uint8{0, 0, 0, 128}
	if err := Colorize(pix, table); err != nil {
		t.Fatalf("Colorize: %v", err)
	}
	if got := table.At(128); got != (color.NRGBA{128, 128, 128, 255}) {
		t.Errorf("table[128] = %v, want (128,128,128,255)", got)
	}
	want := []uint8{128, 128, 128, 128}
	for i := range want {
		if pix[i] != want[i] {
			t.Fatalf("pixel = %v, want %v", pix, want)
		}
	}
}
