package heatmap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ParseColorStop builds a stop from a textual position (as found in a
// gradient configuration key) and a color string accepted by ParseColor.
//
// The position must be a finite decimal number in [0, 1].
func ParseColorStop(position, color string) (ColorStop, error) {
	return parseStop(-1, position, color)
}

func parseStop(index int, position, color string) (ColorStop, error) {
	raw := strings.TrimSpace(position)
	off, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return ColorStop{}, &InvalidStopError{Index: index, Position: position, Reason: "position is not numeric", Err: err}
	}
	if err := validateOffset(index, off); err != nil {
		e := err.(*InvalidStopError)
		e.Position = position
		return ColorStop{}, e
	}
	c, err := ParseColor(color)
	if err != nil {
		return ColorStop{}, &InvalidStopError{Index: index, Position: position, Reason: "bad color", Err: err}
	}
	return ColorStop{Offset: off, Color: c}, nil
}

// ParseGradient decodes a JSON gradient configuration.
//
// Two layouts are accepted. An object maps positions to colors:
//
//	{"0.4": "blue", "0.6": "cyan", "1": "red"}
//
// Its keys are read in document order, never through a Go map, so the
// returned stops mirror the file. An array lists the stops explicitly,
// either as [position, color] pairs or as objects:
//
//	[[0.4, "blue"], {"offset": 1, "color": "red"}]
//
// Every failure is reported as *InvalidStopError.
func ParseGradient(data []byte) ([]ColorStop, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, malformed("unreadable gradient", err)
	}

	var stops []ColorStop
	switch tok {
	case json.Delim('{'):
		stops, err = parseStopObject(dec)
	case json.Delim('['):
		stops, err = parseStopArray(dec)
	default:
		return nil, malformed(fmt.Sprintf("gradient must be a JSON object or array, got %v", tok), nil)
	}
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); err != nil {
		return nil, malformed("unterminated gradient", err)
	}
	if dec.More() {
		return nil, malformed("trailing data after gradient", nil)
	}
	return stops, nil
}

func parseStopObject(dec *json.Decoder) ([]ColorStop, error) {
	var stops []ColorStop
	for i := 0; dec.More(); i++ {
		tok, err := dec.Token()
		if err != nil {
			return nil, malformed("bad gradient key", err)
		}
		key, _ := tok.(string)

		var color string
		if err := dec.Decode(&color); err != nil {
			return nil, &InvalidStopError{Index: i, Position: key, Reason: "color must be a string", Err: err}
		}
		s, err := parseStop(i, key, color)
		if err != nil {
			return nil, err
		}
		stops = append(stops, s)
	}
	return stops, nil
}

// stopEntry is the object form of an array element.
type stopEntry struct {
	Offset *json.Number `json:"offset"`
	Color  string       `json:"color"`
}

func parseStopArray(dec *json.Decoder) ([]ColorStop, error) {
	var stops []ColorStop
	for i := 0; dec.More(); i++ {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, &InvalidStopError{Index: i, Reason: "unreadable stop", Err: err}
		}

		var position, color string
		switch trimmed := bytes.TrimSpace(raw); {
		case len(trimmed) > 0 && trimmed[0] == '[':
			var pair []json.RawMessage
			if err := json.Unmarshal(trimmed, &pair); err != nil || len(pair) != 2 {
				return nil, &InvalidStopError{Index: i, Reason: "stop pair must be [position, color]", Err: err}
			}
			var num json.Number
			if err := json.Unmarshal(pair[0], &num); err != nil {
				return nil, &InvalidStopError{Index: i, Position: string(pair[0]), Reason: "position is not numeric", Err: err}
			}
			if err := json.Unmarshal(pair[1], &color); err != nil {
				return nil, &InvalidStopError{Index: i, Position: num.String(), Reason: "color must be a string", Err: err}
			}
			position = num.String()
		case len(trimmed) > 0 && trimmed[0] == '{':
			var e stopEntry
			if err := json.Unmarshal(trimmed, &e); err != nil {
				return nil, &InvalidStopError{Index: i, Reason: "unreadable stop", Err: err}
			}
			if e.Offset == nil {
				return nil, &InvalidStopError{Index: i, Reason: "missing offset"}
			}
			position, color = e.Offset.String(), e.Color
		default:
			return nil, &InvalidStopError{Index: i, Position: string(trimmed), Reason: "stop must be a pair or an object"}
		}

		s, err := parseStop(i, position, color)
		if err != nil {
			return nil, err
		}
		stops = append(stops, s)
	}
	return stops, nil
}

func malformed(reason string, err error) *InvalidStopError {
	return &InvalidStopError{Index: -1, Reason: reason, Err: err}
}

// DefaultGradient returns the classic blue-to-red heat ramp
// used when no gradient is configured.
func DefaultGradient() []ColorStop {
	return []ColorStop{
		{Offset: 0.4, Color: Blue},
		{Offset: 0.6, Color: Cyan},
		{Offset: 0.7, Color: Green}, // CSS "lime"
		{Offset: 0.8, Color: Yellow},
		{Offset: 1.0, Color: Red},
	}
}
