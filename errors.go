package heatmap

import (
	"errors"
	"fmt"
	"strconv"
)

// Sentinel errors. Typed errors returned by this package match them
// through errors.Is.
var (
	// ErrInvalidStop reports a malformed or out-of-range gradient stop.
	ErrInvalidStop = errors.New("heatmap: invalid color stop")

	// ErrInvalidBuffer reports a pixel buffer or gradient table whose
	// shape violates the caller contract.
	ErrInvalidBuffer = errors.New("heatmap: invalid buffer")

	// ErrInvalidColor reports a color string that cannot be parsed.
	ErrInvalidColor = errors.New("heatmap: invalid color")
)

// InvalidStopError describes a gradient stop rejected at build time.
type InvalidStopError struct {
	// Index is the position of the stop in the caller's input, or -1
	// when the stop set as a whole is malformed.
	Index int

	// Position is the raw position as supplied (numeric or textual).
	Position string

	// Reason is a short human-readable explanation.
	Reason string

	// Err is the underlying cause, if any.
	Err error
}

func (e *InvalidStopError) Error() string {
	msg := "heatmap: invalid color stop"
	if e.Index >= 0 {
		msg += " #" + strconv.Itoa(e.Index)
	}
	if e.Position != "" {
		msg += fmt.Sprintf(" at %q", e.Position)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is ErrInvalidStop.
func (e *InvalidStopError) Is(target error) bool {
	return target == ErrInvalidStop
}

func (e *InvalidStopError) Unwrap() error {
	return e.Err
}

// InvalidBufferError describes a pixel buffer or table with the wrong shape.
type InvalidBufferError struct {
	// Len is the offending length (bytes for buffers, entries for tables).
	Len int

	// Reason is a short human-readable explanation.
	Reason string
}

func (e *InvalidBufferError) Error() string {
	return fmt.Sprintf("heatmap: invalid buffer (len %d): %s", e.Len, e.Reason)
}

// Is reports whether target is ErrInvalidBuffer.
func (e *InvalidBufferError) Is(target error) bool {
	return target == ErrInvalidBuffer
}

func stopError(index int, offset float64, reason string) *InvalidStopError {
	return &InvalidStopError{
		Index:    index,
		Position: strconv.FormatFloat(offset, 'g', -1, 64),
		Reason:   reason,
	}
}
