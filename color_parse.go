package heatmap

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/text/cases"
)

// ParseColor parses a CSS-style color string.
//
// Supported forms:
//   - hex: "#rgb", "#rgba", "#rrggbb", "#rrggbbaa"
//   - named colors from the SVG 1.1 set ("red", "LightSkyBlue", ...) and "transparent"
//   - "rgb(r, g, b)" and "rgba(r, g, b, a)", channels 0-255 or percentages
//   - "hsl(h, s%, l%)" and "hsla(h, s%, l%, a)"
//
// Alpha may be given as a number in [0, 1] or a percentage. Out-of-range
// channel values are clamped, as in CSS. Unlike Hex, the '#' is required,
// so words such as "bad" are not read as hex. Unparsable input returns an
// error matching ErrInvalidColor.
func ParseColor(s string) (RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RGBA{}, fmt.Errorf("%w: empty string", ErrInvalidColor)
	}

	if s[0] == '#' {
		return parseHexColor(s)
	}

	name := cases.Fold().String(s)
	if name == "transparent" {
		return Transparent, nil
	}
	if c, ok := colornames.Map[name]; ok {
		return FromColor(c), nil
	}

	if fn, args, ok := splitFunctional(name); ok {
		switch fn {
		case "rgb", "rgba":
			return parseRGBFunc(s, args)
		case "hsl", "hsla":
			return parseHSLFunc(s, args)
		}
		return RGBA{}, fmt.Errorf("%w: unknown function %q", ErrInvalidColor, fn)
	}

	return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// MustParseColor is like ParseColor but panics on error.
// Intended for package-level color tables.
func MustParseColor(s string) RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// parseHexColor parses "RGB", "RGBA", "RRGGBB" or "RRGGBBAA" with an
// optional leading '#'.
func parseHexColor(hex string) (RGBA, error) {
	orig := hex
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var v [4]uint32
	v[3] = 255

	switch len(hex) {
	case 3, 4: // RGB, RGBA
		for i := 0; i < len(hex); i++ {
			d, ok := hexDigit(hex[i])
			if !ok {
				return RGBA{}, fmt.Errorf("%w: bad hex digit in %q", ErrInvalidColor, orig)
			}
			v[i] = d * 17
		}
	case 6, 8: // RRGGBB, RRGGBBAA
		for i := 0; i < len(hex); i += 2 {
			hi, ok1 := hexDigit(hex[i])
			lo, ok2 := hexDigit(hex[i+1])
			if !ok1 || !ok2 {
				return RGBA{}, fmt.Errorf("%w: bad hex digit in %q", ErrInvalidColor, orig)
			}
			v[i/2] = hi<<4 | lo
		}
	default:
		return RGBA{}, fmt.Errorf("%w: hex color %q has %d digits", ErrInvalidColor, orig, len(hex))
	}

	return RGBA{
		R: float64(v[0]) / 255,
		G: float64(v[1]) / 255,
		B: float64(v[2]) / 255,
		A: float64(v[3]) / 255,
	}, nil
}

func hexDigit(c byte) (uint32, bool) {
	switch {
	case '0' <= c && c <= '9':
		return uint32(c - '0'), true
	case 'a' <= c && c <= 'f':
		return uint32(c - 'a' + 10), true
	case 'A' <= c && c <= 'F':
		return uint32(c - 'A' + 10), true
	}
	return 0, false
}

// splitFunctional splits "fn(a, b, c)" or "fn(a b c / d)" into its name
// and arguments.
func splitFunctional(s string) (string, []string, bool) {
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return "", nil, false
	}
	fn := strings.TrimSpace(s[:open])
	body := s[open+1 : len(s)-1]

	var args []string
	if strings.Contains(body, ",") {
		args = strings.Split(body, ",")
	} else {
		args = strings.Fields(strings.ReplaceAll(body, "/", " / "))
		// Drop the separator of the space syntax: "r g b / a".
		if len(args) == 5 && args[3] == "/" {
			args = append(args[:3], args[4])
		}
	}
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}
	return fn, args, true
}

func parseRGBFunc(src string, args []string) (RGBA, error) {
	if len(args) != 3 && len(args) != 4 {
		return RGBA{}, fmt.Errorf("%w: %q needs 3 or 4 arguments", ErrInvalidColor, src)
	}
	var ch [3]float64
	for i := range ch {
		v, err := parseChannel(args[i])
		if err != nil {
			return RGBA{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, src, err)
		}
		ch[i] = v
	}
	a := 1.0
	if len(args) == 4 {
		v, err := parseAlpha(args[3])
		if err != nil {
			return RGBA{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, src, err)
		}
		a = v
	}
	return RGBA{R: ch[0], G: ch[1], B: ch[2], A: a}, nil
}

func parseHSLFunc(src string, args []string) (RGBA, error) {
	if len(args) != 3 && len(args) != 4 {
		return RGBA{}, fmt.Errorf("%w: %q needs 3 or 4 arguments", ErrInvalidColor, src)
	}
	h, err := parseNumber(strings.TrimSuffix(args[0], "deg"))
	if err != nil {
		return RGBA{}, fmt.Errorf("%w: %q: hue: %v", ErrInvalidColor, src, err)
	}
	s, err := parsePercent(args[1])
	if err != nil {
		return RGBA{}, fmt.Errorf("%w: %q: saturation: %v", ErrInvalidColor, src, err)
	}
	l, err := parsePercent(args[2])
	if err != nil {
		return RGBA{}, fmt.Errorf("%w: %q: lightness: %v", ErrInvalidColor, src, err)
	}
	c := HSL(h, s, l)
	if len(args) == 4 {
		a, err := parseAlpha(args[3])
		if err != nil {
			return RGBA{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, src, err)
		}
		c.A = a
	}
	return c, nil
}

// parseChannel parses an rgb() channel: 0-255 or a percentage.
func parseChannel(s string) (float64, error) {
	if strings.HasSuffix(s, "%") {
		return parsePercent(s)
	}
	v, err := parseNumber(s)
	if err != nil {
		return 0, err
	}
	return clamp01(v / 255), nil
}

// parseAlpha parses an alpha value: [0, 1] or a percentage.
func parseAlpha(s string) (float64, error) {
	if strings.HasSuffix(s, "%") {
		return parsePercent(s)
	}
	v, err := parseNumber(s)
	if err != nil {
		return 0, err
	}
	return clamp01(v), nil
}

func parsePercent(s string) (float64, error) {
	v, err := parseNumber(strings.TrimSuffix(s, "%"))
	if err != nil {
		return 0, err
	}
	return clamp01(v / 100), nil
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return v, nil
}

// clamp01 clamps a value to [0, 1] range.
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
