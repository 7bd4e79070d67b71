// Package color converts CSS color values with csscolorparser.
package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"bennypowers.dev/csstree/css/ast"
	"github.com/mazznoer/csscolorparser"
)

// colorFunctions are the functional notations handed to csscolorparser
var colorFunctions = map[string]bool{
	"rgb":  true,
	"rgba": true,
	"hsl":  true,
	"hsla": true,
	"hwb":  true,
}

// Parse parses a color string (hex, rgb, rgba, hsl, hsla, named colors, etc.)
func Parse(value string) (csscolorparser.Color, error) {
	value = strings.TrimSpace(value)
	parsed, err := csscolorparser.Parse(value)
	if err != nil {
		return csscolorparser.Color{}, fmt.Errorf("unsupported color format: %s", value)
	}
	return parsed, nil
}

// FromHex parses the six hex digits of a color token
func FromHex(hex string) (csscolorparser.Color, error) {
	return Parse("#" + hex)
}

// FromValue converts a declaration value to a color. Hex colors, named
// color keywords and rgb/hsl/hwb functions are recognized.
func FromValue(v *ast.Value) (csscolorparser.Color, bool) {
	if v == nil {
		return csscolorparser.Color{}, false
	}

	var c csscolorparser.Color
	var err error
	switch v.Kind {
	case ast.ValueColor:
		c, err = FromHex(v.Text)
	case ast.ValueKeyword:
		// csscolorparser reads "cafe" or "bad" as hex without '#'
		if isHex(v.Text) {
			return csscolorparser.Color{}, false
		}
		c, err = Parse(v.Text)
	case ast.ValueFunction:
		if !colorFunctions[strings.ToLower(v.Text)] {
			return csscolorparser.Color{}, false
		}
		c, err = Parse(ast.FormatValue(v))
	default:
		return csscolorparser.Color{}, false
	}
	return c, err == nil
}

func isHex(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return s != ""
}

// RGBA255 returns the channels of c scaled to 0-255, clamped
func RGBA255(c csscolorparser.Color) (r, g, b, a uint8) {
	return channel(c.R), channel(c.G), channel(c.B), channel(c.A)
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// ToRGB formats c as rgb() or, when translucent, rgba()
func ToRGB(c csscolorparser.Color) string {
	r, g, b, _ := RGBA255(c)
	if c.A >= 0.999 {
		return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, formatAlpha(c.A))
}

// ToHSL formats c as hsl() or, when translucent, hsla()
func ToHSL(c csscolorparser.Color) string {
	h, s, l := hsl(c)
	if c.A >= 0.999 {
		return fmt.Sprintf("hsl(%.0f, %.0f%%, %.0f%%)", h, s*100, l*100)
	}
	return fmt.Sprintf("hsla(%.0f, %.0f%%, %.0f%%, %s)", h, s*100, l*100, formatAlpha(c.A))
}

// hsl converts the clamped RGB channels of c to hue in degrees, saturation
// and lightness in 0-1.
func hsl(c csscolorparser.Color) (h, s, l float64) {
	r := math.Max(0, math.Min(1, c.R))
	g := math.Max(0, math.Min(1, c.G))
	b := math.Max(0, math.Min(1, c.B))

	hi := math.Max(r, math.Max(g, b))
	lo := math.Min(r, math.Min(g, b))
	l = (hi + lo) / 2

	d := hi - lo
	if d == 0 {
		return 0, 0, l
	}
	s = d / (1 - math.Abs(2*l-1))

	switch hi {
	case r:
		h = math.Mod((g-b)/d, 6)
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return h, s, l
}

func formatAlpha(a float64) string {
	a = math.Round(math.Max(0, math.Min(1, a))*100) / 100
	return strconv.FormatFloat(a, 'f', -1, 64)
}

// Presentations returns the spellings of c offered to editors: hex, rgb
// and hsl.
func Presentations(c csscolorparser.Color) []string {
	return []string{c.HexString(), ToRGB(c), ToHSL(c)}
}
