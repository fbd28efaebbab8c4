package render

import (
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// namedColors are the line/guide colors selectable by name in the CLI and
// viewer. Unknown names fall back to blue.
var namedColors = map[string]drawing.Color{
	"blue":   {R: 0, G: 116, B: 217, A: 255},
	"red":    {R: 217, G: 51, B: 51, A: 255},
	"green":  {R: 46, G: 160, B: 67, A: 255},
	"black":  {R: 0, G: 0, B: 0, A: 255},
	"purple": {R: 128, G: 51, B: 179, A: 255},
	"orange": {R: 243, G: 134, B: 24, A: 255},
	"gray":   {R: 128, G: 128, B: 128, A: 255},
}

// NamedColor resolves a color name, defaulting to blue.
func NamedColor(name string) drawing.Color {
	if c, ok := namedColors[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return namedColors["blue"]
}

// ColorNames lists the selectable color names in a stable order.
func ColorNames() []string {
	return []string{"blue", "red", "green", "black", "purple", "orange", "gray"}
}

var schemes = map[string][]drawing.Color{
	"default": {
		{R: 0, G: 116, B: 217, A: 255},
		{R: 217, G: 51, B: 51, A: 255},
		{R: 46, G: 160, B: 67, A: 255},
		{R: 128, G: 51, B: 179, A: 255},
		{R: 243, G: 134, B: 24, A: 255},
		{R: 0, G: 150, B: 150, A: 255},
	},
	"rainbow": {
		{R: 214, G: 39, B: 40, A: 255},
		{R: 255, G: 127, B: 14, A: 255},
		{R: 188, G: 189, B: 34, A: 255},
		{R: 44, G: 160, B: 44, A: 255},
		{R: 31, G: 119, B: 180, A: 255},
		{R: 148, G: 103, B: 189, A: 255},
	},
	// Sampled from the matplotlib viridis colormap.
	"viridis": {
		{R: 68, G: 1, B: 84, A: 255},
		{R: 65, G: 68, B: 135, A: 255},
		{R: 42, G: 120, B: 142, A: 255},
		{R: 34, G: 168, B: 132, A: 255},
		{R: 122, G: 209, B: 81, A: 255},
		{R: 253, G: 231, B: 37, A: 255},
	},
	"grayscale": {
		{R: 0, G: 0, B: 0, A: 255},
		{R: 90, G: 90, B: 90, A: 255},
		{R: 150, G: 150, B: 150, A: 255},
		{R: 200, G: 200, B: 200, A: 255},
	},
}

// SchemeNames lists the selectable palettes in a stable order.
func SchemeNames() []string {
	return []string{"default", "rainbow", "viridis", "grayscale"}
}

// SchemeColors returns n per-series colors from the named palette, cycling
// when n exceeds the palette size. Unknown schemes use the default palette.
func SchemeColors(scheme string, n int) []drawing.Color {
	pal, ok := schemes[strings.ToLower(strings.TrimSpace(scheme))]
	if !ok {
		pal = schemes["default"]
	}
	if n <= 0 {
		return nil
	}
	out := make([]drawing.Color, n)
	for i := 0; i < n; i++ {
		out[i] = pal[i%len(pal)]
	}
	return out
}
