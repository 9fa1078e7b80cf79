package render

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"github.com/zeebo/xxh3"
)

// colorAlpha is the opacity every chart color is drawn with.
const colorAlpha = 0.7

// ColorOf derives a stable color from label, so a language or repository has
// the same color in every chart and on every lookup.
func ColorOf(label string) drawing.Color {
	sum := xxh3.HashString(label)
	return drawing.Color{
		R: uint8(sum >> 16),
		G: uint8(sum >> 8),
		B: uint8(sum),
		A: uint8(colorAlpha*255 + 0.5),
	}
}

// RGBA formats c as a CSS color with the chart alpha.
func RGBA(c drawing.Color) string {
	return fmt.Sprintf("rgba(%d,%d,%d,%.1f)", c.R, c.G, c.B, colorAlpha)
}
