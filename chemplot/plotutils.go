package chemplot

import (
	"image/color"
	"math"
)

//Some internal convenience functions.

// takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	var i, f, p, q, t float64
	var r, g, b float64
	maxcolor := 255.0
	conversion := maxcolor * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = h / 60
	i = math.Floor(h)
	f = h - i
	p = v * (1 - s)
	q = v * (1 - s*f)
	t = v * (1 - s*(1-f))
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default: //case 5
		r, g, b = v, p, q
	}
	return uint8(r * maxcolor), uint8(g * maxcolor), uint8(b * maxcolor)
}

// colors returns the key-th of steps colors spread over the hue wheel, skipping
// the yellows, which are hard to see on white.
func colors(key, steps int, alpha uint8) color.RGBA {
	norm := 260.0 / float64(steps)
	hp := float64(key)*norm + 20.0
	var h float64
	if hp < 55 {
		h = hp - 20.0
	} else {
		h = hp + 20.0
	}
	r, g, b := iHVS2RGB(h, 1, 1)
	return color.RGBA{R: r, G: g, B: b, A: alpha}
}

var (
	outlierColor = color.RGBA{R: 220, G: 20, B: 60, A: 255}
	bondColor    = color.RGBA{R: 80, G: 80, B: 80, A: 255}
)

// elementColors are the usual CPK-like colors for the common elements.
// Carbon is dark grey, the rest get a default purple.
var elementColors = map[string]color.RGBA{
	"H":  {R: 150, G: 150, B: 150, A: 255},
	"C":  {R: 40, G: 40, B: 40, A: 255},
	"N":  {R: 48, G: 80, B: 248, A: 255},
	"O":  {R: 230, G: 13, B: 13, A: 255},
	"F":  {R: 80, G: 180, B: 60, A: 255},
	"Cl": {R: 31, G: 160, B: 31, A: 255},
	"Br": {R: 166, G: 41, B: 41, A: 255},
	"I":  {R: 148, G: 0, B: 148, A: 255},
	"S":  {R: 200, G: 160, B: 0, A: 255},
	"P":  {R: 255, G: 128, B: 0, A: 255},
}

func elementColor(symbol string) color.RGBA {
	if c, ok := elementColors[symbol]; ok {
		return c
	}
	return color.RGBA{R: 120, G: 60, B: 160, A: 255}
}
