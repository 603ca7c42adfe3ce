package render

import "image/color"

// Brand palette, taken from the extension's CSS design tokens.
var (
	Indigo         = color.NRGBA{79, 70, 229, 255}  // #4f46e5 --primary
	GradientTop    = color.NRGBA{99, 102, 241, 255} // #6366f1
	GradientBottom = color.NRGBA{67, 56, 202, 255}  // #4338ca
	White          = color.NRGBA{255, 255, 255, 255}
	Magenta        = color.NRGBA{217, 70, 239, 255} // #d946ef, JSON keys
	Green          = color.NRGBA{34, 197, 94, 255}  // #22c55e, JSON values
	Gold           = color.NRGBA{245, 158, 11, 255} // #f59e0b
)

// lerp blends a toward b by t in [0, 1].
func lerp(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.NRGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A)}
}

// withAlpha returns c with its alpha replaced.
func withAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}
