package render

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// kappa places cubic Bézier control points so that a quarter curve
// approximates a circular arc.
const kappa = 0.5522847498

// RoundedRectMask rasterizes a rounded rectangle covering a w×h area,
// shrunk by inset on every side, with corner radius r. Edge pixels carry
// fractional coverage.
func RoundedRectMask(w, h int, inset, r float64) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	x0, y0 := inset, inset
	x1, y1 := float64(w)-inset, float64(h)-inset
	if x1 <= x0 || y1 <= y0 {
		return mask
	}
	r = math.Max(0, math.Min(r, math.Min(x1-x0, y1-y0)/2))

	z := vector.NewRasterizer(w, h)
	roundedRectPath(z, float32(x0), float32(y0), float32(x1), float32(y1), float32(r))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

func roundedRectPath(z *vector.Rasterizer, x0, y0, x1, y1, r float32) {
	k := r * kappa
	z.MoveTo(x0+r, y0)
	z.LineTo(x1-r, y0)
	z.CubeTo(x1-r+k, y0, x1, y0+r-k, x1, y0+r)
	z.LineTo(x1, y1-r)
	z.CubeTo(x1, y1-r+k, x1-r+k, y1, x1-r, y1)
	z.LineTo(x0+r, y1)
	z.CubeTo(x0+r-k, y1, x0, y1-r+k, x0, y1-r)
	z.LineTo(x0, y0+r)
	z.CubeTo(x0, y0+r-k, x0+r-k, y0, x0+r, y0)
	z.ClosePath()
}

// Clip composites src through mask onto a fresh transparent canvas, so
// every pixel's alpha is scaled by the mask coverage.
func Clip(src image.Image, mask *image.Alpha) *image.NRGBA {
	dst := image.NewNRGBA(mask.Bounds())
	draw.DrawMask(dst, dst.Bounds(), src, src.Bounds().Min, mask, image.Point{}, draw.Src)
	return dst
}
