package render

import (
	"image"

	"github.com/fogleman/gg"

	"github.com/Mavwarf/exticons/internal/config"
)

// Proportions of the angular design, relative to the canvas edge.
const (
	angularCornerRatio   = 0.22
	angularStrokeRatio   = 0.10
	angularOffsetRatio   = 0.22 // bracket center distance from canvas center
	angularBracketWidth  = 0.20
	angularBracketHeight = 0.50
	angularDotRatio      = 0.07

	// Below this size the gap between the dots would land on the middle
	// pixel row, so the dots are drawn touching instead.
	angularTouchingDotsBelow = 32
)

// Angular draws the indigo tile with "<" ">" brackets and a magenta/green
// dot pair between them. Drawing happens at Supersample times the target
// size and is then reduced with Filter.
type Angular struct {
	Supersample int
	Filter      string
}

func (a *Angular) Name() string { return config.VariantAngular }

// CornerRadius returns the background corner radius in target pixels.
func (a *Angular) CornerRadius(size int) float64 {
	k := a.scale()
	return float64(int(float64(size*k)*angularCornerRatio)) / float64(k)
}

func (a *Angular) scale() int {
	if a.Supersample < 1 {
		return 1
	}
	return a.Supersample
}

func (a *Angular) Render(size int) (image.Image, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	k := a.scale()
	c := float64(size * k)
	dc := gg.NewContext(size*k, size*k)

	dc.SetColor(Indigo)
	dc.DrawRoundedRectangle(0, 0, c, c, float64(int(c*angularCornerRatio)))
	dc.Fill()

	cx, cy := c/2, c/2
	off := c * angularOffsetRatio
	w, h := c*angularBracketWidth, c*angularBracketHeight

	dc.SetColor(White)
	dc.SetLineWidth(float64(int(c * angularStrokeRatio)))
	dc.SetLineJoin(gg.LineJoinRound)
	dc.SetLineCap(gg.LineCapRound)
	bracket(dc, cx-off, cy, w, h, false)
	bracket(dc, cx+off, cy, w, h, true)

	r := float64(int(c * angularDotRatio))
	dy := dotOffset(size, r)
	dc.SetColor(Magenta)
	dc.DrawCircle(cx, cy-dy, r)
	dc.Fill()
	dc.SetColor(Green)
	dc.DrawCircle(cx, cy+dy, r)
	dc.Fill()

	small := dc.Image()
	if k > 1 {
		small = downsample(small, size, a.Filter)
	}
	// Resampling kernels bleed a little alpha past the rounded corners;
	// trim back to the exact background coverage at target resolution.
	return Clip(small, RoundedRectMask(size, size, 0, a.CornerRadius(size))), nil
}

// dotOffset returns the distance of each accent dot's center from the
// vertical midpoint.
func dotOffset(size int, r float64) float64 {
	if size < angularTouchingDotsBelow {
		return r
	}
	return 1.5 * r
}

// bracket strokes a three-point angle: top tip, apex, bottom tip. The apex
// points right when right is true.
func bracket(dc *gg.Context, x, y, w, h float64, right bool) {
	dir := -1.0
	if right {
		dir = 1
	}
	dc.NewSubPath()
	dc.MoveTo(x-w/2*dir, y-h/2)
	dc.LineTo(x+w/2*dir, y)
	dc.LineTo(x-w/2*dir, y+h/2)
	dc.Stroke()
}
