package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/Mavwarf/exticons/internal/config"
	"github.com/Mavwarf/exticons/internal/fontfind"
)

// Proportions of the gradient design, relative to the icon edge.
const (
	gradientCornerRatio  = 0.156
	overlayInsetRatio    = 0.08
	overlayCornerRatio   = 0.10
	overlayAlpha         = 40
	braceFontRatio       = 0.50
	labelFontRatio       = 0.16
	labelOffsetRatio     = 0.20 // label center below the icon center
	labelMinSize         = 32
	textureAlpha         = 90
	textureRowRatio      = 0.30
	textureSpacingRatio  = 0.12
	textureDotRatio      = 0.025
	fallbackArcRatio     = 0.22
	fallbackArcShift     = 0.12
	fallbackStrokeRatio  = 0.08
	fallbackCircleRatio  = 0.09
	fallbackOutlineRatio = 0.05
)

// Label is the accent text drawn under the braces.
const Label = "JSON"

// Gradient draws a vertically shaded tile with a frosted inner panel,
// "{ }" glyphs and, from labelMinSize up, a gold Label below them. The
// glyphs come from the first loadable font in FontPaths, resolved once per
// Gradient; without one, arcs and a ring stand in for them.
type Gradient struct {
	FontPaths []string
	Log       *zap.Logger

	once    sync.Once
	font    *fontfind.Font
	fontErr error
}

func (g *Gradient) Name() string { return config.VariantGradient }

// CornerRadius returns the background corner radius in pixels.
func (g *Gradient) CornerRadius(size int) float64 {
	return float64(size) * gradientCornerRatio
}

func (g *Gradient) log() *zap.Logger {
	if g.Log == nil {
		return zap.NewNop()
	}
	return g.Log
}

func (g *Gradient) Render(size int) (image.Image, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	s := float64(size)
	bounds := image.Rect(0, 0, size, size)
	canvas := image.NewRGBA(bounds)

	draw.DrawMask(canvas, bounds, verticalGradient(size, GradientTop, GradientBottom), image.Point{},
		RoundedRectMask(size, size, 0, g.CornerRadius(size)), image.Point{}, draw.Over)

	draw.DrawMask(canvas, bounds, image.NewUniform(withAlpha(White, overlayAlpha)), image.Point{},
		RoundedRectMask(size, size, s*overlayInsetRatio, s*overlayCornerRatio), image.Point{}, draw.Over)

	f, err := g.resolveFont()
	if err != nil {
		drawFallbackGlyphs(canvas, size)
	} else if err := drawGlyphs(canvas, f, size); err != nil {
		g.log().Warn("text rendering failed, using vector glyphs",
			zap.String("font", f.Path), zap.Error(err))
		drawFallbackGlyphs(canvas, size)
	}

	drawTexture(canvas, size)
	return canvas, nil
}

// resolveFont probes FontPaths on first use and remembers the outcome.
func (g *Gradient) resolveFont() (*fontfind.Font, error) {
	g.once.Do(func() {
		g.font, g.fontErr = fontfind.Find(g.FontPaths, g.log())
		if g.fontErr != nil {
			g.log().Warn("no font found, using vector glyphs",
				zap.Strings("candidates", g.FontPaths), zap.Error(g.fontErr))
		}
	})
	return g.font, g.fontErr
}

// verticalGradient fills rows from top to bottom, interpolating per row.
func verticalGradient(size int, top, bottom color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		t := 0.0
		if size > 1 {
			t = float64(y) / float64(size-1)
		}
		c := lerp(top, bottom, t)
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func drawGlyphs(dst *image.RGBA, f *fontfind.Font, size int) error {
	s := float64(size)
	cx, cy := s/2, s/2

	braces, err := f.Face(math.Max(1, s*braceFontRatio))
	if err != nil {
		return err
	}
	defer braces.Close()

	var label font.Face
	if size >= labelMinSize {
		if label, err = f.Face(s * labelFontRatio); err != nil {
			return err
		}
		defer label.Close()
	}

	drawCentered(dst, braces, "{ }", White, cx, cy)
	if label != nil {
		drawCentered(dst, label, Label, Gold, cx, cy+s*labelOffsetRatio)
	}
	return nil
}

// drawCentered draws text so that its ink bounds are centered on (cx, cy).
func drawCentered(dst draw.Image, face font.Face, text string, c color.Color, cx, cy float64) {
	b, _ := font.BoundString(face, text)
	w := (b.Max.X - b.Min.X).Ceil()
	h := (b.Max.Y - b.Min.Y).Ceil()
	x := int(math.Round(cx)) - w/2 - b.Min.X.Floor()
	y := int(math.Round(cy)) - h/2 - b.Min.Y.Floor()

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// drawFallbackGlyphs approximates "{ }" with two opposing arcs and marks
// the center with a gold ring.
func drawFallbackGlyphs(dst *image.RGBA, size int) {
	s := float64(size)
	cx, cy := s/2, s/2
	dc := gg.NewContextForRGBA(dst)
	dc.SetLineCap(gg.LineCapRound)

	dc.SetColor(White)
	dc.SetLineWidth(math.Max(1, s*fallbackStrokeRatio))
	r := s * fallbackArcRatio
	dc.NewSubPath()
	dc.DrawArc(cx-s*fallbackArcShift, cy, r, gg.Radians(120), gg.Radians(240))
	dc.Stroke()
	dc.NewSubPath()
	dc.DrawArc(cx+s*fallbackArcShift, cy, r, gg.Radians(-60), gg.Radians(60))
	dc.Stroke()

	dc.SetColor(Gold)
	dc.SetLineWidth(math.Max(1, s*fallbackOutlineRatio))
	dc.NewSubPath()
	dc.DrawCircle(cx, cy, s*fallbackCircleRatio)
	dc.Stroke()
}

// drawTexture adds two rows of three faint dots above and below center.
func drawTexture(dst *image.RGBA, size int) {
	s := float64(size)
	cx, cy := s/2, s/2
	dc := gg.NewContextForRGBA(dst)
	dc.SetColor(withAlpha(White, textureAlpha))
	r := math.Max(0.5, s*textureDotRatio)
	for _, dy := range []float64{-s * textureRowRatio, s * textureRowRatio} {
		for i := -1; i <= 1; i++ {
			dc.DrawCircle(cx+float64(i)*s*textureSpacingRatio, cy+dy, r)
			dc.Fill()
		}
	}
}
