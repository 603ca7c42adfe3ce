package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/Mavwarf/exticons/internal/config"
)

var sizes = []int{16, 32, 48, 128}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

// nearest returns the name of the palette color closest to c.
func nearest(c color.NRGBA) string {
	candidates := []struct {
		name string
		c    color.NRGBA
	}{
		{"indigo", Indigo}, {"white", White}, {"magenta", Magenta}, {"green", Green},
	}
	best, bestD := "", math.MaxFloat64
	for _, cand := range candidates {
		dr := float64(c.R) - float64(cand.c.R)
		dg := float64(c.G) - float64(cand.c.G)
		db := float64(c.B) - float64(cand.c.B)
		if d := dr*dr + dg*dg + db*db; d < bestD {
			best, bestD = cand.name, d
		}
	}
	return best
}

// solidInterior reports whether every pixel within margin of (x, y) is
// fully covered by mask.
func solidInterior(mask *image.Alpha, x, y, margin int) bool {
	b := mask.Bounds()
	for yy := y - margin; yy <= y+margin; yy++ {
		for xx := x - margin; xx <= x+margin; xx++ {
			if !(image.Point{xx, yy}.In(b)) || mask.AlphaAt(xx, yy).A != 255 {
				return false
			}
		}
	}
	return true
}

func corners(size int) []image.Point {
	return []image.Point{{0, 0}, {size - 1, 0}, {0, size - 1}, {size - 1, size - 1}}
}

func newAngular() *Angular {
	return &Angular{Supersample: config.DefaultSupersample, Filter: config.FilterLanczos}
}

func monoFontPath(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "gomono.ttf")
	if err := os.WriteFile(p, gomono.TTF, 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestNewSelectsVariant(t *testing.T) {
	opts := config.Default().Options
	r, err := New(opts, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := r.(*Angular); !ok || r.Name() != config.VariantAngular {
		t.Errorf("New(angular) = %T %q", r, r.Name())
	}

	opts.Variant = config.VariantGradient
	r, err = New(opts, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := r.(*Gradient); !ok || r.Name() != config.VariantGradient {
		t.Errorf("New(gradient) = %T %q", r, r.Name())
	}

	opts.Variant = "hexagon"
	if _, err := New(opts, nil); err == nil {
		t.Error("expected error for unknown variant")
	}
}

func TestRenderRejectsBadSize(t *testing.T) {
	for _, r := range []Renderer{newAngular(), &Gradient{}} {
		for _, size := range []int{0, -16} {
			if _, err := r.Render(size); err == nil {
				t.Errorf("%s.Render(%d) succeeded, want error", r.Name(), size)
			}
		}
	}
}

func TestAngularDimensions(t *testing.T) {
	for _, filter := range []string{config.FilterLanczos, config.FilterCatmullRom, config.FilterBilinear} {
		a := &Angular{Supersample: 4, Filter: filter}
		for _, size := range sizes {
			img, err := a.Render(size)
			if err != nil {
				t.Fatalf("Render(%d) with %s: %v", size, filter, err)
			}
			if b := img.Bounds(); b.Dx() != size || b.Dy() != size {
				t.Errorf("Render(%d) with %s: bounds %v", size, filter, b)
			}
		}
	}
}

func TestAngularWithoutSupersampling(t *testing.T) {
	img, err := (&Angular{Supersample: 1}).Render(32)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Errorf("bounds = %v", b)
	}
	if a := nrgbaAt(img, 0, 0).A; a != 0 {
		t.Errorf("corner alpha = %d, want 0", a)
	}
}

func TestAngularCornersTransparent(t *testing.T) {
	a := newAngular()
	for _, size := range sizes {
		img, err := a.Render(size)
		if err != nil {
			t.Fatal(err)
		}
		for _, p := range corners(size) {
			if got := nrgbaAt(img, p.X, p.Y).A; got != 0 {
				t.Errorf("size %d: corner %v alpha = %d, want 0", size, p, got)
			}
		}
	}
}

func TestAngularInteriorOpaque(t *testing.T) {
	a := newAngular()
	for _, size := range sizes {
		img, err := a.Render(size)
		if err != nil {
			t.Fatal(err)
		}
		mask := RoundedRectMask(size, size, 0, a.CornerRadius(size))
		checked := 0
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				// Lanczos3 reaches three target pixels in each direction.
				if !solidInterior(mask, x, y, 3) {
					continue
				}
				checked++
				if got := nrgbaAt(img, x, y).A; got != 255 {
					t.Fatalf("size %d: pixel (%d,%d) alpha = %d, want 255", size, x, y, got)
				}
			}
		}
		if checked == 0 {
			t.Errorf("size %d: no interior pixels checked", size)
		}
	}
}

func TestAngularCornerRadiusScales(t *testing.T) {
	a := newAngular()
	for _, size := range sizes {
		ratio := a.CornerRadius(size) / float64(size)
		tol := 1 / float64(size*a.Supersample)
		if math.Abs(ratio-angularCornerRatio) > tol {
			t.Errorf("size %d: radius ratio %.4f, want %.2f±%.4f", size, ratio, angularCornerRatio, tol)
		}
	}
}

func TestAngularAccentDotsSurviveAt16(t *testing.T) {
	img, err := newAngular().Render(16)
	if err != nil {
		t.Fatal(err)
	}
	// The center column at the vertical midpoint: magenta above, green below.
	if got := nearest(nrgbaAt(img, 8, 7)); got != "magenta" {
		t.Errorf("pixel (8,7) = %v (%s), want magenta", nrgbaAt(img, 8, 7), got)
	}
	if got := nearest(nrgbaAt(img, 8, 8)); got != "green" {
		t.Errorf("pixel (8,8) = %v (%s), want green", nrgbaAt(img, 8, 8), got)
	}
}

func TestDotOffset(t *testing.T) {
	tests := []struct {
		size int
		r    float64
		want float64
	}{
		{16, 4, 4},
		{31, 8, 8},
		{32, 8, 12},
		{128, 35, 52.5},
	}
	for _, tt := range tests {
		if got := dotOffset(tt.size, tt.r); got != tt.want {
			t.Errorf("dotOffset(%d, %v) = %v, want %v", tt.size, tt.r, got, tt.want)
		}
	}
}

func TestAngularDeterministic(t *testing.T) {
	a := newAngular()
	for _, size := range sizes {
		first, err := a.Render(size)
		if err != nil {
			t.Fatal(err)
		}
		second, err := a.Render(size)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(encode(t, first), encode(t, second)) {
			t.Errorf("size %d: renders differ", size)
		}
	}
}

func TestGradientFallbackWithoutFont(t *testing.T) {
	g := &Gradient{FontPaths: []string{filepath.Join(t.TempDir(), "missing.ttf")}}
	for _, size := range sizes {
		img, err := g.Render(size)
		if err != nil {
			t.Fatalf("Render(%d): %v", size, err)
		}
		if b := img.Bounds(); b.Dx() != size || b.Dy() != size {
			t.Errorf("Render(%d): bounds %v", size, b)
		}
	}

	img, err := g.Render(128)
	if err != nil {
		t.Fatal(err)
	}
	// The fallback ring is gold and passes straight above the center.
	r := 128 * fallbackCircleRatio
	ring := nrgbaAt(img, 64, 64-int(r))
	if ring.R < 200 || ring.B > 60 {
		t.Errorf("ring pixel %v is not gold", ring)
	}
}

func TestGradientWithFont(t *testing.T) {
	withFont := &Gradient{FontPaths: []string{monoFontPath(t)}}
	without := &Gradient{}
	for _, size := range sizes {
		a, err := withFont.Render(size)
		if err != nil {
			t.Fatalf("Render(%d): %v", size, err)
		}
		b, err := without.Render(size)
		if err != nil {
			t.Fatal(err)
		}
		if bytes.Equal(encode(t, a), encode(t, b)) {
			t.Errorf("size %d: text render identical to fallback", size)
		}
	}
}

// isGold reports whether c is (nearly) the solid gold accent.
func isGold(c color.NRGBA) bool {
	return c.A == 255 && c.R > 200 && c.G > 120 && c.G < 200 && c.B < 80
}

func TestGradientLabelBelowCenter(t *testing.T) {
	g := &Gradient{FontPaths: []string{monoFontPath(t)}}
	img, err := g.Render(128)
	if err != nil {
		t.Fatal(err)
	}
	// Halfway between the center and the label's center.
	split := 64 + 128*labelOffsetRatio/2
	above, below := 0, 0
	for y := 0; y < 128; y++ {
		for x := 0; x < 128; x++ {
			if !isGold(nrgbaAt(img, x, y)) {
				continue
			}
			if float64(y) < split {
				above++
			} else {
				below++
			}
		}
	}
	if below == 0 {
		t.Error("no gold label pixels below the center")
	}
	if above != 0 {
		t.Errorf("%d gold pixels above the label area", above)
	}
}

func TestGradientNoLabelAtSmallSizes(t *testing.T) {
	g := &Gradient{FontPaths: []string{monoFontPath(t)}}
	img, err := g.Render(labelMinSize - 1)
	if err != nil {
		t.Fatal(err)
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c := nrgbaAt(img, x, y); isGold(c) {
				t.Fatalf("gold pixel %v at (%d,%d) below the label size threshold", c, x, y)
			}
		}
	}
}

func TestGradientResolvesFontOnce(t *testing.T) {
	path := monoFontPath(t)
	core, logs := observer.New(zap.WarnLevel)
	g := &Gradient{FontPaths: []string{path}, Log: zap.New(core)}

	first, err := g.Render(48)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	second, err := g.Render(48)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(encode(t, first), encode(t, second)) {
		t.Error("second render did not reuse the resolved font")
	}
	if logs.Len() != 0 {
		t.Errorf("unexpected warnings: %v", logs.All())
	}
}

func TestGradientWarnsOnceWithoutFont(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	g := &Gradient{FontPaths: []string{filepath.Join(t.TempDir(), "missing.ttf")}, Log: zap.New(core)}
	for _, size := range sizes {
		if _, err := g.Render(size); err != nil {
			t.Fatal(err)
		}
	}
	if n := logs.FilterMessage("no font found, using vector glyphs").Len(); n != 1 {
		t.Errorf("got %d warnings, want 1", n)
	}
}

func TestGradientCornersClipped(t *testing.T) {
	g := &Gradient{}
	for _, size := range sizes {
		img, err := g.Render(size)
		if err != nil {
			t.Fatal(err)
		}
		mask := RoundedRectMask(size, size, 0, g.CornerRadius(size))
		for _, p := range corners(size) {
			got := nrgbaAt(img, p.X, p.Y).A
			if want := mask.AlphaAt(p.X, p.Y).A; got != want {
				t.Errorf("size %d: corner %v alpha = %d, want mask %d", size, p, got, want)
			}
			if got == 255 {
				t.Errorf("size %d: corner %v not clipped", size, p)
			}
			if size >= 32 && got != 0 {
				t.Errorf("size %d: corner %v alpha = %d, want 0", size, p, got)
			}
		}
	}
}

func TestGradientInteriorOpaque(t *testing.T) {
	g := &Gradient{FontPaths: []string{monoFontPath(t)}}
	for _, size := range sizes {
		img, err := g.Render(size)
		if err != nil {
			t.Fatal(err)
		}
		mask := RoundedRectMask(size, size, 0, g.CornerRadius(size))
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				if mask.AlphaAt(x, y).A != 255 {
					continue
				}
				if got := nrgbaAt(img, x, y).A; got != 255 {
					t.Fatalf("size %d: pixel (%d,%d) alpha = %d, want 255", size, x, y, got)
				}
			}
		}
	}
}

func TestGradientShadesTopToBottom(t *testing.T) {
	img, err := (&Gradient{}).Render(128)
	if err != nil {
		t.Fatal(err)
	}
	// Column 3 stays clear of the overlay and the glyphs.
	top, bottom := nrgbaAt(img, 3, 30), nrgbaAt(img, 3, 98)
	if !(top.R > bottom.R && top.G > bottom.G && top.B > bottom.B) {
		t.Errorf("top %v not lighter than bottom %v", top, bottom)
	}
}

func TestGradientCornerRadiusScales(t *testing.T) {
	g := &Gradient{}
	for _, size := range sizes {
		if ratio := g.CornerRadius(size) / float64(size); math.Abs(ratio-gradientCornerRatio) > 1e-9 {
			t.Errorf("size %d: radius ratio %.4f", size, ratio)
		}
	}
}

func encode(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
