// Package render draws the extension icon at a requested pixel size.
//
// Two designs are available: Angular (indigo tile, white angle brackets and
// two accent dots, drawn supersampled then downsampled) and Gradient
// (gradient tile with brace glyphs from a system font, or vector arcs when
// no font is available).
package render

import (
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/Mavwarf/exticons/internal/config"
)

// Renderer produces an icon image of exactly size×size pixels.
type Renderer interface {
	Name() string
	Render(size int) (image.Image, error)
}

// New returns the renderer for the variant named in opts. log may be nil.
func New(opts config.Options, log *zap.Logger) (Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch opts.Variant {
	case config.VariantAngular:
		return &Angular{Supersample: opts.Supersample, Filter: opts.Filter}, nil
	case config.VariantGradient:
		return &Gradient{FontPaths: opts.FontPaths, Log: log}, nil
	default:
		return nil, fmt.Errorf("unknown variant %q", opts.Variant)
	}
}

func checkSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("invalid icon size %d", size)
	}
	return nil
}
