package render

import (
	"image"

	"github.com/nfnt/resize"
	xdraw "golang.org/x/image/draw"

	"github.com/Mavwarf/exticons/internal/config"
)

// downsample scales src to size×size with the named filter. Unknown names
// use Lanczos3.
func downsample(src image.Image, size int, filter string) image.Image {
	var scaler xdraw.Scaler
	switch filter {
	case config.FilterCatmullRom:
		scaler = xdraw.CatmullRom
	case config.FilterBilinear:
		scaler = xdraw.BiLinear
	default:
		return resize.Resize(uint(size), uint(size), src, resize.Lanczos3)
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
