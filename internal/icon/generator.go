// Package icon renders every configured icon size and writes the PNG files.
package icon

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	ico "github.com/sergeymakinen/go-ico"
	"go.uber.org/zap"

	"github.com/Mavwarf/exticons/internal/paths"
	"github.com/Mavwarf/exticons/internal/render"
)

// Marks are the glyphs printed in front of per-size status lines.
type Marks struct {
	OK   string
	Fail string
}

// DefaultMarks are plain check and cross glyphs.
var DefaultMarks = Marks{OK: "✓", Fail: "✗"}

// Generator renders Sizes with Renderer into OutputDir.
type Generator struct {
	Renderer  render.Renderer
	OutputDir string
	Sizes     []int
	Favicon   int // size embedded in favicon.ico; 0 disables it

	Log   *zap.Logger // nil = no diagnostics
	Out   io.Writer   // nil = os.Stdout
	Marks Marks       // zero value = DefaultMarks
}

// IconFileName returns the file name for an icon of the given size.
func IconFileName(size int) string {
	return fmt.Sprintf("icon%d.png", size)
}

// Run creates the output directory and generates each size in order.
// Failures of individual sizes are recorded in the returned Run and do not
// stop the remaining sizes. An error is returned only when the output
// directory cannot be created or ctx is cancelled.
func (g *Generator) Run(ctx context.Context) (Run, error) {
	run := Run{Time: time.Now(), Variant: g.Renderer.Name(), OutputDir: g.OutputDir}
	log := g.logger()
	out := g.out()
	marks := g.marks()

	if err := os.MkdirAll(g.OutputDir, paths.DirPerm); err != nil {
		return run, fmt.Errorf("creating output directory: %w", err)
	}

	fmt.Fprintf(out, "🎨 Generating %s icons...\n", run.Variant)

	rendered := make(map[int]image.Image)
	for _, size := range g.Sizes {
		if err := ctx.Err(); err != nil {
			return run, err
		}
		start := time.Now()
		img, res := g.generate(size)
		run.Results = append(run.Results, res)
		if res.OK() {
			rendered[size] = img
			fmt.Fprintf(out, "  %s Generated %s\n", marks.OK, IconFileName(size))
			log.Debug("icon written", zap.Int("size", size), zap.String("path", res.Path),
				zap.Int("bytes", res.Bytes), zap.Duration("took", time.Since(start)))
		} else {
			fmt.Fprintf(out, "  %s Error generating %dx%d: %v\n", marks.Fail, size, size, res.Err)
			log.Debug("icon failed", zap.Int("size", size), zap.Error(res.Err))
		}
	}

	if g.Favicon > 0 {
		if err := g.writeFavicon(rendered[g.Favicon]); err != nil {
			fmt.Fprintf(out, "  %s Error generating %s: %v\n", marks.Fail, paths.FaviconFileName, err)
		} else {
			fmt.Fprintf(out, "  %s Generated %s\n", marks.OK, paths.FaviconFileName)
		}
	}

	if failed := run.Failed(); failed > 0 {
		fmt.Fprintf(out, "\n⚠️  Done with %d error(s). %d of %d icons written to %s\n",
			failed, len(run.Results)-failed, len(run.Results), g.OutputDir)
	} else {
		fmt.Fprintf(out, "\n✅ Done! %d icons written to %s\n", len(run.Results), g.OutputDir)
	}
	return run, nil
}

// generate renders, encodes and writes one size.
func (g *Generator) generate(size int) (image.Image, Result) {
	res := Result{Size: size, Path: filepath.Join(g.OutputDir, IconFileName(size))}

	img, err := safeRender(g.Renderer, size)
	if err != nil {
		res.Err = err
		return nil, res
	}
	if b := img.Bounds(); b.Dx() != size || b.Dy() != size {
		res.Err = fmt.Errorf("renderer returned %dx%d image", b.Dx(), b.Dy())
		return nil, res
	}

	data, err := EncodePNG(img)
	if err != nil {
		res.Err = err
		return nil, res
	}
	if err := paths.AtomicWrite(res.Path, data); err != nil {
		res.Err = fmt.Errorf("writing %s: %w", res.Path, err)
		return nil, res
	}

	sum := sha256.Sum256(data)
	res.Bytes = len(data)
	res.SHA256 = hex.EncodeToString(sum[:])
	return img, res
}

// safeRender converts a panic inside the renderer into an error so one bad
// size cannot take down the whole run.
func safeRender(r render.Renderer, size int) (img image.Image, err error) {
	defer func() {
		if p := recover(); p != nil {
			img, err = nil, fmt.Errorf("render panic: %v", p)
		}
	}()
	return r.Render(size)
}

// EncodePNG encodes img as PNG with default compression.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}

// writeFavicon stores img (rendering it first if that size was not part of
// the run) as favicon.ico next to the PNG icons.
func (g *Generator) writeFavicon(img image.Image) error {
	if img == nil {
		var err error
		if img, err = safeRender(g.Renderer, g.Favicon); err != nil {
			return err
		}
	}
	var buf bytes.Buffer
	if err := ico.Encode(&buf, img); err != nil {
		return fmt.Errorf("encoding ico: %w", err)
	}
	return paths.AtomicWrite(filepath.Join(g.OutputDir, paths.FaviconFileName), buf.Bytes())
}

func (g *Generator) logger() *zap.Logger {
	if g.Log == nil {
		return zap.NewNop()
	}
	return g.Log
}

func (g *Generator) out() io.Writer {
	if g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

func (g *Generator) marks() Marks {
	if g.Marks == (Marks{}) {
		return DefaultMarks
	}
	return g.Marks
}
