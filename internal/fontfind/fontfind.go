// Package fontfind locates a usable monospace font from an ordered list of
// candidate files.
package fontfind

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// ErrNoFont is returned by Find when none of the candidates could be loaded.
var ErrNoFont = errors.New("no usable font found")

// DefaultCandidates returns well-known monospace font locations for Linux,
// macOS and Windows, in lookup order.
func DefaultCandidates() []string {
	return []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSansMono-Bold.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf",
		"/usr/share/fonts/dejavu/DejaVuSansMono.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationMono-Bold.ttf",
		"/usr/share/fonts/truetype/ubuntu/UbuntuMono-B.ttf",
		"/System/Library/Fonts/Menlo.ttc",
		"/System/Library/Fonts/Monaco.ttf",
		"/Library/Fonts/Courier New.ttf",
		`C:\Windows\Fonts\consolab.ttf`,
		`C:\Windows\Fonts\consola.ttf`,
		`C:\Windows\Fonts\cour.ttf`,
	}
}

// Font is a parsed font together with the file it came from.
type Font struct {
	Path string
	font *opentype.Font
}

// Face returns a face rendering at sizePx pixels (72 DPI).
func (f *Font) Face(sizePx float64) (font.Face, error) {
	return opentype.NewFace(f.font, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Find returns the first candidate that exists and parses. Unreadable or
// malformed files are skipped. log may be nil.
func Find(candidates []string, log *zap.Logger) (*Font, error) {
	if log == nil {
		log = zap.NewNop()
	}
	for _, p := range candidates {
		if p == "" {
			continue
		}
		f, err := Load(p)
		if err != nil {
			log.Debug("font candidate skipped", zap.String("path", p), zap.Error(err))
			continue
		}
		log.Debug("font selected", zap.String("path", p))
		return f, nil
	}
	return nil, ErrNoFont
}

// Load parses a single font file. Collections (.ttc, .otc) yield their
// first font.
func Load(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttc", ".otc":
		coll, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, fmt.Errorf("parse collection %s: %w", path, err)
		}
		if coll.NumFonts() == 0 {
			return nil, fmt.Errorf("collection %s is empty", path)
		}
		f, err := coll.Font(0)
		if err != nil {
			return nil, fmt.Errorf("collection %s: %w", path, err)
		}
		return &Font{Path: path, font: f}, nil
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &Font{Path: path, font: f}, nil
}
