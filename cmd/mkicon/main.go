// mkicon renders a single icon of any size, for previews and store assets.
// Usage: go run ./cmd/mkicon [--variant angular|gradient] <size> <output.png>
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Mavwarf/exticons/internal/config"
	"github.com/Mavwarf/exticons/internal/icon"
	"github.com/Mavwarf/exticons/internal/paths"
	"github.com/Mavwarf/exticons/internal/render"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts := config.Default().Options
	var rest []string
	for i := 0; i < len(args); i++ {
		if args[i] == "--variant" && i+1 < len(args) {
			opts.Variant = args[i+1]
			i++
			continue
		}
		rest = append(rest, args[i])
	}
	if len(rest) != 2 {
		return fmt.Errorf("usage: mkicon [--variant angular|gradient] <size> <output.png>")
	}
	size, err := strconv.Atoi(rest[0])
	if err != nil || size <= 0 {
		return fmt.Errorf("invalid size %q", rest[0])
	}

	r, err := render.New(opts, nil)
	if err != nil {
		return err
	}
	img, err := r.Render(size)
	if err != nil {
		return err
	}
	data, err := icon.EncodePNG(img)
	if err != nil {
		return err
	}
	return paths.AtomicWrite(rest[1], data)
}
