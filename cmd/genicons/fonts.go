package main

import (
	"fmt"
	"os"

	"github.com/Mavwarf/exticons/internal/fontfind"
)

// listFonts prints every candidate with its status and the one the
// gradient design will use.
func listFonts(opts cliOptions) int {
	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	for _, p := range cfg.Options.FontPaths {
		state := "missing"
		if _, err := os.Stat(p); err == nil {
			if _, err := fontfind.Load(p); err != nil {
				state = "unreadable"
			} else {
				state = "ok"
			}
		}
		fmt.Printf("  %-10s %s\n", state, p)
	}
	f, err := fontfind.Find(cfg.Options.FontPaths, nil)
	if err != nil {
		fmt.Println("\nNo font found: the gradient design draws vector braces instead.")
		return 0
	}
	fmt.Printf("\nUsing %s\n", f.Path)
	return 0
}
