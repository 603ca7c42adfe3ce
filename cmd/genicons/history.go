package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Mavwarf/exticons/internal/history"
	"github.com/Mavwarf/exticons/internal/paths"
)

const defaultHistoryLimit = 20

func showHistory(opts cliOptions, args []string) int {
	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	store, err := history.Open(cfg.Options.Storage, paths.DataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer store.Close()

	limit := defaultHistoryLimit
	if len(args) > 0 {
		if args[0] == "clear" {
			if err := store.Clear(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return 1
			}
			fmt.Printf("Cleared %s\n", store.Path())
			return 0
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			fmt.Fprintf(os.Stderr, "Error: history expects a count or 'clear', got %q\n", args[0])
			return 1
		}
		limit = n
	}

	entries, err := store.Entries(limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if len(entries) == 0 {
		fmt.Printf("No history in %s (enable with \"log\": true)\n", store.Path())
		return 0
	}
	printEntries(os.Stdout, entries)
	return 0
}

func printEntries(w io.Writer, entries []history.Entry) {
	for _, e := range entries {
		status := fmt.Sprintf("%6d B  %.12s", e.Bytes, e.SHA256)
		if !e.OK() {
			status = "error: " + e.Error
		}
		fmt.Fprintf(w, "%s  %-8s  %4d  %s  %s\n",
			e.Time.Local().Format("2006-01-02 15:04:05"), e.Variant, e.Size, e.Path, status)
	}
}
