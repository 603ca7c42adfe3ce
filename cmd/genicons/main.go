// genicons renders the browser-extension icons (16/32/48/128 px by default)
// into chrome-extension/icons. Run it from the repository root:
//
//	go run ./cmd/genicons
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"go.uber.org/zap"

	"github.com/Mavwarf/exticons/internal/config"
	"github.com/Mavwarf/exticons/internal/history"
	"github.com/Mavwarf/exticons/internal/icon"
	"github.com/Mavwarf/exticons/internal/paths"
	"github.com/Mavwarf/exticons/internal/render"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// cliOptions holds the global flags.
type cliOptions struct {
	configPath string
	variant    string
	outDir     string
	verbose    bool
	strict     bool
}

func main() {
	opts, rest, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cmd := "generate"
	if len(rest) > 0 {
		cmd = rest[0]
	}

	switch cmd {
	case "help", "-h", "--help":
		printUsage()
	case "version", "-V", "--version":
		printVersion()
	case "generate":
		os.Exit(runGenerate(opts))
	case "fonts":
		os.Exit(listFonts(opts))
	case "history":
		os.Exit(showHistory(opts, rest[1:]))
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", cmd)
		fmt.Fprintf(os.Stderr, "Run 'genicons help' for usage.\n")
		os.Exit(1)
	}
}

// parseArgs extracts global flags and returns the remaining arguments.
func parseArgs(args []string) (cliOptions, []string, error) {
	var opts cliOptions
	var rest []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config", "-c":
			if i+1 >= len(args) {
				return opts, nil, fmt.Errorf("--config requires a file path")
			}
			opts.configPath = args[i+1]
			i++
		case "--variant":
			if i+1 >= len(args) {
				return opts, nil, fmt.Errorf("--variant requires %s or %s", config.VariantAngular, config.VariantGradient)
			}
			opts.variant = args[i+1]
			i++
		case "--out", "-o":
			if i+1 >= len(args) {
				return opts, nil, fmt.Errorf("--out requires a directory")
			}
			opts.outDir = args[i+1]
			i++
		case "--verbose":
			opts.verbose = true
		case "--strict":
			opts.strict = true
		default:
			rest = append(rest, args[i])
		}
	}
	return opts, rest, nil
}

// loadConfig resolves the config file and applies command-line overrides.
// Priority: flags > EXTICONS_* environment > config file > defaults.
func loadConfig(opts cliOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if opts.variant != "" {
		cfg.Options.Variant = opts.variant
	}
	if opts.outDir != "" {
		cfg.Options.OutputDir = opts.outDir
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: logger: %v\n", err)
		return zap.NewNop()
	}
	return log
}

func runGenerate(opts cliOptions) int {
	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	log := newLogger(opts.verbose)
	defer log.Sync()

	r, err := render.New(cfg.Options, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g := &icon.Generator{
		Renderer:  r,
		OutputDir: cfg.Options.OutputDir,
		Sizes:     cfg.Options.Sizes,
		Favicon:   cfg.Options.Favicon,
		Log:       log,
		Out:       os.Stdout,
		Marks:     consoleMarks(os.Stdout),
	}
	run, err := g.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if cfg.Options.Log {
		if err := recordHistory(cfg, paths.DataDir(), run); err != nil {
			fmt.Fprintf(os.Stderr, "warning: history: %v\n", err)
		}
	}
	notifyAll(ctx, cfg.Options.Notify, run, os.Stderr)

	return exitCode(run, opts.strict)
}

// exitCode is 0 once every size was attempted; with strict, any failed
// size makes it 1.
func exitCode(run icon.Run, strict bool) int {
	if strict && run.Failed() > 0 {
		return 1
	}
	return 0
}

func recordHistory(cfg config.Config, dir string, run icon.Run) error {
	store, err := history.Open(cfg.Options.Storage, dir)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(run)
}

func printVersion() {
	fmt.Printf("genicons %s (%s) %s/%s\n", version, buildDate, runtime.GOOS, runtime.GOARCH)
}

func printUsage() {
	fmt.Printf("genicons %s - Generate the browser extension icons\n", version)
	fmt.Println(`
Usage:
  genicons [options]               Generate icons (default command)
  genicons [options] <command>

Options:
  --config, -c <path>    Path to exticons-config.json (or .toml)
  --variant <name>       Icon design: angular (default) or gradient
  --out, -o <dir>        Output directory (default: chrome-extension/icons)
  --verbose              Print diagnostics to stderr
  --strict               Exit with status 1 if any size fails

Commands:
  generate               Render every configured size (default)
  fonts                  Show which candidate font the gradient design uses
  history [n|clear]      Show the last n recorded icons (default 20)
  version, -V            Show version and build date
  help, -h, --help       Show this help message

Config resolution:
  1. --config <path>                          (explicit)
  2. exticons-config.json next to binary      (portable)
  3. ~/.config/exticons/exticons-config.json  (user default)
  4. built-in defaults
  EXTICONS_VARIANT, EXTICONS_OUTPUT_DIR, EXTICONS_SIZES, ... override the file.

Examples:
  genicons                         Write icon16/32/48/128.png
  genicons --variant gradient      Use the gradient design
  genicons -o dist/icons --strict  Build into dist/, fail CI on errors`)
}
