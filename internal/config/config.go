package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/Mavwarf/exticons/internal/fontfind"
	"github.com/Mavwarf/exticons/internal/paths"
)

// Variant names.
const (
	VariantAngular  = "angular"
	VariantGradient = "gradient"
)

// Resampling filter names.
const (
	FilterLanczos    = "lanczos"
	FilterCatmullRom = "catmullrom"
	FilterBilinear   = "bilinear"
)

// Storage backends for the run history.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

// DefaultSupersample is the drawing scale factor used before downsampling.
const DefaultSupersample = 4

// MaxFaviconSize is the largest image an ICO directory entry can describe.
const MaxFaviconSize = 256

// MaxQoS is the highest MQTT quality-of-service level.
const MaxQoS = 2

// EnvPrefix prefixes every environment override (EXTICONS_VARIANT, ...).
const EnvPrefix = "EXTICONS_"

// DefaultSizes returns the icon sizes a browser extension manifest expects.
func DefaultSizes() []int {
	return []int{16, 32, 48, 128}
}

// Webhook posts the run summary to an HTTP endpoint.
type Webhook struct {
	URL     string            `json:"url,omitempty" toml:"url"`
	Headers map[string]string `json:"headers,omitempty" toml:"headers"`
}

// MQTT publishes the run summary to a broker topic.
type MQTT struct {
	Broker   string `json:"broker,omitempty" toml:"broker"`
	Topic    string `json:"topic,omitempty" toml:"topic"`
	ClientID string `json:"client_id,omitempty" toml:"client_id"`
	QoS      byte   `json:"qos,omitempty" toml:"qos"`
	Retain   bool   `json:"retain,omitempty" toml:"retain"`
	Username string `json:"username,omitempty" toml:"username"`
	Password string `json:"password,omitempty" toml:"password"`
}

// Notify groups the optional post-run notifications.
type Notify struct {
	Webhook Webhook `json:"webhook,omitempty" toml:"webhook"`
	MQTT    MQTT    `json:"mqtt,omitempty" toml:"mqtt"`
}

// Options holds the generator settings parsed from the "config" key.
type Options struct {
	Variant     string   `json:"variant,omitempty" toml:"variant" env:"VARIANT"`
	OutputDir   string   `json:"output_dir,omitempty" toml:"output_dir" env:"OUTPUT_DIR"`
	Sizes       []int    `json:"sizes,omitempty" toml:"sizes" env:"SIZES" envSeparator:","`
	Supersample int      `json:"supersample,omitempty" toml:"supersample" env:"SUPERSAMPLE"`
	Filter      string   `json:"filter,omitempty" toml:"filter" env:"FILTER"`
	FontPaths   []string `json:"font_paths,omitempty" toml:"font_paths" env:"FONT_PATHS" envSeparator:","`
	Favicon     int      `json:"favicon,omitempty" toml:"favicon" env:"FAVICON"`
	Log         bool     `json:"log,omitempty" toml:"log" env:"LOG"`
	Storage     string   `json:"storage,omitempty" toml:"storage" env:"STORAGE"`
	Notify      Notify   `json:"notify,omitempty" toml:"notify"`
}

// Config is the top-level configuration file.
type Config struct {
	Options Options `json:"config" toml:"config"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	var c Config
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.Options.Variant = VariantAngular
	c.Options.OutputDir = paths.DefaultOutputDir
	c.Options.Sizes = DefaultSizes()
	c.Options.Supersample = DefaultSupersample
	c.Options.Filter = FilterLanczos
	c.Options.FontPaths = fontfind.DefaultCandidates()
	c.Options.Storage = StorageFile
}

// UnmarshalJSON sets defaults then decodes the JSON structure.
// Go's json.Unmarshal merges into existing struct fields, so only
// values present in JSON override the defaults. Slices present in the
// JSON replace the default slice entirely.
func (c *Config) UnmarshalJSON(data []byte) error {
	c.setDefaults()
	type Alias Config
	return json.Unmarshal(data, (*Alias)(c))
}

// Validate reports the first setting the generator cannot work with.
func (c Config) Validate() error {
	o := c.Options
	switch o.Variant {
	case VariantAngular, VariantGradient:
	default:
		return fmt.Errorf("unknown variant %q (want %s or %s)", o.Variant, VariantAngular, VariantGradient)
	}
	switch o.Filter {
	case FilterLanczos, FilterCatmullRom, FilterBilinear:
	default:
		return fmt.Errorf("unknown filter %q (want %s, %s or %s)", o.Filter, FilterLanczos, FilterCatmullRom, FilterBilinear)
	}
	switch o.Storage {
	case StorageFile, StorageSQLite:
	default:
		return fmt.Errorf("unknown storage %q (want %s or %s)", o.Storage, StorageFile, StorageSQLite)
	}
	if o.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if len(o.Sizes) == 0 {
		return fmt.Errorf("sizes must not be empty")
	}
	for _, s := range o.Sizes {
		if s <= 0 {
			return fmt.Errorf("invalid size %d: must be positive", s)
		}
	}
	if o.Supersample < 1 {
		return fmt.Errorf("invalid supersample %d: must be at least 1", o.Supersample)
	}
	if o.Favicon < 0 || o.Favicon > MaxFaviconSize {
		return fmt.Errorf("invalid favicon size %d: must be 0 to %d", o.Favicon, MaxFaviconSize)
	}
	if q := o.Notify.MQTT.QoS; q > MaxQoS {
		return fmt.Errorf("invalid mqtt qos %d: must be 0 to %d", q, MaxQoS)
	}
	return nil
}

// Load reads and parses a config file. It tries, in order:
//  1. explicitPath (if non-empty; missing file is an error)
//  2. exticons-config.json next to the running binary
//  3. ~/.config/exticons/exticons-config.json
//  4. built-in defaults
//
// EXTICONS_* environment variables are applied on top of the result.
func Load(explicitPath string) (Config, error) {
	cfg, err := locate(explicitPath)
	if err != nil {
		return Config{}, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func locate(explicitPath string) (Config, error) {
	if explicitPath != "" {
		return readConfig(explicitPath)
	}

	// Next to binary
	exe, err := os.Executable()
	if err == nil {
		p := filepath.Join(filepath.Dir(exe), paths.ConfigFileName)
		if _, err := os.Stat(p); err == nil {
			return readConfig(p)
		}
	}

	// User config directory
	home, err := os.UserHomeDir()
	if err == nil {
		var p string
		if runtime.GOOS == "windows" {
			p = filepath.Join(home, "AppData", "Roaming", paths.AppDirName, paths.ConfigFileName)
		} else {
			p = filepath.Join(home, ".config", paths.AppDirName, paths.ConfigFileName)
		}
		if _, err := os.Stat(p); err == nil {
			return readConfig(p)
		}
	}

	return Default(), nil
}

// ApplyEnv overrides cfg with any EXTICONS_* environment variables.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(&cfg.Options, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	return nil
}

func readConfig(path string) (Config, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		cfg := Default()
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
