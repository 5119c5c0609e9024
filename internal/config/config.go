// Package config loads the run configuration from defaults, an optional
// config file, the environment (optionally seeded from a .env file) and
// command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ironsheep/image-measure/internal/detection"
	"github.com/ironsheep/image-measure/internal/display"
	"github.com/ironsheep/image-measure/internal/imaging"
	"github.com/ironsheep/image-measure/internal/report"
	"github.com/ironsheep/image-measure/internal/units"
)

// EnvPrefix prefixes every environment variable, e.g. IMAGE_MEASURE_SCALE_FACTOR.
const EnvPrefix = "IMAGE_MEASURE"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the settings for one run.
type Config struct {
	Input       string   `mapstructure:"input"`
	OutputImage string   `mapstructure:"output_image"`
	OutputText  string   `mapstructure:"output_text"`
	MaxWidth    int      `mapstructure:"max_width"`
	GridSpacing int      `mapstructure:"grid_spacing"`
	ScaleFactor float64  `mapstructure:"scale_factor"`
	CannyLow    int      `mapstructure:"canny_low"`
	CannyHigh   int      `mapstructure:"canny_high"`
	MinBoxSize  int      `mapstructure:"min_box_size"`
	JPEGQuality int      `mapstructure:"jpeg_quality"`
	Display     string   `mapstructure:"display"`
	WindowTitle string   `mapstructure:"window_title"`
	Clicks      []string `mapstructure:"clicks"`
	Colors      Colors   `mapstructure:"colors"`
	LogLevel    string   `mapstructure:"log_level"`
	LogFormat   string   `mapstructure:"log_format"`
}

// Colors holds annotation colours as hex strings.
type Colors struct {
	Grid   string `mapstructure:"grid"`
	Box    string `mapstructure:"box"`
	Label  string `mapstructure:"label"`
	Marker string `mapstructure:"marker"`
	Line   string `mapstructure:"line"`
	Text   string `mapstructure:"text"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"input":        "input",
	"output":       "output_image",
	"output-text":  "output_text",
	"max-width":    "max_width",
	"grid":         "grid_spacing",
	"scale":        "scale_factor",
	"canny-low":    "canny_low",
	"canny-high":   "canny_high",
	"min-size":     "min_box_size",
	"quality":      "jpeg_quality",
	"display":      "display",
	"title":        "window_title",
	"log-level":    "log_level",
	"log-format":   "log_format",
	"color-grid":   "colors.grid",
	"color-box":    "colors.box",
	"color-label":  "colors.label",
	"color-marker": "colors.marker",
	"color-line":   "colors.line",
	"color-text":   "colors.text",
}

func setDefaults(v *viper.Viper) {
	palette := imaging.DefaultPalette()

	v.SetDefault("input", "")
	v.SetDefault("output_image", "output_annotated_image.jpg")
	v.SetDefault("output_text", "measurements.txt")
	v.SetDefault("max_width", imaging.DefaultMaxWidth)
	v.SetDefault("grid_spacing", imaging.DefaultGridSpacing)
	v.SetDefault("scale_factor", float64(units.DefaultScale))
	v.SetDefault("canny_low", imaging.DefaultCannyLow)
	v.SetDefault("canny_high", imaging.DefaultCannyHigh)
	v.SetDefault("min_box_size", detection.DefaultMinSize)
	v.SetDefault("jpeg_quality", report.DefaultJPEGQuality)
	v.SetDefault("display", string(display.DefaultKind()))
	v.SetDefault("window_title", "Measurement Tool")
	v.SetDefault("clicks", []string{})
	v.SetDefault("colors.grid", imaging.HexColor(palette.Grid))
	v.SetDefault("colors.box", imaging.HexColor(palette.Box))
	v.SetDefault("colors.label", imaging.HexColor(palette.Label))
	v.SetDefault("colors.marker", imaging.HexColor(palette.Marker))
	v.SetDefault("colors.line", imaging.HexColor(palette.Line))
	v.SetDefault("colors.text", imaging.HexColor(palette.Text))
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

// NewFlagSet returns the command-line flags understood by Load. Defaults are
// not repeated here; an unset flag falls through to the environment, the
// config file and finally the built-in defaults.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false

	fs.StringP("config", "c", "", "config file (yaml, json or toml)")
	fs.String("env-file", "", "load environment variables from this file (default .env if present)")
	fs.StringP("input", "i", "", "input image path (or first positional argument)")
	fs.StringP("output", "o", "", "annotated image path (default output_annotated_image.jpg)")
	fs.String("output-text", "", "measurements text path (default measurements.txt)")
	fs.Int("max-width", 0, "resize images wider than this many pixels (default 800, 0 keeps the flag unset)")
	fs.Int("grid", 0, "grid spacing in pixels (default 50)")
	fs.Float64("scale", 0, "centimetres per pixel (default 0.026)")
	fs.Int("canny-low", 0, "Canny low threshold (default 50)")
	fs.Int("canny-high", 0, "Canny high threshold (default 150)")
	fs.Int("min-size", 0, "discard boxes this many pixels wide or high, or smaller (default 10)")
	fs.Int("quality", 0, "JPEG/WebP output quality 1-100 (default 95)")
	fs.String("display", "", "display surface: window, stream or replay")
	fs.String("title", "", "window title (default \"Measurement Tool\")")
	fs.StringArray("click", nil, "replayed click as x,y (repeatable, replay display)")
	fs.String("log-level", "", "log level: debug, info, warn, error (default info)")
	fs.String("log-format", "", "log format: text or json (default text)")
	fs.String("color-grid", "", "grid colour (default #c8c8c8)")
	fs.String("color-box", "", "object box colour (default #00ff00)")
	fs.String("color-label", "", "object label colour (default #0000ff)")
	fs.String("color-marker", "", "click marker colour (default #ff0000)")
	fs.String("color-line", "", "measurement line colour (default #00ff00)")
	fs.String("color-text", "", "measurement text colour (default #00ffff)")
	return fs
}

// Load parses args (without the program name) and resolves the
// configuration. The first positional argument, if any, is the input path.
func Load(args []string) (*Config, error) {
	fs := NewFlagSet("image-measure")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	envFile, _ := fs.GetString("env-file")
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile, _ := fs.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for name, key := range flagKeys {
		if f := fs.Lookup(name); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}
	if fs.Changed("click") {
		clicks, _ := fs.GetStringArray("click")
		v.Set("clicks", clicks)
	}
	if fs.NArg() > 0 {
		v.Set("input", fs.Arg(0))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	// A plain string (environment variable) would be split on every comma by
	// the decoder; keep it whole so pairs survive.
	if raw, ok := v.Get("clicks").(string); ok {
		cfg.Clicks = []string{raw}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadEnvFile seeds the environment from path. With no path, a .env file in
// the working directory is loaded when present. Variables already set in the
// environment win.
func loadEnvFile(path string) error {
	if path == "" {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// Validate checks every setting and the parse of derived values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Input) == "" {
		return fmt.Errorf("%w: no input image given", ErrInvalid)
	}
	if c.OutputImage == "" || c.OutputText == "" {
		return fmt.Errorf("%w: output paths must not be empty", ErrInvalid)
	}
	if c.ScaleFactor <= 0 {
		return fmt.Errorf("%w: scale_factor must be positive", ErrInvalid)
	}
	if c.MaxWidth < 0 {
		return fmt.Errorf("%w: max_width must not be negative", ErrInvalid)
	}
	if c.GridSpacing < 0 {
		return fmt.Errorf("%w: grid_spacing must not be negative", ErrInvalid)
	}
	if c.CannyLow < 0 || c.CannyLow > c.CannyHigh {
		return fmt.Errorf("%w: canny thresholds must satisfy 0 <= low <= high", ErrInvalid)
	}
	if c.MinBoxSize < 0 {
		return fmt.Errorf("%w: min_box_size must not be negative", ErrInvalid)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("%w: jpeg_quality must be between 1 and 100", ErrInvalid)
	}
	if _, err := display.ParseKind(c.Display); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := c.ClickPoints(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := c.Palette(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json", ErrInvalid)
	}
	return nil
}

// Scale returns the configured pixel-to-centimetre scale.
func (c *Config) Scale() units.Scale {
	return units.Scale(c.ScaleFactor)
}

// DisplayKind returns the validated surface kind.
func (c *Config) DisplayKind() display.Kind {
	k, _ := display.ParseKind(c.Display)
	return k
}

// Palette parses the configured colours.
func (c *Config) Palette() (imaging.Palette, error) {
	var p imaging.Palette
	fields := []struct {
		name string
		hex  string
		dst  *color.NRGBA
	}{
		{"grid", c.Colors.Grid, &p.Grid},
		{"box", c.Colors.Box, &p.Box},
		{"label", c.Colors.Label, &p.Label},
		{"marker", c.Colors.Marker, &p.Marker},
		{"line", c.Colors.Line, &p.Line},
		{"text", c.Colors.Text, &p.Text},
	}
	for _, f := range fields {
		parsed, err := imaging.ParseColor(f.hex)
		if err != nil {
			return imaging.Palette{}, fmt.Errorf("colors.%s: %w", f.name, err)
		}
		*f.dst = parsed
	}
	return p, nil
}

// ClickPoints parses the replay clicks. Each point is an "x,y" pair of
// integers; several pairs may share one entry separated by spaces or
// semicolons ("10,20 30,40"). Anything else is an error.
func (c *Config) ClickPoints() ([]image.Point, error) {
	points := make([]image.Point, 0, len(c.Clicks))
	for _, entry := range c.Clicks {
		pairs := strings.FieldsFunc(entry, func(r rune) bool {
			return r == ';' || unicode.IsSpace(r)
		})
		for _, pair := range pairs {
			p, err := parsePoint(pair)
			if err != nil {
				return nil, err
			}
			points = append(points, p)
		}
	}
	return points, nil
}

func parsePoint(pair string) (image.Point, error) {
	xs, ys, ok := strings.Cut(pair, ",")
	if !ok {
		return image.Point{}, fmt.Errorf("clicks: %q is not an x,y pair", pair)
	}
	x, err := strconv.Atoi(xs)
	if err != nil {
		return image.Point{}, fmt.Errorf("clicks: bad x in %q: %w", pair, err)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return image.Point{}, fmt.Errorf("clicks: bad y in %q: %w", pair, err)
	}
	return image.Pt(x, y), nil
}
