package contract

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/pubviz/schema"
)

// Default values for configuration.
const (
	DefaultDataFile  = "summary.json"
	DefaultWeekEnd   = "sunday"
	DefaultLogLevel  = "info"
	DefaultPrecision = 1
	MinImageSize     = 200
	MaxImageSize     = 8000
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for one invocation.
// This struct is the "final, validated" config.
type Config struct {
	DataDir  string
	DataFile string

	WeekEnd        time.Weekday
	AllowAnomalies bool

	Display    schema.DisplayMode
	Format     schema.ImageFormat
	OutputFile string
	Title      string
	Width      int
	Height     int

	Output    schema.OutputMode
	Precision int
	UseColors bool

	LogLevel string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	DataDir        string `mapstructure:"data-dir"`
	DataFile       string `mapstructure:"data-file"`
	WeekEnd        string `mapstructure:"week-end"`
	AllowAnomalies bool   `mapstructure:"allow-anomalies"`
	OutputFile     string `mapstructure:"output-file"`
	LogLevel       string `mapstructure:"log-level"`
	Color          string `mapstructure:"color"`

	// --- Fields from rootCmd.Flags() ---
	Display string `mapstructure:"display"`
	Format  string `mapstructure:"format"`
	Title   string `mapstructure:"title"`
	Width   int    `mapstructure:"width"`
	Height  int    `mapstructure:"height"`

	// --- Fields from summaryCmd.Flags() ---
	Output    string `mapstructure:"output"`
	Precision int    `mapstructure:"precision"`
}

// InputPath returns the summary file location.
func (c *Config) InputPath() string {
	return filepath.Join(c.DataDir, c.DataFile)
}

// ImagePath returns where the file display writes the chart.
// It defaults to the data file name with the image extension, next to the data file.
func (c *Config) ImagePath() string {
	if c.OutputFile != "" {
		return c.OutputFile
	}
	base := strings.TrimSuffix(c.DataFile, filepath.Ext(c.DataFile))
	return filepath.Join(c.DataDir, base+"."+string(c.Format))
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := processDataSource(cfg, input); err != nil {
		return err
	}
	if err := processBucketing(cfg, input); err != nil {
		return err
	}
	if err := processRendering(cfg, input); err != nil {
		return err
	}
	if err := processReporting(cfg, input); err != nil {
		return err
	}
	return nil
}

// processDataSource validates the input location.
func processDataSource(cfg *Config, input *ConfigRawInput) error {
	cfg.DataDir = strings.TrimSpace(input.DataDir)
	if cfg.DataDir == "" {
		return ArgumentError("--data-dir is required")
	}
	cfg.DataFile = strings.TrimSpace(input.DataFile)
	if cfg.DataFile == "" {
		cfg.DataFile = DefaultDataFile
	}
	if filepath.IsAbs(cfg.DataFile) {
		return ArgumentError("--data-file must be relative to --data-dir (received %s)", cfg.DataFile)
	}
	return nil
}

// processBucketing handles the week boundary and anomaly policy.
func processBucketing(cfg *Config, input *ConfigRawInput) error {
	weekEnd := input.WeekEnd
	if weekEnd == "" {
		weekEnd = DefaultWeekEnd
	}
	day, err := ParseWeekday(weekEnd)
	if err != nil {
		return ArgumentError("invalid --week-end value: %v", err)
	}
	cfg.WeekEnd = day
	cfg.AllowAnomalies = input.AllowAnomalies
	return nil
}

// processRendering validates the chart output options.
func processRendering(cfg *Config, input *ConfigRawInput) error {
	cfg.Display = schema.DisplayMode(strings.ToLower(input.Display))
	if cfg.Display == "" {
		cfg.Display = schema.AutoDisplay
	}
	if _, ok := schema.ValidDisplayModes[cfg.Display]; !ok {
		return ArgumentError("invalid display '%s'. must be auto, viewer, file, none", input.Display)
	}

	cfg.Format = schema.ImageFormat(strings.ToLower(input.Format))
	if cfg.Format == "" {
		cfg.Format = schema.PNGFormat
	}
	if _, ok := schema.ValidImageFormats[cfg.Format]; !ok {
		return ArgumentError("invalid format '%s'. must be png, svg", input.Format)
	}

	cfg.Title = strings.TrimSpace(input.Title)
	if cfg.Title == "" {
		cfg.Title = schema.DefaultTitle
	}

	cfg.Width = input.Width
	if cfg.Width == 0 {
		cfg.Width = schema.DefaultImageWidth
	}
	cfg.Height = input.Height
	if cfg.Height == 0 {
		cfg.Height = schema.DefaultImageHeight
	}
	if cfg.Width < MinImageSize || cfg.Width > MaxImageSize {
		return ArgumentError("width must be between %d and %d (received %d)", MinImageSize, MaxImageSize, cfg.Width)
	}
	if cfg.Height < MinImageSize || cfg.Height > MaxImageSize {
		return ArgumentError("height must be between %d and %d (received %d)", MinImageSize, MaxImageSize, cfg.Height)
	}

	cfg.OutputFile = strings.TrimSpace(input.OutputFile)
	return nil
}

// processReporting validates the summary report options.
func processReporting(cfg *Config, input *ConfigRawInput) error {
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return ArgumentError("invalid output format '%s'. must be text, csv, json, yaml, parquet, prom", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return ArgumentError("--output-file is required for parquet output")
	}

	cfg.Precision = input.Precision
	if cfg.Precision == 0 {
		cfg.Precision = DefaultPrecision
	}
	if cfg.Precision < 1 || cfg.Precision > 2 {
		return ArgumentError("precision must be 1 or 2 (received %d)", input.Precision)
	}

	color := input.Color
	if color == "" {
		color = "yes"
	}
	colors, err := ParseBoolString(color)
	if err != nil {
		return ArgumentError("invalid --color value: %v", err)
	}
	cfg.UseColors = colors

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(input.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	return nil
}

// ParseWeekday parses an English weekday name or its three-letter abbreviation.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday: %q", s)
}
