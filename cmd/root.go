package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/huangsam/pubviz/core"
	"github.com/huangsam/pubviz/internal/contract"
	"github.com/huangsam/pubviz/internal/logger"
	"github.com/huangsam/pubviz/schema"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd renders the build performance chart.
var rootCmd = &cobra.Command{
	Use:   "pubviz",
	Short: "Chart how many built commits get published and how long it takes.",
	Long: `Pubviz reads a commit summary and draws a three-panel chart.

Panels:
- Weekly built and published commit counts
- Weekly publication rate
- Monthly distribution of the delay between commit and publication

The summary is a JSON array of {date, published, publishedTime} objects.

Examples:
  # Open the chart in the system viewer
  pubviz --data-dir ./out

  # Write an SVG next to the summary file
  pubviz -d ./out --display file --format svg

  # Weeks ending on Friday, tolerate clock skew
  pubviz -d ./out --week-end friday --allow-anomalies`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Args:               cobra.NoArgs,
	PreRunE:            sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteVisualize(rootCtx, cfg)
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Optional .env in the working directory
	if err := loadDotEnv(".env"); err != nil {
		contract.LogWarn("Cannot load .env", err)
	}

	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".pubviz") // Name of config file (without extension)
		viper.SetConfigType("yaml")    // We'll use YAML format
		viper.AddConfigPath(".")       // Look in the current directory
		viper.AddConfigPath("$HOME")   // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("PUBVIZ")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("data-file", contract.DefaultDataFile)
	viper.SetDefault("week-end", contract.DefaultWeekEnd)
	viper.SetDefault("display", schema.AutoDisplay)
	viper.SetDefault("format", schema.PNGFormat)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("log-level", contract.DefaultLogLevel)
	viper.SetDefault("color", "yes")
}

// loadDotEnv exports the variables of an env file that are not set yet.
// A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(cmd *cobra.Command) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		if errors.Is(err, contract.ErrArgument) {
			_ = cmd.Usage()
		}
		return err
	}

	// 4. Attach diagnostics to the root context
	log := logger.New(cfg.LogLevel)
	rootCtx = core.WithLogger(rootCtx, log)
	log.Debugf("using config file %q", viper.ConfigFileUsed())
	return nil
}

// sharedSetupWrapper adapts sharedSetup to Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, _ []string) error {
	return sharedSetup(cmd)
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	rootCtx = ctx
	return rootCmd.ExecuteContext(ctx)
}
