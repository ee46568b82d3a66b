package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/selamanalytics/fidash/internal/cli"
	"github.com/selamanalytics/fidash/internal/config"
	"github.com/selamanalytics/fidash/internal/logging"
	"github.com/selamanalytics/fidash/internal/model"
	"github.com/selamanalytics/fidash/internal/pipeline"
	"github.com/selamanalytics/fidash/internal/source"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagDataDir  string
	flagQuiet    bool
	flagLogLevel string
	flagLogFile  string
	flagFormat   string
)

// logger is built in PersistentPreRunE and synced after every command.
var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "fidash",
	Short: "Ethiopia Financial Inclusion Forecast Dashboard",
	Long: "Explore historical financial inclusion indicators for Ethiopia and the\n" +
		"2025-2027 forecast scenarios: overview, trends, forecast and policy views.",
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	PersistentPostRun: func(_ *cobra.Command, _ []string) { _ = logger.Sync() },
	RunE:              runOverview,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Project root containing data/processed/ (default: config, then cwd)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error, off (default warn)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "o", formatTable, "Output format: table, json, yaml")
}

func setupLogging(_ *cobra.Command, _ []string) error {
	l, err := logging.New(logging.Options{Level: flagLogLevel, Output: flagLogFile})
	if err != nil {
		return err
	}
	logger = l
	return validateFormat()
}

// loadConfig returns the user config, falling back to defaults with a
// warning when the file can't be parsed.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		logger.Warn("config unusable, using defaults", zap.String("path", config.ConfigPath()), zap.Error(err))
		return config.DefaultConfig()
	}
	return cfg
}

// resolvePaths applies --data-dir, then FIDASH_DATA_DIR / [data].dir, then
// any explicit per-table paths from the config.
func resolvePaths(cfg config.Config) source.Paths {
	dir := flagDataDir
	if dir == "" {
		dir = config.GetDataDir(cfg)
	}
	return source.DefaultPaths(dir).WithOverrides(cfg.Data.HistoricalPath, cfg.Data.ForecastPath)
}

// newLoader builds the memoized file loader shared by every view in a run.
func newLoader(paths source.Paths) pipeline.Loader {
	return pipeline.Memo(pipeline.FileLoader{
		Paths: paths,
		Progress: func(current, total int) {
			if flagQuiet || flagFormat != formatTable {
				return
			}
			fmt.Fprintf(os.Stderr, "\r  Loading tables [%d/%d]", current, total)
		},
	})
}

// reportMissing prints the blocking message. Table output shows it on
// stdout and carries on; JSON and YAML put it on stderr and fail.
func reportMissing(stdout, stderr io.Writer, format string, missing []string) error {
	if format == formatTable {
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, cli.RenderWarning(pipeline.MissingDataMessage))
		fmt.Fprintln(stdout)
		return nil
	}
	fmt.Fprintln(stderr, pipeline.MissingDataMessage)
	return fmt.Errorf("%w: %s", pipeline.ErrMissingData, strings.Join(missing, ", "))
}

// loadData is the shared data loading path used by all commands. A nil
// dataset with a nil error means the tables are missing and the blocking
// message has already been printed. Structured formats get ErrMissingData
// instead so stdout stays parseable.
func loadData(cfg config.Config) (*model.Dataset, error) {
	paths := resolvePaths(cfg)
	logger.Debug("loading tables",
		zap.String("historical", paths.Historical),
		zap.String("forecast", paths.Forecast))

	result, err := newLoader(paths).Load()
	if err != nil {
		logger.Error("load failed", zap.Error(err))
		return nil, err
	}

	ds, err := result.Require()
	if errors.Is(err, pipeline.ErrMissingData) {
		logger.Info("input tables missing", zap.Strings("paths", result.Missing))
		return nil, reportMissing(os.Stdout, os.Stderr, flagFormat, result.Missing)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("tables loaded",
		zap.Int("observations", len(ds.Observations)),
		zap.Int("forecast_rows", len(ds.Forecasts)),
		zap.Int("other_records", result.OtherRecords),
		zap.Int("parse_errors", result.ParseErrors),
		zap.Duration("elapsed", result.Elapsed))
	logger.Debug("indicators present", zap.Strings("codes", pipeline.IndicatorCodes(ds.Observations)))

	if !flagQuiet && flagFormat == formatTable {
		fmt.Fprintf(os.Stderr, "\r  Loaded %s observations and %s forecast rows in %s    \n",
			cli.FormatNumber(int64(len(ds.Observations))),
			cli.FormatNumber(int64(len(ds.Forecasts))),
			cli.FormatElapsed(result.Elapsed))
		if result.ParseErrors > 0 {
			fmt.Fprintf(os.Stderr, "  %d rows could not be parsed\n", result.ParseErrors)
		}
	}

	return ds, nil
}

// printWarnings logs and prints non-fatal view warnings.
func printWarnings(warnings []string) {
	for _, w := range warnings {
		logger.Info("view warning", zap.String("detail", w))
		if !flagQuiet {
			fmt.Fprintln(os.Stderr, cli.RenderWarning(w))
		}
	}
}
