// Package cmd implements the fidash CLI commands.
package cmd

import (
	"fmt"
	"sort"

	"github.com/selamanalytics/fidash/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if ok, err := emitStructured(cfg); ok {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	paths := resolvePaths(cfg)
	fmt.Println("  [Data]")
	if dir := config.GetDataDir(cfg); dir != "" {
		fmt.Printf("    Directory:   %s\n", dir)
	} else {
		fmt.Println("    Directory:   (working directory)")
	}
	fmt.Printf("    Historical:  %s\n", paths.Historical)
	fmt.Printf("    Forecast:    %s\n", paths.Forecast)
	fmt.Println()

	fmt.Println("  [Goal]")
	fmt.Printf("    Target:      %.1f%% by %d\n", cfg.Goal.TargetPct, cfg.Goal.TargetYear)
	fmt.Println()

	fmt.Println("  [Metrics]")
	fmt.Printf("    Latest mode: %s\n", cfg.Metrics.LatestMode)
	fmt.Println()

	fmt.Println("  [Forecast]")
	fmt.Printf("    Indicator:   %s\n", cfg.Forecast.DefaultIndicator)
	fmt.Printf("    Scenario:    %s\n", cfg.Forecast.DefaultScenario)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:       %s\n", cfg.Appearance.Theme)
	fmt.Println()

	if len(cfg.Indicators.Overrides) > 0 {
		codes := make([]string, 0, len(cfg.Indicators.Overrides))
		for code := range cfg.Indicators.Overrides {
			codes = append(codes, code)
		}
		sort.Strings(codes)

		fmt.Println("  [Indicators]")
		for _, code := range codes {
			info := config.LookupIndicator(cfg, code)
			fmt.Printf("    %-20s %s (%s)\n", info.Code, info.Label, info.Unit)
		}
		fmt.Println()
	}

	fmt.Println("  Run `fidash setup` to reconfigure.")
	return nil
}
