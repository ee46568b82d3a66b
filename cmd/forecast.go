package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/selamanalytics/fidash/internal/cli"
	"github.com/selamanalytics/fidash/internal/config"
	"github.com/selamanalytics/fidash/internal/model"
	"github.com/selamanalytics/fidash/internal/pipeline"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagIndicator string
	flagScenario  string
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Forecast engine: 2025-2027 projection for one indicator and scenario",
	Long: "Project an indicator under one of three scenarios.\n\n" +
		"Indicators: ACC_OWNERSHIP (Access), ACC_MM_ACCOUNT (Usage)\n" +
		"Scenarios:  base, optimistic, pessimistic",
	RunE: runForecast,
}

func init() {
	forecastCmd.Flags().StringVarP(&flagIndicator, "indicator", "i", "", "Indicator code (default from config)")
	forecastCmd.Flags().StringVarP(&flagScenario, "scenario", "s", "", "Scenario: base, optimistic, pessimistic (default from config)")
	rootCmd.AddCommand(forecastCmd)
}

// selection resolves the indicator and scenario from flags, falling back to
// the configured defaults.
func selection(cfg config.Config, indicator, scenario string) (string, model.Scenario, error) {
	if indicator == "" {
		indicator = cfg.Forecast.DefaultIndicator
	}
	code := config.NormalizeIndicatorCode(indicator)
	if !config.IsForecastTarget(code) {
		codes := make([]string, 0)
		for _, t := range config.ForecastTargets(cfg) {
			codes = append(codes, t.Code)
		}
		return "", 0, fmt.Errorf("unknown indicator %q (want one of %s)", indicator, strings.Join(codes, ", "))
	}

	if scenario == "" {
		scenario = cfg.Forecast.DefaultScenario
	}
	sc, err := pipeline.ParseScenario(scenario)
	if err != nil {
		return "", 0, err
	}
	return code, sc, nil
}

func runForecast(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	code, sc, err := selection(cfg, flagIndicator, flagScenario)
	if err != nil {
		return err
	}

	ds, err := loadData(cfg)
	if err != nil || ds == nil {
		return err
	}

	view, err := pipeline.BuildForecast(ds, cfg, code, sc)
	if errors.Is(err, pipeline.ErrIndicatorNotFound) {
		logger.Info("no forecast rows", zap.String("indicator", code))
		fmt.Println()
		fmt.Println(cli.RenderWarning(fmt.Sprintf("No forecast available for %s.", code)))
		fmt.Println()
		return nil
	}
	if err != nil {
		return fmt.Errorf("building forecast: %w", err)
	}

	if ok, err := emitStructured(view); ok {
		return err
	}

	fmt.Print(renderForecast(view))
	return nil
}

func renderForecast(view model.ForecastView) string {
	unit := view.Forecast.Unit
	out := "\n" + cli.RenderTitle(view.Title) + "\n\n"

	out += fmt.Sprintf("  Scenario: %s   Final: %s (%d)\n",
		view.Scenario.Label(),
		cli.FormatValue(view.Annotation.Value, unit),
		view.Annotation.Date.Year())

	hist := make([]float64, 0, len(view.Historical.Points)+len(view.Forecast.Points))
	for _, p := range view.Historical.Points {
		hist = append(hist, p.Value)
	}
	proj := make([]float64, 0, len(view.Forecast.Points))
	for _, p := range view.Forecast.Points {
		proj = append(proj, p.Value)
	}
	if len(hist) > 0 {
		out += "  Historical " + cli.RenderSparkline(hist) + "\n"
	}
	out += "  Projected  " + cli.RenderSparkline(proj) + "\n\n"

	rows := make([][]string, 0, len(view.Table))
	for _, r := range view.Table {
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.Year),
			cli.FormatValue(r.Base, unit),
			cli.FormatValue(r.Pessimistic, unit),
			cli.FormatValue(r.Optimistic, unit),
		})
	}
	out += cli.RenderTable(cli.Table{
		Title:   "Forecast Data",
		Headers: []string{"Year", "Base", "Pessimistic", "Optimistic"},
		Rows:    rows,
	})

	if view.ScenarioNote != "" {
		out += "\n" + cli.RenderNote(view.ScenarioNote) + "\n"
	}
	return out + "\n"
}
