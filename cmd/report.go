package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/selamanalytics/fidash/internal/config"
	"github.com/selamanalytics/fidash/internal/model"
	"github.com/selamanalytics/fidash/internal/pipeline"
	"github.com/selamanalytics/fidash/internal/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagHTMLOut        string
	flagPDFOut         string
	flagReportScenario string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export all four views as an HTML chart page and an optional PDF brief",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&flagHTMLOut, "html", "fidash_report.html", "HTML output path (empty to skip)")
	reportCmd.Flags().StringVar(&flagPDFOut, "pdf", "", "PDF brief output path")
	reportCmd.Flags().StringVarP(&flagReportScenario, "scenario", "s", "", "Scenario for the forecast charts (default from config)")
	rootCmd.AddCommand(reportCmd)
}

// buildReport renders every view. Indicators without forecast rows are
// skipped with a warning.
func buildReport(ds *model.Dataset, cfg config.Config, sc model.Scenario) (report.Report, []string, error) {
	r := report.Report{GeneratedAt: time.Now()}
	var warnings []string

	ov, err := pipeline.BuildOverview(ds, cfg)
	if err != nil {
		return r, nil, fmt.Errorf("building overview: %w", err)
	}
	r.Overview = ov
	warnings = append(warnings, ov.Warnings...)

	r.Trends = pipeline.BuildTrends(ds, cfg)
	warnings = append(warnings, r.Trends.Warnings...)

	for _, target := range config.ForecastTargets(cfg) {
		fv, err := pipeline.BuildForecast(ds, cfg, target.Code, sc)
		if errors.Is(err, pipeline.ErrIndicatorNotFound) {
			warnings = append(warnings, fmt.Sprintf("no forecast rows for %s", target.Code))
			continue
		}
		if err != nil {
			return r, nil, fmt.Errorf("building forecast for %s: %w", target.Code, err)
		}
		r.Forecasts = append(r.Forecasts, fv)
	}

	r.Policy = pipeline.BuildPolicy(ds, cfg)
	return r, warnings, nil
}

func runReport(_ *cobra.Command, _ []string) error {
	if flagHTMLOut == "" && flagPDFOut == "" {
		return errors.New("nothing to write: pass --html and/or --pdf")
	}

	cfg := loadConfig()
	scenario := flagReportScenario
	if scenario == "" {
		scenario = cfg.Forecast.DefaultScenario
	}
	sc, err := pipeline.ParseScenario(scenario)
	if err != nil {
		return err
	}

	ds, err := loadData(cfg)
	if err != nil || ds == nil {
		return err
	}

	r, warnings, err := buildReport(ds, cfg, sc)
	if err != nil {
		return err
	}
	printWarnings(warnings)

	if flagHTMLOut != "" {
		if err := writeFile(flagHTMLOut, func(f *os.File) error { return report.WriteHTML(f, r) }); err != nil {
			return err
		}
		logger.Info("html report written", zap.String("path", flagHTMLOut))
		fmt.Printf("  Wrote %s\n", flagHTMLOut)
	}
	if flagPDFOut != "" {
		if err := writeFile(flagPDFOut, func(f *os.File) error { return report.WritePDF(f, r) }); err != nil {
			return err
		}
		logger.Info("pdf brief written", zap.String("path", flagPDFOut))
		fmt.Printf("  Wrote %s\n", flagPDFOut)
	}
	return nil
}

func writeFile(path string, render func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := render(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
