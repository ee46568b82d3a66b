package cmd

import (
	"fmt"

	"github.com/selamanalytics/fidash/internal/cli"
	"github.com/selamanalytics/fidash/internal/model"
	"github.com/selamanalytics/fidash/internal/pipeline"

	"github.com/spf13/cobra"
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Executive overview: headline KPIs and progress toward the NFIS goal",
	RunE:  runOverview,
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}

func runOverview(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	ds, err := loadData(cfg)
	if err != nil || ds == nil {
		return err
	}

	view, err := pipeline.BuildOverview(ds, cfg)
	if err != nil {
		return fmt.Errorf("building overview: %w", err)
	}

	if ok, err := emitStructured(view); ok {
		return err
	}

	printWarnings(view.Warnings)
	fmt.Print(renderOverview(view))
	return nil
}

func renderOverview(view model.OverviewView) string {
	out := "\n" + cli.RenderTitle(view.Title) + "\n"
	out += "  " + view.Subtitle + "\n\n"

	rows := make([][]string, 0, len(view.KPIs))
	for _, k := range view.KPIs {
		note := k.Caption
		if k.HasDelta {
			note = cli.FormatPointDelta(k.Delta)
		}
		rows = append(rows, []string{k.Label, cli.FormatKPI(k), note})
	}
	out += cli.RenderTable(cli.Table{
		Title:   "Key Metrics",
		Headers: []string{"Metric", "Value", "Note"},
		Rows:    rows,
	})
	out += "\n"

	g := view.Goal
	out += cli.RenderHeading(fmt.Sprintf("Progress toward %.0f%% Inclusion Goal", g.TargetPct), "")
	out += "  " + cli.RenderProgressBar(g.Progress, 40, g.OnTrack) + "\n"
	out += fmt.Sprintf("  Current: %s | Target: %s | Status: %s\n",
		cli.FormatPct(g.Current), cli.FormatPct(g.TargetPct), cli.RenderStatus(g.Status, g.OnTrack))
	out += fmt.Sprintf("  Forecast %d: %s\n", g.TargetYear, cli.FormatPct(g.Forecast))

	for _, n := range view.Notes {
		out += cli.RenderNote(n) + "\n"
	}
	return out + "\n"
}
