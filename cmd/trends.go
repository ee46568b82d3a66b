package cmd

import (
	"fmt"
	"time"

	"github.com/selamanalytics/fidash/internal/cli"
	"github.com/selamanalytics/fidash/internal/model"
	"github.com/selamanalytics/fidash/internal/pipeline"
	"github.com/selamanalytics/fidash/internal/source"

	"github.com/spf13/cobra"
)

var (
	flagSince string
	flagUntil string
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Trend analysis: the Telebirr paradox and the mobile ceiling",
	RunE:  runTrends,
}

func init() {
	trendsCmd.Flags().StringVar(&flagSince, "since", "", "Only observations on or after this date (e.g. 2017 or 2021-06-30)")
	trendsCmd.Flags().StringVar(&flagUntil, "until", "", "Only observations before this date")
	rootCmd.AddCommand(trendsCmd)
}

// parseWindow turns --since/--until into a [since, until) window. Zero bounds
// are open.
func parseWindow(since, until string) (time.Time, time.Time, error) {
	var from, to time.Time
	var err error
	if since != "" {
		if from, err = source.ParseDate(since); err != nil {
			return from, to, fmt.Errorf("--since: %w", err)
		}
	}
	if until != "" {
		if to, err = source.ParseDate(until); err != nil {
			return from, to, fmt.Errorf("--until: %w", err)
		}
	}
	if !from.IsZero() && !to.IsZero() && !to.After(from) {
		return from, to, fmt.Errorf("--until %s must be after --since %s", until, since)
	}
	return from, to, nil
}

func runTrends(_ *cobra.Command, _ []string) error {
	from, to, err := parseWindow(flagSince, flagUntil)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	ds, err := loadData(cfg)
	if err != nil || ds == nil {
		return err
	}

	if !from.IsZero() || !to.IsZero() {
		windowed := *ds
		windowed.Observations = pipeline.FilterByDateRange(ds.Observations, from, to)
		ds = &windowed
	}

	view := pipeline.BuildTrends(ds, cfg)
	if ok, err := emitStructured(view); ok {
		return err
	}

	printWarnings(view.Warnings)
	fmt.Println()
	fmt.Println(cli.RenderTitle(view.Title))
	fmt.Println()
	for _, panel := range []model.TrendPanel{view.Paradox, view.Ceiling} {
		fmt.Print(renderTrendPanel(panel))
		fmt.Println()
	}

	switch {
	case view.Correlation != nil:
		fmt.Printf("  Ownership vs. mobile penetration: r = %.2f over %d aligned years\n\n",
			*view.Correlation, view.AlignedYears)
	case view.AlignedYears > 0:
		fmt.Println(cli.RenderNote(fmt.Sprintf(
			"only %d aligned years of ownership and mobile penetration; correlation not reported",
			view.AlignedYears)))
		fmt.Println()
	}
	return nil
}

func renderTrendPanel(p model.TrendPanel) string {
	out := cli.RenderHeading(p.Title+": "+p.Heading, p.Narrative) + "\n"

	rows := make([][]string, 0, len(p.Series))
	for _, s := range p.Series {
		if s.Empty() {
			rows = append(rows, []string{s.Name, "-", "-", "-", ""})
			continue
		}
		first, last := s.Points[0], s.Points[len(s.Points)-1]
		vals := make([]float64, len(s.Points))
		for i, pt := range s.Points {
			vals[i] = pt.Value
		}
		rows = append(rows, []string{
			s.Name,
			fmt.Sprintf("%s (%d)", cli.FormatValue(first.Value, s.Unit), first.Date.Year()),
			fmt.Sprintf("%s (%d)", cli.FormatValue(last.Value, s.Unit), last.Date.Year()),
			cli.FormatNumber(int64(len(s.Points))),
			cli.RenderSparkline(vals),
		})
	}

	return out + cli.RenderTable(cli.Table{
		Headers: []string{"Series", "First", "Last", "Points", "Trend"},
		Rows:    rows,
	})
}
