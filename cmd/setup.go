package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/selamanalytics/fidash/internal/config"
	"github.com/selamanalytics/fidash/internal/model"
	"github.com/selamanalytics/fidash/internal/source"
	"github.com/selamanalytics/fidash/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

// setupValues holds the wizard's form fields before they are applied.
type setupValues struct {
	dataDir    string
	theme      string
	targetPct  string
	targetYear string
	scenario   string
}

func newSetupValues(cfg config.Config) setupValues {
	return setupValues{
		dataDir:    cfg.Data.Dir,
		theme:      cfg.Appearance.Theme,
		targetPct:  strconv.FormatFloat(cfg.Goal.TargetPct, 'f', -1, 64),
		targetYear: strconv.Itoa(cfg.Goal.TargetYear),
		scenario:   cfg.Forecast.DefaultScenario,
	}
}

// apply copies validated form values onto cfg.
func (v setupValues) apply(cfg *config.Config) error {
	pct, err := parseTargetPct(v.targetPct)
	if err != nil {
		return err
	}
	year, err := parseTargetYear(v.targetYear)
	if err != nil {
		return err
	}
	sc, ok := model.LookupScenario(v.scenario)
	if !ok {
		return fmt.Errorf("unknown scenario %q", v.scenario)
	}

	cfg.Data.Dir = strings.TrimSpace(v.dataDir)
	cfg.Appearance.Theme = v.theme
	cfg.Goal.TargetPct = pct
	cfg.Goal.TargetYear = year
	cfg.Forecast.DefaultScenario = sc.Key()
	return nil
}

func parseTargetPct(s string) (float64, error) {
	pct, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || pct <= 0 || pct > 100 {
		return 0, fmt.Errorf("goal must be a percentage in (0, 100], got %q", s)
	}
	return pct, nil
}

func parseTargetYear(s string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || year < 2000 || year > 2100 {
		return 0, fmt.Errorf("target year must be between 2000 and 2100, got %q", s)
	}
	return year, nil
}

func newSetupForm(v *setupValues, found string) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name+"  ("+t.Description+")", t.Name))
	}
	scenarioOpts := make([]huh.Option[string], 0, len(model.Scenarios))
	for _, sc := range model.Scenarios {
		scenarioOpts = append(scenarioOpts, huh.NewOption(sc.Label(), sc.Key()))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to fidash!").
				Description(found),
			huh.NewInput().
				Title("Project root").
				Description("Directory containing data/processed/. Leave blank for the working directory.").
				Value(&v.dataDir),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Inclusion goal (%)").
				Value(&v.targetPct).
				Validate(func(s string) error { _, err := parseTargetPct(s); return err }),
			huh.NewInput().
				Title("Target year").
				Value(&v.targetYear).
				Validate(func(s string) error { _, err := parseTargetYear(s); return err }),
			huh.NewSelect[string]().
				Title("Default scenario").
				Options(scenarioOpts...).
				Value(&v.scenario),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&v.theme),
		),
	)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()
	vals := newSetupValues(cfg)

	paths := resolvePaths(cfg)
	found := "No input tables found yet. Run the notebooks to generate data/processed/."
	if missing := source.Discover(paths); len(missing) == 0 {
		found = fmt.Sprintf("Found input tables:\n  %s\n  %s", paths.Historical, paths.Forecast)
	}

	if err := newSetupForm(&vals, found).Run(); err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	if err := vals.apply(&cfg); err != nil {
		return err
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `fidash setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
