package cmd

import (
	"fmt"

	"github.com/selamanalytics/fidash/internal/tui"
	"github.com/selamanalytics/fidash/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor so background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	// Logs on stderr would tear the alt screen
	tuiLogger := logger
	if flagLogFile == "" {
		tuiLogger = zap.NewNop()
	}

	app := tui.NewApp(cfg, newLoader(resolvePaths(cfg)), tuiLogger)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
