package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestByName_FallsBackToFlexoki(t *testing.T) {
	assert.Equal(t, "tokyo-night", ByName("tokyo-night").Name)
	assert.Equal(t, FlexokiDark.Name, ByName("no-such-theme").Name)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"flexoki-dark", "catppuccin-mocha", "tokyo-night", "terminal"}, Names())
}

func TestSeries(t *testing.T) {
	assert.Equal(t, lipgloss.Color("#27ae60"), FlexokiDark.Series("#27ae60", 0))
	assert.Equal(t, lipgloss.Color("2"), Terminal.Series("#27ae60", 1))
	assert.Equal(t, lipgloss.Color("2"), Terminal.Series("#27ae60", 7))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, FlexokiDark.OnTrack, FlexokiDark.Status(true))
	assert.Equal(t, FlexokiDark.AtRisk, FlexokiDark.Status(false))
}

func TestEveryThemeHasDescription(t *testing.T) {
	for _, th := range All {
		assert.NotEmpty(t, th.Description, th.Name)
	}
}
