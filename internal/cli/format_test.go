package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/selamanalytics/fidash/internal/model"
)

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1234, "1.2K"},
		{54_000_000, "54.0M"},
		{1_234_567_890, "1.2B"},
		{-2500, "-2.5K"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCount(tt.in), "FormatCount(%v)", tt.in)
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "1,000", FormatNumber(1000))
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
	assert.Equal(t, "-12,345", FormatNumber(-12345))
}

func TestFormatPointDelta(t *testing.T) {
	assert.Equal(t, "+15.4 pp", FormatPointDelta(15.4))
	assert.Equal(t, "+0.0 pp", FormatPointDelta(0))
	assert.Equal(t, "-2.0 pp", FormatPointDelta(-2))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "49.0%", FormatValue(49, model.UnitPercent))
	assert.Equal(t, "54.0M", FormatValue(54_000_000, model.UnitCount))
	assert.Equal(t, "81.7%", FormatPercent(49.0/60.0))
}

func TestFormatKPI(t *testing.T) {
	assert.Equal(t, "n/a", FormatKPI(model.KPI{Value: 12, Unit: model.UnitPercent}))
	assert.Equal(t, "64.4%", FormatKPI(model.KPI{Value: 64.4, Unit: model.UnitPercent, Available: true}))
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "1.5ms", FormatElapsed(1500*time.Microsecond))
	assert.Equal(t, "2.00s", FormatElapsed(2*time.Second))
	assert.Equal(t, "250µs", FormatElapsed(250*time.Microsecond))
}
