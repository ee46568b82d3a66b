// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/selamanalytics/fidash/internal/model"
)

// FormatCount formats a raw count with human-readable suffixes.
// e.g., 1234 -> "1.2K", 54000000 -> "54.0M", 1234567890 -> "1.2B"
func FormatCount(n float64) string {
	abs := math.Abs(n)

	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", n/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", n/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", n/1_000)
	default:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
}

// FormatMillions renders a count in millions, as the Telebirr card shows it.
// e.g., 54000000 -> "54.0M"
func FormatMillions(n float64) string {
	return fmt.Sprintf("%.1fM", n/1e6)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatPct formats a value already expressed in percent.
// e.g., 49 -> "49.0%"
func FormatPct(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// FormatPointDelta formats a percentage-point difference with an explicit sign.
// e.g., 15.4 -> "+15.4 pp", -2 -> "-2.0 pp"
func FormatPointDelta(delta float64) string {
	if delta >= 0 {
		return fmt.Sprintf("+%.1f pp", delta)
	}
	return fmt.Sprintf("-%.1f pp", -delta)
}

// FormatValue formats v according to an indicator unit.
func FormatValue(v float64, unit string) string {
	if unit == model.UnitCount {
		return FormatMillions(v)
	}
	return FormatPct(v)
}

// FormatKPI formats a KPI card value, or "n/a" when the indicator is absent.
func FormatKPI(k model.KPI) string {
	if !k.Available {
		return "n/a"
	}
	return FormatValue(k.Value, k.Unit)
}

// FormatDate formats an observation date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatElapsed formats a load duration.
// e.g., 1500*time.Microsecond -> "1.5ms", 2*time.Second -> "2.00s"
func FormatElapsed(d time.Duration) string {
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d)/float64(time.Millisecond))
	default:
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
}
