package config

import (
	"strings"

	"github.com/selamanalytics/fidash/internal/model"
)

// Indicator codes the dashboard reads by name.
const (
	IndicatorAccountOwnership = "ACC_OWNERSHIP"
	IndicatorMobileMoney      = "ACC_MM_ACCOUNT"
	IndicatorTelebirrUsers    = "USG_TELEBIRR_USERS"

	// MobilePenetrationFamily is matched as a case-insensitive substring since
	// the exact penetration code varies between dataset revisions.
	MobilePenetrationFamily = "MOBILE_PEN"
)

// IndicatorInfo describes how an indicator code is labelled and formatted.
type IndicatorInfo struct {
	Code  string
	Label string
	Unit  string
}

// DefaultIndicators maps known indicator codes to their display metadata.
var DefaultIndicators = map[string]IndicatorInfo{
	IndicatorAccountOwnership: {
		Code: IndicatorAccountOwnership, Label: "Access (Account Ownership)", Unit: model.UnitPercent,
	},
	IndicatorMobileMoney: {
		Code: IndicatorMobileMoney, Label: "Usage (Mobile Money)", Unit: model.UnitPercent,
	},
	IndicatorTelebirrUsers: {
		Code: IndicatorTelebirrUsers, Label: "Telebirr Users", Unit: model.UnitCount,
	},
}

// forecastTargets is the ordered list offered by the forecast indicator selector.
var forecastTargets = []string{IndicatorAccountOwnership, IndicatorMobileMoney}

// NormalizeIndicatorCode trims whitespace and upper-cases a user-supplied code.
// e.g., " acc_ownership " -> "ACC_OWNERSHIP"
func NormalizeIndicatorCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// LookupIndicator returns display metadata for a code, applying any overrides
// from the config. Unknown codes fall back to the code itself as the label
// and are treated as percentages.
func LookupIndicator(cfg Config, code string) IndicatorInfo {
	code = NormalizeIndicatorCode(code)

	info, ok := DefaultIndicators[code]
	if !ok {
		info = IndicatorInfo{Code: code, Label: code, Unit: model.UnitPercent}
	}

	if ov, ok := cfg.Indicators.Overrides[code]; ok {
		if ov.Label != nil && *ov.Label != "" {
			info.Label = *ov.Label
		}
		if ov.Unit != nil && isKnownUnit(*ov.Unit) {
			info.Unit = *ov.Unit
		}
	}

	return info
}

// ForecastTargets returns the indicators selectable in the forecast engine.
func ForecastTargets(cfg Config) []IndicatorInfo {
	out := make([]IndicatorInfo, 0, len(forecastTargets))
	for _, code := range forecastTargets {
		out = append(out, LookupIndicator(cfg, code))
	}
	return out
}

// IsForecastTarget reports whether code is offered by the forecast selector.
func IsForecastTarget(code string) bool {
	code = NormalizeIndicatorCode(code)
	for _, c := range forecastTargets {
		if c == code {
			return true
		}
	}
	return false
}

func isKnownUnit(u string) bool {
	return u == model.UnitPercent || u == model.UnitCount
}
