package pipeline

import (
	"fmt"

	"github.com/selamanalytics/fidash/internal/config"
	"github.com/selamanalytics/fidash/internal/model"
)

// PolicyFooter closes the policy page and the exported reports.
const PolicyFooter = "Report generated by Selam Analytics Forecasting Engine (v1.0)"

// DataSources lists the upstream publications behind the processed tables.
var DataSources = []string{
	"Global Findex (World Bank)",
	"EthioTelecom Reports",
	"NBE Directives",
}

// BuildPolicy assembles the strategic recommendations. The recommendations
// are fixed text; the figures quoted in them come from the loaded data and
// are omitted when the underlying indicator is absent.
func BuildPolicy(ds *model.Dataset, cfg config.Config) model.PolicyView {
	sum := NewSummarizer(ds)
	goal := cfg.Goal.TargetPct
	year := cfg.Goal.TargetYear

	view := model.PolicyView{
		Title:   "Strategic Recommendations",
		Sources: DataSources,
		Footer:  PolicyFooter,
	}

	goalInsight := model.Insight{
		Title: fmt.Sprintf("The \"%.0f%% Goal\"", goal),
		Body: "The structural break caused by M-Pesa's entry and continued Telebirr expansion " +
			"drives the ownership trajectory.",
	}
	if fc, err := sum.ForecastAt(config.IndicatorAccountOwnership, year); err == nil {
		if fc > goal {
			goalInsight.Title += " is Achievable"
			goalInsight.Body = fmt.Sprintf("Our models predict that Account Ownership will reach %.1f%% by %d, "+
				"surpassing the National Financial Inclusion Strategy target. ", fc, year) + goalInsight.Body
		} else {
			goalInsight.Title += " is At Risk"
			goalInsight.Body = fmt.Sprintf("Our models predict that Account Ownership will reach %.1f%% by %d, "+
				"short of the National Financial Inclusion Strategy target of %.0f%%. ", fc, year, goal) + goalInsight.Body
		}
	}

	usage := model.Insight{
		Title: "Focus on \"Active Usage\"",
		Body:  "While Access is solved (trend is positive), Usage lags.",
		Bullets: []string{
			"Recommendation: Policy should shift from \"Account Opening\" incentives to \"Transaction Utility\" " +
				"(e.g., digitizing government payments, merchant interoperability).",
		},
	}
	own, errOwn := sum.LatestWithMode(config.IndicatorAccountOwnership, cfg.Metrics.LatestMode)
	mm, errMM := sum.LatestWithMode(config.IndicatorMobileMoney, cfg.Metrics.LatestMode)
	if errOwn == nil && errMM == nil {
		gap := fmt.Sprintf("Gap: %.0f%% have accounts, but only ~%.1f%% use Mobile Money actively.", own, mm)
		usage.Bullets = append([]string{gap}, usage.Bullets...)
	}

	infra := model.Insight{
		Title: "The Infrastructure Constraint",
		Body:  "Financial inclusion is currently capped by Mobile Penetration.",
		Bullets: []string{
			"Insight: You cannot bank someone who doesn't have a phone.",
			"Recommendation: 4G handset financing and rural tower investment are now financial inclusion policies.",
		},
	}
	if pen := FilterByIndicatorContains(ds.Observations, config.MobilePenetrationFamily); len(pen) > 0 {
		infra.Body = fmt.Sprintf("Financial inclusion is currently capped by Mobile Penetration (~%.0f%%).", pen[len(pen)-1].Value)
	}

	view.Insights = []model.Insight{goalInsight, usage, infra}
	return view
}
