package service

import (
	"github.com/premiumcalc/backend/internal/domain"
	"github.com/premiumcalc/backend/pkg/utils"
)

// Bar colors
const (
	colorPrimary   = "#1f77b4"
	colorNonSmoker = "green"
	colorSmoker    = "red"
)

// BuildBreakdownChart produces the premium-by-period bar chart
func BuildBreakdownChart(b domain.PremiumBreakdown) domain.ChartConfig {
	return domain.ChartConfig{
		ChartType: "bar",
		Title:     "Premium Breakdown (USD)",
		XAxis:     "Period",
		YAxis:     "Premium ($)",
		Data: []domain.ChartPoint{
			{Label: "Annual", Value: utils.Round2(b.Annual)},
			{Label: "Half-Yearly", Value: utils.Round2(b.HalfYearly)},
			{Label: "Quarterly", Value: utils.Round2(b.Quarterly)},
			{Label: "Monthly", Value: utils.Round2(b.Monthly)},
		},
		Colors: []string{colorPrimary, colorPrimary, colorPrimary, colorPrimary},
	}
}

// BuildRiskChart produces the smoker vs non-smoker bar chart
func BuildRiskChart(r domain.RiskComparison) domain.ChartConfig {
	return domain.ChartConfig{
		ChartType: "bar",
		Title:     "Smoker vs Non-Smoker Annual Premium",
		XAxis:     "Smoker Status",
		YAxis:     "Premium ($)",
		Data: []domain.ChartPoint{
			{Label: "Non-Smoker", Value: utils.Round2(r.NonSmoker)},
			{Label: "Smoker", Value: utils.Round2(r.Smoker)},
		},
		Colors: []string{colorNonSmoker, colorSmoker},
	}
}
