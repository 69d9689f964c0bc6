package service

import (
	"context"
	"fmt"

	"github.com/premiumcalc/backend/internal/domain"
	"github.com/premiumcalc/backend/pkg/utils"
)

// Breakdown splits an annual premium into half-yearly, quarterly and monthly
// amounts. Values are exact; use Rounded for display.
func Breakdown(annual float64) domain.PremiumBreakdown {
	return domain.PremiumBreakdown{
		Annual:     annual,
		HalfYearly: annual / 2,
		Quarterly:  annual / 4,
		Monthly:    annual / 12,
	}
}

// Rounded returns the breakdown rounded to cents
func Rounded(b domain.PremiumBreakdown) domain.PremiumBreakdown {
	return domain.PremiumBreakdown{
		Annual:     utils.Round2(b.Annual),
		HalfYearly: utils.Round2(b.HalfYearly),
		Quarterly:  utils.Round2(b.Quarterly),
		Monthly:    utils.Round2(b.Monthly),
	}
}

// Compare predicts the same profile twice, smoker code forced to 0 then 1.
// Nothing is cached between calls.
func Compare(ctx context.Context, model domain.Predictor, features domain.FeatureVector) (domain.RiskComparison, error) {
	nonSmoker, err := model.Predict(ctx, features.WithSmoker(0))
	if err != nil {
		return domain.RiskComparison{}, fmt.Errorf("risk comparison: non-smoker: %w", err)
	}

	smoker, err := model.Predict(ctx, features.WithSmoker(1))
	if err != nil {
		return domain.RiskComparison{}, fmt.Errorf("risk comparison: smoker: %w", err)
	}

	return domain.RiskComparison{
		NonSmoker: nonSmoker,
		Smoker:    smoker,
	}, nil
}
