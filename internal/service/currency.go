package service

import (
	"github.com/premiumcalc/backend/internal/domain"
	"github.com/premiumcalc/backend/pkg/utils"
)

// USDToINR is the fixed conversion factor; there is no live rate lookup.
const USDToINR = 83.0

// ToINR converts a USD amount to rupees, rounded to cents
func ToINR(usd float64) float64 {
	return utils.Round2(usd * USDToINR)
}

// INRBreakdown converts the rounded USD annual premium and splits it again
func INRBreakdown(usd domain.PremiumBreakdown) domain.PremiumBreakdown {
	return Rounded(Breakdown(ToINR(utils.Round2(usd.Annual))))
}
