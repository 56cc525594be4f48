package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finsim/whatif-simulator/internal/domain"
)

// ScoreRisk derives a risk classification and diversification index from an
// investment allocation (class -> amount). Missing classes count as zero.
// An empty allocation scores 0 and classifies conservative; the zero
// sentinel is a documented convention for the no-investment case.
//
// The risk score is the amount-weighted average of the per-class risk
// weights. The diversification score is 1 minus the Herfindahl index of the
// allocation weights: 0 for a fully concentrated portfolio, approaching
// 1 - 1/n for an even n-way split.
func ScoreRisk(allocation map[string]decimal.Decimal, assumptions *domain.Assumptions) (domain.RiskProfile, error) {
	total := decimal.Zero
	for class, amount := range allocation {
		if amount.IsNegative() {
			return domain.RiskProfile{}, domain.Invalidf("allocation for %q cannot be negative, got %s", class, amount)
		}
		total = total.Add(amount)
	}

	profile := domain.RiskProfile{
		RiskScore:            decimal.Zero,
		DiversificationScore: decimal.Zero,
	}

	if total.IsPositive() {
		weighted := decimal.Zero
		herfindahl := decimal.Zero
		for class, amount := range allocation {
			weight := riskWeight(class, assumptions)
			weighted = weighted.Add(amount.Mul(weight))

			share := amount.Div(total)
			herfindahl = herfindahl.Add(share.Mul(share))
		}
		profile.RiskScore = weighted.Div(total)
		profile.DiversificationScore = decimal.NewFromInt(1).Sub(herfindahl)
	}

	switch {
	case profile.RiskScore.LessThanOrEqual(assumptions.ConservativeThreshold):
		profile.Profile = domain.ProfileConservative
	case profile.RiskScore.LessThanOrEqual(assumptions.ModerateThreshold):
		// The moderate boundary is inclusive: a score of exactly 2.5 is
		// moderate, not aggressive.
		profile.Profile = domain.ProfileModerate
	default:
		profile.Profile = domain.ProfileAggressive
	}

	return profile, nil
}

// riskWeight looks up the class risk weight, grouping unknown classes with
// "others".
func riskWeight(class string, assumptions *domain.Assumptions) decimal.Decimal {
	if w, ok := assumptions.RiskWeights[class]; ok {
		return w
	}
	return assumptions.RiskWeights[domain.InvestmentOthers]
}
