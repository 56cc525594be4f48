// Package advice defines the recommendation collaborator boundary. The
// production system forwards a financial summary to an external AI service;
// the simulator core treats whatever comes back as already-shaped data. The
// Recommender interface keeps that collaborator injectable so the
// computation core stays testable without network access.
package advice

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/finsim/whatif-simulator/internal/domain"
)

// Recommender produces advisory items for a simulation result. The payload
// is opaque to the caller: recommendations are merged into the result
// verbatim, never validated or parsed further.
type Recommender interface {
	Recommend(ctx context.Context, result *domain.SimulationResult) ([]domain.Recommendation, error)
}

// RuleRecommender is the deterministic fallback used when no external
// recommender is configured. It applies a handful of fixed heuristics over
// the computed result.
type RuleRecommender struct{}

// Recommend derives rule-based recommendations from savings rate,
// diversification and discretionary spending.
func (RuleRecommender) Recommend(_ context.Context, result *domain.SimulationResult) ([]domain.Recommendation, error) {
	var recs []domain.Recommendation

	income := result.Baseline.MonthlyIncome
	if income.IsPositive() {
		savingsRate := result.Baseline.MonthlySavings.Div(income)
		if savingsRate.LessThan(decimal.NewFromFloat(0.2)) {
			recs = append(recs, domain.Recommendation{
				Category: "savings",
				Text:     "Your savings rate is below 20% of income. Trimming recurring expenses would compound significantly over the ten-year horizon.",
			})
		}
	} else if result.Baseline.MonthlySavings.IsNegative() {
		recs = append(recs, domain.Recommendation{
			Category: "savings",
			Text:     "Expenses currently exceed income; the projected trajectory declines every month until the gap closes.",
		})
	}

	if result.RiskProfile.DiversificationScore.LessThan(decimal.NewFromFloat(0.4)) {
		recs = append(recs, domain.Recommendation{
			Category: "diversification",
			Text:     "Your portfolio is concentrated in few asset classes. Spreading across stocks, mutual funds and fixed deposits reduces single-class exposure.",
		})
	}

	if result.RiskProfile.Profile == domain.ProfileAggressive {
		recs = append(recs, domain.Recommendation{
			Category: "risk",
			Text:     "Your allocation classifies as aggressive. Consider whether the downside of an equity-heavy mix fits your timeline.",
		})
	}

	return recs, nil
}
