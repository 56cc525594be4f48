package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finsim/whatif-simulator/internal/domain"
)

// recentAverageWindow caps how many samples feed the running average.
const recentAverageWindow = 3

// Trend reports the direction of a numeric series ordered most-recent-first
// by comparing the two most recent samples. Series with fewer than two
// samples are stable by definition.
func Trend(samples []decimal.Decimal) string {
	if len(samples) < 2 {
		return domain.TrendStable
	}
	switch {
	case samples[0].GreaterThan(samples[1]):
		return domain.TrendIncreasing
	case samples[0].LessThan(samples[1]):
		return domain.TrendDecreasing
	default:
		return domain.TrendStable
	}
}

// RecentAverage computes the arithmetic mean over the most recent samples,
// capped at a window of three. An empty series averages to zero; the zero
// sentinel is a documented convention, not a division fault.
func RecentAverage(samples []decimal.Decimal) decimal.Decimal {
	if len(samples) == 0 {
		return decimal.Zero
	}
	n := len(samples)
	if n > recentAverageWindow {
		n = recentAverageWindow
	}
	sum := decimal.Zero
	for _, s := range samples[:n] {
		sum = sum.Add(s)
	}
	return sum.Div(decimal.NewFromInt(int64(n)))
}

// AnalyzeBehavior derives behavioral metrics from spending and savings
// histories, both ordered most-recent-first.
func AnalyzeBehavior(spending, savings []decimal.Decimal) domain.BehaviorMetrics {
	return domain.BehaviorMetrics{
		SpendingTrend:   Trend(spending),
		AverageSpending: RecentAverage(spending),
		SavingsTrend:    Trend(savings),
		AverageSavings:  RecentAverage(savings),
	}
}
