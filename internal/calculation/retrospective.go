package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsim/whatif-simulator/internal/domain"
)

// AnalyzeRetrospective walks a chronologically ordered (oldest first)
// simulation history pairwise and scores whether each past decision was
// net-positive. Entries before the since date are skipped. The first
// surviving entry has no predecessor and is reported with zero net gain and
// N/A labels; that base case is defined behavior, not an error.
//
// An empty filtered history is a not-found condition: the caller asked for
// a retrospective there is no data for.
func AnalyzeRetrospective(entries []domain.HistoryEntry, since time.Time) (*domain.RetrospectiveSummary, error) {
	filtered := make([]domain.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		if e.Date.Before(since) {
			continue
		}
		filtered = append(filtered, e)
	}
	if len(filtered) == 0 {
		return nil, domain.NotFoundf("no simulation history on or after %s", since.Format("2006-01-02"))
	}

	records := make([]domain.RetrospectiveRecord, len(filtered))
	successful := 0
	totalGain := decimal.Zero

	for i, entry := range filtered {
		record := domain.RetrospectiveRecord{
			Date:         entry.Date,
			ScenarioKind: entry.ScenarioKind,
		}

		if i == 0 {
			record.NetGain = decimal.Zero
			record.RiskLevel = domain.LevelNotAvailable
			record.Confidence = domain.LevelNotAvailable
		} else {
			record.NetGain = entry.OneYearResult.Sub(filtered[i-1].OneYearResult)
			record.Success = record.NetGain.IsPositive()
			record.RiskLevel = riskLevel(entry.Risks)
			record.Confidence = confidence(entry.Opportunities, record.NetGain)

			if record.Success {
				successful++
			}
			totalGain = totalGain.Add(record.NetGain)
		}

		records[i] = record
	}

	summary := &domain.RetrospectiveSummary{
		Records: records,
		SuccessRate: decimal.NewFromInt(int64(successful)).
			Div(decimal.NewFromInt(int64(len(records)))).
			Mul(decimal.NewFromInt(100)),
	}

	pairs := len(filtered) - 1
	if pairs > 0 {
		meanGain := totalGain.Div(decimal.NewFromInt(int64(pairs)))
		switch {
		case meanGain.IsPositive():
			summary.Trend = domain.TrendPositive
		case meanGain.IsNegative():
			summary.Trend = domain.TrendNegative
		default:
			summary.Trend = domain.TrendNeutral
		}
	} else {
		summary.Trend = domain.TrendNeutral
	}

	return summary, nil
}

// highImpactThreshold marks a declared risk as significant.
var highImpactThreshold = decimal.NewFromInt(7)

// riskLevel counts declared risks with impact above the threshold: more
// than two is High exposure, any is Moderate, none is Low.
func riskLevel(risks []domain.DeclaredRisk) string {
	high := 0
	for _, r := range risks {
		if r.Impact.GreaterThan(highImpactThreshold) {
			high++
		}
	}
	switch {
	case high > 2:
		return domain.LevelHigh
	case high > 0:
		return domain.LevelModerate
	default:
		return domain.LevelLow
	}
}

// confidence measures how many declared opportunities were actually covered
// by the realized net gain. A record with no declared opportunities scores
// Low rather than dividing by an empty list.
func confidence(opportunities []domain.DeclaredOpportunity, netGain decimal.Decimal) string {
	if len(opportunities) == 0 {
		return domain.LevelLow
	}
	realized := 0
	for _, o := range opportunities {
		if o.PotentialBenefit.LessThanOrEqual(netGain) {
			realized++
		}
	}
	fraction := decimal.NewFromInt(int64(realized)).Div(decimal.NewFromInt(int64(len(opportunities))))
	switch {
	case fraction.GreaterThan(decimal.NewFromFloat(0.7)):
		return domain.LevelHigh
	case fraction.GreaterThan(decimal.NewFromFloat(0.4)):
		return domain.LevelModerate
	default:
		return domain.LevelLow
	}
}
