package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// YearPoint is a single year of the long-term projection.
type YearPoint struct {
	Year int `json:"year"` // 1-based: year 1 is twelve months out

	// Current path
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Savings  decimal.Decimal `json:"savings"`

	// Optimized path
	OptimizedWealth   decimal.Decimal `json:"optimized_wealth"`
	InvestmentReturns decimal.Decimal `json:"investment_returns"`
}

// MonthPoint is a single month of the short-term projection.
type MonthPoint struct {
	Month          int             `json:"month"` // 1..12
	CurrentValue   decimal.Decimal `json:"current_value"`
	OptimizedValue decimal.Decimal `json:"optimized_value"`
}

// ClassGrowth is the compounded trajectory of one investment class.
type ClassGrowth struct {
	Class     string            `json:"class"`
	Principal decimal.Decimal   `json:"principal"`
	Rate      decimal.Decimal   `json:"rate"`
	Values    []decimal.Decimal `json:"values"` // index i = end of year i+1
}

// WealthProjection holds the parallel current/optimized series produced by
// one projection run. Values are unrounded; formatting happens at the
// presentation boundary.
type WealthProjection struct {
	Years  []YearPoint   `json:"years"`
	Months []MonthPoint  `json:"months"`
	Growth []ClassGrowth `json:"investment_growth,omitempty"`
}

// OneYearResult is the optimized wealth at the end of year one, the figure
// the retrospective analyzer diffs between consecutive simulations.
func (wp *WealthProjection) OneYearResult() decimal.Decimal {
	if len(wp.Years) == 0 {
		return decimal.Zero
	}
	return wp.Years[0].OptimizedWealth
}

// RiskProfile classifies an investment allocation.
type RiskProfile struct {
	RiskScore            decimal.Decimal `json:"risk_score"`
	Profile              string          `json:"profile"` // conservative | moderate | aggressive
	DiversificationScore decimal.Decimal `json:"diversification_score"`
}

// Risk profile classifications.
const (
	ProfileConservative = "conservative"
	ProfileModerate     = "moderate"
	ProfileAggressive   = "aggressive"
)

// BehaviorMetrics summarizes recent spending and saving behavior.
type BehaviorMetrics struct {
	SpendingTrend   string          `json:"spending_trend"` // increasing | decreasing | stable
	AverageSpending decimal.Decimal `json:"average_spending"`
	SavingsTrend    string          `json:"savings_trend"`
	AverageSavings  decimal.Decimal `json:"average_savings"`
}

// Recommendation is an advisory item attached to a simulation. The core
// treats recommendation content as opaque: it may come from a rule engine
// or an external AI collaborator, and is merged into the result verbatim.
type Recommendation struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// AdjustedBaseline is the cash-flow input the projector consumes after the
// scenario adjuster has rewritten the snapshot baseline.
type AdjustedBaseline struct {
	MonthlyIncome  decimal.Decimal            `json:"monthly_income"`
	Expenses       map[string]decimal.Decimal `json:"expenses"`
	MonthlySavings decimal.Decimal            `json:"monthly_savings"`
	ScenarioKind   ScenarioKind               `json:"scenario_kind,omitempty"`
	Metadata       map[string]string          `json:"metadata,omitempty"`
}

// TotalExpenses sums the adjusted monthly expense map.
func (ab *AdjustedBaseline) TotalExpenses() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range ab.Expenses {
		total = total.Add(amount)
	}
	return total
}

// SimulationResult is the full output of one what-if run, shaped for
// storage and chart rendering verbatim.
type SimulationResult struct {
	ID           string       `json:"id"`
	UserID       string       `json:"user_id"`
	CreatedAt    time.Time    `json:"created_at"`
	ScenarioKind ScenarioKind `json:"scenario_kind,omitempty"`

	Baseline      AdjustedBaseline `json:"baseline"`
	Projection    WealthProjection `json:"projection"`
	RiskProfile   RiskProfile      `json:"risk_profile"`
	OneYearResult decimal.Decimal  `json:"one_year_result"`

	Behavior        *BehaviorMetrics `json:"behavior,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
}

// DeclaredRisk is a risk the user (or advisor) attached to a past decision.
type DeclaredRisk struct {
	Description string          `json:"description"`
	Impact      decimal.Decimal `json:"impact"` // 0..10 scale
}

// DeclaredOpportunity is an upside the user attached to a past decision.
type DeclaredOpportunity struct {
	Description      string          `json:"description"`
	PotentialBenefit decimal.Decimal `json:"potential_benefit"`
}

// HistoryEntry is one stored past simulation, the unit the retrospective
// analyzer walks pairwise. The baseline spending and savings figures feed
// the behavior analyzer on subsequent runs.
type HistoryEntry struct {
	ID              string                `json:"id"`
	UserID          string                `json:"user_id"`
	Date            time.Time             `json:"date"`
	ScenarioKind    ScenarioKind          `json:"scenario_kind"`
	OneYearResult   decimal.Decimal       `json:"one_year_result"`
	MonthlyExpenses decimal.Decimal       `json:"monthly_expenses"`
	MonthlySavings  decimal.Decimal       `json:"monthly_savings"`
	Risks           []DeclaredRisk        `json:"risks,omitempty"`
	Opportunities   []DeclaredOpportunity `json:"opportunities,omitempty"`
}

// RetrospectiveRecord scores one past decision against its predecessor.
type RetrospectiveRecord struct {
	Date         time.Time       `json:"date"`
	ScenarioKind ScenarioKind    `json:"scenario_kind"`
	NetGain      decimal.Decimal `json:"net_gain"`
	Success      bool            `json:"success"`
	RiskLevel    string          `json:"risk_level"` // High | Moderate | Low | N/A
	Confidence   string          `json:"confidence"` // High | Moderate | Low | N/A
}

// RetrospectiveSummary aggregates a retrospective run.
type RetrospectiveSummary struct {
	Records     []RetrospectiveRecord `json:"records"`
	SuccessRate decimal.Decimal       `json:"success_rate"` // percentage
	Trend       string                `json:"trend"`        // Positive | Negative | Neutral
}

// Level labels shared by risk and confidence scoring.
const (
	LevelHigh         = "High"
	LevelModerate     = "Moderate"
	LevelLow          = "Low"
	LevelNotAvailable = "N/A"
)

// Retrospective trend labels.
const (
	TrendPositive = "Positive"
	TrendNegative = "Negative"
	TrendNeutral  = "Neutral"
)

// Trend directions for numeric series.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)
