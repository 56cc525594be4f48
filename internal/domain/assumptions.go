package domain

import (
	"github.com/shopspring/decimal"
)

// Assumptions gathers every policy constant used by the projector and the
// scenario adjuster. The defaults are illustrative modeling conventions, not
// derived figures; callers may tune them, and tests inject fixed values.
type Assumptions struct {
	// Annual growth applied to income on the current path.
	IncomeGrowthRate decimal.Decimal `yaml:"income_growth_rate" json:"income_growth_rate"`
	// Annual inflation applied to expenses on the current path.
	ExpenseInflationRate decimal.Decimal `yaml:"expense_inflation_rate" json:"expense_inflation_rate"`
	// Annual return assumed for optimized-path investing.
	OptimizedReturnRate decimal.Decimal `yaml:"optimized_return_rate" json:"optimized_return_rate"`
	// Fraction cut from discretionary expense categories on the optimized path.
	DiscretionaryCut decimal.Decimal `yaml:"discretionary_cut" json:"discretionary_cut"`
	// Expense categories treated as discretionary.
	DiscretionaryCategories []string `yaml:"discretionary_categories" json:"discretionary_categories"`

	// Monthly compounding rates for the 12-point short-term series. These
	// mirror the annual figures rather than being derived from them.
	MonthlyRateCurrent   decimal.Decimal `yaml:"monthly_rate_current" json:"monthly_rate_current"`
	MonthlyRateOptimized decimal.Decimal `yaml:"monthly_rate_optimized" json:"monthly_rate_optimized"`

	// Annual return per investment class.
	ClassReturns map[string]decimal.Decimal `yaml:"class_returns" json:"class_returns"`

	// Risk weight per investment class and the classification thresholds.
	RiskWeights           map[string]decimal.Decimal `yaml:"risk_weights" json:"risk_weights"`
	ConservativeThreshold decimal.Decimal            `yaml:"conservative_threshold" json:"conservative_threshold"`
	ModerateThreshold     decimal.Decimal            `yaml:"moderate_threshold" json:"moderate_threshold"`

	// Scenario adjuster multipliers.
	JobSavingsRate      decimal.Decimal `yaml:"job_savings_rate" json:"job_savings_rate"`           // savings as a fraction of the new salary
	BusinessSavingsDrag decimal.Decimal `yaml:"business_savings_drag" json:"business_savings_drag"` // setup-cost multiplier on baseline savings
	AssetSavingsDrag    decimal.Decimal `yaml:"asset_savings_drag" json:"asset_savings_drag"`       // EMI multiplier on baseline savings

	// Projection horizons.
	ProjectionYears  int `yaml:"projection_years" json:"projection_years"`
	ProjectionMonths int `yaml:"projection_months" json:"projection_months"`
}

// DefaultAssumptions returns the standard policy constants: 3% income
// growth, 5% expense inflation, 12% optimized return, 20% discretionary
// cut, 0.3/0.8/0.7 scenario multipliers, and the fixed per-class return and
// risk-weight tables.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		IncomeGrowthRate:        decimal.NewFromFloat(0.03),
		ExpenseInflationRate:    decimal.NewFromFloat(0.05),
		OptimizedReturnRate:     decimal.NewFromFloat(0.12),
		DiscretionaryCut:        decimal.NewFromFloat(0.20),
		DiscretionaryCategories: []string{"shopping", "entertainment", "others"},

		MonthlyRateCurrent:   decimal.NewFromFloat(0.0084),
		MonthlyRateOptimized: decimal.NewFromFloat(0.01),

		ClassReturns: map[string]decimal.Decimal{
			InvestmentStocks:        decimal.NewFromFloat(0.12),
			InvestmentMutualFunds:   decimal.NewFromFloat(0.10),
			InvestmentFixedDeposits: decimal.NewFromFloat(0.07),
			InvestmentOthers:        decimal.NewFromFloat(0.08),
		},

		RiskWeights: map[string]decimal.Decimal{
			InvestmentStocks:        decimal.NewFromInt(3),
			InvestmentMutualFunds:   decimal.NewFromInt(2),
			InvestmentFixedDeposits: decimal.NewFromInt(1),
			InvestmentOthers:        decimal.NewFromInt(2),
		},
		ConservativeThreshold: decimal.NewFromFloat(1.5),
		ModerateThreshold:     decimal.NewFromFloat(2.5),

		JobSavingsRate:      decimal.NewFromFloat(0.3),
		BusinessSavingsDrag: decimal.NewFromFloat(0.8),
		AssetSavingsDrag:    decimal.NewFromFloat(0.7),

		ProjectionYears:  10,
		ProjectionMonths: 12,
	}
}

// Validate rejects assumption sets that would make the model meaningless.
func (a *Assumptions) Validate() error {
	negOne := decimal.NewFromInt(-1)
	for name, rate := range map[string]decimal.Decimal{
		"income_growth_rate":     a.IncomeGrowthRate,
		"expense_inflation_rate": a.ExpenseInflationRate,
		"optimized_return_rate":  a.OptimizedReturnRate,
	} {
		if rate.LessThanOrEqual(negOne) {
			return Invalidf("%s cannot be -100%% or lower, got %s", name, rate)
		}
	}
	one := decimal.NewFromInt(1)
	for name, mult := range map[string]decimal.Decimal{
		"discretionary_cut":     a.DiscretionaryCut,
		"job_savings_rate":      a.JobSavingsRate,
		"business_savings_drag": a.BusinessSavingsDrag,
		"asset_savings_drag":    a.AssetSavingsDrag,
	} {
		if mult.IsNegative() || mult.GreaterThan(one) {
			return Invalidf("%s must be between 0 and 1, got %s", name, mult)
		}
	}
	if a.ProjectionYears <= 0 || a.ProjectionYears > 50 {
		return Invalidf("projection years must be between 1 and 50, got %d", a.ProjectionYears)
	}
	if a.ProjectionMonths <= 0 || a.ProjectionMonths > 120 {
		return Invalidf("projection months must be between 1 and 120, got %d", a.ProjectionMonths)
	}
	if a.ConservativeThreshold.GreaterThan(a.ModerateThreshold) {
		return Invalidf("conservative threshold %s cannot exceed moderate threshold %s",
			a.ConservativeThreshold, a.ModerateThreshold)
	}
	return nil
}

// ClassReturn looks up the annual return for an investment class, falling
// back to the "others" rate for unrecognized classes.
func (a *Assumptions) ClassReturn(class string) decimal.Decimal {
	if rate, ok := a.ClassReturns[class]; ok {
		return rate
	}
	return a.ClassReturns[InvestmentOthers]
}

// IsDiscretionary reports whether an expense category is subject to the
// optimized-path cut.
func (a *Assumptions) IsDiscretionary(category string) bool {
	for _, c := range a.DiscretionaryCategories {
		if c == category {
			return true
		}
	}
	return false
}
