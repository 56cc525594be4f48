package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finsim/whatif-simulator/internal/domain"
)

var one = decimal.NewFromInt(1)
var twelve = decimal.NewFromInt(12)

// GenerateWealthProjection produces the parallel current/optimized series
// for an adjusted baseline over the configured horizons, plus per-class
// investment growth for the given allocation.
//
// The current path accumulates savings linearly while income grows and
// expenses inflate at their fixed annual rates. The optimized path cuts
// discretionary spending, then compounds the improved annual savings at the
// optimized return rate. Negative savings propagate unclamped; a zero
// income baseline is a valid input that produces flat or declining series.
func (ce *CalculationEngine) GenerateWealthProjection(baseline *domain.AdjustedBaseline, allocation map[string]decimal.Decimal) domain.WealthProjection {
	a := ce.Assumptions

	totalExpenses := baseline.TotalExpenses()
	annualSavings := baseline.MonthlySavings.Mul(twelve)

	improvedMonthly := ce.improvedMonthlySavings(baseline)
	improvedAnnual := improvedMonthly.Mul(twelve)

	years := make([]domain.YearPoint, a.ProjectionYears)
	optimizedBalance := decimal.Zero
	growthFactor := one.Add(a.OptimizedReturnRate)

	for i := 1; i <= a.ProjectionYears; i++ {
		yi := decimal.NewFromInt(int64(i))

		// Contribution at the start of the year, compounded to year end.
		optimizedBalance = optimizedBalance.Add(improvedAnnual).Mul(growthFactor)
		contributions := improvedAnnual.Mul(yi)

		years[i-1] = domain.YearPoint{
			Year:              i,
			Income:            baseline.MonthlyIncome.Mul(twelve).Mul(one.Add(a.IncomeGrowthRate.Mul(yi))),
			Expenses:          totalExpenses.Mul(twelve).Mul(one.Add(a.ExpenseInflationRate.Mul(yi))),
			Savings:           annualSavings.Mul(yi),
			OptimizedWealth:   optimizedBalance,
			InvestmentReturns: optimizedBalance.Sub(contributions),
		}
	}

	return domain.WealthProjection{
		Years:  years,
		Months: ce.generateMonthlySeries(baseline.MonthlySavings, improvedMonthly),
		Growth: ce.generateClassGrowth(allocation),
	}
}

// improvedMonthlySavings re-derives savings after cutting discretionary
// expense categories by the configured fraction.
func (ce *CalculationEngine) improvedMonthlySavings(baseline *domain.AdjustedBaseline) decimal.Decimal {
	a := ce.Assumptions
	keep := one.Sub(a.DiscretionaryCut)

	optimizedExpenses := decimal.Zero
	for category, amount := range baseline.Expenses {
		if a.IsDiscretionary(category) {
			amount = amount.Mul(keep)
		}
		optimizedExpenses = optimizedExpenses.Add(amount)
	}
	return baseline.MonthlyIncome.Sub(optimizedExpenses)
}

// generateMonthlySeries builds the short-term series: monthly contribution
// followed by compounding at the fixed monthly rates.
func (ce *CalculationEngine) generateMonthlySeries(currentMonthly, improvedMonthly decimal.Decimal) []domain.MonthPoint {
	a := ce.Assumptions
	currentFactor := one.Add(a.MonthlyRateCurrent)
	optimizedFactor := one.Add(a.MonthlyRateOptimized)

	months := make([]domain.MonthPoint, a.ProjectionMonths)
	currentBalance := decimal.Zero
	optimizedBalance := decimal.Zero
	for m := 1; m <= a.ProjectionMonths; m++ {
		currentBalance = currentBalance.Add(currentMonthly).Mul(currentFactor)
		optimizedBalance = optimizedBalance.Add(improvedMonthly).Mul(optimizedFactor)
		months[m-1] = domain.MonthPoint{
			Month:          m,
			CurrentValue:   currentBalance,
			OptimizedValue: optimizedBalance,
		}
	}
	return months
}

// generateClassGrowth compounds each invested class at its table rate:
// value at end of year i is principal * (1+rate)^i.
func (ce *CalculationEngine) generateClassGrowth(allocation map[string]decimal.Decimal) []domain.ClassGrowth {
	a := ce.Assumptions
	if len(allocation) == 0 {
		return nil
	}

	// Deterministic ordering keeps output stable for storage and tests.
	classes := []string{
		domain.InvestmentStocks,
		domain.InvestmentMutualFunds,
		domain.InvestmentFixedDeposits,
		domain.InvestmentOthers,
	}

	growth := make([]domain.ClassGrowth, 0, len(allocation))
	for _, class := range classes {
		principal, ok := allocation[class]
		if !ok || principal.IsZero() {
			continue
		}
		rate := a.ClassReturn(class)
		factor := one.Add(rate)

		values := make([]decimal.Decimal, a.ProjectionYears)
		value := principal
		for i := 0; i < a.ProjectionYears; i++ {
			value = value.Mul(factor)
			values[i] = value
		}
		growth = append(growth, domain.ClassGrowth{
			Class:     class,
			Principal: principal,
			Rate:      rate,
			Values:    values,
		})
	}
	return growth
}
