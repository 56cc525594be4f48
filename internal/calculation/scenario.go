package calculation

import (
	"github.com/finsim/whatif-simulator/internal/domain"
)

// AdjustForScenario maps a snapshot plus an optional scenario to the
// cash-flow baseline the projector consumes. A nil scenario passes the
// snapshot through unchanged. The adjuster is a pure function of its
// inputs: applying the same scenario to the same snapshot twice yields the
// same baseline, never a cumulative effect.
func (ce *CalculationEngine) AdjustForScenario(snapshot *domain.FinancialSnapshot, scenario *domain.Scenario) (*domain.AdjustedBaseline, error) {
	baseline := &domain.AdjustedBaseline{
		MonthlyIncome:  snapshot.Income,
		Expenses:       snapshot.MonthlyExpenses(),
		MonthlySavings: snapshot.MonthlySavings(),
	}
	if scenario == nil {
		return baseline, nil
	}

	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	baseline.ScenarioKind = scenario.Kind
	a := ce.Assumptions

	switch scenario.Kind {
	case domain.ScenarioJob:
		baseline.MonthlyIncome = scenario.Job.NewSalary
		baseline.MonthlySavings = scenario.Job.NewSalary.Mul(a.JobSavingsRate)

	case domain.ScenarioCity:
		baseline.Expenses["rent"] = scenario.City.ExpectedRent
		baseline.Expenses["costOfLiving"] = baseline.Expenses["costOfLiving"].Add(scenario.City.CostOfLiving)
		baseline.MonthlySavings = baseline.MonthlyIncome.Sub(baseline.TotalExpenses())
		baseline.Metadata = map[string]string{"newCity": scenario.City.NewCity}

	case domain.ScenarioBusiness:
		baseline.MonthlySavings = baseline.MonthlySavings.Mul(a.BusinessSavingsDrag)
		baseline.Metadata = map[string]string{
			"investment":   scenario.Business.Investment.String(),
			"businessType": scenario.Business.BusinessType,
		}

	case domain.ScenarioAsset:
		baseline.MonthlySavings = baseline.MonthlySavings.Mul(a.AssetSavingsDrag)
		baseline.Metadata = map[string]string{
			"purchaseCost": scenario.Asset.PurchaseCost.String(),
			"assetType":    scenario.Asset.AssetType,
		}

	default:
		// Validate already rejected unknown kinds; this guards against new
		// kinds added without an adjustment rule.
		return nil, domain.Invalidf("invalid scenario type %q", scenario.Kind)
	}

	ce.Logger.Debugf("scenario %s adjusted savings from %s to %s",
		scenario.Kind, snapshot.MonthlySavings(), baseline.MonthlySavings)

	return baseline, nil
}
