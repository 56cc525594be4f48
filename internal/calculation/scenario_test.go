package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsim/whatif-simulator/internal/domain"
)

func testSnapshot() *domain.FinancialSnapshot {
	return &domain.FinancialSnapshot{
		UserID:  "user-1",
		Income:  decimal.NewFromInt(6000),
		Savings: decimal.NewFromInt(15000),
		Expenses: []domain.Expense{
			{Category: "rent", Amount: decimal.NewFromInt(1800), Frequency: domain.FrequencyMonthly},
			{Category: "food", Amount: decimal.NewFromInt(600), Frequency: domain.FrequencyMonthly},
			{Category: "shopping", Amount: decimal.NewFromInt(400), Frequency: domain.FrequencyMonthly},
		},
	}
}

func TestAdjustNilScenarioPassesBaselineThrough(t *testing.T) {
	engine := NewCalculationEngine()
	baseline, err := engine.AdjustForScenario(testSnapshot(), nil)
	require.NoError(t, err)

	assert.True(t, baseline.MonthlyIncome.Equal(decimal.NewFromInt(6000)))
	// 6000 - 2800
	assert.True(t, baseline.MonthlySavings.Equal(decimal.NewFromInt(3200)),
		"expected savings 3200, got %s", baseline.MonthlySavings)
	assert.Empty(t, baseline.ScenarioKind)
}

func TestAdjustJobScenario(t *testing.T) {
	engine := NewCalculationEngine()
	scenario := &domain.Scenario{
		Kind:           domain.ScenarioJob,
		TimelineMonths: 12,
		Job:            &domain.JobChange{NewSalary: decimal.NewFromInt(9000)},
	}

	baseline, err := engine.AdjustForScenario(testSnapshot(), scenario)
	require.NoError(t, err)

	assert.True(t, baseline.MonthlyIncome.Equal(decimal.NewFromInt(9000)))
	// Fixed 30% savings-rate assumption on the new salary.
	assert.True(t, baseline.MonthlySavings.Equal(decimal.NewFromInt(2700)),
		"expected savings 2700, got %s", baseline.MonthlySavings)
}

func TestAdjustCityScenario(t *testing.T) {
	engine := NewCalculationEngine()
	scenario := &domain.Scenario{
		Kind:           domain.ScenarioCity,
		TimelineMonths: 6,
		City: &domain.CityMove{
			NewCity:      "Pune",
			ExpectedRent: decimal.NewFromInt(1200),
			CostOfLiving: decimal.NewFromInt(300),
		},
	}

	baseline, err := engine.AdjustForScenario(testSnapshot(), scenario)
	require.NoError(t, err)

	assert.True(t, baseline.Expenses["rent"].Equal(decimal.NewFromInt(1200)))
	assert.True(t, baseline.Expenses["costOfLiving"].Equal(decimal.NewFromInt(300)))
	// 6000 - (1200 + 600 + 400 + 300)
	assert.True(t, baseline.MonthlySavings.Equal(decimal.NewFromInt(3500)),
		"expected savings 3500, got %s", baseline.MonthlySavings)
	assert.Equal(t, "Pune", baseline.Metadata["newCity"])
}

func TestAdjustBusinessScenario(t *testing.T) {
	engine := NewCalculationEngine()
	scenario := &domain.Scenario{
		Kind:           domain.ScenarioBusiness,
		TimelineMonths: 24,
		Business: &domain.BusinessStart{
			Investment:   decimal.NewFromInt(50000),
			BusinessType: "cafe",
		},
	}

	baseline, err := engine.AdjustForScenario(testSnapshot(), scenario)
	require.NoError(t, err)

	// 3200 * 0.8; investment is metadata only, not a cash-flow change.
	assert.True(t, baseline.MonthlySavings.Equal(decimal.NewFromInt(2560)),
		"expected savings 2560, got %s", baseline.MonthlySavings)
	assert.Equal(t, "50000", baseline.Metadata["investment"])
	assert.Equal(t, "cafe", baseline.Metadata["businessType"])
	assert.True(t, baseline.MonthlyIncome.Equal(decimal.NewFromInt(6000)))
}

func TestAdjustAssetScenarioIsPure(t *testing.T) {
	engine := NewCalculationEngine()
	scenario := &domain.Scenario{
		Kind:           domain.ScenarioAsset,
		TimelineMonths: 60,
		Asset: &domain.AssetPurchase{
			PurchaseCost: decimal.NewFromInt(30000),
			AssetType:    "car",
		},
	}

	snapshot := testSnapshot()
	first, err := engine.AdjustForScenario(snapshot, scenario)
	require.NoError(t, err)
	second, err := engine.AdjustForScenario(snapshot, scenario)
	require.NoError(t, err)

	// 3200 * 0.7 both times; the adjuster never accumulates across calls.
	expected := decimal.NewFromInt(3200).Mul(decimal.NewFromFloat(0.7))
	assert.True(t, first.MonthlySavings.Equal(expected),
		"expected savings %s, got %s", expected, first.MonthlySavings)
	assert.True(t, second.MonthlySavings.Equal(first.MonthlySavings))
	assert.Equal(t, "30000", first.Metadata["purchaseCost"])
}

func TestAdjustUnknownScenarioType(t *testing.T) {
	engine := NewCalculationEngine()
	scenario := &domain.Scenario{
		Kind:           "lottery",
		TimelineMonths: 12,
	}

	_, err := engine.AdjustForScenario(testSnapshot(), scenario)
	require.Error(t, err)
	assert.True(t, domain.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "invalid scenario type")
}

func TestAdjustRejectsNonPositiveTimeline(t *testing.T) {
	engine := NewCalculationEngine()
	scenario := &domain.Scenario{
		Kind: domain.ScenarioJob,
		Job:  &domain.JobChange{NewSalary: decimal.NewFromInt(7000)},
	}

	_, err := engine.AdjustForScenario(testSnapshot(), scenario)
	require.Error(t, err)
	assert.True(t, domain.IsInvalidInput(err))
}
