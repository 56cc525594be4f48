package store

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsim/whatif-simulator/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndListHistory(t *testing.T) {
	s := openTestStore(t)

	first := &domain.HistoryEntry{
		UserID:          "user-1",
		Date:            time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		ScenarioKind:    domain.ScenarioJob,
		OneYearResult:   decimal.NewFromInt(1000),
		MonthlyExpenses: decimal.NewFromInt(2100),
		MonthlySavings:  decimal.NewFromInt(3900),
		Risks: []domain.DeclaredRisk{
			{Description: "market downturn", Impact: decimal.NewFromInt(8)},
		},
	}
	second := &domain.HistoryEntry{
		UserID:        "user-1",
		Date:          time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		ScenarioKind:  domain.ScenarioAsset,
		OneYearResult: decimal.NewFromInt(1500),
		Opportunities: []domain.DeclaredOpportunity{
			{Description: "bonus", PotentialBenefit: decimal.NewFromInt(400)},
		},
	}

	// Insert newest first; listing must still come back oldest first.
	require.NoError(t, s.SaveEntry(second))
	require.NoError(t, s.SaveEntry(first))
	assert.NotEmpty(t, first.ID, "save assigns an id")

	entries, err := s.ListHistory("user-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, domain.ScenarioJob, entries[0].ScenarioKind)
	assert.True(t, entries[0].OneYearResult.Equal(decimal.NewFromInt(1000)))
	assert.True(t, entries[0].MonthlyExpenses.Equal(decimal.NewFromInt(2100)))
	assert.True(t, entries[0].MonthlySavings.Equal(decimal.NewFromInt(3900)))
	require.Len(t, entries[0].Risks, 1)
	assert.Equal(t, "market downturn", entries[0].Risks[0].Description)
	assert.True(t, entries[0].Risks[0].Impact.Equal(decimal.NewFromInt(8)))

	assert.Equal(t, domain.ScenarioAsset, entries[1].ScenarioKind)
	require.Len(t, entries[1].Opportunities, 1)
	assert.True(t, entries[1].Opportunities[0].PotentialBenefit.Equal(decimal.NewFromInt(400)))
}

func TestListHistoryUnknownUser(t *testing.T) {
	s := openTestStore(t)

	_, err := s.ListHistory("nobody")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestSaveEntryRequiresUser(t *testing.T) {
	s := openTestStore(t)

	err := s.SaveEntry(&domain.HistoryEntry{OneYearResult: decimal.NewFromInt(1)})
	require.Error(t, err)
	assert.True(t, domain.IsInvalidInput(err))
}

func TestSaveResult(t *testing.T) {
	s := openTestStore(t)

	result := &domain.SimulationResult{
		ID:            "sim-1",
		UserID:        "user-2",
		CreatedAt:     time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		ScenarioKind:  domain.ScenarioBusiness,
		OneYearResult: decimal.NewFromFloat(34944.56),
		Baseline: domain.AdjustedBaseline{
			Expenses:       map[string]decimal.Decimal{"rent": decimal.NewFromInt(1200)},
			MonthlySavings: decimal.NewFromInt(2400),
		},
	}
	require.NoError(t, s.SaveResult(result, nil, nil))

	entries, err := s.ListHistory("user-2")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "sim-1", entries[0].ID)
	assert.True(t, entries[0].OneYearResult.Equal(decimal.NewFromFloat(34944.56)))
	assert.True(t, entries[0].MonthlyExpenses.Equal(decimal.NewFromInt(1200)), "baseline expenses carried into history")
	assert.True(t, entries[0].MonthlySavings.Equal(decimal.NewFromInt(2400)))
}

func TestDeleteUser(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveEntry(&domain.HistoryEntry{
		UserID:        "user-3",
		OneYearResult: decimal.NewFromInt(100),
	}))
	require.NoError(t, s.DeleteUser("user-3"))

	_, err := s.ListHistory("user-3")
	assert.True(t, domain.IsNotFound(err))
}
