package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsim/whatif-simulator/internal/calculation"
	"github.com/finsim/whatif-simulator/internal/domain"
	"github.com/finsim/whatif-simulator/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st, err := store.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return New(Config{
		Port:   0,
		Log:    zerolog.Nop(),
		Engine: calculation.NewCalculationEngine(),
		Store:  st,
	})
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func testSnapshot(userID string) domain.FinancialSnapshot {
	return domain.FinancialSnapshot{
		UserID:  userID,
		Income:  decimal.NewFromInt(6000),
		Savings: decimal.NewFromInt(12000),
		Expenses: []domain.Expense{
			{Category: "rent", Amount: decimal.NewFromInt(1500), Frequency: domain.FrequencyMonthly},
			{Category: "groceries", Amount: decimal.NewFromInt(600), Frequency: domain.FrequencyMonthly},
		},
		Investments: []domain.Investment{
			{Type: domain.InvestmentStocks, Amount: decimal.NewFromInt(5000)},
			{Type: domain.InvestmentFixedDeposits, Amount: decimal.NewFromInt(5000)},
		},
	}
}

func TestHealth(t *testing.T) {
	rec := doJSON(t, newTestServer(t), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSimulatePersistsHistory(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/simulations", SimulationRequest{
		Snapshot: testSnapshot("user-1"),
		Risks: []domain.DeclaredRisk{
			{Description: "volatile market", Impact: decimal.NewFromInt(8)},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var result domain.SimulationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, "user-1", result.UserID)
	assert.Len(t, result.Projection.Years, 10)
	assert.Len(t, result.Projection.Months, 12)

	rec = doJSON(t, s, http.MethodGet, "/api/v1/users/user-1/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []domain.HistoryEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, result.ID, entries[0].ID)
	require.Len(t, entries[0].Risks, 1)
	assert.Equal(t, "volatile market", entries[0].Risks[0].Description)
}

func TestSimulatePopulatesBehavior(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/simulations", SimulationRequest{Snapshot: testSnapshot("user-7")})
	require.Equal(t, http.StatusCreated, rec.Code)

	var first domain.SimulationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	require.NotNil(t, first.Behavior, "simulate derives behavior from stored history")
	assert.Equal(t, domain.TrendStable, first.Behavior.SpendingTrend, "single run has no direction")

	// Second run spends more and saves less; trends must pick that up.
	snapshot := testSnapshot("user-7")
	snapshot.Expenses = append(snapshot.Expenses, domain.Expense{
		Category: "shopping", Amount: decimal.NewFromInt(400), Frequency: domain.FrequencyMonthly,
	})
	rec = doJSON(t, s, http.MethodPost, "/api/v1/simulations", SimulationRequest{Snapshot: snapshot})
	require.Equal(t, http.StatusCreated, rec.Code)

	var second domain.SimulationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	require.NotNil(t, second.Behavior)
	assert.Equal(t, domain.TrendIncreasing, second.Behavior.SpendingTrend)
	assert.Equal(t, domain.TrendDecreasing, second.Behavior.SavingsTrend)
	assert.True(t, second.Behavior.AverageSpending.Equal(decimal.NewFromInt(2300)),
		"mean of 2500 and 2100, got %s", second.Behavior.AverageSpending)
}

func TestHistoryRoutesWithoutStore(t *testing.T) {
	s := New(Config{
		Port:   0,
		Log:    zerolog.Nop(),
		Engine: calculation.NewCalculationEngine(),
	})

	rec := doJSON(t, s, http.MethodPost, "/api/v1/simulations", SimulationRequest{Snapshot: testSnapshot("user-8")})
	require.Equal(t, http.StatusCreated, rec.Code, "simulation works without a store")

	var result domain.SimulationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Nil(t, result.Behavior, "no history, no behavior metrics")

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/users/user-8/history"},
		{http.MethodGet, "/api/v1/users/user-8/retrospective"},
		{http.MethodDelete, "/api/v1/users/user-8/history"},
	} {
		rec := doJSON(t, s, tc.method, tc.path, nil)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestSimulateRejectsInvalidSnapshot(t *testing.T) {
	s := newTestServer(t)

	snapshot := testSnapshot("user-1")
	snapshot.Income = decimal.NewFromInt(-1)
	rec := doJSON(t, s, http.MethodPost, "/api/v1/simulations", SimulationRequest{Snapshot: snapshot})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "income")
}

func TestSimulateRejectsMalformedBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/simulations", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProjectionDryRun(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/projections", SimulationRequest{Snapshot: testSnapshot("user-2")})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var projection domain.WealthProjection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &projection))
	assert.Len(t, projection.Years, 10)

	// Dry run leaves no history behind.
	rec = doJSON(t, s, http.MethodGet, "/api/v1/users/user-2/history", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRiskProfileEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/risk-profile", RiskProfileRequest{
		Investments: []domain.Investment{
			{Type: domain.InvestmentStocks, Amount: decimal.NewFromInt(2500)},
			{Type: domain.InvestmentMutualFunds, Amount: decimal.NewFromInt(2500)},
			{Type: domain.InvestmentFixedDeposits, Amount: decimal.NewFromInt(2500)},
			{Type: domain.InvestmentOthers, Amount: decimal.NewFromInt(2500)},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var profile domain.RiskProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.True(t, profile.DiversificationScore.Equal(decimal.NewFromFloat(0.75)),
		"equal four-way split scores 0.75, got %s", profile.DiversificationScore)
	assert.Equal(t, domain.ProfileModerate, profile.Profile)
}

func TestBehaviorEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/behavior", BehaviorRequest{
		Spending: []decimal.Decimal{decimal.NewFromInt(3000), decimal.NewFromInt(2500)},
		Savings:  []decimal.Decimal{decimal.NewFromInt(900), decimal.NewFromInt(1000)},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var metrics domain.BehaviorMetrics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &metrics))
	assert.Equal(t, domain.TrendIncreasing, metrics.SpendingTrend)
	assert.Equal(t, domain.TrendDecreasing, metrics.SavingsTrend)
}

func TestRetrospectiveFlow(t *testing.T) {
	s := newTestServer(t)
	s.engine.SetClock(func() time.Time {
		return time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	})

	first := testSnapshot("user-9")
	rec := doJSON(t, s, http.MethodPost, "/api/v1/simulations", SimulationRequest{Snapshot: first})
	require.Equal(t, http.StatusCreated, rec.Code)

	s.engine.SetClock(func() time.Time {
		return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	})
	second := testSnapshot("user-9")
	second.Income = decimal.NewFromInt(8000)
	rec = doJSON(t, s, http.MethodPost, "/api/v1/simulations", SimulationRequest{Snapshot: second})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/v1/users/user-9/retrospective", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var summary domain.RetrospectiveSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	require.Len(t, summary.Records, 2)
	assert.Equal(t, domain.LevelNotAvailable, summary.Records[0].RiskLevel)
	assert.True(t, summary.Records[1].NetGain.IsPositive(),
		"higher income raises the one-year result")
	assert.Equal(t, domain.TrendPositive, summary.Trend)
}

func TestRetrospectiveUnknownUser(t *testing.T) {
	rec := doJSON(t, newTestServer(t), http.MethodGet, "/api/v1/users/nobody/retrospective", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRetrospectiveBadSinceParam(t *testing.T) {
	rec := doJSON(t, newTestServer(t), http.MethodGet, "/api/v1/users/user-1/retrospective?since=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteHistory(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/simulations", SimulationRequest{Snapshot: testSnapshot("user-5")})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, "/api/v1/users/user-5/history", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/v1/users/user-5/history", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
