package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/finsim/whatif-simulator/internal/calculation"
	"github.com/finsim/whatif-simulator/internal/domain"
)

// SimulationRequest is the body of POST /api/v1/simulations. Declared risks
// and opportunities are optional annotations persisted with the run so the
// retrospective can score them later.
type SimulationRequest struct {
	Snapshot      domain.FinancialSnapshot     `json:"snapshot"`
	Scenario      *domain.Scenario             `json:"scenario,omitempty"`
	Risks         []domain.DeclaredRisk        `json:"risks,omitempty"`
	Opportunities []domain.DeclaredOpportunity `json:"opportunities,omitempty"`
}

// RiskProfileRequest is the body of POST /api/v1/risk-profile.
type RiskProfileRequest struct {
	Investments []domain.Investment `json:"investments"`
}

// BehaviorRequest carries monthly history series, most recent first.
type BehaviorRequest struct {
	Spending []decimal.Decimal `json:"spending"`
	Savings  []decimal.Decimal `json:"savings"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req SimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, domain.Invalidf("invalid request body: %v", err))
		return
	}

	result, err := s.engine.RunSimulation(r.Context(), &req.Snapshot, req.Scenario)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if s.store != nil {
		if err := s.store.SaveResult(result, req.Risks, req.Opportunities); err != nil {
			s.log.Error().Err(err).Str("simulation_id", result.ID).Msg("Failed to persist simulation")
			s.writeError(w, err)
			return
		}
		s.attachBehavior(result)
	}

	s.writeJSON(w, http.StatusCreated, result)
}

// attachBehavior derives spending/savings trends from the user's stored
// history, which at this point includes the run just persisted. A history
// read failure only costs the advisory field, never the simulation.
func (s *Server) attachBehavior(result *domain.SimulationResult) {
	entries, err := s.store.ListHistory(result.UserID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", result.UserID).Msg("Failed to load history for behavior analysis")
		return
	}

	// The analyzer expects most-recent-first series; history lists oldest
	// first.
	spending := make([]decimal.Decimal, 0, len(entries))
	savings := make([]decimal.Decimal, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		spending = append(spending, entries[i].MonthlyExpenses)
		savings = append(savings, entries[i].MonthlySavings)
	}

	metrics := s.engine.AnalyzeBehavior(spending, savings)
	result.Behavior = &metrics
}

// handleProjection is the dry-run variant of handleSimulate: same
// computation, nothing persisted, only the projection series returned.
func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	var req SimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, domain.Invalidf("invalid request body: %v", err))
		return
	}

	result, err := s.engine.RunSimulation(r.Context(), &req.Snapshot, req.Scenario)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result.Projection)
}

func (s *Server) handleRiskProfile(w http.ResponseWriter, r *http.Request) {
	var req RiskProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, domain.Invalidf("invalid request body: %v", err))
		return
	}

	snapshot := domain.FinancialSnapshot{Investments: req.Investments}
	profile, err := calculation.ScoreRisk(snapshot.InvestmentAllocation(), s.engine.Assumptions)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleBehavior(w http.ResponseWriter, r *http.Request) {
	var req BehaviorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, domain.Invalidf("invalid request body: %v", err))
		return
	}

	s.writeJSON(w, http.StatusOK, s.engine.AnalyzeBehavior(req.Spending, req.Savings))
}

func (s *Server) handleRetrospective(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	userID := chi.URLParam(r, "userID")

	var since time.Time
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := parseSince(raw)
		if err != nil {
			s.writeError(w, domain.Invalidf("invalid since parameter %q: expected YYYY-MM-DD or RFC 3339", raw))
			return
		}
		since = parsed
	}

	entries, err := s.store.ListHistory(userID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	summary, err := s.engine.AnalyzeRetrospective(entries, since)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	entries, err := s.store.ListHistory(chi.URLParam(r, "userID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	if err := s.store.DeleteUser(chi.URLParam(r, "userID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// requireStore rejects history-backed routes when the server was built
// without a store. Simulation routes keep working; only persistence and
// history reads are unavailable.
func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		s.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "history store not configured"})
		return false
	}
	return true
}

func parseSince(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeError maps domain error kinds onto HTTP status codes. Anything
// outside the taxonomy is a 500 with a generic message; the detail goes to
// the log, not the client.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		status := http.StatusInternalServerError
		switch domainErr.Kind {
		case domain.KindInvalidInput:
			status = http.StatusBadRequest
		case domain.KindNotFound:
			status = http.StatusNotFound
		}
		s.writeJSON(w, status, errorResponse{Error: domainErr.Message})
		return
	}

	s.log.Error().Err(err).Msg("Internal error")
	s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}
