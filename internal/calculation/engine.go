package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsim/whatif-simulator/internal/advice"
	"github.com/finsim/whatif-simulator/internal/domain"
)

// CalculationEngine orchestrates the what-if pipeline: scenario adjustment,
// trajectory projection, risk scoring and recommendation merging. The
// engine itself is stateless between calls; every computation is a pure
// function of the snapshot, scenario and injected assumptions, so callers
// may fan out across users or scenarios without coordination.
type CalculationEngine struct {
	Assumptions *domain.Assumptions
	Recommender advice.Recommender
	Logger      Logger

	now func() time.Time
}

// NewCalculationEngine creates an engine with default assumptions, the
// rule-based recommender and a no-op logger.
func NewCalculationEngine() *CalculationEngine {
	a := domain.DefaultAssumptions()
	return &CalculationEngine{
		Assumptions: &a,
		Recommender: advice.RuleRecommender{},
		Logger:      NopLogger{},
		now:         time.Now,
	}
}

// NewCalculationEngineWithAssumptions creates an engine with tuned policy
// constants. The assumptions are validated up front so a bad configuration
// fails at construction rather than mid-simulation.
func NewCalculationEngineWithAssumptions(a domain.Assumptions) (*CalculationEngine, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("assumptions validation failed: %w", err)
	}
	return &CalculationEngine{
		Assumptions: &a,
		Recommender: advice.RuleRecommender{},
		Logger:      NopLogger{},
		now:         time.Now,
	}, nil
}

// SetLogger sets the logger for the engine. A nil logger restores the no-op
// default.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// SetRecommender replaces the recommendation collaborator. A nil value
// restores the deterministic rule-based fallback.
func (ce *CalculationEngine) SetRecommender(r advice.Recommender) {
	if r == nil {
		ce.Recommender = advice.RuleRecommender{}
		return
	}
	ce.Recommender = r
}

// SetClock overrides the timestamp source, for tests.
func (ce *CalculationEngine) SetClock(now func() time.Time) {
	if now == nil {
		ce.now = time.Now
		return
	}
	ce.now = now
}

// RunSimulation executes one complete what-if run: validate, adjust for the
// scenario, project, score risk, and merge recommendations. A nil scenario
// simulates the current path unchanged. Validation is eager; a single
// invalid record fails the whole computation with an invalid-input error
// before any numbers are produced.
func (ce *CalculationEngine) RunSimulation(ctx context.Context, snapshot *domain.FinancialSnapshot, scenario *domain.Scenario) (*domain.SimulationResult, error) {
	if snapshot == nil {
		return nil, domain.Invalidf("snapshot is required")
	}
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}

	baseline, err := ce.AdjustForScenario(snapshot, scenario)
	if err != nil {
		return nil, err
	}

	allocation := snapshot.InvestmentAllocation()
	riskProfile, err := ScoreRisk(allocation, ce.Assumptions)
	if err != nil {
		return nil, err
	}

	projection := ce.GenerateWealthProjection(baseline, allocation)

	result := &domain.SimulationResult{
		ID:            uuid.NewString(),
		UserID:        snapshot.UserID,
		CreatedAt:     ce.now().UTC(),
		ScenarioKind:  baseline.ScenarioKind,
		Baseline:      *baseline,
		Projection:    projection,
		RiskProfile:   riskProfile,
		OneYearResult: projection.OneYearResult(),
	}

	recs, err := ce.Recommender.Recommend(ctx, result)
	if err != nil {
		// The recommender is an advisory collaborator; its failure does not
		// invalidate the deterministic computation.
		ce.Logger.Warnf("recommender failed, returning result without recommendations: %v", err)
	} else {
		result.Recommendations = recs
	}

	ce.Logger.Infof("simulation %s complete: scenario=%s one_year_result=%s",
		result.ID, result.ScenarioKind, result.OneYearResult)

	return result, nil
}

// AnalyzeBehavior derives spending/savings trends for a user from monthly
// history series ordered most-recent-first.
func (ce *CalculationEngine) AnalyzeBehavior(spending, savings []decimal.Decimal) domain.BehaviorMetrics {
	return AnalyzeBehavior(spending, savings)
}

// AnalyzeRetrospective scores a user's stored simulation history from the
// given start date onward.
func (ce *CalculationEngine) AnalyzeRetrospective(entries []domain.HistoryEntry, since time.Time) (*domain.RetrospectiveSummary, error) {
	return AnalyzeRetrospective(entries, since)
}
