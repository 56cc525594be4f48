// Package store persists simulation history in an embedded sqlite
// database. The history feeds the retrospective analyzer; the computation
// core itself never touches storage.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/finsim/whatif-simulator/internal/domain"
)

// Store wraps the sqlite simulation-history database.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the history database at dbPath. Use ":memory:"
// for an ephemeral store in tests.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dbPath, err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS simulations (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		scenario_kind TEXT NOT NULL DEFAULT '',
		one_year_result TEXT NOT NULL,
		monthly_expenses TEXT NOT NULL DEFAULT '0',
		monthly_savings TEXT NOT NULL DEFAULT '0',
		risks TEXT NOT NULL DEFAULT '[]',
		opportunities TEXT NOT NULL DEFAULT '[]'
	);
	CREATE INDEX IF NOT EXISTS idx_simulations_user_date
		ON simulations (user_id, created_at);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveEntry persists one history entry. A missing ID is assigned.
func (s *Store) SaveEntry(entry *domain.HistoryEntry) error {
	if entry.UserID == "" {
		return domain.Invalidf("history entry requires a user id")
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now().UTC()
	}

	risks, err := json.Marshal(entry.Risks)
	if err != nil {
		return fmt.Errorf("failed to marshal risks: %w", err)
	}
	opportunities, err := json.Marshal(entry.Opportunities)
	if err != nil {
		return fmt.Errorf("failed to marshal opportunities: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO simulations (id, user_id, created_at, scenario_kind, one_year_result, monthly_expenses, monthly_savings, risks, opportunities)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.UserID,
		entry.Date.UTC().Format(time.RFC3339Nano),
		string(entry.ScenarioKind),
		entry.OneYearResult.String(),
		entry.MonthlyExpenses.String(),
		entry.MonthlySavings.String(),
		string(risks),
		string(opportunities),
	)
	if err != nil {
		return fmt.Errorf("failed to insert simulation %s: %w", entry.ID, err)
	}
	return nil
}

// SaveResult records a completed simulation, with optional declared risks
// and opportunities attached for later retrospective scoring.
func (s *Store) SaveResult(result *domain.SimulationResult, risks []domain.DeclaredRisk, opportunities []domain.DeclaredOpportunity) error {
	entry := &domain.HistoryEntry{
		ID:              result.ID,
		UserID:          result.UserID,
		Date:            result.CreatedAt,
		ScenarioKind:    result.ScenarioKind,
		OneYearResult:   result.OneYearResult,
		MonthlyExpenses: result.Baseline.TotalExpenses(),
		MonthlySavings:  result.Baseline.MonthlySavings,
		Risks:           risks,
		Opportunities:   opportunities,
	}
	return s.SaveEntry(entry)
}

// ListHistory returns a user's simulation history ordered oldest first,
// the ordering the retrospective analyzer expects. An unknown user yields
// a not-found error rather than an empty walk.
func (s *Store) ListHistory(userID string) ([]domain.HistoryEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, created_at, scenario_kind, one_year_result, monthly_expenses, monthly_savings, risks, opportunities
		FROM simulations
		WHERE user_id = ?
		ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history for %s: %w", userID, err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var (
			entry         domain.HistoryEntry
			createdAt     string
			kind          string
			result        string
			expenses      string
			savings       string
			risks         string
			opportunities string
		)
		if err := rows.Scan(&entry.ID, &entry.UserID, &createdAt, &kind, &result, &expenses, &savings, &risks, &opportunities); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}

		entry.Date, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date %q: %w", createdAt, err)
		}
		entry.ScenarioKind = domain.ScenarioKind(kind)
		entry.OneYearResult, err = decimal.NewFromString(result)
		if err != nil {
			return nil, fmt.Errorf("failed to parse one-year result %q: %w", result, err)
		}
		entry.MonthlyExpenses, err = decimal.NewFromString(expenses)
		if err != nil {
			return nil, fmt.Errorf("failed to parse monthly expenses %q: %w", expenses, err)
		}
		entry.MonthlySavings, err = decimal.NewFromString(savings)
		if err != nil {
			return nil, fmt.Errorf("failed to parse monthly savings %q: %w", savings, err)
		}
		if err := json.Unmarshal([]byte(risks), &entry.Risks); err != nil {
			return nil, fmt.Errorf("failed to unmarshal risks: %w", err)
		}
		if err := json.Unmarshal([]byte(opportunities), &entry.Opportunities); err != nil {
			return nil, fmt.Errorf("failed to unmarshal opportunities: %w", err)
		}

		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history iteration failed: %w", err)
	}

	if len(entries) == 0 {
		return nil, domain.NotFoundf("no simulation history for user %s", userID)
	}
	return entries, nil
}

// DeleteUser removes all history for a user, honoring profile deletion.
func (s *Store) DeleteUser(userID string) error {
	_, err := s.db.Exec(`DELETE FROM simulations WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete history for %s: %w", userID, err)
	}
	return nil
}
