package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/finsim/whatif-simulator/internal/domain"
)

// Profile is the on-disk input to the simulator: one user's financial
// snapshot, an optional what-if scenario, and optional assumption
// overrides. Absent assumptions fall back to the defaults.
type Profile struct {
	Snapshot    domain.FinancialSnapshot `yaml:"snapshot" json:"snapshot"`
	Scenario    *domain.Scenario         `yaml:"scenario,omitempty" json:"scenario,omitempty"`
	Assumptions *domain.Assumptions      `yaml:"assumptions,omitempty" json:"assumptions,omitempty"`
}

// InputParser handles parsing of profile input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a profile from a YAML file and validates it eagerly,
// so a malformed profile fails before any computation starts.
func (ip *InputParser) LoadFromFile(filename string) (*Profile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateProfile(&profile); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}

	return &profile, nil
}

// ValidateProfile validates the loaded profile.
func (ip *InputParser) ValidateProfile(profile *Profile) error {
	if profile.Snapshot.UserID == "" {
		return domain.Invalidf("snapshot user_id is required")
	}
	if err := profile.Snapshot.Validate(); err != nil {
		return err
	}
	if profile.Scenario != nil {
		if err := profile.Scenario.Validate(); err != nil {
			return err
		}
	}
	if profile.Assumptions != nil {
		if err := profile.Assumptions.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// CreateExampleProfile creates an example profile matching the documented
// reference case: 85000 income, 3900 total monthly expenses, a 30000
// portfolio, and a job-change scenario.
func (ip *InputParser) CreateExampleProfile() *Profile {
	return &Profile{
		Snapshot: domain.FinancialSnapshot{
			UserID:  "example-user",
			Income:  decimal.NewFromInt(85000),
			Savings: decimal.NewFromInt(18500),
			Expenses: []domain.Expense{
				{Category: "food", Amount: decimal.NewFromInt(600), Frequency: domain.FrequencyMonthly},
				{Category: "rent", Amount: decimal.NewFromInt(1800), Frequency: domain.FrequencyMonthly},
				{Category: "utilities", Amount: decimal.NewFromInt(350), Frequency: domain.FrequencyMonthly},
				{Category: "entertainment", Amount: decimal.NewFromInt(400), Frequency: domain.FrequencyMonthly},
				{Category: "transportation", Amount: decimal.NewFromInt(250), Frequency: domain.FrequencyMonthly},
				{Category: "shopping", Amount: decimal.NewFromInt(500), Frequency: domain.FrequencyMonthly},
			},
			Investments: []domain.Investment{
				{Type: domain.InvestmentStocks, Amount: decimal.NewFromInt(20000)},
				{Type: domain.InvestmentMutualFunds, Amount: decimal.NewFromInt(5000)},
				{Type: domain.InvestmentFixedDeposits, Amount: decimal.NewFromInt(5000)},
			},
		},
		Scenario: &domain.Scenario{
			Kind:           domain.ScenarioJob,
			TimelineMonths: 12,
			Job: &domain.JobChange{
				NewSalary: decimal.NewFromInt(95000),
			},
		},
	}
}

// WriteExampleProfile writes the example profile as YAML.
func (ip *InputParser) WriteExampleProfile(filename string) error {
	data, err := yaml.Marshal(ip.CreateExampleProfile())
	if err != nil {
		return fmt.Errorf("failed to marshal example profile: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
