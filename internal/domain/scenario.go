package domain

import (
	"github.com/shopspring/decimal"
)

// ScenarioKind identifies the hypothetical change being modeled.
type ScenarioKind string

const (
	ScenarioJob      ScenarioKind = "job"
	ScenarioCity     ScenarioKind = "city"
	ScenarioBusiness ScenarioKind = "business"
	ScenarioAsset    ScenarioKind = "asset"
)

// Scenario is a tagged union: Kind selects exactly one of the detail
// structs. Decoding leaves the unused details nil, and Validate rejects a
// mismatch between Kind and the populated detail, so downstream code can
// switch on Kind exhaustively instead of probing dynamic keys.
type Scenario struct {
	Kind           ScenarioKind `yaml:"kind" json:"kind"`
	TimelineMonths int          `yaml:"timeline_months" json:"timeline_months"`

	Job      *JobChange     `yaml:"job,omitempty" json:"job,omitempty"`
	City     *CityMove      `yaml:"city,omitempty" json:"city,omitempty"`
	Business *BusinessStart `yaml:"business,omitempty" json:"business,omitempty"`
	Asset    *AssetPurchase `yaml:"asset,omitempty" json:"asset,omitempty"`
}

// JobChange models switching to a new salary.
type JobChange struct {
	NewSalary decimal.Decimal `yaml:"new_salary" json:"new_salary"` // monthly
}

// CityMove models relocating: new rent plus an added cost-of-living delta.
type CityMove struct {
	NewCity      string          `yaml:"new_city" json:"new_city"`
	ExpectedRent decimal.Decimal `yaml:"expected_rent" json:"expected_rent"`
	CostOfLiving decimal.Decimal `yaml:"cost_of_living" json:"cost_of_living"`
}

// BusinessStart models starting a business. Investment and BusinessType are
// carried as metadata; the cash-flow effect is the fixed setup-cost drag on
// savings.
type BusinessStart struct {
	Investment   decimal.Decimal `yaml:"investment" json:"investment"`
	BusinessType string          `yaml:"business_type" json:"business_type"`
}

// AssetPurchase models a financed purchase. PurchaseCost and AssetType are
// metadata; the cash-flow effect is the fixed EMI drag on savings.
type AssetPurchase struct {
	PurchaseCost decimal.Decimal `yaml:"purchase_cost" json:"purchase_cost"`
	AssetType    string          `yaml:"asset_type" json:"asset_type"`
}

// Validate checks that Kind is known, the timeline is positive, and the
// detail struct matching Kind is present with non-negative amounts. An
// unknown kind fails before any adjustment is applied.
func (s *Scenario) Validate() error {
	if s.TimelineMonths <= 0 {
		return Invalidf("scenario timeline must be a positive number of months, got %d", s.TimelineMonths)
	}

	switch s.Kind {
	case ScenarioJob:
		if s.Job == nil {
			return Invalidf("job scenario requires job details")
		}
		if s.Job.NewSalary.IsNegative() {
			return Invalidf("job scenario: new salary cannot be negative, got %s", s.Job.NewSalary)
		}
	case ScenarioCity:
		if s.City == nil {
			return Invalidf("city scenario requires city details")
		}
		if s.City.ExpectedRent.IsNegative() {
			return Invalidf("city scenario: expected rent cannot be negative, got %s", s.City.ExpectedRent)
		}
		if s.City.CostOfLiving.IsNegative() {
			return Invalidf("city scenario: cost of living cannot be negative, got %s", s.City.CostOfLiving)
		}
	case ScenarioBusiness:
		if s.Business == nil {
			return Invalidf("business scenario requires business details")
		}
		if s.Business.Investment.IsNegative() {
			return Invalidf("business scenario: investment cannot be negative, got %s", s.Business.Investment)
		}
	case ScenarioAsset:
		if s.Asset == nil {
			return Invalidf("asset scenario requires asset details")
		}
		if s.Asset.PurchaseCost.IsNegative() {
			return Invalidf("asset scenario: purchase cost cannot be negative, got %s", s.Asset.PurchaseCost)
		}
	default:
		return Invalidf("invalid scenario type %q", s.Kind)
	}

	return nil
}
