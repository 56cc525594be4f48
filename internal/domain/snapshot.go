package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense frequencies accepted in a snapshot.
const (
	FrequencyOneTime = "one-time"
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
)

// Investment classes recognized by the risk scorer and projector.
const (
	InvestmentStocks        = "stocks"
	InvestmentMutualFunds   = "mutualFunds"
	InvestmentFixedDeposits = "fixedDeposits"
	InvestmentOthers        = "others"
)

// FinancialSnapshot is a point-in-time record of a user's finances: monthly
// income, expense list, liquid savings, investments and owned assets. It is
// the read-only input to every simulation; the core never mutates it.
type FinancialSnapshot struct {
	UserID      string          `yaml:"user_id" json:"user_id"`
	Income      decimal.Decimal `yaml:"income" json:"income"` // monthly
	Savings     decimal.Decimal `yaml:"savings" json:"savings"`
	Expenses    []Expense       `yaml:"expenses" json:"expenses"`
	Investments []Investment    `yaml:"investments" json:"investments"`
	Assets      []Asset         `yaml:"assets,omitempty" json:"assets,omitempty"`
}

// Expense is a single recurring or one-time outflow.
type Expense struct {
	Category  string          `yaml:"category" json:"category"`
	Amount    decimal.Decimal `yaml:"amount" json:"amount"`
	Frequency string          `yaml:"frequency" json:"frequency"`
	Date      time.Time       `yaml:"date,omitempty" json:"date,omitempty"`
}

// Investment is a holding in one of the recognized investment classes.
type Investment struct {
	Type       string          `yaml:"type" json:"type"`
	Amount     decimal.Decimal `yaml:"amount" json:"amount"`
	ReturnRate decimal.Decimal `yaml:"return_rate,omitempty" json:"return_rate,omitempty"` // annual, optional; class default applies when zero
	StartDate  time.Time       `yaml:"start_date,omitempty" json:"start_date,omitempty"`
}

// Asset is a non-investment holding (property, vehicle, etc.).
type Asset struct {
	Name         string          `yaml:"name" json:"name"`
	Value        decimal.Decimal `yaml:"value" json:"value"`
	PurchaseDate time.Time       `yaml:"purchase_date,omitempty" json:"purchase_date,omitempty"`
}

// Validate checks snapshot invariants: non-negative amounts everywhere and a
// recognized frequency on every expense. Validation is eager; a single bad
// record rejects the whole snapshot.
func (fs *FinancialSnapshot) Validate() error {
	if fs.Income.IsNegative() {
		return Invalidf("income cannot be negative, got %s", fs.Income)
	}
	if fs.Savings.IsNegative() {
		return Invalidf("savings cannot be negative, got %s", fs.Savings)
	}
	for i, e := range fs.Expenses {
		if e.Category == "" {
			return Invalidf("expense %d: category is required", i)
		}
		if e.Amount.IsNegative() {
			return Invalidf("expense %q: amount cannot be negative, got %s", e.Category, e.Amount)
		}
		switch e.Frequency {
		case FrequencyOneTime, FrequencyMonthly, FrequencyYearly:
		case "":
			return Invalidf("expense %q: frequency is required", e.Category)
		default:
			return Invalidf("expense %q: unknown frequency %q", e.Category, e.Frequency)
		}
	}
	for i, inv := range fs.Investments {
		if inv.Type == "" {
			return Invalidf("investment %d: type is required", i)
		}
		if inv.Amount.IsNegative() {
			return Invalidf("investment %q: amount cannot be negative, got %s", inv.Type, inv.Amount)
		}
	}
	for _, a := range fs.Assets {
		if a.Value.IsNegative() {
			return Invalidf("asset %q: value cannot be negative, got %s", a.Name, a.Value)
		}
	}
	return nil
}

// MonthlyExpenses normalizes the expense list to a category -> monthly
// amount map. Yearly expenses are spread over 12 months; one-time expenses
// are amortized over 12 months as well, so a recent large purchase weighs on
// the projected cash flow for one projection year rather than distorting a
// single month.
func (fs *FinancialSnapshot) MonthlyExpenses() map[string]decimal.Decimal {
	twelve := decimal.NewFromInt(12)
	out := make(map[string]decimal.Decimal, len(fs.Expenses))
	for _, e := range fs.Expenses {
		monthly := e.Amount
		switch e.Frequency {
		case FrequencyYearly, FrequencyOneTime:
			monthly = e.Amount.Div(twelve)
		}
		out[e.Category] = out[e.Category].Add(monthly)
	}
	return out
}

// TotalMonthlyExpenses sums the normalized monthly expense map.
func (fs *FinancialSnapshot) TotalMonthlyExpenses() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range fs.MonthlyExpenses() {
		total = total.Add(amount)
	}
	return total
}

// MonthlySavings is income minus total monthly expenses. Negative values
// propagate; an overspending profile is a valid input, not an error.
func (fs *FinancialSnapshot) MonthlySavings() decimal.Decimal {
	return fs.Income.Sub(fs.TotalMonthlyExpenses())
}

// InvestmentAllocation folds the investment list into a class -> amount map.
// Unknown types are grouped under "others" so the risk scorer always sees
// the four recognized classes.
func (fs *FinancialSnapshot) InvestmentAllocation() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, 4)
	for _, inv := range fs.Investments {
		class := inv.Type
		switch class {
		case InvestmentStocks, InvestmentMutualFunds, InvestmentFixedDeposits:
		default:
			class = InvestmentOthers
		}
		out[class] = out[class].Add(inv.Amount)
	}
	return out
}

// TotalInvested sums all investment principals.
func (fs *FinancialSnapshot) TotalInvested() decimal.Decimal {
	total := decimal.Zero
	for _, inv := range fs.Investments {
		total = total.Add(inv.Amount)
	}
	return total
}
