package output

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finsim/whatif-simulator/internal/domain"
	"github.com/finsim/whatif-simulator/pkg/money"
)

var hundred = decimal.NewFromInt(100)

// ConsoleFormatter renders a simulation result as a human-readable report.
// Amounts are rounded to whole currency units here, at the presentation
// boundary; the underlying result keeps full precision.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	buf := &bytes.Buffer{}

	fmt.Fprintf(buf, "WHAT-IF SIMULATION REPORT\n")
	fmt.Fprintf(buf, "=========================\n\n")
	fmt.Fprintf(buf, "Simulation: %s\n", result.ID)
	fmt.Fprintf(buf, "User:       %s\n", result.UserID)
	if result.ScenarioKind != "" {
		fmt.Fprintf(buf, "Scenario:   %s\n", result.ScenarioKind)
	} else {
		fmt.Fprintf(buf, "Scenario:   current path (no change)\n")
	}
	fmt.Fprintf(buf, "Generated:  %s\n\n", result.CreatedAt.Format("2006-01-02 15:04:05 MST"))

	fmt.Fprintf(buf, "BASELINE CASH FLOW (monthly)\n")
	fmt.Fprintf(buf, "  Income:   %s\n", money.New(result.Baseline.MonthlyIncome).Format())
	fmt.Fprintf(buf, "  Expenses: %s\n", money.New(result.Baseline.TotalExpenses()).Format())
	fmt.Fprintf(buf, "  Savings:  %s\n\n", money.New(result.Baseline.MonthlySavings).Format())

	fmt.Fprintf(buf, "RISK PROFILE\n")
	fmt.Fprintf(buf, "  Score:           %s\n", result.RiskProfile.RiskScore.StringFixed(2))
	fmt.Fprintf(buf, "  Classification:  %s\n", result.RiskProfile.Profile)
	fmt.Fprintf(buf, "  Diversification: %s\n\n", result.RiskProfile.DiversificationScore.StringFixed(2))

	fmt.Fprintf(buf, "10-YEAR PROJECTION\n")
	fmt.Fprintf(buf, "%-6s %15s %15s %15s %18s\n", "Year", "Income", "Expenses", "Savings", "Optimized Wealth")
	for _, year := range result.Projection.Years {
		fmt.Fprintf(buf, "%-6d %15s %15s %15s %18s\n",
			year.Year,
			money.New(year.Income).RoundUnit().Decimal.String(),
			money.New(year.Expenses).RoundUnit().Decimal.String(),
			money.New(year.Savings).RoundUnit().Decimal.String(),
			money.New(year.OptimizedWealth).RoundUnit().Decimal.String(),
		)
	}
	fmt.Fprintf(buf, "\n")

	if len(result.Projection.Growth) > 0 {
		fmt.Fprintf(buf, "INVESTMENT GROWTH (10-year)\n")
		for _, g := range result.Projection.Growth {
			final := g.Values[len(g.Values)-1]
			fmt.Fprintf(buf, "  %-14s %s -> %s (%s%% annual)\n",
				g.Class,
				money.New(g.Principal).RoundUnit().Decimal.String(),
				money.New(final).RoundUnit().Decimal.String(),
				g.Rate.Mul(hundred).StringFixed(0),
			)
		}
		fmt.Fprintf(buf, "\n")
	}

	if result.Behavior != nil {
		fmt.Fprintf(buf, "BEHAVIOR\n")
		fmt.Fprintf(buf, "  Spending: %s (recent avg %s)\n",
			result.Behavior.SpendingTrend, money.New(result.Behavior.AverageSpending).Format())
		fmt.Fprintf(buf, "  Savings:  %s (recent avg %s)\n\n",
			result.Behavior.SavingsTrend, money.New(result.Behavior.AverageSavings).Format())
	}

	if len(result.Recommendations) > 0 {
		fmt.Fprintf(buf, "RECOMMENDATIONS\n")
		for _, rec := range result.Recommendations {
			fmt.Fprintf(buf, "  [%s] %s\n", rec.Category, rec.Text)
		}
	}

	return buf.Bytes(), nil
}
