package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/finsim/whatif-simulator/internal/domain"
)

// CSVFormatter writes the yearly projection as CSV, one row per year.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"Year", "Income", "Expenses", "Savings", "OptimizedWealth", "InvestmentReturns"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, year := range result.Projection.Years {
		row := []string{
			strconv.Itoa(year.Year),
			year.Income.StringFixed(2),
			year.Expenses.StringFixed(2),
			year.Savings.StringFixed(2),
			year.OptimizedWealth.StringFixed(2),
			year.InvestmentReturns.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
