package output

import (
	"encoding/json"

	"github.com/finsim/whatif-simulator/internal/domain"
)

// JSONFormatter serializes the simulation result as pretty-printed JSON,
// the shape the dashboard charts consume verbatim.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
