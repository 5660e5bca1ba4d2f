package reporting

import (
	"encoding/json"

	"github.com/cadpayroll/engine/internal/domain"
)

// JSONFormatter serializes the payroll result as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.PayrollResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
