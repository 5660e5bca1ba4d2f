// Package reporting renders a PayrollResult for a human or for a calling
// system: a console summary and JSON. PDF paystubs, T4 slips, and CSV batch
// exports are out of scope and are not implemented here.
package reporting

import "github.com/cadpayroll/engine/internal/domain"

// Formatter renders a PayrollResult to bytes. Implementations are pure: no
// side effects beyond deterministic formatting.
type Formatter interface {
	Format(result *domain.PayrollResult) ([]byte, error)
	Name() string
}

var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	JSONFormatter{},
}

// GetFormatterByName fetches a registered formatter by its canonical name.
func GetFormatterByName(name string) Formatter {
	for _, f := range builtInFormatters {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// AvailableFormatterNames returns the canonical formatter names, for CLI help
// text and validation.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	return names
}
