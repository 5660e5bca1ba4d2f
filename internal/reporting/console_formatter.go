package reporting

import (
	"bytes"
	"fmt"

	"github.com/cadpayroll/engine/internal/domain"
)

// ConsoleFormatter renders a concise, human-readable summary of one
// calculate_payroll result.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.PayrollResult) ([]byte, error) {
	var buf bytes.Buffer
	d := result.CalculationDetails

	fmt.Fprintln(&buf, "PAYROLL CALCULATION")
	fmt.Fprintln(&buf, "===================")
	fmt.Fprintf(&buf, "Edition: %s   Periods/Year: %d\n", d.Edition, d.PeriodsPerYear)
	fmt.Fprintf(&buf, "Pensionable Earnings: %s   Insurable Earnings: %s\n", d.PensionableEarnings, d.InsurableEarnings)
	fmt.Fprintf(&buf, "Annual Taxable Income (A): %s\n", d.AnnualTaxableIncome)
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "CPP:  base=%s additional=%s enhancement_f2=%s employee=%s employer=%s\n",
		result.Cpp.Base, result.Cpp.Additional, result.Cpp.EnhancementF2, result.Cpp.EmployeeTotal, result.Cpp.EmployerTotal)
	fmt.Fprintf(&buf, "EI:   employee=%s employer=%s\n", result.Ei.EmployeePremium, result.Ei.EmployerPremium)
	fmt.Fprintf(&buf, "Federal tax:    per-period=%s (rate=%s)\n", result.Federal.PerPeriodWithholding, result.Federal.RateUsed)
	fmt.Fprintf(&buf, "Provincial tax: per-period=%s (rate=%s, bpa=%s/%s)\n",
		result.Provincial.PerPeriodWithholding, result.Provincial.RateUsed, d.ProvincialBPAUsed, d.ProvincialBPAFormula)

	if d.OntarioSurtax.IsPositive() || d.OntarioHealthPremium.IsPositive() {
		fmt.Fprintf(&buf, "  Ontario surtax=%s health premium=%s\n", d.OntarioSurtax, d.OntarioHealthPremium)
	}
	if d.BCTaxReduction.IsPositive() {
		fmt.Fprintf(&buf, "  BC tax reduction=%s\n", d.BCTaxReduction)
	}
	if d.AlbertaK5P.IsPositive() {
		fmt.Fprintf(&buf, "  Alberta K5P=%s\n", d.AlbertaK5P)
	}

	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Total employee deductions: %s\n", result.TotalEmployeeDeductions)
	fmt.Fprintf(&buf, "Total employer cost:       %s\n", result.TotalEmployerCost)
	fmt.Fprintf(&buf, "Net pay:                   %s\n", result.NetPay)

	return buf.Bytes(), nil
}
