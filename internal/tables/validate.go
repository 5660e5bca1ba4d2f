package tables

import (
	"github.com/cadpayroll/engine/internal/domain"
	"github.com/cadpayroll/engine/internal/engineerr"
	"github.com/cadpayroll/engine/pkg/money"
)

// continuityTolerance bounds the acceptable drift between a published
// bracket constant and its recomputed value, absorbing the rounding the
// authority applies when it publishes K to a handful of decimal places.
var continuityTolerance = money.NewFromFloat(0.01)

// validateBrackets enforces the structural invariants of one bracket table:
// strictly ascending upper bounds, rates in [0,1], and K values matching the
// continuous piecewise-linear derivation of the rate schedule. The final
// bracket is taken as the open-ended top bracket: its upper bound is not
// checked for order, and nothing here checks that it covers every income.
func validateBrackets(brackets []Bracket) error {
	if len(brackets) == 0 {
		return engineerr.New(engineerr.InvalidTaxTable, "bracket table has no entries")
	}
	prevUpper := money.Zero
	prevRate := money.Zero
	runningK := money.Zero
	for i, b := range brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(money.New(1)) {
			return engineerr.Newf(engineerr.InvalidTaxTable, "bracket %d rate %s out of [0,1]", i, b.Rate)
		}
		isSentinel := i == len(brackets)-1
		if !isSentinel && b.Upper.LessThanOrEqual(prevUpper) && i > 0 {
			return engineerr.Newf(engineerr.InvalidTaxTable, "bracket %d upper bound %s not strictly ascending", i, b.Upper)
		}
		if i > 0 {
			runningK = runningK.Add(b.Rate.Sub(prevRate).Mul(prevUpper))
		}
		diff := b.K.Sub(runningK)
		if diff.IsNegative() {
			diff = diff.Neg()
		}
		if diff.GreaterThan(continuityTolerance) {
			return engineerr.Newf(engineerr.InvalidTaxTable, "bracket %d constant K=%s does not match continuous derivation %s", i, b.K, runningK)
		}
		prevUpper = b.Upper
		prevRate = b.Rate
	}
	return nil
}

// validateFederal checks the federal table's structural invariants.
func validateFederal(f FederalTables) error {
	if err := validateBrackets(f.Brackets); err != nil {
		return err
	}
	if f.LowestRate.IsNegative() || f.LowestRate.GreaterThan(money.New(1)) {
		return engineerr.New(engineerr.InvalidTaxTable, "federal lowest_rate out of [0,1]")
	}
	return nil
}

// validateProvincial checks that the jurisdiction set is exactly the closed
// set of 12 and that every entry's brackets are internally consistent.
func validateProvincial(p ProvincialTables) error {
	if len(p) != len(domain.AllJurisdictions) {
		return engineerr.Newf(engineerr.InvalidTaxTable, "provincial table has %d jurisdictions, expected %d", len(p), len(domain.AllJurisdictions))
	}
	for _, j := range domain.AllJurisdictions {
		entry, ok := p[j]
		if !ok {
			return engineerr.Newf(engineerr.InvalidTaxTable, "provincial table missing jurisdiction %s", j)
		}
		if err := validateBrackets(entry.Brackets); err != nil {
			return engineerr.Newf(engineerr.InvalidTaxTable, "jurisdiction %s: %v", j, err)
		}
	}
	return nil
}

// validateCppEi checks that rates fall in [0,1] and caps are non-negative.
func validateCppEi(c CppEiTables) error {
	rates := []money.Amount{c.BaseRate, c.AdditionalRate, c.EI.EmployeeRate}
	for _, r := range rates {
		if r.IsNegative() || r.GreaterThan(money.New(1)) {
			return engineerr.New(engineerr.InvalidTaxTable, "cpp/ei rate out of [0,1]")
		}
	}
	return nil
}

// Validate runs every structural invariant against a fully-parsed table
// bundle. It is run once at load time; a violation here fails
// startup/table-refresh, never an individual calculation.
func Validate(t *TaxTables) error {
	if err := validateFederal(t.Federal); err != nil {
		return err
	}
	if err := validateProvincial(t.Provincial); err != nil {
		return err
	}
	if err := validateCppEi(t.CppEi); err != nil {
		return err
	}
	return nil
}
