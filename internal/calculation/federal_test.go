package calculation

import (
	"testing"

	"github.com/cadpayroll/engine/internal/domain"
	"github.com/cadpayroll/engine/internal/tables"
	"github.com/cadpayroll/engine/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFederalTables() tables.FederalTables {
	return tables.FederalTables{
		BPAF:                   money.NewFromFloat(16129.00),
		CEA:                    money.NewFromFloat(1471.00),
		MaxAnnualCppCreditBase: money.NewFromFloat(3356.10),
		MaxAnnualEiCredit:      money.NewFromFloat(1077.48),
		LowestRate:             money.NewFromFloat(0.14),
		Brackets: []tables.Bracket{
			{Upper: money.NewFromFloat(57375.00), Rate: money.NewFromFloat(0.14), K: money.Zero},
			{Upper: money.NewFromFloat(114750.00), Rate: money.NewFromFloat(0.205), K: money.NewFromFloat(3729.38)},
			{Upper: money.NewFromFloat(999999999.99), Rate: money.NewFromFloat(0.26), K: money.NewFromFloat(10040.63)},
		},
	}
}

func TestFederalZeroIncomeProducesZeroTax(t *testing.T) {
	calc := NewFederalCalculator(testFederalTables())
	result, err := calc.Calculate(26, money.Zero, domain.EmployeeTaxProfile{FederalClaimAmount: money.NewFromFloat(16129.00)}, money.Zero, money.Zero)
	require.NoError(t, err)
	assert.True(t, result.FinalAnnualTax.IsZero())
	assert.True(t, result.PerPeriodWithholding.IsZero())
}

func TestFederalBracketLookupUsesFirstQualifyingBracket(t *testing.T) {
	calc := NewFederalCalculator(testFederalTables())
	result, err := calc.Calculate(26, money.NewFromFloat(40000), domain.EmployeeTaxProfile{}, money.Zero, money.Zero)
	require.NoError(t, err)
	assert.True(t, result.RateUsed.Equal(money.NewFromFloat(0.14)))
}

func TestFederalTaxNeverNegative(t *testing.T) {
	calc := NewFederalCalculator(testFederalTables())
	result, err := calc.Calculate(26, money.NewFromFloat(5000), domain.EmployeeTaxProfile{FederalClaimAmount: money.NewFromFloat(16129.00)}, money.Zero, money.Zero)
	require.NoError(t, err)
	assert.False(t, result.BasicAnnualTax.IsNegative())
}

func TestFederalK4CapsAtCEA(t *testing.T) {
	calc := NewFederalCalculator(testFederalTables())
	result, err := calc.Calculate(26, money.NewFromFloat(200000), domain.EmployeeTaxProfile{}, money.Zero, money.Zero)
	require.NoError(t, err)

	maxK4 := calc.Tables.LowestRate.Mul(calc.Tables.CEA)
	assert.True(t, result.Credits.K4.Equal(maxK4))
}

func TestFederalK2UsesCppBaseNotTotal(t *testing.T) {
	calc := NewFederalCalculator(testFederalTables())
	// cpp.Additional must never be passed as cppBaseThisPeriod; this test
	// only exercises the base-only parameter the calculator accepts.
	result, err := calc.Calculate(26, money.NewFromFloat(40000), domain.EmployeeTaxProfile{}, money.NewFromFloat(100), money.NewFromFloat(10))
	require.NoError(t, err)
	assert.True(t, result.Credits.K2.IsPositive())
}

func TestFederalMissingBracketSentinelErrors(t *testing.T) {
	badTables := testFederalTables()
	badTables.Brackets = badTables.Brackets[:1]
	calc := NewFederalCalculator(badTables)

	_, err := calc.Calculate(26, money.NewFromFloat(999999999), domain.EmployeeTaxProfile{}, money.Zero, money.Zero)
	require.Error(t, err)
}
