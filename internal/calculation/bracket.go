package calculation

import (
	"github.com/cadpayroll/engine/internal/engineerr"
	"github.com/cadpayroll/engine/internal/tables"
	"github.com/cadpayroll/engine/pkg/money"
)

// lookupBracket finds the first bracket whose upper bound is greater than or
// equal to A and returns its rate and constant. Brackets are expected to be
// validated (ascending order, continuous K) by tables.Validate; if no
// bracket covers A, an InvalidTaxTable error is returned.
func lookupBracket(brackets []tables.Bracket, a money.Amount) (rate money.Amount, k money.Amount, err error) {
	for _, b := range brackets {
		if a.LessThanOrEqual(b.Upper) {
			return b.Rate, b.K, nil
		}
	}
	return money.Amount{}, money.Amount{}, engineerr.New(engineerr.InvalidTaxTable, "no bracket covers the given income; table is missing its sentinel bracket")
}

// annualTaxableIncome computes A, the shared annualized taxable income both
// the federal and provincial calculators consume.
func annualTaxableIncome(periods int, grossThisPeriod, rrsp, unionDues, f2, cpp2ThisPeriod, otherPreTaxK3PerPeriod money.Amount) money.Amount {
	p := money.New(int64(periods))
	perPeriod := grossThisPeriod.Sub(rrsp).Sub(unionDues).Sub(f2).Sub(cpp2ThisPeriod).Sub(otherPreTaxK3PerPeriod)
	return money.MaxZero(p.Mul(perPeriod))
}

// cppCredit computes the capped CPP-portion of the K2/K2P federal/provincial
// credit. The 0.0495/0.0595 ratio converts the contribution at the full CPP
// rate down to the rate-credit-eligible base, matching how the published
// annual maximum credit is itself derived.
func cppCredit(periods int, cppBaseThisPeriod money.Amount, maxAnnualCppCreditBase money.Amount) money.Amount {
	p := money.New(int64(periods))
	ratio := money.NewFromFloat(0.0495).Div(money.NewFromFloat(0.0595))
	candidate := p.Mul(cppBaseThisPeriod).Mul(ratio)
	return money.Min(candidate, maxAnnualCppCreditBase)
}

// eiCredit computes the capped EI-portion of the K2/K2P credit.
func eiCredit(periods int, eiPremiumThisPeriod money.Amount, maxAnnualEiCredit money.Amount) money.Amount {
	p := money.New(int64(periods))
	candidate := p.Mul(eiPremiumThisPeriod)
	return money.Min(candidate, maxAnnualEiCredit)
}
