package calculation

import (
	"github.com/cadpayroll/engine/internal/domain"
	"github.com/cadpayroll/engine/internal/tables"
	"github.com/cadpayroll/engine/pkg/money"
)

// FederalCalculator implements the annualization method for federal income
// tax withholding (component C6).
type FederalCalculator struct {
	Tables tables.FederalTables
}

// NewFederalCalculator constructs a calculator bound to one (year, edition)
// federal rate table.
func NewFederalCalculator(t tables.FederalTables) *FederalCalculator {
	return &FederalCalculator{Tables: t}
}

// Calculate derives the federal TaxResult for this period. annualIncome (A)
// is computed once by the orchestrator and shared with the provincial
// calculator; cppBaseThisPeriod must be CPP base only, never base+additional,
// since the CPP tax credit (K2) is defined against the base contribution.
func (f *FederalCalculator) Calculate(periods int, annualIncome money.Amount, profile domain.EmployeeTaxProfile, cppBaseThisPeriod, eiPremiumThisPeriod money.Amount) (domain.TaxResult, error) {
	rate, k, err := lookupBracket(f.Tables.Brackets, annualIncome)
	if err != nil {
		return domain.TaxResult{}, err
	}

	k1 := f.Tables.LowestRate.Mul(profile.FederalClaimAmount)
	cc := cppCredit(periods, cppBaseThisPeriod, f.Tables.MaxAnnualCppCreditBase)
	ec := eiCredit(periods, eiPremiumThisPeriod, f.Tables.MaxAnnualEiCredit)
	k2 := f.Tables.LowestRate.Mul(cc.Add(ec))
	k3 := profile.OtherDeductionsK3
	k4 := money.Min(f.Tables.LowestRate.Mul(annualIncome), f.Tables.LowestRate.Mul(f.Tables.CEA))

	basicAnnualTax := money.MaxZero(rate.Mul(annualIncome).Sub(k).Sub(k1).Sub(k2).Sub(k3).Sub(k4))
	// T1 = T3: no higher-order federal adjustments for standard employees.
	finalAnnualTax := basicAnnualTax

	perPeriod := finalAnnualTax.Div(money.New(int64(periods))).Round2()

	return domain.TaxResult{
		AnnualTaxableIncome:  annualIncome,
		RateUsed:             rate,
		ConstantUsed:         k,
		Credits:              domain.CreditBreakdown{K1: k1, K2: k2, K3: k3, K4: k4},
		BasicAnnualTax:       basicAnnualTax,
		FinalAnnualTax:       finalAnnualTax,
		PerPeriodWithholding: perPeriod,
	}, nil
}
