package domain

import (
	"time"

	"github.com/cadpayroll/engine/pkg/money"
)

// EmployeeTaxProfile is the immutable per-request snapshot of an employee's
// declared tax-form state.
type EmployeeTaxProfile struct {
	FederalClaimAmount    money.Amount // TC
	ProvincialClaimAmount money.Amount // TCP
	RRSPPerPeriod         money.Amount
	UnionDuesPerPeriod    money.Amount
	OtherDeductionsK3     money.Amount // reduces taxable income; default zero
	IsCppExempt           bool
	IsEiExempt            bool
	IsCpp2Exempt          bool // CPT30 on file
}

// PeriodEarnings is the gross-earnings breakdown for a single pay period.
type PeriodEarnings struct {
	GrossRegular               money.Amount
	GrossOvertime              money.Amount
	HolidayPay                 money.Amount
	HolidayPremium             money.Amount
	VacationPayout             money.Amount
	OtherTaxableEarnings       money.Amount
	TaxableBenefitsPensionable money.Amount // included in CPP/taxable base, excluded from EI
	NonCashTaxableBenefits     money.Amount
}

// PensionableEarnings sums every earning component that counts toward CPP
// and the federal/provincial taxable base. Reimbursements are never part of
// PeriodEarnings, so no exclusion is needed here.
func (p PeriodEarnings) PensionableEarnings() money.Amount {
	return p.GrossRegular.
		Add(p.GrossOvertime).
		Add(p.HolidayPay).
		Add(p.HolidayPremium).
		Add(p.VacationPayout).
		Add(p.OtherTaxableEarnings).
		Add(p.TaxableBenefitsPensionable).
		Add(p.NonCashTaxableBenefits)
}

// InsurableEarnings is pensionable earnings minus the pensionable taxable
// benefits and the non-cash taxable benefits. EI premiums are assessed on
// cash earnings only; a taxable benefit (e.g. a company car) adds to the
// CPP/tax base without adding to the insurable base.
func (p PeriodEarnings) InsurableEarnings() money.Amount {
	return p.PensionableEarnings().Sub(p.TaxableBenefitsPensionable).Sub(p.NonCashTaxableBenefits)
}

// YTDState is the prior-to-this-period cumulative state the calling system
// supplies. The engine reads it; it never mutates it, and it never persists
// it between calls — caller-owned storage updates YTDState after each
// calculation and passes the new totals in on the next call.
type YTDState struct {
	PensionableEarnings money.Amount
	CppBase             money.Amount
	CppAdditional       money.Amount
	InsurableEarnings   money.Amount
	EiPremium           money.Amount
	GrossTaxable        money.Amount
}

// CppContribution is the result of the CPP calculator (component C4).
type CppContribution struct {
	Base          money.Amount
	Additional    money.Amount
	EnhancementF2 money.Amount
	EmployeeTotal money.Amount // Base + Additional
	EmployerTotal money.Amount // statutory match, equals EmployeeTotal
}

// EiContribution is the result of the EI calculator (component C5).
type EiContribution struct {
	EmployeePremium money.Amount
	EmployerPremium money.Amount
}

// CreditBreakdown captures every credit term used to derive a jurisdiction's
// basic annual tax, named after the K-constants the federal and provincial
// annualization formulas use (K1 personal amount, K2 CPP/EI premiums, K3
// other deductions, K4 Canada Employment Amount, K5P Alberta supplemental).
type CreditBreakdown struct {
	K1  money.Amount
	K2  money.Amount
	K3  money.Amount
	K4  money.Amount
	K5P money.Amount // Alberta only; zero elsewhere
}

// TaxResult is the outcome of either the federal or a provincial/territorial
// tax calculator.
type TaxResult struct {
	AnnualTaxableIncome  money.Amount // A
	RateUsed             money.Amount
	ConstantUsed         money.Amount
	Credits              CreditBreakdown
	BasicAnnualTax       money.Amount // T3 (federal) / T4 (provincial)
	FinalAnnualTax       money.Amount // T1 (federal) / T2 (provincial)
	PerPeriodWithholding money.Amount
}

// PayrollRequest bundles every input the orchestrator (C8) needs for a
// single calculate_payroll call.
type PayrollRequest struct {
	PayDate                time.Time
	Frequency              PayFrequency
	Jurisdiction           Jurisdiction
	Profile                EmployeeTaxProfile
	Earnings               PeriodEarnings
	YTD                    YTDState
	OtherPreTaxK3PerPeriod money.Amount // default zero
	OtherPostTaxPerPeriod  money.Amount // default zero
}

// CalculationDetails is the structured audit record echoing every
// intermediate factor the orchestrator consumed: a typed schema rather than
// a free-form map, so callers can rely on its field names across releases.
type CalculationDetails struct {
	Edition              TaxEdition
	PeriodsPerYear       int
	PensionableEarnings  money.Amount
	InsurableEarnings    money.Amount
	AnnualTaxableIncome  money.Amount
	FederalBPAUsed       money.Amount
	ProvincialBPAUsed    money.Amount
	ProvincialBPAFormula string // "static", "dynamic_mb", "dynamic_ns", "dynamic_yt"
	OntarioSurtax        money.Amount
	OntarioHealthPremium money.Amount
	BCTaxReduction       money.Amount
	AlbertaK5P           money.Amount
}

// PayrollResult is the assembled output of calculate_payroll.
type PayrollResult struct {
	Cpp                     CppContribution
	Ei                      EiContribution
	Federal                 TaxResult
	Provincial              TaxResult
	TotalEmployeeDeductions money.Amount
	TotalEmployerCost       money.Amount
	NetPay                  money.Amount
	CalculationDetails      CalculationDetails
}
