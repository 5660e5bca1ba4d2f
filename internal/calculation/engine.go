package calculation

import (
	"context"

	"github.com/cadpayroll/engine/internal/domain"
	"github.com/cadpayroll/engine/internal/engineerr"
	"github.com/cadpayroll/engine/internal/tables"
	"github.com/cadpayroll/engine/internal/validate"
)

// Engine is the single entry point to the calculation pipeline: resolve the
// rate tables, run CPP, EI, federal tax, and provincial tax in that fixed
// order (federal and provincial tax both depend on CPP/EI having already
// run), and assemble a PayrollResult.
//
// Engine holds no mutable state of its own beyond the table repository's
// cache; a single Engine is safe to share across concurrent callers.
type Engine struct {
	Repository *tables.Repository
	Log        Logger
}

// NewEngine constructs an Engine backed by the given table repository. Log
// defaults to NopLogger when nil.
func NewEngine(repo *tables.Repository, log Logger) *Engine {
	if log == nil {
		log = NopLogger{}
	}
	return &Engine{Repository: repo, Log: log}
}

// Calculate runs the full calculate_payroll pipeline for one request. ctx
// carries no cancellation points today; it is threaded through for API
// uniformity with the rest of the engine's call surface.
func (e *Engine) Calculate(ctx context.Context, req domain.PayrollRequest) (*domain.PayrollResult, error) {
	_ = ctx

	if err := validate.Request(req); err != nil {
		return nil, err
	}

	edition, err := tables.SelectEdition(req.PayDate)
	if err != nil {
		return nil, err
	}
	year := req.PayDate.Year()

	tbl, err := e.Repository.Load(year, edition)
	if err != nil {
		return nil, err
	}

	entry, ok := tbl.Provincial[req.Jurisdiction]
	if !ok {
		return nil, engineerr.Newf(engineerr.UnsupportedJurisdiction, "no provincial table entry for %q in %s", req.Jurisdiction, edition).WithField("jurisdiction", req.Jurisdiction)
	}

	if err := validate.AgainstTables(tbl, entry, req); err != nil {
		return nil, err
	}

	periods := req.Frequency.PeriodsPerYear()

	pensionable := req.Earnings.PensionableEarnings()
	insurable := req.Earnings.InsurableEarnings()

	cppCalc := NewCppCalculator(tbl.CppEi)
	cpp, err := cppCalc.Calculate(pensionable, req.YTD, req.Frequency, req.Profile)
	if err != nil {
		return nil, err
	}

	eiCalc := NewEiCalculator(tbl.CppEi.EI)
	ei, err := eiCalc.Calculate(insurable, req.YTD, req.Profile)
	if err != nil {
		return nil, err
	}

	// A is shared verbatim between the federal and provincial calculators.
	// cpp.Additional (CPP2) reduces taxable income here; cpp.Base alone
	// feeds the K2/K2P CPP premium credit below.
	grossThisPeriod := pensionable
	a := annualTaxableIncome(
		periods,
		grossThisPeriod,
		req.Profile.RRSPPerPeriod,
		req.Profile.UnionDuesPerPeriod,
		cpp.EnhancementF2,
		cpp.Additional,
		req.OtherPreTaxK3PerPeriod,
	)

	fedCalc := NewFederalCalculator(tbl.Federal)
	federal, err := fedCalc.Calculate(periods, a, req.Profile, cpp.Base, ei.EmployeePremium)
	if err != nil {
		return nil, err
	}

	provCalc := NewProvincialCalculator(entry, tbl.Federal.MaxAnnualCppCreditBase, tbl.Federal.MaxAnnualEiCredit)
	provincial, extras, err := provCalc.Calculate(periods, a, req.Profile, cpp.Base, ei.EmployeePremium, tbl.Federal.BPAF)
	if err != nil {
		return nil, err
	}

	totalEmployee := cpp.EmployeeTotal.
		Add(ei.EmployeePremium).
		Add(federal.PerPeriodWithholding).
		Add(provincial.PerPeriodWithholding).
		Add(req.Profile.RRSPPerPeriod).
		Add(req.Profile.UnionDuesPerPeriod).
		Add(req.OtherPostTaxPerPeriod)

	totalEmployer := cpp.EmployerTotal.Add(ei.EmployerPremium)

	netPay := grossThisPeriod.
		Sub(cpp.EmployeeTotal).
		Sub(ei.EmployeePremium).
		Sub(federal.PerPeriodWithholding).
		Sub(provincial.PerPeriodWithholding).
		Sub(req.Profile.RRSPPerPeriod).
		Sub(req.Profile.UnionDuesPerPeriod).
		Sub(req.OtherPostTaxPerPeriod)

	// Net-pay identity check: gross minus every statutory and voluntary
	// deduction must equal gross minus TotalEmployeeDeductions to the cent.
	identity := grossThisPeriod.Sub(totalEmployee)
	if !identity.Round2().Equal(netPay.Round2()) {
		return nil, engineerr.Newf(engineerr.InternalConsistency, "net pay identity failed: gross-deductions=%s, netPay=%s", identity.Round2(), netPay.Round2())
	}

	details := domain.CalculationDetails{
		Edition:              edition,
		PeriodsPerYear:       periods,
		PensionableEarnings:  pensionable,
		InsurableEarnings:    insurable,
		AnnualTaxableIncome:  a,
		FederalBPAUsed:       tbl.Federal.BPAF,
		ProvincialBPAUsed:    extras.BPAUsed,
		ProvincialBPAFormula: extras.BPAFormula,
		OntarioSurtax:        extras.OntarioSurtax,
		OntarioHealthPremium: extras.OntarioHealth,
		BCTaxReduction:       extras.BCReduction,
		AlbertaK5P:           extras.AlbertaK5P,
	}

	e.Log.Debugf("calculated payroll: jurisdiction=%s edition=%s net_pay=%s", req.Jurisdiction, edition, netPay.Round2())

	return &domain.PayrollResult{
		Cpp:                     cpp,
		Ei:                      ei,
		Federal:                 federal,
		Provincial:              provincial,
		TotalEmployeeDeductions: totalEmployee.Round2(),
		TotalEmployerCost:       totalEmployer.Round2(),
		NetPay:                  netPay.Round2(),
		CalculationDetails:      details,
	}, nil
}
