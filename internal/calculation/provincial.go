package calculation

import (
	"github.com/cadpayroll/engine/internal/domain"
	"github.com/cadpayroll/engine/internal/tables"
	"github.com/cadpayroll/engine/pkg/money"
)

// ProvincialCalculator mirrors FederalCalculator with the jurisdiction's own
// brackets, credits, and the jurisdiction-specific top-up rules: Alberta's
// K5P, Ontario's surtax + health premium, BC's tax reduction, and the
// dynamic basic-personal-amount formulas for MB/NS/YT (component C7).
type ProvincialCalculator struct {
	Entry tables.ProvincialEntry
	// MaxAnnualCppCreditBase and MaxAnnualEiCredit mirror the federal table's
	// fields of the same name: the CPP/EI premium credit caps are set by the
	// federal constants, not republished per jurisdiction.
	MaxAnnualCppCreditBase money.Amount
	MaxAnnualEiCredit      money.Amount
}

// NewProvincialCalculator constructs a calculator bound to one jurisdiction's
// entry within a (year, edition) provincial rate table. maxCppCreditBase and
// maxEiCredit come from the same (year, edition) federal table.
func NewProvincialCalculator(entry tables.ProvincialEntry, maxCppCreditBase, maxEiCredit money.Amount) *ProvincialCalculator {
	return &ProvincialCalculator{Entry: entry, MaxAnnualCppCreditBase: maxCppCreditBase, MaxAnnualEiCredit: maxEiCredit}
}

// ProvincialExtras reports the jurisdiction-specific add-ons applied on top
// of the basic annual tax, for the calculation_details audit record.
type ProvincialExtras struct {
	BPAUsed       money.Amount
	BPAFormula    string
	OntarioSurtax money.Amount
	OntarioHealth money.Amount
	BCReduction   money.Amount
	AlbertaK5P    money.Amount
}

// Calculate derives the provincial/territorial TaxResult for this period,
// using the same annualIncome (A) the federal calculator consumed.
// federalBPAF is required only for the Yukon dynamic BPA, which is defined
// as equal to the federal basic personal amount rather than having its own
// schedule.
func (p *ProvincialCalculator) Calculate(periods int, annualIncome money.Amount, profile domain.EmployeeTaxProfile, cppBaseThisPeriod, eiPremiumThisPeriod money.Amount, federalBPAF money.Amount) (domain.TaxResult, ProvincialExtras, error) {
	rate, kp, err := lookupBracket(p.Entry.Brackets, annualIncome)
	if err != nil {
		return domain.TaxResult{}, ProvincialExtras{}, err
	}

	bpaUsed, bpaFormula := p.resolveBPA(annualIncome, federalBPAF)

	// The claim amount floors at the jurisdiction's basic personal amount:
	// dynamic-BPA jurisdictions must recompute the claim used in credits
	// from the formula result rather than the static declared TCP.
	effectiveTCP := money.Max(profile.ProvincialClaimAmount, bpaUsed)

	vLow := p.lowestRate()
	k1p := vLow.Mul(effectiveTCP)
	cc := cppCredit(periods, cppBaseThisPeriod, p.MaxAnnualCppCreditBase)
	ec := eiCredit(periods, eiPremiumThisPeriod, p.MaxAnnualEiCredit)
	k2p := vLow.Mul(cc.Add(ec))

	var k5p money.Amount
	if p.Entry.K5P != nil {
		excess := money.MaxZero(k1p.Add(k2p).Sub(p.Entry.K5P.Threshold))
		k5p = excess.Mul(p.Entry.K5P.Ratio).Round2()
	} else {
		k5p = money.Zero
	}

	t4 := money.MaxZero(rate.Mul(annualIncome).Sub(kp).Sub(k1p).Sub(k2p).Sub(k5p))

	extras := ProvincialExtras{BPAUsed: bpaUsed, BPAFormula: bpaFormula, AlbertaK5P: k5p}

	t2 := t4
	if p.Entry.Surtax != nil {
		v1 := p.Entry.Surtax.LowerRate.Mul(money.MaxZero(t4.Sub(p.Entry.Surtax.LowerThreshold))).
			Add(p.Entry.Surtax.UpperRate.Mul(money.MaxZero(t4.Sub(p.Entry.Surtax.UpperThreshold))))
		v2 := healthPremium(p.Entry.HealthPremium, annualIncome)
		extras.OntarioSurtax = v1
		extras.OntarioHealth = v2
		t2 = t4.Add(v1).Add(v2)
	} else if p.Entry.TaxReduction != nil {
		s := taxReductionFactor(*p.Entry.TaxReduction, annualIncome)
		extras.BCReduction = s
		t2 = money.MaxZero(t4.Sub(s))
	}

	perPeriod := t2.Div(money.New(int64(periods))).Round2()

	result := domain.TaxResult{
		AnnualTaxableIncome:  annualIncome,
		RateUsed:             rate,
		ConstantUsed:         kp,
		Credits:              domain.CreditBreakdown{K1: k1p, K2: k2p, K5P: k5p},
		BasicAnnualTax:       t4,
		FinalAnnualTax:       t2,
		PerPeriodWithholding: perPeriod,
	}
	return result, extras, nil
}

// lowestRate returns v_low, the jurisdiction's lowest bracket rate, used to
// convert the provincial claim amount and CPP/EI credits into the K1P/K2P
// dollar credits.
func (p *ProvincialCalculator) lowestRate() money.Amount {
	if len(p.Entry.Brackets) == 0 {
		return money.Zero
	}
	return p.Entry.Brackets[0].Rate
}

// resolveBPA computes the jurisdiction's basic personal amount, dispatching
// to the dynamic MB/NS/YT formulas when present; all other jurisdictions use
// the static published value.
func (p *ProvincialCalculator) resolveBPA(annualIncome, federalBPAF money.Amount) (money.Amount, string) {
	if p.Entry.DynamicBPA == nil {
		return p.Entry.BPA, "static"
	}
	d := p.Entry.DynamicBPA
	switch d.Kind {
	case tables.BPADynamicMB:
		return bpaLinearPhase(annualIncome, d.Max, d.Min, d.Threshold1, d.Threshold2), string(d.Kind)
	case tables.BPADynamicNS:
		return bpaLinearPhase(annualIncome, d.Min, d.Max, d.Threshold1, d.Threshold2), string(d.Kind)
	case tables.BPADynamicYT:
		return federalBPAF, string(d.Kind)
	default:
		return p.Entry.BPA, "static"
	}
}

// bpaLinearPhase computes a BPA that is `start` at/below threshold1,
// linearly interpolates to `end` between threshold1 and threshold2, and is
// `end` at/above threshold2. Manitoba calls this with start=Max, end=Min
// (phasing down as income rises); Nova Scotia calls it with start=Min,
// end=Max (phasing up).
func bpaLinearPhase(a, start, end, threshold1, threshold2 money.Amount) money.Amount {
	if a.LessThanOrEqual(threshold1) {
		return start
	}
	if a.GreaterThanOrEqual(threshold2) {
		return end
	}
	span := threshold2.Sub(threshold1)
	progress := a.Sub(threshold1).Div(span)
	delta := end.Sub(start).Mul(progress)
	return start.Add(delta)
}

// healthPremium looks up Ontario's V2 health premium band covering annual
// taxable income a and returns its ramped-and-capped dollar amount.
func healthPremium(bands []tables.HealthPremiumBand, a money.Amount) money.Amount {
	for _, b := range bands {
		if a.LessThanOrEqual(b.Ceiling) {
			ramped := b.Base.Add(b.RampRate.Mul(money.MaxZero(a.Sub(b.Floor))))
			return money.Min(ramped, b.Amount)
		}
	}
	if len(bands) == 0 {
		return money.Zero
	}
	last := bands[len(bands)-1]
	return last.Amount
}

// taxReductionFactor computes BC's S factor: a flat reduction below
// Threshold1, phasing out linearly to zero by Threshold2.
func taxReductionFactor(r tables.TaxReduction, a money.Amount) money.Amount {
	if a.LessThanOrEqual(r.Threshold1) {
		return r.Base
	}
	if a.LessThan(r.Threshold2) {
		return money.MaxZero(r.Base.Sub(r.PhaseRate.Mul(a.Sub(r.Threshold1))))
	}
	return money.Zero
}
