// Package validate implements the strict-reject request validation the
// orchestrator runs before any calculation begins. Every rejection is an
// *engineerr.Error with the matching Kind; the engine never calculates
// against a request it did not validate.
package validate

import (
	"github.com/cadpayroll/engine/internal/domain"
	"github.com/cadpayroll/engine/internal/engineerr"
	"github.com/cadpayroll/engine/internal/tables"
	"github.com/cadpayroll/engine/pkg/money"
)

// Request checks a PayrollRequest's structural invariants: no negative
// monetary fields (YTD included), and a supported jurisdiction and pay
// frequency. It does not touch the rate tables; claim-floor and YTD-cap
// checks against the tax year's published values are done by AgainstTables.
func Request(req domain.PayrollRequest) error {
	if !req.Frequency.Valid() {
		return engineerr.Newf(engineerr.InvalidInput, "unsupported pay frequency %q", req.Frequency).WithField("frequency", req.Frequency)
	}
	if !req.Jurisdiction.Valid() {
		return engineerr.Newf(engineerr.UnsupportedJurisdiction, "jurisdiction %q is not one of the 12 supported codes", req.Jurisdiction).WithField("jurisdiction", req.Jurisdiction)
	}

	if err := nonNegative("profile.federal_claim_amount", req.Profile.FederalClaimAmount); err != nil {
		return err
	}
	if err := nonNegative("profile.provincial_claim_amount", req.Profile.ProvincialClaimAmount); err != nil {
		return err
	}
	if err := nonNegative("profile.rrsp_per_period", req.Profile.RRSPPerPeriod); err != nil {
		return err
	}
	if err := nonNegative("profile.union_dues_per_period", req.Profile.UnionDuesPerPeriod); err != nil {
		return err
	}
	if err := nonNegative("profile.other_deductions_k3", req.Profile.OtherDeductionsK3); err != nil {
		return err
	}
	if err := nonNegative("other_pre_tax_k3_per_period", req.OtherPreTaxK3PerPeriod); err != nil {
		return err
	}
	if err := nonNegative("other_post_tax_per_period", req.OtherPostTaxPerPeriod); err != nil {
		return err
	}

	earnings := []struct {
		name string
		v    money.Amount
	}{
		{"earnings.gross_regular", req.Earnings.GrossRegular},
		{"earnings.gross_overtime", req.Earnings.GrossOvertime},
		{"earnings.holiday_pay", req.Earnings.HolidayPay},
		{"earnings.holiday_premium", req.Earnings.HolidayPremium},
		{"earnings.vacation_payout", req.Earnings.VacationPayout},
		{"earnings.other_taxable_earnings", req.Earnings.OtherTaxableEarnings},
		{"earnings.taxable_benefits_pensionable", req.Earnings.TaxableBenefitsPensionable},
		{"earnings.non_cash_taxable_benefits", req.Earnings.NonCashTaxableBenefits},
	}
	for _, e := range earnings {
		if err := nonNegative(e.name, e.v); err != nil {
			return err
		}
	}

	ytd := []struct {
		name string
		v    money.Amount
	}{
		{"ytd.pensionable_earnings", req.YTD.PensionableEarnings},
		{"ytd.cpp_base", req.YTD.CppBase},
		{"ytd.cpp_additional", req.YTD.CppAdditional},
		{"ytd.insurable_earnings", req.YTD.InsurableEarnings},
		{"ytd.ei_premium", req.YTD.EiPremium},
		{"ytd.gross_taxable", req.YTD.GrossTaxable},
	}
	for _, y := range ytd {
		if err := nonNegative(y.name, y.v); err != nil {
			return err
		}
	}

	return nil
}

// AgainstTables runs the checks that need the resolved (year, edition)
// table in hand: claim amounts below the jurisdiction's basic-personal-amount
// floor, and YTD state already past the published annual caps on entry. It
// runs after table resolution, separately from Request, because the floor
// and cap values are themselves table data.
func AgainstTables(tbl *tables.TaxTables, entry tables.ProvincialEntry, req domain.PayrollRequest) error {
	if req.Profile.FederalClaimAmount.LessThan(tbl.Federal.BPAF) {
		return engineerr.Newf(engineerr.InvalidInput, "federal claim amount %s is below the basic personal amount floor %s", req.Profile.FederalClaimAmount, tbl.Federal.BPAF).
			WithField("profile.federal_claim_amount", req.Profile.FederalClaimAmount)
	}
	if entry.DynamicBPA == nil && req.Profile.ProvincialClaimAmount.LessThan(entry.BPA) {
		return engineerr.Newf(engineerr.InvalidInput, "provincial claim amount %s is below the jurisdiction's basic personal amount floor %s", req.Profile.ProvincialClaimAmount, entry.BPA).
			WithField("profile.provincial_claim_amount", req.Profile.ProvincialClaimAmount)
	}

	if req.YTD.CppBase.GreaterThan(tbl.CppEi.MaxBaseAnnual) {
		return engineerr.Newf(engineerr.YtdExceedsCap, "ytd cpp base %s already exceeds the annual cap %s", req.YTD.CppBase, tbl.CppEi.MaxBaseAnnual).WithField("ytd.cpp_base", req.YTD.CppBase)
	}
	if req.YTD.CppAdditional.GreaterThan(tbl.CppEi.MaxAdditionalAnnual) {
		return engineerr.Newf(engineerr.YtdExceedsCap, "ytd cpp additional %s already exceeds the annual cap %s", req.YTD.CppAdditional, tbl.CppEi.MaxAdditionalAnnual).WithField("ytd.cpp_additional", req.YTD.CppAdditional)
	}
	if req.YTD.EiPremium.GreaterThan(tbl.CppEi.EI.MaxPremiumAnnual) {
		return engineerr.Newf(engineerr.YtdExceedsCap, "ytd ei premium %s already exceeds the annual cap %s", req.YTD.EiPremium, tbl.CppEi.EI.MaxPremiumAnnual).WithField("ytd.ei_premium", req.YTD.EiPremium)
	}

	return nil
}

func nonNegative(field string, v money.Amount) error {
	if v.IsNegative() {
		return engineerr.Newf(engineerr.InvalidInput, "%s must not be negative", field).WithField(field, v)
	}
	return nil
}
