// Package requestconfig loads a calculate_payroll request from a YAML file
// for the cmd/payrollcalc CLI. The engine itself never touches YAML or the
// filesystem; this package is purely an adapter at the CLI boundary.
package requestconfig

import (
	"fmt"
	"os"
	"time"

	"github.com/cadpayroll/engine/internal/domain"
	"github.com/cadpayroll/engine/pkg/money"
	"gopkg.in/yaml.v3"
)

// file is the YAML-facing shape of a PayrollRequest. Monetary fields are
// strings so the decimal value round-trips exactly; money.Amount has no
// YAML codec of its own.
type file struct {
	PayDate      string `yaml:"pay_date"`
	Frequency    string `yaml:"frequency"`
	Jurisdiction string `yaml:"jurisdiction"`

	Profile struct {
		FederalClaimAmount    string `yaml:"federal_claim_amount"`
		ProvincialClaimAmount string `yaml:"provincial_claim_amount"`
		RRSPPerPeriod         string `yaml:"rrsp_per_period"`
		UnionDuesPerPeriod    string `yaml:"union_dues_per_period"`
		OtherDeductionsK3     string `yaml:"other_deductions_k3"`
		IsCppExempt           bool   `yaml:"is_cpp_exempt"`
		IsEiExempt            bool   `yaml:"is_ei_exempt"`
		IsCpp2Exempt          bool   `yaml:"is_cpp2_exempt"`
	} `yaml:"profile"`

	Earnings struct {
		GrossRegular               string `yaml:"gross_regular"`
		GrossOvertime              string `yaml:"gross_overtime"`
		HolidayPay                 string `yaml:"holiday_pay"`
		HolidayPremium             string `yaml:"holiday_premium"`
		VacationPayout             string `yaml:"vacation_payout"`
		OtherTaxableEarnings       string `yaml:"other_taxable_earnings"`
		TaxableBenefitsPensionable string `yaml:"taxable_benefits_pensionable"`
		NonCashTaxableBenefits     string `yaml:"non_cash_taxable_benefits"`
	} `yaml:"earnings"`

	YTD struct {
		PensionableEarnings string `yaml:"pensionable_earnings"`
		CppBase             string `yaml:"cpp_base"`
		CppAdditional       string `yaml:"cpp_additional"`
		InsurableEarnings   string `yaml:"insurable_earnings"`
		EiPremium           string `yaml:"ei_premium"`
		GrossTaxable        string `yaml:"gross_taxable"`
	} `yaml:"ytd"`

	OtherPreTaxK3PerPeriod string `yaml:"other_pre_tax_k3_per_period"`
	OtherPostTaxPerPeriod  string `yaml:"other_post_tax_per_period"`
}

// Loader parses calculate_payroll requests from YAML files.
type Loader struct{}

// NewLoader constructs a Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadFromFile reads and parses a PayrollRequest from a YAML file.
func (l *Loader) LoadFromFile(filename string) (*domain.PayrollRequest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return f.toDomain()
}

func (f file) toDomain() (*domain.PayrollRequest, error) {
	payDate, err := time.Parse("2006-01-02", f.PayDate)
	if err != nil {
		return nil, fmt.Errorf("pay_date: %w", err)
	}

	rrsp, err := amount(f.Profile.RRSPPerPeriod)
	if err != nil {
		return nil, fmt.Errorf("profile.rrsp_per_period: %w", err)
	}
	unionDues, err := amount(f.Profile.UnionDuesPerPeriod)
	if err != nil {
		return nil, fmt.Errorf("profile.union_dues_per_period: %w", err)
	}
	federalClaim, err := amount(f.Profile.FederalClaimAmount)
	if err != nil {
		return nil, fmt.Errorf("profile.federal_claim_amount: %w", err)
	}
	provincialClaim, err := amount(f.Profile.ProvincialClaimAmount)
	if err != nil {
		return nil, fmt.Errorf("profile.provincial_claim_amount: %w", err)
	}
	k3, err := amount(f.Profile.OtherDeductionsK3)
	if err != nil {
		return nil, fmt.Errorf("profile.other_deductions_k3: %w", err)
	}

	grossRegular, err := amount(f.Earnings.GrossRegular)
	if err != nil {
		return nil, fmt.Errorf("earnings.gross_regular: %w", err)
	}
	grossOvertime, err := amount(f.Earnings.GrossOvertime)
	if err != nil {
		return nil, fmt.Errorf("earnings.gross_overtime: %w", err)
	}
	holidayPay, err := amount(f.Earnings.HolidayPay)
	if err != nil {
		return nil, fmt.Errorf("earnings.holiday_pay: %w", err)
	}
	holidayPremium, err := amount(f.Earnings.HolidayPremium)
	if err != nil {
		return nil, fmt.Errorf("earnings.holiday_premium: %w", err)
	}
	vacationPayout, err := amount(f.Earnings.VacationPayout)
	if err != nil {
		return nil, fmt.Errorf("earnings.vacation_payout: %w", err)
	}
	otherTaxable, err := amount(f.Earnings.OtherTaxableEarnings)
	if err != nil {
		return nil, fmt.Errorf("earnings.other_taxable_earnings: %w", err)
	}
	taxableBenefitsPensionable, err := amount(f.Earnings.TaxableBenefitsPensionable)
	if err != nil {
		return nil, fmt.Errorf("earnings.taxable_benefits_pensionable: %w", err)
	}
	nonCashBenefits, err := amount(f.Earnings.NonCashTaxableBenefits)
	if err != nil {
		return nil, fmt.Errorf("earnings.non_cash_taxable_benefits: %w", err)
	}

	ytdPensionable, err := amount(f.YTD.PensionableEarnings)
	if err != nil {
		return nil, fmt.Errorf("ytd.pensionable_earnings: %w", err)
	}
	ytdCppBase, err := amount(f.YTD.CppBase)
	if err != nil {
		return nil, fmt.Errorf("ytd.cpp_base: %w", err)
	}
	ytdCppAdditional, err := amount(f.YTD.CppAdditional)
	if err != nil {
		return nil, fmt.Errorf("ytd.cpp_additional: %w", err)
	}
	ytdInsurable, err := amount(f.YTD.InsurableEarnings)
	if err != nil {
		return nil, fmt.Errorf("ytd.insurable_earnings: %w", err)
	}
	ytdEiPremium, err := amount(f.YTD.EiPremium)
	if err != nil {
		return nil, fmt.Errorf("ytd.ei_premium: %w", err)
	}
	ytdGrossTaxable, err := amount(f.YTD.GrossTaxable)
	if err != nil {
		return nil, fmt.Errorf("ytd.gross_taxable: %w", err)
	}

	otherPreTax, err := amount(f.OtherPreTaxK3PerPeriod)
	if err != nil {
		return nil, fmt.Errorf("other_pre_tax_k3_per_period: %w", err)
	}
	otherPostTax, err := amount(f.OtherPostTaxPerPeriod)
	if err != nil {
		return nil, fmt.Errorf("other_post_tax_per_period: %w", err)
	}

	return &domain.PayrollRequest{
		PayDate:      payDate,
		Frequency:    domain.PayFrequency(f.Frequency),
		Jurisdiction: domain.Jurisdiction(f.Jurisdiction),
		Profile: domain.EmployeeTaxProfile{
			FederalClaimAmount:    federalClaim,
			ProvincialClaimAmount: provincialClaim,
			RRSPPerPeriod:         rrsp,
			UnionDuesPerPeriod:    unionDues,
			OtherDeductionsK3:     k3,
			IsCppExempt:           f.Profile.IsCppExempt,
			IsEiExempt:            f.Profile.IsEiExempt,
			IsCpp2Exempt:          f.Profile.IsCpp2Exempt,
		},
		Earnings: domain.PeriodEarnings{
			GrossRegular:               grossRegular,
			GrossOvertime:              grossOvertime,
			HolidayPay:                 holidayPay,
			HolidayPremium:             holidayPremium,
			VacationPayout:             vacationPayout,
			OtherTaxableEarnings:       otherTaxable,
			TaxableBenefitsPensionable: taxableBenefitsPensionable,
			NonCashTaxableBenefits:     nonCashBenefits,
		},
		YTD: domain.YTDState{
			PensionableEarnings: ytdPensionable,
			CppBase:             ytdCppBase,
			CppAdditional:       ytdCppAdditional,
			InsurableEarnings:   ytdInsurable,
			EiPremium:           ytdEiPremium,
			GrossTaxable:        ytdGrossTaxable,
		},
		OtherPreTaxK3PerPeriod: otherPreTax,
		OtherPostTaxPerPeriod:  otherPostTax,
	}, nil
}

// amount parses a YAML string field into a money.Amount, treating the empty
// string as zero so every monetary field in a request file is optional.
func amount(s string) (money.Amount, error) {
	if s == "" {
		return money.Zero, nil
	}
	return money.NewFromString(s)
}
