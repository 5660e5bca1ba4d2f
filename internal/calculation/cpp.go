package calculation

import (
	"github.com/cadpayroll/engine/internal/domain"
	"github.com/cadpayroll/engine/internal/engineerr"
	"github.com/cadpayroll/engine/internal/tables"
	"github.com/cadpayroll/engine/pkg/money"
)

// CppCalculator computes the Canada Pension Plan base contribution, the
// second-tier (CPP2) additional contribution, and the F2 enhancement
// portion for a single pay period (component C4).
type CppCalculator struct {
	Constants tables.CppEiTables
}

// NewCppCalculator constructs a calculator bound to one tax year's CPP
// constants, sourced exclusively from the table repository.
func NewCppCalculator(constants tables.CppEiTables) *CppCalculator {
	return &CppCalculator{Constants: constants}
}

// Calculate derives the CppContribution for this period from pensionable
// earnings, the frequency-derived periods-per-year, prior YTD state, and the
// employee's exemption flags.
func (c *CppCalculator) Calculate(pensionable money.Amount, ytd domain.YTDState, freq domain.PayFrequency, profile domain.EmployeeTaxProfile) (domain.CppContribution, error) {
	if profile.IsCppExempt {
		return domain.CppContribution{
			Base:          money.Zero,
			Additional:    money.Zero,
			EnhancementF2: money.Zero,
			EmployeeTotal: money.Zero,
			EmployerTotal: money.Zero,
		}, nil
	}

	periods := money.New(int64(freq.PeriodsPerYear()))
	if freq.PeriodsPerYear() == 0 {
		return domain.CppContribution{}, engineerr.New(engineerr.InvalidInput, "unknown pay frequency").WithField("frequency", freq)
	}

	exemptPerPeriod := c.Constants.BasicExemption.Div(periods)
	baseCandidate := c.Constants.BaseRate.Mul(money.MaxZero(pensionable.Sub(exemptPerPeriod)))

	baseRoom := c.Constants.MaxBaseAnnual.Sub(ytd.CppBase)
	if baseRoom.IsNegative() {
		return domain.CppContribution{}, engineerr.New(engineerr.YtdExceedsCap, "ytd cpp base already exceeds annual cap").WithField("ytd.cpp_base", ytd.CppBase)
	}
	base := money.MaxZero(money.Min(baseCandidate, baseRoom)).Round2()

	var additional money.Amount
	if profile.IsCpp2Exempt {
		additional = money.Zero
	} else {
		ympePerPeriod := c.Constants.YMPE.Div(periods)
		bandWidth := c.Constants.YAMPE.Sub(c.Constants.YMPE).Div(periods)
		band := money.MaxZero(money.Min(pensionable.Sub(ympePerPeriod), bandWidth))
		additionalCandidate := c.Constants.AdditionalRate.Mul(band)

		additionalRoom := c.Constants.MaxAdditionalAnnual.Sub(ytd.CppAdditional)
		if additionalRoom.IsNegative() {
			return domain.CppContribution{}, engineerr.New(engineerr.YtdExceedsCap, "ytd cpp additional already exceeds annual cap").WithField("ytd.cpp_additional", ytd.CppAdditional)
		}
		additional = money.MaxZero(money.Min(additionalCandidate, additionalRoom)).Round2()
	}

	enhancementRatio := money.NewFromFloat(0.01).Div(c.Constants.BaseRate)
	f2 := base.Mul(enhancementRatio).Round2()

	employeeTotal := base.Add(additional)

	return domain.CppContribution{
		Base:          base,
		Additional:    additional,
		EnhancementF2: f2,
		EmployeeTotal: employeeTotal,
		EmployerTotal: employeeTotal, // employer matches the employee contribution dollar-for-dollar
	}, nil
}
