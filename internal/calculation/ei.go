package calculation

import (
	"github.com/cadpayroll/engine/internal/domain"
	"github.com/cadpayroll/engine/internal/engineerr"
	"github.com/cadpayroll/engine/internal/tables"
	"github.com/cadpayroll/engine/pkg/money"
)

// EiCalculator computes the Employment Insurance employee premium and
// employer premium for a single pay period (component C5).
type EiCalculator struct {
	Constants tables.EiTables
}

// NewEiCalculator constructs a calculator bound to one tax year's EI
// constants.
func NewEiCalculator(constants tables.EiTables) *EiCalculator {
	return &EiCalculator{Constants: constants}
}

// Calculate derives the EiContribution for this period from insurable
// earnings and prior YTD state. Insurable earnings exclude non-cash taxable
// benefits but include regular, overtime, holiday, vacation, and cash
// bonuses.
func (e *EiCalculator) Calculate(insurable money.Amount, ytd domain.YTDState, profile domain.EmployeeTaxProfile) (domain.EiContribution, error) {
	if profile.IsEiExempt {
		return domain.EiContribution{EmployeePremium: money.Zero, EmployerPremium: money.Zero}, nil
	}

	if ytd.EiPremium.GreaterThanOrEqual(e.Constants.MaxPremiumAnnual) || ytd.InsurableEarnings.GreaterThanOrEqual(e.Constants.MIE) {
		return domain.EiContribution{EmployeePremium: money.Zero, EmployerPremium: money.Zero}, nil
	}

	premiumRoom := e.Constants.MaxPremiumAnnual.Sub(ytd.EiPremium)
	if premiumRoom.IsNegative() {
		return domain.EiContribution{}, engineerr.New(engineerr.YtdExceedsCap, "ytd ei premium already exceeds annual cap").WithField("ytd.ei_premium", ytd.EiPremium)
	}

	candidate := e.Constants.EmployeeRate.Mul(insurable)
	employee := money.MaxZero(money.Min(candidate, premiumRoom)).Round2()
	employer := employee.Mul(e.Constants.EmployerRatio).Round2()

	return domain.EiContribution{EmployeePremium: employee, EmployerPremium: employer}, nil
}
