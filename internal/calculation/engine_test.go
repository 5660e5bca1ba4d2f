package calculation

import (
	"context"
	"testing"
	"time"

	"github.com/cadpayroll/engine/internal/domain"
	"github.com/cadpayroll/engine/internal/engineerr"
	"github.com/cadpayroll/engine/internal/tables"
	"github.com/cadpayroll/engine/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRequest() domain.PayrollRequest {
	return domain.PayrollRequest{
		PayDate:      time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
		Frequency:    domain.BiWeekly,
		Jurisdiction: domain.ON,
		Profile: domain.EmployeeTaxProfile{
			FederalClaimAmount:    money.NewFromFloat(16129.00),
			ProvincialClaimAmount: money.NewFromFloat(12747.00),
			RRSPPerPeriod:         money.NewFromFloat(100.00),
		},
		Earnings: domain.PeriodEarnings{GrossRegular: money.NewFromFloat(2307.69)},
	}
}

func TestEngineCalculatesFullPayrollForOntario(t *testing.T) {
	engine := NewEngine(tables.NewRepository(), nil)
	result, err := engine.Calculate(context.Background(), baseRequest())
	require.NoError(t, err)

	assert.Equal(t, "37.85", result.Ei.EmployeePremium.String())
	assert.True(t, result.Cpp.Base.IsPositive())
	assert.True(t, result.Federal.PerPeriodWithholding.IsPositive())
	assert.True(t, result.Provincial.PerPeriodWithholding.IsPositive())

	expectedNet := money.NewFromFloat(2307.69).
		Sub(result.Cpp.EmployeeTotal).
		Sub(result.Ei.EmployeePremium).
		Sub(result.Federal.PerPeriodWithholding).
		Sub(result.Provincial.PerPeriodWithholding).
		Sub(money.NewFromFloat(100.00)).
		Round2()
	assert.True(t, result.NetPay.Equal(expectedNet))
}

func TestEngineCppExemptEmployeeStillPaysTaxes(t *testing.T) {
	req := baseRequest()
	req.Profile.IsCppExempt = true
	req.Earnings = domain.PeriodEarnings{GrossRegular: money.NewFromFloat(4000.00)}

	engine := NewEngine(tables.NewRepository(), nil)
	result, err := engine.Calculate(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, result.Cpp.Base.IsZero())
	assert.True(t, result.Cpp.Additional.IsZero())
	assert.True(t, result.Cpp.EnhancementF2.IsZero())
	assert.True(t, result.Ei.EmployeePremium.IsPositive())
	assert.True(t, result.Federal.PerPeriodWithholding.IsPositive())
}

func TestEngineZeroEarningsZeroDeductions(t *testing.T) {
	req := baseRequest()
	req.Earnings = domain.PeriodEarnings{}
	req.Profile.RRSPPerPeriod = money.Zero

	engine := NewEngine(tables.NewRepository(), nil)
	result, err := engine.Calculate(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, result.Cpp.EmployeeTotal.IsZero())
	assert.True(t, result.Ei.EmployeePremium.IsZero())
	assert.True(t, result.NetPay.IsZero())
}

func TestEngineEditionCutoverChangesFederalWithholding(t *testing.T) {
	jan := baseRequest()
	jan.PayDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	jul := baseRequest()
	jul.PayDate = time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)

	engine := NewEngine(tables.NewRepository(), nil)
	janResult, err := engine.Calculate(context.Background(), jan)
	require.NoError(t, err)
	julResult, err := engine.Calculate(context.Background(), jul)
	require.NoError(t, err)

	assert.NotEqual(t, janResult.Federal.RateUsed.String(), julResult.Federal.RateUsed.String())
}

func TestEngineRejectsQuebec(t *testing.T) {
	req := baseRequest()
	req.Jurisdiction = domain.Jurisdiction("QC")

	engine := NewEngine(tables.NewRepository(), nil)
	_, err := engine.Calculate(context.Background(), req)
	require.Error(t, err)

	var engErr *engineerr.Error
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, engineerr.UnsupportedJurisdiction, engErr.Kind)
}

func TestEngineRejectsNegativeEarnings(t *testing.T) {
	req := baseRequest()
	req.Earnings.GrossRegular = money.NewFromFloat(-500)

	engine := NewEngine(tables.NewRepository(), nil)
	_, err := engine.Calculate(context.Background(), req)
	require.Error(t, err)

	var engErr *engineerr.Error
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, engineerr.InvalidInput, engErr.Kind)
}

func TestEngineCpt30MidYearElection(t *testing.T) {
	req := baseRequest()
	req.Earnings = domain.PeriodEarnings{GrossRegular: money.NewFromFloat(6500.00)}

	engine := NewEngine(tables.NewRepository(), nil)

	before, err := engine.Calculate(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, before.Cpp.Additional.IsPositive())

	req.Profile.IsCpp2Exempt = true
	after, err := engine.Calculate(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, after.Cpp.Additional.IsZero())
}

func TestEngineNonCashTaxableBenefitsExcludedFromInsurableOnly(t *testing.T) {
	withoutBenefit := baseRequest()
	withoutBenefit.Earnings = domain.PeriodEarnings{GrossRegular: money.NewFromFloat(2000.00)}

	withBenefit := baseRequest()
	withBenefit.Earnings = domain.PeriodEarnings{
		GrossRegular:           money.NewFromFloat(2000.00),
		NonCashTaxableBenefits: money.NewFromFloat(300.00),
	}

	engine := NewEngine(tables.NewRepository(), nil)

	base, err := engine.Calculate(context.Background(), withoutBenefit)
	require.NoError(t, err)
	withExtra, err := engine.Calculate(context.Background(), withBenefit)
	require.NoError(t, err)

	assert.Equal(t, base.Ei.EmployeePremium.String(), withExtra.Ei.EmployeePremium.String(),
		"a non-cash taxable benefit must not change the EI premium, which is assessed on insurable earnings only")
	assert.True(t, withExtra.Cpp.Base.GreaterThan(base.Cpp.Base),
		"a non-cash taxable benefit is pensionable and must raise the CPP base contribution")

	assert.True(t, withBenefit.Earnings.InsurableEarnings().LessThan(withBenefit.Earnings.PensionableEarnings()))
	assert.True(t, withExtra.CalculationDetails.InsurableEarnings.LessThan(withExtra.CalculationDetails.PensionableEarnings))
}

func TestEngineYtdAlreadyOverCapIsReported(t *testing.T) {
	req := baseRequest()
	req.YTD.CppBase = money.NewFromFloat(10000.00)

	engine := NewEngine(tables.NewRepository(), nil)
	_, err := engine.Calculate(context.Background(), req)
	require.Error(t, err)

	var engErr *engineerr.Error
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, engineerr.YtdExceedsCap, engErr.Kind)
}
