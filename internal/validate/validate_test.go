package validate

import (
	"testing"
	"time"

	"github.com/cadpayroll/engine/internal/domain"
	"github.com/cadpayroll/engine/internal/engineerr"
	"github.com/cadpayroll/engine/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() domain.PayrollRequest {
	return domain.PayrollRequest{
		PayDate:      time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		Frequency:    domain.BiWeekly,
		Jurisdiction: domain.ON,
		Profile: domain.EmployeeTaxProfile{
			FederalClaimAmount:    money.NewFromFloat(16129.00),
			ProvincialClaimAmount: money.NewFromFloat(12747.00),
		},
		Earnings: domain.PeriodEarnings{GrossRegular: money.NewFromFloat(2000.00)},
	}
}

func TestRequestAcceptsAWellFormedRequest(t *testing.T) {
	require.NoError(t, Request(validRequest()))
}

func TestRequestRejectsUnsupportedFrequency(t *testing.T) {
	req := validRequest()
	req.Frequency = domain.PayFrequency("quarterly")

	err := Request(req)
	require.Error(t, err)
	var engErr *engineerr.Error
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, engineerr.InvalidInput, engErr.Kind)
}

func TestRequestRejectsQuebec(t *testing.T) {
	req := validRequest()
	req.Jurisdiction = domain.Jurisdiction("QC")

	err := Request(req)
	require.Error(t, err)
	var engErr *engineerr.Error
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, engineerr.UnsupportedJurisdiction, engErr.Kind)
}

func TestRequestRejectsNegativeMonetaryFields(t *testing.T) {
	req := validRequest()
	req.Profile.RRSPPerPeriod = money.NewFromFloat(-50)

	err := Request(req)
	require.Error(t, err)
	var engErr *engineerr.Error
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, engineerr.InvalidInput, engErr.Kind)
}

func TestRequestRejectsNegativeYTD(t *testing.T) {
	req := validRequest()
	req.YTD.CppBase = money.NewFromFloat(-1)

	err := Request(req)
	require.Error(t, err)
}
