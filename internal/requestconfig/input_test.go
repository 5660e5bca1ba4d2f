package requestconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cadpayroll/engine/internal/domain"
	"github.com/cadpayroll/engine/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
pay_date: "2025-08-15"
frequency: "bi_weekly"
jurisdiction: "ON"
profile:
  federal_claim_amount: "16129.00"
  provincial_claim_amount: "12747.00"
  rrsp_per_period: "100.00"
  is_cpp_exempt: false
earnings:
  gross_regular: "2307.69"
ytd:
  cpp_base: "0"
other_pre_tax_k3_per_period: ""
`

func writeTempFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "request.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadFromFileParsesAWellFormedRequest(t *testing.T) {
	path := writeTempFile(t, sampleYAML)

	req, err := NewLoader().LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, domain.PayFrequency("bi_weekly"), req.Frequency)
	assert.Equal(t, domain.Jurisdiction("ON"), req.Jurisdiction)
	assert.True(t, req.Profile.FederalClaimAmount.Equal(money.NewFromFloat(16129.00)))
	assert.True(t, req.Earnings.GrossRegular.Equal(money.NewFromFloat(2307.69)))
	assert.True(t, req.OtherPreTaxK3PerPeriod.IsZero())
}

func TestLoadFromFileRejectsMissingFile(t *testing.T) {
	_, err := NewLoader().LoadFromFile(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err)
}

func TestLoadFromFileRejectsMalformedPayDate(t *testing.T) {
	path := writeTempFile(t, `
pay_date: "not-a-date"
frequency: "bi_weekly"
jurisdiction: "ON"
`)

	_, err := NewLoader().LoadFromFile(path)
	require.Error(t, err)
}

func TestLoadFromFileRejectsMalformedAmount(t *testing.T) {
	path := writeTempFile(t, `
pay_date: "2025-08-15"
frequency: "bi_weekly"
jurisdiction: "ON"
profile:
  rrsp_per_period: "not-a-number"
`)

	_, err := NewLoader().LoadFromFile(path)
	require.Error(t, err)
}

func TestLoadFromFileTreatsEmptyAmountsAsZero(t *testing.T) {
	path := writeTempFile(t, `
pay_date: "2025-08-15"
frequency: "bi_weekly"
jurisdiction: "ON"
`)

	req, err := NewLoader().LoadFromFile(path)
	require.NoError(t, err)
	assert.True(t, req.Profile.RRSPPerPeriod.IsZero())
	assert.True(t, req.Earnings.GrossRegular.IsZero())
}
