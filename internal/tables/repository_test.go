package tables

import (
	"sync"
	"testing"

	"github.com/cadpayroll/engine/internal/domain"
	"github.com/cadpayroll/engine/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryLoadBothEditions(t *testing.T) {
	repo := NewRepository()

	jan, err := repo.Load(2025, domain.Edition120)
	require.NoError(t, err)
	assert.Equal(t, "0.15", jan.Federal.LowestRate.String())

	jul, err := repo.Load(2025, domain.Edition121)
	require.NoError(t, err)
	assert.Equal(t, "0.14", jul.Federal.LowestRate.String())

	for _, j := range domain.AllJurisdictions {
		_, ok := jan.Provincial[j]
		assert.Truef(t, ok, "jurisdiction %s missing from the January table", j)
	}
}

func TestRepositoryLoadIsCachedAndConcurrencySafe(t *testing.T) {
	repo := NewRepository()

	var wg sync.WaitGroup
	results := make([]*TaxTables, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tbl, err := repo.Load(2025, domain.Edition121)
			require.NoError(t, err)
			results[i] = tbl
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Same(t, results[0], r, "all concurrent loads of the same key must observe the identical cached pointer")
	}
}

func TestRepositoryUnknownEditionFails(t *testing.T) {
	repo := NewRepository()
	_, err := repo.Load(2025, domain.TaxEdition("2025-999"))
	assert.Error(t, err)
}

func TestLoadFederal(t *testing.T) {
	repo := NewRepository()
	fed, err := repo.LoadFederal(2025, domain.Edition120)
	require.NoError(t, err)
	assert.True(t, fed.BPAF.Round2().Equal(money.NewFromFloat(16129.00)))
}
