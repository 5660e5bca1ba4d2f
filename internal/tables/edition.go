package tables

import (
	"time"

	"github.com/cadpayroll/engine/internal/domain"
	"github.com/cadpayroll/engine/internal/engineerr"
)

// cutover describes one year's edition boundaries.
type cutover struct {
	year         int
	janEdition   domain.TaxEdition
	julyEdition  domain.TaxEdition
	hasJulySplit bool
}

// knownCutovers enumerates every (year -> edition) mapping the repository
// understands. 2025 is the only split year at present; adding a future year
// means adding an entry here, never touching calculator code.
var knownCutovers = []cutover{
	{year: 2025, janEdition: domain.Edition120, julyEdition: domain.Edition121, hasJulySplit: true},
}

// SelectEdition maps a pay date to its applicable edition. The pay date is
// the date withholding is effected, not the pay-period start/end date: a
// pay period that straddles a July edition change uses the edition in force
// on payday.
func SelectEdition(payDate time.Time) (domain.TaxEdition, error) {
	year := payDate.Year()
	for _, c := range knownCutovers {
		if c.year != year {
			continue
		}
		if !c.hasJulySplit {
			return c.janEdition, nil
		}
		july := time.Date(year, time.July, 1, 0, 0, 0, 0, payDate.Location())
		if payDate.Before(july) {
			return c.janEdition, nil
		}
		return c.julyEdition, nil
	}
	return "", engineerr.Newf(engineerr.UnknownEdition, "no edition mapping for pay date year %d", year).WithField("pay_date", payDate)
}
