package settlement

import (
	"errors"

	"github.com/conrad/backoffice/internal/domain/billing"
)

// ErrNoRecords reports a half-month window with no settlement records at all.
// The handler maps it to an informational 404 rather than a server fault.
var ErrNoRecords = errors.New("no settlement records in period")

// Group collects one referrer's records for the statement. Key is the display
// label resolved by ReferrerLabel, which is also the worksheet name source.
type Group struct {
	Key     string            `json:"key"`
	Records []*billing.Record `json:"records"`
}

// Total sums the record totals of the group.
func (g *Group) Total() float64 {
	var total float64
	for _, r := range g.Records {
		total += r.Total()
	}
	return total
}
