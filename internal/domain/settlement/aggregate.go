package settlement

import (
	"time"

	"github.com/conrad/backoffice/internal/domain/billing"
)

// BuildGroups buckets eligible records by referrer label, preserving the
// creation order of both groups and the records inside them. Labels are raw
// strings, so two spellings of the same physician form two groups; the data
// is grouped exactly as entered.
func BuildGroups(records []*billing.Record, start, end time.Time) []*Group {
	byKey := make(map[string]*Group)
	var groups []*Group

	for _, r := range records {
		if !billing.EligibleForSettlement(r, start, end) {
			continue
		}
		key := r.ReferrerLabel()
		g, ok := byKey[key]
		if !ok {
			g = &Group{Key: key}
			byKey[key] = g
			groups = append(groups, g)
		}
		g.Records = append(g.Records, r)
	}
	return groups
}
