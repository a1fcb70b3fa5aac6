package commission

import (
	"sort"

	"github.com/google/uuid"

	"github.com/conrad/backoffice/internal/domain/billing"
)

// Compute folds eligible records into per-physician summaries.
//
// Each record contributes recordTotal * firstItemPct / 100, booked against the
// first line item's category regardless of how many items the record has.
// Physicians whose commissions sum to zero are dropped. The result is sorted
// by total descending; ties keep first-seen order so repeated runs over the
// same data produce identical output.
func Compute(records []*billing.Record) []*Summary {
	byPhysician := make(map[uuid.UUID]*Summary)
	var order []uuid.UUID

	for _, r := range records {
		if !billing.EligibleForCommission(r) {
			continue
		}
		cat, ok := r.AttributedCategory()
		if !ok {
			continue
		}

		id := *r.PhysicianID
		s, seen := byPhysician[id]
		if !seen {
			s = &Summary{
				PhysicianID:     id,
				PhysicianName:   r.ReferrerLabel(),
				CategoryAmounts: make(map[string]float64),
				Included:        true,
			}
			byPhysician[id] = s
			order = append(order, id)
		}

		amount := r.Total() * cat.CommissionPct / 100
		s.CategoryAmounts[cat.Name] += amount
		s.Total += amount
		s.RecordCount++
		s.Records = append(s.Records, r)
	}

	summaries := make([]*Summary, 0, len(order))
	for _, id := range order {
		if byPhysician[id].Total == 0 {
			continue
		}
		summaries = append(summaries, byPhysician[id])
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Total > summaries[j].Total
	})
	return summaries
}
