package billing

import (
	"context"
	"time"
)

// RecordRepository is the record source adapter: it returns visit records for
// a date range with patient, physician, line-item and study-category
// sub-entities populated, in creation order.
type RecordRepository interface {
	// ListCommissionCandidates returns records that may earn commission in
	// [from, to]: physician linked, physician info present, not voided, not a
	// mobile service. Voided and mobile use a "flag is null or false" filter
	// because legacy rows have the columns unset.
	ListCommissionCandidates(ctx context.Context, from, to time.Time) ([]*Record, error)

	// ListSettlementCandidates returns account-receivable records with
	// physician info in [from, to], ordered by creation time. Voided records
	// are NOT filtered here; the settlement aggregator re-checks them.
	ListSettlementCandidates(ctx context.Context, from, to time.Time) ([]*Record, error)
}
