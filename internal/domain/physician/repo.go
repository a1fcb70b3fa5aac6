package physician

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type PhysicianRepository interface {
	// List returns all physicians ordered by name.
	List(ctx context.Context) ([]*Physician, error)

	// ReferralStats returns the number of non-voided visits referred by the
	// physician in [from, to] and the sum of their line-item totals.
	ReferralStats(ctx context.Context, physicianID uuid.UUID, from, to time.Time) (int, float64, error)
}
