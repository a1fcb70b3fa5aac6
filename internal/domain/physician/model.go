package physician

import (
	"time"

	"github.com/google/uuid"
)

// Physician is a referring physician known to the clinic.
type Physician struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Specialty *string   `db:"specialty" json:"specialty,omitempty"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	Email     *string   `db:"email" json:"email,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// RosterEntry pairs a physician with their referral activity in a date range.
type RosterEntry struct {
	Physician     *Physician `json:"physician"`
	ReferralCount int        `json:"referral_count"`
	TotalBilled   float64    `json:"total_billed"`
}
