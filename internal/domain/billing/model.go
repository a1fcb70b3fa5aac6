package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Mode is the billing-mode tag of a visit.
type Mode string

const (
	ModeStandard          Mode = "standard"
	ModeSocial            Mode = "social"
	ModeCustom            Mode = "custom"
	ModeAccountReceivable Mode = "account_receivable"
)

// UnknownReferrer labels settlement groups for records that carry neither a
// linked physician nor a recommended-physician name.
const UnknownReferrer = "Sin médico"

// StudyCategory classifies a billed line item and carries the commission
// percentage paid to the referring physician.
type StudyCategory struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	CommissionPct float64   `db:"commission_pct" json:"commission_pct"`
}

// LineItem is one billed service within a visit record.
type LineItem struct {
	Price    float64       `db:"price" json:"price"`
	Category StudyCategory `json:"category"`
}

// Record maps to the visit table: one clinical visit/invoice with its joined
// patient, referring physician and line items.
type Record struct {
	ID                   uuid.UUID  `db:"id" json:"id"`
	VisitDate            time.Time  `db:"visit_date" json:"visit_date"`
	Mode                 Mode       `db:"mode" json:"mode"`
	PhysicianID          *uuid.UUID `db:"physician_id" json:"physician_id,omitempty"`
	PhysicianName        *string    `db:"physician_name" json:"physician_name,omitempty"`
	RecommendedPhysician *string    `db:"recommended_physician" json:"recommended_physician,omitempty"`
	NoPhysicianInfo      bool       `db:"no_physician_info" json:"no_physician_info"`
	MobileService        *bool      `db:"mobile_service" json:"mobile_service,omitempty"`
	Voided               *bool      `db:"voided" json:"voided,omitempty"`
	PatientName          *string    `db:"patient_name" json:"patient_name,omitempty"`
	Items                []LineItem `json:"items"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
}

// IsVoided treats a missing voided flag as false; legacy rows predate the column.
func (r *Record) IsVoided() bool {
	return r.Voided != nil && *r.Voided
}

// IsMobileService treats a missing mobile flag as false.
func (r *Record) IsMobileService() bool {
	return r.MobileService != nil && *r.MobileService
}

// Total sums all line-item prices of the record.
func (r *Record) Total() float64 {
	var total float64
	for _, item := range r.Items {
		total += item.Price
	}
	return total
}

// AttributedCategory returns the study category the whole record is attributed
// to for commission purposes: the category of the first line item, even when
// more line items exist. Inherited billing policy, not an oversight; see
// StudyDescription for the settlement-side projection.
func (r *Record) AttributedCategory() (StudyCategory, bool) {
	if len(r.Items) == 0 {
		return StudyCategory{}, false
	}
	return r.Items[0].Category, true
}

// StudyDescription joins the category names of ALL line items for display on
// settlement statements. Items whose category lost its name read "Estudio" so
// the statement never shows a blank segment. Kept deliberately separate from
// AttributedCategory: the two reports project the same line items differently.
func (r *Record) StudyDescription() string {
	names := make([]string, 0, len(r.Items))
	for _, item := range r.Items {
		name := item.Category.Name
		if name == "" {
			name = "Estudio"
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}

// ReferrerLabel resolves the display label used to group a record on
// settlement statements: linked physician name, then the free-text
// recommended physician, then the unknown sentinel. Two spellings of the same
// real-world physician stay separate groups; that data-quality gap is
// inherited as-is.
func (r *Record) ReferrerLabel() string {
	if r.PhysicianName != nil && *r.PhysicianName != "" {
		return *r.PhysicianName
	}
	if r.RecommendedPhysician != nil && *r.RecommendedPhysician != "" {
		return *r.RecommendedPhysician
	}
	return UnknownReferrer
}

// EligibleForCommission reports whether a record counts toward physician
// commissions. Social, custom and account-receivable billing modes never pay
// commission, nor do mobile/off-site services. The physician-linkage and
// voided checks re-validate what the repository query already filters.
func EligibleForCommission(r *Record) bool {
	switch r.Mode {
	case ModeSocial, ModeCustom, ModeAccountReceivable:
		return false
	}
	if r.IsMobileService() {
		return false
	}
	if r.PhysicianID == nil || r.NoPhysicianInfo || r.IsVoided() {
		return false
	}
	return true
}

// EligibleForSettlement reports whether a record belongs on the half-month
// settlement statement for the window [start, end]: referred (physician info
// present), billed to account receivable, not voided, dated inside the window.
func EligibleForSettlement(r *Record, start, end time.Time) bool {
	if r.NoPhysicianInfo {
		return false
	}
	if r.Mode != ModeAccountReceivable {
		return false
	}
	if r.IsVoided() {
		return false
	}
	if r.VisitDate.Before(start) || r.VisitDate.After(end) {
		return false
	}
	return true
}
