package commission

import (
	"github.com/google/uuid"

	"github.com/conrad/backoffice/internal/domain/billing"
)

// Summary is one physician's commission line for a month: per-category
// commission amounts plus the grand total, with the contributing records kept
// for drill-down in the preview response.
type Summary struct {
	PhysicianID     uuid.UUID          `json:"physician_id"`
	PhysicianName   string             `json:"physician_name"`
	RecordCount     int                `json:"record_count"`
	CategoryAmounts map[string]float64 `json:"category_amounts"`
	Total           float64            `json:"total"`
	Records         []*billing.Record  `json:"records,omitempty"`
	Included        bool               `json:"included"`
}
