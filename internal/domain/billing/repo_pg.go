package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type recordRepoPG struct{ pool *pgxpool.Pool }

func NewRecordRepoPG(pool *pgxpool.Pool) RecordRepository { return &recordRepoPG{pool: pool} }

const recordCols = `v.id, v.visit_date, v.mode, v.physician_id, ph.name, v.recommended_physician,
	v.no_physician_info, v.mobile_service, v.voided, p.name, v.created_at`

const recordFrom = `FROM visit v
	JOIN patient p ON p.id = v.patient_id
	LEFT JOIN physician ph ON ph.id = v.physician_id`

func (r *recordRepoPG) ListCommissionCandidates(ctx context.Context, from, to time.Time) ([]*Record, error) {
	query := fmt.Sprintf(`SELECT %s %s
		WHERE v.visit_date >= $1 AND v.visit_date <= $2
		  AND v.physician_id IS NOT NULL
		  AND v.no_physician_info = false
		  AND (v.voided IS NULL OR v.voided = false)
		  AND (v.mobile_service IS NULL OR v.mobile_service = false)
		ORDER BY v.created_at`, recordCols, recordFrom)
	return r.listRecords(ctx, query, from, to)
}

func (r *recordRepoPG) ListSettlementCandidates(ctx context.Context, from, to time.Time) ([]*Record, error) {
	query := fmt.Sprintf(`SELECT %s %s
		WHERE v.visit_date >= $1 AND v.visit_date <= $2
		  AND v.no_physician_info = false
		  AND v.mode = 'account_receivable'
		ORDER BY v.created_at`, recordCols, recordFrom)
	return r.listRecords(ctx, query, from, to)
}

func (r *recordRepoPG) listRecords(ctx context.Context, query string, from, to time.Time) ([]*Record, error) {
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("query visit records: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var rec Record
		err := rows.Scan(&rec.ID, &rec.VisitDate, &rec.Mode, &rec.PhysicianID, &rec.PhysicianName,
			&rec.RecommendedPhysician, &rec.NoPhysicianInfo, &rec.MobileService, &rec.Voided,
			&rec.PatientName, &rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan visit record: %w", err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate visit records: %w", err)
	}

	if err := r.attachItems(ctx, records); err != nil {
		return nil, err
	}
	return records, nil
}

// attachItems loads the line items for all records in one query and assembles
// them in position order, so Items[0] is the attribution line item.
func (r *recordRepoPG) attachItems(ctx context.Context, records []*Record) error {
	if len(records) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(records))
	byID := make(map[uuid.UUID]*Record, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
		byID[rec.ID] = rec
	}

	rows, err := r.pool.Query(ctx, `
		SELECT i.visit_id, i.price, sc.id, sc.name, sc.commission_pct
		FROM visit_item i
		JOIN study_category sc ON sc.id = i.study_category_id
		WHERE i.visit_id = ANY($1)
		ORDER BY i.visit_id, i.position`, ids)
	if err != nil {
		return fmt.Errorf("query visit items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var visitID uuid.UUID
		var item LineItem
		if err := rows.Scan(&visitID, &item.Price, &item.Category.ID, &item.Category.Name, &item.Category.CommissionPct); err != nil {
			return fmt.Errorf("scan visit item: %w", err)
		}
		if rec, ok := byID[visitID]; ok {
			rec.Items = append(rec.Items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate visit items: %w", err)
	}
	return nil
}
