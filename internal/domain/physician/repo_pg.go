package physician

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type physicianRepoPG struct{ pool *pgxpool.Pool }

func NewPhysicianRepoPG(pool *pgxpool.Pool) PhysicianRepository {
	return &physicianRepoPG{pool: pool}
}

func (r *physicianRepoPG) List(ctx context.Context) ([]*Physician, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, specialty, phone, email, created_at
		FROM physician
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query physicians: %w", err)
	}
	defer rows.Close()

	var physicians []*Physician
	for rows.Next() {
		var p Physician
		if err := rows.Scan(&p.ID, &p.Name, &p.Specialty, &p.Phone, &p.Email, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan physician: %w", err)
		}
		physicians = append(physicians, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate physicians: %w", err)
	}
	return physicians, nil
}

func (r *physicianRepoPG) ReferralStats(ctx context.Context, physicianID uuid.UUID, from, to time.Time) (int, float64, error) {
	var count int
	var total float64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(DISTINCT v.id), COALESCE(SUM(i.price), 0)
		FROM visit v
		LEFT JOIN visit_item i ON i.visit_id = v.id
		WHERE v.physician_id = $1
		  AND v.visit_date >= $2 AND v.visit_date <= $3
		  AND (v.voided IS NULL OR v.voided = false)`,
		physicianID, from, to).Scan(&count, &total)
	if err != nil {
		return 0, 0, fmt.Errorf("referral stats: %w", err)
	}
	return count, total, nil
}
