package commission

import (
	"context"
	"fmt"
	"time"

	"github.com/conrad/backoffice/internal/domain/billing"
)

type Service struct {
	repo billing.RecordRepository
}

func NewService(repo billing.RecordRepository) *Service {
	return &Service{repo: repo}
}

// MonthWindow returns the inclusive date range covering a calendar month.
func MonthWindow(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// Summaries recomputes the commission summaries for an arbitrary inclusive
// date range. Nothing is cached or persisted between calls; a voided record
// disappears from the next run automatically.
func (s *Service) Summaries(ctx context.Context, from, to time.Time) ([]*Summary, error) {
	records, err := s.repo.ListCommissionCandidates(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list commission candidates: %w", err)
	}
	return Compute(records), nil
}
