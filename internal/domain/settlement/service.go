package settlement

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

// PeriodGroups fetches and groups the settlement records for one quincena.
// Returns ErrNoRecords when the window is empty after filtering.
func (s *Service) PeriodGroups(ctx context.Context, year int, month time.Month, half Half) ([]*Group, error) {
	start, end := Window(year, month, half)
	records, err := s.repo.ListSettlementCandidates(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("list settlement candidates: %w", err)
	}
	groups := BuildGroups(records, start, end)
	if len(groups) == 0 {
		return nil, ErrNoRecords
	}
	return groups, nil
}
