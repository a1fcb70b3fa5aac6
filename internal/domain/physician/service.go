package physician

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type Service struct {
	repo PhysicianRepository
}

func NewService(repo PhysicianRepository) *Service {
	return &Service{repo: repo}
}

// Roster returns every physician with their referral stats for the range.
// Stats are fetched concurrently, one goroutine per physician writing to its
// own slice slot, so the roster keeps the repository's name ordering.
func (s *Service) Roster(ctx context.Context, from, to time.Time) ([]*RosterEntry, error) {
	physicians, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list physicians: %w", err)
	}

	entries := make([]*RosterEntry, len(physicians))
	errs := make([]error, len(physicians))
	var wg sync.WaitGroup
	for i, p := range physicians {
		wg.Add(1)
		go func(i int, p *Physician) {
			defer wg.Done()
			count, total, err := s.repo.ReferralStats(ctx, p.ID, from, to)
			if err != nil {
				errs[i] = err
				return
			}
			entries[i] = &RosterEntry{Physician: p, ReferralCount: count, TotalBilled: total}
		}(i, p)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return entries, nil
}
