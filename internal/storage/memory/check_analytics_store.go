package memory

import (
	"context"
	"sort"
	"sync"

	"simm-challenger/internal/domain"
	"simm-challenger/internal/storage"
)

// CheckAnalyticsStore implements storage.CheckAnalyticsStore in memory.
type CheckAnalyticsStore struct {
	mu      sync.RWMutex
	records []*domain.CheckRecord
}

// NewCheckAnalyticsStore creates a new in-memory CheckAnalyticsStore.
func NewCheckAnalyticsStore() *CheckAnalyticsStore {
	return &CheckAnalyticsStore{}
}

// Compile-time interface check.
var _ storage.CheckAnalyticsStore = (*CheckAnalyticsStore)(nil)

// InsertBulk adds multiple check records.
func (s *CheckAnalyticsStore) InsertBulk(_ context.Context, records []*domain.CheckRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range records {
		c := *rec
		s.records = append(s.records, &c)
	}
	return nil
}

// GetByTradeID retrieves all check records for a trade.
func (s *CheckAnalyticsStore) GetByTradeID(_ context.Context, tradeID string) ([]*domain.CheckRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.CheckRecord
	for _, rec := range s.records {
		if rec.TradeID == tradeID {
			c := *rec
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ValuationDate != out[j].ValuationDate {
			return out[i].ValuationDate < out[j].ValuationDate
		}
		return out[i].CheckName < out[j].CheckName
	})
	return out, nil
}

// CountByStatus returns per-status check counts for a valuation date.
func (s *CheckAnalyticsStore) CountByStatus(_ context.Context, valuationDate string) (map[domain.CheckStatus]uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[domain.CheckStatus]uint64)
	for _, rec := range s.records {
		if rec.ValuationDate == valuationDate {
			counts[rec.Status]++
		}
	}
	return counts, nil
}
