package memory

import (
	"context"
	"sort"
	"sync"

	"simm-challenger/internal/domain"
	"simm-challenger/internal/storage"
)

// ChallengeResultStore implements storage.ChallengeResultStore in memory.
type ChallengeResultStore struct {
	mu      sync.RWMutex
	results map[string]*domain.ChallengeResult
}

// NewChallengeResultStore creates a new in-memory ChallengeResultStore.
func NewChallengeResultStore() *ChallengeResultStore {
	return &ChallengeResultStore{results: make(map[string]*domain.ChallengeResult)}
}

// Compile-time interface check.
var _ storage.ChallengeResultStore = (*ChallengeResultStore)(nil)

// Insert adds a new result. Returns ErrDuplicateKey if evaluation_id exists.
func (s *ChallengeResultStore) Insert(_ context.Context, r *domain.ChallengeResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(r)
}

// InsertBulk adds multiple results atomically. Fails entire batch on any duplicate.
func (s *ChallengeResultStore) InsertBulk(_ context.Context, results []*domain.ChallengeResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate the whole batch before touching the map
	seen := make(map[string]struct{}, len(results))
	for _, r := range results {
		if _, dup := seen[r.EvaluationID]; dup {
			return storage.ErrDuplicateKey
		}
		if _, exists := s.results[r.EvaluationID]; exists {
			return storage.ErrDuplicateKey
		}
		seen[r.EvaluationID] = struct{}{}
	}
	for _, r := range results {
		if err := s.insertLocked(r); err != nil {
			return err
		}
	}
	return nil
}

func (s *ChallengeResultStore) insertLocked(r *domain.ChallengeResult) error {
	if r.EvaluationID == "" {
		return storage.ErrInvalidInput
	}
	if _, exists := s.results[r.EvaluationID]; exists {
		return storage.ErrDuplicateKey
	}
	s.results[r.EvaluationID] = copyResult(r)
	return nil
}

// GetByEvaluationID retrieves a result by its ID. Returns ErrNotFound if not exists.
func (s *ChallengeResultStore) GetByEvaluationID(_ context.Context, evaluationID string) (*domain.ChallengeResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, exists := s.results[evaluationID]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return copyResult(r), nil
}

// GetByTradeID retrieves all results for a trade, ordered by valuation date ASC.
func (s *ChallengeResultStore) GetByTradeID(_ context.Context, tradeID string) ([]*domain.ChallengeResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*domain.ChallengeResult
	for _, r := range s.results {
		if r.TradeID == tradeID {
			results = append(results, copyResult(r))
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].ValuationDate < results[j].ValuationDate
	})
	return results, nil
}

// GetByValuationDate retrieves all results for a valuation date.
func (s *ChallengeResultStore) GetByValuationDate(_ context.Context, valuationDate string) ([]*domain.ChallengeResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*domain.ChallengeResult
	for _, r := range s.results {
		if r.ValuationDate == valuationDate {
			results = append(results, copyResult(r))
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].TradeID < results[j].TradeID
	})
	return results, nil
}

func copyResult(r *domain.ChallengeResult) *domain.ChallengeResult {
	c := *r
	c.Checks = append([]domain.ChallengeCheck(nil), r.Checks...)
	return &c
}
