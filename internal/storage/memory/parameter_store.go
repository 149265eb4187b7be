// Package memory provides in-memory store implementations used by unit
// tests and single-shot CLI runs where no database is configured.
package memory

import (
	"context"
	"sort"
	"sync"

	"simm-challenger/internal/params"
	"simm-challenger/internal/storage"
)

// ParameterStore implements storage.ParameterStore in memory.
type ParameterStore struct {
	mu   sync.RWMutex
	sets map[string]*params.Set
}

// NewParameterStore creates a new in-memory ParameterStore.
func NewParameterStore() *ParameterStore {
	return &ParameterStore{sets: make(map[string]*params.Set)}
}

// Compile-time interface check.
var _ storage.ParameterStore = (*ParameterStore)(nil)

// Put stores a new parameter set. Returns ErrDuplicateKey if the version exists.
func (s *ParameterStore) Put(_ context.Context, set *params.Set) error {
	if set.Version == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sets[set.Version]; exists {
		return storage.ErrDuplicateKey
	}
	s.sets[set.Version] = copySet(set)
	return nil
}

// Get retrieves a parameter set by version. Returns ErrVersionNotFound if absent.
func (s *ParameterStore) Get(_ context.Context, version string) (*params.Set, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, exists := s.sets[version]
	if !exists {
		return nil, storage.ErrVersionNotFound
	}
	return copySet(set), nil
}

// ListVersions returns all stored versions, sorted ascending.
func (s *ParameterStore) ListVersions(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	versions := make([]string, 0, len(s.sets))
	for v := range s.sets {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions, nil
}

// copySet returns a deep copy so callers can never mutate stored state.
func copySet(set *params.Set) *params.Set {
	c := *set
	c.IRRiskWeightsRegular = copyFloatMap(set.IRRiskWeightsRegular)
	c.IRRiskWeightsLow = copyFloatMap(set.IRRiskWeightsLow)
	c.IRRiskWeightsHigh = copyFloatMap(set.IRRiskWeightsHigh)
	c.LowVolCurrencies = append([]string(nil), set.LowVolCurrencies...)
	c.HighVolCurrencies = append([]string(nil), set.HighVolCurrencies...)
	c.CRQRiskWeights = copyIntFloatMap(set.CRQRiskWeights)
	c.CRNQRiskWeights = copyIntFloatMap(set.CRNQRiskWeights)
	c.QualifyingRatings = append([]string(nil), set.QualifyingRatings...)
	c.DistressedRatings = append([]string(nil), set.DistressedRatings...)
	c.Correlations = copyFloatMap(set.Correlations)
	c.ConcentrationThresholds = copyFloatMap(set.ConcentrationThresholds)
	c.TolerancesPct = copyFloatMap(set.TolerancesPct)
	c.ScheduleFactors = copyFloatMap(set.ScheduleFactors)
	return &c
}

func copyFloatMap(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	c := make(map[string]float64, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func copyIntFloatMap(m map[int]float64) map[int]float64 {
	if m == nil {
		return nil
	}
	c := make(map[int]float64, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
