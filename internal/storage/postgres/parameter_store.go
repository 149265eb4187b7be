package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"simm-challenger/internal/params"
	"simm-challenger/internal/storage"
)

// ParameterStore implements storage.ParameterStore using PostgreSQL.
// Each version is one row with the whole calibration as a JSONB payload:
// sets are loaded whole and never queried field by field, so a relational
// decomposition of the tables would buy nothing.
type ParameterStore struct {
	pool *Pool
}

// NewParameterStore creates a new ParameterStore.
func NewParameterStore(pool *Pool) *ParameterStore {
	return &ParameterStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ParameterStore = (*ParameterStore)(nil)

// Put stores a new parameter set. Returns ErrDuplicateKey if the version exists.
func (s *ParameterStore) Put(ctx context.Context, set *params.Set) error {
	if set.Version == "" {
		return storage.ErrInvalidInput
	}
	payload, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("marshal parameter set: %w", err)
	}

	query := `INSERT INTO parameter_sets (version, payload) VALUES ($1, $2)`
	if _, err := s.pool.Exec(ctx, query, set.Version, payload); err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert parameter set: %w", err)
	}
	return nil
}

// Get retrieves a parameter set by version. Returns ErrVersionNotFound if absent.
func (s *ParameterStore) Get(ctx context.Context, version string) (*params.Set, error) {
	query := `SELECT payload FROM parameter_sets WHERE version = $1`

	var payload []byte
	if err := s.pool.QueryRow(ctx, query, version).Scan(&payload); err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrVersionNotFound
		}
		return nil, fmt.Errorf("get parameter set %s: %w", version, err)
	}

	var set params.Set
	if err := json.Unmarshal(payload, &set); err != nil {
		return nil, fmt.Errorf("unmarshal parameter set %s: %w", version, err)
	}
	return &set, nil
}

// ListVersions returns all stored versions, sorted ascending.
func (s *ParameterStore) ListVersions(ctx context.Context) ([]string, error) {
	query := `SELECT version FROM parameter_sets ORDER BY version ASC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list parameter versions: %w", err)
	}
	defer rows.Close()

	var versions []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan parameter version: %w", err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate parameter versions: %w", err)
	}
	return versions, nil
}
