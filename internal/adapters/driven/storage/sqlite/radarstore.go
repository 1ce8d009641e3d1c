// Package sqlite provides SQLite-backed persistence for radar
// collections. Radars survive across sessions; the starred working set
// itself is deliberately session-scoped and never stored here.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/starradar-cli/internal/core/domain"
	"github.com/custodia-labs/starradar-cli/internal/core/ports/driven"
)

// Ensure RadarStore implements the interface.
var _ driven.RadarStore = (*RadarStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS radars (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT '',
	repo_ids    TEXT NOT NULL DEFAULT '[]',
	created_at  TIMESTAMP NOT NULL,
	updated_at  TIMESTAMP NOT NULL
);
`

// RadarStore is a SQLite-backed implementation of driven.RadarStore.
type RadarStore struct {
	db   *sql.DB
	path string
}

// NewRadarStore opens (or creates) the radar database in dataDir.
// If dataDir is empty, defaults to ~/.starradar/data/radars.db.
func NewRadarStore(dataDir string) (*RadarStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".starradar", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "radars.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &RadarStore{db: db, path: dbPath}, nil
}

// Path returns the database file path.
func (s *RadarStore) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *RadarStore) Close() error {
	return s.db.Close()
}

// Save stores or updates a radar.
func (s *RadarStore) Save(ctx context.Context, radar *domain.Radar) error {
	repoIDs, err := json.Marshal(radar.RepoIDs)
	if err != nil {
		return fmt.Errorf("marshalling repo ids: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO radars (id, name, description, repo_ids, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			repo_ids = excluded.repo_ids,
			updated_at = excluded.updated_at`,
		radar.ID, radar.Name, radar.Description, string(repoIDs),
		radar.CreatedAt.UTC(), radar.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving radar: %w", err)
	}
	return nil
}

// Get retrieves a radar by id.
func (s *RadarStore) Get(ctx context.Context, id string) (*domain.Radar, error) {
	return s.scanOne(s.db.QueryRowContext(ctx, `
		SELECT id, name, description, repo_ids, created_at, updated_at
		FROM radars WHERE id = ?`, id))
}

// GetByName retrieves a radar by display name.
func (s *RadarStore) GetByName(ctx context.Context, name string) (*domain.Radar, error) {
	return s.scanOne(s.db.QueryRowContext(ctx, `
		SELECT id, name, description, repo_ids, created_at, updated_at
		FROM radars WHERE name = ?`, name))
}

// List returns all radars ordered by creation time.
func (s *RadarStore) List(ctx context.Context) ([]domain.Radar, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, repo_ids, created_at, updated_at
		FROM radars ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing radars: %w", err)
	}
	defer rows.Close()

	var radars []domain.Radar
	for rows.Next() {
		radar, err := scanRadar(rows.Scan)
		if err != nil {
			return nil, err
		}
		radars = append(radars, *radar)
	}
	return radars, rows.Err()
}

// Delete removes a radar by id.
func (s *RadarStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM radars WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting radar: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *RadarStore) scanOne(row *sql.Row) (*domain.Radar, error) {
	radar, err := scanRadar(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return radar, err
}

// scanRadar reads one row via the given scan function.
func scanRadar(scan func(...any) error) (*domain.Radar, error) {
	var radar domain.Radar
	var repoIDs string
	var createdAt, updatedAt time.Time

	if err := scan(&radar.ID, &radar.Name, &radar.Description, &repoIDs, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning radar: %w", err)
	}

	if err := json.Unmarshal([]byte(repoIDs), &radar.RepoIDs); err != nil {
		return nil, fmt.Errorf("unmarshalling repo ids: %w", err)
	}
	radar.CreatedAt = createdAt
	radar.UpdatedAt = updatedAt
	return &radar, nil
}
