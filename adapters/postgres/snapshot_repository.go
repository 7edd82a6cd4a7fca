package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"assetlens/domain/core"
	"assetlens/domain/table"
	"assetlens/ports"

	"github.com/jmoiron/sqlx"
)

// snapshotRepository implements the SnapshotRepository interface
type snapshotRepository struct {
	db *sqlx.DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *sqlx.DB) ports.SnapshotRepository {
	return &snapshotRepository{db: db}
}

// Migrate creates the snapshots table if it does not exist.
func Migrate(db *sqlx.DB) error {
	schema := `CREATE TABLE IF NOT EXISTS refresh_snapshots (
		id TEXT PRIMARY KEY,
		fetched_at TIMESTAMPTZ NOT NULL,
		source_ref TEXT NOT NULL DEFAULT '',
		row_count INTEGER NOT NULL DEFAULT 0,
		column_count INTEGER NOT NULL DEFAULT 0,
		columns JSONB NOT NULL DEFAULT '[]',
		content_hash TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create refresh_snapshots table: %w", err)
	}
	return nil
}

// Create inserts a new refresh snapshot
func (r *snapshotRepository) Create(ctx context.Context, snapshot *table.Snapshot) error {
	columnsJSON, err := json.Marshal(snapshot.Columns)
	if err != nil {
		return fmt.Errorf("failed to marshal columns: %w", err)
	}

	query := `INSERT INTO refresh_snapshots (
		id, fetched_at, source_ref, row_count, column_count, columns, content_hash, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.db.ExecContext(ctx, query,
		snapshot.ID, snapshot.FetchedAt, snapshot.SourceRef, snapshot.RowCount,
		snapshot.ColumnCount, columnsJSON, snapshot.ContentHash, snapshot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	return nil
}

// GetByID retrieves a snapshot by its ID
func (r *snapshotRepository) GetByID(ctx context.Context, id core.SnapshotID) (*table.Snapshot, error) {
	query := `SELECT id, fetched_at, source_ref, row_count, column_count, columns, content_hash, created_at
	FROM refresh_snapshots WHERE id = $1`

	snapshot, err := r.scanSnapshot(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return snapshot, nil
}

// ListRecent retrieves the most recent snapshots, newest first
func (r *snapshotRepository) ListRecent(ctx context.Context, limit int) ([]*table.Snapshot, error) {
	query := `SELECT id, fetched_at, source_ref, row_count, column_count, columns, content_hash, created_at
	FROM refresh_snapshots
	ORDER BY created_at DESC
	LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*table.Snapshot
	for rows.Next() {
		snapshot, err := r.scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func (r *snapshotRepository) scanSnapshot(row scanner) (*table.Snapshot, error) {
	var snapshot table.Snapshot
	var columnsJSON []byte

	err := row.Scan(
		&snapshot.ID, &snapshot.FetchedAt, &snapshot.SourceRef, &snapshot.RowCount,
		&snapshot.ColumnCount, &columnsJSON, &snapshot.ContentHash, &snapshot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(columnsJSON) > 0 {
		if err := json.Unmarshal(columnsJSON, &snapshot.Columns); err != nil {
			return nil, fmt.Errorf("failed to unmarshal columns: %w", err)
		}
	}
	return &snapshot, nil
}
