package ports

import (
	"context"

	"assetlens/domain/core"
	"assetlens/domain/table"
)

// SnapshotRepository persists refresh snapshot metadata. Persistence is
// optional: when no database is configured the service runs with a no-op
// implementation.
type SnapshotRepository interface {
	Create(ctx context.Context, snapshot *table.Snapshot) error
	GetByID(ctx context.Context, id core.SnapshotID) (*table.Snapshot, error)
	ListRecent(ctx context.Context, limit int) ([]*table.Snapshot, error)
}
