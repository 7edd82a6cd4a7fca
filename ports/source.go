package ports

import (
	"context"

	"assetlens/domain/table"
)

// InventorySource retrieves and ingests one full inventory dataset. A
// fetch either completes and yields a whole dataset or fails as a unit —
// no partial datasets cross this boundary.
type InventorySource interface {
	// Fetch retrieves the raw inventory data and runs the ingestion
	// pipeline over it.
	Fetch(ctx context.Context) (*table.Dataset, error)

	// Ref identifies the source for logging and snapshot records.
	Ref() string
}
