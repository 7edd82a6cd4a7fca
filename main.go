package main

import (
	"context"
	"log"

	"assetlens/adapters/excel"
	"assetlens/adapters/postgres"
	"assetlens/adapters/sheet"
	"assetlens/ai"
	"assetlens/app"
	"assetlens/internal/config"
	"assetlens/ports"
	"assetlens/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Load .env if present; environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Inventory source: published sheet takes precedence, local file is
	// the offline fallback.
	var source ports.InventorySource
	if cfg.Source.SheetCSVURL != "" {
		source = sheet.NewReader(cfg.Source.SheetCSVURL, cfg.Source.FetchTimeout)
		log.Printf("[Main] Using published sheet source: %s", cfg.Source.SheetCSVURL)
	} else {
		source = excel.NewReader(cfg.Source.ExcelFile)
		log.Printf("[Main] Using local file source: %s", cfg.Source.ExcelFile)
	}

	// Optional snapshot persistence.
	var snapshots ports.SnapshotRepository
	if cfg.Database.Enabled {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := postgres.Migrate(db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		snapshots = postgres.NewSnapshotRepository(db)
		log.Printf("[Main] Snapshot persistence enabled")
	}

	inventory := app.NewInventoryService(source, snapshots)

	// Warm the dataset; a failed initial fetch is not fatal, the dashboard
	// surfaces the error and offers refresh.
	ctx := context.Background()
	if _, err := inventory.Refresh(ctx); err != nil {
		log.Printf("[Main] Initial refresh failed: %v", err)
	}
	inventory.StartAutoRefresh(ctx, cfg.Source.AutoRefresh)

	// AI analyst is optional: without an API key the endpoints answer 503.
	var analyst *ai.Analyst
	if cfg.AI.APIKey != "" {
		analyst = ai.NewAnalyst(ai.NewClient(cfg.AI))
	} else {
		log.Printf("[Main] OPENAI_API_KEY not set, AI endpoints disabled")
	}

	server := ui.NewServer(cfg.Server, inventory, analyst)
	if err := server.Run(cfg.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
