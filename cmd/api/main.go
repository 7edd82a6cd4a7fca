// Headless JSON API for the inventory dataset: the same service as the
// dashboard without the AI endpoints, for programmatic consumers.
package main

import (
	"encoding/json"
	"log"
	"net/http"

	"assetlens/adapters/excel"
	"assetlens/adapters/sheet"
	"assetlens/app"
	"assetlens/internal/analysis"
	"assetlens/internal/config"
	"assetlens/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var source ports.InventorySource
	if cfg.Source.SheetCSVURL != "" {
		source = sheet.NewReader(cfg.Source.SheetCSVURL, cfg.Source.FetchTimeout)
	} else {
		source = excel.NewReader(cfg.Source.ExcelFile)
	}

	inventory := app.NewInventoryService(source, nil)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/dataset", func(w http.ResponseWriter, r *http.Request) {
		ds := inventory.Current()
		if ds == nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "dataset not loaded yet"})
			return
		}
		writeJSON(w, http.StatusOK, ds)
	})

	r.Get("/api/summary", func(w http.ResponseWriter, r *http.Request) {
		ds := inventory.Current()
		if ds == nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "dataset not loaded yet"})
			return
		}
		writeJSON(w, http.StatusOK, analysis.Summarize(ds))
	})

	r.Post("/api/refresh", func(w http.ResponseWriter, r *http.Request) {
		ds, err := inventory.Refresh(r.Context())
		if err != nil {
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"rows": len(ds.Rows), "columns": len(ds.Columns)})
	})

	addr := ":" + cfg.Server.Port
	log.Printf("[API] Headless API listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[API] Failed to encode response: %v", err)
	}
}
