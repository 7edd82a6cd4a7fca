// Package ui serves the dashboard API over gin: the typed dataset, KPI
// summaries, refresh control, and the AI insight/chat endpoints.
package ui

import (
	"fmt"
	"log"

	"assetlens/ai"
	"assetlens/app"
	"assetlens/internal/config"

	"github.com/gin-gonic/gin"
)

// Server represents the dashboard web server.
type Server struct {
	router    *gin.Engine
	inventory *app.InventoryService
	analyst   *ai.Analyst
}

// NewServer creates the dashboard server. analyst may be nil when no AI
// backend is configured; the AI endpoints then answer 503.
func NewServer(cfg config.ServerConfig, inventory *app.InventoryService, analyst *ai.Analyst) *Server {
	gin.SetMode(cfg.GinMode)

	s := &Server{
		router:    gin.Default(),
		inventory: inventory,
		analyst:   analyst,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.GET("/dataset", s.handleDataset)
		api.GET("/columns", s.handleColumns)
		api.GET("/summary", s.handleSummary)
		api.GET("/snapshots", s.handleSnapshots)
		api.POST("/refresh", s.handleRefresh)
		api.GET("/insight", s.handleInsight)
		api.POST("/chat", s.handleChat)
	}
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server on the given port.
func (s *Server) Run(port string) error {
	addr := fmt.Sprintf(":%s", port)
	log.Printf("[Server] Dashboard listening on %s", addr)
	return s.router.Run(addr)
}
