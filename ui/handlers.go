package ui

import (
	"net/http"
	"strconv"

	"assetlens/internal/analysis"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

func (s *Server) handleHealth(c *gin.Context) {
	lastRefresh, lastErr := s.inventory.LastRefresh()
	status := gin.H{
		"status":       "ok",
		"last_refresh": lastRefresh,
	}
	if lastErr != nil {
		status["last_error"] = lastErr.Error()
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) handleDataset(c *gin.Context) {
	ds := s.inventory.Current()
	if ds == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "dataset not loaded yet, trigger a refresh"})
		return
	}
	c.JSON(http.StatusOK, ds)
}

func (s *Server) handleColumns(c *gin.Context) {
	ds := s.inventory.Current()
	if ds == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "dataset not loaded yet, trigger a refresh"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"columns": ds.Columns})
}

func (s *Server) handleSummary(c *gin.Context) {
	ds := s.inventory.Current()
	if ds == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "dataset not loaded yet, trigger a refresh"})
		return
	}
	c.JSON(http.StatusOK, analysis.Summarize(ds))
}

func (s *Server) handleSnapshots(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	snapshots, err := s.inventory.Snapshots(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": snapshots})
}

func (s *Server) handleRefresh(c *gin.Context) {
	ds, err := s.inventory.Refresh(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"rows":    len(ds.Rows),
		"columns": len(ds.Columns),
	})
}

func (s *Server) handleInsight(c *gin.Context) {
	if s.analyst == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI backend not configured"})
		return
	}
	ds := s.inventory.Current()
	if ds == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "dataset not loaded yet, trigger a refresh"})
		return
	}

	text, err := s.analyst.SummarizeDataset(c.Request.Context(), ds)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"markdown": text,
		"html":     renderMarkdown(text),
	})
}

type chatRequest struct {
	Question string `json:"question" binding:"required"`
}

func (s *Server) handleChat(c *gin.Context) {
	if s.analyst == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI backend not configured"})
		return
	}
	ds := s.inventory.Current()
	if ds == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "dataset not loaded yet, trigger a refresh"})
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	text, err := s.analyst.Ask(c.Request.Context(), ds, req.Question)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"answer":      text,
		"answer_html": renderMarkdown(text),
	})
}

// renderMarkdown converts model output to HTML for direct embedding in the
// dashboard.
func renderMarkdown(md string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.ToHTML([]byte(md), p, renderer))
}
