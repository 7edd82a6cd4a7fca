package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"assetlens/ai"
	"assetlens/app"
	"assetlens/domain/table"
	"assetlens/internal/config"
	"assetlens/internal/ingest"

	"github.com/stretchr/testify/assert"
)

type fixtureSource struct {
	blob string
}

func (f *fixtureSource) Fetch(ctx context.Context) (*table.Dataset, error) {
	return ingest.Build(f.blob), nil
}

func (f *fixtureSource) Ref() string { return "fixture" }

type fixtureGenerator struct{}

func (fixtureGenerator) GenerateText(ctx context.Context, systemMessage, prompt string) (string, error) {
	return "## Overview\n- 2 assets tracked", nil
}

func newTestServer(t *testing.T, loaded bool) *Server {
	t.Helper()
	source := &fixtureSource{blob: "Name,Value,สภาพ\ndesk,100,ใช้งานได้\nchair,50,ชำรุด\n"}
	service := app.NewInventoryService(source, nil)
	if loaded {
		if _, err := service.Refresh(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	return NewServer(config.ServerConfig{GinMode: "test"}, service, ai.NewAnalyst(fixtureGenerator{}))
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestDatasetEndpoint(t *testing.T) {
	s := newTestServer(t, true)

	w := doRequest(s, http.MethodGet, "/api/dataset", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var ds table.Dataset
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &ds))
	assert.Len(t, ds.Columns, 3)
	assert.Len(t, ds.Rows, 2)
}

func TestDatasetEndpointBeforeRefresh(t *testing.T) {
	s := newTestServer(t, false)
	w := doRequest(s, http.MethodGet, "/api/dataset", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRefreshEndpoint(t *testing.T) {
	s := newTestServer(t, false)

	w := doRequest(s, http.MethodPost, "/api/refresh", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rows":2`)

	w = doRequest(s, http.MethodGet, "/api/dataset", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSummaryEndpoint(t *testing.T) {
	s := newTestServer(t, true)

	w := doRequest(s, http.MethodGet, "/api/summary", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"row_count":2`)
	assert.Contains(t, w.Body.String(), `"Value"`)
}

func TestChatEndpoint(t *testing.T) {
	s := newTestServer(t, true)

	w := doRequest(s, http.MethodPost, "/api/chat", `{"question":"how many broken?"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2 assets tracked")
	assert.Contains(t, w.Body.String(), "answer_html")

	w = doRequest(s, http.MethodPost, "/api/chat", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInsightEndpointRendersMarkdown(t *testing.T) {
	s := newTestServer(t, true)

	w := doRequest(s, http.MethodGet, "/api/insight", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["html"], "<h2")
	assert.Contains(t, resp["markdown"], "## Overview")
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, false)
	w := doRequest(s, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
