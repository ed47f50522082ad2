package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"moneta/internal/core"
)

const dashboardCacheKey = "dashboard"

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	if dash, ok := s.dashCache.Get(dashboardCacheKey); ok {
		slog.DebugContext(r.Context(), "Dashboard cache hit")
		writeJSON(w, http.StatusOK, dash)
		return
	}

	dash, err := s.dashboards.Build(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Dashboard build failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build dashboard")
		return
	}

	s.dashCache.Set(dashboardCacheKey, dash)
	writeJSON(w, http.StatusOK, dash)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	results, err := s.dashboards.Search(r.Context(), query)
	if err != nil {
		slog.ErrorContext(r.Context(), "Search failed", "error", err, "query", query)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	if results == nil {
		results = []core.Record{}
	}

	writeJSON(w, http.StatusOK, struct {
		Query   string        `json:"query"`
		Count   int           `json:"count"`
		Results []core.Record `json:"results"`
	}{Query: query, Count: len(results), Results: results})
}

type spendingReportRequest struct {
	Category      string `json:"category"`
	ReferenceDate string `json:"reference_date"`
	FileName      string `json:"file_name"`
}

type spendingReportResponse struct {
	Category      string        `json:"category"`
	ReferenceDate string        `json:"reference_date"`
	Path          string        `json:"path"`
	Count         int           `json:"count"`
	Transactions  []core.Record `json:"transactions"`
}

func (s *Server) handleSpendingReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	var req spendingReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		writeError(w, http.StatusBadRequest, "category is required")
		return
	}

	rows, path, err := s.reports.SpendingByCategory(r.Context(), req.Category, req.ReferenceDate, req.FileName)
	if err != nil {
		if errors.Is(err, core.ErrInvalidDateFormat) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Spending report failed", "error", err, "category", req.Category)
		writeError(w, http.StatusInternalServerError, "failed to generate report")
		return
	}
	if rows == nil {
		rows = []core.Record{}
	}

	writeJSON(w, http.StatusCreated, spendingReportResponse{
		Category:      req.Category,
		ReferenceDate: req.ReferenceDate,
		Path:          path,
		Count:         len(rows),
		Transactions:  rows,
	})
}
