// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/class-ballot/cliparse"
	"github.com/danielhkuo/class-ballot/ledger"
	"github.com/danielhkuo/class-ballot/middleware"
	"github.com/danielhkuo/class-ballot/models"
)

type ResultsHandler struct {
	lg  *ledger.Ledger
	cfg cliparse.Config
}

func NewResultsHandler(lg *ledger.Ledger, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{lg: lg, cfg: cfg}
}

// GetResults handles GET /results
// Results are sealed until an admin publishes them; before that the
// endpoint returns 403 for everyone. After publishing it returns the
// tied winner sets per category with the publish metadata.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	status, err := h.lg.PublishStatus(r.Context())
	if err != nil {
		slog.Error("failed to query publish status", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if !status.Published {
		middleware.ErrorResponse(w, http.StatusForbidden, "Results are not published yet")
		return
	}

	winners, err := h.lg.Winners(r.Context())
	if err != nil {
		slog.Error("failed to compute winners", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		Results: winners,
		Status:  status,
	})
}

// GetVoteCounts handles GET /admin/votes
// The full pre-publish tally, admin only.
func (h *ResultsHandler) GetVoteCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.lg.VoteCounts(r.Context())
	if err != nil {
		slog.Error("failed to query vote counts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoteCountsResponse{Counts: counts})
}

// Publish handles POST /admin/publish
// Flipping the flag twice is harmless: the second call changes nothing
// and the response reports the original publish metadata.
func (h *ResultsHandler) Publish(w http.ResponseWriter, r *http.Request) {
	admin := middleware.AdminName(r)

	if err := h.lg.PublishResults(r.Context(), admin); err != nil {
		slog.Error("failed to publish results", "error", err, "admin", admin)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to publish results")
		return
	}

	status, err := h.lg.PublishStatus(r.Context())
	if err != nil {
		slog.Error("failed to query publish status", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("results published", "admin", admin)

	middleware.JSONResponse(w, http.StatusOK, status)
}

// GetPublishStatus handles GET /admin/publish-status
func (h *ResultsHandler) GetPublishStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.lg.PublishStatus(r.Context())
	if err != nil {
		slog.Error("failed to query publish status", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, status)
}
