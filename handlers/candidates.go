// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/class-ballot/cliparse"
	"github.com/danielhkuo/class-ballot/ledger"
	"github.com/danielhkuo/class-ballot/middleware"
	"github.com/danielhkuo/class-ballot/models"
)

type CandidateHandler struct {
	lg  *ledger.Ledger
	cfg cliparse.Config
}

func NewCandidateHandler(lg *ledger.Ledger, cfg cliparse.Config) *CandidateHandler {
	return &CandidateHandler{lg: lg, cfg: cfg}
}

// List handles GET /admin/candidates
// Returns every candidate with vote counts, for the admin panel.
func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.lg.AllCandidates(r.Context())
	if err != nil {
		slog.Error("failed to list candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// Add handles POST /admin/candidates
func (h *CandidateHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req models.CandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Category == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "category is required")
		return
	}

	admin := middleware.AdminName(r)

	err := h.lg.AddCandidate(r.Context(), admin, req.Name, req.Category)
	switch {
	case err == nil:
	case errors.Is(err, ledger.ErrDuplicateCandidate):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, ledger.ErrUnknownCategory), errors.Is(err, ledger.ErrInvalidCandidate):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	default:
		slog.Error("failed to add candidate", "error", err, "name", req.Name, "category", req.Category)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add candidate")
		return
	}

	slog.Info("candidate added", "name", req.Name, "category", req.Category, "admin", admin)

	middleware.JSONResponse(w, http.StatusCreated, map[string]string{
		"message": "Candidate '" + req.Name + "' added to " + req.Category,
	})
}

// Delete handles DELETE /admin/candidates
// Only candidates with zero recorded votes can be removed.
func (h *CandidateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req models.CandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" || req.Category == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name and category are required")
		return
	}

	admin := middleware.AdminName(r)

	err := h.lg.DeleteCandidate(r.Context(), admin, req.Name, req.Category)
	switch {
	case err == nil:
	case errors.Is(err, ledger.ErrCandidateHasVotes):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, ledger.ErrCandidateNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
		return
	default:
		slog.Error("failed to delete candidate", "error", err, "name", req.Name, "category", req.Category)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete candidate")
		return
	}

	slog.Info("candidate deleted", "name", req.Name, "category", req.Category, "admin", admin)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Candidate '" + req.Name + "' deleted from " + req.Category,
	})
}
