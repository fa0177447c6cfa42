// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/class-ballot/auth"
	"github.com/danielhkuo/class-ballot/cliparse"
	"github.com/danielhkuo/class-ballot/ledger"
	"github.com/danielhkuo/class-ballot/middleware"
	"github.com/danielhkuo/class-ballot/models"
)

type VotingHandler struct {
	lg  *ledger.Ledger
	cfg cliparse.Config
}

func NewVotingHandler(lg *ledger.Ledger, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{lg: lg, cfg: cfg}
}

// GetElection handles GET /election
// Returns the category list with candidates - everything the voting
// form needs to render.
func (h *VotingHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	election := h.lg.Election()

	categories := make([]models.CategoryCandidates, 0, len(election.Categories))
	for _, category := range election.Categories {
		names, err := h.lg.ListCandidates(r.Context(), category)
		if err != nil {
			slog.Error("failed to list candidates", "error", err, "category", category)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		categories = append(categories, models.CategoryCandidates{
			Category:   category,
			Candidates: names,
		})
	}

	status, err := h.lg.PublishStatus(r.Context())
	if err != nil {
		slog.Error("failed to query publish status", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ElectionResponse{
		Name:       election.Name,
		Categories: categories,
		Published:  status.Published,
	})
}

// Verify handles POST /verify
// The login gate: checks the shared password, the ID format, and
// whether the student has already voted. SubmitBallot re-checks all of
// this - passing verification holds no ballot slot open.
func (h *VotingHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.StudentID == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "student_id and password are required")
		return
	}

	if !auth.CheckPassword(h.cfg.StudentPassword, req.Password) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	scheme := h.lg.Election().IDScheme
	sid := scheme.Normalize(req.StudentID)
	if !scheme.Valid(sid) {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			"Invalid student ID format. Expected: "+scheme.Describe())
		return
	}

	voted, err := h.lg.HasVoted(r.Context(), sid)
	if err != nil {
		slog.Error("failed to check voted state", "error", err, "student_id", sid)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if voted {
		middleware.ErrorResponse(w, http.StatusConflict, "You have already voted. Each student can vote only once.")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VerifyResponse{
		StudentID: sid,
		Eligible:  true,
	})
}

// SubmitBallot handles POST /ballots
func (h *VotingHandler) SubmitBallot(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.StudentID == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "student_id and password are required")
		return
	}
	if len(req.Selections) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "selections cannot be empty")
		return
	}

	if !auth.CheckPassword(h.cfg.StudentPassword, req.Password) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	sid := h.lg.Election().IDScheme.Normalize(req.StudentID)

	err := h.lg.SubmitVotes(r.Context(), sid, req.Selections)
	switch {
	case err == nil:
		// fallthrough to success response
	case errors.Is(err, ledger.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusConflict, "You have already voted!")
		return
	case errors.Is(err, ledger.ErrInvalidStudentID),
		errors.Is(err, ledger.ErrIncompleteBallot),
		errors.Is(err, ledger.ErrUnknownCategory),
		errors.Is(err, ledger.ErrUnknownCandidate):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	default:
		slog.Error("failed to submit ballot", "error", err, "student_id", sid)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit ballot")
		return
	}

	slog.Info("ballot submitted", "student_id", sid)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitBallotResponse{
		StudentID: sid,
		Message:   "Vote submitted successfully!",
	})
}

// GetStudentStatus handles GET /students/{id}/status
func (h *VotingHandler) GetStudentStatus(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")
	if raw == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "student id is required")
		return
	}

	scheme := h.lg.Election().IDScheme
	sid := scheme.Normalize(raw)
	if !scheme.Valid(sid) {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			"Invalid student ID format. Expected: "+scheme.Describe())
		return
	}

	voted, err := h.lg.HasVoted(r.Context(), sid)
	if err != nil {
		slog.Error("failed to check voted state", "error", err, "student_id", sid)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.StudentStatusResponse{
		StudentID: sid,
		HasVoted:  voted,
	})
}
