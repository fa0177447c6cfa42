// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/class-ballot/auth"
	"github.com/danielhkuo/class-ballot/cliparse"
	"github.com/danielhkuo/class-ballot/ledger"
	"github.com/danielhkuo/class-ballot/middleware"
	"github.com/danielhkuo/class-ballot/models"
)

const adminTokenTTL = 8 * time.Hour

type AdminHandler struct {
	lg  *ledger.Ledger
	cfg cliparse.Config
}

func NewAdminHandler(lg *ledger.Ledger, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{lg: lg, cfg: cfg}
}

// Login handles POST /admin/login
// Exchanges the shared admin password for a session token. The optional
// display name travels in the token so audit entries can tell admins
// apart even though the credential is shared.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !auth.CheckPassword(h.cfg.AdminPassword, req.Password) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin password")
		return
	}

	name := req.Name
	if name == "" {
		name = "Admin"
	}

	token, err := auth.IssueAdminToken(name, h.cfg.JWTSecret, adminTokenTTL)
	if err != nil {
		slog.Error("failed to issue admin token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	// The client address goes into the trail hashed, not raw.
	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.JWTSecret)
	if err := h.lg.LogAdminAction(r.Context(), name, models.ActionAdminLogin, map[string]string{
		"ip_hash": ipHash,
	}); err != nil {
		slog.Warn("failed to log admin login", "error", err)
	}

	slog.Info("admin logged in", "admin", name)

	middleware.JSONResponse(w, http.StatusOK, models.AdminLoginResponse{
		Token: token,
		Name:  name,
	})
}

// GetStats handles GET /admin/stats
// Dashboard numbers: eligible, voted, pending, turnout, per-category
// vote totals.
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.lg.VotingStats(r.Context())
	if err != nil {
		slog.Error("failed to compute voting stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats)
}

// GetLogs handles GET /admin/logs?limit=
func (h *AdminHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	logs, err := h.lg.AdminLogs(r.Context(), limit)
	if err != nil {
		slog.Error("failed to query admin logs", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AdminLogsResponse{Logs: logs})
}

// Reset handles POST /admin/reset
// Deletes all votes, students, and candidates and un-publishes.
// Irreversible; the audit log survives and records the reset.
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	admin := middleware.AdminName(r)

	if err := h.lg.ResetElection(r.Context(), admin); err != nil {
		slog.Error("failed to reset election", "error", err, "admin", admin)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset election")
		return
	}

	slog.Warn("election reset", "admin", admin)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Election has been reset",
	})
}
