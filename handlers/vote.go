// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/same-returns/cliparse"
	"github.com/danielhkuo/same-returns/middleware"
	"github.com/danielhkuo/same-returns/models"
	"github.com/danielhkuo/same-returns/store"
	"github.com/danielhkuo/same-returns/survey"
)

type VoteHandler struct {
	store store.Store
	cfg   cliparse.Config
}

func NewVoteHandler(st store.Store, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{store: st, cfg: cfg}
}

// Vote handles POST /vote
// Every successful call counts one more vote; retries count again
func (h *VoteHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := req.Validate(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	// Only labels belonging to the stage ever reach the store
	stage, err := survey.ValidateVote(req.Stage, req.Choice)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	tally, err := h.store.Increment(r.Context(), stage.ID, req.Choice)
	if err != nil {
		storeErrorResponse(w, err, "failed to record vote", "stage", stage.ID, "choice", req.Choice)
		return
	}

	slog.Info("vote recorded", "stage", stage.ID, "choice", req.Choice, "total", tally.Total())

	middleware.JSONResponse(w, http.StatusOK, tally.WithLabels(stage.Labels()...))
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Sprintf("%s is required", verrs[0].Field())
	}
	return "Invalid request"
}

// storeErrorResponse maps store errors to status codes and logs server-side failures
func storeErrorResponse(w http.ResponseWriter, err error, logMsg string, attrs ...any) {
	switch {
	case errors.Is(err, store.ErrInvalidKey):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Tally not found")
	case errors.Is(err, store.ErrStorageUnavailable):
		slog.Error(logMsg, append(attrs, "error", err)...)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Storage unavailable")
	default:
		slog.Error(logMsg, append(attrs, "error", err)...)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}
