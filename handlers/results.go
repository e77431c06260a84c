// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/same-returns/cliparse"
	"github.com/danielhkuo/same-returns/middleware"
	"github.com/danielhkuo/same-returns/store"
	"github.com/danielhkuo/same-returns/survey"
)

type ResultsHandler struct {
	store store.Store
	cfg   cliparse.Config
}

func NewResultsHandler(st store.Store, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{store: st, cfg: cfg}
}

// GetTally handles GET /tally/{stage}
// Returns 404 until the stage receives its first vote
func (h *ResultsHandler) GetTally(w http.ResponseWriter, r *http.Request) {
	stageID := r.PathValue("stage")
	if stageID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "stage is required")
		return
	}

	stage, err := survey.LookupStage(stageID)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	tally, err := h.store.Get(r.Context(), stage.ID)
	if err != nil {
		storeErrorResponse(w, err, "failed to read tally", "stage", stage.ID)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, tally.WithLabels(stage.Labels()...))
}
