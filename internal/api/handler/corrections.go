package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nordliga/liga-data/internal/api/respond"
)

// GetCorrections lists a league's point corrections and its teams.
// @Summary List point corrections
// @Tags corrections
// @Produce json
// @Param file path string true "League file name"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/leagues/{file}/corrections [get]
func (h *Handler) GetCorrections(w http.ResponseWriter, r *http.Request) {
	file, ok := leagueFile(w, r)
	if !ok {
		return
	}
	corrections, teams, err := h.store.Corrections(r.Context(), file)
	if err != nil {
		respond.WriteDomainError(w, h.logger, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"corrections": corrections,
		"teams":       teams,
	})
}

type correctionRequest struct {
	TeamID int64  `json:"team_id"`
	Points int    `json:"points"`
	Reason string `json:"reason"`
}

// SaveCorrection upserts the single correction for (league, team).
// @Summary Save a point correction
// @Tags corrections
// @Accept json
// @Produce json
// @Param file path string true "League file name"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/leagues/{file}/corrections [post]
func (h *Handler) SaveCorrection(w http.ResponseWriter, r *http.Request) {
	file, ok := leagueFile(w, r)
	if !ok {
		return
	}
	var req correctionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
		return
	}
	if req.TeamID <= 0 {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "team_id required")
		return
	}

	if err := h.store.UpsertCorrection(r.Context(), file, req.TeamID, req.Points, req.Reason); err != nil {
		respond.WriteDomainError(w, h.logger, err)
		return
	}
	h.cache.Invalidate("view:" + file)
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{"success": true})
}

// DeleteCorrection removes a team's correction.
// @Summary Delete a point correction
// @Tags corrections
// @Produce json
// @Param file path string true "League file name"
// @Param teamID path int true "Team ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/leagues/{file}/corrections/{teamID} [delete]
func (h *Handler) DeleteCorrection(w http.ResponseWriter, r *http.Request) {
	file, ok := leagueFile(w, r)
	if !ok {
		return
	}
	teamID, err := strconv.ParseInt(chi.URLParam(r, "teamID"), 10, 64)
	if err != nil || teamID <= 0 {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "invalid team id")
		return
	}

	if err := h.store.DeleteCorrection(r.Context(), file, teamID); err != nil {
		respond.WriteDomainError(w, h.logger, err)
		return
	}
	h.cache.Invalidate("view:" + file)
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{"success": true})
}
