package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nordliga/liga-data/internal/api/respond"
	"github.com/nordliga/liga-data/internal/cache"
	"github.com/nordliga/liga-data/internal/lmo"
	"github.com/nordliga/liga-data/internal/store"
)

// leagueFile extracts and validates the {file} parameter. An invalid name
// is rejected before anything touches storage — this is the path-traversal
// guard for the whole league surface.
func leagueFile(w http.ResponseWriter, r *http.Request) (string, bool) {
	file := chi.URLParam(r, "file")
	if !lmo.ValidFileName(file) {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "invalid league file name")
		return "", false
	}
	return file, true
}

// ListLeagues lists all imported leagues.
// @Summary List leagues
// @Tags leagues
// @Produce json
// @Success 200 {array} store.LeagueRef
// @Router /api/v1/leagues [get]
func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	refs, err := h.store.Leagues(r.Context())
	if err != nil {
		respond.WriteDomainError(w, h.logger, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, refs)
}

// GetLeagueView serves the full published league view: options, teams,
// matches with news annotations, and the freshly computed table.
// @Summary Full league view
// @Tags leagues
// @Produce json
// @Param file path string true "League file name, e.g. oberliga2425.l98"
// @Success 200 {object} store.View
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/leagues/{file} [get]
func (h *Handler) GetLeagueView(w http.ResponseWriter, r *http.Request) {
	file, ok := leagueFile(w, r)
	if !ok {
		return
	}

	key := "view:" + file
	if data, etag, hit := h.cache.Get(key); hit {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, h.cfg.ViewCacheTTL, true)
		return
	}

	view, err := h.store.FullView(r.Context(), file)
	if err != nil {
		respond.WriteDomainError(w, h.logger, err)
		return
	}
	data, err := json.Marshal(view)
	if err != nil {
		respond.WriteDomainError(w, h.logger, err)
		return
	}
	etag := h.cache.Set(key, data, h.cfg.ViewCacheTTL)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, h.cfg.ViewCacheTTL, false)
}

// GetHeadToHead compares two teams across all their meetings.
// @Summary Head-to-head statistics
// @Tags leagues
// @Produce json
// @Param file path string true "League file name"
// @Param team1 query int true "First team external ID"
// @Param team2 query int true "Second team external ID"
// @Success 200 {object} store.HeadToHead
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/leagues/{file}/head-to-head [get]
func (h *Handler) GetHeadToHead(w http.ResponseWriter, r *http.Request) {
	file, ok := leagueFile(w, r)
	if !ok {
		return
	}
	team1, err1 := strconv.Atoi(r.URL.Query().Get("team1"))
	team2, err2 := strconv.Atoi(r.URL.Query().Get("team2"))
	if err1 != nil || err2 != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "team1 and team2 query parameters required")
		return
	}

	h2h, err := h.store.HeadToHead(r.Context(), file, team1, team2)
	if err != nil {
		respond.WriteDomainError(w, h.logger, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, h2h)
}

type matchdayRequest struct {
	Matches []store.MatchUpdate `json:"matches"`
}

// SaveMatchday updates one round's results and invalidates the cached view.
// @Summary Save matchday results
// @Tags leagues
// @Accept json
// @Produce json
// @Param file path string true "League file name"
// @Param round path int true "Round number"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/leagues/{file}/rounds/{round} [put]
func (h *Handler) SaveMatchday(w http.ResponseWriter, r *http.Request) {
	file, ok := leagueFile(w, r)
	if !ok {
		return
	}
	round, err := strconv.Atoi(chi.URLParam(r, "round"))
	if err != nil || round < 1 {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "round must be a positive number")
		return
	}
	var req matchdayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
		return
	}

	if err := h.store.SaveMatchday(r.Context(), file, round, req.Matches); err != nil {
		respond.WriteDomainError(w, h.logger, err)
		return
	}
	h.cache.Invalidate("view:" + file)
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{"success": true})
}
