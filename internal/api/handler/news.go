package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nordliga/liga-data/internal/api/respond"
	"github.com/nordliga/liga-data/internal/store"
)

const (
	defaultNewsLimit = 20
	maxNewsLimit     = 100
)

func paginationParams(r *http.Request) (limit, offset int) {
	limit = defaultNewsLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > maxNewsLimit {
		limit = maxNewsLimit
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

// GetNewsList lists articles newest first.
// @Summary List news articles
// @Tags news
// @Produce json
// @Param limit query int false "Max articles to return (default 20, max 100)"
// @Param offset query int false "Articles to skip"
// @Success 200 {array} store.NewsRow
// @Router /api/v1/news [get]
func (h *Handler) GetNewsList(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)
	rows, err := h.store.NewsList(r.Context(), limit, offset)
	if err != nil {
		respond.WriteDomainError(w, h.logger, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, rows)
}

// SearchNews finds articles by title or content substring.
// @Summary Search news articles
// @Tags news
// @Produce json
// @Param q query string true "Search term"
// @Param limit query int false "Max articles to return (default 20, max 100)"
// @Success 200 {array} store.NewsRow
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/news/search [get]
func (h *Handler) SearchNews(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "query parameter q required")
		return
	}
	limit, _ := paginationParams(r)
	rows, err := h.store.NewsSearch(r.Context(), query, limit)
	if err != nil {
		respond.WriteDomainError(w, h.logger, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, rows)
}

// GetNewsItem returns one article with its full content.
// @Summary Get a news article
// @Tags news
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} store.NewsRow
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/news/{id} [get]
func (h *Handler) GetNewsItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "invalid news id")
		return
	}
	row, err := h.store.NewsByID(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, h.logger, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, row)
}

// GetMatchNews lists the articles linked to a match, best match first.
// @Summary News linked to a match
// @Tags news
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {array} store.NewsRow
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/matches/{id}/news [get]
func (h *Handler) GetMatchNews(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "invalid match id")
		return
	}
	rows, err := h.store.NewsForMatch(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, h.logger, err)
		return
	}
	if rows == nil {
		rows = []store.NewsRow{}
	}
	respond.WriteJSONObject(w, http.StatusOK, rows)
}
