package infrastructure

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/samber/lo"

	"stageshow/domain"
	"stageshow/errors"
	"stageshow/observability"
	"stageshow/repositories"
)

// SessionCounter is the slice of the session store the API exposes in debug
// stats.
type SessionCounter interface {
	Len() int
}

// APIHandler serves the read-only HTTP surface next to the WebSocket
// endpoint: catalog queries, action history, question search and debug stats.
type APIHandler struct {
	log     *slog.Logger
	catalog domain.Catalog
	history repositories.IHistoryRepository
	search  repositories.ISearchRepository
	stats   *observability.StatsCollector
	store   SessionCounter
}

func NewAPIHandler(
	log *slog.Logger,
	catalog domain.Catalog,
	history repositories.IHistoryRepository,
	search repositories.ISearchRepository,
	stats *observability.StatsCollector,
	store SessionCounter,
) *APIHandler {
	return &APIHandler{
		log:     log,
		catalog: catalog,
		history: history,
		search:  search,
		stats:   stats,
		store:   store,
	}
}

// Router mounts every route of the server. publicDir, when set, is served at
// the root for the display and admin web clients.
func (h *APIHandler) Router(ws http.Handler, publicDir string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("GET /ws", ws)
	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.HandleFunc("GET /api/packs", h.handlePacks)
	mux.HandleFunc("GET /api/packs/{id}", h.handlePack)
	mux.HandleFunc("GET /api/search", h.handleSearch)
	mux.HandleFunc("GET /api/sessions/{id}/history", h.handleHistory)
	mux.HandleFunc("GET /api/debug/stats", h.handleStats)
	if publicDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(publicDir)))
	}
	return mux
}

func (h *APIHandler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *APIHandler) handlePacks(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.catalog.Summaries())
}

func (h *APIHandler) handlePack(w http.ResponseWriter, r *http.Request) {
	pack, ok := h.catalog.Get(r.PathValue("id"))
	if !ok {
		h.writeError(w, http.StatusNotFound, errors.ErrPackNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, pack)
}

func (h *APIHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		h.writeJSON(w, http.StatusOK, []repositories.SearchHit{})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	hits, err := h.search.Search(r.Context(), query, limit)
	if err != nil {
		h.log.Error("Question search failed", "query", query, "err", err)
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if hits == nil {
		hits = []repositories.SearchHit{}
	}
	h.writeJSON(w, http.StatusOK, hits)
}

// historyDTO flattens a stored entry for the review UI.
type historyDTO struct {
	ID     string        `json:"id"`
	Action domain.Action `json:"action"`
	At     domain.Millis `json:"at"`
}

func (h *APIHandler) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.history.GetActions(r.PathValue("id"), limit)
	if err != nil {
		h.log.Error("History read failed", "err", err)
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}

	h.writeJSON(w, http.StatusOK, lo.Map(entries, func(e repositories.HistoryEntry, _ int) historyDTO {
		return historyDTO{
			ID:     e.ID.String(),
			Action: e.Action,
			At:     domain.ToMillis(e.At),
		}
	}))
}

func (h *APIHandler) handleStats(w http.ResponseWriter, _ *http.Request) {
	type statsDTO struct {
		observability.ProcessStats
		Sessions int `json:"sessions"`
	}
	h.writeJSON(w, http.StatusOK, statsDTO{
		ProcessStats: h.stats.Collect(),
		Sessions:     h.store.Len(),
	})
}

func (h *APIHandler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Debug("Response write failed", "err", err)
	}
}

func (h *APIHandler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, map[string]string{"error": errors.Code(err)})
}
