package api

import (
	"database/sql"
	"net/http"

	"github.com/rs/zerolog/log"

	"campusfound/internal/store"
)

// StatsHandler serves the dashboard counters.
type StatsHandler struct {
	DB *sql.DB
}

// Get handles GET /api/stats.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := store.GetStats(r.Context(), h.DB)
	if err != nil {
		log.Error().Err(err).Msg("getting stats")
		jsonError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}
	jsonResponse(w, http.StatusOK, stats)
}
