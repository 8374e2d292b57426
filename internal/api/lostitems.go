package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"campusfound/internal/match"
	"campusfound/internal/model"
	"campusfound/internal/store"
)

// LostItemsHandler handles lost-item report endpoints.
type LostItemsHandler struct {
	DB *sql.DB
}

// List handles GET /api/lost-items.
func (h *LostItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	items, err := store.ListLostItems(r.Context(), h.DB, status)
	if err != nil {
		log.Error().Err(err).Msg("listing lost items")
		jsonError(w, http.StatusInternalServerError, "failed to list lost items")
		return
	}
	if items == nil {
		items = []model.LostItem{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Mine handles GET /api/lost-items/mine.
func (h *LostItemsHandler) Mine(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	items, err := store.ListLostItemsByReporter(r.Context(), h.DB, claims.UserID)
	if err != nil {
		log.Error().Err(err).Msg("listing own lost items")
		jsonError(w, http.StatusInternalServerError, "failed to list lost items")
		return
	}
	if items == nil {
		items = []model.LostItem{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/lost-items. Multipart form with the descriptive
// fields and an optional photo. Matching runs immediately after creation.
func (h *LostItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid or oversized multipart form")
		return
	}

	submission, err := parseItemSubmission(r, "lost_at")
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	photo, photoMime, err := formPhoto(r, "photo", false)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	claims := GetClaims(r.Context())
	item, err := store.CreateLostItem(r.Context(), h.DB, claims.UserID,
		submission.Name, submission.Category, submission.Description, submission.Location,
		submission.OccurredAt, photo, photoMime)
	if err != nil {
		log.Error().Err(err).Msg("creating lost item")
		jsonError(w, http.StatusInternalServerError, "failed to create lost item")
		return
	}

	if err := match.OnLostItemReported(r.Context(), h.DB, item); err != nil {
		log.Error().Err(err).Int64("lost_item", item.ID).Msg("matching new lost report")
	}

	// Re-read so the response reflects an immediate match.
	item, err = store.GetLostItem(r.Context(), h.DB, item.ID)
	if err != nil {
		log.Error().Err(err).Msg("re-reading lost item")
		jsonError(w, http.StatusInternalServerError, "failed to create lost item")
		return
	}

	log.Info().Int64("id", item.ID).Str("name", item.Name).Msg("lost item reported")
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/lost-items/{id}.
func (h *LostItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid lost item id")
		return
	}

	item, err := store.GetLostItem(r.Context(), h.DB, id)
	if err != nil {
		log.Error().Err(err).Msg("getting lost item")
		jsonError(w, http.StatusInternalServerError, "failed to get lost item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "lost item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Photo handles GET /api/lost-items/{id}/photo.
func (h *LostItemsHandler) Photo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid lost item id")
		return
	}

	data, mime, err := store.GetLostItemPhoto(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get photo")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no photo")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
