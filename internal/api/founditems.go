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

// FoundItemsHandler handles found-item catalog endpoints.
type FoundItemsHandler struct {
	DB *sql.DB
}

// List handles GET /api/found-items with optional status, category, and q
// (substring search) filters.
func (h *FoundItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.FoundItemFilter{
		Status:   r.URL.Query().Get("status"),
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("q"),
	}

	items, err := store.ListFoundItems(r.Context(), h.DB, filter)
	if err != nil {
		log.Error().Err(err).Msg("listing found items")
		jsonError(w, http.StatusInternalServerError, "failed to list found items")
		return
	}
	if items == nil {
		items = []model.FoundItem{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/found-items. Multipart form; the photo is
// required since the catalog depends on visual identification for claiming.
// Matching re-runs afterward in case the arrival completes a pairing.
func (h *FoundItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid or oversized multipart form")
		return
	}

	submission, err := parseItemSubmission(r, "found_at")
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	photo, photoMime, err := formPhoto(r, "photo", true)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	claims := GetClaims(r.Context())
	item, err := store.CreateFoundItem(r.Context(), h.DB, claims.UserID,
		submission.Name, submission.Category, submission.Description, submission.Location,
		submission.OccurredAt, photo, photoMime)
	if err != nil {
		log.Error().Err(err).Msg("creating found item")
		jsonError(w, http.StatusInternalServerError, "failed to create found item")
		return
	}

	if err := match.OnFoundItemRegistered(r.Context(), h.DB); err != nil {
		log.Error().Err(err).Int64("found_item", item.ID).Msg("matching after found item registration")
	}

	log.Info().Int64("id", item.ID).Str("name", item.Name).Msg("found item registered")
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/found-items/{id}.
func (h *FoundItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid found item id")
		return
	}

	item, err := store.GetFoundItem(r.Context(), h.DB, id)
	if err != nil {
		log.Error().Err(err).Msg("getting found item")
		jsonError(w, http.StatusInternalServerError, "failed to get found item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "found item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Photo handles GET /api/found-items/{id}/photo.
func (h *FoundItemsHandler) Photo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid found item id")
		return
	}

	data, mime, err := store.GetFoundItemPhoto(r.Context(), h.DB, id)
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
