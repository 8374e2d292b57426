package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"campusfound/internal/model"
	"campusfound/internal/store"
)

// NotificationsHandler handles the per-user notification feed.
type NotificationsHandler struct {
	DB *sql.DB
}

// List handles GET /api/notifications, optionally ?unread=true.
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	unreadOnly := r.URL.Query().Get("unread") == "true"

	notifications, err := store.ListNotifications(r.Context(), h.DB, claims.UserID, unreadOnly)
	if err != nil {
		log.Error().Err(err).Msg("listing notifications")
		jsonError(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}
	jsonResponse(w, http.StatusOK, notifications)
}

// MarkRead handles POST /api/notifications/{id}/read.
func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	claims := GetClaims(r.Context())
	err = store.MarkNotificationRead(r.Context(), h.DB, id, claims.UserID)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "notification not found")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to mark notification read")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "notification read"})
}
