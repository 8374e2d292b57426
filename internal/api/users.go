package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"campusfound/internal/model"
	"campusfound/internal/store"
)

// UsersHandler handles user inspection endpoints (admin only).
type UsersHandler struct {
	DB *sql.DB
}

// List handles GET /api/users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := store.ListUsers(r.Context(), h.DB)
	if err != nil {
		log.Error().Err(err).Msg("listing users")
		jsonError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	if users == nil {
		users = []model.User{}
	}
	jsonResponse(w, http.StatusOK, users)
}

// Get handles GET /api/users/{id}.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := store.GetUser(r.Context(), h.DB, id)
	if err != nil {
		log.Error().Err(err).Msg("getting user")
		jsonError(w, http.StatusInternalServerError, "failed to get user")
		return
	}
	if user == nil {
		jsonError(w, http.StatusNotFound, "user not found")
		return
	}
	jsonResponse(w, http.StatusOK, user)
}
