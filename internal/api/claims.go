package api

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"campusfound/internal/model"
	"campusfound/internal/store"
)

// ClaimsHandler handles claim submission and adjudication endpoints.
type ClaimsHandler struct {
	DB *sql.DB
}

type decisionRequest struct {
	Decision string `json:"decision"`
}

// Create handles POST /api/claims. Multipart form with found_item_id, proof
// text, and an optional proof photo.
func (h *ClaimsHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid or oversized multipart form")
		return
	}

	foundItemID, err := strconv.ParseInt(strings.TrimSpace(r.FormValue("found_item_id")), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "found_item_id required")
		return
	}

	proof := strings.TrimSpace(r.FormValue("proof"))
	if proof == "" {
		jsonError(w, http.StatusBadRequest, "proof description required")
		return
	}

	proofPhoto, proofPhotoMime, err := formPhoto(r, "proof_photo", false)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	userClaims := GetClaims(r.Context())
	claim, err := store.FileClaim(r.Context(), h.DB, foundItemID, userClaims.UserID, proof, proofPhoto, proofPhotoMime)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "found item not found")
		return
	}
	if errors.Is(err, store.ErrNotClaimable) {
		jsonError(w, http.StatusConflict, "item is no longer claimable")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("filing claim")
		jsonError(w, http.StatusInternalServerError, "failed to file claim")
		return
	}

	log.Info().Int64("claim", claim.ID).Int64("found_item", foundItemID).Msg("claim filed")
	jsonResponse(w, http.StatusCreated, claim)
}

// Mine handles GET /api/claims/mine.
func (h *ClaimsHandler) Mine(w http.ResponseWriter, r *http.Request) {
	userClaims := GetClaims(r.Context())
	claims, err := store.ListClaimsByClaimant(r.Context(), h.DB, userClaims.UserID)
	if err != nil {
		log.Error().Err(err).Msg("listing own claims")
		jsonError(w, http.StatusInternalServerError, "failed to list claims")
		return
	}
	if claims == nil {
		claims = []model.Claim{}
	}
	jsonResponse(w, http.StatusOK, claims)
}

// List handles GET /api/claims (admin), optionally filtered by ?status=.
func (h *ClaimsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, err := store.ListClaims(r.Context(), h.DB, r.URL.Query().Get("status"))
	if err != nil {
		log.Error().Err(err).Msg("listing claims")
		jsonError(w, http.StatusInternalServerError, "failed to list claims")
		return
	}
	if claims == nil {
		claims = []model.Claim{}
	}
	jsonResponse(w, http.StatusOK, claims)
}

// Decide handles POST /api/claims/{id}/decision (admin). The decision applies
// to the claim and its paired found item atomically; the claimant is notified
// of the outcome.
func (h *ClaimsHandler) Decide(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid claim id")
		return
	}

	var req decisionRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !model.ValidDecision(req.Decision) {
		jsonError(w, http.StatusBadRequest, "invalid decision")
		return
	}

	claim, err := store.AdjudicateClaim(r.Context(), h.DB, id, req.Decision)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "claim not found")
		return
	}
	if errors.Is(err, store.ErrInvalidTransition) {
		jsonError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("adjudicating claim")
		jsonError(w, http.StatusInternalServerError, "failed to adjudicate claim")
		return
	}

	message := claimDecisionMessage(claim)
	if err := store.CreateNotification(r.Context(), h.DB, claim.ClaimantID, message, decisionSeverity(req.Decision)); err != nil {
		log.Warn().Err(err).Int64("user", claim.ClaimantID).Msg("failed to notify claimant")
	}

	adminClaims := GetClaims(r.Context())
	log.Info().
		Int64("claim", claim.ID).
		Str("decision", req.Decision).
		Str("admin", adminClaims.Email).
		Msg("claim adjudicated")
	jsonResponse(w, http.StatusOK, claim)
}

// ProofPhoto handles GET /api/claims/{id}/photo.
func (h *ClaimsHandler) ProofPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid claim id")
		return
	}

	data, mime, err := store.GetClaimProofPhoto(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get proof photo")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no proof photo")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}

func claimDecisionMessage(claim *model.Claim) string {
	switch claim.Status {
	case model.ClaimStatusApproved:
		return fmt.Sprintf("Your claim for %s was approved. The item is ready for pickup.", claim.ItemName)
	case model.ClaimStatusRejected:
		return fmt.Sprintf("Your claim for %s was rejected.", claim.ItemName)
	case model.ClaimStatusForVerification:
		return fmt.Sprintf("More information is needed for your claim on %s.", claim.ItemName)
	case model.ClaimStatusPickedUp:
		return fmt.Sprintf("Pickup of %s confirmed. Claim closed.", claim.ItemName)
	}
	return fmt.Sprintf("Your claim for %s was updated.", claim.ItemName)
}

func decisionSeverity(decision string) string {
	switch decision {
	case model.ClaimStatusApproved, model.ClaimStatusPickedUp:
		return model.SeveritySuccess
	case model.ClaimStatusRejected:
		return model.SeverityWarning
	}
	return model.SeverityInfo
}
