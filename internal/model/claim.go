package model

import "time"

// Claim is a user's request to get a found item back, with proof of ownership.
// It references the found item by ID; handlers resolve the item at read time.
type Claim struct {
	ID             int64      `json:"id"`
	FoundItemID    int64      `json:"found_item_id"`
	ClaimantID     int64      `json:"claimant_id"`
	Proof          string     `json:"proof"`
	ProofPhotoMime string     `json:"proof_photo_mime,omitempty"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	DecidedAt      *time.Time `json:"decided_at,omitempty"`

	// Joined fields (not always populated).
	ItemName     string `json:"item_name,omitempty"`
	ClaimantName string `json:"claimant_name,omitempty"`
}

// Claim adjudication statuses.
const (
	ClaimStatusPending         = "pending"
	ClaimStatusApproved        = "approved"
	ClaimStatusRejected        = "rejected"
	ClaimStatusForVerification = "for_verification"
	ClaimStatusPickedUp        = "picked_up"
)

// ValidDecision reports whether status is an adjudication decision an admin
// may issue (pending is the initial state, never a decision).
func ValidDecision(status string) bool {
	switch status {
	case ClaimStatusApproved, ClaimStatusRejected, ClaimStatusForVerification, ClaimStatusPickedUp:
		return true
	}
	return false
}
