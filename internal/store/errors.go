package store

import "errors"

// Sentinel errors returned by lifecycle operations. Handlers check these with
// errors.Is and map them to HTTP status codes.
var (
	// ErrNotFound means a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrNotClaimable means a claim was filed against a found item that is
	// not in the claimable pool.
	ErrNotClaimable = errors.New("item is not claimable")

	// ErrInvalidTransition means an adjudication decision is not permitted
	// from the claim's current status.
	ErrInvalidTransition = errors.New("invalid claim status transition")
)
