package store

import (
	"context"
	"database/sql"
	"fmt"

	"campusfound/internal/model"
)

// Stats are the dashboard counters.
type Stats struct {
	OpenLostItems       int64 `json:"open_lost_items"`
	AvailableFoundItems int64 `json:"available_found_items"`
	PendingClaims       int64 `json:"pending_claims"`
}

// GetStats returns the dashboard counters in one query.
func GetStats(ctx context.Context, db *sql.DB) (*Stats, error) {
	s := &Stats{}
	err := db.QueryRowContext(ctx,
		`SELECT
		    (SELECT COUNT(*) FROM lost_items WHERE status = ?),
		    (SELECT COUNT(*) FROM found_items WHERE status = ?),
		    (SELECT COUNT(*) FROM claims WHERE status = ?)`,
		model.LostStatusOpen, model.FoundStatusAvailable, model.ClaimStatusPending,
	).Scan(&s.OpenLostItems, &s.AvailableFoundItems, &s.PendingClaims)
	if err != nil {
		return nil, fmt.Errorf("getting stats: %w", err)
	}
	return s, nil
}
