// Package match pairs open lost-item reports with the found-item catalog.
//
// Matching is event-driven: it runs when a lost report is filed and when a
// found item is registered, instead of on a polling interval. A full Sweep
// remains for startup catch-up and is idempotent, since a report's match list
// is only ever attached once.
package match

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"campusfound/internal/model"
	"campusfound/internal/store"
)

// Candidate reports whether a found item is a plausible match for a lost
// report: at least two of the three signals (name, category, location) must
// hold. Any single signal alone is insufficient.
func Candidate(lost model.LostItem, found model.FoundItem) bool {
	name := containsEitherWay(lost.Name, found.Name)
	category := lost.Category == found.Category
	location := containsEitherWay(lost.Location, found.Location)

	return (name && category) || (name && location) || (category && location)
}

// containsEitherWay is case-insensitive substring containment in either
// direction, so "Backpack" matches "Blue Backpack" and vice versa.
func containsEitherWay(a, b string) bool {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// MatchReport evaluates one lost report against the entire found catalog.
// If candidates exist and the report's match list is still empty, all
// candidate IDs are attached, the report is marked matched, and the reporter
// is notified. Returns whether a match was attached.
func MatchReport(ctx context.Context, db *sql.DB, report *model.LostItem) (bool, error) {
	if report.Status != model.LostStatusOpen || len(report.Matches) > 0 {
		return false, nil
	}

	foundItems, err := store.ListFoundItems(ctx, db, store.FoundItemFilter{})
	if err != nil {
		return false, fmt.Errorf("listing found items for matching: %w", err)
	}

	var candidates []int64
	for _, found := range foundItems {
		if Candidate(*report, found) {
			candidates = append(candidates, found.ID)
		}
	}
	if len(candidates) == 0 {
		return false, nil
	}

	attached, err := store.AttachMatches(ctx, db, report.ID, candidates)
	if err != nil {
		return false, fmt.Errorf("attaching matches: %w", err)
	}
	if !attached {
		return false, nil
	}

	log.Info().
		Int64("lost_item", report.ID).
		Ints64("candidates", candidates).
		Msg("lost report matched")

	message := fmt.Sprintf("Potential match found for your lost %s!", report.Name)
	if err := store.CreateNotification(ctx, db, report.ReporterID, message, model.SeveritySuccess); err != nil {
		// The match is already recorded; a lost notification is not fatal.
		log.Warn().Err(err).Int64("user", report.ReporterID).Msg("failed to notify reporter")
	}

	return true, nil
}

// Sweep runs matching over every open lost report. Safe to run repeatedly:
// reports with a populated match list are skipped.
func Sweep(ctx context.Context, db *sql.DB) (int, error) {
	reports, err := store.ListOpenLostItems(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("listing open lost items: %w", err)
	}

	matched := 0
	for i := range reports {
		ok, err := MatchReport(ctx, db, &reports[i])
		if err != nil {
			return matched, err
		}
		if ok {
			matched++
		}
	}
	return matched, nil
}

// OnLostItemReported runs matching for a newly filed report.
func OnLostItemReported(ctx context.Context, db *sql.DB, report *model.LostItem) error {
	_, err := MatchReport(ctx, db, report)
	return err
}

// OnFoundItemRegistered runs matching for every open report after a new item
// enters the catalog, since the arrival may complete a pairing.
func OnFoundItemRegistered(ctx context.Context, db *sql.DB) error {
	_, err := Sweep(ctx, db)
	return err
}
