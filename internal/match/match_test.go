package match

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"campusfound/internal/db"
	"campusfound/internal/model"
	"campusfound/internal/store"
)

func seedUsers(t *testing.T, database *sql.DB) (reporter, finder *model.User) {
	t.Helper()
	ctx := context.Background()
	reporter, err := store.CreateUser(ctx, database, "Reporter", "reporter@example.com", "hash", model.RoleUser)
	if err != nil {
		t.Fatalf("creating reporter: %v", err)
	}
	finder, err = store.CreateUser(ctx, database, "Finder", "finder@example.com", "hash", model.RoleUser)
	if err != nil {
		t.Fatalf("creating finder: %v", err)
	}
	return reporter, finder
}

func reportLost(t *testing.T, database *sql.DB, reporterID int64, name, category, location string) *model.LostItem {
	t.Helper()
	item, err := store.CreateLostItem(context.Background(), database, reporterID,
		name, category, "description", location,
		time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC), nil, "")
	if err != nil {
		t.Fatalf("creating lost item: %v", err)
	}
	return item
}

func registerFound(t *testing.T, database *sql.DB, finderID int64, name, category, location string) *model.FoundItem {
	t.Helper()
	item, err := store.CreateFoundItem(context.Background(), database, finderID,
		name, category, "description", location,
		time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), []byte("photo"), "image/jpeg")
	if err != nil {
		t.Fatalf("creating found item: %v", err)
	}
	return item
}

func TestCandidateTwoOfThree(t *testing.T) {
	lost := model.LostItem{Name: "Blue Backpack", Category: "Bags", Location: "Library"}

	tests := []struct {
		name  string
		found model.FoundItem
		want  bool
	}{
		{
			// name + category, location differs.
			name:  "name and category",
			found: model.FoundItem{Name: "Backpack", Category: "Bags", Location: "Gym"},
			want:  true,
		},
		{
			// name + location, category differs.
			name:  "name and location",
			found: model.FoundItem{Name: "backpack", Category: "Luggage", Location: "library annex"},
			want:  true,
		},
		{
			// category + location, name differs.
			name:  "category and location",
			found: model.FoundItem{Name: "Duffel", Category: "Bags", Location: "Library"},
			want:  true,
		},
		{
			name:  "category alone",
			found: model.FoundItem{Name: "Suitcase", Category: "Bags", Location: "Gym"},
			want:  false,
		},
		{
			name:  "name alone",
			found: model.FoundItem{Name: "Blue Backpack", Category: "Luggage", Location: "Gym"},
			want:  false,
		},
		{
			name:  "nothing",
			found: model.FoundItem{Name: "Umbrella", Category: "Accessories", Location: "Gym"},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Candidate(lost, tt.found); got != tt.want {
				t.Errorf("Candidate(%+v) = %v, want %v", tt.found, got, tt.want)
			}
		})
	}
}

func TestCandidateSingleSignalInsufficient(t *testing.T) {
	lost := model.LostItem{Name: "Phone", Category: "Electronics", Location: "Library"}
	found := model.FoundItem{Name: "Charger", Category: "Electronics", Location: "Gym"}

	if Candidate(lost, found) {
		t.Error("category alone must not be a candidate match")
	}
}

func TestMatchReportAttachesAndNotifies(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	reporter, finder := seedUsers(t, database)

	found := registerFound(t, database, finder.ID, "Backpack", "Bags", "Gym")
	lost := reportLost(t, database, reporter.ID, "Blue Backpack", "Bags", "Library")

	matched, err := MatchReport(ctx, database, lost)
	if err != nil {
		t.Fatalf("MatchReport: %v", err)
	}
	if !matched {
		t.Fatal("expected a match")
	}

	got, _ := store.GetLostItem(ctx, database, lost.ID)
	if got.Status != model.LostStatusMatched {
		t.Errorf("expected status matched, got %q", got.Status)
	}
	if len(got.Matches) != 1 || got.Matches[0] != found.ID {
		t.Errorf("expected matches [%d], got %v", found.ID, got.Matches)
	}

	notifications, _ := store.ListNotifications(ctx, database, reporter.ID, true)
	if len(notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications))
	}
	if notifications[0].Severity != model.SeveritySuccess {
		t.Errorf("expected success severity, got %q", notifications[0].Severity)
	}
}

func TestSweepIdempotent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	reporter, finder := seedUsers(t, database)

	registerFound(t, database, finder.ID, "Backpack", "Bags", "Gym")
	lost := reportLost(t, database, reporter.ID, "Blue Backpack", "Bags", "Library")

	matched, err := Sweep(ctx, database)
	if err != nil {
		t.Fatalf("first Sweep: %v", err)
	}
	if matched != 1 {
		t.Fatalf("expected 1 match on first sweep, got %d", matched)
	}

	first, _ := store.GetLostItem(ctx, database, lost.ID)

	// A second sweep must change nothing.
	matched, err = Sweep(ctx, database)
	if err != nil {
		t.Fatalf("second Sweep: %v", err)
	}
	if matched != 0 {
		t.Errorf("expected 0 matches on second sweep, got %d", matched)
	}

	second, _ := store.GetLostItem(ctx, database, lost.ID)
	if first.Status != second.Status || len(first.Matches) != len(second.Matches) {
		t.Errorf("sweep not idempotent: %+v vs %+v", first, second)
	}

	notifications, _ := store.ListNotifications(ctx, database, reporter.ID, false)
	if len(notifications) != 1 {
		t.Errorf("expected exactly 1 notification after two sweeps, got %d", len(notifications))
	}
}

func TestMatchListNotOverwrittenByLaterArrivals(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	reporter, finder := seedUsers(t, database)

	first := registerFound(t, database, finder.ID, "Backpack", "Bags", "Gym")
	lost := reportLost(t, database, reporter.ID, "Blue Backpack", "Bags", "Library")

	if err := OnLostItemReported(ctx, database, lost); err != nil {
		t.Fatalf("OnLostItemReported: %v", err)
	}

	// Another matching item arrives after the report was matched.
	registerFound(t, database, finder.ID, "Blue Backpack", "Bags", "Library")
	if err := OnFoundItemRegistered(ctx, database); err != nil {
		t.Fatalf("OnFoundItemRegistered: %v", err)
	}

	got, _ := store.GetLostItem(ctx, database, lost.ID)
	if len(got.Matches) != 1 || got.Matches[0] != first.ID {
		t.Errorf("match list changed after later arrival: %v", got.Matches)
	}
}

func TestOnFoundItemRegisteredMatchesWaitingReports(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	reporter, finder := seedUsers(t, database)

	// Report first; nothing to match against yet.
	lost := reportLost(t, database, reporter.ID, "Silver Watch", "Jewelry", "Pool")
	if err := OnLostItemReported(ctx, database, lost); err != nil {
		t.Fatalf("OnLostItemReported: %v", err)
	}
	got, _ := store.GetLostItem(ctx, database, lost.ID)
	if got.Status != model.LostStatusOpen {
		t.Fatalf("expected report to stay open, got %q", got.Status)
	}

	// The matching item arrives later.
	found := registerFound(t, database, finder.ID, "Watch", "Jewelry", "Gym")
	if err := OnFoundItemRegistered(ctx, database); err != nil {
		t.Fatalf("OnFoundItemRegistered: %v", err)
	}

	got, _ = store.GetLostItem(ctx, database, lost.ID)
	if got.Status != model.LostStatusMatched {
		t.Errorf("expected report matched after arrival, got %q", got.Status)
	}
	if len(got.Matches) != 1 || got.Matches[0] != found.ID {
		t.Errorf("expected matches [%d], got %v", found.ID, got.Matches)
	}
}

func TestMatchCollectsAllCandidates(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	reporter, finder := seedUsers(t, database)

	a := registerFound(t, database, finder.ID, "Backpack", "Bags", "Gym")
	b := registerFound(t, database, finder.ID, "Blue Backpack", "Bags", "Library")
	registerFound(t, database, finder.ID, "Umbrella", "Accessories", "Pool")

	lost := reportLost(t, database, reporter.ID, "Blue Backpack", "Bags", "Library")
	if _, err := MatchReport(ctx, database, lost); err != nil {
		t.Fatalf("MatchReport: %v", err)
	}

	got, _ := store.GetLostItem(ctx, database, lost.ID)
	if len(got.Matches) != 2 || got.Matches[0] != a.ID || got.Matches[1] != b.ID {
		t.Errorf("expected matches [%d %d], got %v", a.ID, b.ID, got.Matches)
	}
}
