package store

import (
	"context"
	"testing"
	"time"

	"campusfound/internal/db"
	"campusfound/internal/model"
)

func TestCreateAndGetFoundItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	finder := createTestUser(t, database, "finder@example.com")
	item := createTestFoundItem(t, database, finder.ID, "Backpack", "Bags", "Gym")

	if item.Status != model.FoundStatusAvailable {
		t.Errorf("expected status available, got %q", item.Status)
	}

	got, err := GetFoundItem(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("GetFoundItem: %v", err)
	}
	if got.Name != "Backpack" || got.FinderName != "Test User" {
		t.Errorf("round-trip mismatch: %+v", got)
	}
}

func TestCreateFoundItemRequiresPhoto(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	finder := createTestUser(t, database, "finder@example.com")

	_, err := CreateFoundItem(ctx, database, finder.ID,
		"No Photo", "Misc", "desc", "Quad",
		time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC), nil, "")
	if err == nil {
		t.Error("expected error for found item without photo")
	}
}

func TestListFoundItemsFilters(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	finder := createTestUser(t, database, "finder@example.com")
	createTestFoundItem(t, database, finder.ID, "Blue Backpack", "Bags", "Library")
	createTestFoundItem(t, database, finder.ID, "Phone Charger", "Electronics", "Gym")
	laptop := createTestFoundItem(t, database, finder.ID, "Laptop", "Electronics", "Library")

	claimant := createTestUser(t, database, "claimant@example.com")
	FileClaim(ctx, database, laptop.ID, claimant.ID, "sticker on the lid", nil, "")

	all, err := ListFoundItems(ctx, database, FoundItemFilter{})
	if err != nil {
		t.Fatalf("ListFoundItems: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 items, got %d", len(all))
	}

	available, _ := ListFoundItems(ctx, database, FoundItemFilter{Status: model.FoundStatusAvailable})
	if len(available) != 2 {
		t.Errorf("expected 2 available items, got %d", len(available))
	}

	electronics, _ := ListFoundItems(ctx, database, FoundItemFilter{Category: "Electronics"})
	if len(electronics) != 2 {
		t.Errorf("expected 2 electronics, got %d", len(electronics))
	}

	search, _ := ListFoundItems(ctx, database, FoundItemFilter{Search: "backpack"})
	if len(search) != 1 || search[0].Name != "Blue Backpack" {
		t.Errorf("expected case-insensitive search to return Blue Backpack, got %+v", search)
	}

	combined, _ := ListFoundItems(ctx, database, FoundItemFilter{
		Status:   model.FoundStatusAvailable,
		Category: "Electronics",
	})
	if len(combined) != 1 || combined[0].Name != "Phone Charger" {
		t.Errorf("expected only the charger, got %+v", combined)
	}
}

func TestFoundItemPhotoRoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	finder := createTestUser(t, database, "finder@example.com")
	item := createTestFoundItem(t, database, finder.ID, "Photo Item", "Misc", "Quad")

	data, mime, err := GetFoundItemPhoto(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("GetFoundItemPhoto: %v", err)
	}
	if string(data) != string(testPhoto) || mime != "image/jpeg" {
		t.Errorf("unexpected photo: %q %q", data, mime)
	}
}
