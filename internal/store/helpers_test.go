package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"campusfound/internal/model"
)

var testPhoto = []byte("fake jpeg bytes")

func createTestUser(t *testing.T, db *sql.DB, email string) *model.User {
	t.Helper()
	user, err := CreateUser(context.Background(), db, "Test User", email, "hash", model.RoleUser)
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", email, err)
	}
	return user
}

func createTestFoundItem(t *testing.T, db *sql.DB, finderID int64, name, category, location string) *model.FoundItem {
	t.Helper()
	item, err := CreateFoundItem(context.Background(), db, finderID,
		name, category, "found near the entrance", location,
		time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC), testPhoto, "image/jpeg")
	if err != nil {
		t.Fatalf("CreateFoundItem(%s): %v", name, err)
	}
	return item
}

func createTestLostItem(t *testing.T, db *sql.DB, reporterID int64, name, category, location string) *model.LostItem {
	t.Helper()
	item, err := CreateLostItem(context.Background(), db, reporterID,
		name, category, "last seen before lunch", location,
		time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC), nil, "")
	if err != nil {
		t.Fatalf("CreateLostItem(%s): %v", name, err)
	}
	return item
}
