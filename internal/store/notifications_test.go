package store

import (
	"context"
	"errors"
	"testing"

	"campusfound/internal/db"
	"campusfound/internal/model"
)

func TestNotificationsLifecycle(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, database, "user@example.com")

	if err := CreateNotification(ctx, database, user.ID, "first", model.SeverityInfo); err != nil {
		t.Fatalf("CreateNotification: %v", err)
	}
	if err := CreateNotification(ctx, database, user.ID, "second", model.SeveritySuccess); err != nil {
		t.Fatalf("CreateNotification: %v", err)
	}

	all, err := ListNotifications(ctx, database, user.ID, false)
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(all))
	}
	// Newest first.
	if all[0].Message != "second" {
		t.Errorf("expected newest first, got %q", all[0].Message)
	}

	if err := MarkNotificationRead(ctx, database, all[0].ID, user.ID); err != nil {
		t.Fatalf("MarkNotificationRead: %v", err)
	}

	unread, _ := ListNotifications(ctx, database, user.ID, true)
	if len(unread) != 1 || unread[0].Message != "first" {
		t.Errorf("expected only 'first' unread, got %+v", unread)
	}
}

func TestMarkNotificationReadScopedToOwner(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, database, "owner@example.com")
	other := createTestUser(t, database, "other@example.com")

	CreateNotification(ctx, database, owner.ID, "private", model.SeverityInfo)
	notifications, _ := ListNotifications(ctx, database, owner.ID, false)

	err := MarkNotificationRead(ctx, database, notifications[0].ID, other.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign notification, got %v", err)
	}
}
