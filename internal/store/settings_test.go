package store

import (
	"context"
	"testing"

	"campusfound/internal/db"
)

func TestEnsureJWTSecretStable(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	first, err := EnsureJWTSecret(ctx, database)
	if err != nil {
		t.Fatalf("EnsureJWTSecret: %v", err)
	}
	if first == "" {
		t.Fatal("expected non-empty secret")
	}

	second, err := EnsureJWTSecret(ctx, database)
	if err != nil {
		t.Fatalf("second EnsureJWTSecret: %v", err)
	}
	if first != second {
		t.Error("expected the persisted secret to be returned on subsequent calls")
	}
}
