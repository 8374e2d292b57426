package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
)

// EnsureJWTSecret returns the instance's JWT signing secret, generating and
// persisting one on first run so tokens survive restarts. INSERT OR IGNORE
// followed by a re-SELECT avoids a TOCTOU race on concurrent startup.
func EnsureJWTSecret(ctx context.Context, db *sql.DB) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating jwt secret: %w", err)
	}
	candidate := hex.EncodeToString(buf)

	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings (key, value) VALUES ('jwt_secret', ?)`,
		candidate,
	)
	if err != nil {
		return "", fmt.Errorf("storing jwt secret: %w", err)
	}

	var secret string
	err = db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = 'jwt_secret'`,
	).Scan(&secret)
	if err != nil {
		return "", fmt.Errorf("querying jwt secret: %w", err)
	}

	return secret, nil
}
