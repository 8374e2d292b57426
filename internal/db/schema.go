package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. Statements are idempotent so Migrate
// can run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    name          TEXT NOT NULL,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'user')),
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS lost_items (
    id          INTEGER PRIMARY KEY,
    reporter_id INTEGER NOT NULL REFERENCES users(id),
    name        TEXT NOT NULL,
    category    TEXT NOT NULL,
    description TEXT NOT NULL,
    location    TEXT NOT NULL,
    lost_at     DATETIME NOT NULL,
    photo       BLOB,
    photo_mime  TEXT,
    status      TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'matched', 'returned')),
    matches     TEXT NOT NULL DEFAULT '[]',
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS found_items (
    id          INTEGER PRIMARY KEY,
    finder_id   INTEGER NOT NULL REFERENCES users(id),
    name        TEXT NOT NULL,
    category    TEXT NOT NULL,
    description TEXT NOT NULL,
    location    TEXT NOT NULL,
    found_at    DATETIME NOT NULL,
    photo       BLOB NOT NULL,
    photo_mime  TEXT NOT NULL,
    status      TEXT NOT NULL DEFAULT 'available'
                CHECK (status IN ('available', 'claimed', 'released', 'picked_up')),
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS claims (
    id               INTEGER PRIMARY KEY,
    found_item_id    INTEGER NOT NULL REFERENCES found_items(id),
    claimant_id      INTEGER NOT NULL REFERENCES users(id),
    proof            TEXT NOT NULL,
    proof_photo      BLOB,
    proof_photo_mime TEXT,
    status           TEXT NOT NULL DEFAULT 'pending'
                     CHECK (status IN ('pending', 'approved', 'rejected', 'for_verification', 'picked_up')),
    created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    decided_at       DATETIME
);

CREATE INDEX IF NOT EXISTS idx_claims_found_item ON claims(found_item_id);
CREATE INDEX IF NOT EXISTS idx_claims_status ON claims(status);

CREATE TABLE IF NOT EXISTS notifications (
    id         INTEGER PRIMARY KEY,
    user_id    INTEGER NOT NULL REFERENCES users(id),
    message    TEXT NOT NULL,
    severity   TEXT NOT NULL DEFAULT 'info' CHECK (severity IN ('info', 'success', 'warning')),
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    read_at    DATETIME
);

CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, read_at);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// Migrate creates all tables and indexes if they don't already exist.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
