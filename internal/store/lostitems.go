package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"campusfound/internal/model"
)

// CreateLostItem files a new lost-item report with status open and an empty
// match list. The photo is optional.
func CreateLostItem(ctx context.Context, db *sql.DB, reporterID int64, name, category, description, location string, lostAt time.Time, photo []byte, photoMime string) (*model.LostItem, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO lost_items (reporter_id, name, category, description, location, lost_at, photo, photo_mime)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		reporterID, name, category, description, location, lostAt, photo, nullString(photoMime),
	)
	if err != nil {
		return nil, fmt.Errorf("creating lost item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting lost item id: %w", err)
	}

	return GetLostItem(ctx, db, id)
}

// GetLostItem returns a lost-item report by ID.
func GetLostItem(ctx context.Context, db *sql.DB, id int64) (*model.LostItem, error) {
	row := db.QueryRowContext(ctx,
		`SELECT l.id, l.reporter_id, l.name, l.category, l.description, l.location,
		        l.lost_at, l.photo_mime, l.status, l.matches, l.created_at, u.name
		 FROM lost_items l
		 JOIN users u ON u.id = l.reporter_id
		 WHERE l.id = ?`, id,
	)
	item, err := scanLostItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting lost item: %w", err)
	}
	return item, nil
}

// ListLostItems returns all lost-item reports, optionally filtered by status.
func ListLostItems(ctx context.Context, db *sql.DB, status string) ([]model.LostItem, error) {
	query := `SELECT l.id, l.reporter_id, l.name, l.category, l.description, l.location,
	                 l.lost_at, l.photo_mime, l.status, l.matches, l.created_at, u.name
	          FROM lost_items l
	          JOIN users u ON u.id = l.reporter_id`
	var args []any
	if status != "" {
		query += ` WHERE l.status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY l.id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing lost items: %w", err)
	}
	defer rows.Close()

	return scanLostItems(rows)
}

// ListLostItemsByReporter returns all reports filed by a user.
func ListLostItemsByReporter(ctx context.Context, db *sql.DB, reporterID int64) ([]model.LostItem, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT l.id, l.reporter_id, l.name, l.category, l.description, l.location,
		        l.lost_at, l.photo_mime, l.status, l.matches, l.created_at, u.name
		 FROM lost_items l
		 JOIN users u ON u.id = l.reporter_id
		 WHERE l.reporter_id = ?
		 ORDER BY l.id`, reporterID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing lost items by reporter: %w", err)
	}
	defer rows.Close()

	return scanLostItems(rows)
}

// ListOpenLostItems returns reports the match engine still needs to consider,
// i.e. everything not yet matched or returned.
func ListOpenLostItems(ctx context.Context, db *sql.DB) ([]model.LostItem, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT l.id, l.reporter_id, l.name, l.category, l.description, l.location,
		        l.lost_at, l.photo_mime, l.status, l.matches, l.created_at, u.name
		 FROM lost_items l
		 JOIN users u ON u.id = l.reporter_id
		 WHERE l.status NOT IN (?, ?)
		 ORDER BY l.id`,
		model.LostStatusMatched, model.LostStatusReturned,
	)
	if err != nil {
		return nil, fmt.Errorf("listing open lost items: %w", err)
	}
	defer rows.Close()

	return scanLostItems(rows)
}

// AttachMatches records candidate found-item IDs on a lost report and marks it
// matched. The guard clause makes attachment first-match-only: a report whose
// match list is already populated is left untouched. Returns whether the
// report was updated.
func AttachMatches(ctx context.Context, db *sql.DB, id int64, matches []int64) (bool, error) {
	if len(matches) == 0 {
		return false, nil
	}

	encoded, err := json.Marshal(matches)
	if err != nil {
		return false, fmt.Errorf("encoding matches: %w", err)
	}

	result, err := db.ExecContext(ctx,
		`UPDATE lost_items SET matches = ?, status = ?
		 WHERE id = ? AND matches = '[]' AND status = ?`,
		string(encoded), model.LostStatusMatched, id, model.LostStatusOpen,
	)
	if err != nil {
		return false, fmt.Errorf("attaching matches: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking match attachment: %w", err)
	}
	return n > 0, nil
}

// MarkLostItemReturned closes a matched report once the item is back with its
// owner.
func MarkLostItemReturned(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx,
		`UPDATE lost_items SET status = ? WHERE id = ?`,
		model.LostStatusReturned, id,
	)
	if err != nil {
		return fmt.Errorf("marking lost item returned: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetLostItemPhoto returns a report's photo data and MIME type.
func GetLostItemPhoto(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var photo []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT photo, photo_mime FROM lost_items WHERE id = ?`, id,
	).Scan(&photo, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting lost item photo: %w", err)
	}
	return photo, mime.String, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLostItem(row rowScanner) (*model.LostItem, error) {
	item := &model.LostItem{}
	var photoMime sql.NullString
	var matches string
	err := row.Scan(&item.ID, &item.ReporterID, &item.Name, &item.Category, &item.Description,
		&item.Location, &item.LostAt, &photoMime, &item.Status, &matches, &item.CreatedAt,
		&item.ReporterName)
	if err != nil {
		return nil, err
	}
	item.PhotoMime = photoMime.String
	if err := json.Unmarshal([]byte(matches), &item.Matches); err != nil {
		return nil, fmt.Errorf("decoding matches: %w", err)
	}
	if item.Matches == nil {
		item.Matches = []int64{}
	}
	return item, nil
}

func scanLostItems(rows *sql.Rows) ([]model.LostItem, error) {
	var items []model.LostItem
	for rows.Next() {
		item, err := scanLostItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning lost item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
