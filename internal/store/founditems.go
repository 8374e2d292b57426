package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"campusfound/internal/model"
)

// FoundItemFilter narrows ListFoundItems results. Zero values mean no filter.
type FoundItemFilter struct {
	Status   string
	Category string
	Search   string // case-insensitive substring of name or description
}

// CreateFoundItem registers a found item with status available. The photo is
// required; the catalog depends on visual identification for claiming.
func CreateFoundItem(ctx context.Context, db *sql.DB, finderID int64, name, category, description, location string, foundAt time.Time, photo []byte, photoMime string) (*model.FoundItem, error) {
	if len(photo) == 0 {
		return nil, fmt.Errorf("found item photo is required")
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO found_items (finder_id, name, category, description, location, found_at, photo, photo_mime)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		finderID, name, category, description, location, foundAt, photo, photoMime,
	)
	if err != nil {
		return nil, fmt.Errorf("creating found item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting found item id: %w", err)
	}

	return GetFoundItem(ctx, db, id)
}

// GetFoundItem returns a found item by ID.
func GetFoundItem(ctx context.Context, db *sql.DB, id int64) (*model.FoundItem, error) {
	item := &model.FoundItem{}
	err := db.QueryRowContext(ctx,
		`SELECT f.id, f.finder_id, f.name, f.category, f.description, f.location,
		        f.found_at, f.photo_mime, f.status, f.created_at, u.name
		 FROM found_items f
		 JOIN users u ON u.id = f.finder_id
		 WHERE f.id = ?`, id,
	).Scan(&item.ID, &item.FinderID, &item.Name, &item.Category, &item.Description,
		&item.Location, &item.FoundAt, &item.PhotoMime, &item.Status, &item.CreatedAt,
		&item.FinderName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting found item: %w", err)
	}
	return item, nil
}

// ListFoundItems returns found items matching the filter, in creation order.
func ListFoundItems(ctx context.Context, db *sql.DB, filter FoundItemFilter) ([]model.FoundItem, error) {
	query := `SELECT f.id, f.finder_id, f.name, f.category, f.description, f.location,
	                 f.found_at, f.photo_mime, f.status, f.created_at, u.name
	          FROM found_items f
	          JOIN users u ON u.id = f.finder_id
	          WHERE 1=1`
	var args []any

	if filter.Status != "" {
		query += ` AND f.status = ?`
		args = append(args, filter.Status)
	}
	if filter.Category != "" {
		query += ` AND f.category = ?`
		args = append(args, filter.Category)
	}
	if filter.Search != "" {
		query += ` AND (f.name LIKE '%' || ? || '%' COLLATE NOCASE
		           OR f.description LIKE '%' || ? || '%' COLLATE NOCASE)`
		args = append(args, filter.Search, filter.Search)
	}

	query += ` ORDER BY f.id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing found items: %w", err)
	}
	defer rows.Close()

	var items []model.FoundItem
	for rows.Next() {
		var item model.FoundItem
		if err := rows.Scan(&item.ID, &item.FinderID, &item.Name, &item.Category, &item.Description,
			&item.Location, &item.FoundAt, &item.PhotoMime, &item.Status, &item.CreatedAt,
			&item.FinderName); err != nil {
			return nil, fmt.Errorf("scanning found item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetFoundItemPhoto returns a found item's photo data and MIME type.
func GetFoundItemPhoto(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var photo []byte
	var mime string
	err := db.QueryRowContext(ctx,
		`SELECT photo, photo_mime FROM found_items WHERE id = ?`, id,
	).Scan(&photo, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting found item photo: %w", err)
	}
	return photo, mime, nil
}
