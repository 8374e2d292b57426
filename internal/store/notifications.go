package store

import (
	"context"
	"database/sql"
	"fmt"

	"campusfound/internal/model"
)

// CreateNotification appends a user-visible message. Failures here should not
// abort the operation that triggered the notification.
func CreateNotification(ctx context.Context, db *sql.DB, userID int64, message, severity string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO notifications (user_id, message, severity) VALUES (?, ?, ?)`,
		userID, message, severity,
	)
	if err != nil {
		return fmt.Errorf("creating notification: %w", err)
	}
	return nil
}

// ListNotifications returns a user's notifications, newest first. With
// unreadOnly set, acknowledged notifications are skipped.
func ListNotifications(ctx context.Context, db *sql.DB, userID int64, unreadOnly bool) ([]model.Notification, error) {
	query := `SELECT id, user_id, message, severity, created_at, read_at
	          FROM notifications WHERE user_id = ?`
	if unreadOnly {
		query += ` AND read_at IS NULL`
	}
	query += ` ORDER BY id DESC`

	rows, err := db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Severity, &n.CreatedAt, &n.ReadAt); err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkNotificationRead acknowledges a notification. Scoped to the owning user
// so one user cannot acknowledge another's messages.
func MarkNotificationRead(ctx context.Context, db *sql.DB, id, userID int64) error {
	result, err := db.ExecContext(ctx,
		`UPDATE notifications SET read_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ? AND read_at IS NULL`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("marking notification read: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
