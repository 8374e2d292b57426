package model

import "time"

// Notification is a user-visible message appended by the match engine or by
// claim adjudication. Users list and acknowledge their own notifications.
type Notification struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Message   string     `json:"message"`
	Severity  string     `json:"severity"`
	CreatedAt time.Time  `json:"created_at"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
}

// Notification severities.
const (
	SeverityInfo    = "info"
	SeveritySuccess = "success"
	SeverityWarning = "warning"
)
