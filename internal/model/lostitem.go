package model

import "time"

// LostItem is a report filed by a user who lost something.
type LostItem struct {
	ID          int64     `json:"id"`
	ReporterID  int64     `json:"reporter_id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	LostAt      time.Time `json:"lost_at"`
	PhotoMime   string    `json:"photo_mime,omitempty"`
	Status      string    `json:"status"`
	Matches     []int64   `json:"matches"`
	CreatedAt   time.Time `json:"created_at"`

	// Joined fields (not always populated).
	ReporterName string `json:"reporter_name,omitempty"`
}

// Lost item statuses. A report starts open, is set to matched exactly once
// by the match engine, and ends returned when the item comes back.
const (
	LostStatusOpen     = "open"
	LostStatusMatched  = "matched"
	LostStatusReturned = "returned"
)
