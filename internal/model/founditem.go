package model

import "time"

// FoundItem is a record registered by a user who found something.
type FoundItem struct {
	ID          int64     `json:"id"`
	FinderID    int64     `json:"finder_id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	FoundAt     time.Time `json:"found_at"`
	PhotoMime   string    `json:"photo_mime,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`

	// Joined fields (not always populated).
	FinderName string `json:"finder_name,omitempty"`
}

// Found item availability statuses. Only available items can be claimed;
// filing a claim moves the item to claimed, adjudication moves it onward
// (released on approval, back to available on rejection) and pickup is final.
const (
	FoundStatusAvailable = "available"
	FoundStatusClaimed   = "claimed"
	FoundStatusReleased  = "released"
	FoundStatusPickedUp  = "picked_up"
)
