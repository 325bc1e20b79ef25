package domain

import "time"

type LostItemStatus string

const (
	LostStored   LostItemStatus = "stored"
	LostClaimed  LostItemStatus = "claimed"
	LostDisposed LostItemStatus = "disposed"
)

func (s LostItemStatus) Valid() bool {
	return s == LostStored || s == LostClaimed || s == LostDisposed
}

type LostItem struct {
	ID          int64          `json:"id"`
	HotelID     int64          `json:"hotel_id"`
	Description string         `json:"description"`
	Location    string         `json:"location,omitempty"`
	Room        string         `json:"room,omitempty"`
	FoundOn     Date           `json:"found_on"`
	FoundBy     string         `json:"found_by,omitempty"`
	Status      LostItemStatus `json:"status"`
	ClaimedBy   string         `json:"claimed_by,omitempty"`
	ClaimedAt   *time.Time     `json:"claimed_at,omitempty"`
	Notes       string         `json:"notes,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type LostItemFilter struct {
	HotelID int64
	Status  *LostItemStatus
	Q       string
	Page
}
