package domain

import "time"

type ParkingSpot struct {
	ID      int64  `json:"id"`
	HotelID int64  `json:"hotel_id"`
	Label   string `json:"label"`
	Notes   string `json:"notes,omitempty"`
}

type ParkingReservation struct {
	ID        int64     `json:"id"`
	HotelID   int64     `json:"hotel_id"`
	SpotID    int64     `json:"spot_id"`
	Code      string    `json:"code"`
	GuestName string    `json:"guest_name"`
	Plate     string    `json:"plate,omitempty"`
	Room      string    `json:"room,omitempty"`
	StartDate Date      `json:"start_date"`
	EndDate   Date      `json:"end_date"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r ParkingReservation) Range() DateRange {
	return DateRange{Start: r.StartDate, End: r.EndDate}
}

// ParkingFilter selects reservations whose range intersects [From, To].
// Zero dates leave that side open.
type ParkingFilter struct {
	HotelID int64
	SpotID  *int64
	From    Date
	To      Date
}
