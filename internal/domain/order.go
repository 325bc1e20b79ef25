package domain

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderOrdered   OrderStatus = "ordered"
	OrderReceived  OrderStatus = "received"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderOrdered, OrderReceived, OrderCancelled:
		return true
	}
	return false
}

// Closed orders can no longer be edited or moved.
func (s OrderStatus) Closed() bool { return s == OrderReceived || s == OrderCancelled }

// CanMoveTo encodes pending -> ordered -> received, with cancel from any open state.
func (s OrderStatus) CanMoveTo(next OrderStatus) bool {
	switch {
	case s == OrderPending && next == OrderOrdered:
		return true
	case s == OrderOrdered && next == OrderReceived:
		return true
	case !s.Closed() && next == OrderCancelled:
		return true
	}
	return false
}

type OrderLine struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit,omitempty"`
}

type Order struct {
	ID         int64       `json:"id"`
	HotelID    int64       `json:"hotel_id"`
	Supplier   string      `json:"supplier"`
	Reference  string      `json:"reference,omitempty"`
	Lines      []OrderLine `json:"lines"`
	Status     OrderStatus `json:"status"`
	ExpectedOn Date        `json:"expected_on"`
	ReceivedAt *time.Time  `json:"received_at,omitempty"`
	Notes      string      `json:"notes,omitempty"`
	CreatedBy  string      `json:"created_by,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type OrderFilter struct {
	HotelID int64
	Status  *OrderStatus
	Page
}
