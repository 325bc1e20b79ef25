package domain

import (
	"context"
	"time"
)

// Repositories. Every method taking a hotelID treats rows of other hotels as missing.

type HotelRepository interface {
	CreateHotel(ctx context.Context, h *Hotel) error
	GetHotel(ctx context.Context, id int64) (Hotel, error)
	ListHotels(ctx context.Context) ([]Hotel, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, o *Order) error
	GetOrder(ctx context.Context, hotelID, id int64) (Order, error)
	ListOrders(ctx context.Context, f OrderFilter) ([]Order, error)
	CountOrders(ctx context.Context, hotelID int64, status OrderStatus) (int, error)
	UpdateOrder(ctx context.Context, o Order) error
	DeleteOrder(ctx context.Context, hotelID, id int64) error
}

type LostItemRepository interface {
	CreateLostItem(ctx context.Context, it *LostItem) error
	GetLostItem(ctx context.Context, hotelID, id int64) (LostItem, error)
	ListLostItems(ctx context.Context, f LostItemFilter) ([]LostItem, error)
	CountLostItems(ctx context.Context, hotelID int64, status LostItemStatus) (int, error)
	UpdateLostItem(ctx context.Context, it LostItem) error
	DeleteLostItem(ctx context.Context, hotelID, id int64) error
}

type LoyaltyRepository interface {
	CreateCard(ctx context.Context, c *LoyaltyCard) error
	GetCard(ctx context.Context, hotelID, id int64) (LoyaltyCard, error)
	ListCards(ctx context.Context, hotelID int64, q string, p Page) ([]LoyaltyCard, error)
	UpdateCard(ctx context.Context, c LoyaltyCard) error
	DeleteCard(ctx context.Context, hotelID, id int64) error
	// AddPoints changes the balance and records the transaction atomically.
	// A balance that would drop below zero is rejected with a ValidationError.
	AddPoints(ctx context.Context, hotelID, cardID int64, delta int, reason string) (LoyaltyCard, LoyaltyTransaction, error)
	ListTransactions(ctx context.Context, hotelID, cardID int64) ([]LoyaltyTransaction, error)
}

type ParkingRepository interface {
	CreateSpot(ctx context.Context, s *ParkingSpot) error
	GetSpot(ctx context.Context, hotelID, id int64) (ParkingSpot, error)
	ListSpots(ctx context.Context, hotelID int64) ([]ParkingSpot, error)
	DeleteSpot(ctx context.Context, hotelID, id int64) error

	CreateReservation(ctx context.Context, r *ParkingReservation) error
	GetReservation(ctx context.Context, hotelID, id int64) (ParkingReservation, error)
	ListReservations(ctx context.Context, f ParkingFilter) ([]ParkingReservation, error)
	UpdateReservation(ctx context.Context, r ParkingReservation) error
	DeleteReservation(ctx context.Context, hotelID, id int64) error
}

type LeadRepository interface {
	CreateLead(ctx context.Context, l *Lead) error
	GetLead(ctx context.Context, hotelID, id int64) (Lead, error)
	ListLeads(ctx context.Context, f LeadFilter) ([]Lead, error)
	// StageTotals aggregates every lead of the hotel by stage. Stages without
	// leads may be missing.
	StageTotals(ctx context.Context, hotelID int64) ([]StageSummary, error)
	UpdateLead(ctx context.Context, l Lead) error
	DeleteLead(ctx context.Context, hotelID, id int64) error
	AddActivity(ctx context.Context, a *LeadActivity) error
	ListActivities(ctx context.Context, hotelID, leadID int64) ([]LeadActivity, error)
}

type DocumentRepository interface {
	CreateDocument(ctx context.Context, d *Document) error
	GetDocument(ctx context.Context, hotelID int64, slug string) (Document, error)
	ListDocuments(ctx context.Context, f DocumentFilter) ([]Document, error)
	// SlugsWithPrefix returns existing slugs equal to base or starting with base + "-".
	SlugsWithPrefix(ctx context.Context, hotelID int64, base string) ([]string, error)
	// UpdateDocument stores prev as a revision and overwrites the document.
	UpdateDocument(ctx context.Context, d Document, prev Revision) error
	ListRevisions(ctx context.Context, hotelID, documentID int64) ([]Revision, error)
	DeleteDocument(ctx context.Context, hotelID, id int64) error
}

type PlanningRepository interface {
	CreateEmployee(ctx context.Context, e *Employee) error
	GetEmployee(ctx context.Context, hotelID, id int64) (Employee, error)
	ListEmployees(ctx context.Context, hotelID int64, includeInactive bool) ([]Employee, error)
	UpdateEmployee(ctx context.Context, e Employee) error

	CreateShift(ctx context.Context, s *Shift) error
	GetShift(ctx context.Context, hotelID, id int64) (Shift, error)
	ListShifts(ctx context.Context, f ShiftFilter) ([]Shift, error)
	UpdateShift(ctx context.Context, s Shift) error
	DeleteShift(ctx context.Context, hotelID, id int64) error
	ApplyShifts(ctx context.Context, hotelID int64, b ShiftBatch) error

	CreateLeave(ctx context.Context, l *LeaveRequest) error
	GetLeave(ctx context.Context, hotelID, id int64) (LeaveRequest, error)
	ListLeave(ctx context.Context, f LeaveFilter) ([]LeaveRequest, error)
	UpdateLeave(ctx context.Context, l LeaveRequest) error
	DeleteLeave(ctx context.Context, hotelID, id int64) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Event is an outbound notification about a business change.
type Event struct {
	ID      string    `json:"id"`
	Kind    string    `json:"kind"`
	HotelID int64     `json:"hotel_id"`
	At      time.Time `json:"at"`
	Data    any       `json:"data,omitempty"`
}

const (
	EventPlanningPublished = "planning.published"
	EventLeaveDecided      = "leave.decided"
	EventParkingReserved   = "parking.reserved"
	EventOrderReceived     = "order.received"
)

type Notifier interface {
	Notify(ctx context.Context, e Event) error
}

const (
	DefaultPageSize = 100
	MaxPageSize     = 500
)

// Page selects a window of a list. A zero Limit means DefaultPageSize.
type Page struct {
	Limit  int
	Offset int
}

// Normalized clamps the page to valid bounds.
func (p Page) Normalized() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
