package app

import (
	"context"
	"errors"
	"strings"

	"hotel_ops/internal/domain"
)

type SpotInput struct {
	Label string `json:"label"`
	Notes string `json:"notes"`
}

type ReservationInput struct {
	SpotID    int64       `json:"spot_id"`
	GuestName string      `json:"guest_name"`
	Plate     string      `json:"plate"`
	Room      string      `json:"room"`
	StartDate domain.Date `json:"start_date"`
	EndDate   domain.Date `json:"end_date"`
	Notes     string      `json:"notes"`
}

func (in ReservationInput) validate() error {
	if in.SpotID <= 0 {
		return domain.Invalid("spot_id", "is required")
	}
	if err := required("guest_name", in.GuestName); err != nil {
		return err
	}
	return domain.DateRange{Start: in.StartDate, End: in.EndDate}.Validate("dates")
}

type ParkingService struct {
	repo domain.ParkingRepository
	ev   *Events
}

func NewParkingService(r domain.ParkingRepository, ev *Events) *ParkingService {
	return &ParkingService{repo: r, ev: ev}
}

func (s *ParkingService) CreateSpot(ctx context.Context, hotelID int64, in SpotInput) (domain.ParkingSpot, error) {
	if err := required("label", in.Label); err != nil {
		return domain.ParkingSpot{}, err
	}
	sp := domain.ParkingSpot{HotelID: hotelID, Label: strings.TrimSpace(in.Label), Notes: in.Notes}
	if err := s.repo.CreateSpot(ctx, &sp); err != nil {
		return domain.ParkingSpot{}, err
	}
	return sp, nil
}

func (s *ParkingService) ListSpots(ctx context.Context, hotelID int64) ([]domain.ParkingSpot, error) {
	return s.repo.ListSpots(ctx, hotelID)
}

// DeleteSpot refuses to drop a spot that still has current or future bookings.
// "Today" is the hotel's calendar day.
func (s *ParkingService) DeleteSpot(ctx context.Context, h domain.Hotel, id int64) error {
	if _, err := s.repo.GetSpot(ctx, h.ID, id); err != nil {
		return err
	}
	upcoming, err := s.repo.ListReservations(ctx, domain.ParkingFilter{HotelID: h.ID, SpotID: &id, From: h.Today(s.ev.Now())})
	if err != nil {
		return err
	}
	if len(upcoming) > 0 {
		return domain.Conflict("spot has upcoming reservations", len(upcoming))
	}
	return s.repo.DeleteSpot(ctx, h.ID, id)
}

func (s *ParkingService) CreateReservation(ctx context.Context, hotelID int64, in ReservationInput) (domain.ParkingReservation, error) {
	if err := in.validate(); err != nil {
		return domain.ParkingReservation{}, err
	}
	r := domain.ParkingReservation{HotelID: hotelID, Code: shortCode("P-", 6)}
	applyReservation(&r, in)
	if err := s.checkAvailable(ctx, r); err != nil {
		return domain.ParkingReservation{}, err
	}
	if err := s.repo.CreateReservation(ctx, &r); err != nil {
		return domain.ParkingReservation{}, err
	}
	s.ev.Emit(ctx, hotelID, domain.EventParkingReserved, r)
	return r, nil
}

func (s *ParkingService) UpdateReservation(ctx context.Context, hotelID, id int64, in ReservationInput) (domain.ParkingReservation, error) {
	if err := in.validate(); err != nil {
		return domain.ParkingReservation{}, err
	}
	r, err := s.repo.GetReservation(ctx, hotelID, id)
	if err != nil {
		return domain.ParkingReservation{}, err
	}
	applyReservation(&r, in)
	if err := s.checkAvailable(ctx, r); err != nil {
		return domain.ParkingReservation{}, err
	}
	if err := s.repo.UpdateReservation(ctx, r); err != nil {
		return domain.ParkingReservation{}, err
	}
	s.ev.Changed(ctx, hotelID)
	return s.repo.GetReservation(ctx, hotelID, id)
}

func (s *ParkingService) GetReservation(ctx context.Context, hotelID, id int64) (domain.ParkingReservation, error) {
	return s.repo.GetReservation(ctx, hotelID, id)
}

// ListReservations returns bookings intersecting [from, to]; zero dates are open ends.
func (s *ParkingService) ListReservations(ctx context.Context, hotelID int64, from, to domain.Date) ([]domain.ParkingReservation, error) {
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return nil, domain.Invalid("to", "is before from")
	}
	return s.repo.ListReservations(ctx, domain.ParkingFilter{HotelID: hotelID, From: from, To: to})
}

func (s *ParkingService) DeleteReservation(ctx context.Context, hotelID, id int64) error {
	if err := s.repo.DeleteReservation(ctx, hotelID, id); err != nil {
		return err
	}
	s.ev.Changed(ctx, hotelID)
	return nil
}

// Availability lists the spots that are free on every day of [from, to].
func (s *ParkingService) Availability(ctx context.Context, hotelID int64, from, to domain.Date) ([]domain.ParkingSpot, error) {
	rng := domain.DateRange{Start: from, End: to}
	if err := rng.Validate("range"); err != nil {
		return nil, err
	}
	spots, err := s.repo.ListSpots(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	booked, err := s.repo.ListReservations(ctx, domain.ParkingFilter{HotelID: hotelID, From: from, To: to})
	if err != nil {
		return nil, err
	}
	taken := map[int64]bool{}
	for _, r := range booked {
		if r.Range().Overlaps(rng) {
			taken[r.SpotID] = true
		}
	}
	free := make([]domain.ParkingSpot, 0, len(spots))
	for _, sp := range spots {
		if !taken[sp.ID] {
			free = append(free, sp)
		}
	}
	return free, nil
}

// checkAvailable rejects r when another booking on the same spot shares a day.
func (s *ParkingService) checkAvailable(ctx context.Context, r domain.ParkingReservation) error {
	if _, err := s.repo.GetSpot(ctx, r.HotelID, r.SpotID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Invalid("spot_id", "unknown parking spot")
		}
		return err
	}
	others, err := s.repo.ListReservations(ctx, domain.ParkingFilter{
		HotelID: r.HotelID, SpotID: &r.SpotID, From: r.StartDate, To: r.EndDate,
	})
	if err != nil {
		return err
	}
	clashes := 0
	for _, o := range others {
		if o.ID != r.ID && o.Range().Overlaps(r.Range()) {
			clashes++
		}
	}
	if clashes > 0 {
		return domain.Conflict("spot is already reserved on these dates", clashes)
	}
	return nil
}

func applyReservation(r *domain.ParkingReservation, in ReservationInput) {
	r.SpotID = in.SpotID
	r.GuestName = strings.TrimSpace(in.GuestName)
	r.Plate = normalizePlate(in.Plate)
	r.Room = strings.TrimSpace(in.Room)
	r.StartDate = in.StartDate
	r.EndDate = in.EndDate
	r.Notes = in.Notes
}

func normalizePlate(p string) string {
	return strings.ToUpper(strings.Join(strings.Fields(p), ""))
}
