package app

import (
	"context"
	"strings"

	"hotel_ops/internal/domain"
)

type LostItemInput struct {
	Description string      `json:"description"`
	Location    string      `json:"location"`
	Room        string      `json:"room"`
	FoundOn     domain.Date `json:"found_on"`
	FoundBy     string      `json:"found_by"`
	Notes       string      `json:"notes"`
}

type LostFoundService struct {
	repo domain.LostItemRepository
	ev   *Events
}

func NewLostFoundService(r domain.LostItemRepository, ev *Events) *LostFoundService {
	return &LostFoundService{repo: r, ev: ev}
}

// validate checks in against the hotel's current calendar day.
func (s *LostFoundService) validate(h domain.Hotel, in LostItemInput) error {
	if err := required("description", in.Description); err != nil {
		return err
	}
	if in.FoundOn.IsZero() {
		return domain.Invalid("found_on", "is required")
	}
	if in.FoundOn.After(h.Today(s.ev.Now())) {
		return domain.Invalid("found_on", "cannot be in the future")
	}
	return nil
}

func (s *LostFoundService) Create(ctx context.Context, h domain.Hotel, in LostItemInput) (domain.LostItem, error) {
	if err := s.validate(h, in); err != nil {
		return domain.LostItem{}, err
	}
	it := domain.LostItem{
		HotelID:     h.ID,
		Description: strings.TrimSpace(in.Description),
		Location:    strings.TrimSpace(in.Location),
		Room:        strings.TrimSpace(in.Room),
		FoundOn:     in.FoundOn,
		FoundBy:     in.FoundBy,
		Status:      domain.LostStored,
		Notes:       in.Notes,
	}
	if err := s.repo.CreateLostItem(ctx, &it); err != nil {
		return domain.LostItem{}, err
	}
	s.ev.Changed(ctx, h.ID)
	return it, nil
}

func (s *LostFoundService) Get(ctx context.Context, hotelID, id int64) (domain.LostItem, error) {
	return s.repo.GetLostItem(ctx, hotelID, id)
}

func (s *LostFoundService) List(ctx context.Context, hotelID int64, status *domain.LostItemStatus, q string, p domain.Page) ([]domain.LostItem, error) {
	if status != nil && !status.Valid() {
		return nil, domain.Invalid("status", "unknown item status")
	}
	return s.repo.ListLostItems(ctx, domain.LostItemFilter{HotelID: hotelID, Status: status, Q: q, Page: p})
}

func (s *LostFoundService) Update(ctx context.Context, h domain.Hotel, id int64, in LostItemInput) (domain.LostItem, error) {
	if err := s.validate(h, in); err != nil {
		return domain.LostItem{}, err
	}
	it, err := s.repo.GetLostItem(ctx, h.ID, id)
	if err != nil {
		return domain.LostItem{}, err
	}
	it.Description = strings.TrimSpace(in.Description)
	it.Location = strings.TrimSpace(in.Location)
	it.Room = strings.TrimSpace(in.Room)
	it.FoundOn = in.FoundOn
	it.FoundBy = in.FoundBy
	it.Notes = in.Notes
	if err := s.repo.UpdateLostItem(ctx, it); err != nil {
		return domain.LostItem{}, err
	}
	return s.repo.GetLostItem(ctx, h.ID, id)
}

// Claim hands a stored item back to its owner.
func (s *LostFoundService) Claim(ctx context.Context, hotelID, id int64, claimedBy string) (domain.LostItem, error) {
	if err := required("claimed_by", claimedBy); err != nil {
		return domain.LostItem{}, err
	}
	return s.transition(ctx, hotelID, id, func(it *domain.LostItem) {
		now := s.ev.Now()
		it.Status = domain.LostClaimed
		it.ClaimedBy = strings.TrimSpace(claimedBy)
		it.ClaimedAt = &now
	})
}

func (s *LostFoundService) Dispose(ctx context.Context, hotelID, id int64) (domain.LostItem, error) {
	return s.transition(ctx, hotelID, id, func(it *domain.LostItem) {
		it.Status = domain.LostDisposed
	})
}

func (s *LostFoundService) transition(ctx context.Context, hotelID, id int64, apply func(*domain.LostItem)) (domain.LostItem, error) {
	it, err := s.repo.GetLostItem(ctx, hotelID, id)
	if err != nil {
		return domain.LostItem{}, err
	}
	if it.Status != domain.LostStored {
		return domain.LostItem{}, domain.Invalid("status", "item is already "+string(it.Status))
	}
	apply(&it)
	if err := s.repo.UpdateLostItem(ctx, it); err != nil {
		return domain.LostItem{}, err
	}
	s.ev.Changed(ctx, hotelID)
	return s.repo.GetLostItem(ctx, hotelID, id)
}

func (s *LostFoundService) Delete(ctx context.Context, hotelID, id int64) error {
	if err := s.repo.DeleteLostItem(ctx, hotelID, id); err != nil {
		return err
	}
	s.ev.Changed(ctx, hotelID)
	return nil
}
