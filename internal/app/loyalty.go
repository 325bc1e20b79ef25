package app

import (
	"context"
	"errors"
	"strings"

	"hotel_ops/internal/domain"
)

const cardNumberAttempts = 3

type CardInput struct {
	HolderName string `json:"holder_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

func (in CardInput) validate() error {
	return firstErr(
		required("holder_name", in.HolderName),
		optionalEmail("email", in.Email),
	)
}

type LoyaltyService struct{ repo domain.LoyaltyRepository }

func NewLoyaltyService(r domain.LoyaltyRepository) *LoyaltyService {
	return &LoyaltyService{repo: r}
}

// Create issues a new card with a generated number such as LC-3F9A01BC.
func (s *LoyaltyService) Create(ctx context.Context, hotelID int64, in CardInput) (domain.LoyaltyCard, error) {
	if err := in.validate(); err != nil {
		return domain.LoyaltyCard{}, err
	}
	var err error
	for i := 0; i < cardNumberAttempts; i++ {
		c := domain.LoyaltyCard{
			HotelID:    hotelID,
			Number:     shortCode("LC-", 8),
			HolderName: strings.TrimSpace(in.HolderName),
			Email:      strings.ToLower(strings.TrimSpace(in.Email)),
			Phone:      strings.TrimSpace(in.Phone),
		}
		if err = s.repo.CreateCard(ctx, &c); err == nil {
			return c, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			break
		}
	}
	return domain.LoyaltyCard{}, err
}

func (s *LoyaltyService) Get(ctx context.Context, hotelID, id int64) (domain.LoyaltyCard, error) {
	return s.repo.GetCard(ctx, hotelID, id)
}

func (s *LoyaltyService) List(ctx context.Context, hotelID int64, q string, p domain.Page) ([]domain.LoyaltyCard, error) {
	return s.repo.ListCards(ctx, hotelID, q, p)
}

func (s *LoyaltyService) Update(ctx context.Context, hotelID, id int64, in CardInput) (domain.LoyaltyCard, error) {
	if err := in.validate(); err != nil {
		return domain.LoyaltyCard{}, err
	}
	c, err := s.repo.GetCard(ctx, hotelID, id)
	if err != nil {
		return domain.LoyaltyCard{}, err
	}
	c.HolderName = strings.TrimSpace(in.HolderName)
	c.Email = strings.ToLower(strings.TrimSpace(in.Email))
	c.Phone = strings.TrimSpace(in.Phone)
	if err := s.repo.UpdateCard(ctx, c); err != nil {
		return domain.LoyaltyCard{}, err
	}
	return s.repo.GetCard(ctx, hotelID, id)
}

// AdjustPoints credits (positive delta) or redeems (negative delta) points.
func (s *LoyaltyService) AdjustPoints(ctx context.Context, hotelID, id int64, delta int, reason string) (domain.LoyaltyCard, domain.LoyaltyTransaction, error) {
	if delta == 0 {
		return domain.LoyaltyCard{}, domain.LoyaltyTransaction{}, domain.Invalid("delta", "must not be zero")
	}
	if err := required("reason", reason); err != nil {
		return domain.LoyaltyCard{}, domain.LoyaltyTransaction{}, err
	}
	return s.repo.AddPoints(ctx, hotelID, id, delta, strings.TrimSpace(reason))
}

func (s *LoyaltyService) Transactions(ctx context.Context, hotelID, id int64) ([]domain.LoyaltyTransaction, error) {
	if _, err := s.repo.GetCard(ctx, hotelID, id); err != nil {
		return nil, err
	}
	return s.repo.ListTransactions(ctx, hotelID, id)
}

func (s *LoyaltyService) Delete(ctx context.Context, hotelID, id int64) error {
	return s.repo.DeleteCard(ctx, hotelID, id)
}
