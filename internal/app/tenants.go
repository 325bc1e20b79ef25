package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hotel_ops/internal/domain"
)

var newUUID = uuid.NewString

type TenantService struct {
	repo     domain.HotelRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewTenantService(r domain.HotelRepository, c domain.Cache, ttl time.Duration) *TenantService {
	return &TenantService{repo: r, cache: c, cacheTTL: ttl}
}

func hotelKey(id int64) string { return fmt.Sprintf("hotel:%d", id) }

func (s *TenantService) CreateHotel(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	h.ID = 0
	h.Normalize()
	if err := h.Validate(); err != nil {
		return domain.Hotel{}, err
	}
	if err := s.repo.CreateHotel(ctx, &h); err != nil {
		return domain.Hotel{}, err
	}
	return h, nil
}

func (s *TenantService) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	return s.repo.ListHotels(ctx)
}

// GetHotel is read on every tenant-scoped request, so it goes through the cache.
func (s *TenantService) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	key := hotelKey(id)
	var h domain.Hotel
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &h); ok {
			return h, nil
		}
	}
	h, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	}
	return h, nil
}
