package app

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_ops/internal/domain"
)

type RolloverReport struct {
	Hotels  int `json:"hotels"`
	Rolled  int `json:"rolled"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
	Copied  int `json:"copied"`
}

// RolloverService prepares next week's drafts for every hotel.
type RolloverService struct {
	hotels   domain.HotelRepository
	planning *PlanningService
	workers  int64
}

func NewRolloverService(h domain.HotelRepository, p *PlanningService, workers int) *RolloverService {
	if workers <= 0 {
		workers = 1
	}
	return &RolloverService{hotels: h, planning: p, workers: int64(workers)}
}

// Run copies the current week of each hotel into the next one. Hotels whose
// next week already holds shifts are skipped. A failing hotel does not stop
// the others.
func (s *RolloverService) Run(ctx context.Context) (RolloverReport, error) {
	hotels, err := s.hotels.ListHotels(ctx)
	if err != nil {
		return RolloverReport{}, err
	}
	rep := RolloverReport{Hotels: len(hotels)}
	sem := semaphore.NewWeighted(s.workers)
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for _, h := range hotels {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(h domain.Hotel) {
			defer wg.Done()
			defer sem.Release(1)

			this := domain.WeekOf(h.Today(s.planning.ev.Now())).Start
			res, err := s.planning.Duplicate(ctx, h.ID, this, this.AddDays(7), false)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case errors.Is(err, domain.ErrConflict):
				rep.Skipped++
				log.Info().Int64("hotel_id", h.ID).Msg("next week already planned, skipping")
			case err != nil:
				rep.Failed++
				log.Warn().Int64("hotel_id", h.ID).Err(err).Msg("rollover failed")
			default:
				rep.Rolled++
				rep.Copied += res.Copied
				log.Info().Int64("hotel_id", h.ID).Int("copied", res.Copied).Int("skipped", res.Skipped).Msg("rollover ok")
			}
		}(h)
	}
	wg.Wait()
	return rep, ctx.Err()
}
