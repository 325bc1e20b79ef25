package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotel_ops/internal/adapters/observability"
	"hotel_ops/internal/domain"
)

const notifyTimeout = 15 * time.Second

func dashboardKey(hotelID int64) string { return fmt.Sprintf("dashboard:%d", hotelID) }

// Events is shared by every service: it owns the clock, evicts the cached
// dashboard after writes and forwards business events to the notifier.
type Events struct {
	notifier domain.Notifier
	cache    domain.Cache
	now      func() time.Time
	wg       sync.WaitGroup
}

func NewEvents(n domain.Notifier, c domain.Cache) *Events {
	return &Events{notifier: n, cache: c, now: time.Now}
}

// WithClock replaces the time source, mostly for tests.
func (e *Events) WithClock(now func() time.Time) *Events {
	e.now = now
	return e
}

func (e *Events) Now() time.Time { return e.now().UTC().Truncate(time.Millisecond) }

// Changed marks the hotel's derived views as stale.
func (e *Events) Changed(ctx context.Context, hotelID int64) {
	if e.cache == nil {
		return
	}
	if err := e.cache.Del(ctx, dashboardKey(hotelID)); err != nil {
		log.Warn().Err(err).Int64("hotel_id", hotelID).Msg("dashboard cache eviction failed")
	}
}

// Emit records a business event and delivers it in the background.
func (e *Events) Emit(ctx context.Context, hotelID int64, kind string, data any) {
	e.Changed(ctx, hotelID)
	observability.ObserveEvent(kind)
	if e.notifier == nil {
		return
	}
	ev := domain.Event{ID: uuid.NewString(), Kind: kind, HotelID: hotelID, At: e.Now(), Data: data}

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()
		if err := e.notifier.Notify(nctx, ev); err != nil {
			log.Warn().Err(err).Str("kind", kind).Int64("hotel_id", hotelID).Msg("event delivery failed")
		}
	}()
}

// Wait blocks until in-flight deliveries finish.
func (e *Events) Wait() { e.wg.Wait() }
