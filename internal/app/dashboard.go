package app

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"hotel_ops/internal/domain"
)

type Summary struct {
	HotelID            int64       `json:"hotel_id"`
	Today              domain.Date `json:"today"`
	PendingOrders      int         `json:"pending_orders"`
	StoredLostItems    int         `json:"stored_lost_items"`
	ParkingToday       int         `json:"parking_today"`
	PendingLeave       int         `json:"pending_leave"`
	OpenLeads          int         `json:"open_leads"`
	PipelineValueCents int64       `json:"pipeline_value_cents"`
}

type DashboardService struct {
	orders   domain.OrderRepository
	lost     domain.LostItemRepository
	parking  domain.ParkingRepository
	planning domain.PlanningRepository
	leads    domain.LeadRepository
	cache    domain.Cache
	cacheTTL time.Duration
	ev       *Events
}

type DashboardDeps struct {
	Orders   domain.OrderRepository
	Lost     domain.LostItemRepository
	Parking  domain.ParkingRepository
	Planning domain.PlanningRepository
	Leads    domain.LeadRepository
}

func NewDashboardService(d DashboardDeps, c domain.Cache, ttl time.Duration, ev *Events) *DashboardService {
	return &DashboardService{
		orders: d.Orders, lost: d.Lost, parking: d.Parking, planning: d.Planning, leads: d.Leads,
		cache: c, cacheTTL: ttl, ev: ev,
	}
}

// Summary counts the open work of a hotel. Results are cached until the next
// write evicts them or the TTL runs out.
func (s *DashboardService) Summary(ctx context.Context, h domain.Hotel) (Summary, error) {
	key := dashboardKey(h.ID)
	var out Summary
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			return out, nil
		}
	}

	out = Summary{HotelID: h.ID, Today: h.Today(s.ev.Now())}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.orders.CountOrders(gctx, h.ID, domain.OrderPending)
		out.PendingOrders = n
		return err
	})
	g.Go(func() error {
		n, err := s.lost.CountLostItems(gctx, h.ID, domain.LostStored)
		out.StoredLostItems = n
		return err
	})
	g.Go(func() error {
		rows, err := s.parking.ListReservations(gctx, domain.ParkingFilter{HotelID: h.ID, From: out.Today, To: out.Today})
		out.ParkingToday = len(rows)
		return err
	})
	g.Go(func() error {
		st := domain.LeavePending
		rows, err := s.planning.ListLeave(gctx, domain.LeaveFilter{HotelID: h.ID, Status: &st})
		out.PendingLeave = len(rows)
		return err
	})
	g.Go(func() error {
		totals, err := s.leads.StageTotals(gctx, h.ID)
		for _, t := range totals {
			if !t.Stage.Closed() {
				out.OpenLeads += t.Count
				out.PipelineValueCents += t.ValueCents
			}
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}
