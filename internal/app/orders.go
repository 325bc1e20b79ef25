package app

import (
	"context"
	"fmt"
	"strings"

	"hotel_ops/internal/domain"
)

type OrderInput struct {
	Supplier   string             `json:"supplier"`
	Reference  string             `json:"reference"`
	Lines      []domain.OrderLine `json:"lines"`
	ExpectedOn domain.Date        `json:"expected_on"`
	Notes      string             `json:"notes"`
	CreatedBy  string             `json:"created_by"`
}

func (in OrderInput) validate() error {
	if err := required("supplier", in.Supplier); err != nil {
		return err
	}
	if len(in.Lines) == 0 {
		return domain.Invalid("lines", "at least one line is required")
	}
	for i, l := range in.Lines {
		if strings.TrimSpace(l.Name) == "" {
			return domain.Invalid(fmt.Sprintf("lines[%d].name", i), "is required")
		}
		if l.Quantity <= 0 {
			return domain.Invalid(fmt.Sprintf("lines[%d].quantity", i), "must be positive")
		}
	}
	return nil
}

type OrderService struct {
	repo domain.OrderRepository
	ev   *Events
}

func NewOrderService(r domain.OrderRepository, ev *Events) *OrderService {
	return &OrderService{repo: r, ev: ev}
}

func (s *OrderService) Create(ctx context.Context, hotelID int64, in OrderInput) (domain.Order, error) {
	if err := in.validate(); err != nil {
		return domain.Order{}, err
	}
	o := domain.Order{
		HotelID:    hotelID,
		Supplier:   strings.TrimSpace(in.Supplier),
		Reference:  strings.TrimSpace(in.Reference),
		Lines:      in.Lines,
		Status:     domain.OrderPending,
		ExpectedOn: in.ExpectedOn,
		Notes:      in.Notes,
		CreatedBy:  in.CreatedBy,
	}
	if err := s.repo.CreateOrder(ctx, &o); err != nil {
		return domain.Order{}, err
	}
	s.ev.Changed(ctx, hotelID)
	return o, nil
}

func (s *OrderService) Get(ctx context.Context, hotelID, id int64) (domain.Order, error) {
	return s.repo.GetOrder(ctx, hotelID, id)
}

func (s *OrderService) List(ctx context.Context, hotelID int64, status *domain.OrderStatus, p domain.Page) ([]domain.Order, error) {
	if status != nil && !status.Valid() {
		return nil, domain.Invalid("status", "unknown order status")
	}
	return s.repo.ListOrders(ctx, domain.OrderFilter{HotelID: hotelID, Status: status, Page: p})
}

// Update edits an open order. Status changes go through SetStatus.
func (s *OrderService) Update(ctx context.Context, hotelID, id int64, in OrderInput) (domain.Order, error) {
	if err := in.validate(); err != nil {
		return domain.Order{}, err
	}
	o, err := s.repo.GetOrder(ctx, hotelID, id)
	if err != nil {
		return domain.Order{}, err
	}
	if o.Status.Closed() {
		return domain.Order{}, domain.Invalid("status", "a "+string(o.Status)+" order can no longer be edited")
	}
	o.Supplier = strings.TrimSpace(in.Supplier)
	o.Reference = strings.TrimSpace(in.Reference)
	o.Lines = in.Lines
	o.ExpectedOn = in.ExpectedOn
	o.Notes = in.Notes
	if err := s.repo.UpdateOrder(ctx, o); err != nil {
		return domain.Order{}, err
	}
	s.ev.Changed(ctx, hotelID)
	return s.repo.GetOrder(ctx, hotelID, id)
}

func (s *OrderService) SetStatus(ctx context.Context, hotelID, id int64, next domain.OrderStatus) (domain.Order, error) {
	if !next.Valid() {
		return domain.Order{}, domain.Invalid("status", "unknown order status")
	}
	o, err := s.repo.GetOrder(ctx, hotelID, id)
	if err != nil {
		return domain.Order{}, err
	}
	if !o.Status.CanMoveTo(next) {
		return domain.Order{}, domain.Invalid("status", fmt.Sprintf("cannot move from %s to %s", o.Status, next))
	}
	o.Status = next
	if next == domain.OrderReceived {
		now := s.ev.Now()
		o.ReceivedAt = &now
	}
	if err := s.repo.UpdateOrder(ctx, o); err != nil {
		return domain.Order{}, err
	}
	if next == domain.OrderReceived {
		s.ev.Emit(ctx, hotelID, domain.EventOrderReceived, map[string]any{"order_id": o.ID, "supplier": o.Supplier})
	} else {
		s.ev.Changed(ctx, hotelID)
	}
	return s.repo.GetOrder(ctx, hotelID, id)
}

func (s *OrderService) Delete(ctx context.Context, hotelID, id int64) error {
	if err := s.repo.DeleteOrder(ctx, hotelID, id); err != nil {
		return err
	}
	s.ev.Changed(ctx, hotelID)
	return nil
}
