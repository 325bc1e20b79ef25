package app_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"hotel_ops/internal/app"
	"hotel_ops/internal/domain"
)

// memRepo is an in-memory implementation of every repository port.
type memRepo struct {
	mu     sync.Mutex
	nextID int64

	hotels    map[int64]domain.Hotel
	orders    map[int64]domain.Order
	lost      map[int64]domain.LostItem
	cards     map[int64]domain.LoyaltyCard
	txs       []domain.LoyaltyTransaction
	spots     map[int64]domain.ParkingSpot
	res       map[int64]domain.ParkingReservation
	leads     map[int64]domain.Lead
	acts      []domain.LeadActivity
	docs      map[int64]domain.Document
	revisions []domain.Revision
	employees map[int64]domain.Employee
	shifts    map[int64]domain.Shift
	leave     map[int64]domain.LeaveRequest

	calls map[string]int
}

func newMemRepo() *memRepo {
	return &memRepo{
		hotels:    map[int64]domain.Hotel{},
		orders:    map[int64]domain.Order{},
		lost:      map[int64]domain.LostItem{},
		cards:     map[int64]domain.LoyaltyCard{},
		spots:     map[int64]domain.ParkingSpot{},
		res:       map[int64]domain.ParkingReservation{},
		leads:     map[int64]domain.Lead{},
		docs:      map[int64]domain.Document{},
		employees: map[int64]domain.Employee{},
		shifts:    map[int64]domain.Shift{},
		leave:     map[int64]domain.LeaveRequest{},
		calls:     map[string]int{},
	}
}

func (m *memRepo) id() int64 { m.nextID++; return m.nextID }

func (m *memRepo) count(name string) {
	m.calls[name]++
}

// window sorts rows the way the SQL store does and cuts out the requested page.
func window[T any](rows []T, less func(a, b T) bool, p domain.Page) []T {
	p = p.Normalized()
	sort.Slice(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
	if p.Offset >= len(rows) {
		return nil
	}
	rows = rows[p.Offset:]
	if len(rows) > p.Limit {
		rows = rows[:p.Limit]
	}
	return rows
}

func (m *memRepo) Calls(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

// ---- hotels ----

func (m *memRepo) CreateHotel(_ context.Context, h *domain.Hotel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.hotels {
		if o.Code == h.Code {
			return domain.Conflict("duplicate entry", 0)
		}
	}
	h.ID = m.id()
	m.hotels[h.ID] = *h
	return nil
}

func (m *memRepo) GetHotel(_ context.Context, id int64) (domain.Hotel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("GetHotel")
	h, ok := m.hotels[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, nil
}

func (m *memRepo) ListHotels(context.Context) ([]domain.Hotel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Hotel
	for _, h := range m.hotels {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ---- orders ----

func (m *memRepo) CreateOrder(_ context.Context, o *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o.ID = m.id()
	m.orders[o.ID] = *o
	return nil
}

func (m *memRepo) GetOrder(_ context.Context, hotelID, id int64) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok || o.HotelID != hotelID {
		return domain.Order{}, domain.ErrNotFound
	}
	return o, nil
}

func (m *memRepo) ListOrders(_ context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("ListOrders")
	var out []domain.Order
	for _, o := range m.orders {
		if o.HotelID == f.HotelID && (f.Status == nil || o.Status == *f.Status) {
			out = append(out, o)
		}
	}
	return window(out, func(a, b domain.Order) bool { return a.ID > b.ID }, f.Page), nil
}

func (m *memRepo) CountOrders(_ context.Context, hotelID int64, status domain.OrderStatus) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("CountOrders")
	n := 0
	for _, o := range m.orders {
		if o.HotelID == hotelID && o.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *memRepo) UpdateOrder(_ context.Context, o domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID] = o
	return nil
}

func (m *memRepo) DeleteOrder(_ context.Context, hotelID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o, ok := m.orders[id]; !ok || o.HotelID != hotelID {
		return domain.ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

// ---- lost and found ----

func (m *memRepo) CreateLostItem(_ context.Context, it *domain.LostItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	it.ID = m.id()
	m.lost[it.ID] = *it
	return nil
}

func (m *memRepo) GetLostItem(_ context.Context, hotelID, id int64) (domain.LostItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.lost[id]
	if !ok || it.HotelID != hotelID {
		return domain.LostItem{}, domain.ErrNotFound
	}
	return it, nil
}

func (m *memRepo) ListLostItems(_ context.Context, f domain.LostItemFilter) ([]domain.LostItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.LostItem
	for _, it := range m.lost {
		if it.HotelID != f.HotelID || (f.Status != nil && it.Status != *f.Status) {
			continue
		}
		if f.Q != "" && !strings.Contains(strings.ToLower(it.Description), strings.ToLower(f.Q)) {
			continue
		}
		out = append(out, it)
	}
	return window(out, func(a, b domain.LostItem) bool {
		if !a.FoundOn.Equal(b.FoundOn) {
			return a.FoundOn.After(b.FoundOn)
		}
		return a.ID > b.ID
	}, f.Page), nil
}

func (m *memRepo) CountLostItems(_ context.Context, hotelID int64, status domain.LostItemStatus) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, it := range m.lost {
		if it.HotelID == hotelID && it.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *memRepo) UpdateLostItem(_ context.Context, it domain.LostItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lost[it.ID] = it
	return nil
}

func (m *memRepo) DeleteLostItem(_ context.Context, hotelID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if it, ok := m.lost[id]; !ok || it.HotelID != hotelID {
		return domain.ErrNotFound
	}
	delete(m.lost, id)
	return nil
}

// ---- loyalty ----

func (m *memRepo) CreateCard(_ context.Context, c *domain.LoyaltyCard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.cards {
		if o.HotelID == c.HotelID && o.Number == c.Number {
			return domain.Conflict("duplicate entry", 0)
		}
	}
	c.ID = m.id()
	c.Tier = domain.TierFor(c.Points)
	m.cards[c.ID] = *c
	return nil
}

func (m *memRepo) GetCard(_ context.Context, hotelID, id int64) (domain.LoyaltyCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cards[id]
	if !ok || c.HotelID != hotelID {
		return domain.LoyaltyCard{}, domain.ErrNotFound
	}
	return c, nil
}

func (m *memRepo) ListCards(_ context.Context, hotelID int64, q string, p domain.Page) ([]domain.LoyaltyCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.LoyaltyCard
	for _, c := range m.cards {
		if c.HotelID == hotelID && (q == "" || strings.Contains(c.HolderName, q) || strings.Contains(c.Number, q)) {
			out = append(out, c)
		}
	}
	return window(out, func(a, b domain.LoyaltyCard) bool {
		if a.HolderName != b.HolderName {
			return a.HolderName < b.HolderName
		}
		return a.ID < b.ID
	}, p), nil
}

func (m *memRepo) UpdateCard(_ context.Context, c domain.LoyaltyCard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cards[c.ID] = c
	return nil
}

func (m *memRepo) DeleteCard(_ context.Context, hotelID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.cards[id]; !ok || c.HotelID != hotelID {
		return domain.ErrNotFound
	}
	delete(m.cards, id)
	return nil
}

func (m *memRepo) AddPoints(_ context.Context, hotelID, cardID int64, delta int, reason string) (domain.LoyaltyCard, domain.LoyaltyTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cards[cardID]
	if !ok || c.HotelID != hotelID {
		return domain.LoyaltyCard{}, domain.LoyaltyTransaction{}, domain.ErrNotFound
	}
	if c.Points+delta < 0 {
		return domain.LoyaltyCard{}, domain.LoyaltyTransaction{}, domain.Invalid("delta", "balance cannot go below zero")
	}
	c.Points += delta
	c.Tier = domain.TierFor(c.Points)
	m.cards[cardID] = c
	tx := domain.LoyaltyTransaction{ID: m.id(), CardID: cardID, Delta: delta, Reason: reason, Balance: c.Points}
	m.txs = append(m.txs, tx)
	return c, tx, nil
}

func (m *memRepo) ListTransactions(_ context.Context, _, cardID int64) ([]domain.LoyaltyTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.LoyaltyTransaction
	for i := len(m.txs) - 1; i >= 0; i-- {
		if m.txs[i].CardID == cardID {
			out = append(out, m.txs[i])
		}
	}
	return out, nil
}

// ---- parking ----

func (m *memRepo) CreateSpot(_ context.Context, s *domain.ParkingSpot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = m.id()
	m.spots[s.ID] = *s
	return nil
}

func (m *memRepo) GetSpot(_ context.Context, hotelID, id int64) (domain.ParkingSpot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.spots[id]
	if !ok || s.HotelID != hotelID {
		return domain.ParkingSpot{}, domain.ErrNotFound
	}
	return s, nil
}

func (m *memRepo) ListSpots(_ context.Context, hotelID int64) ([]domain.ParkingSpot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.ParkingSpot
	for _, s := range m.spots {
		if s.HotelID == hotelID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRepo) DeleteSpot(_ context.Context, hotelID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.spots[id]; !ok || s.HotelID != hotelID {
		return domain.ErrNotFound
	}
	delete(m.spots, id)
	return nil
}

func (m *memRepo) CreateReservation(_ context.Context, r *domain.ParkingReservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = m.id()
	m.res[r.ID] = *r
	return nil
}

func (m *memRepo) GetReservation(_ context.Context, hotelID, id int64) (domain.ParkingReservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.res[id]
	if !ok || r.HotelID != hotelID {
		return domain.ParkingReservation{}, domain.ErrNotFound
	}
	return r, nil
}

func (m *memRepo) ListReservations(_ context.Context, f domain.ParkingFilter) ([]domain.ParkingReservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.ParkingReservation
	for _, r := range m.res {
		if r.HotelID != f.HotelID || (f.SpotID != nil && r.SpotID != *f.SpotID) {
			continue
		}
		if !f.From.IsZero() && r.EndDate.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && r.StartDate.After(f.To) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *memRepo) UpdateReservation(_ context.Context, r domain.ParkingReservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.res[r.ID] = r
	return nil
}

func (m *memRepo) DeleteReservation(_ context.Context, hotelID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.res[id]; !ok || r.HotelID != hotelID {
		return domain.ErrNotFound
	}
	delete(m.res, id)
	return nil
}

// ---- crm ----

func (m *memRepo) CreateLead(_ context.Context, l *domain.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.ID = m.id()
	m.leads[l.ID] = *l
	return nil
}

func (m *memRepo) GetLead(_ context.Context, hotelID, id int64) (domain.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.leads[id]
	if !ok || l.HotelID != hotelID {
		return domain.Lead{}, domain.ErrNotFound
	}
	return l, nil
}

func (m *memRepo) ListLeads(_ context.Context, f domain.LeadFilter) ([]domain.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Lead
	for _, l := range m.leads {
		if l.HotelID == f.HotelID && (f.Stage == nil || l.Stage == *f.Stage) && (f.Owner == "" || l.Owner == f.Owner) {
			out = append(out, l)
		}
	}
	return window(out, func(a, b domain.Lead) bool { return a.ID > b.ID }, f.Page), nil
}

func (m *memRepo) StageTotals(_ context.Context, hotelID int64) ([]domain.StageSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byStage := map[domain.LeadStage]*domain.StageSummary{}
	var out []domain.StageSummary
	for _, l := range m.leads {
		if l.HotelID != hotelID {
			continue
		}
		s, ok := byStage[l.Stage]
		if !ok {
			s = &domain.StageSummary{Stage: l.Stage}
			byStage[l.Stage] = s
		}
		s.Count++
		s.ValueCents += l.ValueCents
	}
	for _, s := range byStage {
		out = append(out, *s)
	}
	return out, nil
}

func (m *memRepo) UpdateLead(_ context.Context, l domain.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leads[l.ID] = l
	return nil
}

func (m *memRepo) DeleteLead(_ context.Context, hotelID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.leads[id]; !ok || l.HotelID != hotelID {
		return domain.ErrNotFound
	}
	delete(m.leads, id)
	return nil
}

func (m *memRepo) AddActivity(_ context.Context, a *domain.LeadActivity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = m.id()
	m.acts = append(m.acts, *a)
	return nil
}

func (m *memRepo) ListActivities(_ context.Context, _, leadID int64) ([]domain.LeadActivity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.LeadActivity
	for i := len(m.acts) - 1; i >= 0; i-- {
		if m.acts[i].LeadID == leadID {
			out = append(out, m.acts[i])
		}
	}
	return out, nil
}

// ---- wiki ----

func (m *memRepo) CreateDocument(_ context.Context, d *domain.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.docs {
		if o.HotelID == d.HotelID && o.Slug == d.Slug {
			return domain.Conflict("duplicate entry", 0)
		}
	}
	d.ID = m.id()
	m.docs[d.ID] = *d
	return nil
}

func (m *memRepo) GetDocument(_ context.Context, hotelID int64, slug string) (domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.docs {
		if d.HotelID == hotelID && d.Slug == slug {
			return d, nil
		}
	}
	return domain.Document{}, domain.ErrNotFound
}

func (m *memRepo) ListDocuments(_ context.Context, f domain.DocumentFilter) ([]domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Document
	for _, d := range m.docs {
		if d.HotelID == f.HotelID && (f.Category == "" || d.Category == f.Category) {
			out = append(out, d)
		}
	}
	return window(out, func(a, b domain.Document) bool {
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.ID < b.ID
	}, f.Page), nil
}

func (m *memRepo) SlugsWithPrefix(_ context.Context, hotelID int64, base string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, d := range m.docs {
		if d.HotelID == hotelID && (d.Slug == base || strings.HasPrefix(d.Slug, base+"-")) {
			out = append(out, d.Slug)
		}
	}
	return out, nil
}

func (m *memRepo) UpdateDocument(_ context.Context, d domain.Document, prev domain.Revision) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revisions = append(m.revisions, prev)
	m.docs[d.ID] = d
	return nil
}

func (m *memRepo) ListRevisions(_ context.Context, _, documentID int64) ([]domain.Revision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Revision
	for i := len(m.revisions) - 1; i >= 0; i-- {
		if m.revisions[i].DocumentID == documentID {
			out = append(out, m.revisions[i])
		}
	}
	return out, nil
}

func (m *memRepo) DeleteDocument(_ context.Context, hotelID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.docs[id]; !ok || d.HotelID != hotelID {
		return domain.ErrNotFound
	}
	delete(m.docs, id)
	return nil
}

// ---- planning ----

func (m *memRepo) CreateEmployee(_ context.Context, e *domain.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = m.id()
	m.employees[e.ID] = *e
	return nil
}

func (m *memRepo) GetEmployee(_ context.Context, hotelID, id int64) (domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.employees[id]
	if !ok || e.HotelID != hotelID {
		return domain.Employee{}, domain.ErrNotFound
	}
	return e, nil
}

func (m *memRepo) ListEmployees(_ context.Context, hotelID int64, includeInactive bool) ([]domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Employee
	for _, e := range m.employees {
		if e.HotelID == hotelID && (includeInactive || e.Active) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRepo) UpdateEmployee(_ context.Context, e domain.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees[e.ID] = e
	return nil
}

func (m *memRepo) CreateShift(_ context.Context, s *domain.Shift) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = m.id()
	m.shifts[s.ID] = *s
	return nil
}

func (m *memRepo) GetShift(_ context.Context, hotelID, id int64) (domain.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.shifts[id]
	if !ok || s.HotelID != hotelID {
		return domain.Shift{}, domain.ErrNotFound
	}
	return s, nil
}

func (m *memRepo) ListShifts(_ context.Context, f domain.ShiftFilter) ([]domain.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Shift
	for _, s := range m.shifts {
		if s.HotelID != f.HotelID || s.Date.Before(f.From) || s.Date.After(f.To) {
			continue
		}
		if (f.EmployeeID != nil && s.EmployeeID != *f.EmployeeID) || (f.Status != nil && s.Status != *f.Status) {
			continue
		}
		out = append(out, s)
	}
	domain.SortShifts(out)
	return out, nil
}

func (m *memRepo) UpdateShift(_ context.Context, s domain.Shift) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shifts[s.ID] = s
	return nil
}

func (m *memRepo) DeleteShift(_ context.Context, hotelID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.shifts[id]; !ok || s.HotelID != hotelID {
		return domain.ErrNotFound
	}
	delete(m.shifts, id)
	return nil
}

func (m *memRepo) ApplyShifts(_ context.Context, hotelID int64, b domain.ShiftBatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range b.Delete {
		if s, ok := m.shifts[id]; ok && s.HotelID == hotelID {
			delete(m.shifts, id)
		}
	}
	for _, s := range b.Update {
		s.HotelID = hotelID
		m.shifts[s.ID] = s
	}
	for _, s := range b.Insert {
		s.HotelID = hotelID
		s.ID = m.id()
		m.shifts[s.ID] = s
	}
	return nil
}

func (m *memRepo) CreateLeave(_ context.Context, l *domain.LeaveRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.ID = m.id()
	m.leave[l.ID] = *l
	return nil
}

func (m *memRepo) GetLeave(_ context.Context, hotelID, id int64) (domain.LeaveRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.leave[id]
	if !ok || l.HotelID != hotelID {
		return domain.LeaveRequest{}, domain.ErrNotFound
	}
	return l, nil
}

func (m *memRepo) ListLeave(_ context.Context, f domain.LeaveFilter) ([]domain.LeaveRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.LeaveRequest
	for _, l := range m.leave {
		if l.HotelID != f.HotelID || (f.EmployeeID != nil && l.EmployeeID != *f.EmployeeID) || (f.Status != nil && l.Status != *f.Status) {
			continue
		}
		if (!f.From.IsZero() && l.EndDate.Before(f.From)) || (!f.To.IsZero() && l.StartDate.After(f.To)) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (m *memRepo) UpdateLeave(_ context.Context, l domain.LeaveRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leave[l.ID] = l
	return nil
}

func (m *memRepo) DeleteLeave(_ context.Context, hotelID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.leave[id]; !ok || l.HotelID != hotelID {
		return domain.ErrNotFound
	}
	delete(m.leave, id)
	return nil
}

// ---- cache + notifier ----

type fakeCache struct {
	mu   sync.Mutex
	data map[string]any
	dels []string
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string]any{}} }

func (c *fakeCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	switch p := dst.(type) {
	case *domain.Hotel:
		*p = v.(domain.Hotel)
	case *app.Summary:
		*p = v.(app.Summary)
	default:
		return false, nil
	}
	return true, nil
}

func (c *fakeCache) Set(_ context.Context, key string, v any, _ int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = v
	return nil
}

func (c *fakeCache) Del(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	c.dels = append(c.dels, key)
	return nil
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []domain.Event
}

func (n *fakeNotifier) Notify(_ context.Context, e domain.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
	return nil
}

func (n *fakeNotifier) kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.events))
	for _, e := range n.events {
		out = append(out, e.Kind)
	}
	return out
}

// ---- fixtures ----

// monday 2026-03-09, 10:00 UTC
var fixedNow = time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

type env struct {
	repo     *memRepo
	cache    *fakeCache
	notifier *fakeNotifier
	events   *app.Events
	clock    time.Time
}

func newEnv() *env {
	e := &env{repo: newMemRepo(), cache: newFakeCache(), notifier: &fakeNotifier{}, clock: fixedNow}
	e.events = app.NewEvents(e.notifier, e.cache).WithClock(func() time.Time { return e.clock })
	return e
}

// tick advances the clock so that UpdatedAt values differ.
func (e *env) tick() { e.clock = e.clock.Add(time.Minute) }

func date(s string) domain.Date {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}
