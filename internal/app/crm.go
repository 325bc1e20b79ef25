package app

import (
	"context"
	"fmt"
	"strings"

	"hotel_ops/internal/domain"
)

type LeadInput struct {
	Company      string           `json:"company"`
	ContactName  string           `json:"contact_name"`
	Email        string           `json:"email"`
	Phone        string           `json:"phone"`
	Stage        domain.LeadStage `json:"stage"`
	ValueCents   int64            `json:"value_cents"`
	Owner        string           `json:"owner"`
	NextActionOn domain.Date      `json:"next_action_on"`
	Notes        string           `json:"notes"`
}

func (in LeadInput) validate() error {
	if err := firstErr(required("company", in.Company), optionalEmail("email", in.Email)); err != nil {
		return err
	}
	if in.Stage != "" && !in.Stage.Valid() {
		return domain.Invalid("stage", "unknown stage")
	}
	if in.ValueCents < 0 {
		return domain.Invalid("value_cents", "must not be negative")
	}
	return nil
}

type CRMService struct {
	repo domain.LeadRepository
	ev   *Events
}

func NewCRMService(r domain.LeadRepository, ev *Events) *CRMService {
	return &CRMService{repo: r, ev: ev}
}

func (s *CRMService) Create(ctx context.Context, hotelID int64, in LeadInput) (domain.Lead, error) {
	if err := in.validate(); err != nil {
		return domain.Lead{}, err
	}
	l := domain.Lead{HotelID: hotelID, Stage: domain.StageNew}
	if in.Stage != "" {
		l.Stage = in.Stage
	}
	applyLead(&l, in)
	if err := s.repo.CreateLead(ctx, &l); err != nil {
		return domain.Lead{}, err
	}
	s.ev.Changed(ctx, hotelID)
	return l, nil
}

func (s *CRMService) Get(ctx context.Context, hotelID, id int64) (domain.Lead, error) {
	return s.repo.GetLead(ctx, hotelID, id)
}

func (s *CRMService) List(ctx context.Context, f domain.LeadFilter) ([]domain.Lead, error) {
	if f.Stage != nil && !f.Stage.Valid() {
		return nil, domain.Invalid("stage", "unknown stage")
	}
	return s.repo.ListLeads(ctx, f)
}

// Update edits lead details. The stage is left alone; use MoveStage.
func (s *CRMService) Update(ctx context.Context, hotelID, id int64, in LeadInput) (domain.Lead, error) {
	if err := in.validate(); err != nil {
		return domain.Lead{}, err
	}
	l, err := s.repo.GetLead(ctx, hotelID, id)
	if err != nil {
		return domain.Lead{}, err
	}
	applyLead(&l, in)
	if err := s.repo.UpdateLead(ctx, l); err != nil {
		return domain.Lead{}, err
	}
	s.ev.Changed(ctx, hotelID)
	return s.repo.GetLead(ctx, hotelID, id)
}

// MoveStage moves a lead across the board and logs the move as an activity.
// Won and lost leads can only be reopened to "new".
func (s *CRMService) MoveStage(ctx context.Context, hotelID, id int64, stage domain.LeadStage, note string) (domain.Lead, error) {
	if !stage.Valid() {
		return domain.Lead{}, domain.Invalid("stage", "unknown stage")
	}
	l, err := s.repo.GetLead(ctx, hotelID, id)
	if err != nil {
		return domain.Lead{}, err
	}
	if l.Stage == stage {
		return l, nil
	}
	if l.Stage.Closed() && stage != domain.StageNew {
		return domain.Lead{}, domain.Invalid("stage", "a closed lead can only be reopened to new")
	}
	from := l.Stage
	l.Stage = stage
	if err := s.repo.UpdateLead(ctx, l); err != nil {
		return domain.Lead{}, err
	}
	body := fmt.Sprintf("stage: %s -> %s", from, stage)
	if note = strings.TrimSpace(note); note != "" {
		body += "\n" + note
	}
	if err := s.repo.AddActivity(ctx, &domain.LeadActivity{LeadID: id, Kind: domain.ActivityNote, Body: body}); err != nil {
		return domain.Lead{}, err
	}
	s.ev.Changed(ctx, hotelID)
	return s.repo.GetLead(ctx, hotelID, id)
}

func (s *CRMService) AddActivity(ctx context.Context, hotelID, leadID int64, kind domain.ActivityKind, body string) (domain.LeadActivity, error) {
	if kind == "" {
		kind = domain.ActivityNote
	}
	if !kind.Valid() {
		return domain.LeadActivity{}, domain.Invalid("kind", "unknown activity kind")
	}
	if err := required("body", body); err != nil {
		return domain.LeadActivity{}, err
	}
	if _, err := s.repo.GetLead(ctx, hotelID, leadID); err != nil {
		return domain.LeadActivity{}, err
	}
	a := domain.LeadActivity{LeadID: leadID, Kind: kind, Body: strings.TrimSpace(body)}
	if err := s.repo.AddActivity(ctx, &a); err != nil {
		return domain.LeadActivity{}, err
	}
	return a, nil
}

func (s *CRMService) Activities(ctx context.Context, hotelID, leadID int64) ([]domain.LeadActivity, error) {
	if _, err := s.repo.GetLead(ctx, hotelID, leadID); err != nil {
		return nil, err
	}
	return s.repo.ListActivities(ctx, hotelID, leadID)
}

func (s *CRMService) Delete(ctx context.Context, hotelID, id int64) error {
	if err := s.repo.DeleteLead(ctx, hotelID, id); err != nil {
		return err
	}
	s.ev.Changed(ctx, hotelID)
	return nil
}

// Pipeline returns one entry per stage, in board order, including empty stages.
func (s *CRMService) Pipeline(ctx context.Context, hotelID int64) ([]domain.StageSummary, error) {
	totals, err := s.repo.StageTotals(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	return boardOrder(totals), nil
}

// boardOrder lays totals out in domain.Stages order, filling empty stages.
func boardOrder(totals []domain.StageSummary) []domain.StageSummary {
	idx := make(map[domain.LeadStage]int, len(domain.Stages))
	out := make([]domain.StageSummary, len(domain.Stages))
	for i, st := range domain.Stages {
		idx[st] = i
		out[i].Stage = st
	}
	for _, t := range totals {
		i, ok := idx[t.Stage]
		if !ok {
			continue
		}
		out[i].Count += t.Count
		out[i].ValueCents += t.ValueCents
	}
	return out
}

func applyLead(l *domain.Lead, in LeadInput) {
	l.Company = strings.TrimSpace(in.Company)
	l.ContactName = strings.TrimSpace(in.ContactName)
	l.Email = strings.ToLower(strings.TrimSpace(in.Email))
	l.Phone = strings.TrimSpace(in.Phone)
	l.ValueCents = in.ValueCents
	l.Owner = strings.TrimSpace(in.Owner)
	l.NextActionOn = in.NextActionOn
	l.Notes = in.Notes
}
