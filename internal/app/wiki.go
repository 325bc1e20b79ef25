package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel_ops/internal/domain"
)

const slugAttempts = 3

type DocumentInput struct {
	Title     string `json:"title"`
	Category  string `json:"category"`
	Body      string `json:"body"`
	UpdatedBy string `json:"updated_by"`
}

type WikiService struct{ repo domain.DocumentRepository }

func NewWikiService(r domain.DocumentRepository) *WikiService { return &WikiService{repo: r} }

func (s *WikiService) Create(ctx context.Context, hotelID int64, in DocumentInput) (domain.Document, error) {
	if err := required("title", in.Title); err != nil {
		return domain.Document{}, err
	}
	// a concurrent create may take the slug between lookup and insert
	var err error
	for i := 0; i < slugAttempts; i++ {
		var slug string
		if slug, err = s.uniqueSlug(ctx, hotelID, in.Title); err != nil {
			return domain.Document{}, err
		}
		d := domain.Document{
			HotelID:   hotelID,
			Slug:      slug,
			Title:     strings.TrimSpace(in.Title),
			Category:  strings.TrimSpace(in.Category),
			Body:      in.Body,
			Version:   1,
			UpdatedBy: in.UpdatedBy,
		}
		if err = s.repo.CreateDocument(ctx, &d); err == nil {
			return d, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			break
		}
	}
	return domain.Document{}, err
}

// uniqueSlug derives a slug from title, suffixing -2, -3... when taken.
func (s *WikiService) uniqueSlug(ctx context.Context, hotelID int64, title string) (string, error) {
	base := domain.Slugify(title)
	if base == "" {
		base = "document"
	}
	taken, err := s.repo.SlugsWithPrefix(ctx, hotelID, base)
	if err != nil {
		return "", err
	}
	used := make(map[string]bool, len(taken))
	for _, t := range taken {
		used[t] = true
	}
	if !used[base] {
		return base, nil
	}
	for n := 2; ; n++ {
		if c := fmt.Sprintf("%s-%d", base, n); !used[c] {
			return c, nil
		}
	}
}

func (s *WikiService) Get(ctx context.Context, hotelID int64, slug string) (domain.Document, error) {
	return s.repo.GetDocument(ctx, hotelID, slug)
}

func (s *WikiService) List(ctx context.Context, f domain.DocumentFilter) ([]domain.Document, error) {
	return s.repo.ListDocuments(ctx, f)
}

// Update overwrites the document (last write wins) and keeps the previous
// content as a revision. The slug never changes.
func (s *WikiService) Update(ctx context.Context, hotelID int64, slug string, in DocumentInput) (domain.Document, error) {
	if err := required("title", in.Title); err != nil {
		return domain.Document{}, err
	}
	d, err := s.repo.GetDocument(ctx, hotelID, slug)
	if err != nil {
		return domain.Document{}, err
	}
	prev := domain.Revision{
		DocumentID: d.ID,
		Version:    d.Version,
		Title:      d.Title,
		Body:       d.Body,
		UpdatedBy:  d.UpdatedBy,
	}
	d.Title = strings.TrimSpace(in.Title)
	d.Category = strings.TrimSpace(in.Category)
	d.Body = in.Body
	d.UpdatedBy = in.UpdatedBy
	d.Version++
	if err := s.repo.UpdateDocument(ctx, d, prev); err != nil {
		return domain.Document{}, err
	}
	return s.repo.GetDocument(ctx, hotelID, slug)
}

func (s *WikiService) History(ctx context.Context, hotelID int64, slug string) ([]domain.Revision, error) {
	d, err := s.repo.GetDocument(ctx, hotelID, slug)
	if err != nil {
		return nil, err
	}
	return s.repo.ListRevisions(ctx, hotelID, d.ID)
}

func (s *WikiService) Delete(ctx context.Context, hotelID int64, slug string) error {
	d, err := s.repo.GetDocument(ctx, hotelID, slug)
	if err != nil {
		return err
	}
	return s.repo.DeleteDocument(ctx, hotelID, d.ID)
}
