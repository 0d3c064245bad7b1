package services

import (
	"database/sql"
	"errors"
	"strings"

	"ecofinds/internal/domain"
	"ecofinds/internal/repos"

	"github.com/google/uuid"
)

var (
	ErrMissingTitle    = errors.New("title is required")
	ErrInvalidCategory = errors.New("unknown category")
	ErrNotOwner        = errors.New("not the listing owner")
	ErrNotFound        = errors.New("listing not found")
)

type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

// ListingInput carries the editable fields of a listing.
type ListingInput struct {
	Title       string
	Description string
	Category    string
	Price       float64
	ImagePath   string
}

func (in *ListingInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return ErrMissingTitle
	}
	if !domain.ValidCategory(in.Category) {
		return ErrInvalidCategory
	}
	return nil
}

func (s *CatalogService) Create(ownerID string, in ListingInput) (domain.Product, error) {
	if err := in.validate(); err != nil {
		return domain.Product{}, err
	}
	p := domain.Product{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		ImagePath:   in.ImagePath,
	}
	if err := s.Prods.Insert(&p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// Update rewrites the editable fields; only the owner may do this.
func (s *CatalogService) Update(id, ownerID string, in ListingInput) error {
	p, err := s.Get(id)
	if err != nil {
		return err
	}
	if p.OwnerID != ownerID {
		return ErrNotOwner
	}
	if err := in.validate(); err != nil {
		return err
	}
	p.Title = in.Title
	p.Description = in.Description
	p.Category = in.Category
	p.Price = in.Price
	p.ImagePath = in.ImagePath
	return s.Prods.Update(&p)
}

func (s *CatalogService) Delete(id, ownerID string) error {
	p, err := s.Get(id)
	if err != nil {
		return err
	}
	if p.OwnerID != ownerID {
		return ErrNotOwner
	}
	return s.Prods.Delete(id)
}

func (s *CatalogService) Get(id string) (domain.Product, error) {
	p, err := s.Prods.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, ErrNotFound
	}
	return p, err
}

// Search combines a case-insensitive substring match with an exact category
// filter; either may be empty. Results come back newest first.
func (s *CatalogService) Search(q, category string) ([]domain.Product, error) {
	return s.Prods.Search(strings.ToLower(strings.TrimSpace(q)), strings.TrimSpace(category))
}

func (s *CatalogService) ListMine(ownerID string) ([]domain.Product, error) {
	return s.Prods.ListByOwner(ownerID)
}
