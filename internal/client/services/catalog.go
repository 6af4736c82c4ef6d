package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/dessertcatalog/internal/client/client"
	"github.com/dmitrijs2005/dessertcatalog/internal/client/models"
	"github.com/dmitrijs2005/dessertcatalog/internal/logging"
	"github.com/patrickmn/go-cache"
)

// CatalogService reads and edits catalog entries. The category list is
// cached for a configurable TTL and dropped on every write, since a write
// is the only way this client can change it.
type CatalogService interface {
	List(ctx context.Context, q models.DessertQuery) ([]models.Dessert, error)
	Get(ctx context.Context, id int64) (*models.Dessert, error)
	Categories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, in models.DessertInput) (*models.Dessert, error)
	Update(ctx context.Context, id int64, patch models.DessertPatch) (*models.Dessert, error)
	Delete(ctx context.Context, id int64) error
	SetActive(ctx context.Context, id int64, active bool) (*models.Dessert, error)
}

const categoriesKey = "categories"

type catalogService struct {
	client client.Client
	cache  *cache.Cache // nil when caching is disabled
	log    logging.Logger
}

// NewCatalogService returns a CatalogService whose category cache expires
// after ttl. A non-positive ttl disables caching.
func NewCatalogService(c client.Client, ttl time.Duration, log logging.Logger) CatalogService {
	s := &catalogService{client: c, log: log}
	if ttl > 0 {
		s.cache = cache.New(ttl, 2*ttl)
	}
	return s
}

func (s *catalogService) List(ctx context.Context, q models.DessertQuery) ([]models.Dessert, error) {
	out, err := s.client.ListDesserts(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list desserts: %w", err)
	}
	return out, nil
}

func (s *catalogService) Get(ctx context.Context, id int64) (*models.Dessert, error) {
	d, err := s.client.GetDessert(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get dessert %d: %w", id, err)
	}
	return d, nil
}

func (s *catalogService) Categories(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(categoriesKey); ok {
			return slices.Clone(v.([]string)), nil
		}
	}

	cats, err := s.client.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if s.cache != nil {
		s.cache.SetDefault(categoriesKey, slices.Clone(cats))
	}
	return cats, nil
}

func (s *catalogService) Create(ctx context.Context, in models.DessertInput) (*models.Dessert, error) {
	if err := models.Validate(in); err != nil {
		return nil, err
	}
	d, err := s.client.CreateDessert(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create dessert: %w", err)
	}
	s.invalidate(ctx)
	return d, nil
}

func (s *catalogService) Update(ctx context.Context, id int64, patch models.DessertPatch) (*models.Dessert, error) {
	if err := models.Validate(patch); err != nil {
		return nil, err
	}
	d, err := s.client.UpdateDessert(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update dessert %d: %w", id, err)
	}
	s.invalidate(ctx)
	return d, nil
}

func (s *catalogService) Delete(ctx context.Context, id int64) error {
	if err := s.client.DeleteDessert(ctx, id); err != nil {
		return fmt.Errorf("delete dessert %d: %w", id, err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *catalogService) SetActive(ctx context.Context, id int64, active bool) (*models.Dessert, error) {
	return s.Update(ctx, id, models.DessertPatch{IsActive: &active})
}

func (s *catalogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(categoriesKey)
	s.log.Debug(ctx, "category cache invalidated")
}
