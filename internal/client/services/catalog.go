package services

import (
	"context"
	"strings"

	"github.com/pohonku/pohonku/internal/client/models"
	"github.com/pohonku/pohonku/internal/client/search"
)

// CatalogService reads the public species catalog. No session is needed.
type CatalogService interface {
	List(ctx context.Context) (*models.SearchResult, error)
	Get(ctx context.Context, id string) (*models.Species, error)
	ByCategory(ctx context.Context, category string) (*models.SearchResult, error)
	Search(ctx context.Context, q models.SearchQuery) (*models.SearchResult, error)
	// Filter loads the full list and filters it in memory.
	Filter(ctx context.Context, q models.SearchQuery) ([]models.Species, error)
}

type catalogService struct {
	api SpeciesAPI
}

func NewCatalogService(api SpeciesAPI) CatalogService {
	return &catalogService{api: api}
}

func (s *catalogService) List(ctx context.Context) (*models.SearchResult, error) {
	return s.api.GetAllSpecies(ctx)
}

func (s *catalogService) Get(ctx context.Context, id string) (*models.Species, error) {
	env, err := s.api.GetSpeciesByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func (s *catalogService) ByCategory(ctx context.Context, category string) (*models.SearchResult, error) {
	return s.api.GetSpeciesByCategory(ctx, strings.TrimSpace(category))
}

func (s *catalogService) Search(ctx context.Context, q models.SearchQuery) (*models.SearchResult, error) {
	return s.api.SearchSpecies(ctx, q.Normalize())
}

func (s *catalogService) Filter(ctx context.Context, q models.SearchQuery) ([]models.Species, error) {
	env, err := s.api.GetAllSpecies(ctx)
	if err != nil {
		return nil, err
	}
	return search.Filter(env.Data, q), nil
}
