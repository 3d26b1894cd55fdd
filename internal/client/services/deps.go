package services

import (
	"context"

	"github.com/pohonku/pohonku/internal/client/models"
)

// SessionStore persists the login session. Implemented by session.Store.
type SessionStore interface {
	Set(ctx context.Context, sess models.Session) error
	Get(ctx context.Context) (*models.Session, error)
	Clear(ctx context.Context) error
	SetRedirect(ctx context.Context, path string) error
	PopRedirect(ctx context.Context) (string, error)
}

type AuthAPI interface {
	Me(ctx context.Context) (*models.Envelope[models.User], error)
	GoogleLoginURL() (string, error)
}

type SpeciesAPI interface {
	GetAllSpecies(ctx context.Context) (*models.SearchResult, error)
	GetSpeciesByID(ctx context.Context, id string) (*models.Envelope[models.Species], error)
	GetSpeciesByCategory(ctx context.Context, category string) (*models.SearchResult, error)
	SearchSpecies(ctx context.Context, q models.SearchQuery) (*models.SearchResult, error)
}

type OrdersAPI interface {
	CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Envelope[models.Order], error)
	CreatePayment(ctx context.Context, orderID string) (*models.Envelope[models.PaymentToken], error)
	GetOrder(ctx context.Context, orderID string) (*models.Envelope[models.Order], error)
}

type DashboardAPI interface {
	GetDashboard(ctx context.Context) (*models.Envelope[[]models.Adoption], error)
	GetAdoptionDetail(ctx context.Context, id string) (*models.Envelope[models.AdoptionDetail], error)
	GetStatsAdoption(ctx context.Context) (*models.Envelope[models.AdoptionStats], error)
}
