package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pohonku/pohonku/internal/client/models"
	"github.com/pohonku/pohonku/internal/common"
	"github.com/pohonku/pohonku/internal/logging"
)

// Client groups the resource clients that share one APIClient.
type Client struct {
	API       *APIClient
	Species   *SpeciesClient
	Dashboard *DashboardClient
	Orders    *OrdersClient
	Auth      *AuthClient
}

func New(api *APIClient) *Client {
	return &Client{
		API:       api,
		Species:   &SpeciesClient{api: api},
		Dashboard: &DashboardClient{api: api},
		Orders:    &OrdersClient{api: api},
		Auth:      &AuthClient{api: api},
	}
}

func path(parts ...string) string {
	p := common.APIPrefix
	for i, part := range parts {
		if i == 0 {
			p += part
			continue
		}
		p += "/" + url.PathEscape(part)
	}
	return p
}

func warnCountMismatch[E any](ctx context.Context, log logging.Logger, endpoint string, env *models.Envelope[[]E]) {
	if models.CountMismatch(env) {
		log.Warn(ctx, "response count mismatch", "endpoint", endpoint, "count", *env.Count, "len", len(env.Data))
	}
}

// SpeciesClient covers /trees/species. All routes are public.
type SpeciesClient struct {
	api *APIClient
}

func (c *SpeciesClient) GetAllSpecies(ctx context.Context) (*models.SearchResult, error) {
	return c.SearchSpecies(ctx, models.SearchQuery{})
}

func (c *SpeciesClient) GetSpeciesByID(ctx context.Context, id string) (*models.Envelope[models.Species], error) {
	return Do[models.Species](ctx, c.api, path("/trees/species", id), RequestOptions{})
}

func (c *SpeciesClient) GetSpeciesByCategory(ctx context.Context, category string) (*models.SearchResult, error) {
	endpoint := path("/trees/species/category", category)
	env, err := Do[[]models.Species](ctx, c.api, endpoint, RequestOptions{})
	if err != nil {
		return nil, err
	}
	warnCountMismatch(ctx, c.api.log, endpoint, env)
	return env, nil
}

// SearchSpecies lists species matching q. Empty fields are left out of the
// query string, so an empty q requests exactly the same URL as GetAllSpecies.
func (c *SpeciesClient) SearchSpecies(ctx context.Context, q models.SearchQuery) (*models.SearchResult, error) {
	endpoint := path("/trees/species")
	if qs := q.Encode(); qs != "" {
		endpoint += "?" + qs
	}
	env, err := Do[[]models.Species](ctx, c.api, endpoint, RequestOptions{})
	if err != nil {
		return nil, err
	}
	warnCountMismatch(ctx, c.api.log, endpoint, env)
	return env, nil
}

// DashboardClient covers /adoptions. Requires a session.
type DashboardClient struct {
	api *APIClient
}

func (c *DashboardClient) GetDashboard(ctx context.Context) (*models.Envelope[[]models.Adoption], error) {
	endpoint := path("/adoptions")
	env, err := Do[[]models.Adoption](ctx, c.api, endpoint, RequestOptions{})
	if err != nil {
		return nil, err
	}
	warnCountMismatch(ctx, c.api.log, endpoint, env)
	return env, nil
}

func (c *DashboardClient) GetAdoptionDetail(ctx context.Context, id string) (*models.Envelope[models.AdoptionDetail], error) {
	return Do[models.AdoptionDetail](ctx, c.api, path("/adoptions", id), RequestOptions{})
}

func (c *DashboardClient) GetStatsAdoption(ctx context.Context) (*models.Envelope[models.AdoptionStats], error) {
	return Do[models.AdoptionStats](ctx, c.api, path("/adoptions/stats"), RequestOptions{})
}

// OrdersClient covers /orders. Requires a session.
type OrdersClient struct {
	api *APIClient
}

func (c *OrdersClient) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Envelope[models.Order], error) {
	return Do[models.Order](ctx, c.api, path("/orders"), RequestOptions{Method: http.MethodPost, Body: req})
}

func (c *OrdersClient) CreatePayment(ctx context.Context, orderID string) (*models.Envelope[models.PaymentToken], error) {
	return Do[models.PaymentToken](ctx, c.api, path("/orders", orderID, "payment"), RequestOptions{Method: http.MethodPost})
}

func (c *OrdersClient) GetOrder(ctx context.Context, orderID string) (*models.Envelope[models.Order], error) {
	return Do[models.Order](ctx, c.api, path("/orders", orderID), RequestOptions{})
}

// AuthClient covers /auth.
type AuthClient struct {
	api *APIClient
}

func (c *AuthClient) Me(ctx context.Context) (*models.Envelope[models.User], error) {
	return Do[models.User](ctx, c.api, path("/auth/me"), RequestOptions{})
}

// GoogleLoginURL is the browser entry point of the Google OAuth flow.
func (c *AuthClient) GoogleLoginURL() (string, error) {
	return c.api.URL(path("/auth/google"))
}
