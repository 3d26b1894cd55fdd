package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/pohonku/pohonku/internal/client/client"
	"github.com/pohonku/pohonku/internal/client/models"
	"github.com/pohonku/pohonku/internal/client/session"
)

// ---- helpers ----

func setupStore(t *testing.T) *session.Store {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return session.NewStore(db)
}

func loggedIn(t *testing.T, store *session.Store) {
	t.Helper()
	require.NoError(t, store.Set(context.Background(), models.Session{AccessToken: "access-1", RefreshToken: "refresh-1"}))
}

// tokenFrom returns the access token attached to ctx, or "".
func tokenFrom(ctx context.Context) string {
	if s, ok := client.SessionFrom(ctx); ok && s != nil {
		return s.AccessToken
	}
	return ""
}

var unauthorized = &client.HTTPError{Status: 401, StatusText: "Unauthorized", Message: "Token expired"}

// ---- fake auth API ----

type fakeAuthAPI struct {
	MeRet *models.Envelope[models.User]
	MeErr error

	LoginURL    string
	LoginURLErr error

	MeCalls   int
	LastToken string
}

func (f *fakeAuthAPI) Me(ctx context.Context) (*models.Envelope[models.User], error) {
	f.MeCalls++
	f.LastToken = tokenFrom(ctx)
	return f.MeRet, f.MeErr
}

func (f *fakeAuthAPI) GoogleLoginURL() (string, error) {
	return f.LoginURL, f.LoginURLErr
}

// ---- fake species API ----

type fakeSpeciesAPI struct {
	All       []models.Species
	Err       error
	LastQuery models.SearchQuery
	LastID    string
	LastCat   string
}

func (f *fakeSpeciesAPI) result(data []models.Species) (*models.SearchResult, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	n := len(data)
	return &models.SearchResult{Success: true, Data: data, Count: &n}, nil
}

func (f *fakeSpeciesAPI) GetAllSpecies(ctx context.Context) (*models.SearchResult, error) {
	return f.result(f.All)
}

func (f *fakeSpeciesAPI) GetSpeciesByID(ctx context.Context, id string) (*models.Envelope[models.Species], error) {
	f.LastID = id
	if f.Err != nil {
		return nil, f.Err
	}
	for _, s := range f.All {
		if s.ID == id {
			return &models.Envelope[models.Species]{Success: true, Data: s}, nil
		}
	}
	return nil, &client.HTTPError{Status: 404, StatusText: "Not Found", Message: "Species not found"}
}

func (f *fakeSpeciesAPI) GetSpeciesByCategory(ctx context.Context, category string) (*models.SearchResult, error) {
	f.LastCat = category
	return f.result(f.All)
}

func (f *fakeSpeciesAPI) SearchSpecies(ctx context.Context, q models.SearchQuery) (*models.SearchResult, error) {
	f.LastQuery = q
	return f.result(f.All)
}

// ---- fake orders API ----

type fakeOrdersAPI struct {
	mu sync.Mutex

	Order    models.Order
	OrderErr error
	Token    models.PaymentToken
	TokenErr error
	Status   string

	Calls        []string
	LastRequest  models.CreateOrderRequest
	LastOrderKey string
	Tokens       []string
}

func (f *fakeOrdersAPI) record(ctx context.Context, call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, call)
	f.Tokens = append(f.Tokens, tokenFrom(ctx))
}

func (f *fakeOrdersAPI) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Envelope[models.Order], error) {
	f.record(ctx, "CreateOrder")
	f.LastRequest = req
	if f.OrderErr != nil {
		return nil, f.OrderErr
	}
	return &models.Envelope[models.Order]{Success: true, Data: f.Order}, nil
}

func (f *fakeOrdersAPI) CreatePayment(ctx context.Context, orderID string) (*models.Envelope[models.PaymentToken], error) {
	f.record(ctx, "CreatePayment")
	f.LastOrderKey = orderID
	if f.TokenErr != nil {
		return nil, f.TokenErr
	}
	return &models.Envelope[models.PaymentToken]{Success: true, Data: f.Token}, nil
}

func (f *fakeOrdersAPI) GetOrder(ctx context.Context, orderID string) (*models.Envelope[models.Order], error) {
	f.record(ctx, "GetOrder")
	o := f.Order
	o.PaymentStatus = f.Status
	return &models.Envelope[models.Order]{Success: true, Data: o}, nil
}

func (f *fakeOrdersAPI) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Calls...)
}

// ---- fake dashboard API ----

type fakeDashboardAPI struct {
	Adoptions    []models.Adoption
	AdoptionsErr error
	Stats        models.AdoptionStats
	StatsErr     error
	Detail       models.AdoptionDetail
	DetailErr    error

	LastDetailID string
}

func (f *fakeDashboardAPI) GetDashboard(ctx context.Context) (*models.Envelope[[]models.Adoption], error) {
	if tokenFrom(ctx) == "" {
		return nil, unauthorized
	}
	if f.AdoptionsErr != nil {
		return nil, f.AdoptionsErr
	}
	return &models.Envelope[[]models.Adoption]{Success: true, Data: f.Adoptions}, nil
}

func (f *fakeDashboardAPI) GetAdoptionDetail(ctx context.Context, id string) (*models.Envelope[models.AdoptionDetail], error) {
	f.LastDetailID = id
	if f.DetailErr != nil {
		return nil, f.DetailErr
	}
	return &models.Envelope[models.AdoptionDetail]{Success: true, Data: f.Detail}, nil
}

func (f *fakeDashboardAPI) GetStatsAdoption(ctx context.Context) (*models.Envelope[models.AdoptionStats], error) {
	if f.StatsErr != nil {
		return nil, f.StatsErr
	}
	return &models.Envelope[models.AdoptionStats]{Success: true, Data: f.Stats}, nil
}
