package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/pohonku/pohonku/internal/client/models"
	"github.com/pohonku/pohonku/internal/logging"
)

// Overview is what the dashboard shows: the user's adoptions and totals.
type Overview struct {
	Adoptions []models.Adoption
	Stats     models.AdoptionStats
}

type DashboardService interface {
	Overview(ctx context.Context) (*Overview, error)
	Detail(ctx context.Context, adoptionID string) (*models.AdoptionDetail, error)
}

type dashboardService struct {
	*guard
	api DashboardAPI
}

func NewDashboardService(api DashboardAPI, store SessionStore, log logging.Logger) DashboardService {
	return &dashboardService{guard: newGuard(store, log), api: api}
}

// Overview loads adoptions and stats concurrently. Either failure fails the
// whole call.
func (s *dashboardService) Overview(ctx context.Context) (*Overview, error) {
	ctx, err := s.authorize(ctx)
	if err != nil {
		return nil, err
	}

	var out Overview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		env, err := s.api.GetDashboard(gctx)
		if err != nil {
			return err
		}
		out.Adoptions = env.Data
		return nil
	})
	g.Go(func() error {
		env, err := s.api.GetStatsAdoption(gctx)
		if err != nil {
			return err
		}
		out.Stats = env.Data
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, s.check(ctx, err)
	}

	if out.Adoptions == nil {
		out.Adoptions = []models.Adoption{}
	}
	return &out, nil
}

func (s *dashboardService) Detail(ctx context.Context, adoptionID string) (*models.AdoptionDetail, error) {
	ctx, err := s.authorize(ctx)
	if err != nil {
		return nil, err
	}
	env, err := s.api.GetAdoptionDetail(ctx, adoptionID)
	if err != nil {
		return nil, s.check(ctx, err)
	}
	return &env.Data, nil
}
