package report

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/peakbaguio/peak-baguio/internal/types"
)

// defaultMonths is the window of the generations-per-month series.
const defaultMonths = 12

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	UsageReport(ctx context.Context) (*types.UsageReport, error)
}

type ServiceImpl struct {
	repo   Repository
	logger *slog.Logger
}

func NewServiceImpl(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

// UsageReport runs the aggregate queries concurrently and assembles the
// dashboard payload. Any failing query fails the whole report.
func (s *ServiceImpl) UsageReport(ctx context.Context) (*types.UsageReport, error) {
	var report types.UsageReport

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.repo.GenerationsPerMonth(gctx, defaultMonths)
		if err != nil {
			return err
		}
		if list == nil {
			list = []types.MonthlyCount{}
		}
		report.GenerationsPerMonth = list
		return nil
	})
	g.Go(func() error {
		fb, err := s.repo.FeedbackBreakdown(gctx)
		if err != nil {
			return err
		}
		report.Feedback = fb
		return nil
	})
	g.Go(func() error {
		n, err := s.repo.PlannedCount(gctx)
		if err != nil {
			return err
		}
		report.PlannedCount = n
		return nil
	})
	g.Go(func() error {
		n, err := s.repo.UsedCount(gctx)
		if err != nil {
			return err
		}
		report.UsedCount = n
		return nil
	})
	g.Go(func() error {
		list, err := s.repo.SpotsPerCategory(gctx)
		if err != nil {
			return err
		}
		if list == nil {
			list = []types.CategorySpotCount{}
		}
		report.SpotsPerCategory = list
		return nil
	})
	g.Go(func() error {
		n, err := s.repo.TotalUsers(gctx)
		if err != nil {
			return err
		}
		report.TotalUsers = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &report, nil
}
