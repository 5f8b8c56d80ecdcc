package report

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/peakbaguio/peak-baguio/internal/types"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GenerationsPerMonth(ctx context.Context, months int) ([]types.MonthlyCount, error) {
	args := m.Called(ctx, months)
	if list := args.Get(0); list != nil {
		return list.([]types.MonthlyCount), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) FeedbackBreakdown(ctx context.Context) (types.FeedbackBreakdown, error) {
	args := m.Called(ctx)
	return args.Get(0).(types.FeedbackBreakdown), args.Error(1)
}

func (m *MockRepository) PlannedCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) UsedCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) SpotsPerCategory(ctx context.Context) ([]types.CategorySpotCount, error) {
	args := m.Called(ctx)
	if list := args.Get(0); list != nil {
		return list.([]types.CategorySpotCount), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) TotalUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestUsageReport_AssemblesAllFigures(t *testing.T) {
	repo := new(MockRepository)
	svc := NewServiceImpl(repo, slog.Default())

	repo.On("GenerationsPerMonth", mock.Anything, defaultMonths).
		Return([]types.MonthlyCount{{Month: "2026-08", Count: 42}}, nil)
	repo.On("FeedbackBreakdown", mock.Anything).
		Return(types.FeedbackBreakdown{Liked: 10, Disliked: 2, None: 5}, nil)
	repo.On("PlannedCount", mock.Anything).Return(int64(17), nil)
	repo.On("UsedCount", mock.Anything).Return(int64(9), nil)
	repo.On("SpotsPerCategory", mock.Anything).
		Return([]types.CategorySpotCount{{Category: "Nature", Count: 12}}, nil)
	repo.On("TotalUsers", mock.Anything).Return(int64(120), nil)

	report, err := svc.UsageReport(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(17), report.PlannedCount)
	assert.Equal(t, int64(9), report.UsedCount)
	assert.Equal(t, int64(120), report.TotalUsers)
	assert.Equal(t, int64(10), report.Feedback.Liked)
	require.Len(t, report.GenerationsPerMonth, 1)
	assert.Equal(t, "2026-08", report.GenerationsPerMonth[0].Month)
	repo.AssertExpectations(t)
}

func TestUsageReport_FailingQueryFailsReport(t *testing.T) {
	repo := new(MockRepository)
	svc := NewServiceImpl(repo, slog.Default())

	boom := errors.New("connection reset")
	repo.On("GenerationsPerMonth", mock.Anything, defaultMonths).Return(nil, boom)
	repo.On("FeedbackBreakdown", mock.Anything).Return(types.FeedbackBreakdown{}, nil).Maybe()
	repo.On("PlannedCount", mock.Anything).Return(int64(0), nil).Maybe()
	repo.On("UsedCount", mock.Anything).Return(int64(0), nil).Maybe()
	repo.On("SpotsPerCategory", mock.Anything).Return(nil, nil).Maybe()
	repo.On("TotalUsers", mock.Anything).Return(int64(0), nil).Maybe()

	_, err := svc.UsageReport(context.Background())

	assert.ErrorIs(t, err, boom)
}

func TestUsageReport_EmptySeriesComeBackAsEmptySlices(t *testing.T) {
	repo := new(MockRepository)
	svc := NewServiceImpl(repo, slog.Default())

	repo.On("GenerationsPerMonth", mock.Anything, defaultMonths).Return(nil, nil)
	repo.On("FeedbackBreakdown", mock.Anything).Return(types.FeedbackBreakdown{}, nil)
	repo.On("PlannedCount", mock.Anything).Return(int64(0), nil)
	repo.On("UsedCount", mock.Anything).Return(int64(0), nil)
	repo.On("SpotsPerCategory", mock.Anything).Return(nil, nil)
	repo.On("TotalUsers", mock.Anything).Return(int64(0), nil)

	report, err := svc.UsageReport(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, report.GenerationsPerMonth)
	assert.Empty(t, report.GenerationsPerMonth)
	assert.NotNil(t, report.SpotsPerCategory)
}
