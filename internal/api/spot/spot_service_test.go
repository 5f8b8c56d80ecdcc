package spot

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/peakbaguio/peak-baguio/internal/types"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, categoryID *uuid.UUID) ([]types.Spot, error) {
	args := m.Called(ctx, categoryID)
	if list := args.Get(0); list != nil {
		return list.([]types.Spot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*types.Spot, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*types.Spot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, params types.CreateSpotParams) (*types.Spot, error) {
	args := m.Called(ctx, params)
	if s := args.Get(0); s != nil {
		return s.(*types.Spot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id uuid.UUID, params types.UpdateSpotParams) (*types.Spot, error) {
	args := m.Called(ctx, id, params)
	if s := args.Get(0); s != nil {
		return s.(*types.Spot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) ListActivities(ctx context.Context, spotID uuid.UUID) ([]types.SpotActivity, error) {
	args := m.Called(ctx, spotID)
	if list := args.Get(0); list != nil {
		return list.([]types.SpotActivity), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) AddActivity(ctx context.Context, spotID uuid.UUID, name, description string) (*types.SpotActivity, error) {
	args := m.Called(ctx, spotID, name, description)
	if a := args.Get(0); a != nil {
		return a.(*types.SpotActivity), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) RemoveActivity(ctx context.Context, spotID, activityID uuid.UUID) error {
	args := m.Called(ctx, spotID, activityID)
	return args.Error(0)
}

func (m *MockRepository) ListDining(ctx context.Context, spotID uuid.UUID) ([]types.SpotDining, error) {
	args := m.Called(ctx, spotID)
	if list := args.Get(0); list != nil {
		return list.([]types.SpotDining), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) AddDining(ctx context.Context, spotID uuid.UUID, name, description, cuisine string) (*types.SpotDining, error) {
	args := m.Called(ctx, spotID, name, description, cuisine)
	if d := args.Get(0); d != nil {
		return d.(*types.SpotDining), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) RemoveDining(ctx context.Context, spotID, diningID uuid.UUID) error {
	args := m.Called(ctx, spotID, diningID)
	return args.Error(0)
}

func TestCreateSpot_RejectsEmptyName(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewServiceImpl(repo, slog.Default())

	_, err := svc.CreateSpot(ctx, types.CreateSpotParams{Name: "  "})

	assert.ErrorIs(t, err, ErrEmptyName)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateSpot_TrimsName(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewServiceImpl(repo, slog.Default())
	spotID := uuid.New()

	name := "  Burnham Park  "
	want := &types.Spot{ID: spotID, Name: "Burnham Park"}
	repo.On("Update", ctx, spotID, mock.MatchedBy(func(p types.UpdateSpotParams) bool {
		return p.Name != nil && *p.Name == "Burnham Park"
	})).Return(want, nil)

	got, err := svc.UpdateSpot(ctx, spotID, types.UpdateSpotParams{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, want, got)
	repo.AssertExpectations(t)
}

func TestAddActivity_EmptyNameRejected(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewServiceImpl(repo, slog.Default())

	_, err := svc.AddActivity(ctx, uuid.New(), "", "boating in the lagoon")

	assert.ErrorIs(t, err, ErrEmptyName)
	repo.AssertNotCalled(t, "AddActivity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
