package spot

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/peakbaguio/peak-baguio/internal/types"
)

// ErrEmptyName is returned when a spot, activity or dining entry is created
// or renamed with a blank name.
var ErrEmptyName = errors.New("name must not be empty")

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	ListSpots(ctx context.Context, categoryID *uuid.UUID) ([]types.Spot, error)
	GetSpot(ctx context.Context, id uuid.UUID) (*types.Spot, error)
	CreateSpot(ctx context.Context, params types.CreateSpotParams) (*types.Spot, error)
	UpdateSpot(ctx context.Context, id uuid.UUID, params types.UpdateSpotParams) (*types.Spot, error)
	DeleteSpot(ctx context.Context, id uuid.UUID) error

	ListActivities(ctx context.Context, spotID uuid.UUID) ([]types.SpotActivity, error)
	AddActivity(ctx context.Context, spotID uuid.UUID, name, description string) (*types.SpotActivity, error)
	RemoveActivity(ctx context.Context, spotID, activityID uuid.UUID) error

	ListDining(ctx context.Context, spotID uuid.UUID) ([]types.SpotDining, error)
	AddDining(ctx context.Context, spotID uuid.UUID, name, description, cuisine string) (*types.SpotDining, error)
	RemoveDining(ctx context.Context, spotID, diningID uuid.UUID) error
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

func (s *ServiceImpl) ListSpots(ctx context.Context, categoryID *uuid.UUID) ([]types.Spot, error) {
	return s.repo.List(ctx, categoryID)
}

func (s *ServiceImpl) GetSpot(ctx context.Context, id uuid.UUID) (*types.Spot, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ServiceImpl) CreateSpot(ctx context.Context, params types.CreateSpotParams) (*types.Spot, error) {
	params.Name = strings.TrimSpace(params.Name)
	if params.Name == "" {
		return nil, ErrEmptyName
	}
	return s.repo.Create(ctx, params)
}

func (s *ServiceImpl) UpdateSpot(ctx context.Context, id uuid.UUID, params types.UpdateSpotParams) (*types.Spot, error) {
	if params.Name != nil {
		trimmed := strings.TrimSpace(*params.Name)
		if trimmed == "" {
			return nil, ErrEmptyName
		}
		params.Name = &trimmed
	}
	return s.repo.Update(ctx, id, params)
}

func (s *ServiceImpl) DeleteSpot(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *ServiceImpl) ListActivities(ctx context.Context, spotID uuid.UUID) ([]types.SpotActivity, error) {
	return s.repo.ListActivities(ctx, spotID)
}

func (s *ServiceImpl) AddActivity(ctx context.Context, spotID uuid.UUID, name, description string) (*types.SpotActivity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return s.repo.AddActivity(ctx, spotID, name, description)
}

func (s *ServiceImpl) RemoveActivity(ctx context.Context, spotID, activityID uuid.UUID) error {
	return s.repo.RemoveActivity(ctx, spotID, activityID)
}

func (s *ServiceImpl) ListDining(ctx context.Context, spotID uuid.UUID) ([]types.SpotDining, error) {
	return s.repo.ListDining(ctx, spotID)
}

func (s *ServiceImpl) AddDining(ctx context.Context, spotID uuid.UUID, name, description, cuisine string) (*types.SpotDining, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return s.repo.AddDining(ctx, spotID, name, description, cuisine)
}

func (s *ServiceImpl) RemoveDining(ctx context.Context, spotID, diningID uuid.UUID) error {
	return s.repo.RemoveDining(ctx, spotID, diningID)
}
