package options

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/peakbaguio/peak-baguio/internal/types"
)

// ErrEmptyLabel is returned when a create or update carries a blank label.
var ErrEmptyLabel = errors.New("option label must not be empty")

var _ Service = (*ServiceImpl)(nil)

// Service manages the budget and duration option lists and answers
// membership checks for itinerary validation.
type Service interface {
	ListOptions(ctx context.Context, kind Kind) ([]types.Option, error)
	CreateOption(ctx context.Context, kind Kind, label string, position int) (*types.Option, error)
	UpdateOption(ctx context.Context, kind Kind, id uuid.UUID, label string, position int) (*types.Option, error)
	DeleteOption(ctx context.Context, kind Kind, id uuid.UUID) error
	HasBudget(ctx context.Context, label string) (bool, error)
	HasDuration(ctx context.Context, label string) (bool, error)
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

func (s *ServiceImpl) ListOptions(ctx context.Context, kind Kind) ([]types.Option, error) {
	return s.repo.List(ctx, kind)
}

func (s *ServiceImpl) CreateOption(ctx context.Context, kind Kind, label string, position int) (*types.Option, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, ErrEmptyLabel
	}
	return s.repo.Create(ctx, kind, label, position)
}

func (s *ServiceImpl) UpdateOption(ctx context.Context, kind Kind, id uuid.UUID, label string, position int) (*types.Option, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, ErrEmptyLabel
	}
	return s.repo.Update(ctx, kind, id, label, position)
}

func (s *ServiceImpl) DeleteOption(ctx context.Context, kind Kind, id uuid.UUID) error {
	return s.repo.Delete(ctx, kind, id)
}

func (s *ServiceImpl) HasBudget(ctx context.Context, label string) (bool, error) {
	return s.repo.HasLabel(ctx, KindBudget, label)
}

func (s *ServiceImpl) HasDuration(ctx context.Context, label string) (bool, error) {
	return s.repo.HasLabel(ctx, KindDuration, label)
}
