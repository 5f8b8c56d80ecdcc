package category

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/peakbaguio/peak-baguio/internal/types"
)

// ErrEmptyName is returned when a create or update carries a blank name.
var ErrEmptyName = errors.New("category name must not be empty")

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	ListCategories(ctx context.Context) ([]types.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*types.Category, error)
	CreateCategory(ctx context.Context, name, description, imageURL string) (*types.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, name, description, imageURL string) (*types.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
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

func (s *ServiceImpl) ListCategories(ctx context.Context) ([]types.Category, error) {
	return s.repo.List(ctx)
}

func (s *ServiceImpl) GetCategory(ctx context.Context, id uuid.UUID) (*types.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ServiceImpl) CreateCategory(ctx context.Context, name, description, imageURL string) (*types.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return s.repo.Create(ctx, name, description, imageURL)
}

func (s *ServiceImpl) UpdateCategory(ctx context.Context, id uuid.UUID, name, description, imageURL string) (*types.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return s.repo.Update(ctx, id, name, description, imageURL)
}

func (s *ServiceImpl) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
