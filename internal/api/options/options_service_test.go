package options

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

func (m *MockRepository) List(ctx context.Context, kind Kind) ([]types.Option, error) {
	args := m.Called(ctx, kind)
	if list := args.Get(0); list != nil {
		return list.([]types.Option), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, kind Kind, label string, position int) (*types.Option, error) {
	args := m.Called(ctx, kind, label, position)
	if o := args.Get(0); o != nil {
		return o.(*types.Option), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, kind Kind, id uuid.UUID, label string, position int) (*types.Option, error) {
	args := m.Called(ctx, kind, id, label, position)
	if o := args.Get(0); o != nil {
		return o.(*types.Option), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, kind Kind, id uuid.UUID) error {
	args := m.Called(ctx, kind, id)
	return args.Error(0)
}

func (m *MockRepository) HasLabel(ctx context.Context, kind Kind, label string) (bool, error) {
	args := m.Called(ctx, kind, label)
	return args.Bool(0), args.Error(1)
}

func TestCreateOption_TrimsAndRejectsEmptyLabel(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewServiceImpl(repo, slog.Default())

	_, err := svc.CreateOption(ctx, KindBudget, "   ", 1)
	assert.ErrorIs(t, err, ErrEmptyLabel)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	want := &types.Option{ID: uuid.New(), Label: "1 Day", Position: 1}
	repo.On("Create", ctx, KindDuration, "1 Day", 1).Return(want, nil)

	got, err := svc.CreateOption(ctx, KindDuration, "  1 Day  ", 1)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestHasBudgetAndDuration_DelegateToTheRightList(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewServiceImpl(repo, slog.Default())

	repo.On("HasLabel", ctx, KindBudget, "PHP 5,000 - PHP 10,000").Return(true, nil)
	repo.On("HasLabel", ctx, KindDuration, "PHP 5,000 - PHP 10,000").Return(false, nil)

	ok, err := svc.HasBudget(ctx, "PHP 5,000 - PHP 10,000")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.HasDuration(ctx, "PHP 5,000 - PHP 10,000")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKindTable_RejectsUnknownKind(t *testing.T) {
	_, err := Kind("color").table()
	assert.Error(t, err)
}
