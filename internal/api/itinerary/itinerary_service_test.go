package itinerary

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/peakbaguio/peak-baguio/config"
	"github.com/peakbaguio/peak-baguio/internal/types"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, it *types.Itinerary) (uuid.UUID, error) {
	args := m.Called(ctx, it)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, userID, itineraryID uuid.UUID) (*types.Itinerary, error) {
	args := m.Called(ctx, userID, itineraryID)
	if it := args.Get(0); it != nil {
		return it.(*types.Itinerary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]types.Itinerary, error) {
	args := m.Called(ctx, userID)
	if list := args.Get(0); list != nil {
		return list.([]types.Itinerary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) MarkPlanned(ctx context.Context, userID, itineraryID uuid.UUID, feedback string) error {
	args := m.Called(ctx, userID, itineraryID, feedback)
	return args.Error(0)
}

func (m *MockRepository) MarkUsed(ctx context.Context, userID, itineraryID uuid.UUID) error {
	args := m.Called(ctx, userID, itineraryID)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, userID, itineraryID uuid.UUID) error {
	args := m.Called(ctx, userID, itineraryID)
	return args.Error(0)
}

type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Geocode(ctx context.Context, name string) (float64, float64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(float64), args.Get(1).(float64), args.Error(2)
}

type MockOptionSource struct {
	mock.Mock
}

func (m *MockOptionSource) HasBudget(ctx context.Context, label string) (bool, error) {
	args := m.Called(ctx, label)
	return args.Bool(0), args.Error(1)
}

func (m *MockOptionSource) HasDuration(ctx context.Context, label string) (bool, error) {
	args := m.Called(ctx, label)
	return args.Bool(0), args.Error(1)
}

type serviceMocks struct {
	repo       *MockRepository
	completion *MockCompletionClient
	geocoder   *MockGeocoder
	options    *MockOptionSource
}

func newTestService(t *testing.T) (*ServiceImpl, *serviceMocks) {
	t.Helper()
	m := &serviceMocks{
		repo:       new(MockRepository),
		completion: new(MockCompletionClient),
		geocoder:   new(MockGeocoder),
		options:    new(MockOptionSource),
	}
	geoCfg := config.GeocodingConfig{CityQualifier: testCityQualifier}
	svc := NewServiceImpl(m.repo, m.completion, m.geocoder, m.options, geoCfg, nil, slog.Default())
	return svc, m
}

func validRequest() types.ItineraryRequest {
	return types.ItineraryRequest{
		Budget:   "PHP 5,000 - PHP 10,000",
		Duration: "2 Days 1 Night",
	}
}

func TestGenerate_Success(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestService(t)
	userID := uuid.New()
	itineraryID := uuid.New()

	m.options.On("HasBudget", ctx, "PHP 5,000 - PHP 10,000").Return(true, nil)
	m.options.On("HasDuration", ctx, "2 Days 1 Night").Return(true, nil)

	completion := "**Day 1** start at **Burnham Park** then **Mines View Park**"
	m.completion.On("Complete", ctx, mock.AnythingOfType("string")).Return(completion, nil)
	m.geocoder.On("Geocode", ctx, "Burnham Park").Return(16.41, 120.59, nil)
	m.geocoder.On("Geocode", ctx, "Mines View Park").Return(16.42, 120.63, nil)

	m.repo.On("Create", ctx, mock.MatchedBy(func(it *types.Itinerary) bool {
		return it.UserID == userID &&
			len(it.Coordinates) == 2 &&
			it.Coordinates[0].Name == "Burnham Park" &&
			it.Coordinates[1].Name == "Mines View Park"
	})).Return(itineraryID, nil)
	saved := &types.Itinerary{ID: itineraryID, UserID: userID}
	m.repo.On("GetByID", ctx, userID, itineraryID).Return(saved, nil)

	got, err := svc.Generate(ctx, userID, validRequest())

	require.NoError(t, err)
	assert.Equal(t, saved, got)
	m.repo.AssertExpectations(t)
	m.completion.AssertExpectations(t)
	m.geocoder.AssertExpectations(t)
	m.options.AssertExpectations(t)
}

func TestGenerate_AnnotatesTravelBetweenGeocodedNeighbors(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestService(t)
	userID := uuid.New()
	itineraryID := uuid.New()

	m.options.On("HasBudget", ctx, mock.Anything).Return(true, nil)
	m.options.On("HasDuration", ctx, mock.Anything).Return(true, nil)

	completion := "**Day 1** see **Burnham Park**, **Lost Cafe**, **Camp John Hay**"
	m.completion.On("Complete", ctx, mock.Anything).Return(completion, nil)
	m.geocoder.On("Geocode", ctx, "Burnham Park").Return(16.41, 120.59, nil)
	m.geocoder.On("Geocode", ctx, "Lost Cafe").Return(0.0, 0.0, types.ErrPlaceNotFound)
	m.geocoder.On("Geocode", ctx, "Camp John Hay").Return(16.39, 120.61, nil)

	var created *types.Itinerary
	m.repo.On("Create", ctx, mock.AnythingOfType("*types.Itinerary")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*types.Itinerary) }).
		Return(itineraryID, nil)
	m.repo.On("GetByID", ctx, userID, itineraryID).Return(&types.Itinerary{ID: itineraryID}, nil)

	_, err := svc.Generate(ctx, userID, validRequest())

	require.NoError(t, err)
	require.NotNil(t, created)
	// The place that failed to geocode is dropped and its neighbors paired.
	assert.Len(t, created.Coordinates, 2)
	assert.Contains(t, created.Itinerary, "Travel from **Burnham Park** to **Camp John Hay**.")
	assert.NotContains(t, created.Itinerary, "Lost Cafe**, Baguio")
}

func TestGenerate_CompletionFailureAbortsWithoutPersisting(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestService(t)

	m.options.On("HasBudget", ctx, mock.Anything).Return(true, nil)
	m.options.On("HasDuration", ctx, mock.Anything).Return(true, nil)
	m.completion.On("Complete", ctx, mock.Anything).Return("", types.ErrEmptyCompletion)

	_, err := svc.Generate(ctx, uuid.New(), validRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrEmptyCompletion)
	m.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGenerate_UnknownBudgetRejected(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestService(t)

	m.options.On("HasBudget", ctx, "free").Return(false, nil)

	req := validRequest()
	req.Budget = "free"
	_, err := svc.Generate(ctx, uuid.New(), req)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownOption)
	m.completion.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestGenerate_AllGeocodesFailingStillPersists(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestService(t)
	userID := uuid.New()
	itineraryID := uuid.New()

	m.options.On("HasBudget", ctx, mock.Anything).Return(true, nil)
	m.options.On("HasDuration", ctx, mock.Anything).Return(true, nil)

	completion := "**Day 1** see **Burnham Park**"
	m.completion.On("Complete", ctx, mock.Anything).Return(completion, nil)
	m.geocoder.On("Geocode", ctx, "Burnham Park").Return(0.0, 0.0, errors.New("boom"))

	m.repo.On("Create", ctx, mock.MatchedBy(func(it *types.Itinerary) bool {
		return len(it.Coordinates) == 0 && it.Itinerary == completion
	})).Return(itineraryID, nil)
	m.repo.On("GetByID", ctx, userID, itineraryID).Return(&types.Itinerary{ID: itineraryID}, nil)

	_, err := svc.Generate(ctx, userID, validRequest())

	require.NoError(t, err)
	m.repo.AssertExpectations(t)
}

func TestPlanItinerary_FeedbackValidation(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestService(t)
	userID := uuid.New()
	itineraryID := uuid.New()

	err := svc.PlanItinerary(ctx, userID, itineraryID, "meh")
	assert.ErrorIs(t, err, ErrInvalidFeedback)
	m.repo.AssertNotCalled(t, "MarkPlanned", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	m.repo.On("MarkPlanned", ctx, userID, itineraryID, types.FeedbackLiked).Return(nil)
	require.NoError(t, svc.PlanItinerary(ctx, userID, itineraryID, types.FeedbackLiked))

	m.repo.On("MarkPlanned", ctx, userID, itineraryID, "").Return(nil)
	require.NoError(t, svc.PlanItinerary(ctx, userID, itineraryID, ""))
}

func TestDeleteItinerary_PlannedRejected(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestService(t)
	userID := uuid.New()
	itineraryID := uuid.New()

	m.repo.On("Delete", ctx, userID, itineraryID).Return(types.ErrItineraryPlanned)

	err := svc.DeleteItinerary(ctx, userID, itineraryID)
	assert.ErrorIs(t, err, types.ErrItineraryPlanned)
}
