package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/peakbaguio/peak-baguio/app/observability/metrics"
	"github.com/peakbaguio/peak-baguio/config"
	"github.com/peakbaguio/peak-baguio/internal/types"
)

// ErrUnknownOption is returned when a request carries a budget or duration
// label that is not in the configured option lists.
var ErrUnknownOption = errors.New("unknown budget or duration option")

// ErrInvalidFeedback is returned when a plan request carries a feedback value
// other than liked, disliked, or empty.
var ErrInvalidFeedback = errors.New("invalid feedback value")

var _ Service = (*ServiceImpl)(nil)

// OptionSource answers whether a budget or duration label is offered.
type OptionSource interface {
	HasBudget(ctx context.Context, label string) (bool, error)
	HasDuration(ctx context.Context, label string) (bool, error)
}

// Service defines the itinerary generation and lifecycle operations.
type Service interface {
	Generate(ctx context.Context, userID uuid.UUID, req types.ItineraryRequest) (*types.Itinerary, error)
	GetItinerary(ctx context.Context, userID, itineraryID uuid.UUID) (*types.Itinerary, error)
	ListItineraries(ctx context.Context, userID uuid.UUID) ([]types.Itinerary, error)
	PlanItinerary(ctx context.Context, userID, itineraryID uuid.UUID, feedback string) error
	MarkItineraryUsed(ctx context.Context, userID, itineraryID uuid.UUID) error
	DeleteItinerary(ctx context.Context, userID, itineraryID uuid.UUID) error
}

// ServiceImpl runs the generation pipeline and delegates persistence to the
// repository.
type ServiceImpl struct {
	repo       Repository
	completion CompletionClient
	geocoder   Geocoder
	options    OptionSource
	geoCfg     config.GeocodingConfig
	metrics    *metrics.AppMetrics
	logger     *slog.Logger
}

func NewServiceImpl(
	repo Repository,
	completion CompletionClient,
	geocoder Geocoder,
	options OptionSource,
	geoCfg config.GeocodingConfig,
	appMetrics *metrics.AppMetrics,
	logger *slog.Logger,
) *ServiceImpl {
	return &ServiceImpl{
		repo:       repo,
		completion: completion,
		geocoder:   geocoder,
		options:    options,
		geoCfg:     geoCfg,
		metrics:    appMetrics,
		logger:     logger,
	}
}

// Generate builds the prompt, obtains a completion, extracts and geocodes the
// mentioned places, appends travel directions, and persists the result.
func (s *ServiceImpl) Generate(ctx context.Context, userID uuid.UUID, req types.ItineraryRequest) (*types.Itinerary, error) {
	l := s.logger.With(slog.String("method", "Generate"), slog.String("userID", userID.String()))
	start := time.Now()

	if err := s.validateOptions(ctx, req); err != nil {
		return nil, err
	}

	prompt := buildPrompt(req)

	completionStart := time.Now()
	text, err := s.completion.Complete(ctx, prompt)
	if s.metrics != nil {
		s.metrics.CompletionDurationSeconds.Record(ctx, time.Since(completionStart).Seconds())
	}
	if err != nil {
		if s.metrics != nil {
			s.metrics.GenerationFailuresTotal.Add(ctx, 1)
		}
		l.ErrorContext(ctx, "Completion request failed", slog.Any("error", err))
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	places := extractPlaces(text)
	geocoded := make([]types.GeocodedPlace, 0, len(places))
	for _, name := range places {
		lat, lng, err := s.geocoder.Geocode(ctx, name)
		if err != nil {
			if s.metrics != nil {
				s.metrics.GeocodeFailuresTotal.Add(ctx, 1)
			}
			l.WarnContext(ctx, "Skipping place that failed to geocode",
				slog.String("place", name), slog.Any("error", err))
			continue
		}
		geocoded = append(geocoded, types.GeocodedPlace{Name: name, Latitude: lat, Longitude: lng})
	}

	annotated := annotateRoutes(text, geocoded, s.geoCfg.CityQualifier)

	it := &types.Itinerary{
		UserID:      userID,
		Itinerary:   annotated,
		Coordinates: geocoded,
		Request:     req,
	}
	id, err := s.repo.Create(ctx, it)
	if err != nil {
		if s.metrics != nil {
			s.metrics.GenerationFailuresTotal.Add(ctx, 1)
		}
		return nil, fmt.Errorf("failed to persist itinerary: %w", err)
	}

	saved, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load saved itinerary: %w", err)
	}

	if s.metrics != nil {
		s.metrics.GenerationsTotal.Add(ctx, 1)
		s.metrics.GenerationDurationSeconds.Record(ctx, time.Since(start).Seconds())
	}
	l.InfoContext(ctx, "Itinerary generated",
		slog.String("itineraryID", id.String()),
		slog.Int("placesExtracted", len(places)),
		slog.Int("placesGeocoded", len(geocoded)))
	return saved, nil
}

func (s *ServiceImpl) validateOptions(ctx context.Context, req types.ItineraryRequest) error {
	ok, err := s.options.HasBudget(ctx, req.Budget)
	if err != nil {
		return fmt.Errorf("failed to validate budget option: %w", err)
	}
	if !ok {
		return fmt.Errorf("budget %q: %w", req.Budget, ErrUnknownOption)
	}
	ok, err = s.options.HasDuration(ctx, req.Duration)
	if err != nil {
		return fmt.Errorf("failed to validate duration option: %w", err)
	}
	if !ok {
		return fmt.Errorf("duration %q: %w", req.Duration, ErrUnknownOption)
	}
	return nil
}

func (s *ServiceImpl) GetItinerary(ctx context.Context, userID, itineraryID uuid.UUID) (*types.Itinerary, error) {
	return s.repo.GetByID(ctx, userID, itineraryID)
}

func (s *ServiceImpl) ListItineraries(ctx context.Context, userID uuid.UUID) ([]types.Itinerary, error) {
	return s.repo.ListByUser(ctx, userID)
}

// PlanItinerary marks an itinerary as planned, recording optional feedback.
func (s *ServiceImpl) PlanItinerary(ctx context.Context, userID, itineraryID uuid.UUID, feedback string) error {
	switch feedback {
	case "", types.FeedbackLiked, types.FeedbackDisliked:
	default:
		return fmt.Errorf("feedback %q: %w", feedback, ErrInvalidFeedback)
	}
	return s.repo.MarkPlanned(ctx, userID, itineraryID, feedback)
}

func (s *ServiceImpl) MarkItineraryUsed(ctx context.Context, userID, itineraryID uuid.UUID) error {
	return s.repo.MarkUsed(ctx, userID, itineraryID)
}

// DeleteItinerary removes an itinerary. Planned itineraries cannot be deleted.
func (s *ServiceImpl) DeleteItinerary(ctx context.Context, userID, itineraryID uuid.UUID) error {
	return s.repo.Delete(ctx, userID, itineraryID)
}
