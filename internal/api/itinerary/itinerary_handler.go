package itinerary

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/peakbaguio/peak-baguio/internal/api"
	"github.com/peakbaguio/peak-baguio/internal/api/auth"
	"github.com/peakbaguio/peak-baguio/internal/types"
)

type Handler struct {
	itineraryService Service
	logger           *slog.Logger
}

func NewItineraryHandler(itineraryService Service, logger *slog.Logger) *Handler {
	return &Handler{
		itineraryService: itineraryService,
		logger:           logger,
	}
}

// Generate runs the itinerary pipeline for the authenticated user.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Itinerary").Start(r.Context(), "Generate", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Generate"))

	userID, ok := userIDFromContext(w, r, ctx)
	if !ok {
		return
	}
	span.SetAttributes(semconv.EnduserIDKey.String(userID.String()))

	var req types.ItineraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	it, err := h.itineraryService.Generate(ctx, userID, req)
	if err != nil {
		if errors.Is(err, ErrUnknownOption) {
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, types.ErrEmptyCompletion) {
			l.ErrorContext(ctx, "Completion returned no content", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusBadGateway, "The itinerary service returned an empty response")
			return
		}
		l.ErrorContext(ctx, "Failed to generate itinerary", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to generate itinerary")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, it)
}

// List returns the authenticated user's itineraries, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Itinerary").Start(r.Context(), "List", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "List"))

	userID, ok := userIDFromContext(w, r, ctx)
	if !ok {
		return
	}

	list, err := h.itineraryService.ListItineraries(ctx, userID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list itineraries", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list itineraries")
		return
	}
	if list == nil {
		list = []types.Itinerary{}
	}

	api.WriteJSONResponse(w, r, http.StatusOK, list)
}

// Get returns a single itinerary owned by the authenticated user.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Itinerary").Start(r.Context(), "Get", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries/{itineraryID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Get"))

	userID, ok := userIDFromContext(w, r, ctx)
	if !ok {
		return
	}
	itineraryID, ok := parseItineraryID(w, r)
	if !ok {
		return
	}

	it, err := h.itineraryService.GetItinerary(ctx, userID, itineraryID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Itinerary not found")
			return
		}
		l.ErrorContext(ctx, "Failed to fetch itinerary", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch itinerary")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, it)
}

// Plan marks an itinerary as planned, optionally recording feedback.
func (h *Handler) Plan(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Itinerary").Start(r.Context(), "Plan", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries/{itineraryID}/plan"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Plan"))

	userID, ok := userIDFromContext(w, r, ctx)
	if !ok {
		return
	}
	itineraryID, ok := parseItineraryID(w, r)
	if !ok {
		return
	}

	var req types.PlanItineraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.itineraryService.PlanItinerary(ctx, userID, itineraryID, req.Feedback); err != nil {
		if errors.Is(err, ErrInvalidFeedback) {
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Itinerary not found")
			return
		}
		l.ErrorContext(ctx, "Failed to plan itinerary", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to plan itinerary")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{"message": "Itinerary marked as planned"})
}

// MarkUsed marks an itinerary as actually used during the trip.
func (h *Handler) MarkUsed(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Itinerary").Start(r.Context(), "MarkUsed", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries/{itineraryID}/used"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "MarkUsed"))

	userID, ok := userIDFromContext(w, r, ctx)
	if !ok {
		return
	}
	itineraryID, ok := parseItineraryID(w, r)
	if !ok {
		return
	}

	if err := h.itineraryService.MarkItineraryUsed(ctx, userID, itineraryID); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Itinerary not found")
			return
		}
		l.ErrorContext(ctx, "Failed to mark itinerary used", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to mark itinerary used")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{"message": "Itinerary marked as used"})
}

// Delete removes an itinerary. Planned itineraries are rejected with 409.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Itinerary").Start(r.Context(), "Delete", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries/{itineraryID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Delete"))

	userID, ok := userIDFromContext(w, r, ctx)
	if !ok {
		return
	}
	itineraryID, ok := parseItineraryID(w, r)
	if !ok {
		return
	}

	if err := h.itineraryService.DeleteItinerary(ctx, userID, itineraryID); err != nil {
		if errors.Is(err, types.ErrItineraryPlanned) {
			api.ErrorResponse(w, r, http.StatusConflict, "A planned itinerary cannot be deleted")
			return
		}
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Itinerary not found")
			return
		}
		l.ErrorContext(ctx, "Failed to delete itinerary", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to delete itinerary")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func userIDFromContext(w http.ResponseWriter, r *http.Request, ctx context.Context) (uuid.UUID, bool) {
	userIDStr, ok := auth.GetUserIDFromContext(ctx)
	if !ok || userIDStr == "" {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid user ID format")
		return uuid.Nil, false
	}
	return userID, true
}

func parseItineraryID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "itineraryID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid itinerary ID format")
		return uuid.Nil, false
	}
	return id, true
}
