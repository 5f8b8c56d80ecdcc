package spot

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/peakbaguio/peak-baguio/internal/api"
	"github.com/peakbaguio/peak-baguio/internal/types"
)

type Handler struct {
	spotService Service
	logger      *slog.Logger
}

func NewSpotHandler(spotService Service, logger *slog.Logger) *Handler {
	return &Handler{
		spotService: spotService,
		logger:      logger,
	}
}

type activityRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type diningRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Cuisine     string `json:"cuisine"`
}

// List returns all spots, optionally filtered by ?category_id=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Spot").Start(r.Context(), "List", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/spots"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "List"))

	var categoryID *uuid.UUID
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid category_id format")
			return
		}
		categoryID = &id
	}

	list, err := h.spotService.ListSpots(ctx, categoryID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list spots", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list spots")
		return
	}
	if list == nil {
		list = []types.Spot{}
	}

	api.WriteJSONResponse(w, r, http.StatusOK, list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Spot").Start(r.Context(), "Get", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/spots/{spotID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Get"))

	spotID, ok := parseSpotID(w, r)
	if !ok {
		return
	}

	s, err := h.spotService.GetSpot(ctx, spotID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Spot not found")
			return
		}
		l.ErrorContext(ctx, "Failed to fetch spot", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch spot")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, s)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Spot").Start(r.Context(), "Create", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/spots"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Create"))

	var params types.CreateSpotParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	s, err := h.spotService.CreateSpot(ctx, params)
	if err != nil {
		if errors.Is(err, ErrEmptyName) {
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		l.ErrorContext(ctx, "Failed to create spot", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create spot")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, s)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Spot").Start(r.Context(), "Update", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/spots/{spotID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Update"))

	spotID, ok := parseSpotID(w, r)
	if !ok {
		return
	}

	var params types.UpdateSpotParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	s, err := h.spotService.UpdateSpot(ctx, spotID, params)
	if err != nil {
		if errors.Is(err, ErrEmptyName) {
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Spot not found")
			return
		}
		l.ErrorContext(ctx, "Failed to update spot", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to update spot")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, s)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Spot").Start(r.Context(), "Delete", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/spots/{spotID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Delete"))

	spotID, ok := parseSpotID(w, r)
	if !ok {
		return
	}

	if err := h.spotService.DeleteSpot(ctx, spotID); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Spot not found")
			return
		}
		l.ErrorContext(ctx, "Failed to delete spot", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to delete spot")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Spot").Start(r.Context(), "ListActivities", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/spots/{spotID}/activities"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "ListActivities"))

	spotID, ok := parseSpotID(w, r)
	if !ok {
		return
	}

	list, err := h.spotService.ListActivities(ctx, spotID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list spot activities", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list activities")
		return
	}
	if list == nil {
		list = []types.SpotActivity{}
	}

	api.WriteJSONResponse(w, r, http.StatusOK, list)
}

func (h *Handler) AddActivity(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Spot").Start(r.Context(), "AddActivity", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/spots/{spotID}/activities"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "AddActivity"))

	spotID, ok := parseSpotID(w, r)
	if !ok {
		return
	}

	var req activityRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	a, err := h.spotService.AddActivity(ctx, spotID, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, ErrEmptyName) {
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Spot not found")
			return
		}
		l.ErrorContext(ctx, "Failed to add spot activity", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to add activity")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, a)
}

func (h *Handler) RemoveActivity(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Spot").Start(r.Context(), "RemoveActivity", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/spots/{spotID}/activities/{activityID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "RemoveActivity"))

	spotID, ok := parseSpotID(w, r)
	if !ok {
		return
	}
	activityID, err := uuid.Parse(chi.URLParam(r, "activityID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid activity ID format")
		return
	}

	if err := h.spotService.RemoveActivity(ctx, spotID, activityID); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Activity not found")
			return
		}
		l.ErrorContext(ctx, "Failed to remove spot activity", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to remove activity")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListDining(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Spot").Start(r.Context(), "ListDining", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/spots/{spotID}/dining"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "ListDining"))

	spotID, ok := parseSpotID(w, r)
	if !ok {
		return
	}

	list, err := h.spotService.ListDining(ctx, spotID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list spot dining", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list dining")
		return
	}
	if list == nil {
		list = []types.SpotDining{}
	}

	api.WriteJSONResponse(w, r, http.StatusOK, list)
}

func (h *Handler) AddDining(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Spot").Start(r.Context(), "AddDining", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/spots/{spotID}/dining"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "AddDining"))

	spotID, ok := parseSpotID(w, r)
	if !ok {
		return
	}

	var req diningRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	d, err := h.spotService.AddDining(ctx, spotID, req.Name, req.Description, req.Cuisine)
	if err != nil {
		if errors.Is(err, ErrEmptyName) {
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Spot not found")
			return
		}
		l.ErrorContext(ctx, "Failed to add spot dining", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to add dining")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, d)
}

func (h *Handler) RemoveDining(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Spot").Start(r.Context(), "RemoveDining", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/spots/{spotID}/dining/{diningID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "RemoveDining"))

	spotID, ok := parseSpotID(w, r)
	if !ok {
		return
	}
	diningID, err := uuid.Parse(chi.URLParam(r, "diningID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid dining ID format")
		return
	}

	if err := h.spotService.RemoveDining(ctx, spotID, diningID); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Dining entry not found")
			return
		}
		l.ErrorContext(ctx, "Failed to remove spot dining", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to remove dining")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseSpotID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "spotID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid spot ID format")
		return uuid.Nil, false
	}
	return id, true
}
