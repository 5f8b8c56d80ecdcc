package options

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
	optionsService Service
	logger         *slog.Logger
}

func NewOptionsHandler(optionsService Service, logger *slog.Logger) *Handler {
	return &Handler{
		optionsService: optionsService,
		logger:         logger,
	}
}

type optionRequest struct {
	Label    string `json:"label"`
	Position int    `json:"position"`
}

// List returns both option lists in the shape the generation form consumes.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Options").Start(r.Context(), "List", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/options"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "List"))

	budgets, err := h.optionsService.ListOptions(ctx, KindBudget)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list budget options", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list options")
		return
	}
	durations, err := h.optionsService.ListOptions(ctx, KindDuration)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list duration options", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list options")
		return
	}
	if budgets == nil {
		budgets = []types.Option{}
	}
	if durations == nil {
		durations = []types.Option{}
	}

	api.WriteJSONResponse(w, r, http.StatusOK, map[string][]types.Option{
		"budgets":   budgets,
		"durations": durations,
	})
}

// Create adds an option to the list named in the route.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Options").Start(r.Context(), "Create", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/options/{kind}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Create"))

	kind, ok := parseKind(w, r)
	if !ok {
		return
	}

	var req optionRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	opt, err := h.optionsService.CreateOption(ctx, kind, req.Label, req.Position)
	if err != nil {
		if errors.Is(err, ErrEmptyLabel) {
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, types.ErrConflict) {
			api.ErrorResponse(w, r, http.StatusConflict, "An option with this label already exists")
			return
		}
		l.ErrorContext(ctx, "Failed to create option", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create option")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, opt)
}

// Update replaces an option's label and position.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Options").Start(r.Context(), "Update", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/options/{kind}/{optionID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Update"))

	kind, ok := parseKind(w, r)
	if !ok {
		return
	}
	optionID, ok := parseOptionID(w, r)
	if !ok {
		return
	}

	var req optionRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	opt, err := h.optionsService.UpdateOption(ctx, kind, optionID, req.Label, req.Position)
	if err != nil {
		if errors.Is(err, ErrEmptyLabel) {
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Option not found")
			return
		}
		if errors.Is(err, types.ErrConflict) {
			api.ErrorResponse(w, r, http.StatusConflict, "An option with this label already exists")
			return
		}
		l.ErrorContext(ctx, "Failed to update option", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to update option")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, opt)
}

// Delete removes an option from the list named in the route.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Options").Start(r.Context(), "Delete", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/options/{kind}/{optionID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Delete"))

	kind, ok := parseKind(w, r)
	if !ok {
		return
	}
	optionID, ok := parseOptionID(w, r)
	if !ok {
		return
	}

	if err := h.optionsService.DeleteOption(ctx, kind, optionID); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Option not found")
			return
		}
		l.ErrorContext(ctx, "Failed to delete option", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to delete option")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseKind(w http.ResponseWriter, r *http.Request) (Kind, bool) {
	switch Kind(chi.URLParam(r, "kind")) {
	case KindBudget:
		return KindBudget, true
	case KindDuration:
		return KindDuration, true
	default:
		api.ErrorResponse(w, r, http.StatusBadRequest, "Option kind must be budget or duration")
		return "", false
	}
}

func parseOptionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "optionID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid option ID format")
		return uuid.Nil, false
	}
	return id, true
}
