package category

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
	categoryService Service
	logger          *slog.Logger
}

func NewCategoryHandler(categoryService Service, logger *slog.Logger) *Handler {
	return &Handler{
		categoryService: categoryService,
		logger:          logger,
	}
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Category").Start(r.Context(), "List", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/categories"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "List"))

	list, err := h.categoryService.ListCategories(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list categories", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list categories")
		return
	}
	if list == nil {
		list = []types.Category{}
	}

	api.WriteJSONResponse(w, r, http.StatusOK, list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Category").Start(r.Context(), "Get", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/categories/{categoryID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Get"))

	id, ok := parseCategoryID(w, r)
	if !ok {
		return
	}

	c, err := h.categoryService.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Category not found")
			return
		}
		l.ErrorContext(ctx, "Failed to fetch category", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch category")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, c)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Category").Start(r.Context(), "Create", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/categories"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Create"))

	var req categoryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.categoryService.CreateCategory(ctx, req.Name, req.Description, req.ImageURL)
	if err != nil {
		if errors.Is(err, ErrEmptyName) {
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, types.ErrConflict) {
			api.ErrorResponse(w, r, http.StatusConflict, "A category with this name already exists")
			return
		}
		l.ErrorContext(ctx, "Failed to create category", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create category")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, c)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Category").Start(r.Context(), "Update", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/categories/{categoryID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Update"))

	id, ok := parseCategoryID(w, r)
	if !ok {
		return
	}

	var req categoryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.categoryService.UpdateCategory(ctx, id, req.Name, req.Description, req.ImageURL)
	if err != nil {
		if errors.Is(err, ErrEmptyName) {
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Category not found")
			return
		}
		if errors.Is(err, types.ErrConflict) {
			api.ErrorResponse(w, r, http.StatusConflict, "A category with this name already exists")
			return
		}
		l.ErrorContext(ctx, "Failed to update category", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to update category")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, c)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Category").Start(r.Context(), "Delete", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/categories/{categoryID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Delete"))

	id, ok := parseCategoryID(w, r)
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Category not found")
			return
		}
		l.ErrorContext(ctx, "Failed to delete category", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to delete category")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseCategoryID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "categoryID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid category ID format")
		return uuid.Nil, false
	}
	return id, true
}
