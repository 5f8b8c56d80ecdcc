package report

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/peakbaguio/peak-baguio/internal/api"
)

type Handler struct {
	reportService Service
	logger        *slog.Logger
}

func NewReportHandler(reportService Service, logger *slog.Logger) *Handler {
	return &Handler{
		reportService: reportService,
		logger:        logger,
	}
}

// Usage returns the aggregate figures for the admin dashboard.
func (h *Handler) Usage(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Report").Start(r.Context(), "Usage", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/reports/usage"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Usage"))

	report, err := h.reportService.UsageReport(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to build usage report", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to build usage report")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, report)
}
