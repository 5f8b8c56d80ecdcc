package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/peakbaguio/peak-baguio/internal/types"
)

var _ Repository = (*PostgresReportRepo)(nil)

// Repository answers the aggregate queries behind the admin usage report.
type Repository interface {
	GenerationsPerMonth(ctx context.Context, months int) ([]types.MonthlyCount, error)
	FeedbackBreakdown(ctx context.Context) (types.FeedbackBreakdown, error)
	PlannedCount(ctx context.Context) (int64, error)
	UsedCount(ctx context.Context) (int64, error)
	SpotsPerCategory(ctx context.Context) ([]types.CategorySpotCount, error)
	TotalUsers(ctx context.Context) (int64, error)
}

type PostgresReportRepo struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewPostgresReportRepo(pgpool *pgxpool.Pool, logger *slog.Logger) *PostgresReportRepo {
	return &PostgresReportRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *PostgresReportRepo) GenerationsPerMonth(ctx context.Context, months int) ([]types.MonthlyCount, error) {
	rows, err := r.pgpool.Query(ctx, `
        SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS month, COUNT(*)
        FROM itineraries
        WHERE created_at >= date_trunc('month', now()) - make_interval(months => $1 - 1)
        GROUP BY 1 ORDER BY 1`, months)
	if err != nil {
		return nil, fmt.Errorf("failed to query generations per month: %w", err)
	}
	defer rows.Close()

	var list []types.MonthlyCount
	for rows.Next() {
		var mc types.MonthlyCount
		if err := rows.Scan(&mc.Month, &mc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan monthly count row: %w", err)
		}
		list = append(list, mc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("monthly count rows iteration failed: %w", err)
	}
	return list, nil
}

func (r *PostgresReportRepo) FeedbackBreakdown(ctx context.Context) (types.FeedbackBreakdown, error) {
	var fb types.FeedbackBreakdown
	err := r.pgpool.QueryRow(ctx, `
        SELECT
            COUNT(*) FILTER (WHERE feedback = 'liked'),
            COUNT(*) FILTER (WHERE feedback = 'disliked'),
            COUNT(*) FILTER (WHERE feedback = '')
        FROM itineraries WHERE planned = TRUE`).
		Scan(&fb.Liked, &fb.Disliked, &fb.None)
	if err != nil {
		return types.FeedbackBreakdown{}, fmt.Errorf("failed to query feedback breakdown: %w", err)
	}
	return fb, nil
}

func (r *PostgresReportRepo) PlannedCount(ctx context.Context) (int64, error) {
	return r.countWhere(ctx, `planned = TRUE`)
}

func (r *PostgresReportRepo) UsedCount(ctx context.Context) (int64, error) {
	return r.countWhere(ctx, `used = TRUE`)
}

func (r *PostgresReportRepo) countWhere(ctx context.Context, cond string) (int64, error) {
	var n int64
	if err := r.pgpool.QueryRow(ctx, `SELECT COUNT(*) FROM itineraries WHERE `+cond).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count itineraries: %w", err)
	}
	return n, nil
}

func (r *PostgresReportRepo) SpotsPerCategory(ctx context.Context) ([]types.CategorySpotCount, error) {
	rows, err := r.pgpool.Query(ctx, `
        SELECT COALESCE(c.name, 'Uncategorized'), COUNT(s.id)
        FROM spots s LEFT JOIN categories c ON c.id = s.category_id
        GROUP BY 1 ORDER BY 2 DESC, 1`)
	if err != nil {
		return nil, fmt.Errorf("failed to query spots per category: %w", err)
	}
	defer rows.Close()

	var list []types.CategorySpotCount
	for rows.Next() {
		var cc types.CategorySpotCount
		if err := rows.Scan(&cc.Category, &cc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category count row: %w", err)
		}
		list = append(list, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("category count rows iteration failed: %w", err)
	}
	return list, nil
}

func (r *PostgresReportRepo) TotalUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pgpool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}
