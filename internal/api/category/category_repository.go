package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/peakbaguio/peak-baguio/internal/types"
)

var _ Repository = (*PostgresCategoryRepo)(nil)

// Repository stores the browsing categories spots are grouped under.
type Repository interface {
	List(ctx context.Context) ([]types.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Category, error)
	Create(ctx context.Context, name, description, imageURL string) (*types.Category, error)
	Update(ctx context.Context, id uuid.UUID, name, description, imageURL string) (*types.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresCategoryRepo struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewPostgresCategoryRepo(pgpool *pgxpool.Pool, logger *slog.Logger) *PostgresCategoryRepo {
	return &PostgresCategoryRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *PostgresCategoryRepo) List(ctx context.Context) ([]types.Category, error) {
	rows, err := r.pgpool.Query(ctx, `
        SELECT id, name, description, image_url, created_at, updated_at
        FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var list []types.Category
	for rows.Next() {
		var c types.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("category rows iteration failed: %w", err)
	}
	return list, nil
}

func (r *PostgresCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.Category, error) {
	var c types.Category
	err := r.pgpool.QueryRow(ctx, `
        SELECT id, name, description, image_url, created_at, updated_at
        FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	return &c, nil
}

func (r *PostgresCategoryRepo) Create(ctx context.Context, name, description, imageURL string) (*types.Category, error) {
	var c types.Category
	err := r.pgpool.QueryRow(ctx, `
        INSERT INTO categories (name, description, image_url)
        VALUES ($1, $2, $3)
        RETURNING id, name, description, image_url, created_at, updated_at`,
		name, description, imageURL).
		Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, types.ErrConflict
		}
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}
	return &c, nil
}

func (r *PostgresCategoryRepo) Update(ctx context.Context, id uuid.UUID, name, description, imageURL string) (*types.Category, error) {
	var c types.Category
	err := r.pgpool.QueryRow(ctx, `
        UPDATE categories SET name = $1, description = $2, image_url = $3, updated_at = NOW()
        WHERE id = $4
        RETURNING id, name, description, image_url, created_at, updated_at`,
		name, description, imageURL, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, types.ErrConflict
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return &c, nil
}

func (r *PostgresCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
