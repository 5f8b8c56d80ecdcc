package spot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/peakbaguio/peak-baguio/internal/types"
)

var _ Repository = (*PostgresSpotRepo)(nil)

// Repository stores spots and their nested activity and dining collections.
type Repository interface {
	List(ctx context.Context, categoryID *uuid.UUID) ([]types.Spot, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Spot, error)
	Create(ctx context.Context, params types.CreateSpotParams) (*types.Spot, error)
	Update(ctx context.Context, id uuid.UUID, params types.UpdateSpotParams) (*types.Spot, error)
	Delete(ctx context.Context, id uuid.UUID) error

	ListActivities(ctx context.Context, spotID uuid.UUID) ([]types.SpotActivity, error)
	AddActivity(ctx context.Context, spotID uuid.UUID, name, description string) (*types.SpotActivity, error)
	RemoveActivity(ctx context.Context, spotID, activityID uuid.UUID) error

	ListDining(ctx context.Context, spotID uuid.UUID) ([]types.SpotDining, error)
	AddDining(ctx context.Context, spotID uuid.UUID, name, description, cuisine string) (*types.SpotDining, error)
	RemoveDining(ctx context.Context, spotID, diningID uuid.UUID) error
}

type PostgresSpotRepo struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewPostgresSpotRepo(pgpool *pgxpool.Pool, logger *slog.Logger) *PostgresSpotRepo {
	return &PostgresSpotRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

const spotColumns = `id, category_id, name, description, address,
       latitude, longitude, image_url, created_at, updated_at`

func (r *PostgresSpotRepo) List(ctx context.Context, categoryID *uuid.UUID) ([]types.Spot, error) {
	query := `SELECT ` + spotColumns + ` FROM spots`
	var args []any
	if categoryID != nil {
		query += ` WHERE category_id = $1`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY name`

	rows, err := r.pgpool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query spots: %w", err)
	}
	defer rows.Close()

	var list []types.Spot
	for rows.Next() {
		s, err := scanSpot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan spot row: %w", err)
		}
		list = append(list, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("spot rows iteration failed: %w", err)
	}
	return list, nil
}

func (r *PostgresSpotRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.Spot, error) {
	row := r.pgpool.QueryRow(ctx, `SELECT `+spotColumns+` FROM spots WHERE id = $1`, id)
	s, err := scanSpot(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query spot: %w", err)
	}
	return s, nil
}

func (r *PostgresSpotRepo) Create(ctx context.Context, params types.CreateSpotParams) (*types.Spot, error) {
	row := r.pgpool.QueryRow(ctx, `
        INSERT INTO spots (category_id, name, description, address, latitude, longitude, image_url)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING `+spotColumns,
		params.CategoryID, params.Name, params.Description, params.Address,
		params.Latitude, params.Longitude, params.ImageURL)
	s, err := scanSpot(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert spot: %w", err)
	}
	return s, nil
}

// Update applies only the fields set in params, building the SET clause
// dynamically the way partial updates are done elsewhere in the repo layer.
func (r *PostgresSpotRepo) Update(ctx context.Context, id uuid.UUID, params types.UpdateSpotParams) (*types.Spot, error) {
	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if params.CategoryID != nil {
		add("category_id", *params.CategoryID)
	}
	if params.Name != nil {
		add("name", *params.Name)
	}
	if params.Description != nil {
		add("description", *params.Description)
	}
	if params.Address != nil {
		add("address", *params.Address)
	}
	if params.Latitude != nil {
		add("latitude", *params.Latitude)
	}
	if params.Longitude != nil {
		add("longitude", *params.Longitude)
	}
	if params.ImageURL != nil {
		add("image_url", *params.ImageURL)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE spots SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), spotColumns)

	row := r.pgpool.QueryRow(ctx, query, args...)
	s, err := scanSpot(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update spot: %w", err)
	}
	return s, nil
}

func (r *PostgresSpotRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx, `DELETE FROM spots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete spot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (r *PostgresSpotRepo) ListActivities(ctx context.Context, spotID uuid.UUID) ([]types.SpotActivity, error) {
	rows, err := r.pgpool.Query(ctx, `
        SELECT id, spot_id, name, description, created_at
        FROM spot_activities WHERE spot_id = $1 ORDER BY name`, spotID)
	if err != nil {
		return nil, fmt.Errorf("failed to query spot activities: %w", err)
	}
	defer rows.Close()

	var list []types.SpotActivity
	for rows.Next() {
		var a types.SpotActivity
		if err := rows.Scan(&a.ID, &a.SpotID, &a.Name, &a.Description, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan spot activity row: %w", err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("spot activity rows iteration failed: %w", err)
	}
	return list, nil
}

func (r *PostgresSpotRepo) AddActivity(ctx context.Context, spotID uuid.UUID, name, description string) (*types.SpotActivity, error) {
	var a types.SpotActivity
	err := r.pgpool.QueryRow(ctx, `
        INSERT INTO spot_activities (spot_id, name, description)
        VALUES ($1, $2, $3)
        RETURNING id, spot_id, name, description, created_at`,
		spotID, name, description).
		Scan(&a.ID, &a.SpotID, &a.Name, &a.Description, &a.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to insert spot activity: %w", err)
	}
	return &a, nil
}

func (r *PostgresSpotRepo) RemoveActivity(ctx context.Context, spotID, activityID uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx,
		`DELETE FROM spot_activities WHERE id = $1 AND spot_id = $2`, activityID, spotID)
	if err != nil {
		return fmt.Errorf("failed to delete spot activity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (r *PostgresSpotRepo) ListDining(ctx context.Context, spotID uuid.UUID) ([]types.SpotDining, error) {
	rows, err := r.pgpool.Query(ctx, `
        SELECT id, spot_id, name, description, cuisine, created_at
        FROM spot_dining WHERE spot_id = $1 ORDER BY name`, spotID)
	if err != nil {
		return nil, fmt.Errorf("failed to query spot dining: %w", err)
	}
	defer rows.Close()

	var list []types.SpotDining
	for rows.Next() {
		var d types.SpotDining
		if err := rows.Scan(&d.ID, &d.SpotID, &d.Name, &d.Description, &d.Cuisine, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan spot dining row: %w", err)
		}
		list = append(list, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("spot dining rows iteration failed: %w", err)
	}
	return list, nil
}

func (r *PostgresSpotRepo) AddDining(ctx context.Context, spotID uuid.UUID, name, description, cuisine string) (*types.SpotDining, error) {
	var d types.SpotDining
	err := r.pgpool.QueryRow(ctx, `
        INSERT INTO spot_dining (spot_id, name, description, cuisine)
        VALUES ($1, $2, $3, $4)
        RETURNING id, spot_id, name, description, cuisine, created_at`,
		spotID, name, description, cuisine).
		Scan(&d.ID, &d.SpotID, &d.Name, &d.Description, &d.Cuisine, &d.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to insert spot dining: %w", err)
	}
	return &d, nil
}

func (r *PostgresSpotRepo) RemoveDining(ctx context.Context, spotID, diningID uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx,
		`DELETE FROM spot_dining WHERE id = $1 AND spot_id = $2`, diningID, spotID)
	if err != nil {
		return fmt.Errorf("failed to delete spot dining: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

func scanSpot(row pgx.Row) (*types.Spot, error) {
	var s types.Spot
	err := row.Scan(
		&s.ID, &s.CategoryID, &s.Name, &s.Description, &s.Address,
		&s.Latitude, &s.Longitude, &s.ImageURL, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
