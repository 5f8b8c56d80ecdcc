package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/peakbaguio/peak-baguio/internal/types"
)

var _ Repository = (*PostgresItineraryRepo)(nil)

// Repository defines the persistence contract for itinerary records.
type Repository interface {
	Create(ctx context.Context, it *types.Itinerary) (uuid.UUID, error)
	GetByID(ctx context.Context, userID, itineraryID uuid.UUID) (*types.Itinerary, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]types.Itinerary, error)
	MarkPlanned(ctx context.Context, userID, itineraryID uuid.UUID, feedback string) error
	MarkUsed(ctx context.Context, userID, itineraryID uuid.UUID) error
	Delete(ctx context.Context, userID, itineraryID uuid.UUID) error
}

// pgxDB is the slice of pgxpool.Pool the repository needs. Both the pool and
// a pgxmock pool satisfy it.
type pgxDB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresItineraryRepo struct {
	logger *slog.Logger
	pgpool pgxDB
}

func NewPostgresItineraryRepo(pgpool *pgxpool.Pool, logger *slog.Logger) *PostgresItineraryRepo {
	return &PostgresItineraryRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

const itineraryColumns = `id, user_id, itinerary, coordinates, budget, duration,
       has_accommodation, accommodation, must_see, preferences, notes,
       planned, used, feedback, created_at`

func (r *PostgresItineraryRepo) Create(ctx context.Context, it *types.Itinerary) (uuid.UUID, error) {
	coordsJSON, err := json.Marshal(it.Coordinates)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal coordinates: %w", err)
	}

	var id uuid.UUID
	err = r.pgpool.QueryRow(ctx, `
        INSERT INTO itineraries (
            user_id, itinerary, coordinates, budget, duration,
            has_accommodation, accommodation, must_see, preferences, notes
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id`,
		it.UserID, it.Itinerary, coordsJSON,
		it.Request.Budget, it.Request.Duration,
		it.Request.HasAccommodation, it.Request.Accommodation,
		it.Request.MustSeeAttractions, it.Request.OptionalPreferences,
		it.Request.AdditionalNotes,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert itinerary: %w", err)
	}
	return id, nil
}

func (r *PostgresItineraryRepo) GetByID(ctx context.Context, userID, itineraryID uuid.UUID) (*types.Itinerary, error) {
	row := r.pgpool.QueryRow(ctx,
		`SELECT `+itineraryColumns+` FROM itineraries WHERE id = $1 AND user_id = $2`,
		itineraryID, userID)
	it, err := scanItinerary(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query itinerary: %w", err)
	}
	return it, nil
}

func (r *PostgresItineraryRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]types.Itinerary, error) {
	rows, err := r.pgpool.Query(ctx,
		`SELECT `+itineraryColumns+` FROM itineraries WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query itineraries: %w", err)
	}
	defer rows.Close()

	var list []types.Itinerary
	for rows.Next() {
		it, err := scanItinerary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan itinerary row: %w", err)
		}
		list = append(list, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("itinerary rows iteration failed: %w", err)
	}
	return list, nil
}

func (r *PostgresItineraryRepo) MarkPlanned(ctx context.Context, userID, itineraryID uuid.UUID, feedback string) error {
	tag, err := r.pgpool.Exec(ctx,
		`UPDATE itineraries SET planned = TRUE, feedback = $1 WHERE id = $2 AND user_id = $3`,
		feedback, itineraryID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark itinerary planned: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (r *PostgresItineraryRepo) MarkUsed(ctx context.Context, userID, itineraryID uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx,
		`UPDATE itineraries SET used = TRUE WHERE id = $1 AND user_id = $2`,
		itineraryID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark itinerary used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Delete removes an itinerary unless it has been marked planned.
func (r *PostgresItineraryRepo) Delete(ctx context.Context, userID, itineraryID uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx,
		`DELETE FROM itineraries WHERE id = $1 AND user_id = $2 AND planned = FALSE`,
		itineraryID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete itinerary: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Nothing deleted: distinguish "planned" from "missing".
	var planned bool
	err = r.pgpool.QueryRow(ctx,
		`SELECT planned FROM itineraries WHERE id = $1 AND user_id = $2`,
		itineraryID, userID).Scan(&planned)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.ErrNotFound
		}
		return fmt.Errorf("failed to check itinerary state: %w", err)
	}
	if planned {
		return types.ErrItineraryPlanned
	}
	return types.ErrNotFound
}

func scanItinerary(row pgx.Row) (*types.Itinerary, error) {
	var it types.Itinerary
	var coordsJSON []byte
	err := row.Scan(
		&it.ID, &it.UserID, &it.Itinerary, &coordsJSON,
		&it.Request.Budget, &it.Request.Duration,
		&it.Request.HasAccommodation, &it.Request.Accommodation,
		&it.Request.MustSeeAttractions, &it.Request.OptionalPreferences,
		&it.Request.AdditionalNotes,
		&it.Planned, &it.Used, &it.Feedback, &it.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(coordsJSON, &it.Coordinates); err != nil {
		return nil, fmt.Errorf("failed to unmarshal coordinates: %w", err)
	}
	return &it, nil
}
