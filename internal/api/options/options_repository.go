package options

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

// Kind selects which option list an operation targets.
type Kind string

const (
	KindBudget   Kind = "budget"
	KindDuration Kind = "duration"
)

func (k Kind) table() (string, error) {
	switch k {
	case KindBudget:
		return "budget_options", nil
	case KindDuration:
		return "duration_options", nil
	default:
		return "", fmt.Errorf("unknown option kind %q", k)
	}
}

var _ Repository = (*PostgresOptionsRepo)(nil)

// Repository stores the admin-configured budget and duration choice lists.
type Repository interface {
	List(ctx context.Context, kind Kind) ([]types.Option, error)
	Create(ctx context.Context, kind Kind, label string, position int) (*types.Option, error)
	Update(ctx context.Context, kind Kind, id uuid.UUID, label string, position int) (*types.Option, error)
	Delete(ctx context.Context, kind Kind, id uuid.UUID) error
	HasLabel(ctx context.Context, kind Kind, label string) (bool, error)
}

type PostgresOptionsRepo struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewPostgresOptionsRepo(pgpool *pgxpool.Pool, logger *slog.Logger) *PostgresOptionsRepo {
	return &PostgresOptionsRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *PostgresOptionsRepo) List(ctx context.Context, kind Kind) ([]types.Option, error) {
	table, err := kind.table()
	if err != nil {
		return nil, err
	}

	rows, err := r.pgpool.Query(ctx,
		`SELECT id, label, position FROM `+table+` ORDER BY position, label`)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var list []types.Option
	for rows.Next() {
		var o types.Option
		if err := rows.Scan(&o.ID, &o.Label, &o.Position); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows iteration failed: %w", table, err)
	}
	return list, nil
}

func (r *PostgresOptionsRepo) Create(ctx context.Context, kind Kind, label string, position int) (*types.Option, error) {
	table, err := kind.table()
	if err != nil {
		return nil, err
	}

	var o types.Option
	err = r.pgpool.QueryRow(ctx,
		`INSERT INTO `+table+` (label, position) VALUES ($1, $2) RETURNING id, label, position`,
		label, position).Scan(&o.ID, &o.Label, &o.Position)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, types.ErrConflict
		}
		return nil, fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return &o, nil
}

func (r *PostgresOptionsRepo) Update(ctx context.Context, kind Kind, id uuid.UUID, label string, position int) (*types.Option, error) {
	table, err := kind.table()
	if err != nil {
		return nil, err
	}

	var o types.Option
	err = r.pgpool.QueryRow(ctx,
		`UPDATE `+table+` SET label = $1, position = $2 WHERE id = $3 RETURNING id, label, position`,
		label, position, id).Scan(&o.ID, &o.Label, &o.Position)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, types.ErrConflict
		}
		return nil, fmt.Errorf("failed to update %s: %w", table, err)
	}
	return &o, nil
}

func (r *PostgresOptionsRepo) Delete(ctx context.Context, kind Kind, id uuid.UUID) error {
	table, err := kind.table()
	if err != nil {
		return err
	}

	tag, err := r.pgpool.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (r *PostgresOptionsRepo) HasLabel(ctx context.Context, kind Kind, label string) (bool, error) {
	table, err := kind.table()
	if err != nil {
		return false, err
	}

	var exists bool
	err = r.pgpool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM `+table+` WHERE label = $1)`, label).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check %s label: %w", table, err)
	}
	return exists, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
