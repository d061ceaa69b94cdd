package categories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tracklet/tracklet/internal/shared"
)

// Repository defines persistence operations for categories.
type Repository interface {
	Get(ctx context.Context, id int64) (*Category, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Category, error)
	Create(ctx context.Context, ownerID int64, label, color string) (*Category, error)
	Update(ctx context.Context, id int64, label, color string) (*Category, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Get(ctx context.Context, id int64) (*Category, error) {
	const query = `
		SELECT id, label, color, owner_id, created_at, updated_at
		FROM categories
		WHERE id = $1
	`
	return r.scanRow(r.pool.QueryRow(ctx, query, id))
}

func (r *repository) ListByOwner(ctx context.Context, ownerID int64) ([]Category, error) {
	const query = `
		SELECT id, label, color, owner_id, created_at, updated_at
		FROM categories
		WHERE owner_id = $1
		ORDER BY label, id
	`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var result []Category
	for rows.Next() {
		var (
			c                    Category
			createdAt, updatedAt pgtype.Timestamptz
		)
		if err := rows.Scan(&c.ID, &c.Label, &c.Color, &c.OwnerID, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		c.CreatedAt = createdAt.Time
		c.UpdatedAt = updatedAt.Time
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *repository) Create(ctx context.Context, ownerID int64, label, color string) (*Category, error) {
	const query = `
		INSERT INTO categories (label, color, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, label, color, owner_id, created_at, updated_at
	`
	return r.scanRow(r.pool.QueryRow(ctx, query, label, color, ownerID))
}

func (r *repository) Update(ctx context.Context, id int64, label, color string) (*Category, error) {
	// Label and color only; owner_id is immutable after creation.
	const query = `
		UPDATE categories
		SET label = $2, color = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING id, label, color, owner_id, created_at, updated_at
	`
	return r.scanRow(r.pool.QueryRow(ctx, query, id, label, color))
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) scanRow(row pgx.Row) (*Category, error) {
	var (
		c                    Category
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := row.Scan(&c.ID, &c.Label, &c.Color, &c.OwnerID, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time
	return &c, nil
}

var _ Repository = (*repository)(nil)
