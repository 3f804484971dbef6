package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/rpgcore/internal/model"
)

// Connect opens a pgx pool and checks it with a ping.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return pool, nil
}

// PostgresAttributeRepository реализует AttributeRepository для PostgreSQL.
type PostgresAttributeRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAttributeRepository создаёт новый PostgreSQL repository.
func NewPostgresAttributeRepository(pool *pgxpool.Pool) *PostgresAttributeRepository {
	return &PostgresAttributeRepository{pool: pool}
}

// Load возвращает все атрибуты сущности.
func (r *PostgresAttributeRepository) Load(ctx context.Context, id model.EntityID) (map[string]float64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT name, value FROM entity_attributes WHERE entity_id = $1`,
		uuid.UUID(id),
	)
	if err != nil {
		return nil, fmt.Errorf("querying attributes of %s: %w", id, err)
	}
	defer rows.Close()

	attrs := make(map[string]float64)
	for rows.Next() {
		var (
			name  string
			value float64
		)
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scanning attribute of %s: %w", id, err)
		}
		attrs[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating attributes of %s: %w", id, err)
	}
	return attrs, nil
}

// Save заменяет атрибуты сущности в одной транзакции (full replace).
func (r *PostgresAttributeRepository) Save(ctx context.Context, id model.EntityID, attrs map[string]float64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM entity_attributes WHERE entity_id = $1`, uuid.UUID(id)); err != nil {
		return fmt.Errorf("deleting old attributes of %s: %w", id, err)
	}

	if len(attrs) > 0 {
		rows := make([][]any, 0, len(attrs))
		for name, value := range attrs {
			rows = append(rows, []any{uuid.UUID(id), name, value})
		}
		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"entity_attributes"},
			[]string{"entity_id", "name", "value"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("inserting attributes of %s: %w", id, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing attributes of %s: %w", id, err)
	}

	slog.Debug("saved entity attributes", "entity", id, "count", len(attrs))
	return nil
}

// Delete удаляет все атрибуты сущности.
func (r *PostgresAttributeRepository) Delete(ctx context.Context, id model.EntityID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM entity_attributes WHERE entity_id = $1`, uuid.UUID(id)); err != nil {
		return fmt.Errorf("deleting attributes of %s: %w", id, err)
	}
	return nil
}
