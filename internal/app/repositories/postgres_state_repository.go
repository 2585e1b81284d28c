package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/uniconnect/internal/pkg/apperrors"
	"github.com/yigit/uniconnect/internal/pkg/dberrors"
	"github.com/yigit/uniconnect/internal/pkg/logger"
)

const clientStateTable = "client_state"

// PostgresStateRepository keeps client state in the client_state table,
// one row per (profile, key).
type PostgresStateRepository struct {
	db      *pgxpool.Pool
	sb      squirrel.StatementBuilderType
	profile string
}

// NewPostgresStateRepository creates a repository scoped to profile
func NewPostgresStateRepository(db *pgxpool.Pool, profile string) *PostgresStateRepository {
	return &PostgresStateRepository{
		db:      db,
		sb:      squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		profile: profile,
	}
}

// Get returns the value stored under key
func (r *PostgresStateRepository) Get(ctx context.Context, key string) (string, bool, error) {
	sql, args, err := r.sb.Select("value").
		From(clientStateTable).
		Where(squirrel.Eq{"profile": r.profile, "key": key}).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("failed to build get state query: %w", err)
	}

	var value string
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, r.wrap("get", key, err)
	}
	return value, true, nil
}

// Set upserts value under key
func (r *PostgresStateRepository) Set(ctx context.Context, key, value string) error {
	sql, args, err := r.sb.Insert(clientStateTable).
		Columns("profile", "key", "value", "updated_at").
		Values(r.profile, key, value, time.Now()).
		Suffix("ON CONFLICT (profile, key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set state query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return r.wrap("set", key, err)
	}
	return nil
}

// Remove deletes key
func (r *PostgresStateRepository) Remove(ctx context.Context, key string) error {
	sql, args, err := r.sb.Delete(clientStateTable).
		Where(squirrel.Eq{"profile": r.profile, "key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build remove state query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return r.wrap("remove", key, err)
	}
	return nil
}

func (r *PostgresStateRepository) wrap(op, key string, err error) error {
	if dberrors.IsUndefinedTable(err) {
		logger.Error().Err(err).Msg("client_state table missing, run migrations")
	} else {
		logger.Error().Err(err).Str("op", op).Str("key", key).Msg("Error executing client state query")
	}
	return fmt.Errorf("%w: %s %s: %v", apperrors.ErrStorageUnavailable, op, key, err)
}
