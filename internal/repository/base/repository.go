package base

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"

	"github.com/smarttutor/backend/internal/model"
)

const (
	// queryTimeout bounds every individual store operation.
	queryTimeout = 5 * time.Second

	maxRetries = 2
	retryBase  = 200 * time.Millisecond
)

// Repository holds the shared pgx pool and the retry/timeout policy common
// to all repositories.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Pool returns the connection pool.
func (r *Repository) Pool() *pgxpool.Pool {
	return r.pool
}

// Do runs fn under the per-operation timeout, retrying transient failures
// with exponential backoff. Exhausted retries and deadline expiry surface as
// model.ErrStoreUnavailable; domain errors pass through untouched.
func (r *Repository) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(retryBase))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		opCtx, cancel := context.WithTimeout(ctx, queryTimeout)
		defer cancel()

		if err := fn(opCtx); err != nil {
			if transient(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		if transient(err) {
			return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
		}
		return err
	}
	return nil
}

func transient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// serialization_failure, deadlock_detected
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// IsUniqueViolation reports whether err is a postgres unique-constraint
// violation (code 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsNotFound reports whether err means "no rows".
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
