package quota

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the persistence contract for monthly usage counters.
type Store interface {
	// GetMonthUsage returns the user's premium flag and the counter for
	// (action, monthKey). found is false when no user record exists.
	GetMonthUsage(ctx context.Context, userID uuid.UUID, action, monthKey string) (found bool, isPremium bool, count int, err error)

	// IncrementMonthUsage performs an atomic monotonic add on the counter.
	IncrementMonthUsage(ctx context.Context, userID uuid.UUID, action, monthKey string) error
}

// Repository implements Store on PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) GetMonthUsage(ctx context.Context, userID uuid.UUID, action, monthKey string) (bool, bool, int, error) {
	var isPremium bool
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT u.is_premium, COALESCE(au.count, 0)
		 FROM users u
		 LEFT JOIN ai_usage au
		   ON au.user_id = u.id AND au.action = $2 AND au.month_key = $3
		 WHERE u.id = $1`, userID, action, monthKey,
	).Scan(&isPremium, &count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, false, 0, nil
		}
		return false, false, 0, fmt.Errorf("fetching month usage: %w", err)
	}
	return true, isPremium, count, nil
}

// IncrementMonthUsage is an upsert add so concurrent requests from the same
// account never lose updates (no read-modify-write in the gateway).
func (r *Repository) IncrementMonthUsage(ctx context.Context, userID uuid.UUID, action, monthKey string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO ai_usage (user_id, action, month_key, count)
		 VALUES ($1, $2, $3, 1)
		 ON CONFLICT (user_id, action, month_key)
		 DO UPDATE SET count = ai_usage.count + 1, updated_at = NOW()`,
		userID, action, monthKey)
	if err != nil {
		return fmt.Errorf("incrementing month usage: %w", err)
	}
	return nil
}
