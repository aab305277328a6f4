package usage

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles ai_requests PostgreSQL operations.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert persists a single request log entry.
func (r *Repository) Insert(ctx context.Context, log *RequestLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO ai_requests (id, user_id, action, status, duration_ms, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		log.ID, log.UserID, log.Action, log.Status, log.DurationMs, log.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting request log: %w", err)
	}
	return nil
}

// ListByUser returns paginated request logs for a user, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, params ListParams) ([]RequestLog, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 20
	}

	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, fmt.Sprintf("user_id = $%d", argIdx))
	args = append(args, userID)
	argIdx++

	if params.Action != "" {
		conditions = append(conditions, fmt.Sprintf("action = $%d", argIdx))
		args = append(args, params.Action)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM ai_requests WHERE %s", where)
	var totalCount int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("counting request logs: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(
		`SELECT id, user_id, action, status, duration_ms, created_at
		 FROM ai_requests WHERE %s
		 ORDER BY created_at DESC
		 LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying request logs: %w", err)
	}
	defer rows.Close()

	var logs []RequestLog
	for rows.Next() {
		var l RequestLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Action, &l.Status, &l.DurationMs, &l.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scanning request log: %w", err)
		}
		logs = append(logs, l)
	}

	return logs, totalCount, nil
}
