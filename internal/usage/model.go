package usage

import (
	"time"

	"github.com/google/uuid"
)

// RequestLog matches the ai_requests table schema: one row per AI gateway
// request that reached the model provider.
type RequestLog struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Action     string    `json:"action"`
	Status     string    `json:"status"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListParams holds pagination and filtering parameters for history queries.
type ListParams struct {
	Action   string
	Page     int
	PageSize int
}

// DefaultListParams returns sensible defaults.
func DefaultListParams() ListParams {
	return ListParams{
		Page:     1,
		PageSize: 20,
	}
}
