package events

import (
	"time"

	"github.com/google/uuid"
)

// FetchTimeout is the default timeout for batch fetching messages from consumers.
const FetchTimeout = 2 * time.Second

// Stream names.
const (
	StreamEvents = "FITFORGE_EVENTS"
)

// Subject constants.
const (
	SubjectUsageEvent = "fitforge.events.usage"
)

// Usage outcome values carried on UsageEvent.Status.
const (
	StatusSuccess         = "success"
	StatusProviderError   = "provider_error"
	StatusExtractionError = "extraction_error"
)

// UsageEvent is published after each AI gateway request reaches the model
// provider, successful or not, and is persisted asynchronously as the user's
// request history.
type UsageEvent struct {
	UserID     uuid.UUID `json:"user_id"`
	Action     string    `json:"action"`
	Status     string    `json:"status"`
	DurationMs int64     `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}
