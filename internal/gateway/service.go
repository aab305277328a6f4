package gateway

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fitforge-app/fitforge/internal/events"
	"github.com/fitforge-app/fitforge/internal/metrics"
	"github.com/fitforge-app/fitforge/internal/quota"
)

// ModelClient issues a single completion call to the model provider.
type ModelClient interface {
	Complete(ctx context.Context, system, user, imageURL string) (string, error)
}

// QuotaChecker gates monthly free-tier usage.
type QuotaChecker interface {
	Check(ctx context.Context, userID uuid.UUID, action string) (quota.Decision, error)
	Increment(ctx context.Context, userID uuid.UUID, action string)
}

// UsagePublisher records completed requests asynchronously. May be nil.
type UsagePublisher interface {
	PublishUsage(ctx context.Context, event events.UsageEvent) error
}

// Request is the inbound gateway payload.
type Request struct {
	Action string         `json:"action"`
	Data   map[string]any `json:"data"`
}

// Service orchestrates one AI request: rate check, quota check, dispatch,
// model call, extraction, and the success-gated usage increment.
type Service struct {
	limiter   *RateLimiter
	quota     QuotaChecker
	model     ModelClient
	publisher UsagePublisher
}

func NewService(limiter *RateLimiter, quotaSvc QuotaChecker, model ModelClient, publisher UsagePublisher) *Service {
	return &Service{
		limiter:   limiter,
		quota:     quotaSvc,
		model:     model,
		publisher: publisher,
	}
}

// Handle runs the full pipeline and returns the extracted result payload.
// Every failure path returns one of the typed gateway errors (or
// ai.ProviderError); the HTTP layer maps them onto the wire contract.
func (s *Service) Handle(ctx context.Context, userID uuid.UUID, req Request) (map[string]any, error) {
	action, ok := ParseAction(req.Action)
	if !ok {
		metrics.AIRequestsTotal.WithLabelValues(req.Action, "unknown_action").Inc()
		return nil, &UnknownActionError{Action: req.Action}
	}

	if res := s.limiter.Check(userID.String(), action); !res.Allowed {
		metrics.RateLimitDeniedTotal.WithLabelValues(string(action)).Inc()
		metrics.AIRequestsTotal.WithLabelValues(string(action), "rate_limited").Inc()
		return nil, &RateLimitError{RetryAfter: res.RetryAfter}
	}

	decision, err := s.quota.Check(ctx, userID, string(action))
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		metrics.QuotaDeniedTotal.Inc()
		metrics.AIRequestsTotal.WithLabelValues(string(action), "quota_exceeded").Inc()
		return nil, &QuotaError{Reason: decision.Reason, Limit: decision.Limit, Current: decision.Current}
	}

	prepared, err := Dispatch(action, req.Data)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	completion, err := s.model.Complete(ctx, prepared.System, prepared.Instruction, prepared.ImageURL)
	if err != nil {
		metrics.AIRequestsTotal.WithLabelValues(string(action), "provider_error").Inc()
		s.publishUsage(userID, action, events.StatusProviderError, time.Since(start))
		return nil, err
	}

	payload, err := ExtractForAction(action, completion)
	if err != nil {
		metrics.AIRequestsTotal.WithLabelValues(string(action), "extraction_error").Inc()
		s.publishUsage(userID, action, events.StatusExtractionError, time.Since(start))
		slog.Warn("gateway: completion held no parseable JSON",
			"action", action, "user_id", userID, "completion_len", len(completion))
		return nil, err
	}

	// The quota increment is the only side effect gated behind full
	// success: failed model calls never consume free-tier allowance.
	s.quota.Increment(ctx, userID, string(action))

	metrics.AIRequestsTotal.WithLabelValues(string(action), "success").Inc()
	s.publishUsage(userID, action, events.StatusSuccess, time.Since(start))

	return payload, nil
}

// publishUsage is fire-and-forget: history persistence must never fail or
// delay a user-visible request.
func (s *Service) publishUsage(userID uuid.UUID, action Action, status string, elapsed time.Duration) {
	if s.publisher == nil {
		return
	}
	event := events.UsageEvent{
		UserID:     userID,
		Action:     string(action),
		Status:     status,
		DurationMs: elapsed.Milliseconds(),
		Timestamp:  time.Now().UTC(),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.publisher.PublishUsage(ctx, event); err != nil {
		slog.Warn("gateway: publishing usage event failed", "action", action, "error", err)
	}
}
