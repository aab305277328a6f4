package quota

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// gatedActions lists the actions consuming monthly free-tier allowance.
// Everything else always passes the quota check.
var gatedActions = map[string]bool{
	"generateRoutine": true,
}

// Service tracks per-user, per-calendar-month usage of gated AI actions.
type Service struct {
	store Store
	limit int
	now   func() time.Time
}

func NewService(store Store, freeLimitPerMonth int) *Service {
	return &Service{
		store: store,
		limit: freeLimitPerMonth,
		now:   time.Now,
	}
}

// MonthKey buckets wall-clock time into a "YYYY-M" key, normalized to UTC so
// month boundaries do not depend on server region.
func MonthKey(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%d-%d", t.Year(), int(t.Month()))
}

// Check decides whether the user may run the action this month.
// A missing user record fails open: a legitimate first-time user must never
// be blocked on infrastructure lag. Storage errors also fail open.
func (s *Service) Check(ctx context.Context, userID uuid.UUID, action string) (Decision, error) {
	if !gatedActions[action] {
		return Decision{Allowed: true}, nil
	}

	monthKey := MonthKey(s.now())
	found, isPremium, count, err := s.store.GetMonthUsage(ctx, userID, action, monthKey)
	if err != nil {
		slog.Warn("quota: usage lookup failed, allowing request", "user_id", userID, "error", err)
		return Decision{Allowed: true}, nil
	}
	if !found {
		return Decision{Allowed: true}, nil
	}
	if isPremium {
		return Decision{Allowed: true, IsPremium: true}, nil
	}

	if count >= s.limit {
		return Decision{
			Allowed: false,
			Reason:  ReasonPremiumLimitReached,
			Limit:   s.limit,
			Current: count,
		}, nil
	}

	return Decision{Allowed: true, Limit: s.limit, Current: count}, nil
}

// Increment records one completed use of a gated action for the current
// month. Called only after the downstream AI action fully succeeded.
// Failures are logged and swallowed: the result was already produced, so at
// worst usage is slightly under-counted.
func (s *Service) Increment(ctx context.Context, userID uuid.UUID, action string) {
	if !gatedActions[action] {
		return
	}

	monthKey := MonthKey(s.now())
	if err := s.store.IncrementMonthUsage(ctx, userID, action, monthKey); err != nil {
		slog.Error("quota: increment failed after successful action",
			"user_id", userID, "action", action, "month", monthKey, "error", err)
	}
}

// StatusFor returns the user's current monthly usage for API display.
func (s *Service) StatusFor(ctx context.Context, userID uuid.UUID) (*Status, error) {
	monthKey := MonthKey(s.now())
	found, isPremium, count, err := s.store.GetMonthUsage(ctx, userID, "generateRoutine", monthKey)
	if err != nil {
		return nil, fmt.Errorf("getting quota status: %w", err)
	}
	if !found {
		return &Status{MonthKey: monthKey, Limit: s.limit}, nil
	}
	return &Status{
		IsPremium: isPremium,
		MonthKey:  monthKey,
		Used:      count,
		Limit:     s.limit,
	}, nil
}
