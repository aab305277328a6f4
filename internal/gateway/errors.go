package gateway

import "fmt"

// UnknownActionError signals a request naming an action outside the static table.
type UnknownActionError struct {
	Action string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unknown action: %s", e.Action)
}

// RateLimitError signals burst throttling; retryable after the stated delay.
type RateLimitError struct {
	RetryAfter int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %ds", e.RetryAfter)
}

// QuotaError signals the monthly free-tier cap was reached.
type QuotaError struct {
	Reason  string
	Limit   int
	Current int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("monthly limit reached: %d/%d", e.Current, e.Limit)
}

// ExtractionError signals that the model completion held no usable JSON.
type ExtractionError struct {
	Action Action
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("could not extract structured result for %s", e.Action)
}
