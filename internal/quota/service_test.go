package quota

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	found     bool
	isPremium bool
	counts    map[string]int
	getErr    error
	incErr    error
	lastKey   string
}

func (f *fakeStore) GetMonthUsage(_ context.Context, _ uuid.UUID, action, monthKey string) (bool, bool, int, error) {
	if f.getErr != nil {
		return false, false, 0, f.getErr
	}
	f.lastKey = monthKey
	return f.found, f.isPremium, f.counts[action+":"+monthKey], nil
}

func (f *fakeStore) IncrementMonthUsage(_ context.Context, _ uuid.UUID, action, monthKey string) error {
	if f.incErr != nil {
		return f.incErr
	}
	if f.counts == nil {
		f.counts = map[string]int{}
	}
	f.counts[action+":"+monthKey]++
	return nil
}

func newTestService(store *fakeStore, limit int) *Service {
	svc := NewService(store, limit)
	svc.now = func() time.Time { return time.Date(2026, time.September, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2026-9", MonthKey(time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2026-12", MonthKey(time.Date(2026, time.December, 31, 23, 59, 0, 0, time.UTC)))

	// Normalized to UTC: a local time just past midnight on the 1st may
	// still belong to the previous UTC month.
	loc := time.FixedZone("UTC+10", 10*3600)
	assert.Equal(t, "2026-8", MonthKey(time.Date(2026, time.September, 1, 5, 0, 0, 0, loc)))
}

func TestCheck_UngatedActionAlwaysAllowed(t *testing.T) {
	store := &fakeStore{found: true, counts: map[string]int{}}
	svc := newTestService(store, 3)

	d, err := svc.Check(context.Background(), uuid.New(), "calculateMacros")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestCheck_FailsOpenOnMissingRecord(t *testing.T) {
	store := &fakeStore{found: false}
	svc := newTestService(store, 3)

	d, err := svc.Check(context.Background(), uuid.New(), "generateRoutine")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestCheck_FailsOpenOnStoreError(t *testing.T) {
	store := &fakeStore{getErr: errors.New("db down")}
	svc := newTestService(store, 3)

	d, err := svc.Check(context.Background(), uuid.New(), "generateRoutine")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestCheck_PremiumUnlimited(t *testing.T) {
	store := &fakeStore{found: true, isPremium: true, counts: map[string]int{
		"generateRoutine:2026-9": 9999,
	}}
	svc := newTestService(store, 3)

	d, err := svc.Check(context.Background(), uuid.New(), "generateRoutine")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.True(t, d.IsPremium)
}

func TestCheck_FreeTierCapAndIncrement(t *testing.T) {
	store := &fakeStore{found: true, counts: map[string]int{}}
	svc := newTestService(store, 3)
	ctx := context.Background()
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		d, err := svc.Check(ctx, userID, "generateRoutine")
		require.NoError(t, err)
		require.True(t, d.Allowed, "call %d should be allowed", i+1)
		assert.Equal(t, i, d.Current)
		svc.Increment(ctx, userID, "generateRoutine")
	}

	d, err := svc.Check(ctx, userID, "generateRoutine")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonPremiumLimitReached, d.Reason)
	assert.Equal(t, 3, d.Limit)
	assert.Equal(t, 3, d.Current)
}

func TestCheck_NewMonthResetsImplicitly(t *testing.T) {
	store := &fakeStore{found: true, counts: map[string]int{
		"generateRoutine:2026-9": 3,
	}}
	svc := newTestService(store, 3)
	ctx := context.Background()
	userID := uuid.New()

	d, err := svc.Check(ctx, userID, "generateRoutine")
	require.NoError(t, err)
	require.False(t, d.Allowed)

	// Advance into October: a new month key means a fresh counter.
	svc.now = func() time.Time { return time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC) }
	d, err = svc.Check(ctx, userID, "generateRoutine")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 0, d.Current)
}

func TestIncrement_SwallowsStoreError(t *testing.T) {
	store := &fakeStore{found: true, incErr: errors.New("write failed")}
	svc := newTestService(store, 3)

	// Must not panic or surface the error.
	svc.Increment(context.Background(), uuid.New(), "generateRoutine")
}

func TestIncrement_IgnoresUngatedActions(t *testing.T) {
	store := &fakeStore{found: true, counts: map[string]int{}}
	svc := newTestService(store, 3)

	svc.Increment(context.Background(), uuid.New(), "generateDiet")
	assert.Empty(t, store.counts)
}

func TestStatusFor(t *testing.T) {
	store := &fakeStore{found: true, counts: map[string]int{
		"generateRoutine:2026-9": 2,
	}}
	svc := newTestService(store, 3)

	st, err := svc.StatusFor(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 2, st.Used)
	assert.Equal(t, 3, st.Limit)
	assert.Equal(t, "2026-9", st.MonthKey)
}
