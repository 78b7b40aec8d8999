package lockout

import (
	"context"
	"time"
)

// Store is the persistence contract for failure counters and locks.
// Implementations must make Fail atomic with respect to concurrent calls for
// the same key.
type Store interface {
	// Fail records one failure inside the counting window and returns the
	// resulting consecutive failure count.
	Fail(ctx context.Context, key string, window time.Duration) (int, error)

	// Lock marks the key locked until the given time.
	Lock(ctx context.Context, key string, until time.Time) error

	// LockedUntil returns the lock expiry for the key, or the zero time when
	// no lock is active.
	LockedUntil(ctx context.Context, key string) (time.Time, error)

	// Reset clears the counter and any active lock for the key.
	Reset(ctx context.Context, key string) error
}

// Tracker applies a lockout policy on top of a Store.
type Tracker struct {
	store  Store
	config Config
	now    func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the time source, letting tests control lock expiry.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// NewTracker creates a Tracker with the given store and policy.
func NewTracker(store Store, config Config, opts ...Option) (*Tracker, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	t := &Tracker{
		store:  store,
		config: config,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Status reports whether the key is currently locked and, if so, how long
// until attempts are accepted again.
func (t *Tracker) Status(ctx context.Context, key string) (bool, time.Duration, error) {
	until, err := t.store.LockedUntil(ctx, key)
	if err != nil {
		return false, 0, err
	}

	now := t.now()
	if until.After(now) {
		return true, until.Sub(now), nil
	}
	return false, 0, nil
}

// Fail counts one failed attempt. Reaching the configured threshold locks the
// key and is reported on the same call, so the triggering response can carry
// the lockout flag.
func (t *Tracker) Fail(ctx context.Context, key string) (bool, error) {
	count, err := t.store.Fail(ctx, key, t.config.CounterWindow)
	if err != nil {
		return false, err
	}

	if count < t.config.MaxAttempts {
		return false, nil
	}

	if err := t.store.Lock(ctx, key, t.now().Add(t.config.LockoutPeriod)); err != nil {
		return false, err
	}
	return true, nil
}

// Reset clears the failure counter and any active lock, typically after a
// successful authentication.
func (t *Tracker) Reset(ctx context.Context, key string) error {
	return t.store.Reset(ctx, key)
}
