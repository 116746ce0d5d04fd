// Package quota caps the number of generative API calls per period.
package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/esil-events/chatbot/pkg/models"
)

// ErrQuotaExceeded is returned when the call quota for the current
// period is used up.
var ErrQuotaExceeded = errors.New("quota exceeded")

// Counter reports how many generative API calls were made since a
// given time. The history log implements it.
type Counter interface {
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

// Status describes quota consumption in the current period.
type Status struct {
	Policy    models.QuotaPolicy `json:"policy"`
	Used      int64              `json:"used"`
	Remaining int64              `json:"remaining"`
}

// Guard checks generative API calls against a quota policy.
type Guard struct {
	policy  models.QuotaPolicy
	counter Counter
	now     func() time.Time
}

// New creates a Guard. A policy with MaxCalls <= 0 disables enforcement.
func New(policy models.QuotaPolicy, counter Counter) *Guard {
	return &Guard{policy: policy, counter: counter, now: time.Now}
}

// Enabled reports whether the guard enforces a limit.
func (g *Guard) Enabled() bool {
	return g.policy.MaxCalls > 0
}

// Check returns ErrQuotaExceeded if the current period's calls have
// reached the policy limit.
func (g *Guard) Check(ctx context.Context) error {
	if !g.Enabled() {
		return nil
	}
	used, err := g.counter.CountSince(ctx, g.periodStart())
	if err != nil {
		return fmt.Errorf("quota check: %w", err)
	}
	if used >= g.policy.MaxCalls {
		return ErrQuotaExceeded
	}
	return nil
}

// Status returns the quota status for the current period.
func (g *Guard) Status(ctx context.Context) (Status, error) {
	used := int64(0)
	if g.counter != nil {
		var err error
		used, err = g.counter.CountSince(ctx, g.periodStart())
		if err != nil {
			return Status{}, fmt.Errorf("quota status: %w", err)
		}
	}
	remaining := g.policy.MaxCalls - used
	if remaining < 0 {
		remaining = 0
	}
	return Status{Policy: g.policy, Used: used, Remaining: remaining}, nil
}

func (g *Guard) periodStart() time.Time {
	now := g.now().UTC()
	switch g.policy.Period {
	case models.QuotaMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	default: // daily
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
}
