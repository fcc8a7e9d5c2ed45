package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// LimitConfig is one budget: at most Max requests per Window.
type LimitConfig struct {
	Window time.Duration
	Max    int64
}

// Policy maps scopes to their stacked limits.
type Policy struct {
	Limits map[Scope][]LimitConfig
}

// DefaultPolicy reflects the product's traffic shape: claims are rare and
// irreversible, card views are the hot path.
func DefaultPolicy() *Policy {
	return &Policy{
		Limits: map[Scope][]LimitConfig{
			ScopeGlobal: {
				{Window: time.Minute, Max: 300},
			},
			ScopeWrite: {
				{Window: time.Minute, Max: 20},
				{Window: time.Hour, Max: 100},
			},
			ScopeRead: {
				{Window: time.Minute, Max: 240},
			},
		},
	}
}

// LimitExceeded describes which budget a rejected request blew through.
type LimitExceeded struct {
	Scope  Scope
	Config LimitConfig
	Count  int64
}

// PolicyLimiter checks every limit of every applicable scope.
type PolicyLimiter struct {
	store  Store
	policy *Policy
}

// NewPolicyLimiter creates a policy-driven limiter.
func NewPolicyLimiter(store Store, policy *Policy) *PolicyLimiter {
	return &PolicyLimiter{
		store:  store,
		policy: policy,
	}
}

// Allow records the request against each applicable budget and reports the
// first one exceeded, if any.
func (l *PolicyLimiter) Allow(ctx context.Context, clientKey string, scopes []Scope) (bool, *LimitExceeded, error) {
	for _, scope := range scopes {
		limits, ok := l.policy.Limits[scope]
		if !ok {
			continue
		}

		for _, limit := range limits {
			key := fmt.Sprintf("%s:%s:%d", clientKey, scope, limit.Window.Milliseconds())

			count, err := l.store.Record(ctx, key, limit.Window)
			if err != nil {
				return false, nil, err
			}

			if count > limit.Max {
				return false, &LimitExceeded{
					Scope:  scope,
					Config: limit,
					Count:  count,
				}, nil
			}
		}
	}

	return true, nil, nil
}

// Store exposes the backing store for per-endpoint custom limits.
func (l *PolicyLimiter) Store() Store {
	return l.store
}
