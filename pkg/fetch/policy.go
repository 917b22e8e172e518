package fetch

import (
	"math"
	"time"
)

// Default retry policy values.
const (
	DefaultMaxRetries   = 5
	DefaultInitialDelay = 1 * time.Second
	DefaultMaxDelay     = 300 * time.Second
	DefaultMultiplier   = 2.0
)

// Policy controls how transfer attempts are retried. Delays grow
// exponentially between attempts and are clamped to MaxDelay.
type Policy struct {
	// MaxRetries is the number of retries after the initial attempt.
	// Zero means exactly one attempt and no sleeping.
	MaxRetries uint32
	// InitialDelay is the delay before the first retry.
	InitialDelay time.Duration
	// MaxDelay caps the backoff delay.
	MaxDelay time.Duration
	// Multiplier is the exponential growth factor applied per attempt.
	Multiplier float64
}

// DefaultPolicy returns the retry policy used when the config does not
// override it.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:   DefaultMaxRetries,
		InitialDelay: DefaultInitialDelay,
		MaxDelay:     DefaultMaxDelay,
		Multiplier:   DefaultMultiplier,
	}
}

// DelayFor returns the delay to sleep after the given 0-based attempt fails:
// min(MaxDelay, InitialDelay * Multiplier^attempt).
func (p Policy) DelayFor(attempt uint32) time.Duration {
	d := float64(p.InitialDelay) * math.Pow(p.Multiplier, float64(attempt))
	if d > float64(p.MaxDelay) {
		return p.MaxDelay
	}
	return time.Duration(d)
}

// ShouldRetry reports whether another attempt should follow the given
// 0-based failed attempt.
func (p Policy) ShouldRetry(attempt uint32) bool {
	return attempt < p.MaxRetries
}
