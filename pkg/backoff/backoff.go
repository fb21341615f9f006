// Package backoff computes capped exponential retry delays with jitter.
package backoff

import (
	"math/rand"
	"time"
)

// Config shapes the delay curve.
type Config struct {
	// BaseDelay is the wait after the first failure.
	BaseDelay time.Duration
	// MaxDelay caps the grown delay.
	MaxDelay time.Duration
	// Factor grows the delay per consecutive failure.
	Factor float64
	// Jitter spreads delays so retriers started together drift apart.
	Jitter float64
}

var defaultConfig = Config{
	BaseDelay: time.Second,
	MaxDelay:  20 * time.Second,
	Factor:    1.6,
	Jitter:    0.2,
}

// Backoff returns the wait before retry number retries on the default
// curve.
func Backoff(retries int) time.Duration {
	return defaultConfig.Backoff(retries)
}

// Backoff returns the wait before retry number retries.
func (c *Config) Backoff(retries int) time.Duration {
	if retries <= 0 {
		return c.BaseDelay
	}
	d := float64(c.BaseDelay)
	max := float64(c.MaxDelay)
	for ; retries > 0 && d < max; retries-- {
		d *= c.Factor
	}
	if d > max {
		d = max
	}
	d *= 1 + c.Jitter*(rand.Float64()*2-1)
	if d < 0 {
		return 0
	}
	return time.Duration(d)
}
