package resilience

import "time"

// CircuitBreakerConfig tunes a breaker. Enabled is for the owning client to
// decide whether to build one at all.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

// WithDefaults fills unset or invalid limits; Enabled is left as given.
func (c CircuitBreakerConfig) WithDefaults() CircuitBreakerConfig {
	if c.FailureThreshold < 1 {
		c.FailureThreshold = 5
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = 15 * time.Second
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = 2
	}
	return c
}
