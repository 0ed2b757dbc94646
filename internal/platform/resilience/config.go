package resilience

import "time"

// CircuitBreakerConfig tunes a CircuitBreaker. Zero values fall back to the
// defaults through NormalizeCircuitBreakerConfig.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
		HalfOpenMaxReq:   2,
	}
}

func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	cfg.FailureThreshold = orDefault(cfg.FailureThreshold, defaults.FailureThreshold)
	cfg.HalfOpenMaxReq = orDefault(cfg.HalfOpenMaxReq, defaults.HalfOpenMaxReq)
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	return cfg
}

const defaultRetryBackoff = time.Second

// RetryPolicy retries with linear backoff: attempt n waits n*Backoff.
type RetryPolicy struct {
	MaxRetries int
	Backoff    time.Duration
}

// Delay is the wait before retry number attempt+1.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	backoff := p.Backoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	return time.Duration(attempt+1) * backoff
}

func orDefault(v, fallback int) int {
	if v < 1 {
		return fallback
	}
	return v
}
