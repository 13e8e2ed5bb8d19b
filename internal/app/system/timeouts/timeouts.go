// Package timeouts holds the deadlines handlers put on store and outbound calls.
//
// Tiers:
//   - Ping: health checks
//   - Short: single-document find/insert/update by email or order id
//   - Medium: list reads, payment-gateway calls
//   - Batch: spreadsheet imports and the slot decrements that follow them
package timeouts

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Defaults used until Configure or ConfigureFromEnv changes them.
const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultBatch  = 2 * time.Minute
)

// Config carries timeout overrides. Zero fields keep the current value.
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Batch  time.Duration
}

var (
	mu      sync.RWMutex
	current = defaults()
)

func defaults() Config {
	return Config{Ping: DefaultPing, Short: DefaultShort, Medium: DefaultMedium, Batch: DefaultBatch}
}

func get(pick func(Config) time.Duration) time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return pick(current)
}

func Ping() time.Duration   { return get(func(c Config) time.Duration { return c.Ping }) }
func Short() time.Duration  { return get(func(c Config) time.Duration { return c.Short }) }
func Medium() time.Duration { return get(func(c Config) time.Duration { return c.Medium }) }
func Batch() time.Duration  { return get(func(c Config) time.Duration { return c.Batch }) }

// Current returns a copy of the active configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Configure applies the non-zero fields of cfg. Call it during startup.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	merge(&current, cfg)
}

func merge(dst *Config, src Config) {
	if src.Ping > 0 {
		dst.Ping = src.Ping
	}
	if src.Short > 0 {
		dst.Short = src.Short
	}
	if src.Medium > 0 {
		dst.Medium = src.Medium
	}
	if src.Batch > 0 {
		dst.Batch = src.Batch
	}
}

// Reset restores the defaults. Tests use it.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	current = defaults()
}

// ConfigureFromEnv reads TIMEOUT_PING, TIMEOUT_SHORT, TIMEOUT_MEDIUM and
// TIMEOUT_BATCH (Go duration strings). Invalid or non-positive values are
// ignored. It returns how many values were applied.
func ConfigureFromEnv() int {
	var cfg Config
	applied := 0
	for name, dst := range map[string]*time.Duration{
		"TIMEOUT_PING":   &cfg.Ping,
		"TIMEOUT_SHORT":  &cfg.Short,
		"TIMEOUT_MEDIUM": &cfg.Medium,
		"TIMEOUT_BATCH":  &cfg.Batch,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			*dst = d
			applied++
		}
	}
	Configure(cfg)
	return applied
}

// WithTimeout wraps context.WithTimeout and logs a warning from the returned
// cancel func when the deadline was what ended the operation.
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Batch(), h.Log, "assign users import")
//	defer cancel()
func WithTimeout(parent context.Context, d time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, d)
	return ctx, func() {
		if log != nil && ctx.Err() == context.DeadlineExceeded {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", d))
		}
		cancel()
	}
}
