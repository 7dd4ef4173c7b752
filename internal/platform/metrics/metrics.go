package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps process-wide request counters.
type Collector struct {
	totalRequests   uint64
	clientErrors    uint64
	serverErrors    uint64
	notFound        uint64
	validationFails uint64
	conflicts       uint64
	rateLimited     uint64
	totalDurationMs uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.totalRequests, 1)
	switch {
	case status >= 500:
		atomic.AddUint64(&c.serverErrors, 1)
	case status >= 400:
		atomic.AddUint64(&c.clientErrors, 1)
	}
	switch status {
	case 404:
		atomic.AddUint64(&c.notFound, 1)
	case 409:
		atomic.AddUint64(&c.conflicts, 1)
	case 422:
		atomic.AddUint64(&c.validationFails, 1)
	case 429:
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requests_total":          total,
		"client_errors_total":     atomic.LoadUint64(&c.clientErrors),
		"server_errors_total":     atomic.LoadUint64(&c.serverErrors),
		"not_found_total":         atomic.LoadUint64(&c.notFound),
		"validation_failed_total": atomic.LoadUint64(&c.validationFails),
		"conflicts_total":         atomic.LoadUint64(&c.conflicts),
		"rate_limited_total":      atomic.LoadUint64(&c.rateLimited),
		"avg_duration_ms":         avg,
		"total_duration_ms":       totalMs,
	}
}
