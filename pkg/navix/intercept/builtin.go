package intercept

import (
	"log/slog"
	"time"

	"go.uber.org/atomic"

	"github.com/xianghaizheng/Navix-UI-Navigator/pkg/navix/internal"
)

// Default priorities for the built-in interceptors. Security-style gates
// run first, observability gates last.
const (
	PriorityBlocklist = 200
	PriorityRateLimit = 150
	PriorityLogging   = 100
)

// LoggingInterceptor logs every navigation attempt and always allows it.
type LoggingInterceptor struct {
	priority int
	log      *slog.Logger
}

// NewLoggingInterceptor returns a logging interceptor with the given
// priority (PriorityLogging when zero).
func NewLoggingInterceptor(priority int) *LoggingInterceptor {
	if priority == 0 {
		priority = PriorityLogging
	}
	return &LoggingInterceptor{priority: priority, log: internal.GetLogger()}
}

func (l *LoggingInterceptor) Intercept(routeKey string, params map[string]any) bool {
	l.log.Info("navigation attempt", "route", routeKey, "params", params)
	return true
}

func (l *LoggingInterceptor) Priority() int { return l.priority }

// BlocklistInterceptor vetoes navigation to an explicit set of routes.
type BlocklistInterceptor struct {
	priority int
	blocked  map[string]struct{}
	log      *slog.Logger
}

// NewBlocklistInterceptor returns a blocklist interceptor with the given
// priority (PriorityBlocklist when zero).
func NewBlocklistInterceptor(priority int) *BlocklistInterceptor {
	if priority == 0 {
		priority = PriorityBlocklist
	}
	return &BlocklistInterceptor{
		priority: priority,
		blocked:  make(map[string]struct{}),
		log:      internal.GetFrameworkLogger(),
	}
}

// Block adds routes to the blocklist.
func (b *BlocklistInterceptor) Block(routeKeys ...string) {
	for _, k := range routeKeys {
		b.blocked[k] = struct{}{}
	}
}

func (b *BlocklistInterceptor) Intercept(routeKey string, _ map[string]any) bool {
	if _, blocked := b.blocked[routeKey]; blocked {
		b.log.Warn("route blocked by interceptor", "route", routeKey)
		return false
	}
	return true
}

func (b *BlocklistInterceptor) Priority() int { return b.priority }

// RateLimitInterceptor vetoes navigation to a route once it has been
// attempted more than maxRequests times inside a sliding window.
type RateLimitInterceptor struct {
	priority    int
	maxRequests int
	window      time.Duration
	requests    map[string][]time.Time
	now         func() time.Time

	allowed *atomic.Int64
	blocked *atomic.Int64

	log *slog.Logger
}

// NewRateLimitInterceptor returns a rate limiter allowing maxRequests
// navigations per route within the window, at the given priority
// (PriorityRateLimit when zero).
func NewRateLimitInterceptor(maxRequests int, window time.Duration, priority int) *RateLimitInterceptor {
	if priority == 0 {
		priority = PriorityRateLimit
	}
	return &RateLimitInterceptor{
		priority:    priority,
		maxRequests: maxRequests,
		window:      window,
		requests:    make(map[string][]time.Time),
		now:         time.Now,
		allowed:     atomic.NewInt64(0),
		blocked:     atomic.NewInt64(0),
		log:         internal.GetFrameworkLogger(),
	}
}

func (r *RateLimitInterceptor) Intercept(routeKey string, _ map[string]any) bool {
	current := r.now()
	r.expire(current)

	if len(r.requests[routeKey]) >= r.maxRequests {
		r.blocked.Inc()
		r.log.Warn("rate limit exceeded", "route", routeKey, "max", r.maxRequests)
		return false
	}

	r.requests[routeKey] = append(r.requests[routeKey], current)
	r.allowed.Inc()
	return true
}

func (r *RateLimitInterceptor) Priority() int { return r.priority }

// Stats returns the running totals of allowed and blocked attempts.
func (r *RateLimitInterceptor) Stats() (allowed, blocked int64) {
	return r.allowed.Load(), r.blocked.Load()
}

func (r *RateLimitInterceptor) expire(current time.Time) {
	for route, times := range r.requests {
		kept := times[:0]
		for _, t := range times {
			if current.Sub(t) < r.window {
				kept = append(kept, t)
			}
		}
		if len(kept) == 0 {
			delete(r.requests, route)
			continue
		}
		r.requests[route] = kept
	}
}
