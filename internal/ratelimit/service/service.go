// Package service decides whether a client may perform another request in
// the current window.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/mjza/mra-core-sub001/internal/ratelimit/metrics"
	"github.com/mjza/mra-core-sub001/internal/ratelimit/models"
	"github.com/mjza/mra-core-sub001/pkg/requestcontext"
)

// RateLimitedMessage is returned verbatim to throttled clients.
const RateLimitedMessage = "Too many requests from this IP, please try again after 15 minutes."

const (
	DefaultWindow = 15 * time.Minute
	DefaultLimit  = 10
)

// Store counts hits per key in fixed windows.
type Store interface {
	Incr(ctx context.Context, key string, size time.Duration, now time.Time) (int, time.Time, error)
}

type Service struct {
	store   Store
	window  time.Duration
	limit   int
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithWindow(window time.Duration) Option {
	return func(s *Service) {
		if window > 0 {
			s.window = window
		}
	}
}

func WithLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		window: DefaultWindow,
		limit:  DefaultLimit,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Check counts one hit for the calling client in the given scope and
// reports whether it fits under the cap. All operations sharing a scope
// draw from the same budget. The check fails open on storage errors so an
// unavailable counter never takes requests down with it.
func (s *Service) Check(ctx context.Context, scope string) models.Decision {
	now := requestcontext.Now(ctx)
	key := scope + ":" + requestcontext.ClientIP(ctx)

	count, start, err := s.store.Incr(ctx, key, s.window, now)
	if err != nil {
		s.logger.WarnContext(ctx, "rate limit counter unavailable",
			slog.String("scope", scope),
			slog.String("error", err.Error()))
		s.metrics.RecordDecision(scope, "error")
		return models.Decision{Allowed: true, Limit: s.limit, Remaining: s.limit, ResetAt: now.Add(s.window)}
	}

	resetAt := start.Add(s.window)
	decision := models.Decision{
		Allowed:   count <= s.limit,
		Limit:     s.limit,
		Remaining: max(s.limit-count, 0),
		ResetAt:   resetAt,
	}
	if !decision.Allowed {
		decision.RetryAfter = resetAt.Sub(now)
		if decision.RetryAfter <= 0 {
			decision.RetryAfter = time.Second
		}
		s.metrics.RecordDecision(scope, "limited")
		return decision
	}

	s.metrics.RecordDecision(scope, "allowed")
	return decision
}

func (s *Service) Window() time.Duration { return s.window }
