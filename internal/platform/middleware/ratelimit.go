package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/mjza/mra-core-sub001/internal/ratelimit/service"
	domainerrors "github.com/mjza/mra-core-sub001/pkg/domain-errors"
	"github.com/mjza/mra-core-sub001/pkg/platform/httputil"
)

// RateLimit throttles by client IP. Every route mounted under the same
// scope shares one budget, so alternating between sibling endpoints does
// not buy extra requests.
func RateLimit(limiter *service.Service, scope string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := limiter.Check(r.Context(), scope)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))

			if !decision.Allowed {
				retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				logger.WarnContext(r.Context(), "request rate limited", slog.String("scope", scope))
				httputil.WriteError(w,
					domainerrors.NewKind(domainerrors.CodeRateLimited, domainerrors.KindRateLimited, service.RateLimitedMessage))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
