package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	dErrors "github.com/mjza/mra-core-sub001/pkg/domain-errors"
	"github.com/mjza/mra-core-sub001/pkg/platform/httputil"
	"github.com/mjza/mra-core-sub001/pkg/requestcontext"
)

// PrincipalResolver resolves a bearer token to the authenticated user's id.
// Token issuance and verification live in the external authentication
// service; this layer only consumes its answer.
type PrincipalResolver interface {
	Resolve(ctx context.Context, token string) (int64, error)
}

// RequireAuth rejects requests without a resolvable bearer token and
// attaches the principal's user id to the context. Auth failures map to 403
// so unauthenticated and unauthorized callers are indistinguishable.
func RequireAuth(resolver PrincipalResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.NewKind(dErrors.CodeForbidden,
					dErrors.KindNotAuthorized, "You must provide a valid token."))
				return
			}

			userID, err := resolver.Resolve(ctx, token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.NewKind(dErrors.CodeForbidden,
					dErrors.KindNotAuthorized, "You must provide a valid token."))
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithUserID(ctx, userID)))
		})
	}
}
