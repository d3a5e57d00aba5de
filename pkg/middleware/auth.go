package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/stockpile/pkg/apperror"
	"github.com/shashiranjanraj/stockpile/pkg/auth"
	"github.com/shashiranjanraj/stockpile/pkg/logger"
	"github.com/shashiranjanraj/stockpile/pkg/response"
)

// PrincipalResolver loads the current state of a user named by a token.
// A user that no longer exists must be reported as an apperror NotFound.
type PrincipalResolver interface {
	Resolve(ctx context.Context, id uint) (auth.Principal, error)
}

// Authenticate verifies the bearer token, re-reads the user from the
// credential store and attaches the resulting Principal to the request.
// The stored role wins over the role in the token.
func Authenticate(tokens *auth.Tokens, users PrincipalResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearer(r)
			if raw == "" {
				response.Unauthorized(w, "No token provided")
				return
			}

			claims, err := tokens.Validate(raw)
			if err != nil {
				response.Unauthorized(w, "Invalid token")
				return
			}

			p, err := users.Resolve(r.Context(), claims.UserID)
			switch {
			case apperror.Is(err, apperror.KindNotFound):
				response.Unauthorized(w, "Invalid token")
				return
			case err != nil:
				logger.WithCtx(r.Context()).Error("authenticate: resolve user", "user_id", claims.UserID, "error", err)
				response.ErrorWithCause(w, http.StatusInternalServerError, "Failed to authenticate", apperror.Cause(err))
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))
		})
	}
}

func bearer(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}
