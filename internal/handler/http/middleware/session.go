package middleware

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// SessionRequired resolves the token placed in the context by jwtauth.Verify
// into an auth.Principal. Requests without a usable session get 401 with
// message, or the generic not-logged-in message when message is empty.
func SessionRequired(authService auth.AuthService, message string) func(http.Handler) http.Handler {
	if message == "" {
		message = auth.ErrNotLoggedIn.Error()
	}
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.Unauthorized(w, message)
				return
			}

			claims, err := jwt.ParseSessionClaims(token)
			if err != nil {
				response.Unauthorized(w, message)
				return
			}

			principal, err := authService.Authenticate(r.Context(), claims.SessionID, claims.UserID)
			if err != nil {
				slog.Warn("session rejected", "session_id", claims.SessionID, "error", err)
				response.Unauthorized(w, message)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
		}
		return http.HandlerFunc(hfn)
	}
}
