package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/handler/http/response"
)

// DenyMessage builds the 403 message shown to a caller with the given role.
type DenyMessage func(role user.Role) string

// DeniedFor formats the caller's role into format.
func DeniedFor(format string) DenyMessage {
	return func(role user.Role) string {
		return fmt.Sprintf(format, role)
	}
}

// Denied always returns message.
func Denied(message string) DenyMessage {
	return func(user.Role) string {
		return message
	}
}

// RequireManager requires manager role. It must run after SessionRequired.
func RequireManager(deny DenyMessage) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := auth.PrincipalFromContext(r.Context())
			if !ok {
				response.HandleError(w, auth.ErrNotLoggedIn)
				return
			}

			if !principal.IsManager() {
				response.Forbidden(w, deny(principal.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
