package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/reimbursement"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.Summary(), validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, validator.ErrMalformedPayload):
		BadRequest(w, err.Error(), nil)

	// Auth domain errors
	case errors.Is(err, auth.ErrLoginFailed):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrNotLoggedIn),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrSessionNotFound),
		errors.Is(err, auth.ErrSessionExpired):
		Unauthorized(w, auth.ErrNotLoggedIn.Error())

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, user.ErrNoUsers):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, err.Error())
	case errors.Is(err, user.ErrManagerRequired),
		errors.Is(err, user.ErrCannotDeleteSelf):
		Forbidden(w, err.Error())

	// Reimbursement domain errors
	case errors.Is(err, reimbursement.ErrReimbursementNotFound),
		errors.Is(err, reimbursement.ErrDeleteNotFound),
		errors.Is(err, reimbursement.ErrOwnerNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, reimbursement.ErrInvalidStatusFilter),
		errors.Is(err, reimbursement.ErrInvalidRoleFilter):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
