package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Summary returns the single message when only one field failed,
// otherwise a generic message; the per-field detail is in ToMap.
func (v ValidationErrors) Summary() string {
	if len(v) == 1 {
		return v[0].Message
	}
	return "Validation failed"
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// SentinelNone is the literal placeholder the frontend submits for unset fields.
const SentinelNone = "None"

// IsSentinel reports whether s is the "None" placeholder.
func IsSentinel(s string) bool {
	return s == SentinelNone
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

var (
	passwordCharsetRegex = regexp.MustCompile(`^[A-Za-z\d@$!%*?&]{8,}$`)
	lowercaseRegex       = regexp.MustCompile(`[a-z]`)
	digitRegex           = regexp.MustCompile(`\d`)
	specialCharRegex     = regexp.MustCompile(`[@$!%*?&]`)
)

// IsValidPassword enforces the password policy: at least 8 characters drawn from
// letters, digits and @$!%*?&, with at least one lowercase letter, one digit and
// one of the special characters.
func IsValidPassword(password string) bool {
	return passwordCharsetRegex.MatchString(password) &&
		lowercaseRegex.MatchString(password) &&
		digitRegex.MatchString(password) &&
		specialCharRegex.MatchString(password)
}

// PasswordPolicyMessage describes IsValidPassword to API clients.
const PasswordPolicyMessage = "Password need to meet these conditions:\n" +
	"1. At least 8 characters long\n" +
	"2. Contains at least one lowercase letter\n" +
	"3. Contains at least one digit\n" +
	"4. Contains at least one special character (e.g., @$!%*?&)!"

// ErrMalformedPayload marks a request body that decoded but lacks a required field.
var ErrMalformedPayload = errors.New("Malformed request payload")

// MissingField wraps ErrMalformedPayload with the name of the absent field.
func MissingField(field string) error {
	return fmt.Errorf("%w: missing field %q", ErrMalformedPayload, field)
}
