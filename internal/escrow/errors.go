package escrow

import (
	"errors"
	"fmt"
	"strings"
)

// The client maps every failed call into one of these error kinds so callers
// can branch with errors.As instead of inspecting status codes.

// ValidationError reports a client-detected problem with user input. It is
// raised before any request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NetworkError reports that a request never reached the service.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError reports a 401 response: the bearer token is missing, expired or
// revoked. Callers should clear any stored credentials; retrying with the same
// token cannot succeed.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "unauthorized"
	}
	return e.Message
}

// NotFoundError reports a 404 response for a named entity.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// ServerError reports any other 4xx/5xx response, carrying the server-supplied
// message when one was returned.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error (HTTP %d)", e.Status)
	}
	return fmt.Sprintf("server error (HTTP %d): %s", e.Status, e.Message)
}

// humanizePatterns maps known server message fragments to user-facing
// phrasing. First match wins.
var humanizePatterns = []struct {
	fragment string
	message  string
}{
	{"already registered", "This email is already registered."},
	{"already exists", "This email is already registered."},
	{"duplicate", "This email is already registered."},
	{"invalid credentials", "Incorrect email or password."},
	{"incorrect password", "Incorrect email or password."},
	{"user not found", "Incorrect email or password."},
	{"token", "Your session has expired. Please sign in again."},
}

// Humanize translates an API error into a message suitable for end users. It
// pattern-matches known server message fragments and falls back to a generic
// phrase per error kind.
func Humanize(err error) string {
	if err == nil {
		return ""
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return "Could not reach the Emagn service. Check your connection and try again."
	}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		return "Your session has expired. Please sign in again."
	}

	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) {
		return fmt.Sprintf("The requested %s could not be found.", notFoundErr.Resource)
	}

	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		lower := strings.ToLower(serverErr.Message)
		for _, p := range humanizePatterns {
			if strings.Contains(lower, p.fragment) {
				return p.message
			}
		}
	}

	return "Something went wrong. Please try again."
}
