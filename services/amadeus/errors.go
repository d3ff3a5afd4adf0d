package amadeus

import "fmt"

// AuthError indicates the client-credentials exchange failed. It is fatal
// for the triggering call and never retried.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("amadeus authentication failed: %s", e.Message)
}

func NewAuthError(msg string) error {
	return &AuthError{Message: msg}
}

// APIError wraps a non-2xx or transport failure from a data endpoint,
// keeping the status and response body for diagnosis.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("amadeus request failed: %s", e.Body)
	}
	return fmt.Sprintf("amadeus API error: %d - %s", e.Status, e.Body)
}
