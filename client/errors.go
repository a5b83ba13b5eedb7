package client

import "fmt"

// StatusError is a hard failure: a non-2xx, non-404 response from the
// server. It carries the endpoint and status code for user-facing display.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch %s: status %d", e.Endpoint, e.StatusCode)
}

// LoginFailedError is the typed failure for a rejected login (bad
// credentials or any non-200 response). Callers inspect it with errors.As
// and render "invalid credentials" without treating it as a transport
// failure.
type LoginFailedError struct {
	StatusCode int
}

func (e *LoginFailedError) Error() string {
	return fmt.Sprintf("login failed: status %d", e.StatusCode)
}
