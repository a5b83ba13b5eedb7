package client

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Login posts credentials to the password login endpoint. A 200 yields the
// decoded session and user; any other status is returned as a typed
// *LoginFailedError rather than a StatusError, so callers can present
// "invalid credentials" distinctly from transport failures.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}
	resp, err := c.do(ctx, http.MethodPost, "/auth/login/password", body, false)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		drain(resp.Body)
		return nil, &LoginFailedError{StatusCode: resp.StatusCode}
	}

	var result LoginResult
	if err := decodeJSON(resp.Body, "/auth/login/password", &result); err != nil {
		return nil, err
	}
	if err := result.validate(); err != nil {
		return nil, err
	}
	return &result, nil
}

// validate applies parse-don't-trust checks to a decoded login payload.
func (r *LoginResult) validate() error {
	if r.Session.SessionKey == "" {
		return fmt.Errorf("invalid login response: empty session_key")
	}
	if r.Session.Expires.IsZero() {
		return fmt.Errorf("invalid login response: missing expires")
	}
	if r.Session.Expires.Before(r.Session.Created) {
		return fmt.Errorf("invalid login response: expires %s precedes created %s",
			r.Session.Expires.Format(time.RFC3339), r.Session.Created.Format(time.RFC3339))
	}
	return nil
}

// NotifyLogout tells the server the session is ending. It satisfies
// session.LogoutNotifier; the manager swallows any failure.
func (c *Client) NotifyLogout(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/auth/logout", nil, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	drain(resp.Body)

	if !is2xx(resp.StatusCode) {
		return &StatusError{Endpoint: "/auth/logout", StatusCode: resp.StatusCode}
	}
	return nil
}
