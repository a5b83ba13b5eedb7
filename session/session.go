// Package session implements the client-side session lifecycle: the
// session value issued by the server, the validity predicate, and a
// manager that keeps the in-memory session and the secure token store in
// step through restore, login and logout.
package session

import (
	"encoding/json"
	"time"
)

// Session is a point-in-time authentication grant issued by the server.
// It is immutable; login replaces it wholesale and logout clears it
// wholesale. The wire shape (field names, RFC3339 timestamps) matches the
// server's login response exactly.
type Session struct {
	UserID     int       `json:"user_id"`
	SessionKey string    `json:"session_key"`
	LoginID    string    `json:"login_id"`
	Created    time.Time `json:"created"`
	Expires    time.Time `json:"expires"`
}

// Valid is the single authority for "is the caller authenticated":
// a session is valid iff it exists and expires strictly after now.
// It is safe to call on a nil session.
func (s *Session) Valid(now time.Time) bool {
	return s != nil && s.Expires.After(now)
}

// Expired reports whether now is at or past the session's expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.Valid(now)
}

// Decode parses a serialized session record.
func Decode(record []byte) (Session, error) {
	var s Session
	if err := json.Unmarshal(record, &s); err != nil {
		return Session{}, err
	}
	return s, nil
}

// Encode serializes a session for persistence in the token store.
func (s Session) Encode() ([]byte, error) {
	return json.Marshal(s)
}
