package mockapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jcarver/wellpath/client"
	"github.com/jcarver/wellpath/internal/secure"
	"github.com/jcarver/wellpath/session"
)

type userRecord struct {
	ID        int
	Username  string
	FirstName string
	LastName  string

	// Argon2id verifier for the password.
	Salt     []byte
	KDF      secure.KDFParams
	Verifier []byte
}

type sessionRecord struct {
	UserID  int
	LoginID string
	Created time.Time
	Expires time.Time
}

// mockKDFParams trades memory hardness for startup speed. The demo server
// holds no real secrets.
func mockKDFParams() secure.KDFParams {
	p := secure.DefaultKDFParams()
	p.MemoryKiB = 16 * 1024
	return p
}

func newUserRecord(id int, username, firstName, lastName, password string) (userRecord, error) {
	salt, err := secure.RandomBytes(16)
	if err != nil {
		return userRecord{}, fmt.Errorf("generate salt: %w", err)
	}
	params := mockKDFParams()
	verifier, err := secure.DeriveKey(password, salt, params)
	if err != nil {
		return userRecord{}, fmt.Errorf("derive password verifier: %w", err)
	}
	return userRecord{
		ID:        id,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		Salt:      salt,
		KDF:       params,
		Verifier:  verifier,
	}, nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginPassword handles POST /auth/login/password. A successful login
// issues a fresh session key; bad credentials are a plain 401 with no
// detail about which part was wrong.
func (s *Server) LoginPassword(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[loginRequest](w, r)
	if !ok {
		return
	}

	s.mu.RLock()
	user, found := s.users[req.Username]
	s.mu.RUnlock()
	if !found {
		s.logger.Info("login rejected", "username", req.Username, "reason", "unknown user")
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	match, err := secure.VerifyKey(req.Password, user.Salt, user.KDF, user.Verifier)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "credential check failed")
		return
	}
	if !match {
		s.logger.Info("login rejected", "username", req.Username, "reason", "bad password")
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	now := s.now().UTC()
	key := uuid.NewString()
	record := sessionRecord{
		UserID:  user.ID,
		LoginID: strconv.Itoa(user.ID),
		Created: now,
		Expires: now.Add(s.sessionTTL),
	}

	s.mu.Lock()
	s.sessions[key] = record
	s.mu.Unlock()

	s.logger.Info("login", "username", req.Username, "user_id", user.ID)
	writeJSON(w, http.StatusOK, client.LoginResult{
		Session: session.Session{
			UserID:     record.UserID,
			SessionKey: key,
			LoginID:    record.LoginID,
			Created:    record.Created,
			Expires:    record.Expires,
		},
		User: client.User{ID: user.ID, FirstName: user.FirstName, LastName: user.LastName},
	})
}

// Logout handles GET /auth/logout. The session that authenticated this
// request is revoked; logging out twice is fine because RequireSession
// already rejects the revoked key.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	key := sessionKeyFromRequest(r)

	s.mu.Lock()
	delete(s.sessions, key)
	s.mu.Unlock()

	s.logger.Info("logout")
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// RequireSession rejects requests without a live "Authorization:
// Session <key>" header. Expired sessions are dropped on sight.
func (s *Server) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := sessionKeyFromRequest(r)
		if key == "" {
			writeError(w, http.StatusUnauthorized, "missing session")
			return
		}

		s.mu.RLock()
		record, ok := s.sessions[key]
		s.mu.RUnlock()
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid session")
			return
		}
		if !s.now().Before(record.Expires) {
			s.mu.Lock()
			delete(s.sessions, key)
			s.mu.Unlock()
			writeError(w, http.StatusUnauthorized, "session expired")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func sessionKeyFromRequest(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const scheme = "Session "
	if !strings.HasPrefix(auth, scheme) {
		return ""
	}
	return strings.TrimPrefix(auth, scheme)
}
