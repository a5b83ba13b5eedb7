package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/awnumar/memguard"

	"github.com/jcarver/wellpath/store"
)

// State is the login state machine position.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticating
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// LogoutNotifier tells the server a session is ending. The manager treats
// notification as best effort; failures never block local logout.
type LogoutNotifier interface {
	NotifyLogout(ctx context.Context) error
}

// NotifierFunc adapts a plain function to the LogoutNotifier interface.
// Useful when the notifier and the token source form a construction cycle.
type NotifierFunc func(ctx context.Context) error

func (f NotifierFunc) NotifyLogout(ctx context.Context) error { return f(ctx) }

// Manager is the single source of truth for "who is logged in". It owns
// the in-memory session and keeps it in step with the token store. The
// bare session key is held in a memguard Enclave rather than a plain
// string; SessionKey opens the enclave briefly on each call.
//
// Construct one Manager at process start and pass it to the components
// that need it.
type Manager struct {
	mu       sync.Mutex
	store    store.Store
	notifier LogoutNotifier
	now      func() time.Time
	logger   *slog.Logger

	current *Session // SessionKey field blanked; key lives in the enclave
	key     *memguard.Enclave
	state   State
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogoutNotifier sets the collaborator used to inform the server on
// logout (typically the API client).
func WithLogoutNotifier(n LogoutNotifier) Option {
	return func(m *Manager) { m.notifier = n }
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// NewManager creates a Manager over the given token store.
func NewManager(st store.Store, opts ...Option) *Manager {
	m := &Manager{
		store: st,
		now:   time.Now,
		state: StateUnauthenticated,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m
}

// Restore loads the persisted session record, if any. An absent record or
// an expired one leaves the manager unauthenticated; an expired record is
// also deleted from the store so it is never replayed. Restore must
// complete before any authenticated request is issued.
func (m *Manager) Restore(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, err := m.store.Load(ctx)
	switch {
	case errors.Is(err, store.ErrNotFound):
		m.clearLocked()
		return false, nil
	case errors.Is(err, store.ErrUnreadable):
		m.logger.Warn("discarding unreadable session record", "error", err)
		m.clearLocked()
		m.deleteStoredLocked(ctx)
		return false, nil
	case err != nil:
		return false, fmt.Errorf("loading session record: %w", err)
	}

	sess, err := Decode(record)
	if err != nil {
		// A record we cannot parse is as good as no record.
		m.logger.Warn("discarding unreadable session record", "error", err)
		m.clearLocked()
		m.deleteStoredLocked(ctx)
		return false, nil
	}

	if sess.Expired(m.now()) {
		m.logger.Debug("stored session expired", "expires", sess.Expires)
		m.clearLocked()
		m.deleteStoredLocked(ctx)
		return false, nil
	}

	m.installLocked(sess)
	return true, nil
}

// BeginLogin moves the state machine to Authenticating. Called when
// credentials are submitted.
func (m *Manager) BeginLogin() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateAuthenticating
}

// FailLogin returns the state machine to Unauthenticated after a failed
// login attempt.
func (m *Manager) FailLogin() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateUnauthenticated
}

// Login installs a freshly issued session. The serialized record is
// persisted before the in-memory state is replaced; the call completes
// only once both are updated.
func (m *Manager) Login(ctx context.Context, sess Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, err := sess.Encode()
	if err != nil {
		m.state = StateUnauthenticated
		return fmt.Errorf("encoding session record: %w", err)
	}
	if err := m.store.Save(ctx, record); err != nil {
		m.state = StateUnauthenticated
		return fmt.Errorf("persisting session record: %w", err)
	}

	m.installLocked(sess)
	m.logger.Debug("session established", "user_id", sess.UserID, "expires", sess.Expires)
	return nil
}

// Logout ends the session. The server is notified best-effort; whatever
// the outcome, the in-memory session is cleared and the stored record
// deleted. Logout is idempotent.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	notifier := m.notifier
	authenticated := m.current != nil
	m.mu.Unlock()

	if notifier != nil && authenticated {
		if err := notifier.NotifyLogout(ctx); err != nil {
			// We really don't care if this fails.
			m.logger.Debug("logout notification failed", "error", err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
	if err := m.store.Delete(ctx); err != nil {
		return fmt.Errorf("deleting session record: %w", err)
	}
	return nil
}

// IsValid reports whether the current session passes the validity
// predicate. Detecting an expired session clears it from memory and moves
// the state machine back to Unauthenticated.
func (m *Manager) IsValid() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.checkLocked()
}

// State returns the state machine position, re-checking validity first so
// a silently expired session reads as Unauthenticated.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkLocked()
	return m.state
}

// SessionKey returns the bare token for attaching to outgoing requests.
// The second return is false when unauthenticated.
func (m *Manager) SessionKey() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.checkLocked() || m.key == nil {
		return "", false
	}
	buf, err := m.key.Open()
	if err != nil {
		m.logger.Warn("opening session key enclave", "error", err)
		return "", false
	}
	defer buf.Destroy()
	return string(buf.Bytes()), true
}

// Current returns a copy of the session metadata. The SessionKey field is
// blank; use SessionKey for the token itself.
func (m *Manager) Current() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.checkLocked() {
		return Session{}, false
	}
	return *m.current, true
}

// checkLocked applies the validity predicate and demotes the state machine
// when the session has silently expired. Callers hold m.mu.
func (m *Manager) checkLocked() bool {
	if m.current.Valid(m.now()) {
		return true
	}
	if m.current != nil {
		m.logger.Debug("session expired", "expires", m.current.Expires)
	}
	m.clearLocked()
	return false
}

func (m *Manager) installLocked(sess Session) {
	key := []byte(sess.SessionKey)
	sess.SessionKey = ""
	m.current = &sess
	m.key = memguard.NewEnclave(key) // wipes the source slice
	m.state = StateAuthenticated
}

func (m *Manager) clearLocked() {
	m.current = nil
	m.key = nil
	m.state = StateUnauthenticated
}

func (m *Manager) deleteStoredLocked(ctx context.Context) {
	if err := m.store.Delete(ctx); err != nil {
		m.logger.Warn("deleting stale session record", "error", err)
	}
}
