package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcarver/wellpath/store"
	"github.com/jcarver/wellpath/store/memory"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testSession(expires time.Time) Session {
	return Session{
		UserID:     1,
		SessionKey: "abc",
		LoginID:    "login-1",
		Created:    expires.Add(-24 * time.Hour),
		Expires:    expires,
	}
}

type flakyNotifier struct {
	calls int
	err   error
}

func (n *flakyNotifier) NotifyLogout(ctx context.Context) error {
	n.calls++
	return n.err
}

func TestLoginPersistsAndInstalls(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	st := memory.NewStore()
	m := NewManager(st, WithClock(fixedClock(now)))

	m.BeginLogin()
	assert.Equal(t, StateAuthenticating, m.State())

	require.NoError(t, m.Login(ctx, testSession(now.Add(time.Hour))))
	assert.Equal(t, StateAuthenticated, m.State())
	assert.True(t, m.IsValid())

	key, ok := m.SessionKey()
	require.True(t, ok)
	assert.Equal(t, "abc", key)

	// Persisted record matches what was installed.
	record, err := st.Load(ctx)
	require.NoError(t, err)
	persisted, err := Decode(record)
	require.NoError(t, err)
	assert.Equal(t, "abc", persisted.SessionKey)
	assert.Equal(t, 1, persisted.UserID)
}

func TestFailedLoginReturnsToUnauthenticated(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(memory.NewStore(), WithClock(fixedClock(now)))

	m.BeginLogin()
	m.FailLogin()
	assert.Equal(t, StateUnauthenticated, m.State())
	assert.False(t, m.IsValid())
	_, ok := m.SessionKey()
	assert.False(t, ok)
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("absent record leaves unauthenticated", func(t *testing.T) {
		m := NewManager(memory.NewStore(), WithClock(fixedClock(now)))
		ok, err := m.Restore(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, StateUnauthenticated, m.State())
	})

	t.Run("live record restores authentication", func(t *testing.T) {
		st := memory.NewStore()
		record, err := testSession(now.Add(time.Hour)).Encode()
		require.NoError(t, err)
		require.NoError(t, st.Save(ctx, record))

		m := NewManager(st, WithClock(fixedClock(now)))
		ok, err := m.Restore(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, m.IsValid())
		key, ok := m.SessionKey()
		require.True(t, ok)
		assert.Equal(t, "abc", key)
	})

	t.Run("expired record is cleared, never treated as valid", func(t *testing.T) {
		st := memory.NewStore()
		record, err := testSession(now.Add(-time.Minute)).Encode()
		require.NoError(t, err)
		require.NoError(t, st.Save(ctx, record))

		m := NewManager(st, WithClock(fixedClock(now)))
		ok, err := m.Restore(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, m.IsValid())
		assert.Equal(t, StateUnauthenticated, m.State())

		_, err = st.Load(ctx)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("unreadable record is discarded", func(t *testing.T) {
		st := memory.NewStore()
		require.NoError(t, st.Save(ctx, []byte("corrupt")))

		m := NewManager(st, WithClock(fixedClock(now)))
		ok, err := m.Restore(ctx)
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = st.Load(ctx)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestLogoutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	st := memory.NewStore()
	notifier := &flakyNotifier{}
	m := NewManager(st, WithClock(fixedClock(now)), WithLogoutNotifier(notifier))

	require.NoError(t, m.Login(ctx, testSession(now.Add(time.Hour))))

	require.NoError(t, m.Logout(ctx))
	assert.False(t, m.IsValid())
	_, err := st.Load(ctx)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, 1, notifier.calls)

	// Second logout: still nil session, still no record, no error, and no
	// second notification since there is no session to end.
	require.NoError(t, m.Logout(ctx))
	assert.False(t, m.IsValid())
	_, err = st.Load(ctx)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, 1, notifier.calls)
}

func TestLogoutSwallowsNotifierFailure(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	st := memory.NewStore()
	notifier := &flakyNotifier{err: errors.New("network unreachable")}
	m := NewManager(st, WithClock(fixedClock(now)), WithLogoutNotifier(notifier))

	require.NoError(t, m.Login(ctx, testSession(now.Add(time.Hour))))
	require.NoError(t, m.Logout(ctx))

	assert.Equal(t, 1, notifier.calls)
	assert.False(t, m.IsValid())
	_, err := st.Load(ctx)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSilentExpiryDemotesState(t *testing.T) {
	ctx := context.Background()
	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return current }
	m := NewManager(memory.NewStore(), WithClock(clock))

	require.NoError(t, m.Login(ctx, testSession(current.Add(time.Hour))))
	assert.Equal(t, StateAuthenticated, m.State())

	current = current.Add(2 * time.Hour)
	assert.False(t, m.IsValid())
	assert.Equal(t, StateUnauthenticated, m.State())
	_, ok := m.SessionKey()
	assert.False(t, ok)
	_, ok = m.Current()
	assert.False(t, ok)
}

func TestCurrentOmitsBareKey(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(memory.NewStore(), WithClock(fixedClock(now)))

	require.NoError(t, m.Login(ctx, testSession(now.Add(time.Hour))))

	sess, ok := m.Current()
	require.True(t, ok)
	assert.Empty(t, sess.SessionKey)
	assert.Equal(t, 1, sess.UserID)
	assert.Equal(t, "login-1", sess.LoginID)
}
