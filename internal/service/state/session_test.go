package state

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sandevgo/simplechat/internal/core"
	"github.com/sandevgo/simplechat/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) (*Session, *test.FakeConnection, *test.Recorder) {
	t.Helper()
	conn := test.NewFakeConnection()
	sess := NewSession(context.Background(), conn, "alice", core.DefaultHost, core.DefaultPort)
	rec := &test.Recorder{}
	sess.SetDisplay(rec)
	return sess, conn, rec
}

func TestNewSession_BindsConnection(t *testing.T) {
	sess, conn, _ := newTestSession(t)

	assert.Equal(t, "alice", conn.Identity())
	assert.Equal(t, core.StateDisconnected, sess.State())
	assert.Equal(t, "localhost:5555", sess.Address())
}

func TestSetHostPort_OnlyWhileDisconnected(t *testing.T) {
	tests := []struct {
		name      string
		connected bool
	}{
		{name: "disconnected", connected: false},
		{name: "connected", connected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, _, _ := newTestSession(t)
			if tt.connected {
				require.NoError(t, sess.Login(context.Background()))
			}

			hostErr := sess.SetHost("foo")
			portErr := sess.SetPort(6000)

			if tt.connected {
				assert.ErrorIs(t, hostErr, core.ErrConnected)
				assert.ErrorIs(t, portErr, core.ErrConnected)
				assert.Equal(t, core.DefaultHost, sess.Host())
				assert.Equal(t, core.DefaultPort, sess.Port())
				assert.Equal(t, core.StateConnected, sess.State())
				return
			}
			assert.NoError(t, hostErr)
			assert.NoError(t, portErr)
			assert.Equal(t, "foo", sess.Host())
			assert.Equal(t, 6000, sess.Port())
			assert.Equal(t, core.StateDisconnected, sess.State())
		})
	}
}

func TestSetPort_RejectsOutOfRange(t *testing.T) {
	sess, _, _ := newTestSession(t)

	for _, p := range []int{0, -1, 65536} {
		err := sess.SetPort(p)
		assert.ErrorIs(t, err, core.ErrInvalidPort, "port %d", p)
	}
	assert.Equal(t, core.DefaultPort, sess.Port())
}

func TestLogin(t *testing.T) {
	sess, conn, _ := newTestSession(t)
	require.NoError(t, sess.SetHost("chat.example"))
	require.NoError(t, sess.SetPort(7000))

	require.NoError(t, sess.Login(context.Background()))

	assert.Equal(t, core.StateConnected, sess.State())
	assert.Equal(t, []string{"chat.example:7000"}, conn.OpenedAt)
}

func TestLogin_AlreadyConnected(t *testing.T) {
	sess, conn, _ := newTestSession(t)
	require.NoError(t, sess.Login(context.Background()))

	err := sess.Login(context.Background())

	assert.ErrorIs(t, err, core.ErrConnected)
	assert.Equal(t, 1, conn.Opens)
	assert.Equal(t, core.StateConnected, sess.State())
}

func TestLogin_OpenFailureKeepsState(t *testing.T) {
	sess, conn, _ := newTestSession(t)
	conn.OpenErr = errors.New("connection refused")

	err := sess.Login(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot connect to localhost:5555")
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, core.StateDisconnected, sess.State())
}

func TestLogoff(t *testing.T) {
	sess, conn, _ := newTestSession(t)
	require.NoError(t, sess.Login(context.Background()))

	require.NoError(t, sess.Logoff())

	assert.Equal(t, core.StateDisconnected, sess.State())
	assert.False(t, conn.IsConnected())
}

func TestLogoff_AlreadyClosed(t *testing.T) {
	sess, conn, _ := newTestSession(t)

	err := sess.Logoff()

	assert.ErrorIs(t, err, core.ErrNotConnected)
	assert.Equal(t, 0, conn.Closes)
	assert.Equal(t, core.StateDisconnected, sess.State())
}

func TestShutdown_Idempotent(t *testing.T) {
	sess, _, _ := newTestSession(t)
	require.NoError(t, sess.Login(context.Background()))

	assert.NoError(t, sess.Shutdown())
	assert.NoError(t, sess.Shutdown())
	assert.Equal(t, core.StateDisconnected, sess.State())
}

func TestSend_PrefixesIdentity(t *testing.T) {
	sess, conn, _ := newTestSession(t)
	require.NoError(t, sess.Login(context.Background()))

	require.NoError(t, sess.Send(context.Background(), "hello there"))

	assert.Equal(t, []string{"alice> hello there"}, conn.SentLines())
}

func TestSend_WhileDisconnectedFails(t *testing.T) {
	sess, _, _ := newTestSession(t)

	err := sess.Send(context.Background(), "hello")

	assert.ErrorIs(t, err, core.ErrNotConnected)
}

func TestConnectionEvents(t *testing.T) {
	tests := []struct {
		name     string
		cause    error
		wantLine string
	}{
		{name: "remote close", wantLine: "Server is no longer connected."},
		{name: "remote error", cause: errors.New("reset by peer"), wantLine: "Error: connection lost: reset by peer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, conn, rec := newTestSession(t)
			require.NoError(t, sess.Login(context.Background()))

			conn.DropRemote(tt.cause)

			assert.Equal(t, core.StateDisconnected, sess.State())
			assert.Equal(t, []string{tt.wantLine}, rec.Snapshot())

			// A second notification for the same loss is not reported again.
			conn.DropRemote(tt.cause)
			assert.Len(t, rec.Snapshot(), 1)

			// Configuration is editable again.
			assert.NoError(t, sess.SetHost("other"))
		})
	}
}

func TestConnectionEvents_FromReplacedConnection(t *testing.T) {
	tests := []struct {
		name  string
		cause error
	}{
		{name: "close"},
		{name: "error", cause: errors.New("use of closed network connection")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, conn, rec := newTestSession(t)
			require.NoError(t, sess.Login(context.Background()))
			require.NoError(t, sess.Logoff())
			require.NoError(t, sess.Login(context.Background()))

			conn.Notify(tt.cause)

			assert.Equal(t, core.StateConnected, sess.State())
			assert.Empty(t, rec.Snapshot())
			assert.ErrorIs(t, sess.SetHost("other"), core.ErrConnected)
		})
	}
}

func TestMessageReceived_GoesToDisplay(t *testing.T) {
	sess, conn, rec := newTestSession(t)
	require.NoError(t, sess.Login(context.Background()))

	conn.Deliver("bob> hi")

	assert.Equal(t, []string{"> bob> hi"}, rec.Snapshot())
}

func TestDisconnectCallbackRacesLogin(t *testing.T) {
	sess, conn, _ := newTestSession(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = sess.Login(context.Background())
		}()
		go func() {
			defer wg.Done()
			conn.DropRemote(nil)
		}()
		wg.Wait()

		// The session never claims a connection the handle does not have.
		if sess.State() == core.StateConnected {
			assert.True(t, conn.IsConnected())
		}
		_ = sess.Shutdown()
	}
}
