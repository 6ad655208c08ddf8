package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"retail-mis-console/internal/model"
	"retail-mis-console/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeConn struct {
	mu       sync.Mutex
	messages [][]byte
	closed   bool
	fail     bool
}

func (c *fakeConn) WriteMessage(_ int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("broken pipe")
	}
	c.messages = append(c.messages, data)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) received() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub(zaptest.NewLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub, cancel
}

func TestSessionChangesReachOnlyTheirScope(t *testing.T) {
	hub, _ := startHub(t)

	tabA1, tabA2, tabB := &fakeConn{}, &fakeConn{}, &fakeConn{}
	require.True(t, hub.Register(&Client{Scope: "a", Conn: tabA1}))
	require.True(t, hub.Register(&Client{Scope: "a", Conn: tabA2}))
	require.True(t, hub.Register(&Client{Scope: "b", Conn: tabB}))

	hub.SessionChanged("a", service.SessionEvent{Type: service.SessionEventLogin, Role: model.RoleCashier})

	assert.Eventually(t, func() bool { return tabA1.received() == 1 && tabA2.received() == 1 }, time.Second, 5*time.Millisecond)
	assert.Zero(t, tabB.received())

	var msg struct {
		Type  string               `json:"type"`
		Event service.SessionEvent `json:"event"`
	}
	tabA1.mu.Lock()
	require.NoError(t, json.Unmarshal(tabA1.messages[0], &msg))
	tabA1.mu.Unlock()
	assert.Equal(t, "session_changed", msg.Type)
	assert.Equal(t, service.SessionEventLogin, msg.Event.Type)
	assert.Equal(t, model.RoleCashier, msg.Event.Role)
}

func TestFailedWriteDropsTab(t *testing.T) {
	hub, _ := startHub(t)

	broken := &fakeConn{fail: true}
	require.True(t, hub.Register(&Client{Scope: "a", Conn: broken}))
	assert.Equal(t, 1, hub.Clients("a"))

	hub.SessionChanged("a", service.SessionEvent{Type: service.SessionEventLogout})

	assert.Eventually(t, func() bool { return hub.Clients("a") == 0 }, time.Second, 5*time.Millisecond)
	assert.True(t, broken.isClosed())
}

func TestUnregister(t *testing.T) {
	hub, _ := startHub(t)

	conn := &fakeConn{}
	client := &Client{Scope: "a", Conn: conn}
	require.True(t, hub.Register(client))
	hub.Unregister(client)
	hub.Unregister(client)

	assert.Eventually(t, func() bool { return hub.Clients("a") == 0 }, time.Second, 5*time.Millisecond)
	assert.True(t, conn.isClosed())
}

func TestStoppedHubClosesTabs(t *testing.T) {
	hub, cancel := startHub(t)

	conn := &fakeConn{}
	require.True(t, hub.Register(&Client{Scope: "a", Conn: conn}))
	cancel()

	assert.Eventually(t, conn.isClosed, time.Second, 5*time.Millisecond)
	assert.False(t, hub.Register(&Client{Scope: "a", Conn: &fakeConn{}}))
	hub.SessionChanged("a", service.SessionEvent{Type: service.SessionEventLogout})
}
