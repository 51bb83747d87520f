package telemetry_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nikitarc/mazerunner-core/telemetry"
)

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func waitClients(t *testing.T, h *telemetry.Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("hub never reached %d subscribers, have %d", n, h.ClientCount())
		}
		time.Sleep(time.Millisecond)
	}
}

func TestHub_BroadcastsRecords(t *testing.T) {
	hub := telemetry.NewHub()
	defer hub.Close()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()
	waitClients(t, hub, 1)

	hub.Report(sampleReport())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got map[string]any
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "F", got["action"])
	assert.Equal(t, "moving", got["state"])
	assert.Equal(t, float64(3), got["x"])
	assert.Equal(t, float64(4), got["y"])
	assert.Equal(t, "E", got["heading"])
	assert.Equal(t, float64(170), got["position"])
	assert.Equal(t, float64(42), got["front"])
}

func TestHub_SubscriberLeaves(t *testing.T) {
	hub := telemetry.NewHub()
	defer hub.Close()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	waitClients(t, hub, 1)

	conn.Close()
	waitClients(t, hub, 0)

	hub.Report(sampleReport()) // nobody listening; must not panic
}

func TestHub_CloseRefusesNewSubscribers(t *testing.T) {
	hub := telemetry.NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	hub.Close()

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	if resp != nil {
		resp.Body.Close()
	}
	if err == nil {
		// The handshake can complete before the server hangs up; either
		// way nothing gets registered.
		conn.Close()
	}
	assert.Zero(t, hub.ClientCount())
}
