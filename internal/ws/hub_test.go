package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	diag "github.com/coreman2200/funtimes-holidaylights/internal/diagnostics"
)

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	return conn
}

func TestFrameStream(t *testing.T) {
	hub := NewHub(2, "sim")
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	conn := dial(t, srv, "/ws")
	var top map[string]any
	require.NoError(t, conn.ReadJSON(&top))
	assert.Equal(t, float64(2), top["count"])
	assert.Equal(t, "sim", top["driver"])

	require.NoError(t, hub.Write([]byte{1, 2, 3, 4, 5, 6}))
	var frame struct {
		T       int64  `json:"t"`
		FrameID uint64 `json:"frame_id"`
		RGB     []byte `json:"rgb"`
	}
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, uint64(1), frame.FrameID)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, frame.RGB)
	require.NoError(t, hub.Close())
}

func TestDiagReplayAndPush(t *testing.T) {
	hub := NewHub(1, "sim")
	hub.Push(diag.New(diag.Info, diag.ProgramStarted, "program started").With("program", "xmas"))
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	conn := dial(t, srv, "/diag")
	var d diag.Diagnostic
	require.NoError(t, conn.ReadJSON(&d))
	assert.Equal(t, diag.ProgramStarted, d.Code)
	assert.Equal(t, "xmas", d.Evidence["program"])

	hub.Push(diag.New(diag.Warn, diag.DriverWrite, "write failed"))
	require.NoError(t, conn.ReadJSON(&d))
	assert.Equal(t, diag.Warn, d.Severity)
}

func TestRecentIsBounded(t *testing.T) {
	hub := NewHub(1, "sim")
	for i := 0; i < keepRecent+5; i++ {
		hub.Push(diag.New(diag.Info, diag.ScheduleOnDuty, ""))
	}
	assert.Len(t, hub.recent, keepRecent)
}

func TestHealth(t *testing.T) {
	hub := NewHub(3, "spi")
	require.NoError(t, hub.Write(make([]byte, 9)))
	hub.SetStatus(Status{Program: "xmas", OnDuty: true})

	rec := httptest.NewRecorder()
	hub.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		FrameID uint64 `json:"frame_id"`
		Count   int    `json:"count"`
		Driver  string `json:"driver"`
		Status  Status `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, uint64(1), body.FrameID)
	assert.Equal(t, 3, body.Count)
	assert.Equal(t, "spi", body.Driver)
	assert.Equal(t, "xmas", body.Status.Program)
	assert.True(t, body.Status.OnDuty)
}
