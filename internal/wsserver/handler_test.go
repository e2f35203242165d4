package wsserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"studio-notify/internal/event"
	"studio-notify/pkg/jwt"
)

// mockVerifier for handler tests
type mockVerifier struct {
	principal *jwt.Principal
	err       error
}

func (m *mockVerifier) ExtractPrincipal(token string) (*jwt.Principal, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.principal, nil
}

func testWSConfig() WSConfig {
	return WSConfig{
		PongWait:        60 * time.Second,
		PingPeriod:      54 * time.Second,
		WriteWait:       10 * time.Second,
		MaxMessageSize:  4096,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
}

func newTestServer(t *testing.T, verifier TokenVerifier) (*Hub, *httptest.Server) {
	t.Helper()

	hub := NewHub(&hubLogger{}, 100)
	go hub.Run()
	t.Cleanup(func() { hub.Shutdown(context.Background()) })

	handler := NewHandler(hub, verifier, &hubLogger{}, testWSConfig())

	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler.SetupRoutes(router)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return hub, server
}

func wsEndpoint(server *httptest.Server, query string) string {
	return "ws" + strings.TrimPrefix(server.URL, "http") + "/ws" + query
}

func TestHandlerRejectsMissingToken(t *testing.T) {
	_, server := newTestServer(t, &mockVerifier{principal: &jwt.Principal{UserID: 1}})

	_, resp, err := websocket.DefaultDialer.Dial(wsEndpoint(server, ""), nil)
	if err == nil {
		t.Fatal("expected handshake failure without token")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %v, want 401", resp)
	}
}

func TestHandlerRejectsInvalidToken(t *testing.T) {
	_, server := newTestServer(t, &mockVerifier{err: errors.New("invalid token")})

	_, resp, err := websocket.DefaultDialer.Dial(wsEndpoint(server, "?token=garbage"), nil)
	if err == nil {
		t.Fatal("expected handshake failure with invalid token")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %v, want 401", resp)
	}
}

func TestHandlerConnectAndReceive(t *testing.T) {
	hub, server := newTestServer(t, &mockVerifier{
		principal: &jwt.Principal{UserID: 42, Name: "Alice", Roles: []string{"client_manager"}},
	})

	conn, _, err := websocket.DefaultDialer.Dial(wsEndpoint(server, "?token=valid"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// First frame is the handshake acknowledgement.
	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read ack: %v", err)
	}
	ack, err := event.ParseInbound(data)
	if err != nil {
		t.Fatalf("parse ack: %v", err)
	}
	if ack.Type != event.TypeConnected {
		t.Fatalf("first frame type = %s, want %s", ack.Type, event.TypeConnected)
	}
	var connected event.ConnectedData
	if err := ack.DecodeData(&connected); err != nil {
		t.Fatalf("decode ack: %v", err)
	}
	if connected.UserID != 42 {
		t.Errorf("ack userId = %d, want 42", connected.UserID)
	}

	// A published event reaches the connection.
	hub.Publish(mustInbound(t, event.TypeOrderStatusChange, event.OrderStatusChangeData{
		OrderID:   10,
		OrderNo:   "ORD-0010",
		NewStatus: 4,
	}))

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err = conn.ReadMessage()
	if err != nil {
		t.Fatalf("read event: %v", err)
	}
	frame, err := event.ParseInbound(data)
	if err != nil {
		t.Fatalf("parse event: %v", err)
	}
	if frame.Type != event.TypeOrderStatusChange {
		t.Errorf("frame type = %s, want %s", frame.Type, event.TypeOrderStatusChange)
	}
}

func TestHandlerJoinRoomFromClient(t *testing.T) {
	hub, server := newTestServer(t, &mockVerifier{
		principal: &jwt.Principal{UserID: 5, Roles: []string{"photographer"}},
	})

	conn, _, err := websocket.DefaultDialer.Dial(wsEndpoint(server, "?token=valid"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Drain the ack.
	conn.SetReadDeadline(time.Now().Add(time.Second))
	if _, _, err := conn.ReadMessage(); err != nil {
		t.Fatalf("read ack: %v", err)
	}

	join, err := event.NewJoinRoom("order_10").Encode()
	if err != nil {
		t.Fatalf("encode join_room: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, join); err != nil {
		t.Fatalf("write join_room: %v", err)
	}

	waitForStats(t, hub, func(s Stats) bool { return s.ActiveRooms == 1 })

	hub.BroadcastRoom("order_10", mustInbound(t, event.TypeTaskProgress, event.TaskProgressData{
		TaskID:  1,
		OrderNo: "ORD-0010",
		Status:  2,
	}))

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read room event: %v", err)
	}
	frame, err := event.ParseInbound(data)
	if err != nil {
		t.Fatalf("parse room event: %v", err)
	}
	if frame.Type != event.TypeTaskProgress {
		t.Errorf("frame type = %s, want %s", frame.Type, event.TypeTaskProgress)
	}
}

func TestHandlerClientDropsDuringHandshake(t *testing.T) {
	hub, server := newTestServer(t, &mockVerifier{
		principal: &jwt.Principal{UserID: 8, Roles: []string{"retoucher"}},
	})

	// A client that connects and drops before reading anything must not
	// disturb the server; the ack is queued ahead of registration, so the
	// hub closing the send channel cannot race the ack write.
	for i := 0; i < 20; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(wsEndpoint(server, "?token=valid"), nil)
		if err != nil {
			t.Fatalf("dial %d: %v", i, err)
		}
		conn.Close()
	}
	waitForStats(t, hub, func(s Stats) bool { return s.ActiveConnections == 0 })

	// The server still serves a normal handshake afterwards.
	conn, _, err := websocket.DefaultDialer.Dial(wsEndpoint(server, "?token=valid"), nil)
	if err != nil {
		t.Fatalf("dial after drops: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read ack: %v", err)
	}
	ack, err := event.ParseInbound(data)
	if err != nil {
		t.Fatalf("parse ack: %v", err)
	}
	if ack.Type != event.TypeConnected {
		t.Errorf("first frame type = %s, want %s", ack.Type, event.TypeConnected)
	}
}

func TestHandlerDisconnectUpdatesStats(t *testing.T) {
	hub, server := newTestServer(t, &mockVerifier{
		principal: &jwt.Principal{UserID: 3, Roles: []string{"finance"}},
	})

	conn, _, err := websocket.DefaultDialer.Dial(wsEndpoint(server, "?token=valid"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}

	waitForStats(t, hub, func(s Stats) bool { return s.ActiveConnections == 1 })

	conn.Close()
	waitForStats(t, hub, func(s Stats) bool { return s.ActiveConnections == 0 })
}
