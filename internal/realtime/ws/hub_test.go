package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"sanaaBack/internal/realtime"
)

type testLogger struct{}

func (testLogger) Infof(string, ...interface{})  {}
func (testLogger) Errorf(string, ...interface{}) {}

func TestHubBridgesInvalidations(t *testing.T) {
	broker := realtime.NewMemoryBroker()
	hub := NewHub(broker, 20*time.Millisecond, testLogger{})
	channel := realtime.Channel("booking_requests", "buyer_id", "u-1")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r, "u-1", []string{channel})
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(time.Second)
	for hub.Connected("u-1") == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_ = broker.Publish(ctx, realtime.ChangeEvent{Table: "booking_requests", Column: "buyer_id", Value: "u-1", RowID: "b-1"})
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var frame Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if frame.Type != "invalidate" || len(frame.Channels) != 1 || frame.Channels[0] != channel {
		t.Fatalf("unexpected frame %+v", frame)
	}

	hub.Push("u-1", "celebration", map[string]string{"kind": "booking_confirmed"})
	_, data, err = conn.ReadMessage()
	if err != nil {
		t.Fatalf("read push: %v", err)
	}
	if !strings.Contains(string(data), "booking_confirmed") {
		t.Fatalf("unexpected push %s", data)
	}
}

func TestHubRejectsForeignChannels(t *testing.T) {
	hub := NewHub(realtime.NewMemoryBroker(), 10*time.Millisecond, testLogger{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	hub.Serve(rec, req, "u-1", []string{realtime.Channel("booking_requests", "buyer_id", "u-2")})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
