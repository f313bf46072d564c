package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"salon/internal/domain"
)

type staticTokens map[string]string

func (s staticTokens) ParseToken(_ context.Context, token string) (string, error) {
	subject, ok := s[token]
	if !ok {
		return "", domain.ErrInvalidToken
	}
	return subject, nil
}

func newTestServer(t *testing.T) (*DashboardHub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewDashboardHub(staticTokens{"good": "admin"}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	router := gin.New()
	router.GET("/ws/dashboard", hub.HandleWebSocket)
	srv := httptest.NewServer(router)

	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func wsURL(srv *httptest.Server, token string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/dashboard?token=" + token
}

func TestDashboardRejectsBadToken(t *testing.T) {
	_, srv := newTestServer(t)

	for _, token := range []string{"", "bad"} {
		_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, token), nil)
		if err == nil {
			t.Fatalf("token %q: expected the handshake to fail", token)
		}
		if resp == nil || resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("token %q: expected 401, got %v", token, resp)
		}
	}
}

func TestDashboardReceivesEvents(t *testing.T) {
	hub, srv := newTestServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "good"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != 1 {
		if time.Now().After(deadline) {
			t.Fatalf("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	event := domain.AppointmentEvent{
		ID:          "evt-1",
		Type:        domain.EventAppointmentBooked,
		Appointment: domain.Appointment{ID: 3, ClientName: "Asha Rao", Status: domain.AppointmentStatusPending},
	}
	if err := hub.Publish(context.Background(), event); err != nil {
		t.Fatalf("publish: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var got domain.AppointmentEvent
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != "evt-1" || got.Type != domain.EventAppointmentBooked || got.Appointment.ID != 3 {
		t.Fatalf("unexpected event %+v", got)
	}
}

func TestPublishAfterShutdown(t *testing.T) {
	hub := NewDashboardHub(staticTokens{}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	for i := 0; i < sendBuffer+1; i++ {
		if err := hub.Publish(context.Background(), domain.AppointmentEvent{ID: "x"}); err != nil && !errors.Is(err, context.Canceled) {
			t.Fatalf("publish after shutdown: %v", err)
		}
	}
}
