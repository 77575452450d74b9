package realtime

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/stepwise-backend/internal/platform/logger"
)

func mustTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

func recvMessage(t *testing.T, ch <-chan SSEMessage, timeout time.Duration) SSEMessage {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for SSE message")
	}
	return SSEMessage{}
}

func TestSSEHubOrderingAndReconnect(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t))
	userID := uuid.New()
	channel := UserChannel(userID)

	clientA := hub.NewSSEClient(userID)
	hub.AddChannel(clientA, channel)

	hub.Broadcast(SSEMessage{Channel: channel, Event: SSEEventProgressUpdated, Data: map[string]any{"progress": 50}})
	hub.Broadcast(SSEMessage{Channel: channel, Event: SSEEventCertificateIssued})

	if got := recvMessage(t, clientA.Outbound, time.Second); got.Event != SSEEventProgressUpdated {
		t.Fatalf("first event: want=%s got=%s", SSEEventProgressUpdated, got.Event)
	}
	if got := recvMessage(t, clientA.Outbound, time.Second); got.Event != SSEEventCertificateIssued {
		t.Fatalf("second event: want=%s got=%s", SSEEventCertificateIssued, got.Event)
	}

	hub.CloseClient(clientA)
	hub.CloseClient(clientA)
	if _, ok := <-clientA.Outbound; ok {
		t.Fatalf("clientA outbound should be closed after disconnect")
	}
	if n := hub.Subscribers(channel); n != 0 {
		t.Fatalf("subscribers after close: want=0 got=%d", n)
	}

	clientB := hub.NewSSEClient(userID)
	hub.AddChannel(clientB, channel)
	hub.Broadcast(SSEMessage{Channel: channel, Event: SSEEventEnrollmentCreated})
	if got := recvMessage(t, clientB.Outbound, time.Second); got.Event != SSEEventEnrollmentCreated {
		t.Fatalf("reconnect event: want=%s got=%s", SSEEventEnrollmentCreated, got.Event)
	}
}

func TestSSEHubDropsWhenBufferFull(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t))
	channel := UserChannel(uuid.New())
	client := hub.NewSSEClient(uuid.New())
	hub.AddChannel(client, channel)

	for i := 0; i < outboundBuffer+5; i++ {
		hub.Broadcast(SSEMessage{Channel: channel, Event: SSEEventProgressUpdated, Data: i})
	}
	if got := len(client.Outbound); got != outboundBuffer {
		t.Fatalf("buffered: want=%d got=%d", outboundBuffer, got)
	}
}

func TestSSEHubChannelIsolation(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t))
	a := hub.NewSSEClient(uuid.New())
	b := hub.NewSSEClient(uuid.New())
	hub.AddChannel(a, UserChannel(a.UserID))
	hub.AddChannel(b, UserChannel(b.UserID))

	n := NewNotifier(hub, nil)
	if err := n.Notify(context.Background(), a.UserID, string(SSEEventProgressUpdated), nil); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	recvMessage(t, a.Outbound, time.Second)
	if len(b.Outbound) != 0 {
		t.Fatalf("client b received a message for another user")
	}

	hub.RemoveChannel(a, UserChannel(a.UserID))
	hub.Broadcast(SSEMessage{Channel: UserChannel(a.UserID), Event: SSEEventProgressUpdated})
	if len(a.Outbound) != 0 {
		t.Fatalf("unsubscribed client received a message")
	}
}

func TestSSEHubServeHTTPStreamsEvents(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t))
	userID := uuid.New()
	client := hub.NewSSEClient(userID)
	hub.AddChannel(client, UserChannel(userID))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeHTTP(w, r, client)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET stream: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type: got=%q", ct)
	}

	hub.Broadcast(SSEMessage{Channel: UserChannel(userID), Event: SSEEventCertificateIssued, Data: map[string]any{"certificate_id": "CERT-0000000000000001"}})

	sc := bufio.NewScanner(resp.Body)
	var sawEvent, sawData bool
	for sc.Scan() {
		line := sc.Text()
		if line == "event: certificate.issued" {
			sawEvent = true
		}
		if strings.HasPrefix(line, "data: ") && strings.Contains(line, "CERT-0000000000000001") {
			sawData = true
			break
		}
	}
	if !sawEvent || !sawData {
		t.Fatalf("stream missing event (event=%v data=%v)", sawEvent, sawData)
	}
	hub.CloseClient(client)
}
