package bus

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/stepwise-backend/internal/platform/logger"
	"github.com/yungbote/stepwise-backend/internal/realtime"
)

func TestNewRedisBusRequiresAddr(t *testing.T) {
	_, err := NewRedisBus(Config{Addr: "  "}, logger.Nop())
	require.Error(t, err)
	_, err = NewRedisBus(Config{Addr: "localhost:6379"}, nil)
	require.Error(t, err)
}

func TestRedisBusDefaultsChannel(t *testing.T) {
	b := newRedisBus(goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"}), " ", logger.Nop())
	defer b.Close()
	assert.Equal(t, DefaultChannel, b.channel)
	require.Error(t, b.StartForwarder(context.Background(), nil))

	var nilBus *redisBus
	require.Error(t, nilBus.Publish(context.Background(), realtime.SSEMessage{}))
	require.Error(t, nilBus.Ping(context.Background()))
	require.NoError(t, nilBus.Close())
}

func TestPublishRejectsIncompleteMessage(t *testing.T) {
	b := newRedisBus(goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"}), "", logger.Nop())
	defer b.Close()
	err := b.Publish(context.Background(), realtime.SSEMessage{Event: realtime.SSEEventProgressUpdated})
	require.Error(t, err)
}

func TestDecodeMessage(t *testing.T) {
	msg, err := decodeMessage([]byte(`{"channel":"user:1","event":"certificate.issued","data":{"id":"c1"}}`))
	require.NoError(t, err)
	assert.Equal(t, "user:1", msg.Channel)
	assert.Equal(t, realtime.SSEEventCertificateIssued, msg.Event)
	assert.Equal(t, map[string]any{"id": "c1"}, msg.Data)

	for _, raw := range []string{`not json`, `{"event":"progress.updated"}`, `{"channel":"user:1"}`} {
		_, err := decodeMessage([]byte(raw))
		assert.Error(t, err, raw)
	}
}

func TestForwardSkipsBadPayloads(t *testing.T) {
	b := newRedisBus(goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"}), "", logger.Nop())
	defer b.Close()

	good, err := encodeMessage(realtime.SSEMessage{Channel: "user:1", Event: realtime.SSEEventEnrollmentCreated})
	require.NoError(t, err)

	ch := make(chan *goredis.Message, 4)
	ch <- &goredis.Message{Channel: DefaultChannel, Payload: "{"}
	ch <- nil
	ch <- &goredis.Message{Channel: DefaultChannel, Payload: string(good)}
	close(ch)

	var got []realtime.SSEMessage
	n := b.forward(context.Background(), ch, func(m realtime.SSEMessage) { got = append(got, m) })
	assert.Equal(t, 1, n)
	require.Len(t, got, 1)
	assert.Equal(t, realtime.SSEEventEnrollmentCreated, got[0].Event)
}

func TestForwardStopsOnCancel(t *testing.T) {
	b := newRedisBus(goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"}), "", logger.Nop())
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan int, 1)
	go func() {
		done <- b.forward(ctx, make(chan *goredis.Message), func(realtime.SSEMessage) {})
	}()
	cancel()

	select {
	case n := <-done:
		assert.Zero(t, n)
	case <-time.After(2 * time.Second):
		t.Fatal("forward did not return after cancel")
	}
}
