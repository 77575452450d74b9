package bus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/stepwise-backend/internal/platform/logger"
	"github.com/yungbote/stepwise-backend/internal/realtime"
)

const (
	DefaultChannel     = "stepwise:sse"
	defaultDialTimeout = 5 * time.Second
)

type Config struct {
	Addr        string
	Password    string
	DB          int
	Channel     string
	DialTimeout time.Duration
}

var errNotInitialized = errors.New("redis SSE bus not initialized")

type redisBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

func NewRedisBus(cfg Config, log *logger.Logger) (Bus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: timeout,
	})

	b := newRedisBus(rdb, cfg.Channel, log)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := b.Ping(ctx); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	b.log.Info("redis SSE bus connected", "addr", addr, "channel", b.channel)
	return b, nil
}

func newRedisBus(rdb *goredis.Client, channel string, log *logger.Logger) *redisBus {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		channel = DefaultChannel
	}
	return &redisBus{
		log:     log.With("service", "RedisSSEBus"),
		rdb:     rdb,
		channel: channel,
	}
}

func (b *redisBus) Publish(ctx context.Context, msg realtime.SSEMessage) error {
	if b == nil || b.rdb == nil {
		return errNotInitialized
	}
	raw, err := encodeMessage(msg)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

// StartForwarder subscribes, then hands every decoded message to onMsg from a
// background goroutine until ctx is cancelled.
func (b *redisBus) StartForwarder(ctx context.Context, onMsg func(m realtime.SSEMessage)) error {
	if b == nil || b.rdb == nil {
		return errNotInitialized
	}
	if onMsg == nil {
		return fmt.Errorf("onMsg callback required")
	}

	sub := b.rdb.Subscribe(ctx, b.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		defer sub.Close()
		b.forward(ctx, sub.Channel(), onMsg)
	}()
	return nil
}

// forward returns the number of delivered messages once ctx ends or ch closes.
func (b *redisBus) forward(ctx context.Context, ch <-chan *goredis.Message, onMsg func(m realtime.SSEMessage)) int {
	delivered := 0
	for {
		select {
		case <-ctx.Done():
			return delivered
		case m, ok := <-ch:
			if !ok {
				return delivered
			}
			if m == nil {
				continue
			}
			msg, err := decodeMessage([]byte(m.Payload))
			if err != nil {
				b.log.Warn("dropping bad redis SSE payload", "error", err)
				continue
			}
			onMsg(msg)
			delivered++
		}
	}
}

func (b *redisBus) Ping(ctx context.Context) error {
	if b == nil || b.rdb == nil {
		return errNotInitialized
	}
	if err := b.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (b *redisBus) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}

func encodeMessage(msg realtime.SSEMessage) ([]byte, error) {
	if msg.Channel == "" || msg.Event == "" {
		return nil, fmt.Errorf("SSE message needs a channel and an event")
	}
	return json.Marshal(msg)
}

func decodeMessage(raw []byte) (realtime.SSEMessage, error) {
	var msg realtime.SSEMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return msg, err
	}
	if msg.Channel == "" || msg.Event == "" {
		return msg, fmt.Errorf("SSE message needs a channel and an event")
	}
	return msg, nil
}
