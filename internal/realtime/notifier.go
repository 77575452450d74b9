package realtime

import (
	"context"

	"github.com/google/uuid"
)

// Publisher fans a message out to every instance. The Redis bus implements it.
type Publisher interface {
	Publish(ctx context.Context, msg SSEMessage) error
}

// Notifier turns learning events into SSE messages on the user's channel.
type Notifier struct {
	hub *SSEHub
	pub Publisher
}

// NewNotifier broadcasts through pub when set, otherwise straight to the hub.
func NewNotifier(hub *SSEHub, pub Publisher) *Notifier {
	return &Notifier{hub: hub, pub: pub}
}

func (n *Notifier) Notify(ctx context.Context, userID uuid.UUID, event string, data any) error {
	msg := SSEMessage{Channel: UserChannel(userID), Event: SSEEvent(event), Data: data}
	if n.pub != nil {
		return n.pub.Publish(ctx, msg)
	}
	if n.hub != nil {
		n.hub.Broadcast(msg)
	}
	return nil
}
