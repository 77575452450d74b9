package bus

import (
	"context"

	"github.com/yungbote/stepwise-backend/internal/realtime"
)

// Bus fans SSE messages out to every API instance.
type Bus interface {
	realtime.Publisher
	StartForwarder(ctx context.Context, onMsg func(m realtime.SSEMessage)) error
	Ping(ctx context.Context) error
	Close() error
}
