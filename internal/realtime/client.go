package realtime

import (
	"sync"

	"github.com/google/uuid"

	"github.com/yungbote/stepwise-backend/internal/platform/logger"
)

const outboundBuffer = 16

type SSEClient struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Channels map[string]bool
	Outbound chan SSEMessage
	done     chan struct{}
	once     sync.Once
	Logger   *logger.Logger
}
