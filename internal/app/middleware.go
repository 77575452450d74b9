package app

import (
	httpMW "github.com/yungbote/stepwise-backend/internal/http/middleware"
	"github.com/yungbote/stepwise-backend/internal/platform/logger"
)

type Middleware struct {
	Auth          *httpMW.AuthMiddleware
	AuthRateLimit *httpMW.IPRateLimiter
}

func wireMiddleware(log *logger.Logger, cfg Config, services Services) Middleware {
	log.Info("Wiring middleware...")
	mw := Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
	if cfg.AuthRateLimitPerMin > 0 {
		mw.AuthRateLimit = httpMW.NewIPRateLimiter(cfg.AuthRateLimitPerMin)
	}
	return mw
}
