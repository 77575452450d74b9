package app

import (
	"context"
	"fmt"
	"net"
	"os"

	"gorm.io/gorm"

	"github.com/yungbote/stepwise-backend/internal/data/db"
	apphttp "github.com/yungbote/stepwise-backend/internal/http"
	"github.com/yungbote/stepwise-backend/internal/observability"
	"github.com/yungbote/stepwise-backend/internal/platform/logger"
	"github.com/yungbote/stepwise-backend/internal/realtime"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *apphttp.Server
	Cfg      Config
	Repos    Repos
	Services Services
	SSEHub   *realtime.SSEHub

	dbService    *db.Service
	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg, err := LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load config: %w", err)
	}

	otelShutdown := observability.InitOTel(ctx, log, cfg.Otel)

	dbService, err := db.NewService(cfg.DB, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := db.AutoMigrateAll(dbService.DB()); err != nil {
		_ = dbService.Close()
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	theDB := dbService.DB()

	ssehub := realtime.NewSSEHub(log)

	reposet := wireRepos(theDB, log)

	serviceset, err := wireServices(ctx, theDB, log, cfg, reposet, ssehub)
	if err != nil {
		_ = dbService.Close()
		log.Sync()
		return nil, err
	}

	handlerset := wireHandlers(log, serviceset, ssehub, dbService.Ping)
	middleware := wireMiddleware(log, cfg, serviceset)
	server := apphttp.NewServer(net.JoinHostPort("", cfg.Port), routerConfig(log, cfg, handlerset, middleware))

	return &App{
		Log:          log,
		DB:           theDB,
		Server:       server,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		SSEHub:       ssehub,
		dbService:    dbService,
		otelShutdown: otelShutdown,
	}, nil
}

// StartForwarder relays bus messages into the local hub until ctx ends. It
// returns nil straight away when no bus is configured.
func (a *App) StartForwarder(ctx context.Context) error {
	if a == nil || a.Services.Bus == nil {
		return nil
	}
	a.Log.Info("Starting realtime forwarder...")
	return a.Services.Bus.StartForwarder(ctx, a.SSEHub.Broadcast)
}

func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("HTTP server listening", "port", a.Cfg.Port)
	return a.Server.Run()
}

func (a *App) Shutdown(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return nil
	}
	a.Log.Info("Shutting down HTTP server...")
	return a.Server.Shutdown(ctx)
}

// Close releases external clients. Call it after Shutdown.
func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	if a.Services.Bus != nil {
		if err := a.Services.Bus.Close(); err != nil {
			a.Log.Warn("redis bus close failed", "error", err)
		}
	}
	if a.Services.Archive != nil {
		if err := a.Services.Archive.Close(); err != nil {
			a.Log.Warn("certificate storage close failed", "error", err)
		}
	}
	if a.dbService != nil {
		if err := a.dbService.Close(); err != nil {
			a.Log.Warn("database close failed", "error", err)
		}
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
