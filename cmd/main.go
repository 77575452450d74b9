package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/stepwise-backend/internal/app"
	"github.com/yungbote/stepwise-backend/internal/platform/shutdown"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	a, err := app.New(ctx)
	if err != nil {
		fmt.Printf("failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	if err := a.StartForwarder(ctx); err != nil {
		a.Log.Error("realtime forwarder failed to start", "error", err)
		a.Close(context.Background())
		os.Exit(1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(a.Run)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	a.Close(closeCtx)
	cancel()
	if err != nil {
		fmt.Printf("server exited: %v\n", err)
		os.Exit(1)
	}
}
