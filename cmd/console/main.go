package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"rfp-console/internal/bootstrap"
	"rfp-console/internal/config"
	"rfp-console/internal/intent"
	"rfp-console/internal/server"
	"rfp-console/internal/toast"
	"rfp-console/internal/tracer"

	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		log.Printf("Console stopped with error: %v", err)
		os.Exit(1)
	}
}

// run returns instead of exiting so every deferred cleanup runs.
func run() error {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer("rfp-console")
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("build console: %w", err)
	}
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Run everything until a signal arrives
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return container.Coordinator.Run(ctx) })
	g.Go(func() error { return container.WebSocketHub.Run(ctx) })
	g.Go(func() error { return toast.NewPrinter(os.Stdout).Run(ctx, container.Toasts) })
	g.Go(func() error { return server.New(cfg, container).Run(ctx) })

	if container.SessionBridge != nil {
		g.Go(func() error {
			err := container.SessionBridge.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	// 4. Restore what the previous run left behind
	container.Coordinator.Dispatch(intent.RestoreSession{})
	container.Coordinator.Dispatch(intent.LoadTheme{})

	if err := g.Wait(); err != nil {
		container.Logger.Error("Main", "Console stopped with error", map[string]interface{}{"error": err.Error()})
		return err
	}
	container.Logger.Info("Main", "Console stopped", nil)
	return nil
}
