package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"swipe-go/internal/app"
	"swipe-go/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

func main() {
	log := logger.NewFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, log))
}

func run(ctx context.Context, log logger.Logger) int {
	log.Info("swipe: starting")

	application, err := app.New(ctx, log)
	if err != nil {
		log.Critical("swipe: init failed", "err", err)
		return 1
	}

	srv := application.HTTPServer()
	serveErr := make(chan error, 1)
	go func() {
		log.Info("http: listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	code := 0
	select {
	case <-ctx.Done():
		log.Info("swipe: shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			log.Critical("http: server failed", "addr", srv.Addr, "err", err)
			code = 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http: graceful shutdown failed", "err", err)
		code = 1
	}
	if err := application.Close(); err != nil {
		log.Error("swipe: close failed", "err", err)
		code = 1
	}

	if code == 0 {
		log.Info("swipe: stopped")
	}
	return code
}
