package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"

	"relay-chat/internal"
	"relay-chat/runtime"
	"relay-chat/transport"
)

// Exit codes to provide meaningful status to the operating system or
// service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// main is a thin wrapper; run owns initialization and shutdown so
	// deferred cleanup executes before the process exits.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Relay terminated with error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	level, err := internal.ParseLevel(config.LogLevel)
	if err != nil {
		return exitConfig, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	registry := runtime.NewRegistry()
	presence := runtime.NewPublisher(logger, registry)
	router := runtime.NewRouter(logger, registry)
	rooms := runtime.NewRooms()
	lifecycle := runtime.NewLifecycle(logger, registry, presence, router, rooms)

	mux := http.NewServeMux()
	mux.Handle("/ws", transport.NewHandler(logger, lifecycle, config.SendBufferSize, config.ReadLimit))

	server := &http.Server{Addr: config.Addr(), Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("relay listening", "addr", config.Addr())
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return exitRuntime, fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return exitRuntime, fmt.Errorf("shutdown failed: %w", err)
		}
	}
	return exitOK, nil
}
