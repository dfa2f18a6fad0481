package util

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// SetupSignalHandler creates a context that is cancelled on receiving SIGINT or SIGTERM.
// Cancelling it stops a run and keeps the partial result.
// A second signal will force immediate exit.
func SetupSignalHandler() context.Context {
	ctx, _ := NotifyContext(context.Background(), os.Exit, syscall.SIGINT, syscall.SIGTERM)
	return ctx
}

// NotifyContext derives a context from parent that is cancelled by the first of
// signals. A second signal calls exit with status 1. The returned stop
// function releases the signal subscription.
func NotifyContext(parent context.Context, exit func(int), signals ...os.Signal) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 2)
	done := make(chan struct{})
	signal.Notify(sigCh, signals...)

	go func() {
		select {
		case sig := <-sigCh:
			slog.Info("received shutdown signal, stopping run", "signal", sig.String())
			cancel()
		case <-done:
			return
		}

		select {
		case sig := <-sigCh:
			slog.Warn("received second shutdown signal, forcing exit", "signal", sig.String())
			exit(1)
		case <-done:
		}
	}()

	stop := func() {
		signal.Stop(sigCh)
		close(done)
		cancel()
	}
	return ctx, stop
}
