// Package server exposes the tracker over HTTP for the web client. It holds
// no scheduling logic of its own; query parameters are validated into typed
// values and handed to the tracker.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stridehq/stride/internal/constants"
	"github.com/stridehq/stride/internal/logger"
	"github.com/stridehq/stride/internal/tracker"
)

// Run serves the API on the given port until SIGINT/SIGTERM, then shuts
// down gracefully.
func Run(t *tracker.Tracker, port int) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: NewRouter(t),
	}

	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownGracePeriod*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Shutdown failed", "error", err)
		}
	}()

	logger.Info("Listening", "port", port)
	err := srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
