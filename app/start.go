package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

const shutdownTimeout = 10 * time.Second

// Start runs the modules and the HTTP server until ctx is cancelled, then shuts down.
func (app *App) Start(ctx context.Context) error {
	logger := app.Observability.Logger

	app.wg.Add(3)
	go app.Modules.Leaderboard.Run(ctx, &app.wg)
	go app.Modules.MVP.Run(ctx, &app.wg)
	go app.Modules.Ingest.Run(ctx, &app.wg)

	srv := &http.Server{
		Addr:         app.Config.HTTP.Address,
		Handler:      app.Router,
		ReadTimeout:  app.Config.HTTP.ReadTimeout,
		WriteTimeout: app.Config.HTTP.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "Starting HTTP server", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err, ok := <-serveErr:
		if ok {
			runErr = err
		}
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.Any("error", err))
	}

	app.Close()
	return runErr
}
