package app

import "log/slog"

type closer struct {
	name  string
	close func() error
}

// Close stops the modules, then closes the event bus and the database. It is safe to call on
// a partially built App.
func (app *App) Close() {
	logger := app.Observability.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var closers []closer
	if app.Modules.Ingest != nil {
		closers = append(closers, closer{"ingest module", app.Modules.Ingest.Close})
	}
	if app.Modules.MVP != nil {
		closers = append(closers, closer{"MVP module", app.Modules.MVP.Close})
	}
	if app.Modules.Leaderboard != nil {
		closers = append(closers, closer{"leaderboard module", app.Modules.Leaderboard.Close})
	}
	for _, c := range closers {
		if err := c.close(); err != nil {
			logger.Error("Failed to close", slog.String("component", c.name), slog.Any("error", err))
		}
	}

	app.wg.Wait()

	if app.EventBus != nil {
		if err := app.EventBus.Close(); err != nil {
			logger.Error("Failed to close event bus", slog.Any("error", err))
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			logger.Error("Failed to close database", slog.Any("error", err))
		}
	}
	logger.Info("Application shut down gracefully")
}
