// The scanner binary runs a kiosk attendance loop against the database:
// it replays pass images from a watched directory, decodes their QR
// credentials and marks attendees present for the configured event day.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lmittmann/tint"

	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/app"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/clock"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/config"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/scanner"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/storage/postgres"
)

func main() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC1123Z,
		}),
	))

	cfg := config.LoadScanner()
	if cfg.EventID == "" {
		slog.Error("SCANNER_EVENT_ID is required")
		os.Exit(1)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("connect to db", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		slog.Error("db ping", "err", err)
		os.Exit(1)
	}

	clk := clock.NewSystem()
	attSvc := app.NewAttendanceService(
		postgres.NewAttendanceRepository(pool),
		postgres.NewRegistrationRepository(pool),
		app.NopPublisher(),
		clk,
	)

	loop := scanner.NewLoop(
		scanner.NewDirCamera(cfg.FramesDir),
		scanner.NewZXingDecoder(),
		attSvc,
		clk,
		scanner.Config{EventID: cfg.EventID, Day: cfg.Day},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		for result := range loop.Results() {
			switch result.Kind {
			case scanner.KindAccepted:
				slog.Info("attendance marked",
					"name", result.Outcome.Registration.Name,
					"registration_id", result.Outcome.Registration.ID,
					"day", result.Outcome.Record.Day,
				)
			case scanner.KindAlreadyMarked:
				slog.Warn("pass already scanned for this day", "payload", result.Payload)
			case scanner.KindWrongEvent:
				slog.Warn("pass belongs to a different event", "payload", result.Payload)
			case scanner.KindInvalid:
				slog.Warn("unreadable or unknown pass", "payload", result.Payload)
			default:
				slog.Error("scan failed", "err", result.Err)
			}
		}
	}()

	slog.Info("scanner running", "event_id", cfg.EventID, "day", cfg.Day, "frames_dir", cfg.FramesDir)
	if err := loop.Run(ctx); err != nil {
		slog.Error("scanner stopped", "err", err)
		os.Exit(1)
	}
	slog.Info("scanner stopped")
}
