package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/app"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/auth"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/clock"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/config"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/mail"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/realtime"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/storage/postgres"
	transporthttp "github.com/Irfanx3000/Unstop-Igniters-Web/internal/transport/http"
	"github.com/Irfanx3000/Unstop-Igniters-Web/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC1123Z,
		}),
	))

	cfg := config.LoadAPI()

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
	if err := migrations.Apply(startupCtx, pool); err != nil {
		slog.Error("apply migrations", "err", err)
		os.Exit(1)
	}

	clk := clock.NewSystem()
	hub := realtime.NewHub(clk)
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL, clk)

	var sender app.PassSender = mail.LogMailer{}
	if smtp := (mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}); smtp.Enabled() {
		sender = mail.NewPassMailer(smtp)
	}

	eventRepo := postgres.NewEventRepository(pool)
	regRepo := postgres.NewRegistrationRepository(pool)
	attRepo := postgres.NewAttendanceRepository(pool)
	adminRepo := postgres.NewAdminRepository(pool)
	teamRepo := postgres.NewTeamRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)

	eventSvc := app.NewEventService(eventRepo, hub, clk)
	regSvc := app.NewRegistrationService(regRepo, eventRepo, sender, hub, clk)
	attSvc := app.NewAttendanceService(attRepo, regRepo, hub, clk)
	exportSvc := app.NewExportService(postgres.NewReportRepository(pool))
	authSvc := app.NewAuthService(adminRepo, profileRepo, tokens, clk)
	teamSvc := app.NewTeamService(teamRepo, hub, clk)

	admin := func(h http.Handler) http.Handler {
		return transporthttp.RequireAdmin(tokens, h)
	}
	superadmin := func(h http.Handler) http.Handler {
		return admin(transporthttp.RequireSuperadmin(h))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", transporthttp.HealthHandler)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.Handle("GET /events", transporthttp.HandleListEvents(eventSvc))
	mux.Handle("GET /events/{id}", transporthttp.HandleGetEvent(eventSvc))
	mux.Handle("POST /events/{id}/register", transporthttp.HandleRegister(regSvc))
	mux.Handle("GET /team", transporthttp.HandleListTeam(teamSvc))
	mux.Handle("POST /auth/login", transporthttp.HandleLogin(authSvc))
	mux.Handle("GET /ws", transporthttp.HandleChangeFeed(hub, tokens, cfg.CORSOrigins))

	mux.Handle("POST /admin/events", admin(transporthttp.HandleCreateEvent(eventSvc)))
	mux.Handle("PUT /admin/events/{id}", admin(transporthttp.HandleUpdateEvent(eventSvc)))
	mux.Handle("DELETE /admin/events/{id}", admin(transporthttp.HandleDeleteEvent(eventSvc)))
	mux.Handle("GET /admin/events/{id}/registrations", admin(transporthttp.HandleListRegistrations(regSvc)))
	mux.Handle("DELETE /admin/registrations/{id}", admin(transporthttp.HandleDeleteRegistration(regSvc)))
	mux.Handle("GET /admin/events/{id}/attendance", admin(transporthttp.HandleAttendanceGrid(attSvc)))
	mux.Handle("POST /admin/attendance/toggle", admin(transporthttp.HandleToggleAttendance(attSvc)))
	mux.Handle("POST /admin/attendance/scan", admin(transporthttp.HandleScanAttendance(attSvc)))
	mux.Handle("GET /admin/events/{id}/export", admin(transporthttp.HandleExport(exportSvc)))
	mux.Handle("POST /admin/team", admin(transporthttp.HandleCreateTeamMember(teamSvc)))
	mux.Handle("PUT /admin/team/{id}", admin(transporthttp.HandleUpdateTeamMember(teamSvc)))
	mux.Handle("DELETE /admin/team/{id}", admin(transporthttp.HandleDeleteTeamMember(teamSvc)))
	mux.Handle("GET /admin/profiles", admin(transporthttp.HandleListProfiles(authSvc)))

	mux.Handle("GET /admin/admins", superadmin(transporthttp.HandleListAdmins(authSvc)))
	mux.Handle("POST /admin/admins", superadmin(transporthttp.HandleAddAdmin(authSvc)))
	mux.Handle("DELETE /admin/admins/{id}", superadmin(transporthttp.HandleRemoveAdmin(authSvc)))

	mux.Handle("/", transporthttp.NotFoundHandler())

	handler := transporthttp.RequestLogger(transporthttp.CORS(cfg.CORSOrigins, mux), slog.Default())

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	slog.Info("api listening", "port", cfg.Port)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "err", err)
		}
	case <-stopCtx.Done():
		slog.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server shutdown error", "err", err)
	}
	slog.Info("server stopped")
}
