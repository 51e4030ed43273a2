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
	"time"

	"github.com/cmlabs-hris/staff-portal-go/internal/config"
	appHTTP "github.com/cmlabs-hris/staff-portal-go/internal/handler/http"
	"github.com/cmlabs-hris/staff-portal-go/internal/pkg/cron"
	"github.com/cmlabs-hris/staff-portal-go/internal/pkg/database"
	"github.com/cmlabs-hris/staff-portal-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/staff-portal-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/staff-portal-go/internal/pkg/ratelimit"
	"github.com/cmlabs-hris/staff-portal-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/staff-portal-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/staff-portal-go/internal/service/auth"
	salaryService "github.com/cmlabs-hris/staff-portal-go/internal/service/salary"
	staffService "github.com/cmlabs-hris/staff-portal-go/internal/service/staff"
	"github.com/go-chi/httplog/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "staff-portal"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := db.ApplySchema(ctx); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	var loginLimiter ratelimit.Limiter
	if cfg.Redis.Addr != "" {
		redisLimiter := ratelimit.NewRedisLimiter(ratelimit.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB), cfg.Login.MaxAttempts, cfg.Login.Window)
		defer redisLimiter.Close()
		if !redisLimiter.Healthy(ctx) {
			slog.Warn("redis unreachable at startup, login attempts will not be limited until it recovers", "addr", cfg.Redis.Addr)
		}
		loginLimiter = redisLimiter
	} else {
		slog.Info("REDIS_ADDR not set, login attempts counted in memory")
		loginLimiter = ratelimit.NewMemoryLimiter(cfg.Login.MaxAttempts, cfg.Login.Window)
	}

	appMetrics := metrics.New()

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.App.Env == "production")
	if err != nil {
		return fmt.Errorf("init jwt: %w", err)
	}

	userRepo := postgresql.NewUserRepository(db)
	staffRepo := postgresql.NewStaffRepository(db)
	tokenRepo := postgresql.NewTokenRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	advanceRepo := postgresql.NewAdvanceRepository(db)
	transactor := postgresql.NewTransactor(db)

	scheduler := cron.NewScheduler()
	cron.NewTokenJobs(tokenRepo, cfg.Cron.TokenPurgeRetention).RegisterJobs(scheduler, cfg.Cron.TokenPurgeInterval)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	authSvc := serviceAuth.NewAuthService(transactor, userRepo, staffRepo, tokenRepo, JWTService, loginLimiter, appMetrics)
	staffSvc := staffService.NewStaffService(staffRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, appMetrics, loc)
	salarySvc := salaryService.NewSalaryService(staffRepo, attendanceRepo, advanceRepo, appMetrics, loc)

	router := appHTTP.NewRouter(JWTService, appHTTP.RouterConfig{
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
		Logger:         logger,
		Metrics:        appMetrics,
		StaffService:   staffSvc,
	}, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(JWTService, authSvc),
		Staff:      appHTTP.NewStaffHandler(staffSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Salary:     appHTTP.NewSalaryHandler(salarySvc),
		Health: appHTTP.NewHealthHandler(map[string]appHTTP.HealthCheck{
			"database":     func(ctx context.Context) bool { return db.Ping(ctx) == nil },
			"rate_limiter": loginLimiter.Healthy,
		}),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", srv.Addr, "timezone", loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	return nil
}
