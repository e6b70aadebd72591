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

	"voice-reports/internal/appointments"
	"voice-reports/internal/audit"
	"voice-reports/internal/auth"
	"voice-reports/internal/callreport"
	"voice-reports/internal/config"
	"voice-reports/internal/httpapi"
	"voice-reports/internal/reporting"
	"voice-reports/pkg/logger"
	"voice-reports/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env, cfg.App.LogLevel)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	deps, cleanup, err := openStores(rootCtx, cfg, log)
	if err != nil {
		log.Error("store init failed", "backend", cfg.Store.Backend, "err", err)
		os.Exit(1)
	}
	defer cleanup()

	auditSvc := audit.NewService(audit.NewMemoryRepo())
	reports := callreport.NewService(deps.reports, callreport.AuditAdapter{Audit: auditSvc})
	appts := appointments.NewService(deps.appointments)

	h := httpapi.Handlers{
		Reports:      reports,
		Appointments: appts,
		Reporting:    reporting.NewService(reports, appts),
		Audit:        auditSvc,
	}

	var authManager *auth.Manager
	if cfg.AuthEnabled() {
		authManager, err = auth.NewManager(cfg.Auth)
		if err != nil {
			log.Error("auth init failed", "err", err)
			os.Exit(1)
		}
	} else {
		log.Warn("JWT_SECRET not set; dashboard endpoints are public")
	}

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))
	r.Use(cors(cfg.App.CORSAllowOrigin))

	registerRoutes(r, h, authManager, deps.health)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env, "store", cfg.Store.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}

type storeDeps struct {
	reports      callreport.Store
	appointments appointments.Repository
	health       func(ctx context.Context) error
}

// openStores builds the configured backend. Appointments fall back to memory
// on the redis backend.
func openStores(ctx context.Context, cfg config.Config, log *slog.Logger) (storeDeps, func(), error) {
	noop := func() {}
	switch cfg.Store.Backend {
	case config.StorePostgres:
		db, err := utils.OpenPostgres(ctx, utils.PostgresConfig{DSN: cfg.PostgresDSN()})
		if err != nil {
			return storeDeps{}, noop, err
		}
		closeDB := func() { _ = db.Close() }

		if err := utils.ApplySchema(ctx, db, callreport.PostgresSchema, appointments.PostgresSchema); err != nil {
			closeDB()
			return storeDeps{}, noop, err
		}
		log.Info("postgres store ready", "host", cfg.DB.Host, "db", cfg.DB.Name)
		return storeDeps{
			reports:      callreport.NewPostgresStore(db),
			appointments: appointments.NewPostgresRepo(db),
			health: func(ctx context.Context) error {
				return utils.PingPostgres(ctx, db, 2*time.Second)
			},
		}, closeDB, nil

	case config.StoreRedis:
		rdb, err := utils.OpenRedis(ctx, utils.RedisConfig{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
		})
		if err != nil {
			return storeDeps{}, noop, err
		}
		log.Info("redis store ready", "addr", cfg.RedisAddr(), "key_prefix", cfg.Redis.KeyPrefix)
		return storeDeps{
			reports:      callreport.NewRedisStore(rdb, cfg.Redis.KeyPrefix),
			appointments: appointments.NewMemoryRepo(),
			health:       redisHealth(rdb),
		}, func() { _ = rdb.Close() }, nil

	default:
		return storeDeps{
			reports:      callreport.NewMemoryStore(),
			appointments: appointments.NewMemoryRepo(),
		}, noop, nil
	}
}

func redisHealth(rdb *redis.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return rdb.Ping(ctx).Err()
	}
}
