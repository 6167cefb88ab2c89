package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/billtrack/billing-system/internal/api"
	"github.com/billtrack/billing-system/internal/core/service"
	"github.com/billtrack/billing-system/internal/infrastructure/crypto"
	mongodb "github.com/billtrack/billing-system/internal/infrastructure/db/mongo"
	redisdb "github.com/billtrack/billing-system/internal/infrastructure/db/redis"
	"github.com/billtrack/billing-system/internal/infrastructure/queue"
	"github.com/billtrack/billing-system/internal/infrastructure/token"
	"github.com/billtrack/billing-system/internal/pkg/config"
	"github.com/billtrack/billing-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// Logger is not up yet.
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	userRepo := mongodb.NewUserRepository(db)
	billRepo := mongodb.NewBillRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	// The unique email index is the authoritative duplicate-registration guard.
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := billRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("bill index creation failed")
	}

	// --- Core services ---
	dispatcher := queue.NewAuditDispatcher(cfg.AuditWorkers, auditRepo, log)
	dispatcher.Start(ctx)

	hasher := crypto.NewBcryptHasher(cfg.BcryptCost)
	codec := token.NewJWTCodec(cfg.JWTSecret, cfg.TokenTTL)
	throttle := redisdb.NewLoginThrottle(rdb, cfg.LoginMaxAttempts)

	identitySvc := service.NewIdentityService(userRepo, hasher, codec, throttle, dispatcher, log)
	userSvc := service.NewUserService(userRepo)
	billSvc := service.NewBillService(billRepo, log)

	// --- HTTP ---
	e := api.NewRouter(api.Services{
		Identity: identitySvc,
		Users:    userSvc,
		Bills:    billSvc,
		Codec:    codec,
	}, db, rdb, log)

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("billing API listening")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Info().Err(err).Msg("server stopped")
	}
}
