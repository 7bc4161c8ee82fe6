package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cameshop/cameshop-api/internal/api"
	"github.com/cameshop/cameshop-api/internal/core/domain"
	"github.com/cameshop/cameshop-api/internal/core/service"
	"github.com/cameshop/cameshop-api/internal/infrastructure/config"
	mongodb "github.com/cameshop/cameshop-api/internal/infrastructure/db/mongo"
	redisdb "github.com/cameshop/cameshop-api/internal/infrastructure/db/redis"
	"github.com/cameshop/cameshop-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// logger is not up yet
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	mongoClient, db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes failed")
	}

	issuer, err := service.NewTokenIssuer(
		cfg.JWT.Secret,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		time.Duration(cfg.JWT.TTLMinutes)*time.Minute,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("token issuer configuration invalid")
	}

	if err := bootstrapAdmin(ctx, cfg, userRepo); err != nil {
		log.Fatal().Err(err).Msg("admin bootstrap failed")
	}

	e := api.NewRouter(cfg, db, rdb, issuer, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// bootstrapAdmin seeds an Admin account from ADMIN_EMAIL/ADMIN_PASSWORD when
// configured and not already present. Without one, no admin-gated route is
// reachable on a fresh database.
func bootstrapAdmin(ctx context.Context, cfg *config.Config, repo *mongodb.MongoUserRepository) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		return nil
	}

	if _, err := repo.FindByEmail(ctx, cfg.Admin.Email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	if !domain.PasswordIsValid(cfg.Admin.Password) {
		return errors.New("ADMIN_PASSWORD does not meet the password policy")
	}

	hash, err := domain.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}

	_, err = repo.Create(ctx, &domain.User{
		Name:         cfg.Admin.Name,
		Email:        cfg.Admin.Email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	})
	if errors.Is(err, domain.ErrEmailInUse) {
		return nil
	}
	return err
}
