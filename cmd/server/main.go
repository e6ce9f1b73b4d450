package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"github.com/d60-Lab/drinklog/config"
	"github.com/d60-Lab/drinklog/internal/api"
	"github.com/d60-Lab/drinklog/internal/api/handler"
	"github.com/d60-Lab/drinklog/internal/auth"
	"github.com/d60-Lab/drinklog/internal/credential"
	"github.com/d60-Lab/drinklog/internal/policy"
	"github.com/d60-Lab/drinklog/internal/projection"
	"github.com/d60-Lab/drinklog/internal/repository"
	"github.com/d60-Lab/drinklog/internal/service"
	"github.com/d60-Lab/drinklog/pkg/cache"
	"github.com/d60-Lab/drinklog/pkg/database"
	"github.com/d60-Lab/drinklog/pkg/logger"
	"github.com/d60-Lab/drinklog/pkg/tracing"
)

// @title drinklog API
// @version 1.0
// @description 记录饮品、关注好友、点赞与评论
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer <token>
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Sentry.Environment,
			SampleRate:       cfg.Sentry.SampleRate,
			AttachStacktrace: true,
		}); err != nil {
			return fmt.Errorf("init sentry: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	db, err := database.InitDB(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	store := repository.NewStore(db)
	if err := store.AutoMigrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	rdb, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	hasher := credential.NewHasher(cfg.Policy.BcryptCost)
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.Issuer)
	ledger := service.NewTokenLedger(store.RevokedTokens, rdb, tokens.TTL())
	authSvc := service.NewAuthService(store, hasher, tokens, ledger)
	postSvc := service.NewPostService(store)

	h := handler.NewHandler(
		service.NewUserService(store, hasher, policy.NewDomainSuffixPolicy(cfg.Policy.EmailSuffixes...)),
		authSvc,
		service.NewRelationshipService(store),
		postSvc,
		service.NewCommentService(store),
		projection.NewProjector(store, postSvc),
	)
	router, err := api.NewRouter(api.Options{
		Mode:        cfg.Server.Mode,
		ServiceName: cfg.Tracing.ServiceName,
		CORSOrigins: cfg.Server.CORSOrigins,
	}, h, authSvc)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("db", cfg.Database.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
