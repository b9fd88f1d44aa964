package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/larriantoniy/farm_session_client/internal/adapters/api"
	"github.com/larriantoniy/farm_session_client/internal/adapters/storage"
	"github.com/larriantoniy/farm_session_client/internal/cache"
	"github.com/larriantoniy/farm_session_client/internal/config"
	"github.com/larriantoniy/farm_session_client/internal/domain"
	"github.com/larriantoniy/farm_session_client/internal/ports"
	"github.com/larriantoniy/farm_session_client/internal/useCases"
)

const (
	envDev  = "dev"
	envProd = "prod"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := setupLogger(cfg.Env)

	store := buildStorage(cfg)
	wallet := envWallet{}

	sessionCache := cache.NewSessionCache(store, wallet, cfg.Host, cfg.PagePath, logger)
	promo := cache.NewPromoStore(store, cfg.Host)
	client := api.NewClient(cfg, logger)
	loader := useCases.NewSessionLoader(client, rawGame{}, sessionCache, promo, envReferral{}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	if id, err := sessionCache.GetSessionID(ctx); err == nil && id != "" {
		logger.Debug("existing farm sessions", "session_id", id)
	}

	req := domain.SessionRequest{
		Token:         os.Getenv("SESSION_TOKEN"),
		TransactionID: domain.NewTransactionID(),
		Wallet:        wallet.Account(),
	}

	result, err := loader.LoadSession(ctx, req)
	if err != nil {
		logger.Error("loadSession error", "error", err, "retryable", domain.IsRetryable(err))
		os.Exit(1)
	}

	logger.Info("session ready",
		"farm_id", result.FarmID,
		"session_id", result.SessionID,
		"analytics_id", result.AnalyticsID,
		"announcements", len(result.Announcements),
	)
}

func buildStorage(cfg *config.AppConfig) ports.KeyValueStorage {
	if cfg.Storage.Backend == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Storage.RedisAddr,
			Password: cfg.Storage.RedisPassword,
			DB:       cfg.Storage.RedisDB,
		})
		return storage.NewRedisStorage(client)
	}
	return storage.NewFileStorage(cfg.Storage.Dir)
}

func setupLogger(env string) *slog.Logger {
	var logger *slog.Logger

	switch env {
	case envDev:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return logger
}

// envWallet — кошелек из окружения: утилите не нужен signing,
// только адрес текущего аккаунта
type envWallet struct{}

func (envWallet) Account() string { return os.Getenv("WALLET_ADDRESS") }

// envReferral читает реферальные данные из окружения
type envReferral struct{}

func (envReferral) ReferrerID() string   { return os.Getenv("REFERRER_ID") }
func (envReferral) SignupMethod() string { return os.Getenv("SIGNUP_METHOD") }

// rawGame отдает снапшот фермы как есть: у утилиты нет игрового редьюсера
type rawGame struct{}

func (rawGame) MakeGame(farm json.RawMessage) (domain.GameState, error) {
	return farm, nil
}
