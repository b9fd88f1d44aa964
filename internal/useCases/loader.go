package useCases

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/larriantoniy/farm_session_client/internal/cache"
	"github.com/larriantoniy/farm_session_client/internal/domain"
	"github.com/larriantoniy/farm_session_client/internal/ports"
)

// SessionLoader — оркестрация бутстрапа сессии: собрать промо/реферальный
// контекст, сходить на сервер, записать кэш, отдать нормализованный результат.
type SessionLoader struct {
	api      ports.SessionAPI
	game     ports.GameMaker
	cache    *cache.SessionCache
	promo    *cache.PromoStore
	referral ports.ReferralSource
	log      *slog.Logger
}

func NewSessionLoader(
	api ports.SessionAPI,
	game ports.GameMaker,
	sessionCache *cache.SessionCache,
	promo *cache.PromoStore,
	referral ports.ReferralSource,
	log *slog.Logger,
) *SessionLoader {
	return &SessionLoader{
		api:      api,
		game:     game,
		cache:    sessionCache,
		promo:    promo,
		referral: referral,
		log:      log,
	}
}

// LoadSession выполняет одно рукопожатие. Запись кэша происходит только
// после успешной валидации ответа и строго до возврата: успешный возврат
// гарантирует, что кэш отражает эту сессию. Отмененный запрос до записи
// не доходит.
func (l *SessionLoader) LoadSession(ctx context.Context, req domain.SessionRequest) (*domain.SessionResult, error) {
	sctx := ports.SessionContext{
		ReferrerID:   l.referral.ReferrerID(),
		SignUpMethod: l.referral.SignupMethod(),
	}

	code, ok, err := l.promo.PromoCode(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		sctx.PromoCode = code
	}

	payload, err := l.api.CreateSession(ctx, req, sctx)
	if err != nil {
		return nil, err
	}

	if err := l.cache.SaveSession(ctx, *payload.FarmID); err != nil {
		return nil, err
	}

	game, err := l.game.MakeGame(payload.Farm)
	if err != nil {
		return nil, fmt.Errorf("make game: %w", err)
	}

	result := payload.Result(game)
	l.log.Info("session loaded",
		"farm_id", result.FarmID,
		"session_id", result.SessionID,
		"verified", result.Verified,
	)
	return result, nil
}
