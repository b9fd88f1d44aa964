package cache

import (
	"context"
	"fmt"
	"strings"

	"github.com/larriantoniy/farm_session_client/internal/ports"
)

const promoKeyPrefix = "sb_wiz.promo-key.v."

// PromoStore — один опциональный промокод на хост, живет независимо
// от ферм. Записывается отдельным флоу активации промо, читается перед
// каждым запросом сессии.
type PromoStore struct {
	storage ports.KeyValueStorage
	host    string
}

func NewPromoStore(storage ports.KeyValueStorage, host string) *PromoStore {
	return &PromoStore{
		storage: storage,
		host:    strings.TrimPrefix(host, "www."),
	}
}

func (p *PromoStore) key() string {
	return promoKeyPrefix + p.host
}

// PromoCode возвращает сохраненный промокод. false — код никогда не
// сохранялся; это не то же самое, что пустая строка. Ошибка хранилища
// пробрасывается, молча превращать её в "кода нет" нельзя.
func (p *PromoStore) PromoCode(ctx context.Context) (string, bool, error) {
	code, ok, err := p.storage.Get(ctx, p.key())
	if err != nil {
		return "", false, fmt.Errorf("promo code read: %w", err)
	}
	return code, ok, nil
}

func (p *PromoStore) SavePromoCode(ctx context.Context, id string) error {
	if err := p.storage.Set(ctx, p.key(), id); err != nil {
		return fmt.Errorf("promo code write: %w", err)
	}
	return nil
}
