package cache

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/larriantoniy/farm_session_client/internal/domain"
	"github.com/larriantoniy/farm_session_client/internal/ports"
)

const sessionKeyPrefix = "sb_wiz.xtc.t."

// SessionCache хранит по одной записи на ферму под ключом, скоупнутым
// хостом и путем страницы. Кэш вспомогательный: источник истины про
// активную сессию — ответ сервера, не это хранилище.
type SessionCache struct {
	storage ports.KeyValueStorage
	wallet  ports.Wallet
	logger  *slog.Logger
	host    string
	path    string
	now     func() time.Time

	// защищает read-merge-write внутри процесса; гонку между процессами
	// хранилище не закрывает, last-writer-wins (принятый риск)
	mu sync.Mutex
}

func NewSessionCache(storage ports.KeyValueStorage, wallet ports.Wallet, host, path string, logger *slog.Logger) *SessionCache {
	return &SessionCache{
		storage: storage,
		wallet:  wallet,
		logger:  logger,
		host:    strings.TrimPrefix(host, "www."),
		path:    path,
		now:     time.Now,
	}
}

func (c *SessionCache) key() string {
	return sessionKeyPrefix + c.host + "-" + c.path
}

// GetSessionID возвращает склейку сохраненных записей через ":" —
// составной идентификатор для диагностики, когда в одном профиле жило
// несколько ферм. Пустая строка если сессий не было. Склеиваются именно
// значения (base64-блобы), не id ферм — так исторически делает клиент,
// и на это завязана аналитика.
func (c *SessionCache) GetSessionID(ctx context.Context) (string, error) {
	raw, ok, err := c.storage.Get(ctx, c.key())
	if err != nil {
		return "", fmt.Errorf("session cache read: %w", err)
	}
	if !ok {
		return "", nil
	}

	var sessions map[string]string
	if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
		// битый кэш приравниваем к пустому, старт новой сессии он
		// блокировать не должен
		c.logger.Warn("session cache is corrupted, treating as empty", "key", c.key())
		return "", nil
	}

	keys := make([]string, 0, len(sessions))
	for k := range sessions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([]string, 0, len(keys))
	for _, k := range keys {
		values = append(values, sessions[k])
	}
	return strings.Join(values, ":"), nil
}

// SaveSession вписывает запись фермы в маппинг, не трогая записи других
// ферм. Повторное сохранение той же фермы перезаписывает её запись.
func (c *SessionCache) SaveSession(ctx context.Context, farmID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	sessions := map[string]string{}

	raw, ok, err := c.storage.Get(ctx, c.key())
	if err != nil {
		return fmt.Errorf("session cache read: %w", err)
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
			c.logger.Warn("session cache is corrupted, resetting", "key", c.key())
			sessions = map[string]string{}
		}
	}

	entry := domain.FarmSession{
		FarmID:     farmID,
		LoggedInAt: c.now().UnixMilli(),
		Account:    c.wallet.Account(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal farm session: %w", err)
	}
	sessions[farmID] = base64.StdEncoding.EncodeToString(data)

	out, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("marshal sessions: %w", err)
	}
	if err := c.storage.Set(ctx, c.key(), string(out)); err != nil {
		return fmt.Errorf("session cache write: %w", err)
	}
	return nil
}
