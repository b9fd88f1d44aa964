package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// SessionRequest — входные данные рукопожатия. Все поля обязательны.
type SessionRequest struct {
	Token         string
	TransactionID string
	Wallet        string
}

// Validate проверяет что запрос собран полностью
func (r SessionRequest) Validate() error {
	if r.Token == "" {
		return fmt.Errorf("session request: token is required")
	}
	if r.TransactionID == "" {
		return fmt.Errorf("session request: transactionId is required")
	}
	if r.Wallet == "" {
		return fmt.Errorf("session request: wallet is required")
	}
	return nil
}

// NewTransactionID выдает свежий корреляционный id для X-Transaction-ID.
// На каждую попытку запроса нужен новый id, иначе корреляция на сервере теряет смысл.
func NewTransactionID() string {
	return uuid.NewString()
}

// GameState — нормализованное состояние игры, его собирает внешний трансформер
type GameState any

// SessionResult — результат успешного рукопожатия.
// Все поля кроме Game — прямая проекция ответа сервера.
type SessionResult struct {
	FarmID          string
	FarmAddress     string // пустая пока ферма не сминчена
	Game            GameState
	IsBlacklisted   bool
	DeviceTrackerID string
	Announcements   []Announcement
	Transaction     *PendingTransaction
	Verified        bool
	PromoCode       string
	Moderation      Moderation
	SessionID       string
	AnalyticsID     string
}

// PendingTransaction — незавершенная on-chain транзакция, привязанная к сессии
type PendingTransaction struct {
	Type      string `json:"type"`
	ExpiresAt int64  `json:"expiresAt"`
}

// FarmSession — запись кэша сессий, одна на ферму.
// Хранится как base64(JSON) под ключом фермы.
type FarmSession struct {
	FarmID     string `json:"farmId"`
	LoggedInAt int64  `json:"loggedInAt"`
	Account    string `json:"account"`
}
