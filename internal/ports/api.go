package ports

import (
	"context"

	"github.com/larriantoniy/farm_session_client/internal/domain"
)

// SessionContext — клиентские идентификаторы, которые прикладываются
// к запросу сессии. Пустая строка значит "не передавать".
type SessionContext struct {
	PromoCode    string
	ReferrerID   string
	SignUpMethod string
}

// SessionAPI определяет интерфейс к серверному эндпоинту сессий.
// Реализуется HTTP-адаптером, в тестах — фейком.
type SessionAPI interface {
	// CreateSession выполняет один запрос без повторов. Возвращает
	// провалидированное тело ответа либо классифицированную ошибку
	// из internal/domain.
	CreateSession(ctx context.Context, req domain.SessionRequest, sctx SessionContext) (*domain.SessionPayload, error)
}

// ReferralSource — внешние амбиентные ридеры реферальных данных.
// Их хранилище нам не принадлежит, читаем как есть.
type ReferralSource interface {
	ReferrerID() string
	SignupMethod() string
}

// Wallet отдает текущий активный аккаунт кошелька
type Wallet interface {
	Account() string
}
