package domain

import "errors"

// Классификация исходов рукопожатия. Вид ошибки должен дойти до UI
// без изменений: "подожди" (maintenance/rate limit) и "залогинься заново"
// (expired) показываются по-разному.
var (
	ErrMaintenance     = errors.New("session: service is under maintenance")
	ErrTooManyRequests = errors.New("session: too many requests")
	ErrSessionExpired  = errors.New("session: session expired")
	ErrSessionServer   = errors.New("session: server error")
	ErrInvalidResponse = errors.New("session: invalid response shape")
	// ErrTransport — сеть упала до получения статуса. Запрос мог вообще
	// не дойти до сервера, повтор относительно безопасен.
	ErrTransport = errors.New("session: transport failure")
)

// ClassifyStatus переводит HTTP-статус в типизированную ошибку.
// nil для статусов меньше 400.
func ClassifyStatus(code int) error {
	switch {
	case code == 503:
		return ErrMaintenance
	case code == 429:
		return ErrTooManyRequests
	case code == 401:
		return ErrSessionExpired
	case code >= 400:
		return ErrSessionServer
	}
	return nil
}

// IsRetryable — можно ли пробовать еще раз чуть позже.
// Повтор — дело вызывающего, и transactionId для него нужен новый.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrMaintenance) ||
		errors.Is(err, ErrTooManyRequests) ||
		errors.Is(err, ErrTransport)
}
