package domain

import (
	"encoding/json"
	"fmt"
)

// Announcement — серверное уведомление, показывается игроку при старте сессии.
// Содержимое рисует UI, для нас это непрозрачный JSON.
type Announcement = json.RawMessage

// Moderation — непрозрачное состояние модерации (чат, трейдинг)
type Moderation = json.RawMessage

// StatusCoolDown — сервер просит подождать перед следующей сессией
const StatusCoolDown = "COOL_DOWN"

// SessionPayload — сырое тело ответа /session.
// Указатели нужны чтобы отличить отсутствующее поле от нулевого значения:
// решение о валидности принимается здесь, а не глубже по коду.
type SessionPayload struct {
	Farm            json.RawMessage     `json:"farm"`
	StartedAt       string              `json:"startedAt"`
	IsBlacklisted   *bool               `json:"isBlacklisted"`
	DeviceTrackerID *string             `json:"deviceTrackerId"`
	Status          string              `json:"status"`
	Announcements   []Announcement      `json:"announcements"`
	Transaction     *PendingTransaction `json:"transaction"`
	Verified        *bool               `json:"verified"`
	Moderation      Moderation          `json:"moderation"`
	PromoCode       string              `json:"promoCode"`
	SessionID       *string             `json:"sessionId"`
	FarmID          *string             `json:"farmId"`
	AnalyticsID     *string             `json:"analyticsId"`
	FarmAddress     string              `json:"farmAddress"`
}

// Validate сверяет тело ответа с ожидаемой формой.
// Любое нарушение — ErrInvalidResponse: кривые данные сервера
// не должны пройти дальше этой границы.
func (p *SessionPayload) Validate() error {
	switch {
	case len(p.Farm) == 0:
		return fmt.Errorf("%w: missing farm", ErrInvalidResponse)
	case p.FarmID == nil:
		return fmt.Errorf("%w: missing farmId", ErrInvalidResponse)
	case p.SessionID == nil:
		return fmt.Errorf("%w: missing sessionId", ErrInvalidResponse)
	case p.AnalyticsID == nil:
		return fmt.Errorf("%w: missing analyticsId", ErrInvalidResponse)
	case p.DeviceTrackerID == nil:
		return fmt.Errorf("%w: missing deviceTrackerId", ErrInvalidResponse)
	case p.Verified == nil:
		return fmt.Errorf("%w: missing verified", ErrInvalidResponse)
	case len(p.Moderation) == 0:
		return fmt.Errorf("%w: missing moderation", ErrInvalidResponse)
	}
	return nil
}

// Result собирает нормализованный SessionResult из провалидированного тела.
// Вызывать только после Validate.
func (p *SessionPayload) Result(game GameState) *SessionResult {
	announcements := p.Announcements
	if announcements == nil {
		announcements = []Announcement{}
	}

	res := &SessionResult{
		FarmID:          *p.FarmID,
		FarmAddress:     p.FarmAddress,
		Game:            game,
		DeviceTrackerID: *p.DeviceTrackerID,
		Announcements:   announcements,
		Transaction:     p.Transaction,
		Verified:        *p.Verified,
		PromoCode:       p.PromoCode,
		Moderation:      p.Moderation,
		SessionID:       *p.SessionID,
		AnalyticsID:     *p.AnalyticsID,
	}
	if p.IsBlacklisted != nil {
		res.IsBlacklisted = *p.IsBlacklisted
	}
	return res
}
