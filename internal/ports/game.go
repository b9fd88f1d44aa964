package ports

import (
	"encoding/json"

	"github.com/larriantoniy/farm_session_client/internal/domain"
)

// GameMaker — внешний трансформер, который превращает сырой снапшот фермы
// в игровую модель. Внутренности снапшота здесь не трактуются.
type GameMaker interface {
	MakeGame(farm json.RawMessage) (domain.GameState, error)
}
