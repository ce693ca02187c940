package ports

import (
	"context"

	"github.com/alejandrodnm/tradewise/internal/domain"
)

// TradeHistory es el agregador de historial de trades de la liga.
// Devuelve agregados crudos por liga y por partner; la coerción y el
// etiquetado de suficiencia los hace internal/demand, no el proveedor.
type TradeHistory interface {
	LeagueHistory(ctx context.Context, leagueID string) (domain.RawLeagueHistory, error)
}
