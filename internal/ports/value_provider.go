package ports

import (
	"context"
	"time"

	"github.com/alejandrodnm/tradewise/internal/domain"
)

// SnapshotProvider es la tabla histórica de valores point-in-time
// (fuente `excel`). Es el primer eslabón de la cadena de fallback.
type SnapshotProvider interface {
	// ValueAt devuelve el valor del activo en el snapshot más reciente
	// anterior o igual a `at`. ok=false si no hay snapshot utilizable.
	ValueAt(ctx context.Context, assetID string, at time.Time) (value float64, ok bool, err error)
}

// MarketFeed es el feed de mercado en vivo (fuente `fantasycalc`).
// Las quotes dependen de los ajustes de liga (SF, TE premium, team count).
type MarketFeed interface {
	// Quote devuelve el valor de mercado actual del activo para la liga
	// dada. ok=false si el feed no cotiza el activo.
	Quote(ctx context.Context, assetID string, settings domain.LeagueSettings) (value float64, ok bool, err error)
}
