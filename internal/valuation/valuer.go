package valuation

import (
	"context"
	"log/slog"
	"time"

	"github.com/alejandrodnm/tradewise/internal/domain"
	"github.com/alejandrodnm/tradewise/internal/ports"
)

// valuer.go — resolución de valor de un activo con cadena de fallback.
//
// Orden de resolución: tabla histórica (excel) → feed de mercado
// (fantasycalc) → curva de picks (curve) → unknown con valor floor.
// Cada resultado lleva SIEMPRE su fuente: el consumidor decide cuánta
// confianza merece el número según de dónde salió.
//
// Los errores de proveedor NO se propagan: se degradan al siguiente
// eslabón con un log. Esto es scoring consultivo — un fallo duro
// bloquearía el flujo de negociación del usuario por una insight
// no crítica.

// Valuer resuelve PricedAssets para un modo de evaluación concreto.
type Valuer struct {
	snapshots ports.SnapshotProvider
	market    ports.MarketFeed
	curve     Curve
	floor     float64 // valor asignado a los activos sin resolver
}

// NewValuer crea un Valuer. Cualquier proveedor puede ser nil: la cadena
// simplemente salta ese eslabón.
func NewValuer(snapshots ports.SnapshotProvider, market ports.MarketFeed, curve Curve, floor float64) *Valuer {
	if floor < 0 {
		floor = 0
	}
	return &Valuer{snapshots: snapshots, market: market, curve: curve, floor: floor}
}

// Resolve valora un activo a la fecha `at`. Con `at` en cero se valora
// "a hoy" (modo hindsight). Nunca devuelve error: el peor caso es
// source=unknown con el valor floor.
func (v *Valuer) Resolve(ctx context.Context, asset domain.Asset, at time.Time, settings domain.LeagueSettings) domain.PricedAsset {
	priced := domain.PricedAsset{
		ID:       asset.ID,
		Name:     asset.Name,
		Kind:     asset.Kind,
		Position: asset.Position,
		Age:      asset.Age,
		Season:   asset.Season,
		Round:    asset.Round,
		Slot:     asset.Slot,
		Value:    v.floor,
		Source:   domain.SourceUnknown,
	}

	if at.IsZero() {
		at = time.Now()
	}

	// 1. Tabla histórica point-in-time.
	if v.snapshots != nil {
		value, ok, err := v.snapshots.ValueAt(ctx, asset.ID, at)
		if err != nil {
			slog.Debug("snapshot lookup failed", "asset", asset.ID, "err", err)
		} else if ok && value >= 0 {
			priced.Value = value
			priced.Source = domain.SourceExcel
			return priced
		}
	}

	// 2. Feed de mercado en vivo, ajustado a la liga.
	if v.market != nil {
		value, ok, err := v.market.Quote(ctx, asset.ID, settings)
		if err != nil {
			slog.Debug("market quote failed", "asset", asset.ID, "err", err)
		} else if ok && value >= 0 {
			priced.Value = value
			priced.Source = domain.SourceFantasyCalc
			return priced
		}
	}

	// 3. Curva paramétrica, solo para picks sin quote directa.
	if asset.Kind == domain.KindPick {
		if value := v.curve.Value(asset, settings.Season); value > 0 {
			priced.Value = value
			priced.Source = domain.SourceCurve
			return priced
		}
	}

	// 4. Sin resolución: floor + unknown. Nunca nil, nunca panic.
	slog.Debug("asset unresolved by any source", "asset", asset.ID, "kind", asset.Kind.String())
	return priced
}

// ResolveAll valora una lista de activos y acumula las estadísticas por
// fuente en stats (si stats tiene mapas inicializados).
func (v *Valuer) ResolveAll(ctx context.Context, assets []domain.Asset, at time.Time, settings domain.LeagueSettings, stats domain.ValuationStats) []domain.PricedAsset {
	out := make([]domain.PricedAsset, 0, len(assets))
	for _, a := range assets {
		priced := v.Resolve(ctx, a, at, settings)
		if stats.Players != nil {
			stats.Record(priced)
		}
		out = append(out, priced)
	}
	return out
}
