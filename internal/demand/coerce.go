package demand

import (
	"math"

	"github.com/alejandrodnm/tradewise/internal/domain"
)

// coerce.go — saneado numérico del payload crudo del agregador.
//
// Todo campo upstream puede venir NaN, ±Inf o fuera de rango. Aquí se
// coerciona a un default documentado y se registra un warning; nunca se
// propaga un no-finito hacia el LDI.

// coerceScore devuelve el score coercionado a finito y clampado a [0,100].
// ok=false si hubo que sustituir el valor (el caller añade el warning).
func coerceScore(v float64) (score float64, ok bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return domain.DemandScoreNeutral, false
	}
	if v < domain.DemandScoreMin {
		return domain.DemandScoreMin, false
	}
	if v > domain.DemandScoreMax {
		return domain.DemandScoreMax, false
	}
	return v, true
}

// coercePremium clampa el sobreprecio medio a [-1, 1]; no-finito → 0.
func coercePremium(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

// dampen acerca un score al neutro por el factor dado ∈ [0,1].
// factor 1 = score intacto, factor 0 = neutro puro.
func dampen(score, factor float64) float64 {
	return domain.DemandScoreNeutral + (score-domain.DemandScoreNeutral)*factor
}

// neutralPositions devuelve el mapa de demanda neutro (todo 50).
func neutralPositions() map[domain.Position]float64 {
	out := make(map[domain.Position]float64, 5)
	for _, pos := range domain.Positions() {
		out[pos] = domain.DemandScoreNeutral
	}
	return out
}

// neutralPickTiers devuelve demanda neutra por tier de pick.
func neutralPickTiers() map[domain.PickSlot]float64 {
	return map[domain.PickSlot]float64{
		domain.SlotEarly: domain.DemandScoreNeutral,
		domain.SlotMid:   domain.DemandScoreNeutral,
		domain.SlotLate:  domain.DemandScoreNeutral,
	}
}
