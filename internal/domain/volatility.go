package domain

import "math"

// volatility.go — estimador de dispersión de valor de un trade.
//
// El score alimenta DOS consumidores: AcceptanceFeatures.VolatilityDelta y
// el descuento de confianza de la valoración. Se calcula UNA vez por trade
// y se comparte — recalcularlo en dos sitios con inputs distintos produce
// inconsistencias entre la nota de confianza y la probabilidad de aceptación.

const (
	maxVolatility = 10.0

	// Componentes del score. La dispersión relativa domina; unknowns y
	// picks lejanos añaden penalizaciones acotadas.
	dispersionScale   = 5.0
	dispersionCap     = 6.0
	unknownPenaltyMax = 2.5
	pickPenaltyPerYr  = 0.5
	pickPenaltyCapYrs = 3
)

// Volatility mide la dispersión de valor del conjunto completo de activos
// de un trade (ambos lados). Monotónica en dispersión: trades pequeños y
// compactos puntúan bajo; mezclas de piezas caras inestables (picks a años
// vista, activos sin fuente) puntúan alto. Rango [0, 10].
func Volatility(assets []PricedAsset, currentSeason int) float64 {
	if len(assets) == 0 {
		return 0
	}

	var sum float64
	unknowns := 0
	pickPenalty := 0.0
	for _, a := range assets {
		sum += a.Value
		if a.Source == SourceUnknown {
			unknowns++
		}
		if out := a.SeasonsOut(currentSeason); out > 0 {
			if out > pickPenaltyCapYrs {
				out = pickPenaltyCapYrs
			}
			pickPenalty += float64(out) * pickPenaltyPerYr
		}
	}

	n := float64(len(assets))
	mean := sum / n

	dispersion := 0.0
	if len(assets) >= 2 && mean > 0 {
		var ss float64
		for _, a := range assets {
			d := a.Value - mean
			ss += d * d
		}
		std := math.Sqrt(ss / n)
		dispersion = clamp((std/mean)*dispersionScale, 0, dispersionCap)
	}

	unknownShare := float64(unknowns) / n
	pickAvg := pickPenalty / n

	return clamp(dispersion+unknownShare*unknownPenaltyMax+pickAvg, 0, maxVolatility)
}

// UnknownShare devuelve la fracción de activos sin fuente resuelta.
func UnknownShare(assets []PricedAsset) float64 {
	if len(assets) == 0 {
		return 0
	}
	unknowns := 0
	for _, a := range assets {
		if a.Source == SourceUnknown {
			unknowns++
		}
	}
	return float64(unknowns) / float64(len(assets))
}
