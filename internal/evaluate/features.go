package evaluate

// features.go — derivación de las features agregadas de aceptación a
// partir de un TradeDelta ya valorado, el índice de demanda de la liga y
// el perfil del partner. Todas las features quedan en escala 0–10; el
// modelo logístico vive en domain y solo asume esa escala.

import (
	"github.com/alejandrodnm/tradewise/internal/domain"
)

const featureScale = 10.0

// Features agrega las seis señales del trade para el modelo de aceptación.
// La volatilidad llega del TradeDelta — calculada una sola vez — y no se
// re-deriva aquí.
func Features(
	delta domain.TradeDelta,
	ldi domain.LeagueDemandIndex,
	partner domain.TeamProfileLite,
) domain.AcceptanceFeatures {
	return domain.AcceptanceFeatures{
		Fairness:        fairness(delta),
		LDIAlignment:    ldiAlignment(delta.GaveAssets, ldi),
		NeedsFit:        needsFit(delta.GaveAssets, partner),
		ArchetypeMatch:  archetypeMatch(delta.GaveAssets, partner.CompetitiveWindow),
		DealShape:       dealShape(delta),
		VolatilityDelta: delta.Volatility,
	}
}

// fairness mide el equilibrio visto por el partner: un trade parejo ronda
// 5; cuanto más gana el usuario (percentDiff positivo), menos justo le
// parece al otro lado.
func fairness(delta domain.TradeDelta) float64 {
	return clampFeature(5 - delta.PercentDiff/10)
}

// ldiAlignment promedia la demanda de liga de las posiciones que el
// partner recibiría (lo que el usuario entrega). Demanda 0–100 → 0–10.
func ldiAlignment(outgoing []domain.PricedAsset, ldi domain.LeagueDemandIndex) float64 {
	if len(outgoing) == 0 {
		return featureScale / 2
	}
	var sum float64
	for _, a := range outgoing {
		sum += ldi.Demand(a.Position)
	}
	return clampFeature(sum / float64(len(outgoing)) / 10)
}

// needsFit: fracción de lo entregado que cubre una necesidad declarada
// del partner. Sin necesidades declaradas queda neutro.
func needsFit(outgoing []domain.PricedAsset, partner domain.TeamProfileLite) float64 {
	if len(outgoing) == 0 || len(partner.Needs) == 0 {
		return featureScale / 2
	}
	hits := 0
	for _, a := range outgoing {
		if partner.NeedsPosition(a.Position) {
			hits++
		}
	}
	return clampFeature(float64(hits) / float64(len(outgoing)) * featureScale)
}

// archetypeMatch: un WIN_NOW quiere jugadores que ganan hoy; un REBUILD
// quiere picks. MIDDLE es indiferente.
func archetypeMatch(outgoing []domain.PricedAsset, window domain.CompetitiveWindow) float64 {
	if len(outgoing) == 0 || window == domain.WindowMiddle {
		return featureScale / 2
	}
	matches := 0
	for _, a := range outgoing {
		switch window {
		case domain.WindowWinNow:
			if !a.IsPick() {
				matches++
			}
		case domain.WindowRebuild:
			if a.IsPick() {
				matches++
			}
		}
	}
	return clampFeature(float64(matches) / float64(len(outgoing)) * featureScale)
}

// dealShape favorece la consolidación desde el lado del partner: entregar
// varias piezas por una sola estrella puntúa alto.
func dealShape(delta domain.TradeDelta) float64 {
	pieces := len(delta.ReceivedAssets) - len(delta.GaveAssets)
	return clampFeature(5 + float64(pieces)*1.5)
}

func clampFeature(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > featureScale {
		return featureScale
	}
	return v
}
