package eligibility

import "github.com/alejandrodnm/tradewise/internal/domain"

// picks.go — elegibilidad de picks de draft, gobernada SOLO por número de
// ronda y ventana competitiva del equipo relevante: la del dueño al
// ofrecer, la del partner al pedir.

// pickOfferable decide si el dueño soltaría el pick.
// WIN_NOW suelta picks medios (rondas 2+): los picks no ganan hoy.
// REBUILD blinda las rondas 1–2: son su materia prima.
func pickOfferable(pick domain.PricedAsset, window domain.CompetitiveWindow) bool {
	switch window {
	case domain.WindowRebuild:
		return pick.Round >= 3
	default: // WIN_NOW y MIDDLE
		return pick.Round >= 2
	}
}

// pickRequestable decide si tiene sentido pedirle el pick al partner.
// Misma tabla que la oferta: lo que un equipo soltaría es lo que se le
// puede pedir.
func pickRequestable(pick domain.PricedAsset, partnerWindow domain.CompetitiveWindow) bool {
	return pickOfferable(pick, partnerWindow)
}
