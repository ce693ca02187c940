package valuation

import "github.com/alejandrodnm/tradewise/internal/domain"

// Parámetros del descuento de confianza. La base nunca llega al techo:
// este sistema no está completamente seguro ni con datos perfectos.
const (
	baseConfidence    = 0.90
	neutralConfidence = 0.50 // trade vacío: ni confianza ni desconfianza

	unknownWeight    = 0.55 // castigo por fracción de activos sin fuente
	volatilityWeight = 0.04 // castigo por punto de volatilidad [0,10]
)

// Confidence deriva la confianza de una valoración a partir de la fracción
// de activos unknown y de la volatilidad cross-asset del trade (calculada
// UNA vez por el evaluador y compartida con las features de aceptación).
// Siempre dentro de [domain.MinConfidence, domain.MaxConfidence].
func Confidence(assets []domain.PricedAsset, volatility float64) float64 {
	if len(assets) == 0 {
		return neutralConfidence
	}

	conf := baseConfidence -
		domain.UnknownShare(assets)*unknownWeight -
		volatility*volatilityWeight

	if conf < domain.MinConfidence {
		return domain.MinConfidence
	}
	if conf > domain.MaxConfidence {
		return domain.MaxConfidence
	}
	return conf
}
