package counter

// candidates.go — construcción del set de sweeteners candidatos desde el
// inventario ofrecible del usuario (ya filtrado por elegibilidad) más los
// escalones de FAAB restante. El optimizador no filtra: asume que todo lo
// que recibe es legalmente ofrecible.

import (
	"fmt"

	"github.com/alejandrodnm/tradewise/internal/domain"
)

// Escalones de FAAB que se prueban, como fracción del presupuesto restante.
var faabSteps = []float64{0.10, 0.25, 0.50}

// faabPointValue convierte dólares de FAAB a puntos de valor de trade.
// Heurística: en ligas típicas un presupuesto entero vale aproximadamente
// lo que un titular medio.
const faabPointValue = 25.0

// Candidates construye los sweeteners desde los activos ofrecibles (sin
// los que ya están dentro del trade) y el presupuesto de FAAB restante.
func Candidates(offerable []domain.PricedAsset, inTrade map[string]bool, faabBudget float64) []domain.Sweetener {
	out := make([]domain.Sweetener, 0, len(offerable)+len(faabSteps))

	for _, a := range offerable {
		if inTrade[a.ID] || a.Value <= 0 {
			continue
		}
		if a.IsPick() {
			out = append(out, domain.Sweetener{
				Type:  domain.SweetenerPick,
				Name:  a.Label(),
				Value: a.Value,
				Round: a.Round,
				Year:  a.Season,
			})
			continue
		}
		out = append(out, domain.Sweetener{
			Type:     domain.SweetenerPlayer,
			Name:     a.Name,
			Value:    a.Value,
			Position: a.Position,
		})
	}

	if faabBudget > 0 {
		for _, step := range faabSteps {
			dollars := faabBudget * step
			out = append(out, domain.Sweetener{
				Type:  domain.SweetenerFAAB,
				Name:  fmt.Sprintf("$%.0f", dollars),
				Value: dollars * faabPointValue,
			})
		}
	}

	return out
}
