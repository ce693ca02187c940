package counter

// explain.go — texto de una contraoferta, apto para mostrar tal cual en
// la UI de negociación. Dos bandas discretas: probabilidad y coste.

import (
	"fmt"

	"github.com/alejandrodnm/tradewise/internal/domain"
)

// explain genera la explicación en lenguaje natural de un candidato.
func explain(sw domain.Sweetener, acceptProb, valueCost float64) string {
	return fmt.Sprintf("Adding %s: %s at %s.",
		sweetenerLabel(sw), probBand(acceptProb), costBand(valueCost))
}

func sweetenerLabel(sw domain.Sweetener) string {
	switch sw.Type {
	case domain.SweetenerPick:
		if sw.Year > 0 && sw.Round > 0 {
			return fmt.Sprintf("the %d round-%d pick", sw.Year, sw.Round)
		}
		return sw.Name
	case domain.SweetenerFAAB:
		return fmt.Sprintf("%s FAAB", sw.Name)
	default:
		if sw.Position != "" {
			return fmt.Sprintf("%s (%s)", sw.Name, sw.Position)
		}
		return sw.Name
	}
}

func probBand(p float64) string {
	switch {
	case p >= 0.6:
		return "likely accepted"
	case p >= 0.35:
		return "moderate chance of acceptance"
	default:
		return "a tough sell"
	}
}

func costBand(cost float64) string {
	switch {
	case cost >= 0.3:
		return "significant cost"
	case cost >= 0.15:
		return "moderate cost"
	default:
		return "minimal cost"
	}
}
