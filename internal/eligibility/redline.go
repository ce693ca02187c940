package eligibility

import (
	"sort"

	"github.com/alejandrodnm/tradewise/internal/domain"
)

// redline.go — el núcleo intocable de un roster.
//
// Tres reglas, en unión:
//  1. Los top-N activos por valor (default N=2).
//  2. Cualquier activo de tier Elite/Tier-1 por valor normalizado.
//  3. Los firsts futuros CERCANOS cuando el equipo tiene más de uno:
//     se protegen los próximos y se libera solo el más lejano — el
//     equipo necesita conservar al menos un first para mantener
//     flexibilidad.

// redLine devuelve el set de IDs intocables de un roster.
func (f *Filter) redLine(assets []domain.PricedAsset, season int) map[string]bool {
	red := make(map[string]bool)

	// 1. Top-N por valor.
	sorted := make([]domain.PricedAsset, len(assets))
	copy(sorted, assets)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Value > sorted[j].Value
	})
	for i := 0; i < f.cfg.ProtectTopN && i < len(sorted); i++ {
		red[sorted[i].ID] = true
	}

	// 2. Tiers élite.
	for _, a := range assets {
		if !a.IsPick() && f.tierOf(a.Value) <= tierOne {
			red[a.ID] = true
		}
	}

	// 3. Firsts futuros: con más de uno, proteger todos menos el más lejano.
	var futureFirsts []domain.PricedAsset
	for _, a := range assets {
		if a.IsPick() && a.Round == 1 && a.Season > season {
			futureFirsts = append(futureFirsts, a)
		}
	}
	if len(futureFirsts) > 1 {
		mostDistant := futureFirsts[0]
		for _, p := range futureFirsts[1:] {
			if p.Season > mostDistant.Season {
				mostDistant = p
			}
		}
		for _, p := range futureFirsts {
			if p.ID != mostDistant.ID {
				red[p.ID] = true
			}
		}
	}

	return red
}
