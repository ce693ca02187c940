package demand

import (
	"fmt"

	"github.com/alejandrodnm/tradewise/internal/domain"
)

// ResolvePartnerTendencies convierte las muestras crudas por partner en
// tendencias etiquetadas. Comparte la máquina de estados del LDI: misma
// clasificación de suficiencia, mismos umbrales, misma invariante de
// nunca-vacío.
//
// Un partner por debajo del umbral individual se incluye igualmente
// (con sus SampleTrades reales) pero con demanda amortiguada hacia el
// neutro y HasSignal=false: el dashboard puede mostrarlo sin fingir que
// dos trades son una tendencia.
func ResolvePartnerTendencies(raw domain.RawLeagueHistory, opts Options) domain.PartnerTendencies {
	opts = opts.withDefaults()

	out := domain.PartnerTendencies{
		Partners:           make(map[string]domain.PartnerTendency, len(raw.Partners)),
		PartnersWithSignal: partnersWithSignal(raw, opts),
		TradesAnalyzed:     raw.TradesAnalyzed,
	}

	src := classify(raw, opts)
	out.RankingSource = src
	out.RankingSourceNote = sourceNote(src, raw, opts)
	out.FallbackMode = src.IsBaseline()

	if len(raw.Partners) == 0 {
		out.Warnings = append(out.Warnings,
			"no per-partner trade samples; tendencies unavailable, baseline emitted")
		return out
	}

	for partnerID, sample := range raw.Partners {
		tendency := domain.PartnerTendency{
			PartnerID:      partnerID,
			SampleTrades:   sample.Trades,
			PositionDemand: neutralPositions(),
			PremiumPaid:    coercePremium(sample.PremiumPaid),
			HasSignal:      sample.Trades >= opts.MinTradesForPartnerSignal,
		}

		// Sin señal individual: demanda neutra amortiguada, premium intacto
		// (un solo dato de premium sigue siendo un dato, solo que débil).
		factor := opts.DampenFactor
		if tendency.HasSignal && src == domain.RankingLive {
			factor = 1.0
		}

		for _, pos := range domain.Positions() {
			rawScore, present := sample.PositionScores[string(pos)]
			if !present {
				continue
			}
			score, clean := coerceScore(rawScore)
			if !clean {
				out.Warnings = append(out.Warnings,
					fmt.Sprintf("partner %s: malformed demand for %s; coerced", partnerID, pos))
			}
			tendency.PositionDemand[pos] = dampen(score, factor)
		}

		out.Partners[partnerID] = tendency
	}

	if out.FallbackMode {
		out.Warnings = append(out.Warnings,
			"partner sample below league-signal thresholds; tendencies dampened toward neutral")
	}
	return out
}
