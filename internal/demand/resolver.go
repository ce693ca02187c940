package demand

import (
	"fmt"

	"github.com/alejandrodnm/tradewise/internal/domain"
)

// resolver.go — máquina de estados de suficiencia de datos compartida por
// el LDI y las tendencias por partner.
//
// Estados: LIVE / BASELINE_OFFSEASON / BASELINE_NO_TRADES /
// BASELINE_INSUFFICIENT_SAMPLE. Las transiciones dependen SOLO del input,
// no del reloj: LIVE exige tradesAnalyzed > 0 Y que al menos
// MinPartnersForLeagueSignal partners superen individualmente
// MinTradesForPartnerSignal trades. Con algo de señal que no llega a los
// umbrales, los datos se devuelven amortiguados y etiquetados — no se
// rechazan. Payload esencialmente vacío → cortocircuito directo al
// baseline con objeto neutro y warning.

// Options configura los umbrales del resolver. Cero = usar el default.
type Options struct {
	// MinTradesForPartnerSignal: trades mínimos para que UN partner
	// cuente como señal individual.
	MinTradesForPartnerSignal int
	// MinPartnersForLeagueSignal: partners con señal necesarios para
	// confiar en el modo live a nivel de liga.
	MinPartnersForLeagueSignal int
	// DampenFactor acerca al neutro los scores en modo insufficient_sample.
	DampenFactor float64
	// EmptyPayloadKeys: menos claves pobladas que esto (y cero trades)
	// dispara el cortocircuito a baseline.
	EmptyPayloadKeys int
}

// DefaultOptions devuelve los umbrales calibrados por defecto.
func DefaultOptions() Options {
	return Options{
		MinTradesForPartnerSignal:  2,
		MinPartnersForLeagueSignal: 3,
		DampenFactor:               0.5,
		EmptyPayloadKeys:           2,
	}
}

// withDefaults rellena los campos en cero con los defaults.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.MinTradesForPartnerSignal <= 0 {
		o.MinTradesForPartnerSignal = def.MinTradesForPartnerSignal
	}
	if o.MinPartnersForLeagueSignal <= 0 {
		o.MinPartnersForLeagueSignal = def.MinPartnersForLeagueSignal
	}
	if o.DampenFactor <= 0 || o.DampenFactor > 1 {
		o.DampenFactor = def.DampenFactor
	}
	if o.EmptyPayloadKeys <= 0 {
		o.EmptyPayloadKeys = def.EmptyPayloadKeys
	}
	return o
}

// partnersWithSignal cuenta los partners que superan el umbral individual.
func partnersWithSignal(raw domain.RawLeagueHistory, opts Options) int {
	n := 0
	for _, sample := range raw.Partners {
		if sample.Trades >= opts.MinTradesForPartnerSignal {
			n++
		}
	}
	return n
}

// classify decide el estado de suficiencia para el payload dado.
func classify(raw domain.RawLeagueHistory, opts Options) domain.RankingSource {
	if raw.TradesAnalyzed <= 0 {
		if raw.IsOffseason {
			return domain.RankingBaselineOffseason
		}
		return domain.RankingBaselineNoTrades
	}
	if partnersWithSignal(raw, opts) < opts.MinPartnersForLeagueSignal {
		return domain.RankingBaselineInsufficient
	}
	return domain.RankingLive
}

// sourceNote genera la nota mostrable para cada estado.
func sourceNote(src domain.RankingSource, raw domain.RawLeagueHistory, opts Options) string {
	switch src {
	case domain.RankingLive:
		return fmt.Sprintf("Demand ranked from %d live league trades.", raw.TradesAnalyzed)
	case domain.RankingBaselineOffseason:
		return "League is in its offseason window with no trades — showing neutral baseline demand."
	case domain.RankingBaselineNoTrades:
		return "No trades recorded in this league yet — showing neutral baseline demand."
	default:
		return fmt.Sprintf(
			"Only %d of the %d partners needed have enough trade history — demand is dampened toward neutral.",
			partnersWithSignal(raw, opts), opts.MinPartnersForLeagueSignal,
		)
	}
}

// ResolveLeagueDemand convierte el historial crudo en un LDI acotado y
// etiquetado. Nunca devuelve un objeto vacío ni error: la ausencia de
// señal es un estado del resultado, no una excepción.
func ResolveLeagueDemand(raw domain.RawLeagueHistory, opts Options) domain.LeagueDemandIndex {
	opts = opts.withDefaults()

	ldi := domain.LeagueDemandIndex{
		TradesAnalyzed: raw.TradesAnalyzed,
	}

	// Cortocircuito: payload esencialmente vacío → baseline neutro directo.
	if raw.TradesAnalyzed <= 0 && raw.PopulatedKeys() < opts.EmptyPayloadKeys {
		src := domain.RankingBaselineNoTrades
		if raw.IsOffseason {
			src = domain.RankingBaselineOffseason
		}
		ldi.Positions = neutralPositions()
		ldi.PickTiers = neutralPickTiers()
		ldi.RankingSource = src
		ldi.RankingSourceNote = sourceNote(src, raw, opts)
		ldi.FallbackMode = true
		ldi.Warnings = append(ldi.Warnings,
			"trade history payload was essentially empty; forced neutral baseline")
		return ldi
	}

	src := classify(raw, opts)
	ldi.RankingSource = src
	ldi.RankingSourceNote = sourceNote(src, raw, opts)
	ldi.FallbackMode = src.IsBaseline()

	// Sin trades no hay nada que coercionar: baseline neutro.
	if raw.TradesAnalyzed <= 0 {
		ldi.Positions = neutralPositions()
		ldi.PickTiers = neutralPickTiers()
		ldi.Warnings = append(ldi.Warnings, "no trade signal; demand defaulted to neutral 50s")
		return ldi
	}

	// Hay señal: coercionar, y amortiguar si la muestra es insuficiente.
	factor := 1.0
	if src == domain.RankingBaselineInsufficient {
		factor = opts.DampenFactor
	}

	ldi.Positions = neutralPositions()
	for _, pos := range domain.Positions() {
		rawScore, present := raw.PositionScores[string(pos)]
		if !present {
			ldi.Warnings = append(ldi.Warnings,
				fmt.Sprintf("no demand signal for %s; defaulted to neutral", pos))
			continue
		}
		score, clean := coerceScore(rawScore)
		if !clean {
			ldi.Warnings = append(ldi.Warnings,
				fmt.Sprintf("malformed demand score for %s; coerced into bounds", pos))
		}
		ldi.Positions[pos] = dampen(score, factor)
	}

	ldi.PickTiers = neutralPickTiers()
	for slot := range ldi.PickTiers {
		rawScore, present := raw.PickTierScores[string(slot)]
		if !present {
			continue
		}
		score, clean := coerceScore(rawScore)
		if !clean {
			ldi.Warnings = append(ldi.Warnings,
				fmt.Sprintf("malformed pick-tier score for %s; coerced into bounds", slot))
		}
		ldi.PickTiers[slot] = dampen(score, factor)
	}

	return ldi
}
