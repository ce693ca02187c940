package evaluate

// evaluator.go — orquestación de la evaluación doble de un trade.
//
// Un mismo trade se evalúa SIEMPRE en dos modos independientes:
// at-the-time (valores a la fecha del trade: calidad del proceso) y
// hindsight (valores a hoy: calidad del resultado). Compararlos separa
// "decidiste bien" de "te salió bien".

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alejandrodnm/tradewise/internal/domain"
	"github.com/alejandrodnm/tradewise/internal/valuation"
)

// Evaluator produce TradeEvaluations a partir de trades sin valorar.
type Evaluator struct {
	valuer *valuation.Valuer
}

// NewEvaluator crea el evaluador sobre un Valuer ya configurado.
func NewEvaluator(valuer *valuation.Valuer) *Evaluator {
	return &Evaluator{valuer: valuer}
}

// Evaluate valora el trade en ambos modos y deriva delta, nota y
// confianza de cada uno. No devuelve error: la valoración degrada a
// unknown/floor y la confianza lo refleja.
func (e *Evaluator) Evaluate(ctx context.Context, trade domain.Trade, settings domain.LeagueSettings) domain.TradeEvaluation {
	eval := domain.TradeEvaluation{
		ID:          uuid.NewString(),
		Trade:       trade,
		AtTheTime:   e.delta(ctx, trade, settings, domain.ModeAtTheTime),
		Hindsight:   e.delta(ctx, trade, settings, domain.ModeHindsight),
		EvaluatedAt: time.Now(),
	}

	slog.Info("trade evaluated",
		"trade_id", trade.ID,
		"partner", trade.PartnerID,
		"at_delta", eval.AtTheTime.DeltaValue,
		"at_grade", eval.AtTheTime.Grade,
		"now_delta", eval.Hindsight.DeltaValue,
		"now_grade", eval.Hindsight.Grade,
	)
	return eval
}

// delta evalúa un modo concreto. La volatilidad se calcula UNA vez sobre
// los activos de ambos lados y se comparte con el descuento de confianza
// (y, aguas abajo, con las features de aceptación) — nunca se re-deriva.
func (e *Evaluator) delta(ctx context.Context, trade domain.Trade, settings domain.LeagueSettings, mode domain.EvalMode) domain.TradeDelta {
	at := time.Time{} // cero: el valuer usa "ahora" (hindsight)
	if mode == domain.ModeAtTheTime {
		at = trade.ExecutedAt
	}

	stats := domain.NewValuationStats()
	received := e.valuer.ResolveAll(ctx, trade.Received, at, settings, stats)
	gave := e.valuer.ResolveAll(ctx, trade.Gave, at, settings, stats)

	d := domain.TradeDelta{
		Mode:           mode,
		ReceivedAssets: received,
		GaveAssets:     gave,
		Stats:          stats,
	}

	d.UserReceivedValue = domain.TotalValue(received)
	d.UserGaveValue = domain.TotalValue(gave)
	d.DeltaValue = d.UserReceivedValue - d.UserGaveValue
	d.PercentDiff = domain.PercentDiff(d.DeltaValue, d.UserGaveValue)
	d.Grade = domain.GradeFor(d.PercentDiff)

	d.Volatility = domain.Volatility(d.AllAssets(), settings.Season)
	d.Confidence = valuation.Confidence(d.AllAssets(), d.Volatility)

	return d
}
