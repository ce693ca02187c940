package main

// replay.go — re-evaluación de un log completo de trades en ambos modos.
//
// El throttle con rate.Limiter evita saturar la consola (y, cuando los
// proveedores dejen de ser ficheros locales, las APIs de valoración) al
// re-gradear cientos de trades de golpe.

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/alejandrodnm/tradewise/config"
	"github.com/alejandrodnm/tradewise/internal/domain"
	"github.com/alejandrodnm/tradewise/internal/evaluate"
	"github.com/alejandrodnm/tradewise/internal/ports"
)

// runReplay evalúa todos los trades del log, respetando el rate limit
// configurado, y deja el resumen de cada uno en la cache de historial.
func runReplay(
	ctx context.Context,
	cfg *config.Config,
	evaluator *evaluate.Evaluator,
	notifier ports.Notifier,
	store ports.Storage,
	trades []domain.Trade,
	settings domain.LeagueSettings,
) {
	limiter := rate.NewLimiter(rate.Limit(cfg.Replay.TradesPerSecond), cfg.Replay.Burst)

	slog.Info("replay starting",
		"trades", len(trades),
		"trades_per_second", cfg.Replay.TradesPerSecond,
	)

	evaluated, improved, declined := 0, 0, 0
	for _, trade := range trades {
		if err := limiter.Wait(ctx); err != nil {
			slog.Warn("replay interrupted", "err", err, "evaluated", evaluated)
			return
		}

		eval := evaluator.Evaluate(ctx, trade, settings)
		evaluated++

		switch {
		case eval.Hindsight.DeltaValue > eval.AtTheTime.DeltaValue:
			improved++
		case eval.Hindsight.DeltaValue < eval.AtTheTime.DeltaValue:
			declined++
		}

		if err := notifier.NotifyEvaluation(ctx, eval); err != nil {
			slog.Warn("notifier error", "trade", trade.ID, "err", err)
		}
		if store != nil {
			if err := store.SaveEvaluation(ctx, eval); err != nil {
				slog.Warn("failed to cache evaluation", "trade", trade.ID, "err", err)
			}
		}
	}

	slog.Info("replay complete",
		"evaluated", evaluated,
		"aged_well", improved,
		"aged_poorly", declined,
		"flat", evaluated-improved-declined,
	)
}
