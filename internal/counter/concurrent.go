package counter

// concurrent.go — worker pool para evaluar sweeteners en paralelo.
//
// Cada candidato es independiente (embarrassingly parallel) y el resultado
// se re-ordena completo al final, así que el orden de llegada no importa.

import (
	"log/slog"
	"runtime"
	"sync"

	"github.com/alejandrodnm/tradewise/internal/domain"
)

// scoreAllConcurrent evalúa todos los candidatos con un worker pool.
// Si opts.Workers <= 0 usa runtime.NumCPU() × 2.
func (o *Optimizer) scoreAllConcurrent(
	base domain.AcceptanceFeatures,
	totalValue float64,
	candidates []domain.Sweetener,
) []domain.CounterOption {
	workers := o.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU() * 2
	}
	if workers > len(candidates) {
		workers = len(candidates)
	}

	workCh := make(chan domain.Sweetener, len(candidates))
	resultCh := make(chan domain.CounterOption, len(candidates))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sw := range workCh {
				opt, err := o.scoreOne(base, totalValue, sw)
				if err != nil {
					slog.Debug("sweetener scoring failed",
						"sweetener", sw.Name,
						"err", err,
					)
					continue
				}
				resultCh <- opt
			}
		}()
	}

	for _, sw := range candidates {
		workCh <- sw
	}
	close(workCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	options := make([]domain.CounterOption, 0, len(candidates))
	for opt := range resultCh {
		options = append(options, opt)
	}

	slog.Debug("counter-offer scoring complete",
		"candidates", len(candidates),
		"scored", len(options),
		"workers", workers,
	)

	return options
}
