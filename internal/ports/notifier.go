package ports

import (
	"context"

	"github.com/alejandrodnm/tradewise/internal/domain"
)

// Notifier presenta los resultados del engine al usuario.
type Notifier interface {
	// NotifyEvaluation muestra las dos evaluaciones (at-the-time y
	// hindsight) de un trade. En consola, una tabla formateada.
	NotifyEvaluation(ctx context.Context, eval domain.TradeEvaluation) error

	// NotifyCounterOptions muestra las contraofertas rankeadas por score.
	NotifyCounterOptions(ctx context.Context, options []domain.CounterOption) error

	// NotifyDemand muestra el índice de demanda y las tendencias por
	// partner, incluyendo su rankingSource y warnings — el dashboard debe
	// representar honestamente la suficiencia de datos.
	NotifyDemand(ctx context.Context, ldi domain.LeagueDemandIndex, tendencies domain.PartnerTendencies) error
}
