package ports

import (
	"context"
	"time"

	"github.com/alejandrodnm/tradewise/internal/domain"
)

// Storage cachea el historial de evaluaciones. El TradeDelta nunca es el
// registro canónico del trade — esto es solo la cache del caller.
type Storage interface {
	// SaveEvaluation persiste (upsert por trade) el resumen de ambos modos.
	SaveEvaluation(ctx context.Context, eval domain.TradeEvaluation) error

	// SaveCounterOptions persiste las contraofertas generadas para una evaluación.
	SaveCounterOptions(ctx context.Context, evalID string, options []domain.CounterOption) error

	// GetHistory devuelve los resúmenes registrados en el rango de tiempo dado.
	GetHistory(ctx context.Context, from, to time.Time) ([]domain.EvaluationRecord, error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
