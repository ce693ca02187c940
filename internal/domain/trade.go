package domain

import "time"

// EvalMode distingue las dos evaluaciones de un mismo trade.
type EvalMode string

const (
	// ModeAtTheTime valora los activos a la fecha del trade: mide la
	// calidad del PROCESO (qué sabías cuando aceptaste).
	ModeAtTheTime EvalMode = "at_the_time"
	// ModeHindsight valora los activos a hoy: mide la calidad del
	// RESULTADO. Ambos modos se calculan siempre para el mismo trade.
	ModeHindsight EvalMode = "hindsight"
)

// Límites de confianza de la valoración. Nunca 0 ni 1: el suelo y el techo
// comunican que este sistema jamás está completamente seguro.
const (
	MinConfidence = 0.15
	MaxConfidence = 0.95
)

// Trade es la transacción a evaluar, vista desde el usuario.
type Trade struct {
	ID         string
	ExecutedAt time.Time
	PartnerID  string
	Received   []Asset // lo que el usuario recibió
	Gave       []Asset // lo que el usuario entregó
}

// ValuationStats cuenta cuántos jugadores/picks resolvió cada fuente.
type ValuationStats struct {
	Players map[ValueSource]int
	Picks   map[ValueSource]int
}

// NewValuationStats crea los contadores vacíos.
func NewValuationStats() ValuationStats {
	return ValuationStats{
		Players: make(map[ValueSource]int),
		Picks:   make(map[ValueSource]int),
	}
}

// Record cuenta un activo resuelto.
func (s ValuationStats) Record(a PricedAsset) {
	if a.Kind == KindPick {
		s.Picks[a.Source]++
		return
	}
	s.Players[a.Source]++
}

// Resolved devuelve cuántos activos resolvió una fuente concreta.
func (s ValuationStats) Resolved(src ValueSource) int {
	return s.Players[src] + s.Picks[src]
}

// TradeDelta es el resultado de evaluar un trade en un modo concreto.
// Se calcula fresco por request y nunca es el registro canónico — el
// caller puede cachearlo, nosotros no lo poseemos.
type TradeDelta struct {
	Mode EvalMode

	UserReceivedValue float64
	UserGaveValue     float64
	DeltaValue        float64 // received - given
	PercentDiff       float64
	Grade             string

	// Confidence ∈ [MinConfidence, MaxConfidence]. Baja cuando sube la
	// proporción de fuentes unknown o la volatilidad cross-asset.
	Confidence float64
	Volatility float64

	ReceivedAssets []PricedAsset
	GaveAssets     []PricedAsset
	Stats          ValuationStats
}

// AllAssets devuelve los activos de ambos lados, recibidos primero.
func (d TradeDelta) AllAssets() []PricedAsset {
	out := make([]PricedAsset, 0, len(d.ReceivedAssets)+len(d.GaveAssets))
	out = append(out, d.ReceivedAssets...)
	out = append(out, d.GaveAssets...)
	return out
}

// TradeEvaluation agrupa las dos evaluaciones del mismo trade.
type TradeEvaluation struct {
	ID          string // uuid generado por el evaluador
	Trade       Trade
	AtTheTime   TradeDelta
	Hindsight   TradeDelta
	EvaluatedAt time.Time
}

// EvaluationRecord es la fila plana que la cache de historial persiste
// y devuelve. Solo resumen: los PricedAsset completos no se guardan.
type EvaluationRecord struct {
	ID            string
	TradeID       string
	PartnerID     string
	EvaluatedAt   time.Time
	AtDelta       float64
	AtPercent     float64
	AtGrade       string
	AtConfidence  float64
	NowDelta      float64
	NowPercent    float64
	NowGrade      string
	NowConfidence float64
}

// GradeFor deriva la nota del trade a partir del percentDiff.
// Bandas con signo: positivo = ganaste valor, negativo = lo perdiste.
func GradeFor(percentDiff float64) string {
	switch {
	case percentDiff >= 25:
		return "A+"
	case percentDiff >= 15:
		return "A"
	case percentDiff >= 8:
		return "B"
	case percentDiff >= 3:
		return "C+"
	case percentDiff > -3:
		return "C"
	case percentDiff > -8:
		return "C-"
	case percentDiff > -15:
		return "D"
	default:
		return "F"
	}
}

// PercentDiff calcula la diferencia porcentual de un delta sobre lo entregado.
// Con given = 0 degrada a ±100 (recibiste algo por nada, o nada por nada).
func PercentDiff(delta, given float64) float64 {
	if given <= 0 {
		if delta > 0 {
			return 100
		}
		if delta < 0 {
			return -100
		}
		return 0
	}
	return (delta / given) * 100
}
