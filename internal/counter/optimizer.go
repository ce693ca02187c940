package counter

// optimizer.go — búsqueda de contraofertas por fuerza bruta.
//
// El set de candidatos es pequeño (bench + picks + escalones de FAAB) y la
// función de scoring es barata, así que evaluar todos y rankear es
// suficiente: no hay combinaciones multi-sweetener, solo añadidos
// individuales rankeados de forma independiente; no existe trampa de
// óptimo local.

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/alejandrodnm/tradewise/internal/domain"
)

// Constantes heurísticas del scoring. Sin derivación documentada:
// candidatas a recalibración, por eso son overridables vía Options.
const (
	defaultImpactCoefficient = 0.15
	defaultRiskWeight        = 0.3
	defaultTopK              = 3

	// Sensibilidad de la perturbación de features por value-share.
	fairnessGain   = 5.0
	dealShapeGain  = 3.0
	volatilityDrop = 2.0
)

// ChampDeltaEstimator estima cuánto mueve el sweetener las odds de
// campeonato, dado su value-share sobre el trade. La por defecto es
// lineal: share × coeficiente de impacto.
type ChampDeltaEstimator func(valueShare float64) float64

// Options parametriza el optimizador. Campos en cero = defaults.
type Options struct {
	ImpactCoefficient float64
	RiskWeight        float64
	TopK              int
	Workers           int // <=0: runtime.NumCPU()×2

	// ChampDelta sustituye al estimador lineal por defecto.
	ChampDelta ChampDeltaEstimator
}

func (o Options) withDefaults() Options {
	if o.ImpactCoefficient <= 0 {
		o.ImpactCoefficient = defaultImpactCoefficient
	}
	if o.RiskWeight <= 0 {
		o.RiskWeight = defaultRiskWeight
	}
	if o.TopK <= 0 {
		o.TopK = defaultTopK
	}
	if o.ChampDelta == nil {
		coef := o.ImpactCoefficient
		o.ChampDelta = func(share float64) float64 { return share * coef }
	}
	return o
}

// Optimizer rankea sweeteners candidatos contra un trade base.
type Optimizer struct {
	opts    Options
	weights domain.AcceptanceWeights
}

// NewOptimizer valida los pesos una sola vez en construcción; un vector
// roto es error de contrato del caller, no un dato escaso.
func NewOptimizer(opts Options, weights domain.AcceptanceWeights) (*Optimizer, error) {
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("counter.NewOptimizer: %w", err)
	}
	return &Optimizer{opts: opts.withDefaults(), weights: weights}, nil
}

// Rank evalúa cada sweetener contra el trade base y devuelve el top-K
// ordenado por Score descendente. Lista vacía → resultado vacío, sin
// error: la ausencia de candidatos no es un fallo.
func (o *Optimizer) Rank(
	base domain.AcceptanceFeatures,
	totalValue float64,
	candidates []domain.Sweetener,
) ([]domain.CounterOption, error) {
	if len(candidates) == 0 {
		return []domain.CounterOption{}, nil
	}
	if totalValue <= 0 || math.IsNaN(totalValue) || math.IsInf(totalValue, 0) {
		// Sin un valor base positivo no hay value-share que calcular.
		return []domain.CounterOption{}, nil
	}

	options := o.scoreAllConcurrent(base, totalValue, candidates)

	sort.Slice(options, func(i, j int) bool {
		return options[i].Score > options[j].Score
	})
	if len(options) > o.opts.TopK {
		options = options[:o.opts.TopK]
	}
	return options, nil
}

// scoreOne evalúa un único candidato. Devuelve ok=false solo si el
// modelo de aceptación falla (pesos rotos, ya descartado en construcción,
// así que en la práctica nunca).
func (o *Optimizer) scoreOne(
	base domain.AcceptanceFeatures,
	totalValue float64,
	sw domain.Sweetener,
) (domain.CounterOption, error) {
	share := valueShare(sw.Value, totalValue)

	perturbed := perturb(base, share)
	prob, err := domain.AcceptanceProbability(perturbed, o.weights)
	if err != nil {
		return domain.CounterOption{}, err
	}

	champDelta := o.opts.ChampDelta(share)
	valueCost := share
	score := prob*champDelta - valueCost*o.opts.RiskWeight

	return domain.CounterOption{
		ID:          uuid.NewString(),
		Sweetener:   sw,
		AcceptProb:  prob,
		ChampDelta:  champDelta,
		ValueCost:   valueCost,
		Score:       score,
		Explanation: explain(sw, prob, valueCost),
	}, nil
}

// perturb desplaza las features base proporcionalmente al value-share del
// sweetener: sube fairness y deal-shape, baja la volatilidad. La escala de
// features es 0–10, así que los desplazamientos se acotan a ese rango.
func perturb(f domain.AcceptanceFeatures, share float64) domain.AcceptanceFeatures {
	f.Fairness = clampFeature(f.Fairness + share*fairnessGain)
	f.DealShape = clampFeature(f.DealShape + share*dealShapeGain)
	f.VolatilityDelta = clampFeature(f.VolatilityDelta - share*volatilityDrop)
	return f
}

func clampFeature(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}

// valueShare acota la fracción a [0,1]: un sweetener que vale más que el
// trade entero satura en 1, no distorsiona la perturbación.
func valueShare(value, total float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return 0
	}
	share := value / total
	if share > 1 {
		return 1
	}
	return share
}
