package domain

import (
	"errors"
	"fmt"
	"math"
)

// Límites duros de probabilidad: el modelo nunca afirma certeza total.
// Un trade jamás se modela como aceptación/rechazo seguro — hay
// incertidumbre conductual irreducible en el otro manager.
const (
	MinAcceptProb = 0.05
	MaxAcceptProb = 0.95
)

// Parámetros del ajuste por liquidez.
const (
	liquidityMaxSwing      = 0.05 // desplazamiento máximo ±0.05
	counterProbThreshold   = 0.25
	counterLiquidityThresh = 0.40
)

// AcceptanceFeatures son las seis features agregadas del trade.
// El caller las escala aproximadamente a 0–10; el modelo solo asume
// "más grande = más favorable", salvo VolatilityDelta que pesa negativo.
type AcceptanceFeatures struct {
	Fairness        float64 // equilibrio de valor entre ambos lados
	LDIAlignment    float64 // alineación con la demanda de la liga
	NeedsFit        float64 // encaje con las necesidades del receptor
	ArchetypeMatch  float64 // encaje de arquetipo (win-now recibe win-now, etc.)
	DealShape       float64 // forma del deal (consolidación vs dispersión)
	VolatilityDelta float64 // dispersión de valor — penaliza
}

// sanitized devuelve una copia con todo numérico no-finito coercionado a 0.
// Inputs malformados degradan a neutro, nunca propagan NaN (son funciones
// de scoring consultivas dentro de un flujo de negociación en vivo).
func (f AcceptanceFeatures) sanitized() AcceptanceFeatures {
	return AcceptanceFeatures{
		Fairness:        finiteOr(f.Fairness, 0),
		LDIAlignment:    finiteOr(f.LDIAlignment, 0),
		NeedsFit:        finiteOr(f.NeedsFit, 0),
		ArchetypeMatch:  finiteOr(f.ArchetypeMatch, 0),
		DealShape:       finiteOr(f.DealShape, 0),
		VolatilityDelta: finiteOr(f.VolatilityDelta, 0),
	}
}

// AcceptanceWeights es el vector de pesos del modelo logístico.
// Es un value type inmutable: las overrides por liga construyen un vector
// nuevo y lo validan, nunca mutan el default.
type AcceptanceWeights struct {
	Fairness        float64
	LDIAlignment    float64
	NeedsFit        float64
	ArchetypeMatch  float64
	DealShape       float64
	VolatilityDelta float64
	Intercept       float64
}

// DefaultAcceptanceWeights devuelve los pesos calibrados por defecto.
// VolatilityDelta pesa negativo: los trades volátiles se rechazan más.
func DefaultAcceptanceWeights() AcceptanceWeights {
	return AcceptanceWeights{
		Fairness:        0.8,
		LDIAlignment:    0.6,
		NeedsFit:        0.7,
		ArchetypeMatch:  0.5,
		DealShape:       0.4,
		VolatilityDelta: -0.5,
		Intercept:       -4,
	}
}

// Validate rechaza vectores de pesos rotos. Un vector con NaN o todo ceros
// es un error de programación del caller, no escasez de datos — es la única
// clase de fallo que este core convierte en error duro.
func (w AcceptanceWeights) Validate() error {
	fields := []float64{
		w.Fairness, w.LDIAlignment, w.NeedsFit,
		w.ArchetypeMatch, w.DealShape, w.VolatilityDelta, w.Intercept,
	}
	for _, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("acceptance weights: non-finite weight")
		}
	}
	allZero := true
	for _, v := range fields[:6] {
		if v != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return errors.New("acceptance weights: empty weight vector")
	}
	return nil
}

// AcceptanceProbability calcula p = σ(Σ w·f + intercept), clampada a
// [MinAcceptProb, MaxAcceptProb].
func AcceptanceProbability(f AcceptanceFeatures, w AcceptanceWeights) (float64, error) {
	if err := w.Validate(); err != nil {
		return 0, fmt.Errorf("domain.AcceptanceProbability: %w", err)
	}
	f = f.sanitized()

	z := w.Intercept +
		w.Fairness*f.Fairness +
		w.LDIAlignment*f.LDIAlignment +
		w.NeedsFit*f.NeedsFit +
		w.ArchetypeMatch*f.ArchetypeMatch +
		w.DealShape*f.DealShape +
		w.VolatilityDelta*f.VolatilityDelta

	p := 1.0 / (1.0 + math.Exp(-z))
	return clamp(p, MinAcceptProb, MaxAcceptProb), nil
}

// LiquidityAdjusted es el resultado del entry point secundario que ajusta
// la probabilidad base por la liquidez del mercado de trades de la liga.
type LiquidityAdjusted struct {
	BaseProb     float64
	AdjustedProb float64
	Liquidity    float64 // normalizada a [0,1]

	// CounterRequired indica que el modelo recomienda endulzar la oferta
	// en vez de solo reportar un número bajo: probabilidad ajustada y
	// liquidez son desfavorables a la vez.
	CounterRequired bool
}

// AcceptanceWithLiquidity ajusta la probabilidad base por una señal de
// liquidez 0–100. La señal se normaliza a [0,1], se centra en 0.5 y
// desplaza la probabilidad un máximo de ±0.05.
//
// CounterRequired = true sii adjusted < 0.25 Y liquidez normalizada < 0.4.
func AcceptanceWithLiquidity(f AcceptanceFeatures, w AcceptanceWeights, liquidity float64) (LiquidityAdjusted, error) {
	base, err := AcceptanceProbability(f, w)
	if err != nil {
		return LiquidityAdjusted{}, err
	}

	// Liquidez malformada degrada al punto neutro (50 → sin ajuste).
	liquidity = finiteOr(liquidity, 50)
	norm := clamp(liquidity, 0, 100) / 100.0

	shift := (norm - 0.5) * (liquidityMaxSwing * 2)
	adjusted := clamp(base+shift, MinAcceptProb, MaxAcceptProb)

	return LiquidityAdjusted{
		BaseProb:        base,
		AdjustedProb:    adjusted,
		Liquidity:       norm,
		CounterRequired: adjusted < counterProbThreshold && norm < counterLiquidityThresh,
	}, nil
}

// --- helpers numéricos compartidos por todo el paquete ---

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// finiteOr devuelve v si es finito, o el fallback si es NaN/±Inf.
func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
