package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func neutralFeatures() AcceptanceFeatures {
	return AcceptanceFeatures{
		Fairness:        5,
		LDIAlignment:    5,
		NeedsFit:        5,
		ArchetypeMatch:  5,
		DealShape:       5,
		VolatilityDelta: 5,
	}
}

func TestAcceptanceProbability_AlwaysWithinBounds(t *testing.T) {
	w := DefaultAcceptanceWeights()

	cases := []AcceptanceFeatures{
		{},                                   // todo cero
		neutralFeatures(),                    // punto medio
		{Fairness: 10, LDIAlignment: 10, NeedsFit: 10, ArchetypeMatch: 10, DealShape: 10}, // máximo favorable
		{VolatilityDelta: 10},                // máximo desfavorable
		{Fairness: -50, VolatilityDelta: 80}, // fuera de escala
	}

	for _, f := range cases {
		p, err := AcceptanceProbability(f, w)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, p, MinAcceptProb)
		assert.LessOrEqual(t, p, MaxAcceptProb)
	}
}

func TestAcceptanceProbability_MonotonicInFairness(t *testing.T) {
	w := DefaultAcceptanceWeights()
	base := neutralFeatures()

	raised := base
	raised.Fairness += 2

	pBase, err := AcceptanceProbability(base, w)
	require.NoError(t, err)
	pRaised, err := AcceptanceProbability(raised, w)
	require.NoError(t, err)

	assert.Greater(t, pRaised, pBase, "subir fairness debe subir la probabilidad")
}

func TestAcceptanceProbability_VolatilityWeighsNegative(t *testing.T) {
	w := DefaultAcceptanceWeights()
	calm := neutralFeatures()
	calm.VolatilityDelta = 1

	volatile := neutralFeatures()
	volatile.VolatilityDelta = 9

	pCalm, _ := AcceptanceProbability(calm, w)
	pVolatile, _ := AcceptanceProbability(volatile, w)
	assert.Less(t, pVolatile, pCalm)
}

func TestAcceptanceProbability_NaNFeaturesCoercedToNeutral(t *testing.T) {
	w := DefaultAcceptanceWeights()
	f := neutralFeatures()
	f.NeedsFit = math.NaN()
	f.DealShape = math.Inf(1)

	p, err := AcceptanceProbability(f, w)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(p))
	assert.GreaterOrEqual(t, p, MinAcceptProb)
	assert.LessOrEqual(t, p, MaxAcceptProb)
}

func TestAcceptanceProbability_CustomWeightsOverride(t *testing.T) {
	f := neutralFeatures()

	heavy := DefaultAcceptanceWeights()
	heavy.Fairness = 2.0 // calibración por liga: fairness manda

	pDefault, _ := AcceptanceProbability(f, DefaultAcceptanceWeights())
	pHeavy, _ := AcceptanceProbability(f, heavy)
	assert.NotEqual(t, pDefault, pHeavy)
}

func TestAcceptanceWeights_Validate(t *testing.T) {
	assert.NoError(t, DefaultAcceptanceWeights().Validate())

	broken := DefaultAcceptanceWeights()
	broken.NeedsFit = math.NaN()
	assert.Error(t, broken.Validate())

	// Vector vacío = error de contrato del caller, no escasez de datos.
	assert.Error(t, AcceptanceWeights{}.Validate())
	assert.Error(t, AcceptanceWeights{Intercept: -4}.Validate())
}

// --- AcceptanceWithLiquidity ---

func TestAcceptanceWithLiquidity_MaxSwing(t *testing.T) {
	w := DefaultAcceptanceWeights()
	f := neutralFeatures()

	dry, err := AcceptanceWithLiquidity(f, w, 0)
	require.NoError(t, err)
	wet, err := AcceptanceWithLiquidity(f, w, 100)
	require.NoError(t, err)

	assert.InDelta(t, dry.BaseProb-0.05, dry.AdjustedProb, 1e-9)
	assert.InDelta(t, wet.BaseProb+0.05, wet.AdjustedProb, 1e-9)
}

func TestAcceptanceWithLiquidity_NeutralLiquidityNoShift(t *testing.T) {
	w := DefaultAcceptanceWeights()
	f := neutralFeatures()

	res, err := AcceptanceWithLiquidity(f, w, 50)
	require.NoError(t, err)
	assert.InDelta(t, res.BaseProb, res.AdjustedProb, 1e-9)
}

func TestAcceptanceWithLiquidity_CounterRequired(t *testing.T) {
	w := DefaultAcceptanceWeights()

	// Features hundidas → probabilidad por el suelo, liquidez seca → counter.
	sunk := AcceptanceFeatures{VolatilityDelta: 10}
	res, err := AcceptanceWithLiquidity(sunk, w, 10)
	require.NoError(t, err)
	assert.Less(t, res.AdjustedProb, 0.25)
	assert.True(t, res.CounterRequired)

	// Misma probabilidad pero liquidez alta → NO counter (solo una condición).
	res, err = AcceptanceWithLiquidity(sunk, w, 90)
	require.NoError(t, err)
	assert.False(t, res.CounterRequired)

	// Probabilidad sana con liquidez seca → NO counter.
	healthy := neutralFeatures()
	healthy.Fairness = 9
	healthy.NeedsFit = 9
	res, err = AcceptanceWithLiquidity(healthy, w, 10)
	require.NoError(t, err)
	if res.AdjustedProb >= 0.25 {
		assert.False(t, res.CounterRequired)
	}
}

func TestAcceptanceWithLiquidity_BoundaryExactlyAtThresholds(t *testing.T) {
	w := DefaultAcceptanceWeights()
	sunk := AcceptanceFeatures{VolatilityDelta: 10}

	// Liquidez exactamente en 40 → norm = 0.4, NO es < 0.4 → sin counter.
	res, err := AcceptanceWithLiquidity(sunk, w, 40)
	require.NoError(t, err)
	assert.False(t, res.CounterRequired)
}

func TestAcceptanceWithLiquidity_NaNLiquidityDegradesToNeutral(t *testing.T) {
	w := DefaultAcceptanceWeights()
	res, err := AcceptanceWithLiquidity(neutralFeatures(), w, math.NaN())
	require.NoError(t, err)
	assert.InDelta(t, res.BaseProb, res.AdjustedProb, 1e-9)
	assert.False(t, res.CounterRequired)
}
