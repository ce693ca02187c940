package demand

import (
	"math"
	"testing"

	"github.com/alejandrodnm/tradewise/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePartnerTendencies_LiveWhenThresholdsClear(t *testing.T) {
	raw := domain.RawLeagueHistory{
		TradesAnalyzed: 12,
		Partners: map[string]domain.RawPartnerSample{
			"t1": {Trades: 4, PositionScores: map[string]float64{"RB": 85}, PremiumPaid: 0.2},
			"t2": {Trades: 3, PositionScores: map[string]float64{"WR": 70}},
			"t3": {Trades: 2, PositionScores: map[string]float64{"QB": 65}},
		},
	}
	pt := ResolvePartnerTendencies(raw, Options{})

	assert.Equal(t, domain.RankingLive, pt.RankingSource)
	assert.Equal(t, 3, pt.PartnersWithSignal)
	assert.False(t, pt.FallbackMode)

	t1 := pt.Partners["t1"]
	assert.True(t, t1.HasSignal)
	assert.Equal(t, 85.0, t1.PositionDemand[domain.PositionRB])
	assert.InDelta(t, 0.2, t1.PremiumPaid, 1e-9)
}

func TestResolvePartnerTendencies_TwoIndependentThresholds(t *testing.T) {
	// Muchos trades en total pero concentrados en UN partner: el umbral
	// de partners no se supera aunque el de trades-por-partner sí.
	raw := domain.RawLeagueHistory{
		TradesAnalyzed: 9,
		Partners: map[string]domain.RawPartnerSample{
			"whale": {Trades: 9, PositionScores: map[string]float64{"RB": 90}},
		},
	}
	pt := ResolvePartnerTendencies(raw, Options{
		MinTradesForPartnerSignal:  2,
		MinPartnersForLeagueSignal: 3,
	})

	assert.Equal(t, domain.RankingBaselineInsufficient, pt.RankingSource)
	assert.True(t, pt.FallbackMode)
	assert.Equal(t, 1, pt.PartnersWithSignal)

	// El partner con señal individual se devuelve, amortiguado, no rechazado.
	whale := pt.Partners["whale"]
	assert.True(t, whale.HasSignal)
	assert.InDelta(t, 70, whale.PositionDemand[domain.PositionRB], 1e-9) // 50 + 40×0.5
}

func TestResolvePartnerTendencies_PartnerBelowThresholdDampened(t *testing.T) {
	raw := domain.RawLeagueHistory{
		TradesAnalyzed: 10,
		Partners: map[string]domain.RawPartnerSample{
			"t1": {Trades: 4, PositionScores: map[string]float64{"RB": 90}},
			"t2": {Trades: 4, PositionScores: map[string]float64{"RB": 90}},
			"t3": {Trades: 4, PositionScores: map[string]float64{"RB": 90}},
			"q1": {Trades: 1, PositionScores: map[string]float64{"RB": 90}}, // bajo umbral
		},
	}
	pt := ResolvePartnerTendencies(raw, Options{})
	require.Equal(t, domain.RankingLive, pt.RankingSource)

	assert.Equal(t, 90.0, pt.Partners["t1"].PositionDemand[domain.PositionRB])
	q1 := pt.Partners["q1"]
	assert.False(t, q1.HasSignal)
	assert.Equal(t, 1, q1.SampleTrades)
	assert.InDelta(t, 70, q1.PositionDemand[domain.PositionRB], 1e-9)
}

func TestResolvePartnerTendencies_NoSamplesEmitsBaseline(t *testing.T) {
	pt := ResolvePartnerTendencies(domain.RawLeagueHistory{IsOffseason: true}, Options{})

	assert.Equal(t, domain.RankingBaselineOffseason, pt.RankingSource)
	assert.True(t, pt.FallbackMode)
	assert.Empty(t, pt.Partners)
	assert.NotEmpty(t, pt.Warnings)
	assert.NotEmpty(t, pt.RankingSourceNote)
}

func TestResolvePartnerTendencies_MalformedPremiumCoerced(t *testing.T) {
	raw := domain.RawLeagueHistory{
		TradesAnalyzed: 6,
		Partners: map[string]domain.RawPartnerSample{
			"t1": {Trades: 3, PremiumPaid: math.Inf(1)},
			"t2": {Trades: 3, PremiumPaid: -9},
		},
	}
	pt := ResolvePartnerTendencies(raw, Options{MinPartnersForLeagueSignal: 2})

	assert.Equal(t, 0.0, pt.Partners["t1"].PremiumPaid)
	assert.Equal(t, -1.0, pt.Partners["t2"].PremiumPaid)
}
