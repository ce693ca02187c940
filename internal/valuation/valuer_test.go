package valuation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alejandrodnm/tradewise/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSnapshots implementa ports.SnapshotProvider sobre un mapa fijo.
type fakeSnapshots struct {
	values map[string]float64
	err    error
}

func (f fakeSnapshots) ValueAt(_ context.Context, assetID string, _ time.Time) (float64, bool, error) {
	if f.err != nil {
		return 0, false, f.err
	}
	v, ok := f.values[assetID]
	return v, ok, nil
}

// fakeMarket implementa ports.MarketFeed sobre un mapa fijo.
type fakeMarket struct {
	values map[string]float64
	err    error
}

func (f fakeMarket) Quote(_ context.Context, assetID string, _ domain.LeagueSettings) (float64, bool, error) {
	if f.err != nil {
		return 0, false, f.err
	}
	v, ok := f.values[assetID]
	return v, ok, nil
}

func testSettings() domain.LeagueSettings {
	return domain.LeagueSettings{LeagueID: "L1", TeamCount: 12, Season: 2025}
}

func playerAsset(id string) domain.Asset {
	return domain.Asset{ID: id, Name: id, Kind: domain.KindPlayer, Position: domain.PositionRB, Age: 25}
}

func pickAsset(season, round int, slot domain.PickSlot) domain.Asset {
	return domain.Asset{ID: "pick", Kind: domain.KindPick, Position: domain.PositionPick, Season: season, Round: round, Slot: slot}
}

func TestValuer_SnapshotWinsChain(t *testing.T) {
	v := NewValuer(
		fakeSnapshots{values: map[string]float64{"rb1": 4000}},
		fakeMarket{values: map[string]float64{"rb1": 9999}},
		NewCurve(CurveConfig{}), 0,
	)

	priced := v.Resolve(context.Background(), playerAsset("rb1"), time.Now(), testSettings())
	assert.Equal(t, 4000.0, priced.Value)
	assert.Equal(t, domain.SourceExcel, priced.Source)
}

func TestValuer_FallsBackToMarketFeed(t *testing.T) {
	v := NewValuer(
		fakeSnapshots{}, // sin snapshot para este activo
		fakeMarket{values: map[string]float64{"wr1": 7200}},
		NewCurve(CurveConfig{}), 0,
	)

	priced := v.Resolve(context.Background(), playerAsset("wr1"), time.Now(), testSettings())
	assert.Equal(t, 7200.0, priced.Value)
	assert.Equal(t, domain.SourceFantasyCalc, priced.Source)
}

func TestValuer_PickFallsBackToCurve(t *testing.T) {
	v := NewValuer(fakeSnapshots{}, fakeMarket{}, NewCurve(CurveConfig{}), 0)

	priced := v.Resolve(context.Background(), pickAsset(2026, 2, domain.SlotMid), time.Now(), testSettings())
	require.Equal(t, domain.SourceCurve, priced.Source)
	// ronda 2 mid, una temporada fuera: 1200 × 1.0 × 0.9
	assert.InDelta(t, 1080, priced.Value, 0.01)
}

func TestValuer_UnresolvedPlayerIsUnknownWithFloor(t *testing.T) {
	v := NewValuer(fakeSnapshots{}, fakeMarket{}, NewCurve(CurveConfig{}), 0)

	priced := v.Resolve(context.Background(), playerAsset("ghost"), time.Now(), testSettings())
	assert.Equal(t, domain.SourceUnknown, priced.Source)
	assert.Equal(t, 0.0, priced.Value)
}

func TestValuer_ProviderErrorsDegradeNotPropagate(t *testing.T) {
	// Ambos proveedores rotos: el pick aún debe resolver por curva,
	// jamás devolver error — scoring consultivo, no flujo crítico.
	v := NewValuer(
		fakeSnapshots{err: errors.New("table offline")},
		fakeMarket{err: errors.New("feed offline")},
		NewCurve(CurveConfig{}), 0,
	)

	priced := v.Resolve(context.Background(), pickAsset(2025, 1, domain.SlotEarly), time.Now(), testSettings())
	assert.Equal(t, domain.SourceCurve, priced.Source)
	assert.InDelta(t, 2500*1.3, priced.Value, 0.01)
}

func TestValuer_NilProvidersSkipLinks(t *testing.T) {
	v := NewValuer(nil, nil, NewCurve(CurveConfig{}), 10)

	priced := v.Resolve(context.Background(), playerAsset("rb1"), time.Now(), testSettings())
	assert.Equal(t, domain.SourceUnknown, priced.Source)
	assert.Equal(t, 10.0, priced.Value, "el floor configurado sustituye al 0")
}

func TestValuer_ResolveAllRecordsStats(t *testing.T) {
	v := NewValuer(
		fakeSnapshots{values: map[string]float64{"rb1": 4000}},
		fakeMarket{},
		NewCurve(CurveConfig{}), 0,
	)

	stats := domain.NewValuationStats()
	assets := []domain.Asset{playerAsset("rb1"), playerAsset("ghost"), pickAsset(2026, 2, domain.SlotLate)}
	priced := v.ResolveAll(context.Background(), assets, time.Now(), testSettings(), stats)

	require.Len(t, priced, 3)
	assert.Equal(t, 1, stats.Players[domain.SourceExcel])
	assert.Equal(t, 1, stats.Players[domain.SourceUnknown])
	assert.Equal(t, 1, stats.Picks[domain.SourceCurve])
}

// --- Curve ---

func TestCurve_EarlyBeatsLate(t *testing.T) {
	c := NewCurve(CurveConfig{})
	early := c.Value(pickAsset(2025, 1, domain.SlotEarly), 2025)
	late := c.Value(pickAsset(2025, 1, domain.SlotLate), 2025)
	assert.Greater(t, early, late)
}

func TestCurve_FutureSeasonsDiscounted(t *testing.T) {
	c := NewCurve(CurveConfig{})
	now := c.Value(pickAsset(2025, 1, domain.SlotMid), 2025)
	future := c.Value(pickAsset(2027, 1, domain.SlotMid), 2025)
	assert.InDelta(t, now*0.81, future, 0.01) // 0.9²
}

func TestCurve_LateRoundsClampToLastKnown(t *testing.T) {
	c := NewCurve(CurveConfig{})
	r5 := c.Value(pickAsset(2025, 5, domain.SlotMid), 2025)
	r9 := c.Value(pickAsset(2025, 9, domain.SlotMid), 2025)
	assert.Equal(t, r5, r9)
}

func TestCurve_NonPickReturnsZero(t *testing.T) {
	c := NewCurve(CurveConfig{})
	assert.Equal(t, 0.0, c.Value(playerAsset("rb1"), 2025))
}

// --- Confidence ---

func TestConfidence_AlwaysWithinBounds(t *testing.T) {
	cases := []struct {
		assets     []domain.PricedAsset
		volatility float64
	}{
		{nil, 0},
		{nil, 10},
		{[]domain.PricedAsset{{Source: domain.SourceExcel, Value: 100}}, 0},
		{[]domain.PricedAsset{{Source: domain.SourceUnknown}, {Source: domain.SourceUnknown}}, 10},
	}
	for _, tc := range cases {
		conf := Confidence(tc.assets, tc.volatility)
		assert.GreaterOrEqual(t, conf, domain.MinConfidence)
		assert.LessOrEqual(t, conf, domain.MaxConfidence)
	}
}

func TestConfidence_DropsWithUnknownShare(t *testing.T) {
	resolved := []domain.PricedAsset{
		{Source: domain.SourceExcel, Value: 100},
		{Source: domain.SourceFantasyCalc, Value: 100},
	}
	mixed := []domain.PricedAsset{
		{Source: domain.SourceExcel, Value: 100},
		{Source: domain.SourceUnknown},
	}
	assert.Greater(t, Confidence(resolved, 2), Confidence(mixed, 2))
}

func TestConfidence_DropsWithVolatility(t *testing.T) {
	assets := []domain.PricedAsset{{Source: domain.SourceExcel, Value: 100}}
	assert.Greater(t, Confidence(assets, 1), Confidence(assets, 8))
}

func TestConfidence_EmptyTradeIsNeutral(t *testing.T) {
	assert.Equal(t, neutralConfidence, Confidence(nil, 0))
}
