package eligibility

import (
	"testing"

	"github.com/alejandrodnm/tradewise/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const season = 2025

func rb(id string, value float64, age int) domain.PricedAsset {
	return domain.PricedAsset{
		ID: id, Name: id, Kind: domain.KindPlayer,
		Position: domain.PositionRB, Age: age,
		Value: value, Source: domain.SourceExcel,
	}
}

func wr(id string, value float64, age int) domain.PricedAsset {
	return domain.PricedAsset{
		ID: id, Name: id, Kind: domain.KindPlayer,
		Position: domain.PositionWR, Age: age,
		Value: value, Source: domain.SourceExcel,
	}
}

func pick(id string, seasonYr, round int, value float64) domain.PricedAsset {
	return domain.PricedAsset{
		ID: id, Name: id, Kind: domain.KindPick, Position: domain.PositionPick,
		Season: seasonYr, Round: round, Slot: domain.SlotMid,
		Value: value, Source: domain.SourceCurve,
	}
}

func profile(window domain.CompetitiveWindow, needs, surpluses []domain.Position) domain.TeamProfileLite {
	return domain.TeamProfileLite{
		TeamID: "team", CompetitiveWindow: window,
		Needs: needs, Surpluses: surpluses,
	}
}

func idsOf(assets []domain.PricedAsset) map[string]bool {
	out := make(map[string]bool, len(assets))
	for _, a := range assets {
		out[a.ID] = true
	}
	return out
}

func TestFilter_TopTwoNeverOfferable(t *testing.T) {
	// Invariante de protección del núcleo: los top-2 por valor jamás
	// aparecen en la lista ofrecible, sea cual sea la composición.
	rosters := [][]domain.PricedAsset{
		{rb("star", 9500, 24), wr("wr1", 8000, 25), rb("depth1", 1500, 26), rb("depth2", 900, 23)},
		{rb("a", 3000, 24), rb("b", 2900, 24), rb("c", 2800, 24)},
		{wr("solo", 500, 22)},
	}

	f := NewFilter(Config{})
	for _, roster := range rosters {
		report := f.Evaluate(roster, nil,
			profile(domain.WindowWinNow, nil, nil),
			profile(domain.WindowMiddle, nil, nil),
			domain.ObjectiveWinNow, season)

		offerable := idsOf(report.UserMayOffer)
		top1, top2 := topTwo(roster)
		assert.False(t, offerable[top1], "el activo #1 del roster nunca es ofrecible")
		if top2 != "" {
			assert.False(t, offerable[top2], "el activo #2 del roster nunca es ofrecible")
		}
		assert.True(t, report.RedLineIDs[top1])
	}
}

func topTwo(assets []domain.PricedAsset) (string, string) {
	first, second := "", ""
	var v1, v2 float64 = -1, -1
	for _, a := range assets {
		if a.Value > v1 {
			second, v2 = first, v1
			first, v1 = a.ID, a.Value
		} else if a.Value > v2 {
			second, v2 = a.ID, a.Value
		}
	}
	return first, second
}

func TestFilter_EliteTierAlwaysRedLine(t *testing.T) {
	// Tres piezas élite: el top-2 solo cubre dos, el tier las cubre todas.
	roster := []domain.PricedAsset{
		rb("elite1", 9800, 24), wr("elite2", 9500, 25), wr("elite3", 9100, 26),
		rb("depth", 1000, 24),
	}
	f := NewFilter(Config{})
	report := f.Evaluate(roster, nil,
		profile(domain.WindowWinNow, nil, nil),
		profile(domain.WindowMiddle, nil, nil),
		domain.ObjectiveWinNow, season)

	assert.True(t, report.RedLineIDs["elite3"])
	assert.False(t, idsOf(report.UserMayOffer)["elite3"])
	assert.True(t, idsOf(report.UserMayOffer)["depth"])
}

func TestFilter_NearFutureFirstsProtected(t *testing.T) {
	roster := []domain.PricedAsset{
		rb("star", 9500, 24), wr("star2", 9000, 25),
		pick("first26", 2026, 1, 2300),
		pick("first27", 2027, 1, 2000),
		pick("third26", 2026, 3, 500),
	}
	f := NewFilter(Config{})
	report := f.Evaluate(roster, nil,
		profile(domain.WindowWinNow, nil, nil),
		profile(domain.WindowMiddle, nil, nil),
		domain.ObjectiveWinNow, season)

	assert.True(t, report.RedLineIDs["first26"], "el first cercano se protege")
	assert.False(t, report.RedLineIDs["first27"], "solo el first más lejano se libera del redline")
	assert.False(t, idsOf(report.UserMayOffer)["first26"])
	assert.True(t, idsOf(report.UserMayOffer)["third26"])
}

func TestFilter_SingleFutureFirstNotProtectedByPickRule(t *testing.T) {
	roster := []domain.PricedAsset{
		rb("star", 9500, 24), wr("star2", 9000, 25),
		pick("onlyfirst", 2026, 1, 2300),
	}
	f := NewFilter(Config{})
	report := f.Evaluate(roster, nil,
		profile(domain.WindowMiddle, nil, nil),
		profile(domain.WindowMiddle, nil, nil),
		domain.ObjectiveBalanced, season)

	// Con un solo first futuro la regla de firsts no dispara; round 1
	// tampoco pasa el corte de ventana MIDDLE (round >= 2), así que
	// sigue sin ser ofrecible, pero no por redline.
	assert.False(t, idsOf(report.UserMayOffer)["onlyfirst"])
	assert.False(t, report.RedLineIDs["onlyfirst"])
}

func TestFilter_TierTwoRequiresSurplusOrAge(t *testing.T) {
	youngNoSurplus := rb("young", 5000, 24)
	oldRB := rb("old", 5000, 29) // ≥28 → viejo para RB
	surplusWR := wr("extra", 5000, 25)

	roster := []domain.PricedAsset{
		rb("star", 9500, 24), wr("star2", 9000, 25),
		youngNoSurplus, oldRB, surplusWR,
	}
	f := NewFilter(Config{})
	report := f.Evaluate(roster, nil,
		profile(domain.WindowWinNow, nil, []domain.Position{domain.PositionWR}),
		profile(domain.WindowMiddle, nil, nil),
		domain.ObjectiveWinNow, season)

	offerable := idsOf(report.UserMayOffer)
	assert.False(t, offerable["young"], "tier-2 joven sin excedente se retiene")
	assert.True(t, offerable["old"], "tier-2 viejo para su posición es ofrecible")
	assert.True(t, offerable["extra"], "tier-2 en posición de excedente es ofrecible")
}

func TestFilter_RebuildFreesTierTwoRBs(t *testing.T) {
	youngRB := rb("young", 5000, 23)
	roster := []domain.PricedAsset{
		rb("star", 9500, 24), wr("star2", 9000, 25), youngRB,
	}
	f := NewFilter(Config{})
	report := f.Evaluate(roster, nil,
		profile(domain.WindowRebuild, nil, nil),
		profile(domain.WindowMiddle, nil, nil),
		domain.ObjectiveRebuild, season)

	assert.True(t, idsOf(report.UserMayOffer)["young"],
		"en rebuild los RB tier-2 se liberan a cualquier edad")
}

func TestFilter_RequestNeedsMutualBenefit(t *testing.T) {
	partnerRoster := []domain.PricedAsset{
		wr("ptop", 9500, 25), rb("ptop2", 9200, 24),
		wr("pwr2", 5000, 25), // tier-2 WR del partner
		rb("pdepth", 1200, 26),
	}

	f := NewFilter(Config{})

	// Usuario necesita WR y el partner tiene excedente de WR → pedible.
	report := f.Evaluate(nil, partnerRoster,
		profile(domain.WindowWinNow, []domain.Position{domain.PositionWR}, nil),
		profile(domain.WindowWinNow, nil, []domain.Position{domain.PositionWR}),
		domain.ObjectiveWinNow, season)
	assert.True(t, idsOf(report.UserMayRequest)["pwr2"])

	// Sin excedente del partner no hay beneficio mutuo → no pedible.
	report = f.Evaluate(nil, partnerRoster,
		profile(domain.WindowWinNow, []domain.Position{domain.PositionWR}, nil),
		profile(domain.WindowWinNow, nil, nil),
		domain.ObjectiveWinNow, season)
	assert.False(t, idsOf(report.UserMayRequest)["pwr2"])

	// La profundidad se puede pedir sin condiciones.
	assert.True(t, idsOf(report.UserMayRequest)["pdepth"])
}

func TestFilter_PartnerNeedsVetoTheirStarters(t *testing.T) {
	partnerRoster := []domain.PricedAsset{
		wr("ptop", 9500, 25), rb("ptop2", 9200, 24),
		wr("pwr2", 5000, 25),
	}
	// El partner declara necesidad de WR: su titular WR queda vetado
	// aunque el usuario lo necesite y hubiera excedente declarado.
	report := NewFilter(Config{}).Evaluate(nil, partnerRoster,
		profile(domain.WindowWinNow, []domain.Position{domain.PositionWR}, nil),
		profile(domain.WindowWinNow, []domain.Position{domain.PositionWR}, []domain.Position{domain.PositionWR}),
		domain.ObjectiveWinNow, season)

	assert.False(t, idsOf(report.UserMayRequest)["pwr2"])
}

func TestFilter_PickEligibilityByWindow(t *testing.T) {
	// Dos anclas de valor para que los picks queden fuera del top-2.
	partnerPicks := []domain.PricedAsset{
		wr("anchor1", 9500, 25), rb("anchor2", 9200, 24),
		pick("p1", 2026, 1, 2300),
		pick("p2", 2026, 2, 1100),
		pick("p3", 2026, 3, 500),
	}

	f := NewFilter(Config{})
	user := profile(domain.WindowMiddle, nil, nil)

	// Partner WIN_NOW suelta picks medios (ronda 2+), jamás el first.
	report := f.Evaluate(nil, partnerPicks, user,
		profile(domain.WindowWinNow, nil, nil), domain.ObjectiveBalanced, season)
	got := idsOf(report.UserMayRequest)
	assert.False(t, got["p1"])
	assert.True(t, got["p2"])
	assert.True(t, got["p3"])

	// Partner REBUILD blinda rondas 1–2.
	report = f.Evaluate(nil, partnerPicks, user,
		profile(domain.WindowRebuild, nil, nil), domain.ObjectiveBalanced, season)
	got = idsOf(report.UserMayRequest)
	assert.False(t, got["p1"])
	assert.False(t, got["p2"])
	assert.True(t, got["p3"])
}

func TestFilter_EmptyRosters(t *testing.T) {
	report := NewFilter(Config{}).Evaluate(nil, nil,
		profile(domain.WindowMiddle, nil, nil),
		profile(domain.WindowMiddle, nil, nil),
		domain.ObjectiveBalanced, season)

	require.NotNil(t, report.RedLineIDs)
	assert.Empty(t, report.UserMayOffer)
	assert.Empty(t, report.UserMayRequest)
}
