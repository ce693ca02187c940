package pricefile

// mapping.go — conversión DTO → dominio. Los campos desconocidos degradan
// a sus ceros tipados; la coerción numérica dura la hace internal/demand.

import (
	"time"

	"github.com/alejandrodnm/tradewise/internal/domain"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02",
}

// parseWhen intenta los formatos de fecha habituales en los exports.
func parseWhen(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func mapAsset(r assetDTO) domain.Asset {
	kind := domain.KindPlayer
	if r.Kind == "PICK" {
		kind = domain.KindPick
	}
	return domain.Asset{
		ID:       r.ID,
		Name:     r.Name,
		Kind:     kind,
		Position: domain.Position(r.Position),
		Age:      r.Age,
		Season:   r.Season,
		Round:    r.Round,
		Slot:     domain.PickSlot(r.Slot),
	}
}

func mapAssets(raw []assetDTO) []domain.Asset {
	out := make([]domain.Asset, 0, len(raw))
	for _, r := range raw {
		out = append(out, mapAsset(r))
	}
	return out
}

func mapSettings(r leagueDTO) domain.LeagueSettings {
	return domain.LeagueSettings{
		LeagueID:  r.ID,
		TeamCount: r.TeamCount,
		Superflex: r.Superflex,
		TEPremium: r.TEPremium,
		Season:    r.Season,
	}
}

func mapProfile(teamID string, r teamDTO) domain.TeamProfileLite {
	return domain.TeamProfileLite{
		TeamID:            teamID,
		CompetitiveWindow: domain.CompetitiveWindow(r.Window),
		Needs:             mapPositions(r.Needs),
		Surpluses:         mapPositions(r.Surpluses),
	}
}

func mapPositions(raw []string) []domain.Position {
	out := make([]domain.Position, 0, len(raw))
	for _, p := range raw {
		out = append(out, domain.Position(p))
	}
	return out
}

func mapHistory(r *historyDTO) domain.RawLeagueHistory {
	if r == nil {
		return domain.RawLeagueHistory{}
	}
	hist := domain.RawLeagueHistory{
		TradesAnalyzed: r.TradesAnalyzed,
		IsOffseason:    r.IsOffseason,
		PositionScores: r.PositionScores,
		PickTierScores: r.PickTierScores,
	}
	if len(r.Partners) > 0 {
		hist.Partners = make(map[string]domain.RawPartnerSample, len(r.Partners))
		for id, p := range r.Partners {
			hist.Partners[id] = domain.RawPartnerSample{
				Trades:         p.Trades,
				PositionScores: p.PositionScores,
				PremiumPaid:    p.PremiumPaid,
			}
		}
	}
	return hist
}

func mapTrade(r tradeDTO) domain.Trade {
	executedAt, _ := parseWhen(r.ExecutedAt)
	return domain.Trade{
		ID:         r.ID,
		ExecutedAt: executedAt,
		PartnerID:  r.PartnerID,
		Received:   mapAssets(r.Received),
		Gave:       mapAssets(r.Gave),
	}
}
