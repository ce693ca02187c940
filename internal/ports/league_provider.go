package ports

import (
	"context"

	"github.com/alejandrodnm/tradewise/internal/domain"
)

// LeagueProvider supplies league/roster context from the platform layer
// (Sleeper/ESPN live outside this core — we only consume typed results).
type LeagueProvider interface {
	// Settings returns the league settings that drive valuation.
	Settings(ctx context.Context, leagueID string) (domain.LeagueSettings, error)

	// TeamProfile returns the lightweight roster context for a team.
	TeamProfile(ctx context.Context, leagueID, teamID string) (domain.TeamProfileLite, error)

	// Roster returns the full asset inventory of a team (players + picks),
	// unpriced — valuation is this core's job.
	Roster(ctx context.Context, leagueID, teamID string) ([]domain.Asset, error)
}
