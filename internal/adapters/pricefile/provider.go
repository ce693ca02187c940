package pricefile

// provider.go — proveedores de datos respaldados por un export JSON de la
// plataforma. Implementan los puertos de valoración, liga e historial para
// poder correr el engine completo offline: la misma idea que un dry-run,
// pero con datos reales exportados en vez de mocks.

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/alejandrodnm/tradewise/internal/domain"
)

// Provider implementa ports.SnapshotProvider, ports.MarketFeed,
// ports.LeagueProvider y ports.TradeHistory desde un único fichero.
type Provider struct {
	settings  domain.LeagueSettings
	snapshots map[string][]snapshot // ordenados por fecha ascendente
	market    map[string]float64
	teams     map[string]teamDTO
	history   domain.RawLeagueHistory
}

type snapshot struct {
	at    time.Time
	value float64
}

// Load parsea el export JSON de la liga y construye el proveedor.
func Load(path string) (*Provider, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pricefile.Load: read %q: %w", path, err)
	}

	var file leagueFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("pricefile.Load: parse %q: %w", path, err)
	}

	p := &Provider{
		settings:  mapSettings(file.League),
		snapshots: make(map[string][]snapshot, len(file.Snapshots)),
		market:    file.Market,
		teams:     file.Teams,
		history:   mapHistory(file.History),
	}

	for assetID, raws := range file.Snapshots {
		series := make([]snapshot, 0, len(raws))
		for _, r := range raws {
			at, ok := parseWhen(r.At)
			if !ok || r.Value < 0 {
				continue // entrada malformada: se descarta, no se propaga
			}
			series = append(series, snapshot{at: at, value: r.Value})
		}
		sort.Slice(series, func(i, j int) bool { return series[i].at.Before(series[j].at) })
		if len(series) > 0 {
			p.snapshots[assetID] = series
		}
	}

	return p, nil
}

// ValueAt devuelve el snapshot más reciente anterior o igual a `at`.
// Un snapshot posterior a `at` no sirve: sería mirar el futuro.
func (p *Provider) ValueAt(_ context.Context, assetID string, at time.Time) (float64, bool, error) {
	series, ok := p.snapshots[assetID]
	if !ok {
		return 0, false, nil
	}

	found := false
	var value float64
	for _, s := range series {
		if s.at.After(at) {
			break
		}
		value = s.value
		found = true
	}
	return value, found, nil
}

// Quote devuelve el valor de mercado actual del activo.
func (p *Provider) Quote(_ context.Context, assetID string, _ domain.LeagueSettings) (float64, bool, error) {
	v, ok := p.market[assetID]
	if !ok || v < 0 {
		return 0, false, nil
	}
	return v, true, nil
}

// Settings devuelve los ajustes de la liga del fichero.
func (p *Provider) Settings(_ context.Context, leagueID string) (domain.LeagueSettings, error) {
	if leagueID != "" && leagueID != p.settings.LeagueID {
		return domain.LeagueSettings{}, fmt.Errorf("pricefile.Settings: league %q not in data file (have %q)", leagueID, p.settings.LeagueID)
	}
	return p.settings, nil
}

// TeamProfile devuelve el contexto ligero de un equipo.
func (p *Provider) TeamProfile(_ context.Context, _, teamID string) (domain.TeamProfileLite, error) {
	team, ok := p.teams[teamID]
	if !ok {
		return domain.TeamProfileLite{}, fmt.Errorf("pricefile.TeamProfile: team %q not in data file", teamID)
	}
	return mapProfile(teamID, team), nil
}

// Roster devuelve el inventario completo (sin valorar) de un equipo.
func (p *Provider) Roster(_ context.Context, _, teamID string) ([]domain.Asset, error) {
	team, ok := p.teams[teamID]
	if !ok {
		return nil, fmt.Errorf("pricefile.Roster: team %q not in data file", teamID)
	}
	return mapAssets(team.Roster), nil
}

// LeagueHistory devuelve los agregados crudos del historial de trades.
// Un fichero sin sección history devuelve el cero tipado: el resolver de
// demanda lo convertirá en un baseline explícito, no en un crash.
func (p *Provider) LeagueHistory(_ context.Context, _ string) (domain.RawLeagueHistory, error) {
	return p.history, nil
}

// LoadTrades parsea un fichero de trades a evaluar.
func LoadTrades(path string) ([]domain.Trade, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pricefile.LoadTrades: read %q: %w", path, err)
	}

	var file tradeFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("pricefile.LoadTrades: parse %q: %w", path, err)
	}

	trades := make([]domain.Trade, 0, len(file.Trades))
	for _, r := range file.Trades {
		trade := mapTrade(r)
		if trade.ID == "" || (len(trade.Received) == 0 && len(trade.Gave) == 0) {
			continue // fila inútil: sin id o sin activos
		}
		trades = append(trades, trade)
	}
	return trades, nil
}
