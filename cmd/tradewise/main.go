package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alejandrodnm/tradewise/config"
	"github.com/alejandrodnm/tradewise/internal/adapters/notify"
	"github.com/alejandrodnm/tradewise/internal/adapters/pricefile"
	"github.com/alejandrodnm/tradewise/internal/adapters/storage"
	"github.com/alejandrodnm/tradewise/internal/counter"
	"github.com/alejandrodnm/tradewise/internal/demand"
	"github.com/alejandrodnm/tradewise/internal/domain"
	"github.com/alejandrodnm/tradewise/internal/eligibility"
	"github.com/alejandrodnm/tradewise/internal/evaluate"
	"github.com/alejandrodnm/tradewise/internal/ports"
	"github.com/alejandrodnm/tradewise/internal/valuation"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	dataPath := flag.String("data", "data/league.json", "path to league data export")
	tradesPath := flag.String("trades", "data/trades.json", "path to trade log")
	tradeID := flag.String("trade", "", "evaluate a single trade by id (default: all)")
	leagueID := flag.String("league", "", "league id (must match the data file)")
	teamID := flag.String("team", "", "your team id (required for -counter)")
	faab := flag.Float64("faab", 0, "remaining FAAB budget in dollars (for -counter)")
	counterMode := flag.Bool("counter", false, "rank counter-offer sweeteners for the trade")
	demandMode := flag.Bool("demand", false, "print the league demand dashboard and exit")
	replayMode := flag.Bool("replay", false, "re-grade the whole trade log in both modes")
	historyMode := flag.Bool("history", false, "print stored evaluation history and exit")
	table := flag.Bool("table", false, "print full tables (default: compact 1-line)")
	validate := flag.Bool("validate", false, "print step-by-step calculation per evaluation")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	noStore := flag.Bool("nostore", false, "skip the evaluation history cache")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	slog.Info("tradewise starting",
		"config", *configPath,
		"data", *dataPath,
		"trade", *tradeID,
		"counter", *counterMode,
		"replay", *replayMode,
	)

	provider, err := pricefile.Load(*dataPath)
	if err != nil {
		slog.Error("failed to load league data", "err", err, "path", *dataPath)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	notifier := notify.NewConsole(*table || *counterMode || *demandMode, *validate)

	var store ports.Storage
	if !*noStore {
		db, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
			os.Exit(1)
		}
		defer db.Close()
		store = db
	}

	if *historyMode {
		if store == nil {
			slog.Error("-history requires storage (remove -nostore)")
			os.Exit(1)
		}
		records, err := store.GetHistory(ctx, time.Time{}, time.Now())
		if err != nil {
			slog.Error("failed to read history", "err", err)
			os.Exit(1)
		}
		notifier.PrintHistory(records)
		return
	}

	settings, err := provider.Settings(ctx, *leagueID)
	if err != nil {
		slog.Error("league mismatch", "err", err)
		os.Exit(1)
	}

	demandOpts := demand.Options{
		MinTradesForPartnerSignal:  cfg.Demand.MinTradesForPartnerSignal,
		MinPartnersForLeagueSignal: cfg.Demand.MinPartnersForLeagueSignal,
		DampenFactor:               cfg.Demand.DampenFactor,
	}
	rawHistory, err := provider.LeagueHistory(ctx, settings.LeagueID)
	if err != nil {
		slog.Warn("trade history unavailable, demand falls back to baseline", "err", err)
		rawHistory = domain.RawLeagueHistory{}
	}
	ldi := demand.ResolveLeagueDemand(rawHistory, demandOpts)
	tendencies := demand.ResolvePartnerTendencies(rawHistory, demandOpts)

	if *demandMode {
		if err := notifier.NotifyDemand(ctx, ldi, tendencies); err != nil {
			slog.Warn("notifier error", "err", err)
		}
		return
	}

	valuer := valuation.NewValuer(provider, provider, buildCurve(cfg.Curve), cfg.Engine.ValueFloor)
	evaluator := evaluate.NewEvaluator(valuer)

	trades, err := pricefile.LoadTrades(*tradesPath)
	if err != nil {
		slog.Error("failed to load trades", "err", err, "path", *tradesPath)
		os.Exit(1)
	}
	if len(trades) == 0 {
		slog.Warn("trade log is empty — nothing to evaluate")
		return
	}

	if *replayMode {
		runReplay(ctx, cfg, evaluator, notifier, store, trades, settings)
		return
	}

	trade, ok := pickTrade(trades, *tradeID)
	if !ok {
		slog.Error("trade not found in log", "trade", *tradeID)
		os.Exit(1)
	}

	eval := evaluator.Evaluate(ctx, trade, settings)
	if err := notifier.NotifyEvaluation(ctx, eval); err != nil {
		slog.Warn("notifier error", "err", err)
	}
	if store != nil {
		if err := store.SaveEvaluation(ctx, eval); err != nil {
			slog.Warn("failed to cache evaluation", "err", err)
		}
	}

	if *counterMode {
		runCounter(ctx, cfg, provider, valuer, notifier, store, eval, ldi, settings, *teamID, *faab)
	}

	slog.Info("tradewise done")
}

// pickTrade busca el trade pedido; con id vacío usa el primero del log.
func pickTrade(trades []domain.Trade, id string) (domain.Trade, bool) {
	if id == "" {
		return trades[0], true
	}
	for _, t := range trades {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Trade{}, false
}

// runCounter construye candidatos legales y rankea contraofertas.
func runCounter(
	ctx context.Context,
	cfg *config.Config,
	league ports.LeagueProvider,
	valuer *valuation.Valuer,
	notifier ports.Notifier,
	store ports.Storage,
	eval domain.TradeEvaluation,
	ldi domain.LeagueDemandIndex,
	settings domain.LeagueSettings,
	teamID string,
	faab float64,
) {
	if teamID == "" {
		slog.Error("-counter requires -team (your team id)")
		os.Exit(1)
	}

	userProf, err := league.TeamProfile(ctx, settings.LeagueID, teamID)
	if err != nil {
		slog.Error("failed to load team profile", "err", err)
		os.Exit(1)
	}
	partnerProf, err := league.TeamProfile(ctx, settings.LeagueID, eval.Trade.PartnerID)
	if err != nil {
		slog.Warn("partner profile unavailable, assuming middle window", "err", err)
		partnerProf = domain.TeamProfileLite{TeamID: eval.Trade.PartnerID, CompetitiveWindow: domain.WindowMiddle}
	}

	// Valorar ambos rosters a hoy: las contraofertas se negocian ahora.
	userRoster := resolveRoster(ctx, league, valuer, settings, teamID)
	partnerRoster := resolveRoster(ctx, league, valuer, settings, eval.Trade.PartnerID)

	filter := eligibility.NewFilter(eligibility.Config{
		ProtectTopN: cfg.Eligibility.ProtectTopN,
		Tier0Value:  cfg.Eligibility.Tier0Value,
		Tier1Value:  cfg.Eligibility.Tier1Value,
		Tier2Value:  cfg.Eligibility.Tier2Value,
	})
	report := filter.Evaluate(userRoster, partnerRoster, userProf, partnerProf,
		objectiveFor(userProf.CompetitiveWindow), settings.Season)

	inTrade := make(map[string]bool)
	for _, a := range eval.Hindsight.AllAssets() {
		inTrade[a.ID] = true
	}
	candidates := counter.Candidates(report.UserMayOffer, inTrade, faab)

	features := evaluate.Features(eval.Hindsight, ldi, partnerProf)
	totalValue := eval.Hindsight.UserReceivedValue + eval.Hindsight.UserGaveValue

	optimizer, err := counter.NewOptimizer(counter.Options{
		ImpactCoefficient: cfg.Engine.ImpactCoefficient,
		RiskWeight:        cfg.Engine.RiskWeight,
		TopK:              cfg.Engine.CounterTopK,
		Workers:           cfg.Engine.Workers,
	}, acceptanceWeights(cfg.Weights))
	if err != nil {
		slog.Error("invalid acceptance weights", "err", err)
		os.Exit(1)
	}

	options, err := optimizer.Rank(features, totalValue, candidates)
	if err != nil {
		slog.Error("counter-offer ranking failed", "err", err)
		os.Exit(1)
	}

	if err := notifier.NotifyCounterOptions(ctx, options); err != nil {
		slog.Warn("notifier error", "err", err)
	}
	if store != nil && len(options) > 0 {
		if err := store.SaveCounterOptions(ctx, eval.ID, options); err != nil {
			slog.Warn("failed to cache counter options", "err", err)
		}
	}
}

func resolveRoster(ctx context.Context, league ports.LeagueProvider, valuer *valuation.Valuer, settings domain.LeagueSettings, teamID string) []domain.PricedAsset {
	assets, err := league.Roster(ctx, settings.LeagueID, teamID)
	if err != nil {
		slog.Warn("roster unavailable", "team", teamID, "err", err)
		return nil
	}
	return valuer.ResolveAll(ctx, assets, time.Time{}, settings, domain.NewValuationStats())
}

func objectiveFor(w domain.CompetitiveWindow) domain.TradeObjective {
	switch w {
	case domain.WindowWinNow:
		return domain.ObjectiveWinNow
	case domain.WindowRebuild:
		return domain.ObjectiveRebuild
	default:
		return domain.ObjectiveBalanced
	}
}

// acceptanceWeights mapea los pesos de config a un vector validable.
// Sin Custom se usan los calibrados por defecto.
func acceptanceWeights(w config.WeightsConfig) domain.AcceptanceWeights {
	if !w.Custom {
		return domain.DefaultAcceptanceWeights()
	}
	return domain.AcceptanceWeights{
		Fairness:        w.Fairness,
		LDIAlignment:    w.LDIAlignment,
		NeedsFit:        w.NeedsFit,
		ArchetypeMatch:  w.ArchetypeMatch,
		DealShape:       w.DealShape,
		VolatilityDelta: w.VolatilityDelta,
		Intercept:       w.Intercept,
	}
}

// buildCurve mapea la config YAML a la curva de picks.
func buildCurve(c config.CurveConfig) valuation.Curve {
	slots := make(map[domain.PickSlot]float64, len(c.SlotMultiplier))
	for k, v := range c.SlotMultiplier {
		slots[domain.PickSlot(k)] = v
	}
	return valuation.NewCurve(valuation.CurveConfig{
		RoundBase:       c.RoundBase,
		SlotMultipliers: slots,
		SeasonDiscount:  c.SeasonDiscount,
	})
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
