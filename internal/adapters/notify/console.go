package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alejandrodnm/tradewise/internal/domain"
	"github.com/olekukonko/tablewriter"
)

// Console implementa ports.Notifier.
type Console struct {
	out      io.Writer
	table    bool
	validate bool
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(table, validate bool) *Console {
	return &Console{out: os.Stdout, table: table, validate: validate}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, table, validate bool) *Console {
	return &Console{out: w, table: table, validate: validate}
}

// NotifyEvaluation imprime las dos evaluaciones del trade.
func (c *Console) NotifyEvaluation(_ context.Context, eval domain.TradeEvaluation) error {
	if c.table {
		c.printFull(eval)
	} else {
		c.printCompact(eval)
	}

	if c.validate {
		c.printValidation(eval)
	}
	return nil
}

// printCompact imprime lo esencial en una línea.
func (c *Console) printCompact(eval domain.TradeEvaluation) {
	now := time.Now().Format("15:04:05")
	at, hs := eval.AtTheTime, eval.Hindsight

	fmt.Fprintf(c.out, "[%s] trade %s vs %s | then: %+.0f (%+.1f%%) %s conf %.2f | now: %+.0f (%+.1f%%) %s conf %.2f\n",
		now, eval.Trade.ID, eval.Trade.PartnerID,
		at.DeltaValue, at.PercentDiff, at.Grade, at.Confidence,
		hs.DeltaValue, hs.PercentDiff, hs.Grade, hs.Confidence,
	)
}

// printFull imprime la tabla de activos y el resumen de ambos modos.
func (c *Console) printFull(eval domain.TradeEvaluation) {
	fmt.Fprintf(c.out, "\nTrade %s vs %s — executed %s\n",
		eval.Trade.ID, eval.Trade.PartnerID,
		eval.Trade.ExecutedAt.Format("2006-01-02"))

	c.printAssetTable(eval)
	c.printModeSummary(eval)
}

// printAssetTable imprime cada activo con su valor en ambos modos.
func (c *Console) printAssetTable(eval domain.TradeEvaluation) {
	table := tablewriter.NewWriter(c.out)
	table.Header("Side", "Asset", "Pos", "Then", "Src", "Now", "Src")

	appendSide := func(side string, then, now []domain.PricedAsset) {
		for i, a := range then {
			nowVal, nowSrc := "-", "-"
			if i < len(now) {
				nowVal = fmt.Sprintf("%.0f", now[i].Value)
				nowSrc = string(now[i].Source)
			}
			table.Append(
				side,
				truncate(a.Label(), 30),
				string(a.Position),
				fmt.Sprintf("%.0f", a.Value),
				string(a.Source),
				nowVal,
				nowSrc,
			)
		}
	}
	appendSide("IN", eval.AtTheTime.ReceivedAssets, eval.Hindsight.ReceivedAssets)
	appendSide("OUT", eval.AtTheTime.GaveAssets, eval.Hindsight.GaveAssets)

	table.Render()
}

// printModeSummary compara proceso (then) contra resultado (now).
func (c *Console) printModeSummary(eval domain.TradeEvaluation) {
	for _, d := range []domain.TradeDelta{eval.AtTheTime, eval.Hindsight} {
		label := "AT THE TIME"
		if d.Mode == domain.ModeHindsight {
			label = "HINDSIGHT  "
		}
		fmt.Fprintf(c.out, "  %s  in:%.0f out:%.0f  delta:%+.0f (%+.1f%%)  grade:%-2s  conf:%.2f  vol:%.1f\n",
			label, d.UserReceivedValue, d.UserGaveValue,
			d.DeltaValue, d.PercentDiff, d.Grade, d.Confidence, d.Volatility)
	}

	unknownThen := eval.AtTheTime.Stats.Resolved(domain.SourceUnknown)
	if unknownThen > 0 {
		fmt.Fprintf(c.out, "  ⚠ %d asset(s) unresolved by any source — confidence discounted\n", unknownThen)
	}
	fmt.Fprintln(c.out)
}

// printValidation imprime el cálculo detallado, paso a paso.
func (c *Console) printValidation(eval domain.TradeEvaluation) {
	fmt.Fprintln(c.out, "=== VALIDATION — honest step-by-step ===")

	for _, d := range []domain.TradeDelta{eval.AtTheTime, eval.Hindsight} {
		fmt.Fprintf(c.out, "\n--- mode: %s ---\n", d.Mode)

		fmt.Fprintf(c.out, "\n  1. VALUATION SOURCES:\n")
		for _, src := range []domain.ValueSource{domain.SourceExcel, domain.SourceFantasyCalc, domain.SourceCurve, domain.SourceUnknown} {
			if n := d.Stats.Resolved(src); n > 0 {
				fmt.Fprintf(c.out, "     %-12s %d asset(s)\n", src, n)
			}
		}

		fmt.Fprintf(c.out, "\n  2. VALUE FLOW:\n")
		fmt.Fprintf(c.out, "     received: %.0f  gave: %.0f\n", d.UserReceivedValue, d.UserGaveValue)
		fmt.Fprintf(c.out, "     >>> DELTA: %+.0f (%+.1f%% of what you gave)\n", d.DeltaValue, d.PercentDiff)
		fmt.Fprintf(c.out, "     >>> GRADE: %s\n", d.Grade)

		fmt.Fprintf(c.out, "\n  3. UNCERTAINTY:\n")
		fmt.Fprintf(c.out, "     volatility: %.1f/10  (dispersion + unknowns + future picks)\n", d.Volatility)
		fmt.Fprintf(c.out, "     >>> CONFIDENCE: %.2f (floor 0.15, ceiling 0.95)\n", d.Confidence)
	}
	fmt.Fprintln(c.out)
}

// NotifyCounterOptions imprime las contraofertas rankeadas.
func (c *Console) NotifyCounterOptions(_ context.Context, options []domain.CounterOption) error {
	if len(options) == 0 {
		fmt.Fprintf(c.out, "[%s] no viable counter-offers found\n", time.Now().Format("15:04:05"))
		return nil
	}

	fmt.Fprintf(c.out, "\n=== COUNTER-OFFERS (top %d) ===\n", len(options))

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Sweetener", "Type", "Accept", "ChampΔ", "Cost", "Score")

	for i, o := range options {
		table.Append(
			fmt.Sprintf("%d", i+1),
			truncate(o.Sweetener.Name, 28),
			string(o.Sweetener.Type),
			fmt.Sprintf("%.0f%%", o.AcceptProb*100),
			fmt.Sprintf("%+.4f", o.ChampDelta),
			fmt.Sprintf("%.0f%%", o.ValueCost*100),
			fmt.Sprintf("%+.5f", o.Score),
		)
	}
	table.Render()

	for i, o := range options {
		fmt.Fprintf(c.out, "  #%d %s\n", i+1, o.Explanation)
	}
	fmt.Fprintln(c.out)
	return nil
}

// NotifyDemand imprime el LDI y las tendencias por partner. El etiquetado
// de suficiencia SIEMPRE se muestra: un baseline jamás se presenta como
// señal real.
func (c *Console) NotifyDemand(_ context.Context, ldi domain.LeagueDemandIndex, tendencies domain.PartnerTendencies) error {
	fmt.Fprintf(c.out, "\n=== LEAGUE DEMAND (%s) ===\n", ldi.RankingSource)
	if ldi.FallbackMode {
		fmt.Fprintf(c.out, "  ⚠ FALLBACK: %s\n", ldi.RankingSourceNote)
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Position", "Demand")
	for _, pos := range domain.Positions() {
		table.Append(string(pos), fmt.Sprintf("%.0f", ldi.Demand(pos)))
	}
	table.Render()

	if len(ldi.PickTiers) > 0 {
		var sb strings.Builder
		for _, slot := range []domain.PickSlot{domain.SlotEarly, domain.SlotMid, domain.SlotLate} {
			if v, ok := ldi.PickTiers[slot]; ok {
				fmt.Fprintf(&sb, " %s:%.0f", slot, v)
			}
		}
		if sb.Len() > 0 {
			fmt.Fprintf(c.out, "  pick tiers:%s\n", sb.String())
		}
	}

	for _, w := range ldi.Warnings {
		fmt.Fprintf(c.out, "  >> %s\n", w)
	}

	c.printPartners(tendencies)
	return nil
}

func (c *Console) printPartners(t domain.PartnerTendencies) {
	fmt.Fprintf(c.out, "\n=== PARTNER TENDENCIES (%s, %d/%d with signal) ===\n",
		t.RankingSource, t.PartnersWithSignal, len(t.Partners))
	if t.FallbackMode {
		fmt.Fprintf(c.out, "  ⚠ FALLBACK: %s\n", t.RankingSourceNote)
	}
	if len(t.Partners) == 0 {
		fmt.Fprintln(c.out, "  no partner data")
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Partner", "Trades", "Signal", "Premium", "QB", "RB", "WR", "TE")

	for id, p := range t.Partners {
		signal := "-"
		if p.HasSignal {
			signal = "yes"
		}
		table.Append(
			truncate(id, 20),
			fmt.Sprintf("%d", p.SampleTrades),
			signal,
			fmt.Sprintf("%+.2f", p.PremiumPaid),
			demandCell(p.PositionDemand, domain.PositionQB),
			demandCell(p.PositionDemand, domain.PositionRB),
			demandCell(p.PositionDemand, domain.PositionWR),
			demandCell(p.PositionDemand, domain.PositionTE),
		)
	}
	table.Render()

	for _, w := range t.Warnings {
		fmt.Fprintf(c.out, "  >> %s\n", w)
	}
	fmt.Fprintln(c.out)
}

// PrintHistory imprime los resúmenes recuperados de la cache de historial.
func (c *Console) PrintHistory(records []domain.EvaluationRecord) {
	if len(records) == 0 {
		fmt.Fprintln(c.out, "\n  No evaluation history in range.")
		return
	}

	fmt.Fprintf(c.out, "\n=== EVALUATION HISTORY (%d trades) ===\n", len(records))

	table := tablewriter.NewWriter(c.out)
	table.Header("Trade", "Partner", "Evaluated", "ThenΔ", "Then", "NowΔ", "Now")

	var improved, declined int
	for _, r := range records {
		table.Append(
			truncate(r.TradeID, 16),
			truncate(r.PartnerID, 14),
			r.EvaluatedAt.Format("2006-01-02"),
			fmt.Sprintf("%+.0f", r.AtDelta),
			r.AtGrade,
			fmt.Sprintf("%+.0f", r.NowDelta),
			r.NowGrade,
		)
		switch {
		case r.NowDelta > r.AtDelta:
			improved++
		case r.NowDelta < r.AtDelta:
			declined++
		}
	}
	table.Render()

	fmt.Fprintf(c.out, "  aged well: %d | aged poorly: %d | flat: %d\n\n",
		improved, declined, len(records)-improved-declined)
}

// --- helpers ---

func demandCell(demand map[domain.Position]float64, pos domain.Position) string {
	if v, ok := demand[pos]; ok {
		return fmt.Sprintf("%.0f", v)
	}
	return "-"
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
