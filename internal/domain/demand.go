package domain

// demand.go — tipos del índice de demanda de liga (LDI) y tendencias por
// partner. La invariante central: NUNCA devolver un objeto silenciosamente
// vacío. Si la señal cruda falta o es escasa, el resolver emite un baseline
// explícito con FallbackMode=true y una nota mostrable — jamás un cero
// oculto que un dashboard pueda presentar con falsa confianza.

// RankingSource indica de dónde sale la señal de demanda.
type RankingSource string

const (
	// RankingLive es señal real de trades de la liga, con muestra suficiente.
	RankingLive RankingSource = "live_league_trades"
	// RankingBaselineOffseason: cero señal durante la ventana de offseason.
	RankingBaselineOffseason RankingSource = "baseline_offseason"
	// RankingBaselineNoTrades: cero señal fuera del offseason.
	RankingBaselineNoTrades RankingSource = "baseline_no_trades"
	// RankingBaselineInsufficient: hay algo de señal pero no supera los
	// umbrales de partners/trades. Los datos se devuelven amortiguados
	// y etiquetados, no se rechazan.
	RankingBaselineInsufficient RankingSource = "baseline_insufficient_sample"
)

// IsBaseline devuelve true si la fuente es cualquier fallback.
func (r RankingSource) IsBaseline() bool {
	return r != RankingLive
}

// Cotas documentadas de los scores de demanda.
const (
	DemandScoreMin     = 0.0
	DemandScoreMax     = 100.0
	DemandScoreNeutral = 50.0
)

// LeagueDemandIndex es la demanda por posición de la liga, acotada [0,100].
type LeagueDemandIndex struct {
	Positions map[Position]float64 // QB|RB|WR|TE|PICK → [0,100]
	PickTiers map[PickSlot]float64 // early/mid/late → [0,100]

	TradesAnalyzed    int
	RankingSource     RankingSource
	RankingSourceNote string // texto libre apto para mostrar tal cual
	FallbackMode      bool
	Warnings          []string
}

// Demand devuelve la demanda de una posición, o el neutro si no está.
func (l LeagueDemandIndex) Demand(pos Position) float64 {
	if v, ok := l.Positions[pos]; ok {
		return v
	}
	return DemandScoreNeutral
}

// PartnerTendency son las señales de demanda/premium de UN partner concreto.
type PartnerTendency struct {
	PartnerID      string
	SampleTrades   int
	PositionDemand map[Position]float64 // [0,100]
	PremiumPaid    float64              // sobreprecio medio pagado, [-1,1]
	HasSignal      bool                 // supera MinTradesForPartnerSignal
}

// PartnerTendencies agrupa las tendencias de todos los partners de la liga
// con el mismo etiquetado de suficiencia que el LDI.
type PartnerTendencies struct {
	Partners           map[string]PartnerTendency
	PartnersWithSignal int
	TradesAnalyzed     int

	RankingSource     RankingSource
	RankingSourceNote string
	FallbackMode      bool
	Warnings          []string
}

// --- inputs crudos del agregador de historial (colaborador externo) ---

// RawLeagueHistory es el payload crudo del agregador de trade-history.
// Los campos numéricos pueden venir ausentes, NaN o fuera de rango: el
// resolver los coerciona, nunca los propaga.
type RawLeagueHistory struct {
	TradesAnalyzed int
	IsOffseason    bool

	PositionScores map[string]float64 // clave posición → score crudo
	PickTierScores map[string]float64 // early/mid/late → score crudo

	Partners map[string]RawPartnerSample // partnerID → muestra cruda
}

// RawPartnerSample es la muestra cruda de un partner.
type RawPartnerSample struct {
	Trades         int
	PositionScores map[string]float64
	PremiumPaid    float64
}

// PopulatedKeys cuenta cuántos campos con contenido trae el payload.
// Se usa para detectar payloads esencialmente vacíos.
func (r RawLeagueHistory) PopulatedKeys() int {
	n := 0
	if len(r.PositionScores) > 0 {
		n++
	}
	if len(r.PickTierScores) > 0 {
		n++
	}
	if len(r.Partners) > 0 {
		n++
	}
	if r.TradesAnalyzed > 0 {
		n++
	}
	return n
}
