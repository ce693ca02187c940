package domain

import "fmt"

// AssetKind distingue entre jugadores y picks de draft.
type AssetKind int

const (
	KindPlayer AssetKind = iota
	KindPick
)

func (k AssetKind) String() string {
	if k == KindPick {
		return "PICK"
	}
	return "PLAYER"
}

// Position es la posición fantasy de un activo. Los picks usan PositionPick.
type Position string

const (
	PositionQB   Position = "QB"
	PositionRB   Position = "RB"
	PositionWR   Position = "WR"
	PositionTE   Position = "TE"
	PositionPick Position = "PICK"
)

// Positions devuelve todas las posiciones que el índice de demanda puntúa.
func Positions() []Position {
	return []Position{PositionQB, PositionRB, PositionWR, PositionTE, PositionPick}
}

// PickSlot es el tier dentro de la ronda (early/mid/late).
// SlotUnknown significa que el slot exacto aún no se conoce (pick futuro).
type PickSlot string

const (
	SlotEarly   PickSlot = "early"
	SlotMid     PickSlot = "mid"
	SlotLate    PickSlot = "late"
	SlotUnknown PickSlot = ""
)

// ValueSource identifica de dónde salió el valor de un activo.
// Los consumidores ponderan la confianza según la fuente — por eso
// nunca puede quedar vacía: un valor sin procedencia no es un valor.
type ValueSource string

const (
	// SourceExcel es la tabla histórica de snapshots (point-in-time).
	SourceExcel ValueSource = "excel"
	// SourceFantasyCalc es el feed de mercado en vivo.
	SourceFantasyCalc ValueSource = "fantasycalc"
	// SourceCurve es la curva paramétrica de valor de picks.
	SourceCurve ValueSource = "curve"
	// SourceUnknown significa que ninguna fuente resolvió el activo.
	SourceUnknown ValueSource = "unknown"
)

// Asset es un activo sin valorar: la referencia que el caller nos pasa.
type Asset struct {
	ID       string
	Name     string
	Kind     AssetKind
	Position Position // solo jugadores
	Age      int      // solo jugadores; 0 = desconocida

	// Solo picks
	Season int
	Round  int
	Slot   PickSlot
}

// PricedAsset es un activo con valor resuelto y procedencia.
// Invariante: Value >= 0 y Source siempre definida.
type PricedAsset struct {
	ID       string
	Name     string
	Kind     AssetKind
	Position Position
	Age      int

	Value  float64
	Source ValueSource

	Season int
	Round  int
	Slot   PickSlot
}

// IsPick devuelve true si el activo es un pick de draft.
func (a PricedAsset) IsPick() bool {
	return a.Kind == KindPick
}

// SeasonsOut devuelve cuántas temporadas faltan para que el pick sea usable.
// 0 para jugadores y picks de la temporada actual.
func (a PricedAsset) SeasonsOut(currentSeason int) int {
	if a.Kind != KindPick || a.Season <= currentSeason {
		return 0
	}
	return a.Season - currentSeason
}

// Label devuelve el nombre presentable del activo.
func (a PricedAsset) Label() string {
	if a.Name != "" {
		return a.Name
	}
	if a.Kind == KindPick {
		return fmt.Sprintf("%d round %d %s", a.Season, a.Round, a.Slot)
	}
	return a.ID
}

// TotalValue suma el valor de todos los activos.
func TotalValue(assets []PricedAsset) float64 {
	total := 0.0
	for _, a := range assets {
		total += a.Value
	}
	return total
}

// LeagueSettings son los ajustes de liga que afectan a la valoración.
type LeagueSettings struct {
	LeagueID  string
	TeamCount int
	Superflex bool // las ligas SF inflan QBs
	TEPremium bool
	Season    int // temporada actual de la liga
}
