package domain

// CompetitiveWindow describe en qué fase competitiva está un equipo.
type CompetitiveWindow string

const (
	WindowWinNow  CompetitiveWindow = "WIN_NOW"
	WindowRebuild CompetitiveWindow = "REBUILD"
	WindowMiddle  CompetitiveWindow = "MIDDLE"
)

// TradeObjective es lo que el usuario busca conseguir con el trade.
type TradeObjective string

const (
	ObjectiveWinNow   TradeObjective = "WIN_NOW"
	ObjectiveRebuild  TradeObjective = "REBUILD"
	ObjectiveBalanced TradeObjective = "BALANCED"
)

// TeamProfileLite es el contexto mínimo de roster que nos pasa el caller.
// No es nuestro: lo posee la capa de liga (Sleeper/ESPN) fuera de este core.
type TeamProfileLite struct {
	TeamID            string
	CompetitiveWindow CompetitiveWindow
	Needs             []Position
	Surpluses         []Position
}

// Needs devuelve true si la posición es una necesidad declarada del equipo.
func (p TeamProfileLite) NeedsPosition(pos Position) bool {
	return containsPosition(p.Needs, pos)
}

// HasSurplus devuelve true si la posición es un excedente declarado del equipo.
func (p TeamProfileLite) HasSurplus(pos Position) bool {
	return containsPosition(p.Surpluses, pos)
}

func containsPosition(list []Position, pos Position) bool {
	for _, p := range list {
		if p == pos {
			return true
		}
	}
	return false
}
