package domain

// SweetenerType es el tipo de añadido candidato a un trade.
type SweetenerType string

const (
	SweetenerPick   SweetenerType = "PICK"
	SweetenerPlayer SweetenerType = "PLAYER"
	SweetenerFAAB   SweetenerType = "FAAB"
)

// Sweetener es un añadido candidato a la oferta base. Es efímero: se
// genera por llamada desde el bench/picks/presupuesto FAAB del roster
// (ya filtrados por elegibilidad) y no se persiste nunca.
type Sweetener struct {
	Type     SweetenerType
	Name     string
	Value    float64
	Round    int      // solo picks
	Year     int      // solo picks
	Position Position // solo jugadores
}

// CounterOption es una contraoferta rankeada por el optimizador.
// Se devuelven ordenadas por Score descendente, top-3 como máximo.
type CounterOption struct {
	ID        string // uuid, para persistencia del historial
	Sweetener Sweetener

	AcceptProb float64 // probabilidad de aceptación con el sweetener añadido
	ChampDelta float64 // desplazamiento estimado de odds de campeonato
	ValueCost  float64 // fracción del valor total del trade que consume
	Score      float64 // AcceptProb·ChampDelta − ValueCost·riskWeight

	Explanation string // texto generado, apto para UI
}
