package valuation

import (
	"github.com/alejandrodnm/tradewise/internal/domain"
)

// curve.go — curva paramétrica de valor de picks (fuente `curve`).
//
// Último eslabón con señal real de la cadena de fallback: cuando ni la
// tabla histórica ni el feed de mercado cotizan un pick, su valor se
// deriva de ronda + slot + distancia temporal. Los parámetros son
// heurísticas calibradas — viven en config, no en literales.

// CurveConfig parametriza la curva. Todos los campos tienen default.
type CurveConfig struct {
	// RoundBase es el valor base por ronda. Rondas no listadas usan el
	// valor de la ronda más tardía conocida.
	RoundBase map[int]float64
	// SlotMultipliers ajusta por tier dentro de la ronda.
	SlotMultipliers map[domain.PickSlot]float64
	// SeasonDiscount es el factor aplicado por cada temporada de distancia
	// (los picks futuros valen menos: riesgo + descuento temporal).
	SeasonDiscount float64
}

// DefaultCurveConfig devuelve la calibración por defecto de la curva.
func DefaultCurveConfig() CurveConfig {
	return CurveConfig{
		RoundBase: map[int]float64{
			1: 2500,
			2: 1200,
			3: 600,
			4: 300,
			5: 150,
		},
		SlotMultipliers: map[domain.PickSlot]float64{
			domain.SlotEarly:   1.3,
			domain.SlotMid:     1.0,
			domain.SlotLate:    0.75,
			domain.SlotUnknown: 1.0, // slot sin determinar → ni premia ni castiga
		},
		SeasonDiscount: 0.9,
	}
}

// Curve evalúa la curva de valor de picks.
type Curve struct {
	cfg       CurveConfig
	lastRound int
}

// NewCurve crea la curva con la configuración dada, rellenando defaults.
func NewCurve(cfg CurveConfig) Curve {
	def := DefaultCurveConfig()
	if len(cfg.RoundBase) == 0 {
		cfg.RoundBase = def.RoundBase
	}
	if len(cfg.SlotMultipliers) == 0 {
		cfg.SlotMultipliers = def.SlotMultipliers
	}
	if cfg.SeasonDiscount <= 0 || cfg.SeasonDiscount > 1 {
		cfg.SeasonDiscount = def.SeasonDiscount
	}

	last := 0
	for r := range cfg.RoundBase {
		if r > last {
			last = r
		}
	}
	return Curve{cfg: cfg, lastRound: last}
}

// Value devuelve el valor paramétrico de un pick. 0 si el activo no es
// un pick o la ronda es inválida.
func (c Curve) Value(pick domain.Asset, currentSeason int) float64 {
	if pick.Kind != domain.KindPick || pick.Round <= 0 {
		return 0
	}

	round := pick.Round
	if round > c.lastRound {
		round = c.lastRound
	}
	base := c.cfg.RoundBase[round]

	mult, ok := c.cfg.SlotMultipliers[pick.Slot]
	if !ok {
		mult = 1.0
	}

	value := base * mult
	for s := currentSeason; s < pick.Season; s++ {
		value *= c.cfg.SeasonDiscount
	}
	return value
}
