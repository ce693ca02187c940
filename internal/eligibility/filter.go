package eligibility

import (
	"github.com/alejandrodnm/tradewise/internal/domain"
)

// filter.go — qué activos pueden legalmente ofrecerse/pedirse en un trade
// hipotético. Protege el núcleo intocable del roster y aplica reglas
// distintas según el objetivo del trade y la ventana competitiva de cada
// equipo. Es un filtro puro: sin I/O, sin estado, seguro en concurrencia.

// Tiers internos normalizados por valor. Tier 0/1 = élite intocable,
// tier 2 = titular protegido-condicional, tier 3+ = profundidad.
const (
	tierElite = 0
	tierOne   = 1
	tierTwo   = 2
	tierDepth = 3
)

// Config parametriza el filtro. Cero = default. Los umbrales son
// heurísticas calibradas y viven aquí, no en literales de las reglas.
type Config struct {
	// ProtectTopN: los N activos de más valor del roster siempre son redline.
	ProtectTopN int

	// Corte de valor de cada tier. Un activo con Value >= Tier0Value es
	// tier 0, etc. Lo que queda por debajo de Tier2Value es profundidad.
	Tier0Value float64
	Tier1Value float64
	Tier2Value float64

	// AgeThresholds: edad a partir de la cual un titular tier-2 se
	// considera "viejo para su posición" y por tanto ofrecible.
	AgeThresholds map[domain.Position]int
}

// DefaultConfig devuelve la calibración por defecto del filtro.
func DefaultConfig() Config {
	return Config{
		ProtectTopN: 2,
		Tier0Value:  9000,
		Tier1Value:  7000,
		Tier2Value:  4500,
		AgeThresholds: map[domain.Position]int{
			domain.PositionRB: 28, // los RB se deprecian antes
			domain.PositionWR: 29,
			domain.PositionTE: 30,
			domain.PositionQB: 31,
		},
	}
}

// Report son las cuatro listas de elegibilidad más el redline conjunto.
type Report struct {
	UserMayOffer      []domain.PricedAsset
	UserMayRequest    []domain.PricedAsset
	PartnerMayOffer   []domain.PricedAsset
	PartnerMayRequest []domain.PricedAsset

	// RedLineIDs: activos que no pueden aparecer como tradeables en
	// NINGUNA dirección (núcleo intocable de ambos rosters).
	RedLineIDs map[string]bool
}

// Filter aplica las reglas de elegibilidad.
type Filter struct {
	cfg Config
}

// NewFilter crea el filtro rellenando defaults en los campos en cero.
func NewFilter(cfg Config) *Filter {
	def := DefaultConfig()
	if cfg.ProtectTopN <= 0 {
		cfg.ProtectTopN = def.ProtectTopN
	}
	if cfg.Tier0Value <= 0 {
		cfg.Tier0Value = def.Tier0Value
	}
	if cfg.Tier1Value <= 0 {
		cfg.Tier1Value = def.Tier1Value
	}
	if cfg.Tier2Value <= 0 {
		cfg.Tier2Value = def.Tier2Value
	}
	if len(cfg.AgeThresholds) == 0 {
		cfg.AgeThresholds = def.AgeThresholds
	}
	return &Filter{cfg: cfg}
}

// tierOf normaliza el valor de un activo a su tier interno.
func (f *Filter) tierOf(value float64) int {
	switch {
	case value >= f.cfg.Tier0Value:
		return tierElite
	case value >= f.cfg.Tier1Value:
		return tierOne
	case value >= f.cfg.Tier2Value:
		return tierTwo
	default:
		return tierDepth
	}
}

// oldForPosition devuelve true si la edad supera el umbral de la posición.
// Edad desconocida (0) nunca cuenta como viejo.
func (f *Filter) oldForPosition(a domain.PricedAsset) bool {
	threshold, ok := f.cfg.AgeThresholds[a.Position]
	return ok && a.Age > 0 && a.Age >= threshold
}

// Evaluate computa las cuatro listas para un trade hipotético entre el
// usuario y un partner. `season` es la temporada actual (para distinguir
// picks futuros) y `objective` el objetivo declarado del usuario.
func (f *Filter) Evaluate(
	user, partner []domain.PricedAsset,
	userProf, partnerProf domain.TeamProfileLite,
	objective domain.TradeObjective,
	season int,
) Report {
	userRed := f.redLine(user, season)
	partnerRed := f.redLine(partner, season)

	red := make(map[string]bool, len(userRed)+len(partnerRed))
	for id := range userRed {
		red[id] = true
	}
	for id := range partnerRed {
		red[id] = true
	}

	partnerObjective := objectiveForWindow(partnerProf.CompetitiveWindow)

	return Report{
		UserMayOffer:      f.mayOffer(user, userProf, objective, userRed, season),
		PartnerMayOffer:   f.mayOffer(partner, partnerProf, partnerObjective, partnerRed, season),
		UserMayRequest:    f.mayRequest(partner, userProf, partnerProf, partnerRed, season),
		PartnerMayRequest: f.mayRequest(user, partnerProf, userProf, userRed, season),
		RedLineIDs:        red,
	}
}

// mayOffer devuelve los activos que el dueño puede poner sobre la mesa.
func (f *Filter) mayOffer(
	assets []domain.PricedAsset,
	owner domain.TeamProfileLite,
	objective domain.TradeObjective,
	redline map[string]bool,
	season int,
) []domain.PricedAsset {
	out := make([]domain.PricedAsset, 0, len(assets))
	for _, a := range assets {
		if redline[a.ID] {
			continue
		}
		if a.IsPick() {
			if pickOfferable(a, owner.CompetitiveWindow) {
				out = append(out, a)
			}
			continue
		}

		switch f.tierOf(a.Value) {
		case tierElite, tierOne:
			// Núcleo: nunca ofrecible (el redline ya lo cubre, pero un
			// tier alto fuera del top-N también queda protegido aquí).
		case tierTwo:
			if f.tierTwoOfferable(a, owner, objective) {
				out = append(out, a)
			}
		default:
			// Profundidad baja/media: se ofrece libremente.
			out = append(out, a)
		}
	}
	return out
}

// tierTwoOfferable aplica las reglas condicionales de titulares tier-2.
func (f *Filter) tierTwoOfferable(a domain.PricedAsset, owner domain.TeamProfileLite, objective domain.TradeObjective) bool {
	// REBUILD libera los RB tier-2 a cualquier edad: son la pieza que
	// antes se deprecia, prioridad baja para una reconstrucción.
	if objective == domain.ObjectiveRebuild && a.Position == domain.PositionRB {
		return true
	}
	return owner.HasSurplus(a.Position) || f.oldForPosition(a)
}

// mayRequest devuelve qué puede pedir `requester` del inventario del partner.
// Simétrico a mayOffer pero con dos llaves extra: la necesidad propia solo
// desbloquea tiers protegidos si el partner tiene excedente en esa posición
// (beneficio mutuo), y la necesidad declarada del partner veta pedirle
// titulares de esa posición directamente.
func (f *Filter) mayRequest(
	partnerAssets []domain.PricedAsset,
	requester, partner domain.TeamProfileLite,
	partnerRed map[string]bool,
	season int,
) []domain.PricedAsset {
	out := make([]domain.PricedAsset, 0, len(partnerAssets))
	for _, a := range partnerAssets {
		if partnerRed[a.ID] {
			continue
		}
		if a.IsPick() {
			if pickRequestable(a, partner.CompetitiveWindow) {
				out = append(out, a)
			}
			continue
		}

		tier := f.tierOf(a.Value)

		// Veto del partner: sus necesidades declaradas blindan a sus
		// titulares en esa posición.
		if tier <= tierTwo && partner.NeedsPosition(a.Position) {
			continue
		}

		switch tier {
		case tierElite, tierOne:
			// Jamás pedible: redline del partner.
		case tierTwo:
			if requester.NeedsPosition(a.Position) && partner.HasSurplus(a.Position) {
				out = append(out, a)
			}
		default:
			out = append(out, a)
		}
	}
	return out
}

// objectiveForWindow mapea la ventana competitiva de un equipo al objetivo
// equivalente (para aplicar las reglas de oferta al lado del partner).
func objectiveForWindow(w domain.CompetitiveWindow) domain.TradeObjective {
	switch w {
	case domain.WindowWinNow:
		return domain.ObjectiveWinNow
	case domain.WindowRebuild:
		return domain.ObjectiveRebuild
	default:
		return domain.ObjectiveBalanced
	}
}
