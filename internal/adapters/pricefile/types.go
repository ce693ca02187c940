package pricefile

// types.go — DTOs del fichero de datos de liga. El JSON lo exporta la
// capa de plataforma (web app / jobs de scraping); aquí solo se mapea a
// tipos de dominio, sin interpretar nada.

type leagueFile struct {
	League    leagueDTO                `json:"league"`
	Snapshots map[string][]snapshotDTO `json:"snapshots"`
	Market    map[string]float64       `json:"market"`
	Teams     map[string]teamDTO       `json:"teams"`
	History   *historyDTO              `json:"history"`
}

type leagueDTO struct {
	ID        string `json:"id"`
	TeamCount int    `json:"team_count"`
	Superflex bool   `json:"superflex"`
	TEPremium bool   `json:"te_premium"`
	Season    int    `json:"season"`
}

type snapshotDTO struct {
	At    string  `json:"at"` // fecha del snapshot, RFC3339 o YYYY-MM-DD
	Value float64 `json:"value"`
}

type teamDTO struct {
	Window    string     `json:"window"` // WIN_NOW | REBUILD | MIDDLE
	Needs     []string   `json:"needs"`
	Surpluses []string   `json:"surpluses"`
	Roster    []assetDTO `json:"roster"`
}

type assetDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"` // PLAYER | PICK
	Position string `json:"position"`
	Age      int    `json:"age,omitempty"`
	Season   int    `json:"season,omitempty"`
	Round    int    `json:"round,omitempty"`
	Slot     string `json:"slot,omitempty"`
}

type historyDTO struct {
	TradesAnalyzed int                          `json:"trades_analyzed"`
	IsOffseason    bool                         `json:"is_offseason"`
	PositionScores map[string]float64           `json:"position_scores"`
	PickTierScores map[string]float64           `json:"pick_tier_scores"`
	Partners       map[string]partnerSampleDTO  `json:"partners"`
}

type partnerSampleDTO struct {
	Trades         int                `json:"trades"`
	PositionScores map[string]float64 `json:"position_scores"`
	PremiumPaid    float64            `json:"premium_paid"`
}

type tradeFile struct {
	Trades []tradeDTO `json:"trades"`
}

type tradeDTO struct {
	ID         string     `json:"id"`
	ExecutedAt string     `json:"executed_at"`
	PartnerID  string     `json:"partner_id"`
	Received   []assetDTO `json:"received"`
	Gave       []assetDTO `json:"gave"`
}
