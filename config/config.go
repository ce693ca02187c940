package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del engine.
type Config struct {
	Engine      EngineConfig      `yaml:"engine"`
	Weights     WeightsConfig     `yaml:"weights"`
	Eligibility EligibilityConfig `yaml:"eligibility"`
	Demand      DemandConfig      `yaml:"demand"`
	Curve       CurveConfig       `yaml:"curve"`
	Replay      ReplayConfig      `yaml:"replay"`
	Storage     StorageConfig     `yaml:"storage"`
	Log         LogConfig         `yaml:"log"`
}

// EngineConfig controla el comportamiento general del evaluador.
type EngineConfig struct {
	ValueFloor        float64 `yaml:"value_floor"`        // valor de los activos sin resolver
	ImpactCoefficient float64 `yaml:"impact_coefficient"` // champDelta por unidad de value-share
	RiskWeight        float64 `yaml:"risk_weight"`        // penalización del coste en el score
	CounterTopK       int     `yaml:"counter_top_k"`
	Workers           int     `yaml:"workers"` // worker pool del optimizador; 0 = auto
}

// WeightsConfig son los pesos del modelo de aceptación. Overridables por
// liga; con Custom=false se usan los pesos calibrados por defecto.
type WeightsConfig struct {
	Fairness        float64 `yaml:"fairness"`
	LDIAlignment    float64 `yaml:"ldi_alignment"`
	NeedsFit        float64 `yaml:"needs_fit"`
	ArchetypeMatch  float64 `yaml:"archetype_match"`
	DealShape       float64 `yaml:"deal_shape"`
	VolatilityDelta float64 `yaml:"volatility_delta"`
	Intercept       float64 `yaml:"intercept"`
	Custom          bool    `yaml:"custom"` // true: usar estos pesos tal cual
}

// EligibilityConfig calibra el filtro de elegibilidad.
type EligibilityConfig struct {
	ProtectTopN int     `yaml:"protect_top_n"`
	Tier0Value  float64 `yaml:"tier0_value"`
	Tier1Value  float64 `yaml:"tier1_value"`
	Tier2Value  float64 `yaml:"tier2_value"`
}

// DemandConfig calibra los umbrales de suficiencia del resolver de demanda.
type DemandConfig struct {
	MinTradesForPartnerSignal  int     `yaml:"min_trades_for_partner_signal"`
	MinPartnersForLeagueSignal int     `yaml:"min_partners_for_league_signal"`
	DampenFactor               float64 `yaml:"dampen_factor"`
}

// CurveConfig calibra la curva paramétrica de valor de picks.
type CurveConfig struct {
	SeasonDiscount float64            `yaml:"season_discount"`
	RoundBase      map[int]float64    `yaml:"round_base"`
	SlotMultiplier map[string]float64 `yaml:"slot_multiplier"`
}

// ReplayConfig controla el modo replay sobre un log de trades.
type ReplayConfig struct {
	TradesPerSecond float64 `yaml:"trades_per_second"` // throttle del loop
	Burst           int     `yaml:"burst"`
}

// StorageConfig controla dónde se cachea el historial de evaluaciones.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Los valores del .env sobreescriben los del YAML para las keys que correspondan.
// Con path vacío se usan solo defaults + entorno.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("STORAGE_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("ENGINE_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.Workers = n
		}
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
// Las constantes numéricas son heurísticas calibradas: viven aquí para
// poder recalibrarlas sin tocar código.
func setDefaults(cfg *Config) {
	if cfg.Engine.ImpactCoefficient <= 0 {
		cfg.Engine.ImpactCoefficient = 0.15
	}
	if cfg.Engine.RiskWeight <= 0 {
		cfg.Engine.RiskWeight = 0.3
	}
	if cfg.Engine.CounterTopK <= 0 {
		cfg.Engine.CounterTopK = 3
	}
	if cfg.Eligibility.ProtectTopN <= 0 {
		cfg.Eligibility.ProtectTopN = 2
	}
	if cfg.Demand.MinTradesForPartnerSignal <= 0 {
		cfg.Demand.MinTradesForPartnerSignal = 2
	}
	if cfg.Demand.MinPartnersForLeagueSignal <= 0 {
		cfg.Demand.MinPartnersForLeagueSignal = 3
	}
	if cfg.Demand.DampenFactor <= 0 {
		cfg.Demand.DampenFactor = 0.5
	}
	if cfg.Replay.TradesPerSecond <= 0 {
		cfg.Replay.TradesPerSecond = 5
	}
	if cfg.Replay.Burst <= 0 {
		cfg.Replay.Burst = 1
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "tradewise.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
