package storage

// sqlite.go — cache de historial de evaluaciones, eficiente y sin ruido.
//
// Estrategia:
//   - `evaluations`: UNA fila por trade (UPSERT por trade_id) con el resumen
//     de ambos modos. Los PricedAsset completos no se persisten: el registro
//     canónico del trade vive en la plataforma, esto es solo la cache.
//   - `counter_options`: las contraofertas generadas por evaluación, para
//     poder reabrir una negociación sin re-optimizar.
//   - Cache en memoria: evita reescrituras si el resumen no cambió (> 2% en
//     el delta hindsight o cambio de nota). En un replay de un log entero
//     la mayoría de trades no cambian → muchas menos escrituras a disco.
//   - Prune automático al arrancar: evaluaciones no tocadas en 180 días.

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/alejandrodnm/tradewise/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
-- Una fila por trade evaluado, resumen de ambos modos
CREATE TABLE IF NOT EXISTS evaluations (
    trade_id       TEXT PRIMARY KEY,
    eval_id        TEXT NOT NULL,
    partner_id     TEXT,
    evaluated_at   DATETIME NOT NULL,
    at_delta       REAL NOT NULL DEFAULT 0,
    at_percent     REAL NOT NULL DEFAULT 0,
    at_grade       TEXT NOT NULL,
    at_confidence  REAL NOT NULL DEFAULT 0,
    now_delta      REAL NOT NULL DEFAULT 0,
    now_percent    REAL NOT NULL DEFAULT 0,
    now_grade      TEXT NOT NULL,
    now_confidence REAL NOT NULL DEFAULT 0
);

-- Contraofertas rankeadas de la última evaluación de cada trade
CREATE TABLE IF NOT EXISTS counter_options (
    id          TEXT PRIMARY KEY,
    eval_id     TEXT NOT NULL,
    sweetener   TEXT NOT NULL,
    kind        TEXT NOT NULL,
    accept_prob REAL NOT NULL DEFAULT 0,
    champ_delta REAL NOT NULL DEFAULT 0,
    value_cost  REAL NOT NULL DEFAULT 0,
    score       REAL NOT NULL DEFAULT 0,
    explanation TEXT,
    created_at  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_eval_at      ON evaluations(evaluated_at DESC);
CREATE INDEX IF NOT EXISTS idx_eval_partner ON evaluations(partner_id);
CREATE INDEX IF NOT EXISTS idx_counter_eval ON counter_options(eval_id);
`

const (
	retentionEvals = 180 * 24 * time.Hour // medio año de historial
	deltaChangePct = 0.02                 // 2% de cambio en delta hindsight → reescribir
)

// cachedEval es el snapshot del último resumen guardado de un trade.
type cachedEval struct {
	nowDelta float64
	nowGrade string
}

// SQLiteStorage implementa ports.Storage usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db    *sql.DB
	cache map[string]cachedEval // tradeID → resumen guardado
	mu    sync.Mutex
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada.
// Aplica el schema, limpia datos antiguos y precarga la cache.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	s := &SQLiteStorage{
		db:    db,
		cache: make(map[string]cachedEval),
	}
	s.pruneOld(context.Background())
	s.warmCache(context.Background())
	return s, nil
}

// SaveEvaluation hace upsert del resumen de ambos modos. Si el resumen no
// cambió respecto a la cache, no toca el disco: los valores at-the-time
// son inmutables y los hindsight solo se mueven con el mercado.
func (s *SQLiteStorage) SaveEvaluation(ctx context.Context, eval domain.TradeEvaluation) error {
	if eval.Trade.ID == "" {
		return fmt.Errorf("storage.SaveEvaluation: trade without id")
	}
	if !s.changed(eval) {
		return nil
	}

	at, now := eval.AtTheTime, eval.Hindsight
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO evaluations
			(trade_id, eval_id, partner_id, evaluated_at,
			 at_delta, at_percent, at_grade, at_confidence,
			 now_delta, now_percent, now_grade, now_confidence)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(trade_id) DO UPDATE SET
			eval_id        = excluded.eval_id,
			partner_id     = excluded.partner_id,
			evaluated_at   = excluded.evaluated_at,
			at_delta       = excluded.at_delta,
			at_percent     = excluded.at_percent,
			at_grade       = excluded.at_grade,
			at_confidence  = excluded.at_confidence,
			now_delta      = excluded.now_delta,
			now_percent    = excluded.now_percent,
			now_grade      = excluded.now_grade,
			now_confidence = excluded.now_confidence
	`,
		eval.Trade.ID, eval.ID, eval.Trade.PartnerID, eval.EvaluatedAt.UTC(),
		at.DeltaValue, at.PercentDiff, at.Grade, at.Confidence,
		now.DeltaValue, now.PercentDiff, now.Grade, now.Confidence,
	)
	if err != nil {
		return fmt.Errorf("storage.SaveEvaluation: upsert %s: %w", eval.Trade.ID, err)
	}
	return nil
}

// SaveCounterOptions persiste las contraofertas de una evaluación.
// Reemplaza las anteriores de la misma evaluación: solo interesa el
// último ranking.
func (s *SQLiteStorage) SaveCounterOptions(ctx context.Context, evalID string, options []domain.CounterOption) error {
	if len(options) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SaveCounterOptions: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM counter_options WHERE eval_id = ?`, evalID); err != nil {
		return fmt.Errorf("storage.SaveCounterOptions: clear previous: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO counter_options
			(id, eval_id, sweetener, kind, accept_prob, champ_delta, value_cost, score, explanation, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("storage.SaveCounterOptions: prepare: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, o := range options {
		if _, err := stmt.ExecContext(ctx,
			o.ID, evalID, o.Sweetener.Name, string(o.Sweetener.Type),
			o.AcceptProb, o.ChampDelta, o.ValueCost, o.Score, o.Explanation, now,
		); err != nil {
			return fmt.Errorf("storage.SaveCounterOptions: insert %s: %w", o.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.SaveCounterOptions: commit: %w", err)
	}
	return nil
}

// GetHistory devuelve los resúmenes evaluados en el rango dado, los más
// recientes primero.
func (s *SQLiteStorage) GetHistory(ctx context.Context, from, to time.Time) ([]domain.EvaluationRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT eval_id, trade_id, partner_id, evaluated_at,
		       at_delta, at_percent, at_grade, at_confidence,
		       now_delta, now_percent, now_grade, now_confidence
		FROM evaluations
		WHERE evaluated_at BETWEEN ? AND ?
		ORDER BY evaluated_at DESC
	`, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("storage.GetHistory: query: %w", err)
	}
	defer rows.Close()

	var records []domain.EvaluationRecord
	for rows.Next() {
		var r domain.EvaluationRecord
		var evaluatedAt string

		if err := rows.Scan(
			&r.ID, &r.TradeID, &r.PartnerID, &evaluatedAt,
			&r.AtDelta, &r.AtPercent, &r.AtGrade, &r.AtConfidence,
			&r.NowDelta, &r.NowPercent, &r.NowGrade, &r.NowConfidence,
		); err != nil {
			return nil, fmt.Errorf("storage.GetHistory: scan row: %w", err)
		}

		r.EvaluatedAt, _ = time.Parse(time.RFC3339, evaluatedAt)
		records = append(records, r)
	}

	return records, rows.Err()
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// --- helpers internos ---

// changed consulta y actualiza la cache en memoria. Devuelve true si el
// resumen del trade difiere del último guardado.
func (s *SQLiteStorage) changed(eval domain.TradeEvaluation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := cachedEval{
		nowDelta: eval.Hindsight.DeltaValue,
		nowGrade: eval.Hindsight.Grade,
	}
	if prev, ok := s.cache[eval.Trade.ID]; ok {
		unchanged := prev.nowGrade == next.nowGrade &&
			relChange(prev.nowDelta, next.nowDelta) < deltaChangePct
		if unchanged {
			return false
		}
	}
	s.cache[eval.Trade.ID] = next
	return true
}

// pruneOld elimina evaluaciones antiguas (y sus contraofertas huérfanas)
// para mantener la DB ligera.
func (s *SQLiteStorage) pruneOld(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-retentionEvals)
	s.db.ExecContext(ctx, `
		DELETE FROM counter_options WHERE eval_id IN
			(SELECT eval_id FROM evaluations WHERE evaluated_at < ?)
	`, cutoff)
	s.db.ExecContext(ctx, `DELETE FROM evaluations WHERE evaluated_at < ?`, cutoff)
}

// warmCache precarga la cache desde la DB al arrancar, evitando
// reescrituras redundantes en el primer replay tras un reinicio.
func (s *SQLiteStorage) warmCache(ctx context.Context) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT trade_id, now_delta, now_grade FROM evaluations`,
	)
	if err != nil {
		return
	}
	defer rows.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	for rows.Next() {
		var tradeID, grade string
		var delta float64
		if rows.Scan(&tradeID, &delta, &grade) == nil {
			s.cache[tradeID] = cachedEval{nowDelta: delta, nowGrade: grade}
		}
	}
}

// relChange devuelve el cambio relativo entre dos valores (0.0 – ∞).
func relChange(old, new float64) float64 {
	if old == 0 {
		return 1.0 // forzar escritura si antes era 0
	}
	return math.Abs(new-old) / math.Abs(old)
}
