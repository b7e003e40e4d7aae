package cache

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"RiskRange/internal/model"
)

// SQLiteCache persists fetched series to a SQLite database with a freshness TTL.
type SQLiteCache struct {
	db  *sql.DB
	ttl time.Duration
	mu  sync.Mutex
}

// NewSQLiteCache opens (or creates) the database and runs migrations. Entries
// older than ttl are treated as misses; ttl <= 0 never expires.
func NewSQLiteCache(dbPath string, ttl time.Duration) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	c := &SQLiteCache{db: db, ttl: ttl}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite cache opened")
	return c, nil
}

func (c *SQLiteCache) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS series_meta (
			symbol     TEXT NOT NULL,
			years      INTEGER NOT NULL,
			fetched_at INTEGER NOT NULL,
			PRIMARY KEY (symbol, years)
		)`,
		`CREATE TABLE IF NOT EXISTS bars (
			symbol TEXT NOT NULL,
			years  INTEGER NOT NULL,
			date   INTEGER NOT NULL,
			open   REAL,
			high   REAL,
			low    REAL,
			close  REAL,
			volume REAL,
			PRIMARY KEY (symbol, years, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bars_symbol ON bars(symbol, years)`,
	}
	for _, s := range stmts {
		if _, err := c.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (c *SQLiteCache) Load(symbol string, years int) (*model.PriceSeries, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var fetchedAt int64
	err := c.db.QueryRow(
		`SELECT fetched_at FROM series_meta WHERE symbol = ? AND years = ?`,
		symbol, years,
	).Scan(&fetchedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query meta: %w", err)
	}

	fetched := time.Unix(fetchedAt, 0).UTC()
	if c.ttl > 0 && time.Since(fetched) > c.ttl {
		return nil, false, nil
	}

	rows, err := c.db.Query(
		`SELECT date, open, high, low, close, volume
		 FROM bars WHERE symbol = ? AND years = ? ORDER BY date`,
		symbol, years,
	)
	if err != nil {
		return nil, false, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()

	series := &model.PriceSeries{Symbol: symbol, FetchedAt: fetched}
	for rows.Next() {
		var date int64
		var b model.PriceBar
		if err := rows.Scan(&date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, false, fmt.Errorf("scan bar: %w", err)
		}
		b.Date = time.Unix(date, 0).UTC()
		series.Bars = append(series.Bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate bars: %w", err)
	}
	if len(series.Bars) == 0 {
		return nil, false, nil
	}
	return series, true, nil
}

func (c *SQLiteCache) Store(series *model.PriceSeries, years int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`DELETE FROM bars WHERE symbol = ? AND years = ?`,
		series.Symbol, years,
	); err != nil {
		return fmt.Errorf("clear bars: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO bars (symbol, years, date, open, high, low, close, volume)
		 VALUES (?,?,?,?,?,?,?,?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range series.Bars {
		if _, err := stmt.Exec(
			series.Symbol, years, b.Date.Unix(),
			b.Open, b.High, b.Low, b.Close, b.Volume,
		); err != nil {
			return fmt.Errorf("insert bar: %w", err)
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO series_meta (symbol, years, fetched_at) VALUES (?,?,?)
		 ON CONFLICT (symbol, years) DO UPDATE SET fetched_at = excluded.fetched_at`,
		series.Symbol, years, series.FetchedAt.Unix(),
	); err != nil {
		return fmt.Errorf("upsert meta: %w", err)
	}

	return tx.Commit()
}

func (c *SQLiteCache) Close() error {
	log.Debug().Msg("closing sqlite cache")
	return c.db.Close()
}
