// Package history persists answered chat requests in SQLite for
// reporting and quota accounting.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/esil-events/chatbot/pkg/models"
)

// Log records and queries the chat history.
type Log interface {
	// Record stores one answered request.
	Record(ctx context.Context, rec models.ChatRecord) error
	// CountSince returns the number of recorded requests created at or
	// after a given time, excluding cache hits.
	CountSince(ctx context.Context, since time.Time) (int64, error)
	// Stats returns per-day aggregates grouped by intent.
	Stats(ctx context.Context, since time.Time) ([]models.ChatStat, error)
	// Recent returns the newest records, most recent first.
	Recent(ctx context.Context, limit int) ([]models.ChatRecord, error)
	// Close releases resources.
	Close() error
}

// SQLiteLog implements Log with a SQLite database.
type SQLiteLog struct {
	db *sql.DB
}

const createTable = `
CREATE TABLE IF NOT EXISTS chat_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	question TEXT NOT NULL,
	intent TEXT NOT NULL,
	cache_hit INTEGER NOT NULL DEFAULT 0,
	product_count INTEGER NOT NULL DEFAULT 0,
	response_len INTEGER NOT NULL DEFAULT 0,
	status_code INTEGER NOT NULL DEFAULT 0,
	latency_ms INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_chat_log_time ON chat_log(created_at);
`

// New opens the history database and runs auto-migration.
func New(dbPath string) (*SQLiteLog, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}

	return &SQLiteLog{db: db}, nil
}

// Record stores one answered request.
func (l *SQLiteLog) Record(ctx context.Context, rec models.ChatRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO chat_log (question, intent, cache_hit, product_count, response_len, status_code, latency_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Question, string(rec.Intent), rec.CacheHit, rec.ProductCount, rec.ResponseLen, rec.StatusCode, rec.LatencyMs, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record chat: %w", err)
	}
	return nil
}

// CountSince counts requests that hit the generative API since a given
// time. Cache hits are free and do not count.
func (l *SQLiteLog) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := l.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM chat_log WHERE created_at >= ? AND cache_hit = 0`,
		since,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count chat: %w", err)
	}
	return n, nil
}

// Stats returns per-day aggregates grouped by intent.
func (l *SQLiteLog) Stats(ctx context.Context, since time.Time) ([]models.ChatStat, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT intent, date(created_at), COUNT(*), SUM(cache_hit), AVG(latency_ms)
		 FROM chat_log WHERE created_at >= ?
		 GROUP BY intent, date(created_at) ORDER BY date(created_at) DESC, intent`,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("chat stats: %w", err)
	}
	defer rows.Close()

	var stats []models.ChatStat
	for rows.Next() {
		var s models.ChatStat
		var intent string
		if err := rows.Scan(&intent, &s.Day, &s.Requests, &s.CacheHits, &s.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan chat stat: %w", err)
		}
		s.Intent = models.Intent(intent)
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// Recent returns the newest records, most recent first.
func (l *SQLiteLog) Recent(ctx context.Context, limit int) ([]models.ChatRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, question, intent, cache_hit, product_count, response_len, status_code, latency_ms, created_at
		 FROM chat_log ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent chats: %w", err)
	}
	defer rows.Close()

	var records []models.ChatRecord
	for rows.Next() {
		var r models.ChatRecord
		var intent string
		if err := rows.Scan(&r.ID, &r.Question, &intent, &r.CacheHit, &r.ProductCount, &r.ResponseLen, &r.StatusCode, &r.LatencyMs, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chat record: %w", err)
		}
		r.Intent = models.Intent(intent)
		records = append(records, r)
	}
	return records, rows.Err()
}

// Close releases the database connection.
func (l *SQLiteLog) Close() error {
	return l.db.Close()
}
