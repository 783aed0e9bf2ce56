package audit

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/pario-ai/ragchat/pkg/models"
	_ "modernc.org/sqlite"
)

// Logger writes and queries chat exchanges in a dedicated SQLite database.
type Logger struct {
	db   *sql.DB
	cfg  models.AuditConfig
	now  func() time.Time
	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

// New opens the audit SQLite database and creates the schema.
func New(cfg models.AuditConfig) (*Logger, error) {
	db, err := sql.Open("sqlite", cfg.DBPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate audit db: %w", err)
	}

	l := &Logger{
		db:   db,
		cfg:  cfg,
		now:  time.Now,
		done: make(chan struct{}),
	}

	l.wg.Add(1)
	go l.retentionLoop()

	return l, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS exchanges (
		id             TEXT PRIMARY KEY,
		question       TEXT NOT NULL,
		question_hash  TEXT NOT NULL,
		strategy       TEXT NOT NULL,
		status         TEXT NOT NULL,
		answer         TEXT,
		error_message  TEXT,
		source_count   INTEGER NOT NULL DEFAULT 0,
		cached         INTEGER NOT NULL DEFAULT 0,
		latency_ms     INTEGER NOT NULL DEFAULT 0,
		created_at     INTEGER NOT NULL
	)`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_exchanges_status ON exchanges(status)`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_exchanges_created ON exchanges(created_at)`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_exchanges_qhash ON exchanges(question_hash)`)
	return err
}

// Log inserts an exchange. Answers are dropped unless IncludeAnswers is set
// and truncated to MaxAnswerSize bytes. A nil Logger discards everything.
func (l *Logger) Log(ctx context.Context, e models.Exchange) error {
	if l == nil || l.db == nil {
		return nil
	}

	answer := e.Answer
	if !l.cfg.IncludeAnswers {
		answer = ""
	}
	if l.cfg.MaxAnswerSize > 0 {
		answer = truncateUTF8(answer, l.cfg.MaxAnswerSize)
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = l.now()
	}

	_, err := l.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO exchanges
		(id, question, question_hash, strategy, status, answer, error_message,
		 source_count, cached, latency_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Question, HashQuestion(e.Question), e.Strategy, e.Status,
		answer, e.ErrorMessage, e.SourceCount, e.Cached, e.LatencyMs,
		e.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("log exchange: %w", err)
	}
	return nil
}

// Query returns exchanges matching the given filters, newest first.
func (l *Logger) Query(ctx context.Context, opts models.ExchangeQuery) ([]models.Exchange, error) {
	q := `SELECT id, question, strategy, status, answer, error_message,
		source_count, cached, latency_ms, created_at
		FROM exchanges WHERE 1=1`
	var args []any

	if opts.ID != "" {
		q += " AND id = ?"
		args = append(args, opts.ID)
	}
	if opts.Status != "" {
		q += " AND status = ?"
		args = append(args, opts.Status)
	}
	if opts.Strategy != "" {
		q += " AND strategy = ?"
		args = append(args, opts.Strategy)
	}
	if opts.Contains != "" {
		q += " AND question LIKE ? ESCAPE '\\'"
		args = append(args, "%"+escapeLike(opts.Contains)+"%")
	}
	if !opts.Since.IsZero() {
		q += " AND created_at >= ?"
		args = append(args, opts.Since.UnixMilli())
	}

	q += " ORDER BY created_at DESC"

	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}
	q += " LIMIT ?"
	args = append(args, limit)

	rows, err := l.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query exchanges: %w", err)
	}
	defer rows.Close()

	var out []models.Exchange
	for rows.Next() {
		var e models.Exchange
		var answer, errMsg sql.NullString
		var created int64
		if err := rows.Scan(
			&e.ID, &e.Question, &e.Strategy, &e.Status, &answer, &errMsg,
			&e.SourceCount, &e.Cached, &e.LatencyMs, &created,
		); err != nil {
			return nil, fmt.Errorf("scan exchange row: %w", err)
		}
		e.Answer = answer.String
		e.ErrorMessage = errMsg.String
		e.CreatedAt = time.UnixMilli(created)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Stats returns exchange counts grouped by status and UTC day.
func (l *Logger) Stats(ctx context.Context) ([]models.ExchangeStat, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT status, date(created_at / 1000, 'unixepoch') AS day, count(*) AS cnt
		 FROM exchanges GROUP BY status, day ORDER BY day DESC, status`)
	if err != nil {
		return nil, fmt.Errorf("exchange stats: %w", err)
	}
	defer rows.Close()

	var stats []models.ExchangeStat
	for rows.Next() {
		var s models.ExchangeStat
		var day sql.NullString
		if err := rows.Scan(&s.Status, &day, &s.Count); err != nil {
			return nil, fmt.Errorf("scan exchange stat: %w", err)
		}
		s.Day = day.String
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// TopQuestions returns the most frequently asked questions. Questions that
// differ only in case or spacing count as one.
func (l *Logger) TopQuestions(ctx context.Context, limit int) ([]models.QuestionCount, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT min(question), count(*) AS cnt FROM exchanges
		 GROUP BY question_hash ORDER BY cnt DESC, min(question) LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("top questions: %w", err)
	}
	defer rows.Close()

	var out []models.QuestionCount
	for rows.Next() {
		var qc models.QuestionCount
		if err := rows.Scan(&qc.Question, &qc.Count); err != nil {
			return nil, fmt.Errorf("scan question count: %w", err)
		}
		out = append(out, qc)
	}
	return out, rows.Err()
}

// Cleanup deletes exchanges older than the configured retention period.
func (l *Logger) Cleanup(ctx context.Context) (int64, error) {
	cutoff := l.now().AddDate(0, 0, -l.cfg.RetentionDays)
	res, err := l.db.ExecContext(ctx,
		`DELETE FROM exchanges WHERE created_at < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("exchange cleanup: %w", err)
	}
	return res.RowsAffected()
}

// Close stops the retention goroutine and closes the database.
func (l *Logger) Close() error {
	l.once.Do(func() { close(l.done) })
	l.wg.Wait()
	return l.db.Close()
}

func (l *Logger) retentionLoop() {
	defer l.wg.Done()
	if l.cfg.RetentionDays <= 0 {
		<-l.done
		return
	}
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			_, _ = l.Cleanup(context.Background())
		}
	}
}

// HashQuestion returns the SHA-256 hex hash of a question after folding
// case and whitespace.
func HashQuestion(q string) string {
	norm := strings.ToLower(strings.Join(strings.Fields(q), " "))
	h := sha256.Sum256([]byte(norm))
	return hex.EncodeToString(h[:])
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
