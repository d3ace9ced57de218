package lib

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

// History stores interpreted equations in Postgres.
type History struct {
	db *sql.DB
}

type HistoryEntry struct {
	ID        int64
	Equation  string
	Outcome   string
	Value     string
	Error     string
	CreatedAt time.Time
}

// OpenHistory connects to Postgres. The interpretations table is created by
// the migrations in the migrations directory; see RunMigrations.
func OpenHistory(ctx context.Context, connectionString string) (*History, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "connecting to history database")
	}
	return &History{db: db}, nil
}

// DB exposes the underlying connection pool, e.g. for RunMigrations.
func (h *History) DB() *sql.DB {
	return h.db
}

func (h *History) Close() error {
	return h.db.Close()
}

// Record stores one interpretation. Exactly one of solution and interpErr is
// meaningful; interpErr wins when set.
func (h *History) Record(ctx context.Context, equation string, solution Solution, interpErr error) error {
	entry := historyEntryFor(equation, solution, interpErr)
	_, err := h.db.ExecContext(ctx,
		"INSERT INTO interpretations (equation, outcome, value, error) VALUES ($1, $2, $3, $4)",
		entry.Equation, entry.Outcome, nullable(entry.Value), nullable(entry.Error),
	)
	return errors.Wrap(err, "recording interpretation")
}

// Recent returns up to limit entries, newest first.
func (h *History) Recent(ctx context.Context, limit int) ([]HistoryEntry, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT id, equation, outcome, COALESCE(value, ''), COALESCE(error, ''), created_at
		FROM interpretations ORDER BY id DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, "listing interpretations")
	}
	defer rows.Close()

	entries := []HistoryEntry{}
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.Equation, &e.Outcome, &e.Value, &e.Error, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func historyEntryFor(equation string, solution Solution, interpErr error) HistoryEntry {
	entry := HistoryEntry{Equation: equation}
	if interpErr != nil {
		entry.Outcome = outcomeError
		entry.Error = interpErr.Error()
		return entry
	}
	entry.Outcome = solution.Kind.String()
	if solution.Kind == SolutionUnique && solution.Value != nil {
		entry.Value = solution.Value.RatString()
	}
	return entry
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
