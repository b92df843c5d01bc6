// Package store persists finished match results in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/peterkuimelis/tcgpocket/internal/game"
	"github.com/peterkuimelis/tcgpocket/internal/store/migrations"
)

var (
	// ErrNotFound indicates a requested match result is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a match result with the same ID was already stored.
	ErrAlreadyExists = errors.New("record already exists")
)

// MatchRecord is one finished match.
type MatchRecord struct {
	ID        string
	BatchID   string
	Deck0     string
	Deck1     string
	Agent0    string
	Agent1    string
	Seed      int64
	Result    game.Result
	CreatedAt time.Time
}

// DeckStanding aggregates the results of one deck across stored matches.
type DeckStanding struct {
	Deck   string `json:"deck"`
	Played int    `json:"played"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Ties   int    `json:"ties"`
}

// WinRate returns wins over played, or 0 with no matches.
func (d DeckStanding) WinRate() float64 {
	if d.Played == 0 {
		return 0
	}
	return float64(d.Wins) / float64(d.Played)
}

// Store persists match results in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite results store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// applyMigrations executes every embedded .sql file at most once, in name order.
func applyMigrations(sqlDB *sql.DB, migrationFS fs.FS) error {
	if _, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
)`); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, file := range files {
		var applied int
		if err := sqlDB.QueryRow(`SELECT COUNT(1) FROM schema_migrations WHERE name = ?`, file).Scan(&applied); err != nil {
			return fmt.Errorf("check migration %s: %w", file, err)
		}
		if applied > 0 {
			continue
		}
		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}

		tx, err := sqlDB.BeginTx(context.Background(), nil)
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", file, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", file, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (name, applied_at) VALUES (?, ?)`, file, toMillis(time.Now())); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", file, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", file, err)
		}
	}
	return nil
}

// SaveResult inserts one match result. An empty ID is filled with a new UUID, and the stored
// ID is returned.
func (s *Store) SaveResult(ctx context.Context, rec MatchRecord) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s == nil || s.sqlDB == nil {
		return "", fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(rec.Deck0) == "" || strings.TrimSpace(rec.Deck1) == "" {
		return "", fmt.Errorf("deck names are required")
	}
	if rec.Result.Winner == game.NoWinner {
		return "", fmt.Errorf("match has no result")
	}
	id := strings.TrimSpace(rec.ID)
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO match_results (
		   id, batch_id, deck0, deck1, agent0, agent1, seed,
		   winner, turns, points0, points1, reason, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		rec.BatchID,
		rec.Deck0,
		rec.Deck1,
		rec.Agent0,
		rec.Agent1,
		rec.Seed,
		rec.Result.Winner,
		rec.Result.Turns,
		rec.Result.Points[0],
		rec.Result.Points[1],
		rec.Result.Reason,
		toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return "", ErrAlreadyExists
		}
		return "", fmt.Errorf("save match result: %w", err)
	}
	return id, nil
}

const selectColumns = `id, batch_id, deck0, deck1, agent0, agent1, seed, winner, turns, points0, points1, reason, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (MatchRecord, error) {
	var (
		rec       MatchRecord
		createdAt int64
	)
	err := row.Scan(
		&rec.ID,
		&rec.BatchID,
		&rec.Deck0,
		&rec.Deck1,
		&rec.Agent0,
		&rec.Agent1,
		&rec.Seed,
		&rec.Result.Winner,
		&rec.Result.Turns,
		&rec.Result.Points[0],
		&rec.Result.Points[1],
		&rec.Result.Reason,
		&createdAt,
	)
	if err != nil {
		return MatchRecord{}, err
	}
	rec.CreatedAt = fromMillis(createdAt)
	return rec, nil
}

// GetResult returns one match result by ID.
func (s *Store) GetResult(ctx context.Context, id string) (MatchRecord, error) {
	if err := ctx.Err(); err != nil {
		return MatchRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return MatchRecord{}, fmt.Errorf("storage is not configured")
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM match_results WHERE id = ?`, strings.TrimSpace(id))
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return MatchRecord{}, ErrNotFound
		}
		return MatchRecord{}, fmt.Errorf("get match result: %w", err)
	}
	return rec, nil
}

// ListResults returns the newest results first. A non-empty batchID restricts the list to
// one batch; limit <= 0 means no limit.
func (s *Store) ListResults(ctx context.Context, batchID string, limit int) ([]MatchRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	query := `SELECT ` + selectColumns + ` FROM match_results`
	var args []any
	if batchID != "" {
		query += ` WHERE batch_id = ?`
		args = append(args, batchID)
	}
	query += ` ORDER BY created_at DESC, id`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list match results: %w", err)
	}
	defer rows.Close()

	var out []MatchRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan match result: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate match results: %w", err)
	}
	return out, nil
}

// Standings aggregates the stored results of one batch (all batches when batchID is empty).
func (s *Store) Standings(ctx context.Context, batchID string) ([]DeckStanding, error) {
	records, err := s.ListResults(ctx, batchID, 0)
	if err != nil {
		return nil, err
	}
	return Tally(records), nil
}

// Tally aggregates wins, losses, and ties per deck, best win rate first. A mirror match counts
// for both seats.
func Tally(records []MatchRecord) []DeckStanding {
	byDeck := make(map[string]*DeckStanding)
	get := func(name string) *DeckStanding {
		d, ok := byDeck[name]
		if !ok {
			d = &DeckStanding{Deck: name}
			byDeck[name] = d
		}
		return d
	}
	for _, rec := range records {
		decks := [2]string{rec.Deck0, rec.Deck1}
		for seat, name := range decks {
			d := get(name)
			d.Played++
			switch rec.Result.Winner {
			case seat:
				d.Wins++
			case game.Tie:
				d.Ties++
			default:
				d.Losses++
			}
		}
	}

	out := make([]DeckStanding, 0, len(byDeck))
	for _, d := range byDeck {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WinRate() != out[j].WinRate() {
			return out[i].WinRate() > out[j].WinRate()
		}
		return out[i].Deck < out[j].Deck
	})
	return out
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
