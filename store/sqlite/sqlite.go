/*
Package sqlite provides a SQLite-backed implementation of attendance.Store.

PURPOSE:
  Persists the flat per-office document collection the dashboard uses: one
  row per presence document {user, tanggal, hadir} and one notes row per
  user {user, type: "catatan", catatan}. A single table with a doc_type
  discriminator models the original collection shape.

REPLACE-ALL SEMANTICS:
  Saving a presence record deletes every non-notes row for the user and
  reinserts the full current set inside one transaction. Notes are upserted.
  There is no incremental update path; last write wins.

MALFORMED ROWS:
  A row whose tanggal does not parse as YYYY-MM-DD is skipped with a warning
  log when loading. A corrupt or foreign-format row must never abort loading
  the rest of the user's history.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/kehadiran.db", logger)
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper migration
  tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - attendance/store.go: Interface definition and document shapes
  - attendance/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/rzlpil/attendance-engine/attendance"
)

// Store implements attendance.Store using SQLite.
type Store struct {
	db  *sql.DB
	log *zap.SugaredLogger
	mu  sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string, log *zap.SugaredLogger) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// All access is serialized behind the store's mutex; a single connection
	// also keeps ":memory:" databases from splitting across the pool.
	db.SetMaxOpenConns(1)

	if log == nil {
		log = zap.NewNop().Sugar()
	}

	store := &Store{db: db, log: log}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Flat document collection: presence rows and one notes row per user.
	CREATE TABLE IF NOT EXISTS documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user TEXT NOT NULL,
		doc_type TEXT NOT NULL,
		tanggal TEXT,
		hadir INTEGER,
		catatan TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_documents_user_type
		ON documents(user, doc_type);

	-- One presence row per user+date
	CREATE UNIQUE INDEX IF NOT EXISTS idx_documents_presence_day
		ON documents(user, tanggal)
		WHERE doc_type = 'kehadiran';

	-- One notes row per user
	CREATE UNIQUE INDEX IF NOT EXISTS idx_documents_notes
		ON documents(user)
		WHERE doc_type = 'catatan';
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// PRESENCE DOCUMENTS (attendance.Store interface)
// =============================================================================

// LoadPresence reconstructs the user's presence record, skipping the notes
// document and any row whose tanggal does not parse.
func (s *Store) LoadPresence(ctx context.Context, user string) (attendance.PresenceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT tanggal, hadir FROM documents
		WHERE user = ? AND doc_type = ?
		ORDER BY tanggal ASC
	`, user, attendance.DocTypePresence)
	if err != nil {
		return nil, fmt.Errorf("failed to query presence documents: %w", err)
	}
	defer rows.Close()

	rec := attendance.PresenceRecord{}
	for rows.Next() {
		var (
			tanggal sql.NullString
			hadir   sql.NullBool
		)
		if err := rows.Scan(&tanggal, &hadir); err != nil {
			return nil, fmt.Errorf("failed to scan presence document: %w", err)
		}

		date, err := attendance.ParseDate(tanggal.String)
		if err != nil {
			// A corrupt row must not abort loading the rest of the history.
			s.log.Warnw("skipping malformed presence document",
				"user", user, "tanggal", tanggal.String, "error", err)
			continue
		}

		var hadirPtr *bool
		if hadir.Valid {
			hadirPtr = &hadir.Bool
		}
		rec[date] = attendance.StatusFromHadir(hadirPtr)
	}

	return rec, rows.Err()
}

// ReplacePresence deletes every non-notes document for the user and
// reinserts the full record, atomically.
func (s *Store) ReplacePresence(ctx context.Context, user string, rec attendance.PresenceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM documents WHERE user = ? AND doc_type != ?
	`, user, attendance.DocTypeNotes); err != nil {
		return fmt.Errorf("failed to clear presence documents: %w", err)
	}

	dates := make([]attendance.Date, 0, len(rec))
	for d := range rec {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	now := time.Now().UTC().Format(time.RFC3339)
	for _, d := range dates {
		var hadir any
		if v := attendance.HadirValue(rec[d]); v != nil {
			hadir = *v
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO documents (user, doc_type, tanggal, hadir, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, user, attendance.DocTypePresence, d.String(), hadir, now); err != nil {
			return fmt.Errorf("failed to insert presence document: %w", err)
		}
	}

	return tx.Commit()
}

// =============================================================================
// NOTES DOCUMENT
// =============================================================================

// LoadNotes returns the user's notes, or "" when none are stored.
func (s *Store) LoadNotes(ctx context.Context, user string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var catatan sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT catatan FROM documents WHERE user = ? AND doc_type = ?
	`, user, attendance.DocTypeNotes).Scan(&catatan)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query notes document: %w", err)
	}
	return catatan.String, nil
}

// SaveNotes upserts the user's single notes document.
func (s *Store) SaveNotes(ctx context.Context, user string, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)

	res, err := s.db.ExecContext(ctx, `
		UPDATE documents SET catatan = ? WHERE user = ? AND doc_type = ?
	`, notes, user, attendance.DocTypeNotes)
	if err != nil {
		return fmt.Errorf("failed to update notes document: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (user, doc_type, catatan, created_at)
		VALUES (?, ?, ?, ?)
	`, user, attendance.DocTypeNotes, notes, now)
	if err != nil {
		return fmt.Errorf("failed to insert notes document: %w", err)
	}
	return nil
}

// Users lists every user with at least one stored document.
func (s *Store) Users(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT user FROM documents ORDER BY user ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Compile-time check that Store implements attendance.Store.
var _ attendance.Store = (*Store)(nil)
