package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/clipr-cli/internal/core/domain"
	"github.com/custodia-labs/clipr-cli/internal/core/ports/driven"
	"github.com/custodia-labs/clipr-cli/internal/logger"
)

// schema is the full database layout. Snapshot-style persistence keeps it
// deliberately flat: each save rewrites the tables inside one transaction.
const schema = `
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS clips (
	id          INTEGER PRIMARY KEY,
	kind        INTEGER NOT NULL,
	text        TEXT NOT NULL DEFAULT '',
	data        BLOB,
	mime        TEXT NOT NULL DEFAULT '',
	captured_at INTEGER NOT NULL,
	pinned      INTEGER NOT NULL DEFAULT 0,
	register    INTEGER NOT NULL DEFAULT 0,
	fingerprint INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS registers (
	name         INTEGER PRIMARY KEY,
	kind         INTEGER NOT NULL,
	content_kind INTEGER NOT NULL DEFAULT 0,
	text         TEXT NOT NULL DEFAULT '',
	data         BLOB,
	mime         TEXT NOT NULL DEFAULT '',
	created_at   INTEGER NOT NULL,
	updated_at   INTEGER NOT NULL
);
`

// Store is the SQLite-backed persistence layer. It exposes the history
// and register store ports through wrapper types sharing one connection.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the database at the specified data
// directory. If dataDir is empty, defaults to ~/.local/share/clipr.
// A database that cannot be opened or migrated is moved aside and
// recreated empty; persistence problems never block startup.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share", "clipr")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")
	db, err := open(dbPath)
	if err != nil {
		logger.Warn("database unreadable, recreating: %v", err)
		if err := quarantine(dbPath); err != nil {
			return nil, err
		}
		db, err = open(dbPath)
		if err != nil {
			return nil, fmt.Errorf("recreating database: %w", err)
		}
	}

	return &Store{db: db, path: dbPath}, nil
}

func open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	if err := checkFormatVersion(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// quarantine moves a corrupt database file out of the way, keeping it for
// inspection instead of deleting it.
func quarantine(dbPath string) error {
	backup := dbPath + ".corrupt." + time.Now().Format("20060102T150405")
	if err := os.Rename(dbPath, backup); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("moving corrupt database aside: %w", err)
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		_ = os.Remove(dbPath + suffix)
	}
	logger.Warn("corrupt database moved to %s", backup)
	return nil
}

func checkFormatVersion(db *sql.DB) error {
	var value string
	err := db.QueryRow(`SELECT value FROM meta WHERE key = 'format_version'`).Scan(&value)
	if err == sql.ErrNoRows {
		_, err = db.Exec(`INSERT INTO meta (key, value) VALUES ('format_version', ?)`,
			strconv.Itoa(domain.FormatVersion))
		return err
	}
	if err != nil {
		return fmt.Errorf("reading format version: %w", err)
	}
	version, err := strconv.Atoi(value)
	if err != nil || version > domain.FormatVersion {
		return fmt.Errorf("unsupported format version %q", value)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// HistoryStore returns a HistoryStore interface backed by this store.
func (s *Store) HistoryStore() driven.HistoryStore {
	return &historyStore{store: s}
}

// RegisterStore returns a RegisterStore interface backed by this store.
func (s *Store) RegisterStore() driven.RegisterStore {
	return &registerStore{store: s}
}

// historyStore implements driven.HistoryStore on the shared connection.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

// Load reads all persisted clips. Errors propagate; the history service
// treats a failed load as an empty history.
func (h *historyStore) Load(ctx context.Context) ([]domain.Clip, error) {
	rows, err := h.store.db.QueryContext(ctx,
		`SELECT id, kind, text, data, mime, captured_at, pinned, register, fingerprint
		 FROM clips ORDER BY captured_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying clips: %w", err)
	}
	defer rows.Close()

	var clips []domain.Clip
	for rows.Next() {
		var (
			clip       domain.Clip
			kind       int
			data       []byte
			capturedAt int64
			pinned     int
			register   int
			fp         int64
		)
		if err := rows.Scan(&clip.ID, &kind, &clip.Content.Text, &data, &clip.Content.MIME,
			&capturedAt, &pinned, &register, &fp); err != nil {
			return nil, fmt.Errorf("scanning clip: %w", err)
		}
		clip.Content.Kind = domain.ContentKind(kind)
		clip.Content.Data = data
		clip.CapturedAt = time.Unix(0, capturedAt)
		clip.Pinned = pinned != 0
		clip.Register = byte(register)
		clip.Fingerprint = uint64(fp)
		clips = append(clips, clip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading clips: %w", err)
	}
	return clips, nil
}

// Save atomically replaces the persisted clip snapshot.
func (h *historyStore) Save(ctx context.Context, clips []domain.Clip) error {
	tx, err := h.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM clips`); err != nil {
		return fmt.Errorf("clearing clips: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO clips (id, kind, text, data, mime, captured_at, pinned, register, fingerprint)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, clip := range clips {
		pinned := 0
		if clip.Pinned {
			pinned = 1
		}
		if _, err := stmt.ExecContext(ctx,
			clip.ID, int(clip.Content.Kind), clip.Content.Text, clip.Content.Data,
			clip.Content.MIME, clip.CapturedAt.UnixNano(), pinned,
			int(clip.Register), int64(clip.Fingerprint)); err != nil {
			return fmt.Errorf("inserting clip %d: %w", clip.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing clips: %w", err)
	}
	return nil
}

// registerStore implements driven.RegisterStore on the shared connection.
type registerStore struct {
	store *Store
}

var _ driven.RegisterStore = (*registerStore)(nil)

// Load reads all persisted temporary registers.
func (r *registerStore) Load(ctx context.Context) ([]domain.Register, error) {
	rows, err := r.store.db.QueryContext(ctx,
		`SELECT name, kind, content_kind, text, data, mime, created_at, updated_at
		 FROM registers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying registers: %w", err)
	}
	defer rows.Close()

	var regs []domain.Register
	for rows.Next() {
		var (
			reg         domain.Register
			name        int
			kind        int
			contentKind int
			data        []byte
			createdAt   int64
			updatedAt   int64
		)
		if err := rows.Scan(&name, &kind, &contentKind, &reg.Content.Text, &data,
			&reg.Content.MIME, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning register: %w", err)
		}
		reg.Name = byte(name)
		reg.Kind = domain.RegisterKind(kind)
		reg.Content.Kind = domain.ContentKind(contentKind)
		reg.Content.Data = data
		reg.CreatedAt = time.Unix(0, createdAt)
		reg.UpdatedAt = time.Unix(0, updatedAt)
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading registers: %w", err)
	}
	return regs, nil
}

// Save atomically replaces the persisted register snapshot.
func (r *registerStore) Save(ctx context.Context, registers []domain.Register) error {
	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM registers`); err != nil {
		return fmt.Errorf("clearing registers: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO registers (name, kind, content_kind, text, data, mime, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, reg := range registers {
		if _, err := stmt.ExecContext(ctx,
			int(reg.Name), int(reg.Kind), int(reg.Content.Kind), reg.Content.Text,
			reg.Content.Data, reg.Content.MIME, reg.CreatedAt.UnixNano(),
			reg.UpdatedAt.UnixNano()); err != nil {
			return fmt.Errorf("inserting register %q: %w", string(reg.Name), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing registers: %w", err)
	}
	return nil
}
