// Package sqlite implements the SQLite storage backend for the wishlist.
// The database file in DataDir is the source of truth; JSONL files are an
// export and import format only.
package sqlite

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/wishlist/internal/textmatch"
	"github.com/mesh-intelligence/wishlist/pkg/types"
)

// DatabaseFile is the name of the SQLite file created inside DataDir.
const DatabaseFile = "wishlist.db"

// timeLayout is the layout used for timestamp columns.
const timeLayout = time.RFC3339Nano

var _ types.Cupboard = (*Backend)(nil)

// Backend implements the Cupboard interface on a single SQLite database.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	tables   map[string]types.Table
	sorter   *textmatch.Sorter
	log      logrus.FieldLogger
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for lifecycle and mutation events.
func WithLogger(l logrus.FieldLogger) Option {
	return func(b *Backend) {
		if l != nil {
			b.log = l
		}
	}
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(opts ...Option) *Backend {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	b := &Backend{
		tables: make(map[string]types.Table),
		log:    discard,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// GetTable returns a Table interface for the specified table name.
// Returns ErrTableNotFound if the table name is not recognized.
// Returns ErrCupboardDetached if the backend is not attached.
func (b *Backend) GetTable(name string) (types.Table, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrCupboardDetached
	}

	table, ok := b.tables[name]
	if !ok {
		return nil, types.ErrTableNotFound
	}
	return table, nil
}

// Attach opens (or creates) the database in config.DataDir and applies the
// schema. Existing data is kept. Returns ErrAlreadyAttached if already
// attached and a StorageError if the database cannot be opened.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return types.NewStorageError("creating data dir", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)
	db, err := openDB(dbPath)
	if err != nil {
		return types.NewStorageError("opening database", err)
	}

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return types.NewStorageError("applying schema", err)
		}
	}

	b.db = db
	b.config = config
	b.config.DataDir = dataDir
	b.sorter = textmatch.NewSorter(config.Locale)
	b.attached = true

	b.tables[types.TableCategories] = &categoriesTable{backend: b}
	b.tables[types.TableItems] = &itemsTable{backend: b}

	b.log.WithFields(logrus.Fields{
		"path":   dbPath,
		"locale": b.sorter.Locale(),
	}).Debug("cupboard attached")

	return nil
}

// openDB opens the database with foreign keys enforced. The pool is held
// to one connection: access is single threaded and pragmas are per
// connection.
func openDB(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Detach closes the SQLite connection. After Detach, all operations return
// ErrCupboardDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return types.NewStorageError("closing database", err)
		}
		b.db = nil
	}

	b.attached = false
	b.tables = make(map[string]types.Table)
	b.log.Debug("cupboard detached")

	return nil
}

// DataDir returns the directory the backend is attached to, or "" when
// detached.
func (b *Backend) DataDir() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return ""
	}
	return b.config.DataDir
}

// withTx runs fn in a write transaction. Errors from fn are returned as is
// and roll the transaction back; begin and commit failures are reported as
// StorageError. The caller must hold b.mu.
func (b *Backend) withTx(op string, fn func(tx *sql.Tx) error) error {
	tx, err := b.db.Begin()
	if err != nil {
		return types.NewStorageError(op, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return types.NewStorageError(op, err)
	}
	return nil
}

// newUUID generates a UUID v7 for entity IDs.
func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// toInt converts a filter value to int. JSON decoding yields float64, so
// whole floats are accepted.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
