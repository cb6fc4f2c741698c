package database

import (
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// MemoryPath opens a private in-memory database. Used by tests and dry runs.
const MemoryPath = ":memory:"

type Config struct {
	Path string
}

func DefaultConfig() Config {
	if p := os.Getenv("XNEWS_DB_PATH"); p != "" {
		return Config{Path: p}
	}

	// local default: ~/.xnews/xnews.db
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return Config{
		Path: filepath.Join(home, ".xnews", "xnews.db"),
	}
}

func (cfg Config) inMemory() bool {
	return cfg.Path == MemoryPath
}

// dsn enables foreign keys per connection; a single PRAGMA on the pool
// would only reach whichever connection happened to run it.
func (cfg Config) dsn() string {
	if cfg.inMemory() {
		return "file::memory:?_foreign_keys=on"
	}
	return "file:" + escapePath(cfg.Path) + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"
}

// escapePath percent-encodes each segment so '?', '#' and '%' in a file
// name survive the URI form; sqlite decodes them when opening.
func escapePath(p string) string {
	segs := strings.Split(filepath.ToSlash(p), "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}

func EnsureDataDir(cfg Config) error {
	if cfg.inMemory() {
		return nil
	}
	return os.MkdirAll(filepath.Dir(cfg.Path), 0o755)
}

func Open(cfg Config) (*sql.DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("open sqlite: empty path")
	}
	if err := EnsureDataDir(cfg); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.dsn())
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if cfg.inMemory() {
		// every new connection would see a fresh empty database
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

func MustOpen(cfg Config) *sql.DB {
	db, err := Open(cfg)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	return db
}
