package store

import (
	"database/sql"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// Backend is a durable key-value store holding one JSON document per key.
type Backend interface {
	// Read returns the stored value and whether the key exists.
	Read(key string) ([]byte, bool, error)
	Write(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// SQLiteBackend persists keys in a single kv table.
type SQLiteBackend struct {
	conn *sql.DB
}

// OpenSQLite opens (or creates) the state database at path.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	b := &SQLiteBackend{conn: conn}
	if err := b.init(); err != nil {
		conn.Close()
		return nil, err
	}
	return b, nil
}

func (b *SQLiteBackend) init() error {
	_, err := b.conn.Exec(`
	CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`)
	return err
}

func (b *SQLiteBackend) Read(key string) ([]byte, bool, error) {
	var value string
	err := b.conn.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (b *SQLiteBackend) Write(key string, value []byte) error {
	_, err := b.conn.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, string(value),
	)
	return err
}

func (b *SQLiteBackend) Delete(key string) error {
	_, err := b.conn.Exec("DELETE FROM kv WHERE key = ?", key)
	return err
}

func (b *SQLiteBackend) Close() error {
	return b.conn.Close()
}

// MemoryBackend is an in-memory Backend used in tests and as a fallback when
// no durable path is available.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

func (b *MemoryBackend) Read(key string) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (b *MemoryBackend) Write(key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	b.data[key] = v
	return nil
}

func (b *MemoryBackend) Delete(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.data, key)
	return nil
}

func (b *MemoryBackend) Close() error {
	return nil
}
