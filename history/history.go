// Package history persists interactive shell commands in SQLite so a REPL
// session can recall and re-run earlier commands.
package history

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/rpnesseling/adbw/utils"
)

// RecallLimit is how many entries !history shows and !<N> indexes into.
const RecallLimit = 50

const schema = `
CREATE TABLE IF NOT EXISTS shell_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	serial TEXT,
	command TEXT,
	executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`

// Entry is one recorded shell command.
type Entry struct {
	ID         int64  `json:"id"`
	Serial     string `json:"serial"`
	Command    string `json:"command"`
	ExecutedAt string `json:"executedAt"`
}

// History is a handle to the on-disk shell history.
type History struct {
	db *sql.DB
}

// Open creates or opens <dir>/history.db.
func Open(dir string) (*History, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)",
		filepath.Join(dir, "history.db"))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %v", err)
	}
	// a single connection sidesteps SQLITE_BUSY between writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %v", err)
	}
	return &History{db: db}, nil
}

// Close releases the database handle.
func (h *History) Close() error {
	return h.db.Close()
}

// Add records a command run against a device.
func (h *History) Add(serial, command string) error {
	_, err := h.db.Exec("INSERT INTO shell_history (serial, command) VALUES (?, ?)", serial, command)
	if err != nil {
		return fmt.Errorf("failed to record history: %v", err)
	}
	return nil
}

// Recent returns up to limit newest entries, oldest first, so the caller can
// number them 1..n the way a shell history listing does.
func (h *History) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = RecallLimit
	}

	rows, err := h.db.Query(
		"SELECT id, serial, command, executed_at FROM shell_history ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %v", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Serial, &e.Command, &e.ExecutedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %v", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// reverse to oldest-first
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// Get returns the command at 1-based position n of the Recent listing.
func (h *History) Get(n int) (string, error) {
	entries, err := h.Recent(RecallLimit)
	if err != nil {
		return "", err
	}
	if n < 1 || n > len(entries) {
		return "", fmt.Errorf("history entry %d does not exist, run !history to see the list", n)
	}
	return entries[n-1].Command, nil
}
