package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"vedetta/internal/domain"
	"vedetta/internal/ports"

	_ "modernc.org/sqlite"
)

// dateFormat is the on-disk timestamp layout. The page_open table is a
// compatibility surface: external report queries read these two text
// columns directly, so the layout must stay lexicographically sortable.
const dateFormat = time.RFC3339

// History implements ports.HistoryStore using SQLite
type History struct {
	db     *sql.DB
	dbPath string
}

// Ensure History implements HistoryStore
var _ ports.HistoryStore = (*History)(nil)

// NewHistory creates a new SQLite history store
func NewHistory() *History {
	return &History{}
}

// DefaultPath returns the default database location under the XDG data
// directory.
func DefaultPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "vedetta", "history.db")
}

// Open initializes the store at the given path, creating the schema on
// first use.
func (h *History) Open(path string) error {
	// Expand ~ in path
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	h.dbPath = path

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	h.db = db

	// Pragmas + schema in a single batch. The page/page_open layout is
	// shared with the external report queries and must not change.
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS page (
			name TEXT PRIMARY KEY
		);
		CREATE TABLE IF NOT EXISTS page_open (
			name TEXT,
			date TEXT,
			PRIMARY KEY (name, date),
			FOREIGN KEY (name) REFERENCES page (name)
		);
		CREATE INDEX IF NOT EXISTS page_name_index ON page (name);
		CREATE INDEX IF NOT EXISTS page_open_name_date_index ON page_open (name, date);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	return nil
}

// Close closes the database connection
func (h *History) Close() error {
	if h.db != nil {
		return h.db.Close()
	}
	return nil
}

// HasBeenOpened reports whether any open event exists for the page
func (h *History) HasBeenOpened(name domain.PageName) (bool, error) {
	var one int
	err := h.db.QueryRow(`SELECT 1 FROM page_open WHERE name = ? LIMIT 1`, string(name)).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// RecordOpen appends one open event. The page catalog row and the event
// commit together: either both are durable or the call fails.
func (h *History) RecordOpen(name domain.PageName, at time.Time) error {
	tx, err := h.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT OR IGNORE INTO page (name) VALUES (?)`, string(name)); err != nil {
		return err
	}
	if _, err := tx.Exec(`INSERT INTO page_open (name, date) VALUES (?, ?)`,
		string(name), at.UTC().Format(dateFormat)); err != nil {
		return err
	}

	return tx.Commit()
}

// Aggregate returns the per-page activity view. Grouping happens in
// SQL; discussion folding and rate math happen in the domain so the
// two report variants share one query.
func (h *History) Aggregate(opts ports.AggregateOptions) ([]domain.PageActivity, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	rows, err := h.db.Query(`
		SELECT name, COUNT(*), MIN(date), MAX(date)
		FROM page_open
		GROUP BY name
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []domain.PageActivity
	for rows.Next() {
		var a domain.PageActivity
		var name, first, last string
		if err := rows.Scan(&name, &a.Occurrences, &first, &last); err != nil {
			return nil, err
		}
		a.Name = domain.PageName(name)
		if a.First, err = time.Parse(dateFormat, first); err != nil {
			return nil, fmt.Errorf("corrupt date for %s: %w", name, err)
		}
		if a.Last, err = time.Parse(dateFormat, last); err != nil {
			return nil, fmt.Errorf("corrupt date for %s: %w", name, err)
		}
		a.TimesPerDay = domain.OpenRate(a.Occurrences, a.First, a.Last, now, opts.Mode)
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if opts.FoldDiscussion {
		activities = domain.FoldActivities(activities, opts.DiscussionPrefix, now, opts.Mode)
	}
	return activities, nil
}

// RecentOpens returns the newest events first, at most limit
func (h *History) RecentOpens(limit int) ([]domain.OpenEvent, error) {
	rows, err := h.db.Query(`
		SELECT name, date
		FROM page_open
		ORDER BY date DESC, name
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.OpenEvent
	for rows.Next() {
		var name, date string
		if err := rows.Scan(&name, &date); err != nil {
			return nil, err
		}
		at, err := time.Parse(dateFormat, date)
		if err != nil {
			return nil, fmt.Errorf("corrupt date for %s: %w", name, err)
		}
		events = append(events, domain.OpenEvent{Name: domain.PageName(name), OpenedAt: at})
	}
	return events, rows.Err()
}
