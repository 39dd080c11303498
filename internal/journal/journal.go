// Package journal keeps a local SQLite audit trail of the actions applied
// during triage sessions. It is write-mostly: sessions never read it back
// to resume.
package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/phototriage/internal/db"
)

const (
	appName    = "phototriage"
	dbFileName = "journal.db"
)

// ErrUnknownSession is returned when recording against a session id that
// was never started.
var ErrUnknownSession = errors.New("unknown journal session")

// Entry is one applied action.
type Entry struct {
	SessionID string
	MediaID   string
	Filename  string
	Action    string // "trash" or "album"
	AlbumID   string
	AlbumName string
	CreatedAt time.Time
}

// Totals summarizes one session.
type Totals struct {
	Trashed int
	Moved   int
}

// Applied returns the total number of recorded actions.
func (t Totals) Applied() int { return t.Trashed + t.Moved }

// Manager owns the journal database.
type Manager struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens the journal at path, creating it if needed. An empty path
// uses the XDG data directory.
func Open(path string) (*Manager, error) {
	if path == "" {
		var err error
		path, err = getDBPath()
		if err != nil {
			return nil, err
		}
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	m, err := newManager(sqlDB)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	log.Debug().Str("path", path).Msg("journal opened")
	return m, nil
}

func newManager(sqlDB *sql.DB) (*Manager, error) {
	if _, err := sqlDB.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		return nil, err
	}
	if err := initSchema(sqlDB); err != nil {
		return nil, fmt.Errorf("init journal schema: %w", err)
	}
	return &Manager{db: sqlDB, now: time.Now}, nil
}

func (m *Manager) Close() error {
	return m.db.Close()
}

// BeginSession registers a new session and returns its id.
func (m *Manager) BeginSession(mode string) (string, error) {
	id := uuid.NewString()
	_, err := m.db.Exec(
		`INSERT INTO sessions (id, mode, started_at) VALUES (?, ?, ?)`,
		id, mode, m.now().Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("begin session: %w", err)
	}
	return id, nil
}

// Record appends an entry and bumps the session's applied counter.
func (m *Manager) Record(e Entry) error {
	created := e.CreatedAt
	if created.IsZero() {
		created = m.now()
	}

	err := db.WithTx(m.db, func(tx *sql.Tx) error {
		res, err := tx.Exec(
			`UPDATE sessions SET applied = applied + 1 WHERE id = ?`,
			e.SessionID,
		)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return ErrUnknownSession
		}

		_, err = tx.Exec(`
			INSERT INTO actions (session_id, media_id, filename, action, album_id, album_name, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.SessionID, e.MediaID, e.Filename, e.Action,
			db.NullString(e.AlbumID), db.NullString(e.AlbumName), created.Unix(),
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("record %s for %s: %w", e.Action, e.MediaID, err)
	}
	return nil
}

// EndSession marks a session finished. Ending twice keeps the first time.
func (m *Manager) EndSession(id string) error {
	_, err := m.db.Exec(
		`UPDATE sessions SET ended_at = ? WHERE id = ? AND ended_at IS NULL`,
		m.now().Unix(), id,
	)
	return err
}

// Totals counts the actions recorded for a session.
func (m *Manager) Totals(sessionID string) (Totals, error) {
	var t Totals
	err := m.db.QueryRow(`
		SELECT
			COALESCE(SUM(CASE WHEN action = 'trash' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN action = 'album' THEN 1 ELSE 0 END), 0)
		FROM actions WHERE session_id = ?`,
		sessionID,
	).Scan(&t.Trashed, &t.Moved)
	if err != nil {
		return Totals{}, err
	}
	return t, nil
}

// Recent returns the latest entries across all sessions, newest first.
func (m *Manager) Recent(limit int) ([]Entry, error) {
	rows, err := m.db.Query(`
		SELECT session_id, media_id, filename, action, album_id, album_name, created_at
		FROM actions ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                  Entry
			albumID, albumName sql.NullString
			created            int64
		)
		if err := rows.Scan(&e.SessionID, &e.MediaID, &e.Filename, &e.Action, &albumID, &albumName, &created); err != nil {
			return nil, err
		}
		e.AlbumID = db.NullStringValue(albumID)
		e.AlbumName = db.NullStringValue(albumName)
		e.CreatedAt = time.Unix(created, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Ended reports when a session ended, if it has.
func (m *Manager) Ended(sessionID string) (time.Time, bool, error) {
	var ended sql.NullInt64
	err := m.db.QueryRow(`SELECT ended_at FROM sessions WHERE id = ?`, sessionID).Scan(&ended)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, ErrUnknownSession
	}
	if err != nil {
		return time.Time{}, false, err
	}
	if !ended.Valid {
		return time.Time{}, false, nil
	}
	return time.Unix(db.NullInt64Value(ended), 0), true, nil
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
