// Package store keeps the alarm list in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/tuiclock/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// MemoryDSN opens a private in-memory database that lives as long as the
// Store.
const MemoryDSN = ":memory:"

// ErrAlarmNotFound is returned when an alarm id does not exist.
var ErrAlarmNotFound = errors.New("alarm not found")

// Store wraps SQLite access for alarm records.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens the database and applies migrations. An empty dsn means
// MemoryDSN.
func Open(dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		dsn = MemoryDSN
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Every new connection to :memory: is a fresh database.
	db.SetMaxOpenConns(1)
	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS alarms (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			hour INTEGER NOT NULL,
			minute INTEGER NOT NULL,
			description TEXT NOT NULL,
			enabled INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_alarms_position ON alarms(position);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertAlarm appends an alarm to the end of the list. A missing ID or
// creation time is filled in.
func (s *Store) InsertAlarm(ctx context.Context, alarm model.Alarm) (model.Alarm, error) {
	if alarm.ID == "" {
		alarm.ID = uuid.NewString()
	}
	if alarm.CreatedAt.IsZero() {
		alarm.CreatedAt = s.now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Alarm{}, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	var position int64
	if err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), 0) + 1 FROM alarms`).Scan(&position); err != nil {
		return model.Alarm{}, err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO alarms (id, position, hour, minute, description, enabled, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		alarm.ID,
		position,
		alarm.Hour,
		alarm.Minute,
		alarm.Description,
		boolToInt(alarm.Enabled),
		alarm.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return model.Alarm{}, err
	}
	if err = tx.Commit(); err != nil {
		return model.Alarm{}, err
	}
	return alarm, nil
}

// ListAlarms returns alarms in insertion order.
func (s *Store) ListAlarms(ctx context.Context) ([]model.Alarm, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, hour, minute, description, enabled, created_at
		 FROM alarms
		 ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var alarms []model.Alarm
	for rows.Next() {
		var a model.Alarm
		var enabled int
		var createdAt string
		if err := rows.Scan(&a.ID, &a.Hour, &a.Minute, &a.Description, &enabled, &createdAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		a.Enabled = enabled != 0
		a.CreatedAt = parsed
		alarms = append(alarms, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return alarms, nil
}

// ToggleAlarm flips the enabled flag and returns the new value.
func (s *Store) ToggleAlarm(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE alarms SET enabled = 1 - enabled WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, ErrAlarmNotFound
	}
	var enabled int
	if err := s.db.QueryRowContext(ctx, `SELECT enabled FROM alarms WHERE id = ?`, id).Scan(&enabled); err != nil {
		return false, err
	}
	return enabled != 0, nil
}

// DeleteAlarm removes an alarm.
func (s *Store) DeleteAlarm(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM alarms WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlarmNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
