package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/tpham/study-tracker/internal/model"
)

// gamificationBlob is the persisted shape of the XP/level counters.
type gamificationBlob struct {
	XP    int `json:"xp"`
	Level int `json:"level"`
}

// SQLiteGateway implements Gateway using a local SQLite database. State
// groups are stored as JSON blobs in a key-value table; reminder
// history gets its own table.
type SQLiteGateway struct {
	db  *sqlx.DB
	log *zap.Logger
}

// NewSQLiteGateway opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteGateway(dbPath string, log *zap.Logger) (*SQLiteGateway, error) {
	if log == nil {
		log = zap.NewNop()
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	g := &SQLiteGateway{db: db, log: log}
	if err := g.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return g, nil
}

// Close closes the underlying database connection.
func (g *SQLiteGateway) Close() error {
	return g.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (g *SQLiteGateway) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := g.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = g.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := g.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// LoadState reads every state group and assembles an AppState. A group
// that is missing or fails to decode falls back to its default value;
// the method itself never fails.
func (g *SQLiteGateway) LoadState(ctx context.Context) model.AppState {
	s := model.NewAppState()

	if raw, ok := g.getBlob(ctx, blobSessions); ok {
		var sessions []model.Session
		if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
			g.log.Warn("decoding sessions blob", zap.Error(err))
		} else {
			s.Sessions = sessions
		}
	}

	if raw, ok := g.getBlob(ctx, blobAssignments); ok {
		var assignments []model.Assignment
		if err := json.Unmarshal([]byte(raw), &assignments); err != nil {
			g.log.Warn("decoding assignments blob", zap.Error(err))
		} else {
			s.Assignments = assignments
		}
	}

	if raw, ok := g.getBlob(ctx, blobSettings); ok {
		settings := model.DefaultSettings()
		if err := json.Unmarshal([]byte(raw), &settings); err != nil {
			g.log.Warn("decoding settings blob", zap.Error(err))
		} else {
			s.Settings = settings
		}
	}

	if raw, ok := g.getBlob(ctx, blobActiveTimers); ok {
		var timers model.ActiveTimers
		if err := json.Unmarshal([]byte(raw), &timers); err != nil {
			g.log.Warn("decoding active timers blob", zap.Error(err))
		} else if timers != nil {
			s.ActiveTimers = timers
		}
	}

	if raw, ok := g.getBlob(ctx, blobGamification); ok {
		var gam gamificationBlob
		if err := json.Unmarshal([]byte(raw), &gam); err != nil {
			g.log.Warn("decoding gamification blob", zap.Error(err))
		} else {
			s.XP = gam.XP
			s.Level = gam.Level
		}
	}

	return s
}

// SaveState writes every state group as a JSON blob in one transaction.
func (g *SQLiteGateway) SaveState(ctx context.Context, s model.AppState) error {
	groups := []struct {
		key   string
		value any
	}{
		{blobSessions, s.Sessions},
		{blobAssignments, s.Assignments},
		{blobSettings, s.Settings},
		{blobActiveTimers, s.ActiveTimers},
		{blobGamification, gamificationBlob{XP: s.XP, Level: s.Level}},
	}

	tx, err := g.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT OR REPLACE INTO blobs (key, value, updated_at)
		VALUES (?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing blob upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, group := range groups {
		data, err := json.Marshal(group.value)
		if err != nil {
			return fmt.Errorf("marshaling %s blob: %w", group.key, err)
		}
		if _, err := stmt.ExecContext(ctx, group.key, string(data), now); err != nil {
			return fmt.Errorf("upserting %s blob: %w", group.key, err)
		}
	}

	return tx.Commit()
}

// getBlob reads a single blob value. The second return is false when
// the key is absent or the read fails.
func (g *SQLiteGateway) getBlob(ctx context.Context, key string) (string, bool) {
	var value string
	err := g.db.GetContext(ctx, &value, "SELECT value FROM blobs WHERE key = ?", key)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			g.log.Warn("reading blob", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return value, true
}

// RecordReminder inserts a fired reminder into the history.
// If the reminder has no ID, a new UUID is generated.
func (g *SQLiteGateway) RecordReminder(ctx context.Context, r model.Reminder) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	_, err := g.db.ExecContext(ctx, `
		INSERT INTO reminders (id, session_id, assignment_id, kind, message, read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.SessionID, r.AssignmentID, r.Kind, r.Message,
		boolToInt(r.Read), r.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording reminder: %w", err)
	}

	return nil
}

// UnreadReminders retrieves all reminders the user has not seen,
// ordered by creation time descending.
func (g *SQLiteGateway) UnreadReminders(ctx context.Context) ([]model.Reminder, error) {
	rows, err := g.db.QueryxContext(ctx,
		"SELECT * FROM reminders WHERE read = 0 ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("querying unread reminders: %w", err)
	}
	defer rows.Close()

	var reminders []model.Reminder
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}

	return reminders, rows.Err()
}

// MarkReminderRead marks a single reminder as read.
func (g *SQLiteGateway) MarkReminderRead(ctx context.Context, id string) error {
	_, err := g.db.ExecContext(ctx,
		"UPDATE reminders SET read = 1 WHERE id = ?", id,
	)
	if err != nil {
		return fmt.Errorf("marking reminder %s as read: %w", id, err)
	}
	return nil
}

// ReminderExistsSince reports whether a reminder for the given
// assignment has been recorded at or after the given time. The due-date
// sweep uses this to avoid re-notifying within the same day.
func (g *SQLiteGateway) ReminderExistsSince(
	ctx context.Context,
	assignmentID string,
	since time.Time,
) (bool, error) {
	var count int
	err := g.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM reminders WHERE assignment_id = ? AND created_at >= ?",
		assignmentID, since.UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("checking reminders for assignment %s: %w", assignmentID, err)
	}
	return count > 0, nil
}

// scanReminder scans a reminder row from a sqlx.Rows result set.
func scanReminder(rows *sqlx.Rows) (model.Reminder, error) {
	var (
		r         model.Reminder
		readInt   int
		createdAt time.Time
	)

	err := rows.Scan(
		&r.ID, &r.SessionID, &r.AssignmentID, &r.Kind, &r.Message,
		&readInt, &createdAt,
	)
	if err != nil {
		return model.Reminder{}, fmt.Errorf("scanning reminder row: %w", err)
	}

	r.Read = readInt != 0
	r.CreatedAt = createdAt

	return r, nil
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
