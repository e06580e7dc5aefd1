package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/amonks/mindful/task"
	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteFile is the database file name inside the store directory.
const SQLiteFile = "mindful.db"

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS tasks (
	id           TEXT PRIMARY KEY,
	position     INTEGER NOT NULL,
	content      TEXT NOT NULL,
	quadrant     TEXT NOT NULL,
	status       TEXT NOT NULL,
	created_at   INTEGER NOT NULL,
	completed_at INTEGER,
	sort_order   INTEGER,
	reminder     INTEGER
);
CREATE TABLE IF NOT EXISTS emotions (
	seq       INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp INTEGER NOT NULL,
	feeling   TEXT NOT NULL,
	context   TEXT NOT NULL
);
`

// SQLiteStore persists the board in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the schema exists. The caller is responsible for calling Close.
func OpenSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	db.SetMaxOpenConns(1) // prevent SQLITE_BUSY
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db, path: dbPath}, nil
}

// WatchPath returns the directory containing the database file.
func (s *SQLiteStore) WatchPath() string {
	return filepath.Dir(s.path)
}

// Close releases the underlying database connection.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// LoadTasks returns tasks in the order they were last saved.
func (s *SQLiteStore) LoadTasks(ctx context.Context) ([]task.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content, quadrant, status, created_at, completed_at, sort_order, reminder
		FROM tasks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		var (
			t                               task.Task
			quadrant, status                string
			completedAt, order, reminderVal sql.NullInt64
		)
		if err := rows.Scan(&t.ID, &t.Content, &quadrant, &status, &t.CreatedAt, &completedAt, &order, &reminderVal); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.Quadrant = task.Quadrant(quadrant)
		t.Status = task.Status(status)
		if completedAt.Valid {
			t.CompletedAt = task.Int64Ptr(completedAt.Int64)
		}
		if order.Valid {
			t.Order = task.IntPtr(int(order.Int64))
		}
		if reminderVal.Valid {
			t.Reminder = task.Int64Ptr(reminderVal.Int64)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}
	return tasks, nil
}

// SaveTasks replaces every row in one transaction.
func (s *SQLiteStore) SaveTasks(ctx context.Context, tasks []task.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks
			(id, position, content, quadrant, status, created_at, completed_at, sort_order, reminder)
		VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range tasks {
		var order sql.NullInt64
		if t.Order != nil {
			order = sql.NullInt64{Int64: int64(*t.Order), Valid: true}
		}
		_, err := stmt.ExecContext(ctx,
			t.ID, i, t.Content, string(t.Quadrant), string(t.Status), t.CreatedAt,
			nullInt64(t.CompletedAt), order, nullInt64(t.Reminder),
		)
		if err != nil {
			return fmt.Errorf("insert task %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tasks: %w", err)
	}
	return nil
}

// LoadEmotions returns the log in insertion order.
func (s *SQLiteStore) LoadEmotions(ctx context.Context) ([]task.EmotionalState, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT timestamp, feeling, context FROM emotions ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query emotions: %w", err)
	}
	defer rows.Close()

	var emotions []task.EmotionalState
	for rows.Next() {
		var (
			e                task.EmotionalState
			feeling, context string
		)
		if err := rows.Scan(&e.Timestamp, &feeling, &context); err != nil {
			return nil, fmt.Errorf("scan emotion: %w", err)
		}
		e.Feeling = task.Feeling(feeling)
		e.Context = task.CheckInContext(context)
		emotions = append(emotions, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read emotions: %w", err)
	}
	return emotions, nil
}

// SaveEmotion inserts one log entry.
func (s *SQLiteStore) SaveEmotion(ctx context.Context, entry task.EmotionalState) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO emotions (timestamp, feeling, context) VALUES (?,?,?)`,
		entry.Timestamp, string(entry.Feeling), string(entry.Context),
	)
	if err != nil {
		return fmt.Errorf("insert emotion: %w", err)
	}
	return nil
}

// Clear deletes all rows from both tables.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"tasks", "emotions"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return tx.Commit()
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
