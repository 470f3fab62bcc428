package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/preston-bernstein/activities-service/internal/domain/activities"
)

// DefaultSQLiteDSN keeps rosters in a private in-memory database.
const DefaultSQLiteDSN = "file::memory:"

const schema = `
CREATE TABLE IF NOT EXISTS activities (
	name TEXT PRIMARY KEY,
	description TEXT NOT NULL,
	schedule TEXT NOT NULL,
	max_participants INTEGER NOT NULL CHECK (max_participants > 0),
	position INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS participants (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	activity_name TEXT NOT NULL REFERENCES activities(name),
	email TEXT NOT NULL,
	UNIQUE (activity_name, email)
);
`

// SQLiteStore keeps rosters in SQLite. Every mutation runs in its own
// transaction over a single connection, so checks and writes never interleave.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens dsn, applies the schema and seeds any activities that
// are not stored yet. Existing rows are left untouched.
func NewSQLiteStore(ctx context.Context, dsn string, seed []activities.Activity) (*SQLiteStore, error) {
	if strings.TrimSpace(dsn) == "" {
		dsn = DefaultSQLiteDSN
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// An in-memory database lives only as long as its connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.seed(ctx, seed); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed activities: %w", err)
	}
	return s, nil
}

// Close releases the underlying database.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) seed(ctx context.Context, items []activities.Activity) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		var next int
		if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), -1) + 1 FROM activities`).Scan(&next); err != nil {
			return fmt.Errorf("read position: %w", err)
		}
		for _, a := range items {
			res, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO activities (name, description, schedule, max_participants, position) VALUES (?, ?, ?, ?, ?)`,
				a.Name, a.Description, a.Schedule, a.MaxParticipants, next)
			if err != nil {
				return fmt.Errorf("insert activity %q: %w", a.Name, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if n == 0 {
				continue
			}
			next++
			for _, email := range a.Participants {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO participants (activity_name, email) VALUES (?, ?)`, a.Name, email); err != nil {
					return fmt.Errorf("insert participant for %q: %w", a.Name, err)
				}
			}
		}
		return nil
	})
}

// ListAll returns every activity in catalog order with its roster.
func (s *SQLiteStore) ListAll(ctx context.Context) ([]activities.Activity, error) {
	var result []activities.Activity
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx,
			`SELECT name, description, schedule, max_participants FROM activities ORDER BY position`)
		if err != nil {
			return fmt.Errorf("query activities: %w", err)
		}
		index := make(map[string]int)
		for rows.Next() {
			var a activities.Activity
			if err := rows.Scan(&a.Name, &a.Description, &a.Schedule, &a.MaxParticipants); err != nil {
				_ = rows.Close()
				return fmt.Errorf("scan activity: %w", err)
			}
			a.Participants = []string{}
			index[a.Name] = len(result)
			result = append(result, a)
		}
		if err := rows.Close(); err != nil {
			return err
		}
		if err := rows.Err(); err != nil {
			return err
		}

		prow, err := tx.QueryContext(ctx, `SELECT activity_name, email FROM participants ORDER BY seq`)
		if err != nil {
			return fmt.Errorf("query participants: %w", err)
		}
		defer prow.Close()
		for prow.Next() {
			var name, email string
			if err := prow.Scan(&name, &email); err != nil {
				return fmt.Errorf("scan participant: %w", err)
			}
			if i, ok := index[name]; ok {
				result[i].Participants = append(result[i].Participants, email)
			}
		}
		return prow.Err()
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = []activities.Activity{}
	}
	return result, nil
}

// Admit appends email to the roster when it is absent and a slot is free.
func (s *SQLiteStore) Admit(ctx context.Context, name, email string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		capacity, err := lookupCapacity(ctx, tx, name)
		if err != nil {
			return err
		}
		registered, count, err := rosterState(ctx, tx, name, email)
		if err != nil {
			return err
		}
		if registered {
			return activities.ErrAlreadyRegistered
		}
		if count >= capacity {
			return activities.ErrCapacityExceeded
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO participants (activity_name, email) VALUES (?, ?)`, name, email); err != nil {
			return fmt.Errorf("insert participant: %w", err)
		}
		return nil
	})
}

// Remove drops email from the roster.
func (s *SQLiteStore) Remove(ctx context.Context, name, email string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := lookupCapacity(ctx, tx, name); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			`DELETE FROM participants WHERE activity_name = ? AND email = ?`, name, email)
		if err != nil {
			return fmt.Errorf("delete participant: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return activities.ErrNotRegistered
		}
		return nil
	})
}

func lookupCapacity(ctx context.Context, tx *sql.Tx, name string) (int, error) {
	var capacity int
	err := tx.QueryRowContext(ctx, `SELECT max_participants FROM activities WHERE name = ?`, name).Scan(&capacity)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", activities.ErrNotFound, name)
	}
	if err != nil {
		return 0, fmt.Errorf("lookup activity: %w", err)
	}
	return capacity, nil
}

func rosterState(ctx context.Context, tx *sql.Tx, name, email string) (bool, int, error) {
	var registered, count int
	err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(email = ?), 0), COUNT(*) FROM participants WHERE activity_name = ?`,
		email, name).Scan(&registered, &count)
	if err != nil {
		return false, 0, fmt.Errorf("read roster: %w", err)
	}
	return registered > 0, count, nil
}

func (s *SQLiteStore) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
