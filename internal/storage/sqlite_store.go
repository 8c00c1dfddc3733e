package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sandeepkv93/habitd/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	// PRAGMA is per connection; a single connection keeps it in force.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// OpenSQLite opens path and applies the embedded migrations.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store, err := NewSQLiteStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := MigrateUp(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load(ctx context.Context) (*model.Tracker, error) {
	var rawStart string
	err := s.db.QueryRowContext(ctx, `SELECT week_start FROM tracker_state WHERE id = 1`).Scan(&rawStart)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	weekStart, err := parseRequiredTime(rawStart)
	if err != nil {
		return nil, fmt.Errorf("parse week_start: %w", err)
	}
	tracker := &model.Tracker{WeekStart: model.Midnight(weekStart), Habits: []model.Habit{}}

	rows, err := s.db.QueryContext(ctx, `SELECT position, label, habit_type FROM habits ORDER BY position`)
	if err != nil {
		return nil, err
	}
	positions := make(map[int]int)
	for rows.Next() {
		pos, habit, scanErr := scanHabit(rows)
		if scanErr != nil {
			_ = rows.Close()
			return nil, scanErr
		}
		positions[pos] = len(tracker.Habits)
		tracker.Habits = append(tracker.Habits, habit)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	recRows, err := s.db.QueryContext(ctx, `SELECT habit_position, date_key, value FROM records`)
	if err != nil {
		return nil, err
	}
	defer recRows.Close()
	for recRows.Next() {
		var pos int
		var key, value string
		if err := recRows.Scan(&pos, &key, &value); err != nil {
			return nil, err
		}
		idx, ok := positions[pos]
		if !ok {
			return nil, fmt.Errorf("%w: record for unknown habit %d", model.ErrCorruptRecord, pos)
		}
		tracker.Habits[idx].Records[key] = value
	}
	if err := recRows.Err(); err != nil {
		return nil, err
	}
	for i, h := range tracker.Habits {
		if err := h.Validate(); err != nil {
			return nil, fmt.Errorf("habit %d: %w", i, err)
		}
	}
	return tracker, nil
}

// Save replaces the stored tracker in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, tracker *model.Tracker) (err error) {
	if tracker == nil {
		return errors.New("storage: nil tracker")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO tracker_state (id, week_start) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET week_start = excluded.week_start`,
		mustTime(model.Midnight(tracker.WeekStart)),
	); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM habits`); err != nil {
		return err
	}
	for pos, h := range tracker.Habits {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO habits (position, label, habit_type) VALUES (?, ?, ?)`,
			pos, h.Label, string(h.Type),
		); err != nil {
			return err
		}
		for key, value := range h.Records {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO records (habit_position, date_key, value) VALUES (?, ?, ?)`,
				pos, key, value,
			); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHabit(s scanner) (int, model.Habit, error) {
	var pos int
	var label, rawType string
	if err := s.Scan(&pos, &label, &rawType); err != nil {
		return 0, model.Habit{}, err
	}
	typ, err := model.ParseHabitType(rawType)
	if err != nil {
		return 0, model.Habit{}, err
	}
	return pos, model.NewHabit(label, typ), nil
}
