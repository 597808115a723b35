// Package storage persists overtime entries in SQLite. It is a plain
// CRUD/aggregate layer; validation and calendar rules live in services.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jiangdengke/qq-bot/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Insert appends one overtime row. There is no uniqueness constraint:
// the same (user, date, category) may appear many times and is summed
// at query time.
func (r *SQLiteRepository) Insert(ctx context.Context, e core.Entry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO overtime_log (user_id, work_date, ot_type, hours_hundredths, note)
		 VALUES (?, ?, ?, ?, ?)`,
		e.UserID, e.WorkDate.String(), string(e.Category), int64(e.Hours), e.Note)
	if err != nil {
		return fmt.Errorf("insert overtime entry: %w", err)
	}

	slog.InfoContext(ctx, "Overtime entry saved",
		"user_id", e.UserID,
		"work_date", e.WorkDate.String(),
		"ot_type", e.Category,
		"hours", e.Hours.Format())

	return nil
}

// SumRange returns total hours in the inclusive date range, zero when
// no rows match.
func (r *SQLiteRepository) SumRange(ctx context.Context, userID int64, from, to core.Date) (core.Hours, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(hours_hundredths), 0)
		 FROM overtime_log
		 WHERE user_id = ? AND work_date BETWEEN ? AND ?`,
		userID, from.String(), to.String()).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum hours: %w", err)
	}
	return core.Hours(total), nil
}

// SumRangeByCategory returns per-category totals for the inclusive range.
// Only categories that have rows appear; zero-filling is the caller's job.
func (r *SQLiteRepository) SumRangeByCategory(ctx context.Context, userID int64, from, to core.Date) (map[core.Category]core.Hours, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ot_type, SUM(hours_hundredths)
		 FROM overtime_log
		 WHERE user_id = ? AND work_date BETWEEN ? AND ?
		 GROUP BY ot_type`,
		userID, from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("sum hours by category: %w", err)
	}
	defer rows.Close()

	out := make(map[core.Category]core.Hours)
	for rows.Next() {
		var (
			cat   string
			total int64
		)
		if err := rows.Scan(&cat, &total); err != nil {
			return nil, fmt.Errorf("scan category sum: %w", err)
		}
		out[core.Category(cat)] = core.Hours(total)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category sums: %w", err)
	}
	return out, nil
}

// DailyTotals returns per-day totals for the inclusive range, ascending by
// date, days without rows omitted.
func (r *SQLiteRepository) DailyTotals(ctx context.Context, userID int64, from, to core.Date) ([]core.DayTotal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT work_date, SUM(hours_hundredths)
		 FROM overtime_log
		 WHERE user_id = ? AND work_date BETWEEN ? AND ?
		 GROUP BY work_date
		 ORDER BY work_date ASC`,
		userID, from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}
	defer rows.Close()

	var out []core.DayTotal
	for rows.Next() {
		var (
			day   string
			total int64
		)
		if err := rows.Scan(&day, &total); err != nil {
			return nil, fmt.Errorf("scan daily total: %w", err)
		}
		d, err := parseDay(day)
		if err != nil {
			return nil, err
		}
		out = append(out, core.DayTotal{Date: d, Hours: core.Hours(total)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily totals: %w", err)
	}
	return out, nil
}

// DeleteByDate removes every row for the user and day, all categories, and
// returns the number removed (0 when the day was already empty).
func (r *SQLiteRepository) DeleteByDate(ctx context.Context, userID int64, day core.Date) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM overtime_log WHERE user_id = ? AND work_date = ?`,
		userID, day.String())
	if err != nil {
		return 0, fmt.Errorf("delete overtime entries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted rows: %w", err)
	}
	return n, nil
}

// SetForDate clears the whole day and inserts the single replacement row in
// one transaction, so a failure can never leave the day half-cleared.
func (r *SQLiteRepository) SetForDate(ctx context.Context, e core.Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin set transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM overtime_log WHERE user_id = ? AND work_date = ?`,
		e.UserID, e.WorkDate.String()); err != nil {
		return fmt.Errorf("clear day: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO overtime_log (user_id, work_date, ot_type, hours_hundredths, note)
		 VALUES (?, ?, ?, ?, ?)`,
		e.UserID, e.WorkDate.String(), string(e.Category), int64(e.Hours), e.Note); err != nil {
		return fmt.Errorf("insert replacement entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit set transaction: %w", err)
	}

	slog.InfoContext(ctx, "Overtime day overridden",
		"user_id", e.UserID,
		"work_date", e.WorkDate.String(),
		"ot_type", e.Category,
		"hours", e.Hours.Format())

	return nil
}

func parseDay(s string) (core.Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return core.Date{}, fmt.Errorf("parse stored work_date %q: %w", s, err)
	}
	return core.DateOf(t), nil
}
