package services

import (
	"context"

	"github.com/jiangdengke/qq-bot/internal/core"
)

// Ledger is the narrow storage capability the aggregation engine needs.
// Both the SQLite repository and the memory store satisfy it; the engine
// never sees which one it is running on.
//
// All operations are scoped to one user and all date ranges are inclusive.
type Ledger interface {
	// Insert appends one row; no uniqueness constraint.
	Insert(ctx context.Context, e core.Entry) error
	// SumRange totals hours in [from, to], zero when nothing matches.
	SumRange(ctx context.Context, userID int64, from, to core.Date) (core.Hours, error)
	// SumRangeByCategory totals per category; absent categories are omitted.
	SumRangeByCategory(ctx context.Context, userID int64, from, to core.Date) (map[core.Category]core.Hours, error)
	// DailyTotals sums per day, ascending, days without rows omitted.
	DailyTotals(ctx context.Context, userID int64, from, to core.Date) ([]core.DayTotal, error)
	// DeleteByDate removes the whole day and reports how many rows went.
	DeleteByDate(ctx context.Context, userID int64, day core.Date) (int64, error)
	// SetForDate atomically clears the day and inserts the replacement row.
	SetForDate(ctx context.Context, e core.Entry) error
}
