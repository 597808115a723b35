// Package services holds the overtime aggregation engine: input validation,
// fixed-zone "today" semantics, add/override/delete operations and the
// monthly summary. It is storage-agnostic via the Ledger interface.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jiangdengke/qq-bot/internal/core"
)

// OvertimeService implements the ledger-facing operations behind the bot
// commands. Every call is an independent unit of work; there is no state
// here beyond the injected collaborators.
type OvertimeService struct {
	ledger Ledger
	clock  Clock
}

func NewOvertimeService(ledger Ledger, clock Clock) *OvertimeService {
	return &OvertimeService{ledger: ledger, clock: clock}
}

// Add records hours for today (in the clock's zone — never a caller-supplied
// date, so client-side zone skew cannot move an entry to the wrong day).
// A blank category defaults to G1. Adding is cumulative: two calls on the
// same day yield two rows that are summed at query time.
func (s *OvertimeService) Add(ctx context.Context, userID int64, hours core.Hours, category, note string) (core.Entry, error) {
	cat, err := core.ParseCategory(category)
	if err != nil {
		return core.Entry{}, err
	}
	e, err := core.NewEntry(userID, s.clock.Today(), cat, hours, note)
	if err != nil {
		return core.Entry{}, err
	}
	if err := s.ledger.Insert(ctx, e); err != nil {
		return core.Entry{}, fmt.Errorf("record overtime: %w", err)
	}
	return e, nil
}

// SetForDate overrides an explicit day: the entire day is cleared, all
// categories, and replaced with a single row. The clear and insert run in
// one storage transaction, so a failure cannot leave the day half-cleared.
func (s *OvertimeService) SetForDate(ctx context.Context, userID int64, day core.Date, hours core.Hours, category string) (core.Entry, error) {
	cat, err := core.ParseCategory(category)
	if err != nil {
		return core.Entry{}, err
	}
	e, err := core.NewEntry(userID, day, cat, hours, "")
	if err != nil {
		return core.Entry{}, err
	}
	if err := s.ledger.SetForDate(ctx, e); err != nil {
		return core.Entry{}, fmt.Errorf("override overtime day: %w", err)
	}
	return e, nil
}

// DeleteForDate removes every entry for the day and returns how many rows
// went. Zero is a valid answer, not an error; the caller words the reply.
func (s *OvertimeService) DeleteForDate(ctx context.Context, userID int64, day core.Date) (int64, error) {
	if err := day.Validate(); err != nil {
		return 0, err
	}
	n, err := s.ledger.DeleteByDate(ctx, userID, day)
	if err != nil {
		return 0, fmt.Errorf("delete overtime day: %w", err)
	}
	return n, nil
}

// MonthSummary assembles the current month's aggregate for one user,
// recomputed fresh on every call. Both category maps come back with all
// three categories zero-filled.
func (s *OvertimeService) MonthSummary(ctx context.Context, userID int64) (core.Summary, error) {
	today := s.clock.Today()
	first, last := today.MonthRange()

	out := core.NewSummary()

	monthTotal, err := s.ledger.SumRange(ctx, userID, first, last)
	if err != nil {
		return core.Summary{}, fmt.Errorf("month total: %w", err)
	}
	todayTotal, err := s.ledger.SumRange(ctx, userID, today, today)
	if err != nil {
		return core.Summary{}, fmt.Errorf("today total: %w", err)
	}
	monthByType, err := s.ledger.SumRangeByCategory(ctx, userID, first, last)
	if err != nil {
		return core.Summary{}, fmt.Errorf("month by category: %w", err)
	}
	todayByType, err := s.ledger.SumRangeByCategory(ctx, userID, today, today)
	if err != nil {
		return core.Summary{}, fmt.Errorf("today by category: %w", err)
	}
	daily, err := s.ledger.DailyTotals(ctx, userID, first, last)
	if err != nil {
		return core.Summary{}, fmt.Errorf("daily totals: %w", err)
	}

	out.MonthTotal = monthTotal
	out.TodayTotal = todayTotal
	for c, h := range monthByType {
		out.MonthByType[c] = h
	}
	for c, h := range todayByType {
		out.TodayByType[c] = h
	}
	out.DailyTotals = daily

	slog.DebugContext(ctx, "Month summary assembled",
		"user_id", userID,
		"month_total", monthTotal.Format(),
		"today_total", todayTotal.Format(),
		"days", len(daily))

	return out, nil
}
