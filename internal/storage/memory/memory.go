// Package memory holds an in-process ledger used by the memory backend and
// by service tests. It mirrors the SQLite repository's contract, including
// the whole-day override in SetForDate.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jiangdengke/qq-bot/internal/core"
)

type Store struct {
	mu      sync.Mutex
	entries []core.Entry
}

func New() *Store {
	return &Store{}
}

func (s *Store) Insert(_ context.Context, e core.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return nil
}

func (s *Store) SumRange(_ context.Context, userID int64, from, to core.Date) (core.Hours, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total core.Hours
	for _, e := range s.entries {
		if e.UserID == userID && inRange(e.WorkDate, from, to) {
			total += e.Hours
		}
	}
	return total, nil
}

func (s *Store) SumRangeByCategory(_ context.Context, userID int64, from, to core.Date) (map[core.Category]core.Hours, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[core.Category]core.Hours)
	for _, e := range s.entries {
		if e.UserID == userID && inRange(e.WorkDate, from, to) {
			out[e.Category] += e.Hours
		}
	}
	return out, nil
}

func (s *Store) DailyTotals(_ context.Context, userID int64, from, to core.Date) ([]core.DayTotal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byDay := make(map[core.Date]core.Hours)
	for _, e := range s.entries {
		if e.UserID == userID && inRange(e.WorkDate, from, to) {
			byDay[e.WorkDate] += e.Hours
		}
	}
	out := make([]core.DayTotal, 0, len(byDay))
	for d, h := range byDay {
		out = append(out, core.DayTotal{Date: d, Hours: h})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *Store) DeleteByDate(_ context.Context, userID int64, day core.Date) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteLocked(userID, day), nil
}

func (s *Store) SetForDate(_ context.Context, e core.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteLocked(e.UserID, e.WorkDate)
	s.entries = append(s.entries, e)
	return nil
}

func (s *Store) deleteLocked(userID int64, day core.Date) int64 {
	kept := s.entries[:0]
	var removed int64
	for _, e := range s.entries {
		if e.UserID == userID && e.WorkDate == day {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	return removed
}

func inRange(d, from, to core.Date) bool {
	return !d.Before(from) && !d.After(to)
}
