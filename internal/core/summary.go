package core

// DayTotal is one day's summed hours within a month.
type DayTotal struct {
	Date  Date
	Hours Hours
}

// Summary is the read-only monthly aggregate for one user. It is computed
// fresh on every query and never persisted.
//
// MonthByType and TodayByType always carry all three categories, zero-filled,
// so callers can index without existence checks. DailyTotals is ascending by
// date and holds only days that have at least one entry.
type Summary struct {
	MonthTotal  Hours
	TodayTotal  Hours
	MonthByType map[Category]Hours
	TodayByType map[Category]Hours
	DailyTotals []DayTotal
}

// NewSummary returns an empty summary with both category maps zero-filled.
func NewSummary() Summary {
	s := Summary{
		MonthByType: make(map[Category]Hours, len(Categories())),
		TodayByType: make(map[Category]Hours, len(Categories())),
	}
	for _, c := range Categories() {
		s.MonthByType[c] = 0
		s.TodayByType[c] = 0
	}
	return s
}
