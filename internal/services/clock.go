package services

import (
	"time"

	"github.com/jiangdengke/qq-bot/internal/core"
)

// Clock decides what "today" means. The production clock is pinned to one
// configured zone so that entries land on the same calendar day no matter
// where the process or the chat client runs.
type Clock interface {
	Today() core.Date
}

// ZoneClock reads the wall clock in a fixed location.
type ZoneClock struct {
	loc *time.Location
}

func NewZoneClock(loc *time.Location) ZoneClock {
	return ZoneClock{loc: loc}
}

func (c ZoneClock) Today() core.Date {
	return core.DateOf(time.Now().In(c.loc))
}

// FixedClock always reports the same day. Test use only.
type FixedClock struct {
	Day core.Date
}

func (c FixedClock) Today() core.Date {
	return c.Day
}
