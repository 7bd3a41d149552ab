package clock

import (
	"fmt"
	"time"
)

// ReferenceZone is the single fixed IANA timezone used to compute "today"
// for all players. It is deliberately not configurable: streaks, quest
// expiry and leaderboard resets must behave identically worldwide.
const ReferenceZone = "America/New_York"

// DateLayout is the canonical calendar-date form used in persisted state
const DateLayout = "2006-01-02"

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

// Now returns the current time using the system clock.
func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant; test helper
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant
func (f FixedClock) Now() time.Time {
	return f.T
}

// Calendar resolves calendar boundaries in the reference timezone
type Calendar struct {
	clk Clock
	loc *time.Location
}

// NewCalendar builds a calendar over clk anchored to the reference zone
func NewCalendar(clk Clock) (*Calendar, error) {
	loc, err := time.LoadLocation(ReferenceZone)
	if err != nil {
		return nil, fmt.Errorf("load reference zone %s: %w", ReferenceZone, err)
	}
	return &Calendar{clk: clk, loc: loc}, nil
}

// Now returns the current instant in the reference zone
func (c *Calendar) Now() time.Time {
	return c.clk.Now().In(c.loc)
}

// Today returns midnight of the current reference day
func (c *Calendar) Today() time.Time {
	now := c.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.loc)
}

// TodayKey returns the current reference date as YYYY-MM-DD
func (c *Calendar) TodayKey() string {
	return c.Today().Format(DateLayout)
}

// YesterdayKey returns the previous reference date as YYYY-MM-DD
func (c *Calendar) YesterdayKey() string {
	return c.Today().AddDate(0, 0, -1).Format(DateLayout)
}

// StartOfWeek returns midnight of the Monday of the current reference week
func (c *Calendar) StartOfWeek() time.Time {
	today := c.Today()
	// time.Weekday puts Sunday at 0; shift so Monday is the week anchor
	offset := (int(today.Weekday()) + 6) % 7
	return today.AddDate(0, 0, -offset)
}

// NextMidnight returns the start of the next reference day
func (c *Calendar) NextMidnight() time.Time {
	return c.Today().AddDate(0, 0, 1)
}
