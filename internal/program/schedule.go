package program

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrClock = errors.New("invalid time of day")
	ErrDate  = errors.New("invalid month-day")
)

// Variant names a kind of program and constructs fresh instances of it.
type Variant struct {
	Name string
	New  func() Program
}

// Clock is a time of day with minute resolution.
type Clock struct{ Hour, Minute int }

// ParseClock reads "HH:MM".
func ParseClock(s string) (Clock, error) {
	var c Clock
	if _, err := fmt.Sscanf(s, "%d:%d", &c.Hour, &c.Minute); err != nil {
		return Clock{}, fmt.Errorf("%w %q", ErrClock, s)
	}
	if c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 {
		return Clock{}, fmt.Errorf("%w %q", ErrClock, s)
	}
	return c, nil
}

// On is this time of day on the date of day, in day's location.
func (c Clock) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, day.Location())
}

func (c Clock) String() string { return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute) }

// MonthDay is a calendar day that recurs every year.
type MonthDay struct {
	Month time.Month
	Day   int
}

// ParseMonthDay reads "MM-DD".
func ParseMonthDay(s string) (MonthDay, error) {
	var m, d int
	if _, err := fmt.Sscanf(s, "%d-%d", &m, &d); err != nil || m < 1 || m > 12 || d < 1 || d > 31 {
		return MonthDay{}, fmt.Errorf("%w %q", ErrDate, s)
	}
	return MonthDay{time.Month(m), d}, nil
}

func (md MonthDay) before(o MonthDay) bool {
	return md.Month < o.Month || (md.Month == o.Month && md.Day < o.Day)
}

// DateRange is an inclusive range of days. When To falls before From the range
// wraps over New Year.
type DateRange struct{ From, To MonthDay }

func (r DateRange) Contains(date time.Time) bool {
	md := MonthDay{date.Month(), date.Day()}
	if !r.To.before(r.From) {
		return !md.before(r.From) && !r.To.before(md)
	}
	return !md.before(r.From) || !r.To.before(md)
}

// Entry schedules a variant on the days its predicate accepts.
type Entry struct {
	Variant Variant
	When    func(date time.Time) bool
}

// Schedule decides which variant is on duty. The daily window runs from Begin
// to End; an End at or before Begin means the window closes on the next day.
// Equal Begin and End keep the schedule on duty around the clock.
type Schedule struct {
	Begin, End Clock
	Entries    []Entry
	Default    *Variant
}

// Slot is the outcome of a schedule check.
type Slot struct {
	// Variant is nil while off duty, or when no default is configured.
	Variant *Variant
	// Date is the day the current window opened.
	Date   time.Time
	OnDuty bool
	// Next is when the decision can next change.
	Next time.Time
}

// Check evaluates the schedule at now. It has no side effects.
func (s Schedule) Check(now time.Time) Slot {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	prev, next := day.AddDate(0, 0, -1), day.AddDate(0, 0, 1)
	begin, end := s.Begin.On(day), s.End.On(day)

	var slot Slot
	switch {
	case s.Begin == s.End:
		slot.OnDuty = true
		if now.Before(begin) {
			slot.Date, slot.Next = prev, begin
		} else {
			slot.Date, slot.Next = day, s.Begin.On(next)
		}
	case end.After(begin):
		switch {
		case now.Before(begin):
			slot.Next = begin
		case now.Before(end):
			slot.OnDuty, slot.Date, slot.Next = true, day, end
		default:
			slot.Next = s.Begin.On(next)
		}
	default:
		switch {
		case now.Before(end):
			slot.OnDuty, slot.Date, slot.Next = true, prev, end
		case !now.Before(begin):
			slot.OnDuty, slot.Date, slot.Next = true, day, s.End.On(next)
		default:
			slot.Next = begin
		}
	}

	if !slot.OnDuty {
		return slot
	}
	for i := range s.Entries {
		e := &s.Entries[i]
		if e.When != nil && e.When(slot.Date) {
			slot.Variant = &e.Variant
			return slot
		}
	}
	slot.Variant = s.Default
	return slot
}
