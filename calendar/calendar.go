package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/meenmo/ycurve/curveerr"
	"github.com/meenmo/ycurve/utils"
)

// Calendar decides which dates are good business days.
type Calendar interface {
	IsBusinessDay(t time.Time) bool
	Name() string
}

// CalendarID identifies a built-in holiday calendar.
type CalendarID string

const (
	TARGET   CalendarID = "TARGET"
	USD      CalendarID = "USD"
	ZAR      CalendarID = "ZAR"
	GBP      CalendarID = "GBP"
	JPN      CalendarID = "JPN"
	KRW      CalendarID = "KRW"
	Weekends CalendarID = "WEEKENDS"
)

var calendarAliases = map[string]CalendarID{
	"TARGET":       TARGET,
	"EUR":          TARGET,
	"USD":          USD,
	"US":           USD,
	"NYC":          USD,
	"USNY":         USD,
	"ZAR":          ZAR,
	"SA":           ZAR,
	"SOUTHAFRICA":  ZAR,
	"JOHANNESBURG": ZAR,
	"GBP":          GBP,
	"UK":           GBP,
	"LON":          GBP,
	"JPN":          JPN,
	"JPY":          JPN,
	"JP":           JPN,
	"TKY":          JPN,
	"KRW":          KRW,
	"KR":           KRW,
	"SEL":          KRW,
	"WEEKENDS":     Weekends,
	"NONE":         Weekends,
	"NULL":         Weekends,
}

// Name implements Calendar.
func (c CalendarID) Name() string { return string(c) }

// IsBusinessDay checks weekends and the calendar's holiday rules.
func (c CalendarID) IsBusinessDay(t time.Time) bool {
	if isWeekend(t) {
		return false
	}
	return !isHoliday(c, t)
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}

// JointCalendar treats a date as a business day only when every member calendar does.
type JointCalendar []Calendar

// Join combines calendars; nested joint calendars are flattened.
func Join(cals ...Calendar) Calendar {
	var out JointCalendar
	seen := make(map[string]struct{})
	var add func(c Calendar)
	add = func(c Calendar) {
		if j, ok := c.(JointCalendar); ok {
			for _, m := range j {
				add(m)
			}
			return
		}
		if _, ok := seen[c.Name()]; ok {
			return
		}
		seen[c.Name()] = struct{}{}
		out = append(out, c)
	}
	for _, c := range cals {
		if c != nil {
			add(c)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}

// Name implements Calendar.
func (j JointCalendar) Name() string {
	names := make([]string, len(j))
	for i, c := range j {
		names[i] = c.Name()
	}
	return strings.Join(names, ",")
}

// IsBusinessDay implements Calendar.
func (j JointCalendar) IsBusinessDay(t time.Time) bool {
	for _, c := range j {
		if !c.IsBusinessDay(t) {
			return false
		}
	}
	return true
}

// Parse resolves a calendar name. Comma, semicolon or plus separated names give a joint calendar.
func Parse(name string) (Calendar, error) {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == ',' || r == ';' || r == '+'
	})
	if len(parts) == 0 {
		return nil, fmt.Errorf("calendar.Parse: empty name: %w", curveerr.ErrUnsupportedCalendar)
	}
	cals := make([]Calendar, 0, len(parts))
	for _, p := range parts {
		key := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(p), " ", ""))
		id, ok := calendarAliases[key]
		if !ok {
			return nil, fmt.Errorf("calendar.Parse: %q: %w", p, curveerr.ErrUnsupportedCalendar)
		}
		cals = append(cals, id)
	}
	return Join(cals...), nil
}

// Adjust applies Modified Following.
func Adjust(cal Calendar, t time.Time) time.Time {
	origMonth := t.Month()
	for !cal.IsBusinessDay(t) {
		t = t.AddDate(0, 0, 1)
	}
	if t.Month() != origMonth {
		t = t.AddDate(0, 0, -1)
		for !cal.IsBusinessDay(t) {
			t = t.AddDate(0, 0, -1)
		}
	}
	return t
}

// AdjustFollowing applies a simple Following convention (no month preservation).
func AdjustFollowing(cal Calendar, t time.Time) time.Time {
	for !cal.IsBusinessDay(t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// AdjustPreceding rolls back to the previous business day.
func AdjustPreceding(cal Calendar, t time.Time) time.Time {
	for !cal.IsBusinessDay(t) {
		t = t.AddDate(0, 0, -1)
	}
	return t
}

// AddBusinessDays advances n business days (n can be negative).
func AddBusinessDays(cal Calendar, t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if cal.IsBusinessDay(t) {
			n -= step
		}
	}
	return t
}

// LastBusinessDayOfMonth returns the last business day of the month containing t.
func LastBusinessDayOfMonth(cal Calendar, t time.Time) time.Time {
	last := time.Date(t.Year(), t.Month(), utils.DaysInMonth(t.Year(), t.Month()), 0, 0, 0, 0, time.UTC)
	return AdjustPreceding(cal, last)
}

// IsEndOfMonth checks if t is the last business day of its month.
func IsEndOfMonth(cal Calendar, t time.Time) bool {
	return t.Equal(LastBusinessDayOfMonth(cal, t))
}
