package calendar

import (
	"time"
)

func isHoliday(cal CalendarID, t time.Time) bool {
	switch cal {
	case TARGET:
		return isTargetHoliday(t)
	case USD:
		return isUSDHoliday(t)
	case ZAR:
		return isZARHoliday(t)
	case GBP:
		return isGBPHoliday(t)
	case JPN:
		return isJPNHoliday(t)
	case KRW:
		return isKRWHoliday(t)
	default:
		return false
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// easterSunday uses the anonymous Gregorian algorithm.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return date(year, time.Month(month), day)
}

// nthWeekday returns the n-th given weekday of a month; n < 0 counts from the end.
func nthWeekday(year int, month time.Month, wd time.Weekday, n int) time.Time {
	if n > 0 {
		first := date(year, month, 1)
		offset := (int(wd) - int(first.Weekday()) + 7) % 7
		return first.AddDate(0, 0, offset+7*(n-1))
	}
	last := date(year, month+1, 0)
	offset := (int(last.Weekday()) - int(wd) + 7) % 7
	return last.AddDate(0, 0, -offset+7*(n+1))
}

// observedUS moves Saturday holidays to Friday and Sunday holidays to Monday.
func observedUS(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Saturday:
		return t.AddDate(0, 0, -1)
	case time.Sunday:
		return t.AddDate(0, 0, 1)
	}
	return t
}

// observedMonday moves weekend holidays to the following Monday.
func observedMonday(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Saturday:
		return t.AddDate(0, 0, 2)
	case time.Sunday:
		return t.AddDate(0, 0, 1)
	}
	return t
}

func isTargetHoliday(t time.Time) bool {
	y, m, d := t.Date()
	easter := easterSunday(y)
	switch {
	case m == time.January && d == 1,
		m == time.May && d == 1,
		m == time.December && (d == 25 || d == 26),
		sameDay(t, easter.AddDate(0, 0, -2)),
		sameDay(t, easter.AddDate(0, 0, 1)):
		return true
	}
	return false
}

func isUSDHoliday(t time.Time) bool {
	y := t.Year()
	// New Year's Day falling on a Saturday is not observed on the prior Friday.
	if sameDay(t, observedMonday(date(y, time.January, 1))) {
		return true
	}
	fixed := []time.Time{
		date(y, time.July, 4),
		date(y, time.November, 11),
		date(y, time.December, 25),
	}
	if y >= 2022 {
		fixed = append(fixed, date(y, time.June, 19))
	}
	for _, h := range fixed {
		if sameDay(t, observedUS(h)) {
			return true
		}
	}
	floating := []time.Time{
		nthWeekday(y, time.January, time.Monday, 3),
		nthWeekday(y, time.February, time.Monday, 3),
		nthWeekday(y, time.May, time.Monday, -1),
		nthWeekday(y, time.September, time.Monday, 1),
		nthWeekday(y, time.October, time.Monday, 2),
		nthWeekday(y, time.November, time.Thursday, 4),
	}
	for _, h := range floating {
		if sameDay(t, h) {
			return true
		}
	}
	return false
}

func isZARHoliday(t time.Time) bool {
	y := t.Year()
	fixed := []time.Time{
		date(y, time.January, 1),
		date(y, time.March, 21),
		date(y, time.April, 27),
		date(y, time.May, 1),
		date(y, time.June, 16),
		date(y, time.August, 9),
		date(y, time.September, 24),
		date(y, time.December, 16),
		date(y, time.December, 25),
		date(y, time.December, 26),
	}
	for _, h := range fixed {
		if sameDay(t, h) {
			return true
		}
		// Sunday holidays are observed on Monday.
		if h.Weekday() == time.Sunday && sameDay(t, h.AddDate(0, 0, 1)) {
			return true
		}
	}
	easter := easterSunday(y)
	return sameDay(t, easter.AddDate(0, 0, -2)) || sameDay(t, easter.AddDate(0, 0, 1))
}

func isGBPHoliday(t time.Time) bool {
	y := t.Year()
	easter := easterSunday(y)
	if sameDay(t, observedMonday(date(y, time.January, 1))) ||
		sameDay(t, easter.AddDate(0, 0, -2)) ||
		sameDay(t, easter.AddDate(0, 0, 1)) ||
		sameDay(t, nthWeekday(y, time.May, time.Monday, 1)) ||
		sameDay(t, nthWeekday(y, time.May, time.Monday, -1)) ||
		sameDay(t, nthWeekday(y, time.August, time.Monday, -1)) {
		return true
	}
	// Christmas and Boxing Day substitutes roll past each other.
	xmas := date(y, time.December, 25)
	boxing := date(y, time.December, 26)
	switch xmas.Weekday() {
	case time.Friday:
		return sameDay(t, xmas) || sameDay(t, boxing.AddDate(0, 0, 2))
	case time.Saturday:
		return sameDay(t, xmas.AddDate(0, 0, 2)) || sameDay(t, boxing.AddDate(0, 0, 2))
	case time.Sunday:
		return sameDay(t, boxing) || sameDay(t, xmas.AddDate(0, 0, 2))
	}
	return sameDay(t, xmas) || sameDay(t, boxing)
}

func isJPNHoliday(t time.Time) bool {
	y := t.Year()
	holidays := []time.Time{
		date(y, time.January, 1),
		date(y, time.January, 2),
		date(y, time.January, 3),
		nthWeekday(y, time.January, time.Monday, 2),
		date(y, time.February, 11),
		date(y, time.March, vernalEquinoxDay(y)),
		date(y, time.April, 29),
		date(y, time.May, 3),
		date(y, time.May, 4),
		date(y, time.May, 5),
		nthWeekday(y, time.July, time.Monday, 3),
		nthWeekday(y, time.September, time.Monday, 3),
		date(y, time.September, autumnalEquinoxDay(y)),
		nthWeekday(y, time.October, time.Monday, 2),
		date(y, time.November, 3),
		date(y, time.November, 23),
		date(y, time.December, 31),
	}
	if y >= 2016 {
		holidays = append(holidays, date(y, time.August, 11))
	}
	if y >= 2020 {
		holidays = append(holidays, date(y, time.February, 23))
	}
	for _, h := range holidays {
		if sameDay(t, h) {
			return true
		}
	}
	// A Sunday holiday is substituted by the next day that is not itself a holiday.
	if t.Weekday() != time.Sunday && t.Weekday() != time.Saturday {
		prev := t.AddDate(0, 0, -1)
		for {
			hit := false
			for _, h := range holidays {
				if sameDay(prev, h) {
					hit = true
					break
				}
			}
			if !hit {
				return false
			}
			if prev.Weekday() == time.Sunday {
				return true
			}
			prev = prev.AddDate(0, 0, -1)
		}
	}
	return false
}

func vernalEquinoxDay(y int) int {
	return int(20.8431+0.242194*float64(y-1980)) - (y-1980)/4
}

func autumnalEquinoxDay(y int) int {
	return int(23.2488+0.242194*float64(y-1980)) - (y-1980)/4
}

func isKRWHoliday(t time.Time) bool {
	y := t.Year()
	fixed := []time.Time{
		date(y, time.January, 1),
		date(y, time.March, 1),
		date(y, time.May, 5),
		date(y, time.June, 6),
		date(y, time.August, 15),
		date(y, time.October, 3),
		date(y, time.October, 9),
		date(y, time.December, 25),
		// KRX year-end closing day.
		date(y, time.December, 31),
	}
	for _, h := range fixed {
		if sameDay(t, h) {
			return true
		}
	}
	_, ok := koreaLunarHolidays[t.Format("2006-01-02")]
	return ok
}

// koreaLunarHolidays holds lunar-calendar and substitute holidays published by the Korea Exchange.
var koreaLunarHolidays = map[string]struct{}{
	"2024-02-09": {}, "2024-02-12": {}, "2024-04-10": {}, "2024-05-06": {}, "2024-05-15": {},
	"2024-09-16": {}, "2024-09-17": {}, "2024-09-18": {}, "2024-10-01": {},
	"2025-01-27": {}, "2025-01-28": {}, "2025-01-29": {}, "2025-01-30": {}, "2025-03-03": {},
	"2025-05-06": {}, "2025-06-03": {}, "2025-10-06": {}, "2025-10-07": {}, "2025-10-08": {},
	"2026-02-16": {}, "2026-02-17": {}, "2026-02-18": {}, "2026-03-02": {}, "2026-05-25": {},
	"2026-06-03": {}, "2026-08-17": {}, "2026-09-24": {}, "2026-09-25": {}, "2026-10-05": {},
}
