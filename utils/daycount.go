package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/meenmo/ycurve/curveerr"
)

// DayCount names a day count convention.
type DayCount string

const (
	Act360     DayCount = "ACT/360"
	Act365F    DayCount = "ACT/365F"
	ActAct     DayCount = "ACT/ACT"
	Thirty360  DayCount = "30/360"
	Thirty360E DayCount = "30E/360"
)

var dayCountAliases = map[string]DayCount{
	"ACT360":         Act360,
	"ACTUAL360":      Act360,
	"A360":           Act360,
	"ACT365":         Act365F,
	"ACT365F":        Act365F,
	"ACTUAL365":      Act365F,
	"ACTUAL365F":     Act365F,
	"ACTUAL365FIXED": Act365F,
	"A365F":          Act365F,
	"ACTACT":         ActAct,
	"ACTUALACTUAL":   ActAct,
	"ACTACTISDA":     ActAct,
	"30360":          Thirty360,
	"30360US":        Thirty360,
	"BOND":           Thirty360,
	"30E360":         Thirty360E,
	"EUROBOND":       Thirty360E,
}

// ParseDayCount resolves a day count name. Separators and case are ignored,
// so "ACT/360", "Actual360" and "act_360" all resolve to Act360.
func ParseDayCount(name string) (DayCount, error) {
	key := strings.ToUpper(name)
	key = strings.NewReplacer("/", "", "_", "", " ", "", "-", "", "(", "", ")", "").Replace(key)
	if dc, ok := dayCountAliases[key]; ok {
		return dc, nil
	}
	return "", fmt.Errorf("ParseDayCount: %q: %w", name, curveerr.ErrUnsupportedDayCount)
}

// YearFraction computes the year fraction between two dates under the given convention.
// Supported conventions: ACT/360, ACT/365F, ACT/ACT (ISDA), 30/360 (bond basis), 30E/360.
// Unknown conventions fall back to ACT/365F.
func YearFraction(start, end time.Time, convention DayCount) float64 {
	switch convention {
	case Act360:
		return Days(start, end) / 360.0
	case ActAct:
		if end.Before(start) {
			return -actActISDA(end, start)
		}
		return actActISDA(start, end)
	case Thirty360:
		// 30/360 bond basis: D2 is capped only when D1 was already 30 or 31.
		d1 := start.Day()
		if d1 == 31 {
			d1 = 30
		}
		d2 := end.Day()
		if d2 == 31 && d1 == 30 {
			d2 = 30
		}
		return thirty360(start, end, d1, d2)
	case Thirty360E:
		d1 := start.Day()
		if d1 > 30 {
			d1 = 30
		}
		d2 := end.Day()
		if d2 > 30 {
			d2 = 30
		}
		return thirty360(start, end, d1, d2)
	default:
		return Days(start, end) / 365.0
	}
}

func thirty360(start, end time.Time, d1, d2 int) float64 {
	y1, m1 := start.Year(), int(start.Month())
	y2, m2 := end.Year(), int(end.Month())
	return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0
}

// actActISDA splits the period at year boundaries and divides each piece by its year length.
func actActISDA(start, end time.Time) float64 {
	if start.Year() == end.Year() {
		return Days(start, end) / daysInYear(start.Year())
	}
	yearEnd := time.Date(start.Year()+1, 1, 1, 0, 0, 0, 0, time.UTC)
	yf := Days(start, yearEnd) / daysInYear(start.Year())
	yf += float64(end.Year() - start.Year() - 1)
	yearStart := time.Date(end.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	yf += Days(yearStart, end) / daysInYear(end.Year())
	return yf
}

func daysInYear(year int) float64 {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}
