package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/meenmo/ycurve/curveerr"
	"github.com/meenmo/ycurve/utils"
)

// TimeUnit is the unit of a Period.
type TimeUnit byte

const (
	Days   TimeUnit = 'D'
	Weeks  TimeUnit = 'W'
	Months TimeUnit = 'M'
	Years  TimeUnit = 'Y'
)

// Period is a tenor such as 3M or 10Y.
type Period struct {
	Length int
	Unit   TimeUnit
}

func (p Period) String() string {
	return strconv.Itoa(p.Length) + string(p.Unit)
}

// IsZero reports a zero-length tenor.
func (p Period) IsZero() bool { return p.Length == 0 }

// Months returns the period length in months; day and week tenors return 0.
func (p Period) Months() int {
	switch p.Unit {
	case Months:
		return p.Length
	case Years:
		return 12 * p.Length
	}
	return 0
}

// ParsePeriod parses tenors like "1W", "3M", "10Y", "2D", and the money-market shorthands ON, TN and SN.
func ParsePeriod(s string) (Period, error) {
	tenor := strings.ToUpper(strings.TrimSpace(s))
	switch tenor {
	case "ON", "O/N":
		return Period{1, Days}, nil
	case "TN", "T/N":
		return Period{2, Days}, nil
	case "SN", "S/N":
		return Period{3, Days}, nil
	}
	if len(tenor) < 2 {
		return Period{}, fmt.Errorf("ParsePeriod: %q: %w", s, curveerr.ErrInvalidTenor)
	}
	unit := TimeUnit(tenor[len(tenor)-1])
	switch unit {
	case Days, Weeks, Months, Years:
	default:
		return Period{}, fmt.Errorf("ParsePeriod: %q: %w", s, curveerr.ErrInvalidTenor)
	}
	n, err := strconv.Atoi(tenor[:len(tenor)-1])
	if err != nil || n < 0 {
		return Period{}, fmt.Errorf("ParsePeriod: %q: %w", s, curveerr.ErrInvalidTenor)
	}
	return Period{Length: n, Unit: unit}, nil
}

// ParseFraTenor parses "3x6" style FRA tenors into start and end periods in months.
// A bare period such as "3M" returns a zero end period.
func ParseFraTenor(s string) (start, end Period, err error) {
	tenor := strings.ToUpper(strings.TrimSpace(s))
	parts := strings.Split(tenor, "X")
	switch len(parts) {
	case 1:
		start, err = ParsePeriod(parts[0])
		return start, Period{}, err
	case 2:
		a, errA := strconv.Atoi(strings.TrimSuffix(parts[0], "M"))
		b, errB := strconv.Atoi(strings.TrimSuffix(parts[1], "M"))
		if errA != nil || errB != nil || a < 0 || b <= a {
			return Period{}, Period{}, fmt.Errorf("ParseFraTenor: %q: %w", s, curveerr.ErrInvalidTenor)
		}
		return Period{a, Months}, Period{b, Months}, nil
	}
	return Period{}, Period{}, fmt.Errorf("ParseFraTenor: %q: %w", s, curveerr.ErrInvalidTenor)
}

// Advance moves date by p. Day tenors count business days; longer tenors add calendar
// time and roll with conv. With endOfMonth set, a start on the last business day of a
// month lands on the last business day of the target month.
func Advance(cal Calendar, t time.Time, p Period, conv BusinessDayConvention, endOfMonth bool) time.Time {
	switch p.Unit {
	case Days:
		if p.Length == 0 {
			return AdjustWith(cal, t, conv)
		}
		return AddBusinessDays(cal, t, p.Length)
	case Weeks:
		return AdjustWith(cal, t.AddDate(0, 0, 7*p.Length), conv)
	default:
		target := utils.AddMonth(t, p.Months())
		if endOfMonth && p.Length != 0 && IsEndOfMonth(cal, t) {
			return LastBusinessDayOfMonth(cal, target)
		}
		return AdjustWith(cal, target, conv)
	}
}
