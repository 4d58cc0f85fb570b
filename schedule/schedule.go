// Package schedule generates coupon periods for swap legs.
package schedule

import (
	"fmt"
	"time"

	"github.com/meenmo/ycurve/calendar"
	"github.com/meenmo/ycurve/utils"
)

// Period is one accrual period of a leg.
type Period struct {
	StartDate   time.Time
	EndDate     time.Time
	PayDate     time.Time
	AccrualDays int
}

// Generate builds the schedule rolling backward from maturity, so regular dates align with
// maturity and the first period becomes a front stub if needed. A regular date within 7 days
// of effective is dropped to avoid a tiny stub.
func Generate(effective, maturity time.Time, frequency calendar.Period, cal calendar.Calendar, conv calendar.BusinessDayConvention, endOfMonth bool) ([]Period, error) {
	if maturity.Before(effective) {
		return nil, fmt.Errorf("schedule.Generate: maturity %s before effective %s", maturity.Format(utils.DateLayout), effective.Format(utils.DateLayout))
	}
	if frequency.Length <= 0 {
		return nil, fmt.Errorf("schedule.Generate: unsupported frequency %s", frequency)
	}
	if maturity.Equal(effective) {
		return nil, nil
	}

	eom := endOfMonth && utils.IsMonthEnd(maturity)
	back := func(k int) time.Time {
		switch frequency.Unit {
		case calendar.Days:
			return maturity.AddDate(0, 0, -k*frequency.Length)
		case calendar.Weeks:
			return maturity.AddDate(0, 0, -7*k*frequency.Length)
		}
		d := utils.AddMonth(maturity, -k*frequency.Months())
		if eom {
			d = time.Date(d.Year(), d.Month(), utils.DaysInMonth(d.Year(), d.Month()), 0, 0, 0, 0, time.UTC)
		}
		return d
	}

	// Unadjusted dates backward from maturity, stopping at or before effective.
	var unadjusted []time.Time
	for k := 0; ; k++ {
		current := back(k)
		if !current.After(effective) {
			break
		}
		unadjusted = append([]time.Time{current}, unadjusted...)
	}

	if len(unadjusted) > 1 {
		daysDiff := int(utils.Days(effective, unadjusted[0]))
		if daysDiff > 0 && daysDiff <= 7 {
			unadjusted = unadjusted[1:]
		}
	}
	unadjusted = append([]time.Time{effective}, unadjusted...)

	periods := make([]Period, 0, len(unadjusted)-1)
	for i := 0; i < len(unadjusted)-1; i++ {
		start := calendar.AdjustWith(cal, unadjusted[i], conv)
		end := calendar.AdjustWith(cal, unadjusted[i+1], conv)
		if i == 0 {
			start = effective
		}
		if i == len(unadjusted)-2 {
			end = maturity
		}
		periods = append(periods, Period{
			StartDate:   start,
			EndDate:     end,
			PayDate:     end,
			AccrualDays: int(utils.Days(start, end)),
		})
	}
	return periods, nil
}
