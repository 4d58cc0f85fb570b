package helper

import (
	"fmt"
	"time"

	"github.com/meenmo/ycurve/calendar"
	"github.com/meenmo/ycurve/instrument"
	"github.com/meenmo/ycurve/market"
	"github.com/meenmo/ycurve/schedule"
	"github.com/meenmo/ycurve/utils"
)

// Deposit is a simple-rate deposit from spot to spot plus tenor.
type Deposit struct {
	base
	start, end time.Time
	dayCount   utils.DayCount
}

// NewDeposit builds a deposit helper on the index conventions.
func NewDeposit(eval time.Time, q instrument.Deposit, idx market.ReferenceRateIndex) *Deposit {
	start := spotDate(eval, idx)
	end := calendar.Advance(idx.Calendar, start, q.Tenor, idx.Convention, idx.EndOfMonth)
	return &Deposit{
		base: base{
			quote:   q.Rate,
			pillar:  end,
			desc:    q.Describe(),
			expired: q.Tenor.IsZero() || !end.After(eval),
		},
		start:    start,
		end:      end,
		dayCount: idx.DayCount,
	}
}

// ImpliedQuote solves DF(start)/DF(end) = 1 + rate·yf(start, end).
func (d *Deposit) ImpliedQuote(c Curve) float64 {
	if d.expired {
		return d.quote
	}
	return simpleForward(c, d.start, d.end, d.dayCount)
}

func simpleForward(c Curve, start, end time.Time, dc utils.DayCount) float64 {
	yf := utils.YearFraction(start, end, dc)
	if yf == 0 {
		return 0
	}
	return (c.DF(start)/c.DF(end) - 1) / yf
}

// FRA is a forward rate agreement fixing on the index.
type FRA struct {
	base
	start, end time.Time
	dayCount   utils.DayCount
}

// NewFRA builds an FRA helper. Without an explicit end tenor the FRA covers one index tenor.
func NewFRA(eval time.Time, q instrument.FRA, idx market.ReferenceRateIndex) *FRA {
	spot := spotDate(eval, idx)
	start := calendar.Advance(idx.Calendar, spot, q.Start, idx.Convention, idx.EndOfMonth)
	var end time.Time
	if q.End.IsZero() {
		end = calendar.Advance(idx.Calendar, start, idx.Tenor, idx.Convention, idx.EndOfMonth)
	} else {
		end = calendar.Advance(idx.Calendar, spot, q.End, idx.Convention, idx.EndOfMonth)
	}
	return &FRA{
		base: base{
			quote:   q.Rate,
			pillar:  end,
			desc:    q.Describe(),
			expired: !end.After(start) || !end.After(eval),
		},
		start:    start,
		end:      end,
		dayCount: idx.DayCount,
	}
}

// ImpliedQuote returns the simple forward rate over the FRA period.
func (f *FRA) ImpliedQuote(c Curve) float64 {
	if f.expired {
		return f.quote
	}
	return simpleForward(c, f.start, f.end, f.dayCount)
}

// Swap is a spot-starting fixed-for-floating par swap. Overnight swaps compound the overnight
// rate over each fixed period, which telescopes to the ratio of period-end discount factors.
type Swap struct {
	base
	fixed    []schedule.Period
	float    []schedule.Period
	fixedDC  utils.DayCount
	discount Curve
	forecast Curve
}

// SwapCurves are optional external curves. A nil curve means the curve under construction.
type SwapCurves struct {
	Discount Curve
	Forecast Curve
}

// NewSwap builds a par swap helper on the index conventions.
func NewSwap(eval time.Time, q instrument.Swap, idx market.ReferenceRateIndex, curves SwapCurves) (*Swap, error) {
	spot := spotDate(eval, idx)
	maturity := calendar.Advance(idx.Calendar, spot, q.Tenor, idx.Convention, idx.EndOfMonth)
	return newSwap(eval, spot, maturity, q.Rate, q.Describe(), q.Tenor.IsZero(), idx, curves)
}

// NewOIS builds an overnight indexed swap helper; an explicit end date overrides the tenor.
func NewOIS(eval time.Time, q instrument.OIS, idx market.ReferenceRateIndex, curves SwapCurves) (*Swap, error) {
	spot := spotDate(eval, idx)
	zero := q.Tenor.IsZero()
	var maturity time.Time
	if !q.EndDate.IsZero() {
		maturity = calendar.AdjustWith(idx.Calendar, q.EndDate, idx.Convention)
		zero = false
	} else {
		maturity = calendar.Advance(idx.Calendar, spot, q.Tenor, idx.Convention, idx.EndOfMonth)
	}
	idx.Tenor = idx.FixedLegFrequency
	return newSwap(eval, spot, maturity, q.Rate, q.Describe(), zero, idx, curves)
}

func newSwap(eval, spot, maturity time.Time, rate float64, desc string, zero bool, idx market.ReferenceRateIndex, curves SwapCurves) (*Swap, error) {
	s := &Swap{
		base: base{
			quote:   rate,
			pillar:  maturity,
			desc:    desc,
			expired: zero || !maturity.After(spot) || !maturity.After(eval),
		},
		fixedDC:  idx.FixedLegDayCount,
		discount: curves.Discount,
		forecast: curves.Forecast,
	}
	if s.expired {
		return s, nil
	}
	var err error
	s.fixed, err = schedule.Generate(spot, maturity, idx.FixedLegFrequency, idx.Calendar, idx.Convention, idx.EndOfMonth)
	if err != nil {
		return nil, fmt.Errorf("%s: fixed leg: %w", desc, err)
	}
	floatFreq := idx.Tenor
	if idx.Overnight {
		floatFreq = idx.FixedLegFrequency
	}
	s.float, err = schedule.Generate(spot, maturity, floatFreq, idx.Calendar, idx.Convention, idx.EndOfMonth)
	if err != nil {
		return nil, fmt.Errorf("%s: float leg: %w", desc, err)
	}
	return s, nil
}

// ImpliedQuote returns the par rate: floating leg PV over the fixed leg annuity.
func (s *Swap) ImpliedQuote(c Curve) float64 {
	if s.expired {
		return s.quote
	}
	disc := orElse(s.discount, c)
	fwd := orElse(s.forecast, c)

	annuity := 0.0
	for _, p := range s.fixed {
		annuity += utils.YearFraction(p.StartDate, p.EndDate, s.fixedDC) * disc.DF(p.PayDate)
	}
	floatPV := 0.0
	for _, p := range s.float {
		// forward·τ with the index day count reduces to the discount factor ratio.
		floatPV += (fwd.DF(p.StartDate)/fwd.DF(p.EndDate) - 1) * disc.DF(p.PayDate)
	}
	if annuity == 0 {
		return 0
	}
	return floatPV / annuity
}
