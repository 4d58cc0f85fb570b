// Package curve holds the immutable discount curve produced by a bootstrap or built from
// explicit discount factors.
package curve

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/meenmo/ycurve/curveerr"
	"github.com/meenmo/ycurve/interp"
	"github.com/meenmo/ycurve/utils"
)

// instantaneousStep is the year fraction used for rates quoted at the reference date.
const instantaneousStep = 1e-4

// Curve is a discount curve: pillar dates with discount factors and an interpolation method.
// The reference date is always the first node, with discount factor 1.
type Curve struct {
	referenceDate time.Time
	dayCount      utils.DayCount
	method        interp.Method
	dates         []time.Time
	times         []float64
	dfs           []float64
	extrapolate   bool
	interpolator  interp.Interpolator
}

// New builds a curve from pillar dates and discount factors. Dates are sorted; the reference
// node is added when absent. Two pillars with the same curve time return ErrAmbiguousPillar.
func New(referenceDate time.Time, dates []time.Time, dfs []float64, dayCount utils.DayCount, method interp.Method, extrapolate bool) (*Curve, error) {
	if len(dates) != len(dfs) {
		return nil, fmt.Errorf("curve.New: %d dates, %d discount factors: %w", len(dates), len(dfs), curveerr.ErrIncompatibleArraySize)
	}
	referenceDate = utils.Date(referenceDate)

	type node struct {
		date time.Time
		df   float64
	}
	nodes := make([]node, len(dates))
	for i := range dates {
		nodes[i] = node{utils.Date(dates[i]), dfs[i]}
	}
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].date.Before(nodes[j].date) })

	if len(nodes) == 0 || nodes[0].date.After(referenceDate) {
		nodes = append([]node{{referenceDate, 1}}, nodes...)
	}
	if nodes[0].date.Before(referenceDate) {
		return nil, fmt.Errorf("curve.New: pillar %s before reference date %s: %w",
			nodes[0].date.Format(utils.DateLayout), referenceDate.Format(utils.DateLayout), curveerr.ErrOutOfRange)
	}
	if nodes[0].df != 1 {
		return nil, fmt.Errorf("curve.New: discount factor %v at reference date: %w", nodes[0].df, curveerr.ErrInvalidDiscountFactor)
	}

	c := &Curve{
		referenceDate: referenceDate,
		dayCount:      dayCount,
		method:        method,
		dates:         make([]time.Time, len(nodes)),
		times:         make([]float64, len(nodes)),
		dfs:           make([]float64, len(nodes)),
		extrapolate:   extrapolate,
	}
	for i, n := range nodes {
		if !(n.df > 0) || math.IsInf(n.df, 0) {
			return nil, fmt.Errorf("curve.New: discount factor %v at %s: %w", n.df, n.date.Format(utils.DateLayout), curveerr.ErrInvalidDiscountFactor)
		}
		c.dates[i] = n.date
		c.times[i] = utils.YearFraction(referenceDate, n.date, dayCount)
		c.dfs[i] = n.df
		if i > 0 && !(c.times[i] > c.times[i-1]) {
			return nil, fmt.Errorf("curve.New: pillars %s and %s: %w",
				c.dates[i-1].Format(utils.DateLayout), n.date.Format(utils.DateLayout), curveerr.ErrAmbiguousPillar)
		}
	}

	ip, err := interp.New(method.Scheme(), c.times, c.ordinates())
	if err != nil {
		return nil, fmt.Errorf("curve.New: %w", err)
	}
	c.interpolator = ip
	return c, nil
}

// ordinates maps discount factors into the method's interpolation domain.
func (c *Curve) ordinates() []float64 {
	ys := make([]float64, len(c.dfs))
	switch c.method.Domain() {
	case interp.Discount:
		copy(ys, c.dfs)
	case interp.ZeroRate:
		for i := 1; i < len(ys); i++ {
			ys[i] = -math.Log(c.dfs[i]) / c.times[i]
		}
		// The zero rate at the reference date is undefined; hold the first pillar's rate.
		if len(ys) > 1 {
			ys[0] = ys[1]
		}
	default:
		for i, df := range c.dfs {
			ys[i] = math.Log(df)
		}
	}
	return ys
}

func (c *Curve) discountAt(t float64) float64 {
	v := c.interpolator.Value(t)
	switch c.method.Domain() {
	case interp.Discount:
		return v
	case interp.ZeroRate:
		return math.Exp(-v * t)
	default:
		return math.Exp(v)
	}
}

// DF returns the discount factor at t without range checks. Pillar dates return their stored
// value; dates beyond the last pillar extend the final segment.
func (c *Curve) DF(t time.Time) float64 {
	t = utils.Date(t)
	if i := findExact(c.dates, t); i >= 0 {
		return c.dfs[i]
	}
	return c.discountAt(c.YearFraction(t))
}

// Discount returns the discount factor at t, failing for dates before the reference date and,
// unless extrapolation is enabled, after the last pillar.
func (c *Curve) Discount(t time.Time) (float64, error) {
	if err := c.checkRange(utils.Date(t)); err != nil {
		return 0, err
	}
	return c.DF(t), nil
}

// DiscountAt returns the discount factor at a year fraction from the reference date.
func (c *Curve) DiscountAt(t float64) (float64, error) {
	if t < 0 || (!c.extrapolate && t > c.times[len(c.times)-1]) {
		return 0, fmt.Errorf("DiscountAt: %v: %w", t, curveerr.ErrOutOfRange)
	}
	if i := sort.SearchFloat64s(c.times, t); i < len(c.times) && c.times[i] == t {
		return c.dfs[i], nil
	}
	return c.discountAt(t), nil
}

// ZeroRate returns the zero rate to t. At the reference date the rate over the first
// instant is returned.
func (c *Curve) ZeroRate(t time.Time, comp Compounding) (float64, error) {
	if err := c.checkRange(utils.Date(t)); err != nil {
		return 0, err
	}
	yf := c.YearFraction(t)
	if yf <= 0 {
		return DiscountFactorToRate(c.discountAt(instantaneousStep), instantaneousStep, comp), nil
	}
	return DiscountFactorToRate(c.DF(t), yf, comp), nil
}

// ForwardRate returns the forward rate between start and end measured with the curve day count.
// Equal dates give the forward over the following instant.
func (c *Curve) ForwardRate(start, end time.Time, comp Compounding) (float64, error) {
	if end.Before(start) {
		return 0, fmt.Errorf("ForwardRate: end %s before start %s: %w",
			end.Format(utils.DateLayout), start.Format(utils.DateLayout), curveerr.ErrOutOfRange)
	}
	for _, t := range []time.Time{start, end} {
		if err := c.checkRange(utils.Date(t)); err != nil {
			return 0, err
		}
	}
	t1 := c.YearFraction(start)
	t2 := c.YearFraction(end)
	if t2-t1 <= 0 {
		df1 := c.discountAt(t1)
		df2 := c.discountAt(t1 + instantaneousStep)
		return ForwardRateFromDiscountFactors(df1, df2, instantaneousStep, comp), nil
	}
	return ForwardRateFromDiscountFactors(c.DF(start), c.DF(end), t2-t1, comp), nil
}

func (c *Curve) checkRange(t time.Time) error {
	if t.Before(c.referenceDate) {
		return fmt.Errorf("%s before reference date %s: %w",
			t.Format(utils.DateLayout), c.referenceDate.Format(utils.DateLayout), curveerr.ErrOutOfRange)
	}
	if !c.extrapolate && t.After(c.LastDate()) {
		return fmt.Errorf("%s after last pillar %s: %w",
			t.Format(utils.DateLayout), c.LastDate().Format(utils.DateLayout), curveerr.ErrOutOfRange)
	}
	return nil
}

// YearFraction measures t from the reference date with the curve day count.
func (c *Curve) YearFraction(t time.Time) float64 {
	return utils.YearFraction(c.referenceDate, utils.Date(t), c.dayCount)
}

// ReferenceDate returns the curve's reference (base) date.
func (c *Curve) ReferenceDate() time.Time {
	return c.referenceDate
}

// DayCount returns the curve's day count convention.
func (c *Curve) DayCount() utils.DayCount {
	return c.dayCount
}

// Method returns the interpolation method.
func (c *Curve) Method() interp.Method {
	return c.method
}

// ExtrapolationEnabled reports whether queries past the last pillar are allowed.
func (c *Curve) ExtrapolationEnabled() bool {
	return c.extrapolate
}

// LastDate returns the last pillar date.
func (c *Curve) LastDate() time.Time {
	return c.dates[len(c.dates)-1]
}

// Dates returns the node dates, reference date first.
func (c *Curve) Dates() []time.Time {
	return append([]time.Time(nil), c.dates...)
}

// DiscountFactors returns the node discount factors.
func (c *Curve) DiscountFactors() []float64 {
	return append([]float64(nil), c.dfs...)
}
