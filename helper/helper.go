// Package helper turns market quotes into calibration helpers: objects that know their pillar
// date and the quote a candidate curve implies for them.
package helper

import (
	"time"

	"github.com/meenmo/ycurve/calendar"
	"github.com/meenmo/ycurve/curve"
	"github.com/meenmo/ycurve/market"
)

// Curve is the discounting view helpers need from a term structure.
type Curve interface {
	DF(t time.Time) float64
}

var _ Curve = (*curve.Curve)(nil)

// Helper is one calibrating instrument.
type Helper interface {
	// Pillar is the date whose discount factor the instrument determines.
	Pillar() time.Time
	// Quote is the market quote to reproduce.
	Quote() float64
	// ImpliedQuote reprices the instrument off c.
	ImpliedQuote(c Curve) float64
	Describe() string
	// Expired helpers have a zero tenor or mature on or before the evaluation date.
	// They imply their own quote and take no part in the solve.
	Expired() bool
}

type base struct {
	quote   float64
	pillar  time.Time
	desc    string
	expired bool
}

func (b *base) Pillar() time.Time { return b.pillar }
func (b *base) Quote() float64    { return b.quote }
func (b *base) Describe() string  { return b.desc }
func (b *base) Expired() bool     { return b.expired }

// spotDate advances the evaluation date by the index fixing days.
func spotDate(eval time.Time, idx market.ReferenceRateIndex) time.Time {
	return calendar.Advance(idx.Calendar, eval, calendar.Period{Length: idx.FixingDays, Unit: calendar.Days}, idx.Convention, false)
}

func orElse(c, fallback Curve) Curve {
	if c == nil {
		return fallback
	}
	return c
}
