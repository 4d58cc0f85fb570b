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

// FxMarket is the cross-currency context shared by FX swap and basis swap helpers.
// The curve under construction is the non-collateral currency's discount curve.
type FxMarket struct {
	Spot       float64
	Calendar   calendar.Calendar
	Convention calendar.BusinessDayConvention
	EndOfMonth bool

	BaseIndex  market.ReferenceRateIndex
	QuoteIndex market.ReferenceRateIndex

	// Collateral discounts the collateral currency leg.
	Collateral Curve
	// Forecast curves default to the leg's discount curve when nil.
	BaseForecast  Curve
	QuoteForecast Curve

	CollateralIsBase bool
	BasisOnBaseLeg   bool
}

func (m FxMarket) spot(eval time.Time, fixingDays int) time.Time {
	return calendar.Advance(m.Calendar, eval, calendar.Period{Length: fixingDays, Unit: calendar.Days}, m.Convention, false)
}

// FxSwap reprices FX forward points by covered interest parity.
type FxSwap struct {
	base
	spotDate, maturity time.Time
	mkt                FxMarket
}

// NewFxSwap builds an FX forward points helper.
func NewFxSwap(eval time.Time, q instrument.FxSwapPoints, mkt FxMarket) *FxSwap {
	spot := mkt.spot(eval, q.FixingDays)
	maturity := calendar.Advance(mkt.Calendar, spot, q.Tenor, mkt.Convention, mkt.EndOfMonth)
	return &FxSwap{
		base: base{
			quote:   q.Points,
			pillar:  maturity,
			desc:    q.Describe(),
			expired: q.Tenor.IsZero() || !maturity.After(eval),
		},
		spotDate: spot,
		maturity: maturity,
		mkt:      mkt,
	}
}

// ImpliedQuote returns spot·(DFbase(s,m)/DFquote(s,m) − 1), where DF(s,m) is the forward
// discount factor between spot and maturity.
func (f *FxSwap) ImpliedQuote(c Curve) float64 {
	if f.expired {
		return f.quote
	}
	collRatio := f.mkt.Collateral.DF(f.spotDate) / f.mkt.Collateral.DF(f.maturity)
	ratio := c.DF(f.spotDate) / c.DF(f.maturity)
	if f.mkt.CollateralIsBase {
		return (ratio/collRatio - 1) * f.mkt.Spot
	}
	return (collRatio/ratio - 1) * f.mkt.Spot
}

// CrossCurrencyBasis is a constant-notional floating-for-floating swap with principal
// exchanges at spot and maturity.
type CrossCurrencyBasis struct {
	base
	spotDate, maturity time.Time
	baseLeg, quoteLeg  []schedule.Period
	mkt                FxMarket
}

// NewCrossCurrencyBasis builds a basis swap helper. Each leg rolls on its own index tenor.
func NewCrossCurrencyBasis(eval time.Time, q instrument.CrossCurrencyBasis, mkt FxMarket) (*CrossCurrencyBasis, error) {
	spot := mkt.spot(eval, q.FixingDays)
	maturity := calendar.Advance(mkt.Calendar, spot, q.Tenor, mkt.Convention, false)
	h := &CrossCurrencyBasis{
		base: base{
			quote:   q.Spread,
			pillar:  maturity,
			desc:    q.Describe(),
			expired: q.Tenor.IsZero() || !maturity.After(eval),
		},
		spotDate: spot,
		maturity: maturity,
		mkt:      mkt,
	}
	if h.expired {
		return h, nil
	}
	var err error
	if h.baseLeg, err = schedule.Generate(spot, maturity, mkt.BaseIndex.Tenor, mkt.Calendar, mkt.Convention, false); err != nil {
		return nil, fmt.Errorf("%s: base leg: %w", h.desc, err)
	}
	if h.quoteLeg, err = schedule.Generate(spot, maturity, mkt.QuoteIndex.Tenor, mkt.Calendar, mkt.Convention, false); err != nil {
		return nil, fmt.Errorf("%s: quote leg: %w", h.desc, err)
	}
	return h, nil
}

// legValue returns the floating coupon PV including principal exchanges, and the annuity.
func (h *CrossCurrencyBasis) legValue(periods []schedule.Period, fwd, disc Curve, dc utils.DayCount) (pv, annuity float64) {
	pv = disc.DF(h.maturity) - disc.DF(h.spotDate)
	for _, p := range periods {
		tau := utils.YearFraction(p.StartDate, p.EndDate, dc)
		df := disc.DF(p.PayDate)
		pv += (fwd.DF(p.StartDate)/fwd.DF(p.EndDate) - 1) * df
		annuity += tau * df
	}
	return pv, annuity
}

// ImpliedQuote returns the spread on the basis leg that equates both legs' values.
func (h *CrossCurrencyBasis) ImpliedQuote(c Curve) float64 {
	if h.expired {
		return h.quote
	}
	baseDisc, quoteDisc := c, h.mkt.Collateral
	if h.mkt.CollateralIsBase {
		baseDisc, quoteDisc = h.mkt.Collateral, c
	}
	basePV, baseAnnuity := h.legValue(h.baseLeg, orElse(h.mkt.BaseForecast, baseDisc), baseDisc, h.mkt.BaseIndex.DayCount)
	quotePV, quoteAnnuity := h.legValue(h.quoteLeg, orElse(h.mkt.QuoteForecast, quoteDisc), quoteDisc, h.mkt.QuoteIndex.DayCount)
	if h.mkt.BasisOnBaseLeg {
		if baseAnnuity == 0 {
			return 0
		}
		return (quotePV - basePV) / baseAnnuity
	}
	if quoteAnnuity == 0 {
		return 0
	}
	return (basePV - quotePV) / quoteAnnuity
}
