// Package fxbasis bootstraps a quote-currency discount curve from FX forward points and
// cross-currency basis swaps, consistent with covered interest parity against already-built
// base-currency curves.
package fxbasis

import (
	"fmt"
	"math"
	"time"

	"github.com/meenmo/ycurve/bootstrap"
	"github.com/meenmo/ycurve/calendar"
	"github.com/meenmo/ycurve/config"
	"github.com/meenmo/ycurve/curveerr"
	"github.com/meenmo/ycurve/helper"
	"github.com/meenmo/ycurve/instrument"
	"github.com/meenmo/ycurve/interp"
	"github.com/meenmo/ycurve/market"
)

// Input describes an FX-basis-adjusted curve.
type Input struct {
	EvaluationDate time.Time
	BaseIndex      market.ReferenceRateIndex
	QuoteIndex     market.ReferenceRateIndex
	Spot           float64

	// Collateral is the base-currency discount curve; required.
	Collateral helper.Curve
	// BaseForecast defaults to Collateral. QuoteForecast is required when any cross-currency
	// basis swap is included.
	BaseForecast  helper.Curve
	QuoteForecast helper.Curve

	Method      interp.Method
	Extrapolate bool
	Groups      []instrument.Group
	Config      config.Config
}

// Bootstrap builds the helpers on the joint calendar of both indices and solves the curve.
// The curve uses the quote index day count.
func Bootstrap(in Input) (*bootstrap.Result, []string, error) {
	if in.Spot == 0 || math.IsNaN(in.Spot) || math.IsInf(in.Spot, 0) {
		return nil, nil, fmt.Errorf("fxbasis.Bootstrap: Spot FX: %w", curveerr.ErrMissingParameter)
	}
	if in.Collateral == nil {
		return nil, nil, fmt.Errorf("fxbasis.Bootstrap: Base Currency Discount Curve: %w", curveerr.ErrMissingParameter)
	}
	for _, g := range in.Groups {
		if g.Kind != instrument.KindFxSwapPoints && g.Kind != instrument.KindCrossCurrencyBasis {
			return nil, nil, fmt.Errorf("fxbasis.Bootstrap: %q: %w", g.Label, curveerr.ErrUnsupportedInstrument)
		}
		// Forecasting the quote leg off the curve being built prices it at par, so no spread
		// can be calibrated.
		if g.Kind == instrument.KindCrossCurrencyBasis && len(g.Included()) > 0 && in.QuoteForecast == nil {
			return nil, nil, fmt.Errorf("fxbasis.Bootstrap: %q needs a Quote Currency Forecast Curve: %w", g.Label, curveerr.ErrMissingParameter)
		}
	}

	mkt := &helper.FxMarket{
		Spot:             in.Spot,
		Calendar:         calendar.Join(in.BaseIndex.Calendar, in.QuoteIndex.Calendar),
		Convention:       in.BaseIndex.Convention,
		EndOfMonth:       in.BaseIndex.EndOfMonth,
		BaseIndex:        in.BaseIndex,
		QuoteIndex:       in.QuoteIndex,
		Collateral:       in.Collateral,
		BaseForecast:     in.BaseForecast,
		QuoteForecast:    in.QuoteForecast,
		CollateralIsBase: true,
	}
	helpers, warnings, err := bootstrap.BuildHelpers(bootstrap.BuildInput{
		EvaluationDate: in.EvaluationDate,
		Index:          in.QuoteIndex,
		Groups:         in.Groups,
		Fx:             mkt,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("fxbasis.Bootstrap: %w", err)
	}
	res, err := bootstrap.Solve(bootstrap.Input{
		ReferenceDate: in.EvaluationDate,
		DayCount:      in.QuoteIndex.DayCount,
		Method:        in.Method,
		Helpers:       helpers,
		Config:        in.Config,
		Extrapolate:   in.Extrapolate,
	})
	if err != nil {
		return nil, warnings, fmt.Errorf("fxbasis.Bootstrap: %w", err)
	}
	return res, warnings, nil
}
