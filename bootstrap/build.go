package bootstrap

import (
	"fmt"
	"math"
	"time"

	"github.com/meenmo/ycurve/curveerr"
	"github.com/meenmo/ycurve/helper"
	"github.com/meenmo/ycurve/instrument"
	"github.com/meenmo/ycurve/market"
)

// WarnNaNQuotes is reported when any row, included or not, carries a NaN quote.
const WarnNaNQuotes = "Instruments with NaNs found"

// BuildInput is what helper construction needs besides the quotes.
type BuildInput struct {
	EvaluationDate time.Time
	Index          market.ReferenceRateIndex
	Groups         []instrument.Group
	// Optional external curves for swaps and OIS.
	Discount helper.Curve
	Forecast helper.Curve
	// Fx is required by FX swap and cross-currency basis quotes.
	Fx *helper.FxMarket
}

// BuildHelpers makes one helper per included quote, in group order.
func BuildHelpers(in BuildInput) ([]helper.Helper, []string, error) {
	var (
		helpers  []helper.Helper
		warnings []string
		sawNaN   bool
	)
	curves := helper.SwapCurves{Discount: in.Discount, Forecast: in.Forecast}
	for _, g := range in.Groups {
		for _, q := range g.Quotes {
			if math.IsNaN(q.Value()) {
				sawNaN = true
			}
			if !q.Included() {
				continue
			}
			h, err := newHelper(in, curves, q)
			if err != nil {
				return nil, nil, err
			}
			helpers = append(helpers, h)
		}
	}
	if sawNaN {
		warnings = append(warnings, WarnNaNQuotes)
	}
	return helpers, warnings, nil
}

func newHelper(in BuildInput, curves helper.SwapCurves, q instrument.Quote) (helper.Helper, error) {
	eval := in.EvaluationDate
	switch q := q.(type) {
	case instrument.Deposit:
		return helper.NewDeposit(eval, q, in.Index), nil
	case instrument.FRA:
		return helper.NewFRA(eval, q, in.Index), nil
	case instrument.Swap:
		return helper.NewSwap(eval, q, in.Index, curves)
	case instrument.OIS:
		return helper.NewOIS(eval, q, in.Index, curves)
	case instrument.FxSwapPoints:
		if in.Fx == nil {
			return nil, fmt.Errorf("%s needs an FX basis bootstrap: %w", q.Describe(), curveerr.ErrUnsupportedInstrument)
		}
		return helper.NewFxSwap(eval, q, *in.Fx), nil
	case instrument.CrossCurrencyBasis:
		if in.Fx == nil {
			return nil, fmt.Errorf("%s needs an FX basis bootstrap: %w", q.Describe(), curveerr.ErrUnsupportedInstrument)
		}
		return helper.NewCrossCurrencyBasis(eval, q, *in.Fx)
	}
	return nil, fmt.Errorf("%T: %w", q, curveerr.ErrUnsupportedInstrument)
}
