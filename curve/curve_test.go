package curve_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/ycurve/curve"
	"github.com/meenmo/ycurve/curveerr"
	"github.com/meenmo/ycurve/interp"
	"github.com/meenmo/ycurve/utils"
)

var ref = time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)

const flatRate = 0.05

func flatCurve(t *testing.T, method interp.Method, extrapolate bool) *curve.Curve {
	t.Helper()
	dates := []time.Time{
		ref.AddDate(0, 3, 0),
		ref.AddDate(1, 0, 0),
		ref.AddDate(2, 0, 0),
		ref.AddDate(5, 0, 0),
	}
	dfs := make([]float64, len(dates))
	for i, d := range dates {
		dfs[i] = math.Exp(-flatRate * utils.YearFraction(ref, d, utils.Act365F))
	}
	c, err := curve.New(ref, dates, dfs, utils.Act365F, method, extrapolate)
	require.NoError(t, err)
	return c
}

func TestNew_AddsReferenceNode(t *testing.T) {
	t.Parallel()

	c := flatCurve(t, interp.FlatOnForwardRates, false)
	require.Len(t, c.Dates(), 5)
	assert.Equal(t, ref, c.Dates()[0])
	assert.Equal(t, 1.0, c.DF(ref))
	assert.Equal(t, 0.0, c.YearFraction(c.Dates()[0]))
	assert.Equal(t, ref.AddDate(5, 0, 0), c.LastDate())
}

func TestNew_SortsPillars(t *testing.T) {
	t.Parallel()

	c, err := curve.New(ref,
		[]time.Time{ref.AddDate(1, 0, 0), ref, ref.AddDate(0, 6, 0)},
		[]float64{0.95, 1, 0.975},
		utils.Act360, interp.LinearOnZeroRates, false)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0.975, 0.95}, c.DiscountFactors())
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	one := []time.Time{ref.AddDate(1, 0, 0)}
	_, err := curve.New(ref, one, []float64{0.9, 0.8}, utils.Act365F, interp.FlatOnForwardRates, false)
	assert.ErrorIs(t, err, curveerr.ErrIncompatibleArraySize)

	_, err = curve.New(ref, []time.Time{ref.AddDate(0, 0, -1)}, []float64{1.001}, utils.Act365F, interp.FlatOnForwardRates, false)
	assert.ErrorIs(t, err, curveerr.ErrOutOfRange)

	_, err = curve.New(ref, []time.Time{ref, ref.AddDate(1, 0, 0)}, []float64{0.99, 0.95}, utils.Act365F, interp.FlatOnForwardRates, false)
	assert.ErrorIs(t, err, curveerr.ErrInvalidDiscountFactor)

	_, err = curve.New(ref, one, []float64{-0.5}, utils.Act365F, interp.FlatOnForwardRates, false)
	assert.ErrorIs(t, err, curveerr.ErrInvalidDiscountFactor)

	_, err = curve.New(ref, one, []float64{math.NaN()}, utils.Act365F, interp.FlatOnForwardRates, false)
	assert.ErrorIs(t, err, curveerr.ErrInvalidDiscountFactor)

	twice := []time.Time{ref.AddDate(1, 0, 0), ref.AddDate(1, 0, 0)}
	_, err = curve.New(ref, twice, []float64{0.95, 0.951}, utils.Act365F, interp.FlatOnForwardRates, false)
	assert.ErrorIs(t, err, curveerr.ErrAmbiguousPillar)
}

func TestFlatCurve_Interpolation(t *testing.T) {
	t.Parallel()

	for _, m := range []interp.Method{interp.FlatOnForwardRates, interp.ExponentialOnDiscountFactors, interp.LinearOnZeroRates} {
		c := flatCurve(t, m, true)
		for _, d := range []time.Time{ref.AddDate(0, 1, 0), ref.AddDate(0, 9, 17), ref.AddDate(3, 2, 0), ref.AddDate(8, 0, 0)} {
			want := math.Exp(-flatRate * utils.YearFraction(ref, d, utils.Act365F))
			assert.InDelta(t, want, c.DF(d), 1e-14, "%s at %s", m, d.Format(utils.DateLayout))
		}
	}
}

func TestCurve_PillarsExact(t *testing.T) {
	t.Parallel()

	for _, m := range interp.Methods() {
		c := flatCurve(t, m, false)
		for i, d := range c.Dates() {
			got, err := c.Discount(d)
			require.NoError(t, err)
			assert.Equal(t, c.DiscountFactors()[i], got, m.String())
		}
	}
}

func TestCurve_RangeChecks(t *testing.T) {
	t.Parallel()

	c := flatCurve(t, interp.FlatOnForwardRates, false)

	_, err := c.Discount(ref.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, curveerr.ErrOutOfRange)
	_, err = c.Discount(ref.AddDate(6, 0, 0))
	assert.ErrorIs(t, err, curveerr.ErrOutOfRange)
	_, err = c.DiscountAt(-0.1)
	assert.ErrorIs(t, err, curveerr.ErrOutOfRange)
	_, err = c.DiscountAt(10)
	assert.ErrorIs(t, err, curveerr.ErrOutOfRange)

	ext := flatCurve(t, interp.FlatOnForwardRates, true)
	assert.False(t, c.ExtrapolationEnabled())
	assert.True(t, ext.ExtrapolationEnabled())
	df, err := ext.Discount(ref.AddDate(6, 0, 0))
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-flatRate*ext.YearFraction(ref.AddDate(6, 0, 0))), df, 1e-14)

	df, err = c.DiscountAt(0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, df)
}

func TestCurve_Rates(t *testing.T) {
	t.Parallel()

	c := flatCurve(t, interp.FlatOnForwardRates, false)

	z, err := c.ZeroRate(ref.AddDate(2, 0, 0), curve.NACC)
	require.NoError(t, err)
	assert.InDelta(t, flatRate, z, 1e-12)

	z, err = c.ZeroRate(ref, curve.NACC)
	require.NoError(t, err)
	assert.InDelta(t, flatRate, z, 1e-10)

	z, err = c.ZeroRate(ref.AddDate(1, 0, 0), curve.NACA)
	require.NoError(t, err)
	yf := c.YearFraction(ref.AddDate(1, 0, 0))
	assert.InDelta(t, math.Pow(math.Exp(flatRate*yf), 1/yf)-1, z, 1e-12)

	f, err := c.ForwardRate(ref.AddDate(1, 0, 0), ref.AddDate(2, 0, 0), curve.NACC)
	require.NoError(t, err)
	assert.InDelta(t, flatRate, f, 1e-12)

	f, err = c.ForwardRate(ref.AddDate(1, 0, 0), ref.AddDate(1, 0, 0), curve.NACC)
	require.NoError(t, err)
	assert.InDelta(t, flatRate, f, 1e-10)

	_, err = c.ForwardRate(ref.AddDate(2, 0, 0), ref.AddDate(1, 0, 0), curve.NACC)
	assert.ErrorIs(t, err, curveerr.ErrOutOfRange)
}

func TestCompounding_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, c := range []curve.Compounding{curve.Simple, curve.NACC, curve.NACA, curve.NACS, curve.NACQ, curve.NACM} {
		for _, yf := range []float64{0.25, 1, 7.5} {
			df := curve.RateToDiscountFactor(0.043, yf, c)
			assert.InDelta(t, 0.043, curve.DiscountFactorToRate(df, yf, c), 1e-13, "%s %v", c, yf)
		}
	}

	assert.InDelta(t, (1/0.98-1)/0.5, curve.DiscountFactorToRate(0.98, 0.5, curve.Simple), 1e-15)
	assert.InDelta(t, math.Exp(0.05)-1, curve.ConvertRate(0.05, 1, curve.NACC, curve.NACA), 1e-14)
	assert.InDelta(t, 2*(math.Exp(0.025)-1), curve.ConvertRate(0.05, 3, curve.NACC, curve.NACS), 1e-14)
	assert.Equal(t, 0.05, curve.ConvertRate(0.05, 3, curve.NACQ, curve.NACQ))
	assert.True(t, math.IsNaN(curve.DiscountFactorToRate(0.99, 0, curve.NACC)))
	assert.InDelta(t, 0.05, curve.ForwardRateFromDiscountFactors(1, math.Exp(-0.05*2), 2, curve.NACC), 1e-15)
}

func TestParseCompounding(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]curve.Compounding{
		"simple":      curve.Simple,
		"NACC":        curve.NACC,
		"continuous":  curve.NACC,
		"semi-annual": curve.NACS,
		" nacq ":      curve.NACQ,
		"Monthly":     curve.NACM,
	} {
		got, err := curve.ParseCompounding(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := curve.ParseCompounding("NACW")
	assert.ErrorIs(t, err, curveerr.ErrUnsupportedCompounding)
	assert.Equal(t, "NACS", curve.NACS.String())
	assert.Equal(t, 12.0, curve.NACM.Frequency())
	assert.Equal(t, 0.0, curve.NACC.Frequency())
}
