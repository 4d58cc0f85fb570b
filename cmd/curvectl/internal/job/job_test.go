package job_test

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/ycurve/cmd/curvectl/internal/job"
	"github.com/meenmo/ycurve/config"
	"github.com/meenmo/ycurve/curveerr"
	"github.com/meenmo/ycurve/registry"
	"github.com/meenmo/ycurve/service"
)

const zarJob = `
config:
  maxPasses: 20
curves:
  - handle: ZAR.OIS
    type: explicit
    interpolation: LogLinear
    dayCount: ACT/365F
    dates: [2024-03-05, 2025-03-05, 2029-03-05]
    discountFactors: [1, 0.925, 0.68]
  - handle: ZAR.JIBAR
    type: bootstrap
    baseDate: 2024-03-05
    index: JIBAR
    tenor: 3M
    interpolation: Flat_On_ForwardRates
    discountCurve: ZAR.OIS
    groups:
      - label: Deposits
        rows:
          - {Tenors: 3M, Rates: 0.082, Include: true}
      - label: FRAs
        rows:
          - {FRA Tenors: 3x6, Rates: "8.3%", Include: true}
          - {FRA Tenors: 6x9, Rates: 0.084, Include: true}
      - label: Interest Rate Swaps
        rows:
          - {Tenors: 2Y, Rates: 0.085, Include: true}
          - {Tenors: 3Y, Rates: 0.086, Include: true}
          - {Tenors: 4Y, Rates: "#N/A", Include: false}
queries:
  - handle: ZAR.JIBAR
    discountFactors: [2024-03-05, 2025-03-05]
    yearFractions: [0, 1.5]
    zeroRates:
      dates: [2025-03-05]
      compounding: NACQ
    forwardRates:
      starts: [2024-06-05]
      ends: [2024-09-05]
      compounding: Simple
    instruments: true
    reprice: true
`

func newService(t *testing.T, cfg config.Config) *service.Service {
	t.Helper()
	svc, err := service.New(registry.New(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return svc
}

func TestDecode(t *testing.T) {
	t.Parallel()

	j, err := job.Decode(strings.NewReader(zarJob))
	require.NoError(t, err)
	assert.Equal(t, 20, j.Config.MaxPasses)
	assert.Equal(t, config.DefaultConfig.ConvergenceTolerance, j.Config.ConvergenceTolerance)
	require.Len(t, j.Curves, 2)
	assert.Equal(t, job.TypeExplicit, j.Curves[0].Type)
	assert.Equal(t, "2024-03-05", j.Curves[1].BaseDate)
	require.Len(t, j.Curves[1].Groups, 3)
	assert.Equal(t, "8.3%", j.Curves[1].Groups[1].Rows[0]["Rates"])
	require.Len(t, j.Queries, 1)
	assert.True(t, j.Queries[0].Reprice)
}

func TestDecode_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{"no curves", "queries: []\n"},
		{"unknown field", "curves:\n  - handle: A\n    type: explicit\n    interpolation: LogLinear\n    colour: red\n"},
		{"unknown type", "curves:\n  - handle: A\n    type: spline\n    interpolation: LogLinear\n"},
		{"missing handle", "curves:\n  - type: explicit\n    interpolation: LogLinear\n"},
		{"missing base date", "curves:\n  - handle: A\n    type: bootstrap\n    interpolation: LogLinear\n"},
		{"group without label", "curves:\n  - handle: A\n    type: bootstrap\n    baseDate: 2024-03-05\n    interpolation: LogLinear\n    groups:\n      - rows: []\n"},
		{"bad config", "config:\n  maxIterations: 0\ncurves:\n  - handle: A\n    type: explicit\n    interpolation: LogLinear\n"},
		{"query without handle", "curves:\n  - handle: A\n    type: explicit\n    interpolation: LogLinear\nqueries:\n  - reprice: true\n"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := job.Decode(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestBuildAndQuery(t *testing.T) {
	t.Parallel()

	j, err := job.Decode(strings.NewReader(zarJob))
	require.NoError(t, err)
	svc := newService(t, j.Config)

	ois, err := job.BuildCurve(svc, j.Curves[0])
	require.NoError(t, err)
	assert.Equal(t, "Explicit", ois.Kind)
	assert.Equal(t, "ACT/365F", ois.DayCount)
	assert.Equal(t, "Exponential_On_DiscountFactors", ois.Method)
	require.Len(t, ois.Pillars, 3)
	assert.Equal(t, "2029-03-05", ois.Pillars[2].Date)
	assert.False(t, ois.AllowExtrapolation)
	assert.Equal(t, 0.68, ois.Pillars[2].DiscountFactor)

	jibar, err := job.BuildCurve(svc, j.Curves[1])
	require.NoError(t, err)
	assert.Equal(t, "Bootstrapped", jibar.Kind)
	assert.Equal(t, "JIBAR-3M", jibar.Index)
	assert.True(t, strings.HasPrefix(jibar.Display, "@@ZAR.JIBAR::"))
	assert.Len(t, jibar.Pillars, 5)
	assert.Contains(t, jibar.Warnings, "Instruments with NaNs found")

	res, err := job.RunQuery(svc, j.Queries[0])
	require.NoError(t, err)
	assert.Equal(t, "ZAR.JIBAR", res.Handle)
	require.Len(t, res.DiscountFactors, 2)
	assert.Equal(t, 1.0, res.DiscountFactors[0])
	assert.Less(t, res.DiscountFactors[1], 1.0)
	assert.Equal(t, []float64{1, res.YearFractionDiscounts[1]}, res.YearFractionDiscounts)
	require.Len(t, res.ZeroRates, 1)
	assert.InDelta(t, 0.083, res.ZeroRates[0], 0.01)
	require.Len(t, res.ForwardRates, 1)
	assert.InDelta(t, 0.083, res.ForwardRates[0], 1e-8)
	require.Len(t, res.Instruments, 3)
	assert.Equal(t, []string{"Deposit 3M"}, res.Instruments[0].Quotes)
	require.Len(t, res.Repricing, 5)
	for _, r := range res.Repricing {
		assert.InDelta(t, r.Quote, r.Implied, 1e-8, r.Instrument)
	}
}

func TestBuildCurve_Errors(t *testing.T) {
	t.Parallel()

	svc := newService(t, config.DefaultConfig)

	_, err := job.BuildCurve(svc, job.CurveSpec{Handle: "A", Type: job.TypeBootstrap, BaseDate: "05/03/2024", Interpolation: "LogLinear"})
	assert.Error(t, err)

	_, err = job.BuildCurve(svc, job.CurveSpec{Handle: "A", Type: job.TypeBootstrap, BaseDate: "2024-03-05", Index: "JIBAR", Tenor: "3M", Interpolation: "Bogus"})
	assert.ErrorIs(t, err, curveerr.ErrUnsupportedInterpolation)

	_, err = job.BuildCurve(svc, job.CurveSpec{Handle: "A", Type: job.TypeExplicit, Interpolation: "LogLinear", DayCount: "ACT/360", Dates: []string{"2024-03-05"}, DiscountFactors: []float64{1, 0.9}})
	assert.ErrorIs(t, err, curveerr.ErrIncompatibleArraySize)

	_, err = job.RunQuery(svc, job.QuerySpec{Handle: "A", Reprice: true})
	assert.ErrorIs(t, err, curveerr.ErrCurveNotFound)

	_, err = job.BuildCurve(svc, job.CurveSpec{Handle: "A", Type: job.TypeExplicit, Interpolation: "LogLinear", DayCount: "ACT/360", Dates: []string{"2024-03-05", "2025-03-05"}, DiscountFactors: []float64{1, 0.95}})
	require.NoError(t, err)
	_, err = job.RunQuery(svc, job.QuerySpec{Handle: "A", ZeroRates: &job.RateQuery{Dates: []string{"2025-03-05"}, Compounding: "Weekly"}})
	assert.ErrorIs(t, err, curveerr.ErrUnsupportedCompounding)
	_, err = job.RunQuery(svc, job.QuerySpec{Handle: "A", Reprice: true})
	assert.ErrorIs(t, err, curveerr.ErrNotBootstrapped)
}
