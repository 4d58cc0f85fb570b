// Package bootstrap calibrates a discount curve to a set of helpers so that every helper
// reprices its quote.
//
// The solve is a fold over the helpers sorted by pillar date. Each step fixes one pillar
// discount factor by root-finding against the pillars already solved, and records an
// immutable snapshot of the pillar list. Interpolations whose segments depend on later
// nodes then get further passes over the full curve until no pillar moves.
package bootstrap

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/meenmo/ycurve/config"
	"github.com/meenmo/ycurve/curve"
	"github.com/meenmo/ycurve/curveerr"
	"github.com/meenmo/ycurve/helper"
	"github.com/meenmo/ycurve/interp"
	"github.com/meenmo/ycurve/utils"
)

// Input describes one curve calibration.
type Input struct {
	ReferenceDate time.Time
	DayCount      utils.DayCount
	Method        interp.Method
	Helpers       []helper.Helper
	Config        config.Config
	Extrapolate   bool
}

// Pillar is a solved curve node.
type Pillar struct {
	Date           time.Time
	DiscountFactor float64
	Instrument     string
}

// Step is one state of the fold: the pillar just solved and the pillar list after it.
type Step struct {
	Pass           int
	Index          int
	Instrument     string
	Pillar         time.Time
	DiscountFactor float64
	Iterations     int
	Pillars        []Pillar
}

// Result is a calibrated curve with its audit trail.
type Result struct {
	Curve   *curve.Curve
	Pillars []Pillar
	Steps   []Step
	Passes  int
	// Helpers are the calibrated helpers in pillar order.
	Helpers []helper.Helper
	// Skipped lists expired helpers, which take no part in the solve.
	Skipped []string
}

// Solve calibrates the curve. Helpers are sorted by pillar date; two helpers sharing a pillar
// date fail with ErrAmbiguousPillar, and a pillar that cannot be solved fails with
// ErrBootstrapFailure naming the instrument.
func Solve(in Input) (*Result, error) {
	res := &Result{}
	var active []helper.Helper
	for _, h := range in.Helpers {
		if h.Expired() {
			res.Skipped = append(res.Skipped, h.Describe())
			continue
		}
		active = append(active, h)
	}
	if len(active) == 0 {
		return nil, fmt.Errorf("bootstrap.Solve: no instruments to calibrate: %w", curveerr.ErrMissingInstrumentData)
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Pillar().Before(active[j].Pillar())
	})
	for i := 1; i < len(active); i++ {
		if active[i].Pillar().Equal(active[i-1].Pillar()) {
			return nil, &curveerr.PillarError{
				Pillar: active[i].Pillar(),
				First:  active[i-1].Describe(),
				Second: active[i].Describe(),
			}
		}
	}

	s := &solver{in: in, helpers: active}
	s.dates = make([]time.Time, len(active))
	for i, h := range active {
		s.dates[i] = h.Pillar()
	}
	s.dfs = make([]float64, 0, len(active))

	// First pass: each pillar against the ones before it.
	for i, h := range active {
		guess := 1.0
		if i > 0 {
			guess = s.dfs[i-1]
		}
		s.dfs = append(s.dfs, guess)
		df, iters, err := s.solvePillar(i, i+1)
		if err != nil {
			return nil, &curveerr.BootstrapError{Instrument: h.Describe(), Pillar: h.Pillar(), Err: err}
		}
		s.dfs[i] = df
		res.Steps = append(res.Steps, s.step(1, i, iters))
	}
	res.Passes = 1

	// Further passes over the full curve until no pillar needs to move. Local methods leave
	// solved pillars untouched when later ones are added, so the first pass is final for them.
	converged := in.Method.IsLocal() || in.Config.MaxPasses <= 1
	for pass := 2; !converged && pass <= in.Config.MaxPasses; pass++ {
		res.Passes = pass
		maxMove, worst := 0.0, -1
		for i, h := range active {
			old := s.dfs[i]
			df, iters, err := s.solvePillar(i, len(active))
			if err != nil {
				return nil, &curveerr.BootstrapError{Instrument: h.Describe(), Pillar: h.Pillar(), Err: err}
			}
			if iters == 0 {
				continue
			}
			s.dfs[i] = df
			res.Steps = append(res.Steps, s.step(pass, i, iters))
			if move := math.Abs(df - old); move > maxMove {
				maxMove, worst = move, i
			}
		}
		if worst < 0 || maxMove <= in.Config.PassTolerance {
			converged = true
			break
		}
	}
	if !converged {
		h := active[len(active)-1]
		return nil, &curveerr.BootstrapError{
			Instrument: h.Describe(),
			Pillar:     h.Pillar(),
			Err:        fmt.Errorf("pillars still moving after %d passes", in.Config.MaxPasses),
		}
	}

	c, err := curve.New(in.ReferenceDate, s.dates, s.dfs, in.DayCount, in.Method, in.Extrapolate)
	if err != nil {
		return nil, fmt.Errorf("bootstrap.Solve: %w", err)
	}
	res.Curve = c
	res.Helpers = active
	res.Pillars = s.pillars(len(active))
	return res, nil
}

type solver struct {
	in      Input
	helpers []helper.Helper
	dates   []time.Time
	dfs     []float64
}

// solvePillar solves the discount factor of pillar i on the curve made of the first n pillars.
// It returns zero iterations when the current value already reprices the helper.
func (s *solver) solvePillar(i, n int) (float64, int, error) {
	h := s.helpers[i]
	quote := h.Quote()
	if math.IsNaN(quote) {
		return 0, 0, fmt.Errorf("quote is NaN")
	}
	ftol := s.in.Config.ConvergenceTolerance * math.Max(math.Abs(quote), 1)

	dfs := append([]float64(nil), s.dfs[:n]...)
	var buildErr error
	residual := func(x float64) float64 {
		dfs[i] = x
		c, err := curve.New(s.in.ReferenceDate, s.dates[:n], dfs, s.in.DayCount, s.in.Method, true)
		if err != nil {
			buildErr = err
			return math.NaN()
		}
		return h.ImpliedQuote(c) - quote
	}

	if r := residual(s.dfs[i]); !math.IsNaN(r) && math.Abs(r) <= ftol {
		return s.dfs[i], 0, nil
	}
	df, iters, err := brent(residual, s.in.Config.MinDiscountFactor, s.in.Config.MaxDiscountFactor, ftol, s.in.Config.MaxIterations)
	if buildErr != nil {
		return 0, iters, buildErr
	}
	if err != nil {
		return 0, iters, err
	}
	if iters == 0 {
		// A bracket endpoint was already a root.
		iters = 1
	}
	return df, iters, nil
}

func (s *solver) pillars(n int) []Pillar {
	out := make([]Pillar, n)
	for i := 0; i < n; i++ {
		out[i] = Pillar{Date: s.dates[i], DiscountFactor: s.dfs[i], Instrument: s.helpers[i].Describe()}
	}
	return out
}

func (s *solver) step(pass, i, iters int) Step {
	return Step{
		Pass:           pass,
		Index:          i,
		Instrument:     s.helpers[i].Describe(),
		Pillar:         s.dates[i],
		DiscountFactor: s.dfs[i],
		Iterations:     iters,
		Pillars:        s.pillars(len(s.dfs)),
	}
}
