package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/meenmo/ycurve/bootstrap"
	"github.com/meenmo/ycurve/curveerr"
	"github.com/meenmo/ycurve/fxbasis"
	"github.com/meenmo/ycurve/helper"
	"github.com/meenmo/ycurve/instrument"
	"github.com/meenmo/ycurve/interp"
	"github.com/meenmo/ycurve/market"
	"github.com/meenmo/ycurve/registry"
)

// GroupInput is one labelled instrument table.
type GroupInput struct {
	Label string           `yaml:"label" json:"label"`
	Rows  []instrument.Row `yaml:"rows" json:"rows"`
}

// BootstrapRequest describes a single-currency curve.
type BootstrapRequest struct {
	Handle      string
	BaseDate    time.Time
	IndexName   string
	IndexTenor  string
	CustomIndex *market.CustomIndexSpec
	// Interpolation names an interp.Method.
	Interpolation      string
	AllowExtrapolation bool
	// DiscountCurve discounts swap cash flows while forwards come off the new curve.
	// ForecastCurve projects forwards while the new curve discounts. At most one may be set.
	DiscountCurve string
	ForecastCurve string
	Groups        []GroupInput
}

// Bootstrap calibrates a curve to the request's instruments and stores it under the handle.
// It returns the registry display string. On any error the registry is left unchanged.
func (s *Service) Bootstrap(req BootstrapRequest) (string, error) {
	if err := registry.ValidateHandle(req.Handle); err != nil {
		return "", fmt.Errorf("Bootstrap: %w", err)
	}
	if req.BaseDate.IsZero() {
		return "", fmt.Errorf("Bootstrap: BaseDate: %w", curveerr.ErrMissingParameter)
	}
	idx, err := resolveIndex("Rate Index", req.IndexName, req.IndexTenor, req.CustomIndex)
	if err != nil {
		return "", fmt.Errorf("Bootstrap: %w", err)
	}
	method, err := parseMethod(req.Interpolation)
	if err != nil {
		return "", fmt.Errorf("Bootstrap: %w", err)
	}
	if req.DiscountCurve != "" && req.ForecastCurve != "" {
		return "", fmt.Errorf("Bootstrap: DiscountCurve and ForecastCurve both set: %w", curveerr.ErrConflictingParameters)
	}

	in := bootstrap.BuildInput{EvaluationDate: req.BaseDate, Index: idx}
	var deps []registry.Ref
	if req.DiscountCurve != "" {
		c, ref, err := s.resolveCurve(req.DiscountCurve)
		if err != nil {
			return "", fmt.Errorf("Bootstrap: DiscountCurve: %w", err)
		}
		in.Discount = asHelperCurve(c)
		deps = append(deps, ref)
	}
	if req.ForecastCurve != "" {
		c, ref, err := s.resolveCurve(req.ForecastCurve)
		if err != nil {
			return "", fmt.Errorf("Bootstrap: ForecastCurve: %w", err)
		}
		in.Forecast = asHelperCurve(c)
		deps = append(deps, ref)
	}

	groups, skipped, err := s.parseGroups(req.Handle, req.Groups)
	if err != nil {
		return "", fmt.Errorf("Bootstrap: %w", err)
	}
	in.Groups = groups

	helpers, warnings, err := bootstrap.BuildHelpers(in)
	if err != nil {
		return "", fmt.Errorf("Bootstrap: %w", err)
	}
	s.logger.Debug("bootstrapping curve", "handle", req.Handle, "index", idx.String(), "helpers", len(helpers))
	res, err := bootstrap.Solve(bootstrap.Input{
		ReferenceDate: req.BaseDate,
		DayCount:      idx.DayCount,
		Method:        method,
		Helpers:       helpers,
		Config:        s.cfg,
		Extrapolate:   req.AllowExtrapolation,
	})
	if err != nil {
		s.logger.Error("bootstrap failed", "handle", req.Handle, "error", err)
		return "", fmt.Errorf("Bootstrap: %w", err)
	}
	s.logger.Debug("bootstrap converged", "handle", req.Handle, "passes", res.Passes, "steps", len(res.Steps))

	rec := newRecord(req.Handle, KindBootstrapped, res, s.now())
	rec.Index = idx.String()
	rec.Instruments = groups
	rec.Dependencies = deps
	rec.Warnings = append(append(skipped, warnings...), expiredWarnings(res.Skipped)...)
	return s.publish(req.Handle, rec)
}

// FxBasisRequest describes a quote-currency curve implied from FX forwards and
// cross-currency basis swaps.
type FxBasisRequest struct {
	Handle           string
	BaseDate         time.Time
	BaseIndexName    string
	BaseIndexTenor   string
	CustomBaseIndex  *market.CustomIndexSpec
	QuoteIndexName   string
	QuoteIndexTenor  string
	CustomQuoteIndex *market.CustomIndexSpec
	Interpolation    string
	SpotFX           float64
	// BaseDiscountCurve is the collateral curve; required.
	BaseDiscountCurve  string
	BaseForecastCurve  string
	QuoteForecastCurve string
	AllowExtrapolation bool
	Groups             []GroupInput
}

// BootstrapFxBasis calibrates an FX-basis-adjusted curve and stores it under the handle.
// Only FECs and Cross Currency Swaps groups are accepted; any other label is an error.
func (s *Service) BootstrapFxBasis(req FxBasisRequest) (string, error) {
	if err := registry.ValidateHandle(req.Handle); err != nil {
		return "", fmt.Errorf("BootstrapFxBasis: %w", err)
	}
	if req.BaseDate.IsZero() {
		return "", fmt.Errorf("BootstrapFxBasis: BaseDate: %w", curveerr.ErrMissingParameter)
	}
	baseIdx, err := resolveIndex("Base Currency Index", req.BaseIndexName, req.BaseIndexTenor, req.CustomBaseIndex)
	if err != nil {
		return "", fmt.Errorf("BootstrapFxBasis: %w", err)
	}
	quoteIdx, err := resolveIndex("Quote Currency Index", req.QuoteIndexName, req.QuoteIndexTenor, req.CustomQuoteIndex)
	if err != nil {
		return "", fmt.Errorf("BootstrapFxBasis: %w", err)
	}
	method, err := parseMethod(req.Interpolation)
	if err != nil {
		return "", fmt.Errorf("BootstrapFxBasis: %w", err)
	}
	if req.BaseDiscountCurve == "" {
		return "", fmt.Errorf("BootstrapFxBasis: BaseDiscountCurve: %w", curveerr.ErrMissingParameter)
	}

	in := fxbasis.Input{
		EvaluationDate: req.BaseDate,
		BaseIndex:      baseIdx,
		QuoteIndex:     quoteIdx,
		Spot:           req.SpotFX,
		Method:         method,
		Extrapolate:    req.AllowExtrapolation,
		Config:         s.cfg,
	}
	var deps []registry.Ref
	for _, aux := range []struct {
		name   string
		handle string
		target *helper.Curve
	}{
		{"BaseDiscountCurve", req.BaseDiscountCurve, &in.Collateral},
		{"BaseForecastCurve", req.BaseForecastCurve, &in.BaseForecast},
		{"QuoteForecastCurve", req.QuoteForecastCurve, &in.QuoteForecast},
	} {
		if aux.handle == "" {
			continue
		}
		c, ref, err := s.resolveCurve(aux.handle)
		if err != nil {
			return "", fmt.Errorf("BootstrapFxBasis: %s: %w", aux.name, err)
		}
		*aux.target = asHelperCurve(c)
		deps = append(deps, ref)
	}

	for _, g := range req.Groups {
		kind, ok := instrument.KindForLabel(g.Label)
		if !ok || (kind != instrument.KindFxSwapPoints && kind != instrument.KindCrossCurrencyBasis) {
			return "", fmt.Errorf("BootstrapFxBasis: invalid instrument type %q: %w", g.Label, curveerr.ErrUnsupportedInstrument)
		}
	}
	groups, _, err := s.parseGroups(req.Handle, req.Groups)
	if err != nil {
		return "", fmt.Errorf("BootstrapFxBasis: %w", err)
	}
	in.Groups = groups

	res, warnings, err := fxbasis.Bootstrap(in)
	if err != nil {
		s.logger.Error("fx basis bootstrap failed", "handle", req.Handle, "error", err)
		return "", fmt.Errorf("BootstrapFxBasis: %w", err)
	}
	rec := newRecord(req.Handle, KindFxBasis, res, s.now())
	rec.Index = baseIdx.String() + "/" + quoteIdx.String()
	rec.Instruments = groups
	rec.Dependencies = deps
	rec.Warnings = append(warnings, expiredWarnings(res.Skipped)...)
	return s.publish(req.Handle, rec)
}

func resolveIndex(param, name, tenor string, custom *market.CustomIndexSpec) (market.ReferenceRateIndex, error) {
	if custom != nil {
		return market.NewCustomIndex(*custom)
	}
	if strings.TrimSpace(name) == "" {
		return market.ReferenceRateIndex{}, fmt.Errorf("%s Name: %w", param, curveerr.ErrMissingParameter)
	}
	return market.Lookup(name, tenor)
}

func parseMethod(name string) (interp.Method, error) {
	if strings.TrimSpace(name) == "" {
		return 0, fmt.Errorf("Interpolation: %w", curveerr.ErrMissingParameter)
	}
	return interp.ParseMethod(name)
}

// parseGroups parses each table; groups with unrecognised labels are skipped and reported.
func (s *Service) parseGroups(handle string, inputs []GroupInput) ([]instrument.Group, []string, error) {
	var (
		groups  []instrument.Group
		skipped []string
	)
	for _, in := range inputs {
		g, ok, err := instrument.ParseGroup(in.Label, in.Rows)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			s.logger.Warn("skipping unrecognised instrument group", "handle", handle, "label", in.Label)
			skipped = append(skipped, fmt.Sprintf("skipped instrument group %q", in.Label))
			continue
		}
		groups = append(groups, g)
	}
	return groups, skipped, nil
}

func expiredWarnings(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = fmt.Sprintf("%s has expired and was not calibrated", n)
	}
	return out
}
