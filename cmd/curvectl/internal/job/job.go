// Package job reads curvectl job files: an ordered list of curves to build into one registry,
// followed by queries against them.
package job

import (
	"fmt"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/meenmo/ycurve/config"
	"github.com/meenmo/ycurve/curve"
	"github.com/meenmo/ycurve/instrument"
	"github.com/meenmo/ycurve/market"
	"github.com/meenmo/ycurve/service"
	"github.com/meenmo/ycurve/utils"
)

// Curve kinds accepted in a job.
const (
	TypeBootstrap = "bootstrap"
	TypeFxBasis   = "fxbasis"
	TypeExplicit  = "explicit"
)

// Job is a job file. JSON is accepted as well, being valid YAML.
type Job struct {
	// Config overrides solver settings; absent fields keep config.DefaultConfig values.
	Config  config.Config `yaml:"config"`
	Curves  []CurveSpec   `yaml:"curves" validate:"required,min=1,dive"`
	Queries []QuerySpec   `yaml:"queries" validate:"dive"`
}

// Group is one labelled instrument table.
type Group struct {
	Label string           `yaml:"label" validate:"required"`
	Rows  []map[string]any `yaml:"rows"`
}

// CurveSpec is one curve to build.
type CurveSpec struct {
	Handle             string `yaml:"handle" validate:"required"`
	Type               string `yaml:"type" validate:"required,oneof=bootstrap fxbasis explicit"`
	BaseDate           string `yaml:"baseDate" validate:"required_unless=Type explicit"`
	Interpolation      string `yaml:"interpolation" validate:"required"`
	AllowExtrapolation bool   `yaml:"allowExtrapolation"`

	// bootstrap
	Index         string                  `yaml:"index"`
	Tenor         string                  `yaml:"tenor"`
	CustomIndex   *market.CustomIndexSpec `yaml:"customIndex"`
	DiscountCurve string                  `yaml:"discountCurve"`
	ForecastCurve string                  `yaml:"forecastCurve"`

	// fxbasis
	BaseIndex          string                  `yaml:"baseIndex"`
	BaseTenor          string                  `yaml:"baseTenor"`
	CustomBaseIndex    *market.CustomIndexSpec `yaml:"customBaseIndex"`
	QuoteIndex         string                  `yaml:"quoteIndex"`
	QuoteTenor         string                  `yaml:"quoteTenor"`
	CustomQuoteIndex   *market.CustomIndexSpec `yaml:"customQuoteIndex"`
	SpotFX             float64                 `yaml:"spotFX"`
	BaseDiscountCurve  string                  `yaml:"baseDiscountCurve"`
	BaseForecastCurve  string                  `yaml:"baseForecastCurve"`
	QuoteForecastCurve string                  `yaml:"quoteForecastCurve"`

	// explicit
	Dates           []string  `yaml:"dates"`
	DiscountFactors []float64 `yaml:"discountFactors"`
	DayCount        string    `yaml:"dayCount"`

	Groups []Group `yaml:"groups" validate:"dive"`
}

// RateQuery asks for rates at dates.
type RateQuery struct {
	Dates       []string `yaml:"dates"`
	Compounding string   `yaml:"compounding"`
}

// ForwardQuery asks for forward rates over paired dates.
type ForwardQuery struct {
	Starts      []string `yaml:"starts"`
	Ends        []string `yaml:"ends"`
	Compounding string   `yaml:"compounding"`
}

// QuerySpec is a set of questions about one handle.
type QuerySpec struct {
	Handle          string        `yaml:"handle" validate:"required"`
	DiscountFactors []string      `yaml:"discountFactors"`
	YearFractions   []float64     `yaml:"yearFractions"`
	ZeroRates       *RateQuery    `yaml:"zeroRates"`
	ForwardRates    *ForwardQuery `yaml:"forwardRates"`
	Instruments     bool          `yaml:"instruments"`
	Reprice         bool          `yaml:"reprice"`
}

var validate = validator.New()

// Decode reads and validates a job.
func Decode(r io.Reader) (*Job, error) {
	j := Job{Config: config.DefaultConfig}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&j); err != nil {
		return nil, fmt.Errorf("job.Decode: %w", err)
	}
	if err := j.Config.Validate(); err != nil {
		return nil, fmt.Errorf("job.Decode: %w", err)
	}
	if err := validate.Struct(&j); err != nil {
		return nil, fmt.Errorf("job.Decode: %w", err)
	}
	return &j, nil
}

// CurveResult reports one built curve.
type CurveResult struct {
	Handle             string        `json:"handle"`
	Display            string        `json:"display"`
	ID                 string        `json:"id"`
	Kind               string        `json:"kind"`
	Index              string        `json:"index,omitempty"`
	DayCount           string        `json:"dayCount"`
	Method             string        `json:"interpolation"`
	AllowExtrapolation bool          `json:"allowExtrapolation"`
	Pillars            []PillarValue `json:"pillars"`
	Warnings           []string      `json:"warnings,omitempty"`
}

// PillarValue is a curve node.
type PillarValue struct {
	Date           string  `json:"date"`
	DiscountFactor float64 `json:"discountFactor"`
}

// QueryResult answers one QuerySpec.
type QueryResult struct {
	Handle                string              `json:"handle"`
	DiscountFactors       []float64           `json:"discountFactors,omitempty"`
	YearFractionDiscounts []float64           `json:"yearFractionDiscountFactors,omitempty"`
	ZeroRates             []float64           `json:"zeroRates,omitempty"`
	ForwardRates          []float64           `json:"forwardRates,omitempty"`
	Instruments           []GroupResult       `json:"instruments,omitempty"`
	Repricing             []service.Repricing `json:"repricing,omitempty"`
}

// GroupResult echoes a calibrated instrument group.
type GroupResult struct {
	Label  string           `json:"label"`
	Quotes []string         `json:"quotes"`
	Rows   []instrument.Row `json:"rows"`
}

// Report is the JSON document curvectl writes.
type Report struct {
	Curves  []CurveResult `json:"curves"`
	Queries []QueryResult `json:"queries,omitempty"`
	// Handles lists every handle left in the registry once the job has run.
	Handles []string      `json:"handles"`
}

// BuildCurve builds one curve spec through svc.
func BuildCurve(svc *service.Service, spec CurveSpec) (CurveResult, error) {
	display, err := buildCurve(svc, spec)
	if err != nil {
		return CurveResult{}, fmt.Errorf("%s: %w", spec.Handle, err)
	}
	rec, err := svc.GetCurve(spec.Handle)
	if err != nil {
		return CurveResult{}, err
	}
	out := CurveResult{
		Handle:             rec.Handle,
		Display:            display,
		ID:                 rec.ID.String(),
		Kind:               string(rec.Kind),
		Index:              rec.Index,
		DayCount:           string(rec.DayCount),
		Method:             rec.Interpolation.String(),
		AllowExtrapolation: rec.Curve.ExtrapolationEnabled(),
		Warnings:           rec.Warnings,
	}
	for i, d := range rec.PillarDates {
		out.Pillars = append(out.Pillars, PillarValue{Date: d.Format(utils.DateLayout), DiscountFactor: rec.PillarDFs[i]})
	}
	return out, nil
}

func buildCurve(svc *service.Service, spec CurveSpec) (string, error) {
	groups := make([]service.GroupInput, len(spec.Groups))
	for i, g := range spec.Groups {
		rows := make([]instrument.Row, len(g.Rows))
		for k, r := range g.Rows {
			rows[k] = instrument.Row(r)
		}
		groups[i] = service.GroupInput{Label: g.Label, Rows: rows}
	}

	switch spec.Type {
	case TypeExplicit:
		dates, err := parseDates(spec.Dates)
		if err != nil {
			return "", err
		}
		return svc.CreateCurve(service.CreateCurveRequest{
			Handle:             spec.Handle,
			Dates:              dates,
			DiscountFactors:    spec.DiscountFactors,
			DayCount:           spec.DayCount,
			Interpolation:      spec.Interpolation,
			AllowExtrapolation: spec.AllowExtrapolation,
		})
	case TypeFxBasis:
		base, err := utils.ParseDate(spec.BaseDate)
		if err != nil {
			return "", err
		}
		return svc.BootstrapFxBasis(service.FxBasisRequest{
			Handle:             spec.Handle,
			BaseDate:           base,
			BaseIndexName:      spec.BaseIndex,
			BaseIndexTenor:     spec.BaseTenor,
			CustomBaseIndex:    spec.CustomBaseIndex,
			QuoteIndexName:     spec.QuoteIndex,
			QuoteIndexTenor:    spec.QuoteTenor,
			CustomQuoteIndex:   spec.CustomQuoteIndex,
			Interpolation:      spec.Interpolation,
			SpotFX:             spec.SpotFX,
			BaseDiscountCurve:  spec.BaseDiscountCurve,
			BaseForecastCurve:  spec.BaseForecastCurve,
			QuoteForecastCurve: spec.QuoteForecastCurve,
			AllowExtrapolation: spec.AllowExtrapolation,
			Groups:             groups,
		})
	default:
		base, err := utils.ParseDate(spec.BaseDate)
		if err != nil {
			return "", err
		}
		return svc.Bootstrap(service.BootstrapRequest{
			Handle:             spec.Handle,
			BaseDate:           base,
			IndexName:          spec.Index,
			IndexTenor:         spec.Tenor,
			CustomIndex:        spec.CustomIndex,
			Interpolation:      spec.Interpolation,
			AllowExtrapolation: spec.AllowExtrapolation,
			DiscountCurve:      spec.DiscountCurve,
			ForecastCurve:      spec.ForecastCurve,
			Groups:             groups,
		})
	}
}

// RunQuery answers one query through svc.
func RunQuery(svc *service.Service, q QuerySpec) (QueryResult, error) {
	out := QueryResult{Handle: q.Handle}
	if len(q.DiscountFactors) > 0 {
		dates, err := parseDates(q.DiscountFactors)
		if err != nil {
			return out, err
		}
		if out.DiscountFactors, err = svc.GetDiscountFactors(q.Handle, dates); err != nil {
			return out, err
		}
	}
	if len(q.YearFractions) > 0 {
		var err error
		if out.YearFractionDiscounts, err = svc.GetDiscountFactorsAt(q.Handle, q.YearFractions); err != nil {
			return out, err
		}
	}
	if q.ZeroRates != nil {
		dates, err := parseDates(q.ZeroRates.Dates)
		if err != nil {
			return out, err
		}
		comp, err := compounding(q.ZeroRates.Compounding)
		if err != nil {
			return out, err
		}
		if out.ZeroRates, err = svc.GetZeroRates(q.Handle, dates, comp); err != nil {
			return out, err
		}
	}
	if q.ForwardRates != nil {
		starts, err := parseDates(q.ForwardRates.Starts)
		if err != nil {
			return out, err
		}
		ends, err := parseDates(q.ForwardRates.Ends)
		if err != nil {
			return out, err
		}
		comp, err := compounding(q.ForwardRates.Compounding)
		if err != nil {
			return out, err
		}
		if out.ForwardRates, err = svc.GetForwardRates(q.Handle, starts, ends, comp); err != nil {
			return out, err
		}
	}
	if q.Instruments {
		groups, err := svc.GetInstruments(q.Handle)
		if err != nil {
			return out, err
		}
		for _, g := range groups {
			gr := GroupResult{Label: g.Label, Rows: g.Rows}
			for _, qt := range g.Quotes {
				gr.Quotes = append(gr.Quotes, qt.Describe())
			}
			out.Instruments = append(out.Instruments, gr)
		}
	}
	if q.Reprice {
		var err error
		if out.Repricing, err = svc.Reprice(q.Handle); err != nil {
			return out, err
		}
	}
	return out, nil
}

// compounding defaults to NACC, as zero rates conventionally are.
func compounding(name string) (curve.Compounding, error) {
	if name == "" {
		return curve.NACC, nil
	}
	return curve.ParseCompounding(name)
}

func parseDates(in []string) ([]time.Time, error) {
	out := make([]time.Time, len(in))
	for i, s := range in {
		d, err := utils.ParseDate(s)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}
