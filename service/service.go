// Package service is the entry point for building curves and querying them by handle.
package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/meenmo/ycurve/bootstrap"
	"github.com/meenmo/ycurve/config"
	"github.com/meenmo/ycurve/curve"
	"github.com/meenmo/ycurve/curveerr"
	"github.com/meenmo/ycurve/helper"
	"github.com/meenmo/ycurve/instrument"
	"github.com/meenmo/ycurve/interp"
	"github.com/meenmo/ycurve/registry"
	"github.com/meenmo/ycurve/utils"
)

// RecordKind says how a curve was built.
type RecordKind string

const (
	KindBootstrapped RecordKind = "Bootstrapped"
	KindFxBasis      RecordKind = "FxBasis"
	KindExplicit     RecordKind = "Explicit"
)

// CurveRecord is what the registry stores for a curve. A rebuild under the same handle
// replaces the record; records are never mutated.
type CurveRecord struct {
	ID            uuid.UUID
	Handle        string
	Kind          RecordKind
	Curve         *curve.Curve
	DayCount      utils.DayCount
	Interpolation interp.Method
	Index         string
	PillarDates   []time.Time
	PillarDFs     []float64
	Instruments   []instrument.Group
	Dependencies  []registry.Ref
	Warnings      []string
	Steps         []bootstrap.Step
	BuiltAt       time.Time

	helpers []helper.Helper
}

// Service builds curves into a registry and answers queries against them.
type Service struct {
	store  *registry.Store
	cfg    config.Config
	logger *slog.Logger
	now    func() time.Time
}

// New creates a service over store after validating cfg. A nil logger uses slog.Default().
func New(store *registry.Store, cfg config.Config, logger *slog.Logger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("service.New: store: %w", curveerr.ErrMissingParameter)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("service.New: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, cfg: cfg, logger: logger, now: time.Now}, nil
}

// Store returns the underlying registry.
func (s *Service) Store() *registry.Store {
	return s.store
}

// GetCurve returns the record stored under handle.
func (s *Service) GetCurve(handle string) (*CurveRecord, error) {
	obj, err := s.store.Get(handle)
	if err != nil {
		return nil, err
	}
	rec, ok := obj.(*CurveRecord)
	if !ok {
		return nil, fmt.Errorf("%q holds %T: %w", registry.CleanHandle(handle), obj, curveerr.ErrCurveNotFound)
	}
	return rec, nil
}

// resolveCurve looks up an auxiliary curve and the arena slot it was read from.
func (s *Service) resolveCurve(handle string) (*curve.Curve, registry.Ref, error) {
	ref, err := s.store.Lookup(handle)
	if err != nil {
		return nil, registry.Ref{}, err
	}
	obj, err := s.store.Resolve(ref)
	if err != nil {
		return nil, registry.Ref{}, err
	}
	rec, ok := obj.(*CurveRecord)
	if !ok {
		return nil, registry.Ref{}, fmt.Errorf("%q holds %T: %w", ref.Handle, obj, curveerr.ErrCurveNotFound)
	}
	return rec.Curve, ref, nil
}

// asHelperCurve keeps a nil curve as a nil interface.
func asHelperCurve(c *curve.Curve) helper.Curve {
	if c == nil {
		return nil
	}
	return c
}

func (s *Service) publish(handle string, rec *CurveRecord) (string, error) {
	if _, err := s.store.Lookup(handle); err == nil {
		s.logger.Debug("replacing curve", "handle", handle)
	}
	display, err := s.store.Add(handle, rec)
	if err != nil {
		return "", err
	}
	s.logger.Info("curve stored",
		"handle", handle,
		"kind", rec.Kind,
		"id", rec.ID,
		"pillars", len(rec.PillarDates),
		"interpolation", rec.Interpolation.String(),
	)
	for _, w := range rec.Warnings {
		s.logger.Warn("curve warning", "handle", handle, "warning", w)
	}
	return display, nil
}

func newRecord(handle string, kind RecordKind, res *bootstrap.Result, now time.Time) *CurveRecord {
	rec := &CurveRecord{
		ID:            uuid.New(),
		Handle:        handle,
		Kind:          kind,
		Curve:         res.Curve,
		DayCount:      res.Curve.DayCount(),
		Interpolation: res.Curve.Method(),
		Steps:         res.Steps,
		BuiltAt:       now,
		helpers:       res.Helpers,
	}
	for _, p := range res.Pillars {
		rec.PillarDates = append(rec.PillarDates, p.Date)
		rec.PillarDFs = append(rec.PillarDFs, p.DiscountFactor)
	}
	return rec
}
