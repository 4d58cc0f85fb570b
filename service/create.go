package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meenmo/ycurve/curve"
	"github.com/meenmo/ycurve/curveerr"
	"github.com/meenmo/ycurve/registry"
	"github.com/meenmo/ycurve/utils"
)

// CreateCurveRequest describes a curve given directly by its discount factors.
// The first date is the reference date and must carry a discount factor of 1.
type CreateCurveRequest struct {
	Handle             string
	Dates              []time.Time
	DiscountFactors    []float64
	DayCount           string
	Interpolation      string
	AllowExtrapolation bool
}

// CreateCurve stores an explicit curve. It reproduces the given discount factors exactly
// at the given dates.
func (s *Service) CreateCurve(req CreateCurveRequest) (string, error) {
	if err := registry.ValidateHandle(req.Handle); err != nil {
		return "", fmt.Errorf("CreateCurve: %w", err)
	}
	if len(req.Dates) != len(req.DiscountFactors) {
		return "", fmt.Errorf("CreateCurve: %d dates, %d discount factors: %w",
			len(req.Dates), len(req.DiscountFactors), curveerr.ErrIncompatibleArraySize)
	}
	if len(req.Dates) == 0 {
		return "", fmt.Errorf("CreateCurve: Dates: %w", curveerr.ErrMissingParameter)
	}
	if strings.TrimSpace(req.DayCount) == "" {
		return "", fmt.Errorf("CreateCurve: DayCount: %w", curveerr.ErrMissingParameter)
	}
	dc, err := utils.ParseDayCount(req.DayCount)
	if err != nil {
		return "", fmt.Errorf("CreateCurve: %w", err)
	}
	method, err := parseMethod(req.Interpolation)
	if err != nil {
		return "", fmt.Errorf("CreateCurve: %w", err)
	}

	ref := req.Dates[0]
	for _, d := range req.Dates[1:] {
		if d.Before(ref) {
			ref = d
		}
	}
	c, err := curve.New(ref, req.Dates, req.DiscountFactors, dc, method, req.AllowExtrapolation)
	if err != nil {
		return "", fmt.Errorf("CreateCurve: %w", err)
	}
	rec := &CurveRecord{
		ID:            uuid.New(),
		Handle:        req.Handle,
		Kind:          KindExplicit,
		Curve:         c,
		DayCount:      dc,
		Interpolation: method,
		PillarDates:   c.Dates(),
		PillarDFs:     c.DiscountFactors(),
		BuiltAt:       s.now(),
	}
	return s.publish(req.Handle, rec)
}
