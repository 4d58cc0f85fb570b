package service

import (
	"fmt"
	"time"

	"github.com/meenmo/ycurve/curve"
	"github.com/meenmo/ycurve/curveerr"
	"github.com/meenmo/ycurve/instrument"
)

// GetDiscountFactors returns discount factors at dates.
func (s *Service) GetDiscountFactors(handle string, dates []time.Time) ([]float64, error) {
	rec, err := s.GetCurve(handle)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(dates))
	for i, d := range dates {
		if out[i], err = rec.Curve.Discount(d); err != nil {
			return nil, fmt.Errorf("GetDiscountFactors: %w", err)
		}
	}
	return out, nil
}

// GetDiscountFactorsAt returns discount factors at year fractions from the reference date.
func (s *Service) GetDiscountFactorsAt(handle string, yearFractions []float64) ([]float64, error) {
	rec, err := s.GetCurve(handle)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(yearFractions))
	for i, t := range yearFractions {
		if out[i], err = rec.Curve.DiscountAt(t); err != nil {
			return nil, fmt.Errorf("GetDiscountFactorsAt: %w", err)
		}
	}
	return out, nil
}

// GetZeroRates returns zero rates to dates under comp.
func (s *Service) GetZeroRates(handle string, dates []time.Time, comp curve.Compounding) ([]float64, error) {
	rec, err := s.GetCurve(handle)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(dates))
	for i, d := range dates {
		if out[i], err = rec.Curve.ZeroRate(d, comp); err != nil {
			return nil, fmt.Errorf("GetZeroRates: %w", err)
		}
	}
	return out, nil
}

// GetForwardRates returns forward rates between paired start and end dates under comp.
func (s *Service) GetForwardRates(handle string, starts, ends []time.Time, comp curve.Compounding) ([]float64, error) {
	if len(starts) != len(ends) {
		return nil, fmt.Errorf("GetForwardRates: %d start dates, %d end dates: %w",
			len(starts), len(ends), curveerr.ErrIncompatibleArraySize)
	}
	rec, err := s.GetCurve(handle)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(starts))
	for i := range starts {
		if out[i], err = rec.Curve.ForwardRate(starts[i], ends[i], comp); err != nil {
			return nil, fmt.Errorf("GetForwardRates: %w", err)
		}
	}
	return out, nil
}

// GetInstruments returns the instrument groups a curve was calibrated to.
func (s *Service) GetInstruments(handle string) ([]instrument.Group, error) {
	rec, err := s.GetCurve(handle)
	if err != nil {
		return nil, err
	}
	if rec.Kind == KindExplicit {
		return nil, fmt.Errorf("GetInstruments: %q: %w", rec.Handle, curveerr.ErrNotBootstrapped)
	}
	return rec.Instruments, nil
}

// Repricing compares an instrument's quote with the quote implied by the stored curve.
type Repricing struct {
	Instrument string    `json:"instrument"`
	Pillar     time.Time `json:"pillar"`
	Quote      float64   `json:"quote"`
	Implied    float64   `json:"implied"`
}

// Reprice recomputes every calibrating instrument off the stored curve.
func (s *Service) Reprice(handle string) ([]Repricing, error) {
	rec, err := s.GetCurve(handle)
	if err != nil {
		return nil, err
	}
	if rec.Kind == KindExplicit {
		return nil, fmt.Errorf("Reprice: %q: %w", rec.Handle, curveerr.ErrNotBootstrapped)
	}
	out := make([]Repricing, 0, len(rec.helpers))
	for _, h := range rec.helpers {
		out = append(out, Repricing{
			Instrument: h.Describe(),
			Pillar:     h.Pillar(),
			Quote:      h.Quote(),
			Implied:    h.ImpliedQuote(rec.Curve),
		})
	}
	return out, nil
}
