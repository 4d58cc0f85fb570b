// Package curveerr defines the error values returned by the curve packages.
//
// Callers test for a category with errors.Is against the sentinels below.
// The typed errors carry the offending instrument or pillar and unwrap to a sentinel.
package curveerr

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrMissingParameter         = errors.New("missing parameter")
	ErrMissingInstrumentData    = errors.New("missing instrument data")
	ErrUnsupportedRateIndex     = errors.New("unsupported rate index")
	ErrUnsupportedInterpolation = errors.New("unsupported interpolation")
	ErrUnsupportedCalendar      = errors.New("unsupported calendar")
	ErrUnsupportedDayCount      = errors.New("unsupported day count")
	ErrUnsupportedCompounding   = errors.New("unsupported compounding")
	ErrUnsupportedConvention    = errors.New("unsupported business day convention")
	ErrUnsupportedInstrument    = errors.New("unsupported instrument")
	ErrAmbiguousPillar          = errors.New("ambiguous pillar")
	ErrBootstrapFailure         = errors.New("bootstrap failure")
	ErrCurveNotFound            = errors.New("curve not found")
	ErrIncompatibleArraySize    = errors.New("incompatible array size")
	ErrNotBootstrapped          = errors.New("curve was not bootstrapped")
	ErrInvalidHandle            = errors.New("invalid handle")
	ErrInvalidTenor             = errors.New("invalid tenor")
	ErrOutOfRange               = errors.New("date out of curve range")
	ErrInvalidDiscountFactor    = errors.New("invalid discount factor")
	ErrConflictingParameters    = errors.New("conflicting parameters")
)

// InstrumentDataError reports a required column missing from an included row.
type InstrumentDataError struct {
	Instrument string
	Field      string
	Row        int
}

func (e *InstrumentDataError) Error() string {
	return fmt.Sprintf("%s row %d: missing %q: %v", e.Instrument, e.Row, e.Field, ErrMissingInstrumentData)
}

func (e *InstrumentDataError) Unwrap() error { return ErrMissingInstrumentData }

// PillarError reports two calibration instruments that resolve to the same pillar date.
type PillarError struct {
	Pillar time.Time
	First  string
	Second string
}

func (e *PillarError) Error() string {
	return fmt.Sprintf("pillar %s shared by %s and %s: %v",
		e.Pillar.Format("2006-01-02"), e.First, e.Second, ErrAmbiguousPillar)
}

func (e *PillarError) Unwrap() error { return ErrAmbiguousPillar }

// BootstrapError identifies the instrument whose pillar could not be solved.
type BootstrapError struct {
	Instrument string
	Pillar     time.Time
	Err        error
}

func (e *BootstrapError) Error() string {
	msg := fmt.Sprintf("%v: %s (pillar %s)", ErrBootstrapFailure, e.Instrument, e.Pillar.Format("2006-01-02"))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *BootstrapError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrBootstrapFailure}
	}
	return []error{ErrBootstrapFailure, e.Err}
}
