package curve

import (
	"fmt"
	"math"
	"strings"

	"github.com/meenmo/ycurve/curveerr"
)

// Compounding is an interest rate compounding convention.
type Compounding int

const (
	Simple Compounding = iota
	NACC
	NACA
	NACS
	NACQ
	NACM
)

var compoundingNames = map[Compounding]string{
	Simple: "SIMPLE",
	NACC:   "NACC",
	NACA:   "NACA",
	NACS:   "NACS",
	NACQ:   "NACQ",
	NACM:   "NACM",
}

func (c Compounding) String() string {
	if s, ok := compoundingNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Compounding(%d)", int(c))
}

// ParseCompounding accepts SIMPLE, NACC, NACA, NACS, NACQ, NACM and their long forms.
func ParseCompounding(name string) (Compounding, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "SIMPLE":
		return Simple, nil
	case "NACC", "CONTINUOUS":
		return NACC, nil
	case "NACA", "ANNUAL":
		return NACA, nil
	case "NACS", "SEMIANNUAL", "SEMI-ANNUAL":
		return NACS, nil
	case "NACQ", "QUARTERLY":
		return NACQ, nil
	case "NACM", "MONTHLY":
		return NACM, nil
	}
	return 0, fmt.Errorf("ParseCompounding: %q: %w", name, curveerr.ErrUnsupportedCompounding)
}

// Frequency returns compounding periods per year; 0 for Simple and NACC.
func (c Compounding) Frequency() float64 {
	switch c {
	case NACA:
		return 1
	case NACS:
		return 2
	case NACQ:
		return 4
	case NACM:
		return 12
	}
	return 0
}

// DiscountFactorToRate converts a discount factor over t years into a rate. t must be positive.
func DiscountFactorToRate(df, t float64, c Compounding) float64 {
	if t <= 0 {
		return math.NaN()
	}
	switch c {
	case Simple:
		return (1/df - 1) / t
	case NACC:
		return -math.Log(df) / t
	default:
		n := c.Frequency()
		return n * (math.Pow(df, -1/(n*t)) - 1)
	}
}

// RateToDiscountFactor converts a rate over t years into a discount factor.
func RateToDiscountFactor(rate, t float64, c Compounding) float64 {
	switch c {
	case Simple:
		return 1 / (1 + rate*t)
	case NACC:
		return math.Exp(-rate * t)
	default:
		n := c.Frequency()
		return math.Pow(1+rate/n, -n*t)
	}
}

// ForwardRateFromDiscountFactors returns the rate implied between two discount factors
// spanning t years.
func ForwardRateFromDiscountFactors(dfStart, dfEnd, t float64, c Compounding) float64 {
	return DiscountFactorToRate(dfEnd/dfStart, t, c)
}

// ConvertRate restates a rate over t years from one compounding convention to another.
func ConvertRate(rate, t float64, from, to Compounding) float64 {
	if from == to {
		return rate
	}
	return DiscountFactorToRate(RateToDiscountFactor(rate, t, from), t, to)
}
