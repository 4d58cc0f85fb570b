package interp

import (
	"fmt"
	"strings"

	"github.com/meenmo/ycurve/curveerr"
)

// Method is a curve interpolation scheme: an interpolator applied to a quantity derived from discount factors.
type Method int

const (
	FlatOnForwardRates Method = iota
	ExponentialOnDiscountFactors
	LinearOnZeroRates
	NaturalCubicOnZeroRates
	CubicOnZeroRates
	CubicSplineOnDiscountFactors
	LogCubicOnDiscountFactors
	NaturalLogCubicOnDiscountFactors
)

// Domain is the quantity a Method interpolates.
type Domain int

const (
	LogDiscount Domain = iota
	Discount
	ZeroRate
)

// Scheme is the interpolating function family.
type Scheme int

const (
	Linear Scheme = iota
	NaturalSpline
	Kruger
	MonotoneCubic
)

var methodNames = map[Method]string{
	FlatOnForwardRates:               "Flat_On_ForwardRates",
	ExponentialOnDiscountFactors:     "Exponential_On_DiscountFactors",
	LinearOnZeroRates:                "Linear_On_ZeroRates",
	NaturalCubicOnZeroRates:          "NaturalCubic_On_ZeroRates",
	CubicOnZeroRates:                 "Cubic_On_ZeroRates",
	CubicSplineOnDiscountFactors:     "CubicSpline_On_DiscountFactors",
	LogCubicOnDiscountFactors:        "LogCubic_On_DiscountFactors",
	NaturalLogCubicOnDiscountFactors: "NaturalLogCubic_On_DiscountFactors",
}

// short names accepted in addition to the full method names
var methodAliases = map[string]Method{
	"FLATFORWARD":     FlatOnForwardRates,
	"FORWARDFLAT":     FlatOnForwardRates,
	"EXPONENTIAL":     ExponentialOnDiscountFactors,
	"LOGLINEAR":       ExponentialOnDiscountFactors,
	"LINEAR":          LinearOnZeroRates,
	"NATURALCUBIC":    NaturalCubicOnZeroRates,
	"CUBIC":           CubicSplineOnDiscountFactors,
	"CUBICSPLINE":     CubicSplineOnDiscountFactors,
	"LOGCUBIC":        LogCubicOnDiscountFactors,
	"NATURALLOGCUBIC": NaturalLogCubicOnDiscountFactors,
}

// Methods lists every supported method in catalogue order.
func Methods() []Method {
	return []Method{
		FlatOnForwardRates,
		ExponentialOnDiscountFactors,
		LinearOnZeroRates,
		NaturalCubicOnZeroRates,
		CubicOnZeroRates,
		CubicSplineOnDiscountFactors,
		LogCubicOnDiscountFactors,
		NaturalLogCubicOnDiscountFactors,
	}
}

func (m Method) String() string {
	if s, ok := methodNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

func normalize(name string) string {
	return strings.ToUpper(strings.NewReplacer("_", "", "-", "", " ", "").Replace(name))
}

// ParseMethod resolves a method name; case, underscores, hyphens and spaces are ignored.
func ParseMethod(name string) (Method, error) {
	key := normalize(name)
	for m, s := range methodNames {
		if normalize(s) == key {
			return m, nil
		}
	}
	if m, ok := methodAliases[key]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("ParseMethod: %q: %w", name, curveerr.ErrUnsupportedInterpolation)
}

// Domain returns the quantity the method interpolates.
func (m Method) Domain() Domain {
	switch m {
	case LinearOnZeroRates, NaturalCubicOnZeroRates, CubicOnZeroRates:
		return ZeroRate
	case CubicSplineOnDiscountFactors:
		return Discount
	default:
		return LogDiscount
	}
}

// Scheme returns the interpolating function family.
func (m Method) Scheme() Scheme {
	switch m {
	case NaturalCubicOnZeroRates, CubicSplineOnDiscountFactors, NaturalLogCubicOnDiscountFactors:
		return NaturalSpline
	case CubicOnZeroRates:
		return Kruger
	case LogCubicOnDiscountFactors:
		return MonotoneCubic
	default:
		return Linear
	}
}

// IsLocal reports whether adding a node leaves the curve before the previous node unchanged.
// Non-local methods need more than one bootstrap pass.
func (m Method) IsLocal() bool {
	return m.Scheme() == Linear
}
