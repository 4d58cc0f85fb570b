// Package instrument holds the market quotes curves are calibrated to and the parsing of
// labelled instrument tables into them.
package instrument

import (
	"fmt"
	"time"

	"github.com/meenmo/ycurve/calendar"
	"github.com/meenmo/ycurve/utils"
)

// Kind enumerates the calibrating instrument classes.
type Kind int

const (
	KindDeposit Kind = iota
	KindFRA
	KindSwap
	KindOIS
	KindFxSwapPoints
	KindCrossCurrencyBasis
)

func (k Kind) String() string {
	switch k {
	case KindDeposit:
		return "Deposit"
	case KindFRA:
		return "FRA"
	case KindSwap:
		return "Swap"
	case KindOIS:
		return "OIS"
	case KindFxSwapPoints:
		return "FxSwapPoints"
	case KindCrossCurrencyBasis:
		return "CrossCurrencyBasisSwap"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Quote is a single instrument row. The set of implementations is closed.
type Quote interface {
	Kind() Kind
	Included() bool
	// Value is the quoted rate, forward points or basis spread.
	Value() float64
	Describe() string
	quote()
}

// Deposit is a money-market deposit quoted as a simple rate.
type Deposit struct {
	Tenor   calendar.Period
	Rate    float64
	Include bool
}

// FRA is a forward rate agreement, e.g. 6x9. A zero End means start plus the index tenor.
type FRA struct {
	Start   calendar.Period
	End     calendar.Period
	Rate    float64
	Include bool
}

// Swap is a fixed-for-floating par swap against the curve's index.
type Swap struct {
	Tenor   calendar.Period
	Rate    float64
	Include bool
}

// OIS is an overnight indexed swap, specified by tenor or by an explicit end date.
type OIS struct {
	Tenor   calendar.Period
	EndDate time.Time
	Rate    float64
	Include bool
}

// FxSwapPoints is an FX forward quoted as points over spot.
type FxSwapPoints struct {
	Tenor      calendar.Period
	Points     float64
	FixingDays int
	Include    bool
}

// CrossCurrencyBasis is a constant-notional cross-currency basis swap spread.
type CrossCurrencyBasis struct {
	Tenor      calendar.Period
	Spread     float64
	FixingDays int
	Include    bool
}

func (Deposit) Kind() Kind            { return KindDeposit }
func (FRA) Kind() Kind                { return KindFRA }
func (Swap) Kind() Kind               { return KindSwap }
func (OIS) Kind() Kind                { return KindOIS }
func (FxSwapPoints) Kind() Kind       { return KindFxSwapPoints }
func (CrossCurrencyBasis) Kind() Kind { return KindCrossCurrencyBasis }

func (q Deposit) Included() bool            { return q.Include }
func (q FRA) Included() bool                { return q.Include }
func (q Swap) Included() bool               { return q.Include }
func (q OIS) Included() bool                { return q.Include }
func (q FxSwapPoints) Included() bool       { return q.Include }
func (q CrossCurrencyBasis) Included() bool { return q.Include }

func (q Deposit) Value() float64            { return q.Rate }
func (q FRA) Value() float64                { return q.Rate }
func (q Swap) Value() float64               { return q.Rate }
func (q OIS) Value() float64                { return q.Rate }
func (q FxSwapPoints) Value() float64       { return q.Points }
func (q CrossCurrencyBasis) Value() float64 { return q.Spread }

func (q Deposit) Describe() string { return "Deposit " + q.Tenor.String() }

func (q FRA) Describe() string {
	if q.End.IsZero() {
		return "FRA " + q.Start.String()
	}
	return fmt.Sprintf("FRA %dx%d", q.Start.Months(), q.End.Months())
}

func (q Swap) Describe() string { return "Swap " + q.Tenor.String() }

func (q OIS) Describe() string {
	if !q.EndDate.IsZero() {
		return "OIS " + q.EndDate.Format(utils.DateLayout)
	}
	return "OIS " + q.Tenor.String()
}

func (q FxSwapPoints) Describe() string { return "FxSwapPoints " + q.Tenor.String() }

func (q CrossCurrencyBasis) Describe() string { return "CrossCurrencyBasisSwap " + q.Tenor.String() }

func (Deposit) quote()            {}
func (FRA) quote()                {}
func (Swap) quote()               {}
func (OIS) quote()                {}
func (FxSwapPoints) quote()       {}
func (CrossCurrencyBasis) quote() {}
