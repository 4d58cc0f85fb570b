// Package market describes the floating reference rate indices curves are calibrated against.
package market

import (
	"fmt"
	"sort"
	"strings"

	"github.com/meenmo/ycurve/calendar"
	"github.com/meenmo/ycurve/curveerr"
	"github.com/meenmo/ycurve/utils"
)

// ReferenceRateIndex describes a floating benchmark and the conventions of swaps quoted against it.
type ReferenceRateIndex struct {
	Name       string
	Currency   string
	Tenor      calendar.Period
	FixingDays int
	Calendar   calendar.Calendar
	Convention calendar.BusinessDayConvention
	DayCount   utils.DayCount
	EndOfMonth bool
	Overnight  bool

	// Fixed leg of par swaps quoted against the index.
	FixedLegFrequency calendar.Period
	FixedLegDayCount  utils.DayCount
}

// String renders the index as NAME-TENOR, e.g. JIBAR-3M.
func (r ReferenceRateIndex) String() string {
	if r.Overnight {
		return r.Name
	}
	return r.Name + "-" + r.Tenor.String()
}

// Catalogue names.
const (
	JIBAR    = "JIBAR"
	EURIBOR  = "EURIBOR"
	USDLIBOR = "USD-LIBOR"
	TIBOR    = "TIBOR"
	CD91     = "CD91"
	FEDFUND  = "FEDFUND"
	SOFR     = "SOFR"
	ESTR     = "ESTR"
	TONAR    = "TONAR"
	SONIA    = "SONIA"
)

var (
	oneDay     = calendar.Period{Length: 1, Unit: calendar.Days}
	threeMonth = calendar.Period{Length: 3, Unit: calendar.Months}
	sixMonth   = calendar.Period{Length: 6, Unit: calendar.Months}
	oneYear    = calendar.Period{Length: 1, Unit: calendar.Years}
)

// catalogue holds tenor-less index templates.
var catalogue = map[string]ReferenceRateIndex{
	JIBAR: {
		Name: JIBAR, Currency: "ZAR", FixingDays: 0, Calendar: calendar.ZAR,
		Convention: calendar.ModifiedFollowing, DayCount: utils.Act365F,
		FixedLegFrequency: threeMonth, FixedLegDayCount: utils.Act365F,
	},
	EURIBOR: {
		Name: EURIBOR, Currency: "EUR", FixingDays: 2, Calendar: calendar.TARGET,
		Convention: calendar.ModifiedFollowing, DayCount: utils.Act360, EndOfMonth: true,
		FixedLegFrequency: oneYear, FixedLegDayCount: utils.Thirty360,
	},
	USDLIBOR: {
		Name: USDLIBOR, Currency: "USD", FixingDays: 2, Calendar: calendar.Join(calendar.USD, calendar.GBP),
		Convention: calendar.ModifiedFollowing, DayCount: utils.Act360, EndOfMonth: true,
		FixedLegFrequency: sixMonth, FixedLegDayCount: utils.Thirty360,
	},
	TIBOR: {
		Name: TIBOR, Currency: "JPY", FixingDays: 2, Calendar: calendar.JPN,
		Convention: calendar.ModifiedFollowing, DayCount: utils.Act365F,
		FixedLegFrequency: sixMonth, FixedLegDayCount: utils.Act365F,
	},
	CD91: {
		Name: CD91, Currency: "KRW", FixingDays: 1, Calendar: calendar.KRW,
		Convention: calendar.ModifiedFollowing, DayCount: utils.Act365F,
		FixedLegFrequency: threeMonth, FixedLegDayCount: utils.Act365F,
	},
	FEDFUND: {
		Name: FEDFUND, Currency: "USD", FixingDays: 0, Calendar: calendar.USD,
		Convention: calendar.ModifiedFollowing, DayCount: utils.Act360, Overnight: true,
		FixedLegFrequency: oneYear, FixedLegDayCount: utils.Act360,
	},
	SOFR: {
		Name: SOFR, Currency: "USD", FixingDays: 0, Calendar: calendar.USD,
		Convention: calendar.ModifiedFollowing, DayCount: utils.Act360, Overnight: true,
		FixedLegFrequency: oneYear, FixedLegDayCount: utils.Act360,
	},
	ESTR: {
		Name: ESTR, Currency: "EUR", FixingDays: 0, Calendar: calendar.TARGET,
		Convention: calendar.ModifiedFollowing, DayCount: utils.Act360, Overnight: true,
		FixedLegFrequency: oneYear, FixedLegDayCount: utils.Act360,
	},
	TONAR: {
		Name: TONAR, Currency: "JPY", FixingDays: 0, Calendar: calendar.JPN,
		Convention: calendar.ModifiedFollowing, DayCount: utils.Act365F, Overnight: true,
		FixedLegFrequency: oneYear, FixedLegDayCount: utils.Act365F,
	},
	SONIA: {
		Name: SONIA, Currency: "GBP", FixingDays: 0, Calendar: calendar.GBP,
		Convention: calendar.ModifiedFollowing, DayCount: utils.Act365F, Overnight: true,
		FixedLegFrequency: oneYear, FixedLegDayCount: utils.Act365F,
	},
}

var indexAliases = map[string]string{
	"USDLIBOR": USDLIBOR,
	"LIBOR":    USDLIBOR,
	"FEDFUNDS": FEDFUND,
	"EFFR":     FEDFUND,
	"€STR":     ESTR,
	"TONA":     TONAR,
	"CD":       CD91,
	"CD91D":    CD91,
}

// Names lists the catalogue index names in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalogue))
	for n := range catalogue {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// IsOvernight reports whether the named index is an overnight rate.
func IsOvernight(name string) bool {
	idx, ok := catalogue[canonicalName(name)]
	return ok && idx.Overnight
}

func canonicalName(name string) string {
	key := strings.ToUpper(strings.TrimSpace(name))
	if _, ok := catalogue[key]; ok {
		return key
	}
	if alias, ok := indexAliases[strings.ReplaceAll(key, "-", "")]; ok {
		return alias
	}
	return key
}

// Lookup resolves a catalogue index with the given tenor. Overnight indices ignore the tenor
// and default to 1D; term indices require one.
func Lookup(name, tenor string) (ReferenceRateIndex, error) {
	idx, ok := catalogue[canonicalName(name)]
	if !ok {
		return ReferenceRateIndex{}, fmt.Errorf("market.Lookup: %q: %w", name, curveerr.ErrUnsupportedRateIndex)
	}
	if idx.Overnight {
		idx.Tenor = oneDay
		return idx, nil
	}
	if strings.TrimSpace(tenor) == "" {
		return ReferenceRateIndex{}, fmt.Errorf("market.Lookup: %s requires a tenor: %w", idx.Name, curveerr.ErrMissingParameter)
	}
	p, err := calendar.ParsePeriod(tenor)
	if err != nil {
		return ReferenceRateIndex{}, fmt.Errorf("market.Lookup: %w", err)
	}
	idx.Tenor = p
	return idx, nil
}
