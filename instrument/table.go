package instrument

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meenmo/ycurve/calendar"
	"github.com/meenmo/ycurve/curveerr"
	"github.com/meenmo/ycurve/utils"
)

// Group labels as they appear on instrument tables.
const (
	LabelDeposits           = "Deposits"
	LabelFRAs               = "FRAs"
	LabelInterestRateSwaps  = "Interest Rate Swaps"
	LabelOISs               = "OISs"
	LabelCrossCurrencySwaps = "Cross Currency Swaps"
	LabelFECs               = "FECs"
)

var labelKinds = map[string]Kind{
	"deposits":           KindDeposit,
	"fras":               KindFRA,
	"interestrateswaps":  KindSwap,
	"oiss":               KindOIS,
	"crosscurrencyswaps": KindCrossCurrencyBasis,
	"crosscurrencyswap":  KindCrossCurrencyBasis,
	"fecs":               KindFxSwapPoints,
	"fxforwards":         KindFxSwapPoints,
}

// Column names, compared after lower-casing and removing spaces and underscores.
const (
	colTenors        = "tenors"
	colTenor         = "tenor"
	colFraTenors     = "fratenors"
	colEndDates      = "enddates"
	colRates         = "rates"
	colRate          = "rate"
	colForwardPoints = "forwardpoints"
	colBasisSpreads  = "basisspreads"
	colFixingDays    = "fixingdays"
	colInclude       = "include"
)

func normalizeKey(s string) string {
	return strings.ToLower(strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s))
}

// KindForLabel maps a group label to its instrument kind, case-insensitively.
func KindForLabel(label string) (Kind, bool) {
	k, ok := labelKinds[normalizeKey(label)]
	return k, ok
}

// Row maps column names to cell values. Lookups ignore case, spaces and underscores.
type Row map[string]any

func (r Row) get(names ...string) (any, bool) {
	for _, name := range names {
		for k, v := range r {
			if normalizeKey(k) != name {
				continue
			}
			if v == nil {
				return nil, false
			}
			if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
				return nil, false
			}
			return v, true
		}
	}
	return nil, false
}

// Group is one labelled instrument table.
type Group struct {
	Label  string
	Kind   Kind
	Quotes []Quote
	Rows   []Row
}

// Included returns the quotes flagged for calibration.
func (g Group) Included() []Quote {
	out := make([]Quote, 0, len(g.Quotes))
	for _, q := range g.Quotes {
		if q.Included() {
			out = append(out, q)
		}
	}
	return out
}

// ParseGroup turns a labelled table into typed quotes. An unrecognised label returns ok=false
// and no error; callers skip such groups. Every row must carry an Include value and every
// included row all the columns its instrument needs.
func ParseGroup(label string, rows []Row) (Group, bool, error) {
	kind, ok := KindForLabel(label)
	if !ok {
		return Group{Label: label}, false, nil
	}
	g := Group{Label: label, Kind: kind, Rows: rows}
	for i, row := range rows {
		p := rowParser{kind: kind, row: row, index: i}
		include, err := p.boolean(colInclude)
		if err != nil {
			return Group{}, true, err
		}
		q, err := p.quote(include)
		if err != nil {
			if include {
				return Group{}, true, err
			}
			// Excluded rows may be incomplete.
			continue
		}
		g.Quotes = append(g.Quotes, q)
	}
	return g, true, nil
}

type rowParser struct {
	kind  Kind
	row   Row
	index int
}

func (p rowParser) missing(field string) error {
	return &curveerr.InstrumentDataError{Instrument: p.kind.String(), Field: field, Row: p.index}
}

func (p rowParser) invalid(field string, v any, err error) error {
	return fmt.Errorf("%s row %d: %s %v: %w: %w", p.kind, p.index, field, v, curveerr.ErrMissingInstrumentData, err)
}

func (p rowParser) quote(include bool) (Quote, error) {
	switch p.kind {
	case KindDeposit:
		tenor, err := p.period(colTenors, colTenor)
		if err != nil {
			return nil, err
		}
		rate, err := p.number(colRates, colRate)
		if err != nil {
			return nil, err
		}
		return Deposit{Tenor: tenor, Rate: rate, Include: include}, nil
	case KindFRA:
		v, ok := p.row.get(colFraTenors, colTenors, colTenor)
		if !ok {
			return nil, p.missing("FraTenors")
		}
		start, end, err := calendar.ParseFraTenor(fmt.Sprint(v))
		if err != nil {
			return nil, p.invalid("FraTenors", v, err)
		}
		rate, err := p.number(colRates, colRate)
		if err != nil {
			return nil, err
		}
		return FRA{Start: start, End: end, Rate: rate, Include: include}, nil
	case KindSwap:
		tenor, err := p.period(colTenors, colTenor)
		if err != nil {
			return nil, err
		}
		rate, err := p.number(colRates, colRate)
		if err != nil {
			return nil, err
		}
		return Swap{Tenor: tenor, Rate: rate, Include: include}, nil
	case KindOIS:
		q := OIS{Include: include}
		if v, ok := p.row.get(colEndDates); ok {
			d, err := toDate(v)
			if err != nil {
				return nil, p.invalid("EndDates", v, err)
			}
			q.EndDate = d
		} else {
			tenor, err := p.period(colTenors, colTenor)
			if err != nil {
				return nil, err
			}
			q.Tenor = tenor
		}
		rate, err := p.number(colRates, colRate)
		if err != nil {
			return nil, err
		}
		q.Rate = rate
		return q, nil
	case KindFxSwapPoints:
		tenor, err := p.period(colTenors, colTenor)
		if err != nil {
			return nil, err
		}
		points, err := p.number(colForwardPoints)
		if err != nil {
			return nil, err
		}
		days, err := p.integer(colFixingDays)
		if err != nil {
			return nil, err
		}
		return FxSwapPoints{Tenor: tenor, Points: points, FixingDays: days, Include: include}, nil
	default:
		tenor, err := p.period(colTenors, colTenor)
		if err != nil {
			return nil, err
		}
		spread, err := p.number(colBasisSpreads)
		if err != nil {
			return nil, err
		}
		days, err := p.integer(colFixingDays)
		if err != nil {
			return nil, err
		}
		return CrossCurrencyBasis{Tenor: tenor, Spread: spread, FixingDays: days, Include: include}, nil
	}
}

var fieldNames = map[string]string{
	colTenors:        "Tenors",
	colTenor:         "Tenors",
	colRates:         "Rates",
	colRate:          "Rates",
	colForwardPoints: "Forward Points",
	colBasisSpreads:  "Basis Spreads",
	colFixingDays:    "Fixing Days",
	colInclude:       "Include",
}

func (p rowParser) period(cols ...string) (calendar.Period, error) {
	v, ok := p.row.get(cols...)
	if !ok {
		return calendar.Period{}, p.missing(fieldNames[cols[0]])
	}
	tenor, err := calendar.ParsePeriod(fmt.Sprint(v))
	if err != nil {
		return calendar.Period{}, p.invalid(fieldNames[cols[0]], v, err)
	}
	return tenor, nil
}

func (p rowParser) number(cols ...string) (float64, error) {
	v, ok := p.row.get(cols...)
	if !ok {
		return 0, p.missing(fieldNames[cols[0]])
	}
	f, err := toFloat(v)
	if err != nil {
		return 0, p.invalid(fieldNames[cols[0]], v, err)
	}
	return f, nil
}

func (p rowParser) integer(col string) (int, error) {
	v, ok := p.row.get(col)
	if !ok {
		return 0, p.missing(fieldNames[col])
	}
	f, err := toFloat(v)
	if err != nil || f != math.Trunc(f) {
		return 0, p.invalid(fieldNames[col], v, fmt.Errorf("not an integer"))
	}
	return int(f), nil
}

func (p rowParser) boolean(col string) (bool, error) {
	v, ok := p.row.get(col)
	if !ok {
		return false, p.missing(fieldNames[col])
	}
	b, err := toBool(v)
	if err != nil {
		return false, p.invalid(fieldNames[col], v, err)
	}
	return b, nil
}

// toFloat accepts numbers and numeric strings; "5.25%" reads as 0.0525 and "NaN" as NaN.
func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case decimal.Decimal:
		return x.InexactFloat64(), nil
	case string:
		s := strings.TrimSpace(x)
		if strings.EqualFold(s, "nan") || strings.EqualFold(s, "#n/a") {
			return math.NaN(), nil
		}
		percent := strings.HasSuffix(s, "%")
		s = strings.ReplaceAll(strings.TrimSuffix(s, "%"), ",", "")
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			return 0, err
		}
		if percent {
			d = d.Shift(-2)
		}
		return d.InexactFloat64(), nil
	}
	return 0, fmt.Errorf("unsupported value type %T", v)
}

func toBool(v any) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		switch strings.ToUpper(strings.TrimSpace(x)) {
		case "TRUE", "T", "YES", "Y", "1":
			return true, nil
		case "FALSE", "F", "NO", "N", "0":
			return false, nil
		}
		return false, fmt.Errorf("not a boolean")
	}
	f, err := toFloat(v)
	if err != nil {
		return false, err
	}
	return f != 0, nil
}

func toDate(v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return utils.Date(x), nil
	case string:
		return utils.ParseDate(strings.TrimSpace(x))
	}
	return time.Time{}, fmt.Errorf("unsupported date type %T", v)
}
