package market

import (
	"fmt"
	"strings"

	"github.com/meenmo/ycurve/calendar"
	"github.com/meenmo/ycurve/curveerr"
	"github.com/meenmo/ycurve/utils"
)

// CustomIndexSpec is a user-supplied index definition in string form.
type CustomIndexSpec struct {
	Name              string `yaml:"name" json:"name"`
	Currency          string `yaml:"currency" json:"currency"`
	Tenor             string `yaml:"tenor" json:"tenor"`
	FixingDays        int    `yaml:"fixingDays" json:"fixingDays"`
	Calendars         string `yaml:"calendars" json:"calendars"`
	Convention        string `yaml:"convention" json:"convention"`
	DayCount          string `yaml:"dayCount" json:"dayCount"`
	EndOfMonth        bool   `yaml:"endOfMonth" json:"endOfMonth"`
	Overnight         bool   `yaml:"overnight" json:"overnight"`
	FixedLegFrequency string `yaml:"fixedLegFrequency" json:"fixedLegFrequency"`
	FixedLegDayCount  string `yaml:"fixedLegDayCount" json:"fixedLegDayCount"`
}

// NewCustomIndex validates spec and builds an index from it. The fixed leg defaults to
// quarterly payments on the index day count.
func NewCustomIndex(spec CustomIndexSpec) (ReferenceRateIndex, error) {
	required := []struct{ field, value string }{
		{"Name", spec.Name},
		{"Calendars", spec.Calendars},
		{"DayCount", spec.DayCount},
	}
	if !spec.Overnight {
		required = append(required, struct{ field, value string }{"Tenor", spec.Tenor})
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return ReferenceRateIndex{}, fmt.Errorf("NewCustomIndex: %s: %w", r.field, curveerr.ErrMissingParameter)
		}
	}

	idx := ReferenceRateIndex{
		Name:       strings.ToUpper(strings.TrimSpace(spec.Name)),
		Currency:   strings.ToUpper(strings.TrimSpace(spec.Currency)),
		FixingDays: spec.FixingDays,
		EndOfMonth: spec.EndOfMonth,
		Overnight:  spec.Overnight,
		Convention: calendar.ModifiedFollowing,
		Tenor:      oneDay,
	}

	var err error
	if idx.Calendar, err = calendar.Parse(spec.Calendars); err != nil {
		return ReferenceRateIndex{}, fmt.Errorf("NewCustomIndex: %w", err)
	}
	if idx.DayCount, err = utils.ParseDayCount(spec.DayCount); err != nil {
		return ReferenceRateIndex{}, fmt.Errorf("NewCustomIndex: %w", err)
	}
	if !spec.Overnight {
		if idx.Tenor, err = calendar.ParsePeriod(spec.Tenor); err != nil {
			return ReferenceRateIndex{}, fmt.Errorf("NewCustomIndex: %w", err)
		}
	}
	if spec.Convention != "" {
		if idx.Convention, err = calendar.ParseConvention(spec.Convention); err != nil {
			return ReferenceRateIndex{}, fmt.Errorf("NewCustomIndex: %w", err)
		}
	}

	idx.FixedLegFrequency = threeMonth
	if spec.FixedLegFrequency != "" {
		if idx.FixedLegFrequency, err = calendar.ParsePeriod(spec.FixedLegFrequency); err != nil {
			return ReferenceRateIndex{}, fmt.Errorf("NewCustomIndex: %w", err)
		}
	}
	idx.FixedLegDayCount = idx.DayCount
	if spec.FixedLegDayCount != "" {
		if idx.FixedLegDayCount, err = utils.ParseDayCount(spec.FixedLegDayCount); err != nil {
			return ReferenceRateIndex{}, fmt.Errorf("NewCustomIndex: %w", err)
		}
	}
	return idx, nil
}
