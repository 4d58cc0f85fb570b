package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/meenmo/ycurve/curveerr"
)

// BusinessDayConvention says how a date falling on a holiday is rolled.
type BusinessDayConvention string

const (
	Following         BusinessDayConvention = "FOLLOWING"
	ModifiedFollowing BusinessDayConvention = "MODIFIED_FOLLOWING"
	Preceding         BusinessDayConvention = "PRECEDING"
	ModifiedPreceding BusinessDayConvention = "MODIFIED_PRECEDING"
	Unadjusted        BusinessDayConvention = "UNADJUSTED"
)

// ParseConvention accepts the usual spellings ("ModifiedFollowing", "MF", "modified following").
func ParseConvention(name string) (BusinessDayConvention, error) {
	key := strings.ToUpper(strings.NewReplacer("_", "", " ", "", "-", "").Replace(name))
	switch key {
	case "FOLLOWING", "F", "FOL":
		return Following, nil
	case "MODIFIEDFOLLOWING", "MF", "MODFOL":
		return ModifiedFollowing, nil
	case "PRECEDING", "P", "PRE":
		return Preceding, nil
	case "MODIFIEDPRECEDING", "MP", "MODPRE":
		return ModifiedPreceding, nil
	case "UNADJUSTED", "NONE", "U":
		return Unadjusted, nil
	}
	return "", fmt.Errorf("ParseConvention: %q: %w", name, curveerr.ErrUnsupportedConvention)
}

// AdjustWith rolls t onto a business day using conv.
func AdjustWith(cal Calendar, t time.Time, conv BusinessDayConvention) time.Time {
	switch conv {
	case Following:
		return AdjustFollowing(cal, t)
	case ModifiedFollowing:
		return Adjust(cal, t)
	case Preceding:
		return AdjustPreceding(cal, t)
	case ModifiedPreceding:
		adj := AdjustPreceding(cal, t)
		if adj.Month() != t.Month() {
			return AdjustFollowing(cal, t)
		}
		return adj
	default:
		return t
	}
}
