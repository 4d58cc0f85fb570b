package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/ycurve/calendar"
	"github.com/meenmo/ycurve/curveerr"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestHolidays(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cal  calendar.CalendarID
		day  time.Time
		want bool
	}{
		{"target good friday", calendar.TARGET, d(2024, 3, 29), false},
		{"target easter monday", calendar.TARGET, d(2024, 4, 1), false},
		{"target boxing day", calendar.TARGET, d(2024, 12, 26), false},
		{"target ordinary tuesday", calendar.TARGET, d(2024, 4, 2), true},
		{"usd independence day", calendar.USD, d(2024, 7, 4), false},
		{"usd saturday independence day observed friday", calendar.USD, d(2026, 7, 3), false},
		{"usd thanksgiving", calendar.USD, d(2024, 11, 28), false},
		{"usd memorial day", calendar.USD, d(2024, 5, 27), false},
		{"usd juneteenth", calendar.USD, d(2024, 6, 19), false},
		{"zar human rights day", calendar.ZAR, d(2024, 3, 21), false},
		{"zar sunday youth day observed monday", calendar.ZAR, d(2024, 6, 17), false},
		{"zar ordinary day", calendar.ZAR, d(2024, 6, 18), true},
		{"gbp early may bank holiday", calendar.GBP, d(2024, 5, 6), false},
		{"gbp summer bank holiday", calendar.GBP, d(2024, 8, 26), false},
		{"jpn vernal equinox", calendar.JPN, d(2024, 3, 20), false},
		{"jpn substitute for sunday", calendar.JPN, d(2024, 2, 12), false},
		{"jpn ordinary day", calendar.JPN, d(2024, 2, 13), true},
		{"krw chuseok", calendar.KRW, d(2024, 9, 17), false},
		{"krw year end", calendar.KRW, d(2025, 12, 31), false},
		{"krw independence movement day", calendar.KRW, d(2024, 3, 1), false},
		{"weekends saturday", calendar.Weekends, d(2024, 6, 15), false},
		{"weekends christmas", calendar.Weekends, d(2024, 12, 25), true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cal.IsBusinessDay(tt.day))
		})
	}
}

func TestAdjust(t *testing.T) {
	t.Parallel()

	// Month end on Easter weekend rolls back past Good Friday.
	assert.Equal(t, d(2024, 3, 28), calendar.Adjust(calendar.ZAR, d(2024, 3, 31)))
	assert.Equal(t, d(2024, 4, 2), calendar.AdjustFollowing(calendar.ZAR, d(2024, 3, 30)))
	assert.Equal(t, d(2024, 3, 28), calendar.AdjustPreceding(calendar.ZAR, d(2024, 3, 30)))
	assert.Equal(t, d(2024, 6, 3), calendar.AdjustWith(calendar.USD, d(2024, 6, 1), calendar.ModifiedPreceding))
	assert.Equal(t, d(2024, 6, 1), calendar.AdjustWith(calendar.USD, d(2024, 6, 1), calendar.Unadjusted))
	assert.Equal(t, d(2024, 4, 3), calendar.AddBusinessDays(calendar.TARGET, d(2024, 3, 28), 2))
	assert.Equal(t, d(2024, 3, 27), calendar.AddBusinessDays(calendar.TARGET, d(2024, 4, 2), -2))
	assert.Equal(t, d(2024, 5, 31), calendar.LastBusinessDayOfMonth(calendar.USD, d(2024, 5, 10)))
	assert.True(t, calendar.IsEndOfMonth(calendar.TARGET, d(2024, 3, 28)))
}

func TestJoinAndParse(t *testing.T) {
	t.Parallel()

	joint := calendar.Join(calendar.Join(calendar.USD, calendar.GBP), calendar.USD)
	assert.Equal(t, "USD,GBP", joint.Name())
	assert.False(t, joint.IsBusinessDay(d(2024, 7, 4)))
	assert.False(t, joint.IsBusinessDay(d(2024, 8, 26)))
	assert.True(t, joint.IsBusinessDay(d(2024, 8, 27)))

	single := calendar.Join(calendar.ZAR, nil)
	assert.Equal(t, calendar.ZAR, single)

	parsed, err := calendar.Parse("usd + uk")
	require.NoError(t, err)
	assert.Equal(t, "USD,GBP", parsed.Name())

	_, err = calendar.Parse("Mars")
	assert.ErrorIs(t, err, curveerr.ErrUnsupportedCalendar)
	_, err = calendar.Parse(" , ")
	assert.ErrorIs(t, err, curveerr.ErrUnsupportedCalendar)
}

func TestParseConvention(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]calendar.BusinessDayConvention{
		"ModifiedFollowing":  calendar.ModifiedFollowing,
		"mf":                 calendar.ModifiedFollowing,
		"following":          calendar.Following,
		"Modified Preceding": calendar.ModifiedPreceding,
		"unadjusted":         calendar.Unadjusted,
	} {
		got, err := calendar.ParseConvention(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := calendar.ParseConvention("nearest")
	assert.ErrorIs(t, err, curveerr.ErrUnsupportedConvention)
}

func TestParsePeriod(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]calendar.Period{
		"3M":  {Length: 3, Unit: calendar.Months},
		"10y": {Length: 10, Unit: calendar.Years},
		"1W":  {Length: 1, Unit: calendar.Weeks},
		"ON":  {Length: 1, Unit: calendar.Days},
		"T/N": {Length: 2, Unit: calendar.Days},
	} {
		got, err := calendar.ParsePeriod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, bad := range []string{"", "3", "M", "3Q", "-1M", "xM"} {
		_, err := calendar.ParsePeriod(bad)
		assert.ErrorIs(t, err, curveerr.ErrInvalidTenor, bad)
	}

	p := calendar.Period{Length: 2, Unit: calendar.Years}
	assert.Equal(t, "2Y", p.String())
	assert.Equal(t, 24, p.Months())
	assert.True(t, calendar.Period{}.IsZero())
}

func TestParseFraTenor(t *testing.T) {
	t.Parallel()

	start, end, err := calendar.ParseFraTenor("6x9")
	require.NoError(t, err)
	assert.Equal(t, calendar.Period{Length: 6, Unit: calendar.Months}, start)
	assert.Equal(t, calendar.Period{Length: 9, Unit: calendar.Months}, end)

	start, end, err = calendar.ParseFraTenor("3M")
	require.NoError(t, err)
	assert.Equal(t, 3, start.Months())
	assert.True(t, end.IsZero())

	_, _, err = calendar.ParseFraTenor("9x6")
	assert.ErrorIs(t, err, curveerr.ErrInvalidTenor)
}

func TestAdvance(t *testing.T) {
	t.Parallel()

	mf := calendar.ModifiedFollowing
	assert.Equal(t, d(2024, 4, 3), calendar.Advance(calendar.TARGET, d(2024, 3, 28), calendar.Period{Length: 2, Unit: calendar.Days}, mf, false))
	assert.Equal(t, d(2024, 1, 17), calendar.Advance(calendar.TARGET, d(2024, 1, 10), calendar.Period{Length: 1, Unit: calendar.Weeks}, mf, false))
	assert.Equal(t, d(2024, 6, 17), calendar.Advance(calendar.TARGET, d(2024, 6, 15), calendar.Period{Length: 0, Unit: calendar.Days}, mf, false))

	oneMonth := calendar.Period{Length: 1, Unit: calendar.Months}
	assert.Equal(t, d(2024, 5, 30), calendar.Advance(calendar.TARGET, d(2024, 4, 30), oneMonth, mf, false))
	assert.Equal(t, d(2024, 5, 31), calendar.Advance(calendar.TARGET, d(2024, 4, 30), oneMonth, mf, true))
	assert.Equal(t, d(2025, 6, 16), calendar.Advance(calendar.TARGET, d(2024, 6, 14), calendar.Period{Length: 1, Unit: calendar.Years}, mf, false))
}
