package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teambition/rrule-go"

	"planner/internal/model"
)

func TestNormalizeSingleRule(t *testing.T) {
	got, err := Normalize(map[string]any{"M": 5, "i": 1, "m": 3, "r": "y", "w": "2SU"})
	require.NoError(t, err)
	require.Len(t, got, 1)

	rec := got[0]
	assert.Equal(t, model.FreqYearly, rec.Frequency)
	assert.Equal(t, 1, rec.Interval)
	assert.Equal(t, []int{5}, rec.Months)
	assert.Equal(t, []int{3}, rec.MonthDays)
	assert.Equal(t, []string{"2SU"}, rec.Weekdays)
}

func TestNormalizeDefaultsInterval(t *testing.T) {
	got, err := Normalize(map[string]any{"r": "w"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Interval)
}

func TestNormalizeMissingFrequency(t *testing.T) {
	_, err := Normalize(map[string]any{"i": 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error: r is required but missing")
}

func TestNormalizeUnknownKey(t *testing.T) {
	_, err := Normalize(map[string]any{"r": "d", "q": 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error: q is not a valid key")
}

func TestNormalizeAggregatesAcrossRules(t *testing.T) {
	_, err := Normalize([]any{
		map[string]any{"M": 5, "i": 1, "m": 3, "r": "y", "w": "2SE"},
		map[string]any{"M": []any{11, 12}, "i": 4, "r": "z", "w": []any{"TU", "-1FR"}},
	})
	require.Error(t, err)
	// Both rules' failures surface together.
	assert.Contains(t, err.Error(), "invalid weekdays: 2SE")
	assert.Contains(t, err.Error(), "invalid frequency: z")
}

func TestNormalizeRuleList(t *testing.T) {
	got, err := Normalize([]any{
		map[string]any{"r": "w", "w": "TU", "h": 14},
		map[string]any{"r": "w", "w": "TH", "h": 16},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []int{14}, got[0].Hours)
	assert.Equal(t, []string{"TH"}, got[1].Weekdays)
	assert.Equal(t, 1, got[1].Interval)
}

func TestNormalizeRejectsNonRecord(t *testing.T) {
	_, err := Normalize("w")
	require.Error(t, err)

	_, err = Normalize([]any{"w"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be records")
}

func TestCompileBasics(t *testing.T) {
	opt, err := Compile(model.RuleRecord{Frequency: model.FreqWeekly, Interval: 2})
	require.NoError(t, err)
	assert.Equal(t, rrule.WEEKLY, opt.Freq)
	assert.Equal(t, 2, opt.Interval)
}

func TestCompileWeekdaySelectors(t *testing.T) {
	opt, err := Compile(model.RuleRecord{
		Frequency: model.FreqMonthly,
		Interval:  1,
		Weekdays:  []string{"2SU", "MO", "-1FR"},
	})
	require.NoError(t, err)
	assert.Equal(t, []rrule.Weekday{rrule.SU.Nth(2), rrule.MO, rrule.FR.Nth(-1)}, opt.Byweekday)
}

func TestCompileCountAndUntilBothProceed(t *testing.T) {
	until := time.Date(2018, 4, 1, 8, 0, 0, 0, time.UTC)
	opt, err := Compile(model.RuleRecord{
		Frequency: model.FreqWeekly,
		Interval:  1,
		Count:     4,
		Until:     until,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, opt.Count)
	assert.Equal(t, until, opt.Until)
}

func TestCompileDropsEasterOffsets(t *testing.T) {
	with, err := Compile(model.RuleRecord{
		Frequency:     model.FreqYearly,
		Interval:      1,
		EasterOffsets: []int{-2, 0, 45},
	})
	require.NoError(t, err)
	without, err := Compile(model.RuleRecord{Frequency: model.FreqYearly, Interval: 1})
	require.NoError(t, err)
	assert.Equal(t, without, with)
}

func TestCompileRoundTripOccurrenceCount(t *testing.T) {
	// Weekly, interval 2, over 10 weeks: 5 occurrences.
	opt, err := Compile(model.RuleRecord{Frequency: model.FreqWeekly, Interval: 2})
	require.NoError(t, err)
	opt.Dtstart = time.Date(2018, 3, 7, 8, 0, 0, 0, time.UTC)

	r, err := rrule.NewRRule(opt)
	require.NoError(t, err)

	occ := r.Between(
		time.Date(2018, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2018, 3, 7, 8, 0, 0, 0, time.UTC).AddDate(0, 0, 10*7).Add(-time.Second),
		true,
	)
	assert.Len(t, occ, 5)
}
