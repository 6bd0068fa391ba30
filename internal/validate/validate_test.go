package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegerRange(t *testing.T) {
	n, err := Integer(-2, intPtr(-10), intPtr(8), false, "test")
	require.NoError(t, err)
	assert.Equal(t, -2, n)

	_, err = Integer(-2, intPtr(0), intPtr(8), false, "test")
	require.Error(t, err)
	assert.Equal(t, "test: -2 is less than the allowed minimum", err.Error())

	_, err = Integer(0, nil, nil, false, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0 is not allowed")

	n, err = Integer("7", nil, nil, false, "test")
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestIntegerListAggregatesAllFailures(t *testing.T) {
	_, err := IntegerList([]any{-13, -10, 0, "2", 27}, intPtr(-12), intPtr(20), true, "list test")
	require.Error(t, err)
	assert.Equal(t, "list test: -13 is less than the allowed minimum; 27 is greater than the allowed maximum", err.Error())
}

func TestIntegerListForms(t *testing.T) {
	got, err := IntegerList("1, 2, 3", nil, nil, true, "list")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)

	got, err = IntegerList(27, nil, nil, true, "list")
	require.NoError(t, err)
	assert.Equal(t, []int{27}, got)

	got, err = IntegerList([]any{1, "2", 3}, nil, nil, true, "list")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestStringList(t *testing.T) {
	got, err := StringList("B, C, D", "prereqs")
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "D"}, got)

	got, err = StringList([]any{2, 3, 4}, "prereqs")
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3", "4"}, got)

	got, err = StringList("", "prereqs")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWeekdaysNormalizes(t *testing.T) {
	got, err := Weekdays("-2mo, 3tU")
	require.NoError(t, err)
	assert.Equal(t, []string{"-2MO", "3TU"}, got)
}

func TestWeekdaysInvalidOrdinalIsHardError(t *testing.T) {
	_, err := Weekdays([]any{"5Su", "1SA"})
	require.Error(t, err)
	assert.False(t, Considered(err))
	assert.Equal(t, "invalid weekdays: 5SU", err.Error())
}

func TestWeekdaysTruncatedTokenIsConsidered(t *testing.T) {
	_, err := Weekdays("3FR, -1M")
	require.Error(t, err)
	assert.True(t, Considered(err))
	assert.Equal(t, "considering weekdays: -1M", err.Error())
}

func TestWeekdaysInvalidOutranksConsidered(t *testing.T) {
	_, err := Weekdays("5SU, -1M")
	require.Error(t, err)
	assert.False(t, Considered(err))
}

func TestFrequency(t *testing.T) {
	f, err := Frequency("d")
	require.NoError(t, err)
	assert.Equal(t, "d", string(f))

	_, err = Frequency("z")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid frequency: z")
}

func TestRuleFieldUnknownKey(t *testing.T) {
	_, err := RuleField("q", 1)
	require.Error(t, err)
	assert.Equal(t, "error: q is not a valid key", err.Error())
}

func TestFieldRecordKeysPassThrough(t *testing.T) {
	rules := []any{map[string]any{"r": "w"}}
	got, err := Field("r", rules)
	require.NoError(t, err)
	assert.Equal(t, rules, got)

	jobs := []any{map[string]any{"j": "sand walls"}}
	got, err = Field("j", jobs)
	require.NoError(t, err)
	assert.Equal(t, jobs, got)
}

func TestAggregateJoinsWithSemicolons(t *testing.T) {
	err := Aggregate([]error{
		&FieldError{Field: "a", Msg: "bad"},
		&FieldError{Field: "b", Msg: "worse"},
	})
	require.Error(t, err)
	assert.Equal(t, "a: bad; b: worse", err.Error())

	assert.NoError(t, Aggregate(nil))
}
