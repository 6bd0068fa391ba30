package validate

import (
	"fmt"
	"strings"
	"time"

	"planner/internal/model"
	"planner/internal/period"
)

func intPtr(n int) *int { return &n }

// Frequency validates the one-character repetition frequency code.
func Frequency(arg any) (model.Frequency, error) {
	const freqStr = "(y)early, (m)onthly, (w)eekly, (d)aily, (h)ourly or mi(n)utely"
	s, err := String(arg, "frequency")
	if err != nil {
		return "", err
	}
	s = strings.TrimSpace(s)
	switch model.Frequency(s) {
	case model.FreqYearly, model.FreqMonthly, model.FreqWeekly,
		model.FreqDaily, model.FreqHourly, model.FreqMinutely:
		return model.Frequency(s), nil
	}
	if s == "" {
		return "", &FieldError{Msg: "repetition frequency: character from " + freqStr}
	}
	return "", &FieldError{Msg: fmt.Sprintf("invalid frequency: %s not in %s", s, freqStr)}
}

// Extent validates a timeperiod field value.
func Extent(arg any, label string) (time.Duration, error) {
	s, err := String(arg, label)
	if err != nil {
		return 0, err
	}
	d, perr := period.Parse(s)
	if perr != nil {
		return 0, &FieldError{Field: label, Msg: perr.Error()}
	}
	return d, nil
}

// RuleField validates the value of one rule-level &-key. Unknown keys are a
// hard error naming the key.
func RuleField(key string, raw any) (any, error) {
	switch key {
	case "r":
		return Frequency(raw)
	case "i":
		return Integer(raw, intPtr(1), nil, false, "interval")
	case "c":
		return Integer(raw, intPtr(1), nil, false, "count")
	case "u":
		t, _, err := DateTime(raw, "", "until")
		return t, err
	case "M":
		return IntegerList(raw, intPtr(0), intPtr(12), false, "months")
	case "m":
		return IntegerList(raw, intPtr(-31), intPtr(31), false, "monthdays")
	case "W":
		return IntegerList(raw, intPtr(0), intPtr(53), false, "weeks")
	case "w":
		return Weekdays(raw)
	case "h":
		return IntegerList(raw, intPtr(0), intPtr(23), true, "hours")
	case "n":
		return IntegerList(raw, intPtr(0), intPtr(59), true, "minutes")
	case "s":
		return IntegerList(raw, nil, nil, false, "setpos")
	case "E":
		return IntegerList(raw, nil, nil, true, "easter")
	default:
		return nil, &FieldError{Msg: fmt.Sprintf("error: %s is not a valid key", key)}
	}
}

// JobField validates the value of one job-level &-key. The id and
// prerequisite keys are validated here only for shape; their cross-job
// consistency is checked by the job resolver.
func JobField(key string, raw any) (any, error) {
	switch key {
	case "j":
		return String(raw, "job summary")
	case "d":
		return String(raw, "description")
	case "l":
		return String(raw, "location")
	case "n":
		return String(raw, "delegate")
	case "a":
		return String(raw, "alert")
	case "i":
		return String(raw, "id")
	case "p":
		return StringList(raw, "prereqs")
	case "b":
		return Integer(raw, intPtr(1), nil, false, "beginby")
	case "e":
		return Extent(raw, "extent")
	case "s":
		return Extent(raw, "start")
	case "f":
		t, _, err := DateTime(raw, "", "finish")
		return t, err
	default:
		return nil, &FieldError{Msg: fmt.Sprintf("error: &%s is not a valid key", key)}
	}
}

// Field validates the value of one item-level @-key. The rule and job keys
// ("r" and "j") carry record lists whose full validation belongs to the rule
// normalizer and job resolver; here they pass through shape-unchecked.
func Field(key string, raw any) (any, error) {
	switch key {
	case "summary", "c", "d", "g", "i", "l", "n", "x", "z":
		return String(raw, keyLabel(key))
	case "itemtype":
		s, err := String(raw, "itemtype")
		if err != nil {
			return nil, err
		}
		kind, ok := model.TypeCodes[s]
		if !ok {
			return nil, &FieldError{Field: "itemtype", Msg: fmt.Sprintf("unknown type code %q", s)}
		}
		return kind, nil
	case "b":
		return Integer(raw, intPtr(1), nil, false, "beginby")
	case "p":
		n, err := Integer(raw, intPtr(1), intPtr(9), false, "priority")
		if err != nil {
			return nil, &FieldError{
				Field: "priority",
				Msg:   "an integer priority from 1 (highest) to 9 (lowest)",
			}
		}
		return n, nil
	case "e":
		return Extent(raw, "extent")
	case "s", "f":
		t, k, err := DateTime(raw, "", keyLabel(key))
		if err != nil {
			return nil, err
		}
		return []any{t, k}, nil
	case "+", "-", "h":
		return DateTimeList(raw, "", keyLabel(key))
	case "t":
		return StringList(raw, "tags")
	case "o":
		return Char(raw, "rsk", "overdue")
	case "a", "m":
		return raw, nil
	case "r", "j":
		return raw, nil
	default:
		return nil, &FieldError{Msg: fmt.Sprintf("error: @%s is not a valid key", key)}
	}
}

func keyLabel(key string) string {
	if desc, ok := model.AtKeys[key]; ok {
		if i := strings.IndexAny(desc, " ("); i > 0 {
			return desc[:i]
		}
		return desc
	}
	return key
}
