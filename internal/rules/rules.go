// Package rules normalizes raw recurrence-rule records and compiles them
// into parameters for the occurrence primitive (teambition/rrule-go).
// Multiple rules on one item are a rule-set union: an occurrence matches if
// it satisfies any of them.
package rules

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/teambition/rrule-go"

	appLog "planner/internal/log"
	"planner/internal/model"
	"planner/internal/validate"
)

var freqCodes = map[model.Frequency]rrule.Frequency{
	model.FreqYearly:   rrule.YEARLY,
	model.FreqMonthly:  rrule.MONTHLY,
	model.FreqWeekly:   rrule.WEEKLY,
	model.FreqDaily:    rrule.DAILY,
	model.FreqHourly:   rrule.HOURLY,
	model.FreqMinutely: rrule.MINUTELY,
}

var weekdayCodes = map[string]rrule.Weekday{
	"MO": rrule.MO,
	"TU": rrule.TU,
	"WE": rrule.WE,
	"TH": rrule.TH,
	"FR": rrule.FR,
	"SA": rrule.SA,
	"SU": rrule.SU,
}

// Normalize validates one raw rule record (a map keyed by &-keys) or a list
// of them, returning the normalized records. Field errors across all rules
// are aggregated; success requires zero errors in total.
//
// Missing frequency is a hard error. Missing interval defaults to 1.
// Unknown keys are hard errors naming the key.
func Normalize(raw any) ([]model.RuleRecord, error) {
	var records []any
	switch v := raw.(type) {
	case map[string]any:
		records = []any{v}
	case []any:
		records = v
	case []map[string]any:
		for _, m := range v {
			records = append(records, m)
		}
	default:
		return nil, &validate.StructuralError{
			Msg: fmt.Sprintf("rules must be a record or list of records, got %v", raw),
		}
	}

	var errs []error
	out := make([]model.RuleRecord, 0, len(records))
	for _, entry := range records {
		hsh, ok := entry.(map[string]any)
		if !ok {
			errs = append(errs, &validate.StructuralError{
				Msg: fmt.Sprintf("elements must be records, cannot process %v", entry),
			})
			continue
		}

		rec := model.RuleRecord{Interval: 1}
		if _, ok := hsh["r"]; !ok {
			errs = append(errs, &validate.FieldError{Msg: "error: r is required but missing"})
		}

		keys := make([]string, 0, len(hsh))
		for k := range hsh {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		bad := false
		for _, key := range keys {
			val, err := validate.RuleField(key, hsh[key])
			if err != nil {
				errs = append(errs, err)
				bad = true
				continue
			}
			setRuleField(&rec, key, val)
		}
		if !bad {
			out = append(out, rec)
		}
	}

	if err := validate.Aggregate(errs); err != nil {
		return nil, err
	}
	return out, nil
}

func setRuleField(rec *model.RuleRecord, key string, val any) {
	switch key {
	case "r":
		rec.Frequency = val.(model.Frequency)
	case "i":
		rec.Interval = val.(int)
	case "c":
		rec.Count = val.(int)
	case "u":
		rec.Until = val.(time.Time)
	case "M":
		rec.Months = val.([]int)
	case "m":
		rec.MonthDays = val.([]int)
	case "W":
		rec.WeekNumbers = val.([]int)
	case "w":
		rec.Weekdays = val.([]string)
	case "h":
		rec.Hours = val.([]int)
	case "n":
		rec.Minutes = val.([]int)
	case "s":
		rec.SetPositions = val.([]int)
	case "E":
		rec.EasterOffsets = val.([]int)
	}
}

// Compile turns a normalized rule into the frequency and keyword arguments
// of the occurrence primitive. Weekday tokens become nth-weekday selectors.
// If both count and until are present the rule proceeds with both; that
// combination is deprecated, so it logs a warning rather than erroring.
// Easter offsets are accepted by validation but have no expansion effect and
// are dropped here.
func Compile(rec model.RuleRecord) (rrule.ROption, error) {
	freq, ok := freqCodes[rec.Frequency]
	if !ok {
		return rrule.ROption{}, fmt.Errorf("rules: unknown frequency %q", rec.Frequency)
	}

	opt := rrule.ROption{
		Freq:     freq,
		Interval: rec.Interval,
	}
	if rec.Count > 0 {
		opt.Count = rec.Count
	}
	if !rec.Until.IsZero() {
		opt.Until = rec.Until
	}
	if rec.Count > 0 && !rec.Until.IsZero() {
		appLog.Warn("rules: using both count and until is deprecated",
			"count", rec.Count, "until", rec.Until)
	}

	opt.Bymonth = rec.Months
	opt.Bymonthday = rec.MonthDays
	opt.Byweekno = rec.WeekNumbers
	opt.Byhour = rec.Hours
	opt.Byminute = rec.Minutes
	opt.Bysetpos = rec.SetPositions

	for _, token := range rec.Weekdays {
		wd, err := compileWeekday(token)
		if err != nil {
			return rrule.ROption{}, err
		}
		opt.Byweekday = append(opt.Byweekday, wd)
	}

	return opt, nil
}

// compileWeekday maps a normalized token like "MO", "2SU" or "-1FR" to a
// weekday selector.
func compileWeekday(token string) (rrule.Weekday, error) {
	if len(token) < 2 {
		return rrule.Weekday{}, fmt.Errorf("rules: malformed weekday token %q", token)
	}
	day := token[len(token)-2:]
	wd, ok := weekdayCodes[day]
	if !ok {
		return rrule.Weekday{}, fmt.Errorf("rules: malformed weekday token %q", token)
	}
	if ord := token[:len(token)-2]; ord != "" {
		n, err := strconv.Atoi(ord)
		if err != nil {
			return rrule.Weekday{}, fmt.Errorf("rules: malformed weekday token %q", token)
		}
		wd = wd.Nth(n)
	}
	return wd, nil
}
