package validate

import (
	"fmt"
	"strings"
	"time"

	"planner/internal/model"
)

// Accepted date-time layouts, tried in order. Natural-language parsing is
// deliberately not supported here.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"20060102T150405",
	"20060102T1504",
}

var dateLayouts = []string{
	"2006-01-02",
	"20060102",
}

// ParseDateTime parses a date or date-time string.
//
// The zone argument selects the interpretation: "" means the local timezone
// (an aware result), "float" means a floating/naive result, anything else is
// an IANA zone name. A date-time that lands exactly on midnight degrades to
// a pure date (TimeDate); to mean midnight, give 00:00:01 and drop the
// second downstream.
func ParseDateTime(s string, zone string) (time.Time, model.TimeKind, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, model.TimeNone, &FieldError{Msg: "empty date-time"}
	}

	kind := model.TimeAware
	loc := time.Local
	switch zone {
	case "":
	case "float":
		kind = model.TimeNaive
		loc = time.UTC
	default:
		l, err := time.LoadLocation(zone)
		if err != nil {
			return time.Time{}, model.TimeNone, &FieldError{Msg: fmt.Sprintf("invalid timezone: %q", zone)}
		}
		loc = l
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, model.TimeDate, nil
		}
	}
	for _, layout := range dateTimeLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			continue
		}
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t, model.TimeDate, nil
		}
		return t, kind, nil
	}
	return time.Time{}, model.TimeNone, &FieldError{Msg: fmt.Sprintf("invalid date-time: %q", s)}
}

// DateTime validates a single date-time field value. YAML decoding may have
// already produced a time.Time; that form is accepted directly.
func DateTime(arg any, zone string, label string) (time.Time, model.TimeKind, error) {
	if t, ok := arg.(time.Time); ok {
		ct, kind := classify(t, zone)
		return ct, kind, nil
	}
	s, err := String(arg, label)
	if err != nil {
		return time.Time{}, model.TimeNone, err
	}
	t, kind, perr := ParseDateTime(s, zone)
	if perr != nil {
		return time.Time{}, model.TimeNone, &FieldError{Field: label, Msg: perr.(*FieldError).Msg}
	}
	return t, kind, nil
}

// DateTimeList validates a comma separated string or native list of
// date-times, collecting every per-element failure.
func DateTimeList(arg any, zone string, label string) ([]time.Time, error) {
	var elems []any
	switch v := arg.(type) {
	case string:
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				elems = append(elems, p)
			}
		}
	case []any:
		elems = v
	case []string:
		for _, s := range v {
			elems = append(elems, s)
		}
	case time.Time:
		elems = []any{v}
	default:
		return nil, &FieldError{Field: label, Msg: fmt.Sprint(arg)}
	}

	var out []time.Time
	var msgs []string
	for _, e := range elems {
		t, _, err := DateTime(e, zone, label)
		if err != nil {
			msgs = append(msgs, err.(*FieldError).Msg)
			continue
		}
		out = append(out, t)
	}
	if len(msgs) > 0 {
		return nil, &FieldError{Field: label, Msg: strings.Join(msgs, "; ")}
	}
	return out, nil
}

func classify(t time.Time, zone string) (time.Time, model.TimeKind) {
	kind := model.TimeAware
	if zone == "float" {
		kind = model.TimeNaive
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		kind = model.TimeDate
	}
	return t, kind
}
