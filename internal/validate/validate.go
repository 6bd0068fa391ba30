// Package validate implements the typed field validators that turn loosely
// structured input (values decoded from the stored field-code maps) into
// normalized scalars and lists. Validators never panic and never coerce
// out-of-range input; they return the value or a structured error.
package validate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// toInt coerces the scalar forms a decoded map value can take into an int.
func toInt(arg any) (int, error) {
	switch v := arg.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("not an integer: %v", v)
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("not an integer: %q", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("not an integer: %v", arg)
	}
}

// Integer validates a scalar integer against an optional [min, max] range.
// A nil bound is unbounded. Zero is rejected unless zeroOK.
func Integer(arg any, min, max *int, zeroOK bool, label string) (int, error) {
	n, err := toInt(arg)
	if err != nil {
		return 0, &FieldError{Field: label, Msg: fmt.Sprint(arg)}
	}
	var msg string
	switch {
	case min != nil && n < *min:
		msg = fmt.Sprintf("%d is less than the allowed minimum", n)
	case max != nil && n > *max:
		msg = fmt.Sprintf("%d is greater than the allowed maximum", n)
	case !zeroOK && n == 0:
		msg = "0 is not allowed"
	}
	if msg != "" {
		return 0, &FieldError{Field: label, Msg: msg}
	}
	return n, nil
}

// IntegerList validates a scalar, a comma separated string or a native list
// of integers, element by element. Every per-element failure is collected
// and reported together rather than failing fast.
func IntegerList(arg any, min, max *int, zeroOK bool, label string) ([]int, error) {
	var elems []any
	switch v := arg.(type) {
	case string:
		for _, part := range strings.Split(v, ",") {
			elems = append(elems, strings.TrimSpace(part))
		}
	case []any:
		elems = v
	case []int:
		for _, n := range v {
			elems = append(elems, n)
		}
	default:
		elems = []any{arg}
	}

	var out []int
	var msgs []string
	for _, e := range elems {
		n, err := Integer(e, min, max, zeroOK, "")
		if err != nil {
			msgs = append(msgs, err.Error())
			continue
		}
		out = append(out, n)
	}
	if len(msgs) > 0 {
		return nil, &FieldError{Field: label, Msg: strings.Join(msgs, "; ")}
	}
	return out, nil
}

// String validates a scalar string-valued field.
func String(arg any, label string) (string, error) {
	switch v := arg.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		if v == math.Trunc(v) {
			return strconv.Itoa(int(v)), nil
		}
		return fmt.Sprint(v), nil
	default:
		return "", &FieldError{Field: label, Msg: fmt.Sprint(arg)}
	}
}

// StringList validates a comma separated string or native list of strings.
func StringList(arg any, label string) ([]string, error) {
	switch v := arg.(type) {
	case string:
		if v == "" {
			return []string{}, nil
		}
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			out = append(out, strings.TrimSpace(p))
		}
		return out, nil
	case []any:
		out := make([]string, 0, len(v))
		var msgs []string
		for _, e := range v {
			s, err := String(e, "")
			if err != nil {
				msgs = append(msgs, err.Error())
				continue
			}
			out = append(out, strings.TrimSpace(s))
		}
		if len(msgs) > 0 {
			return nil, &FieldError{Field: label, Msg: strings.Join(msgs, "; ")}
		}
		return out, nil
	case []string:
		out := make([]string, 0, len(v))
		for _, s := range v {
			out = append(out, strings.TrimSpace(s))
		}
		return out, nil
	default:
		return nil, &FieldError{Field: label, Msg: fmt.Sprint(arg)}
	}
}

// Char validates a one-character field against an allowed set.
func Char(arg any, allowed string, label string) (string, error) {
	s, err := String(arg, label)
	if err != nil {
		return "", err
	}
	s = strings.TrimSpace(s)
	if len(s) == 1 && strings.Contains(allowed, s) {
		return s, nil
	}
	return "", &FieldError{Field: label, Msg: fmt.Sprintf("%q is not one of %q", s, allowed)}
}

// weekdayTokens is the canonical set of weekday selectors: a bare two-letter
// abbreviation or one prefixed with an ordinal in -4..-1, 1..4.
var weekdayTokens = func() []string {
	days := []string{"MO", "TU", "WE", "TH", "FR", "SA", "SU"}
	ords := []string{"-4", "-3", "-2", "-1", "", "1", "2", "3", "4"}
	out := make([]string, 0, len(days)*len(ords))
	for _, d := range days {
		for _, o := range ords {
			out = append(out, o+d)
		}
	}
	return out
}()

// Weekdays validates a list of weekday tokens such as "MO", "3WE" or "-1FR",
// case-insensitively. Two failure tiers are distinguished:
//
//   - a token that is not a prefix of any canonical selector is invalid
//     (hard error), e.g. "5SU";
//   - a token that is an unambiguous prefix but not itself canonical is
//     reported as "considering" (soft, ClassConsidered), e.g. "-1M".
func Weekdays(arg any) ([]string, error) {
	tokens, err := StringList(arg, "weekdays")
	if err != nil {
		return nil, err
	}
	args := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" {
			args = append(args, t)
		}
	}
	if len(args) == 0 {
		return nil, &FieldError{
			Field: "weekdays",
			Msg: "a comma separated list of English weekday abbreviations from " +
				"SU, MO, TU, WE, TH, FR, SA, optionally prefixed with an ordinal " +
				"-4 ... 4, e.g. 3WE for the 3rd Wednesday or -1FR for the last Friday",
		}
	}

	var bad []string
	var considering []string
	for _, a := range args {
		prefix := false
		exact := false
		for _, canon := range weekdayTokens {
			if canon == a {
				exact = true
				break
			}
			if strings.HasPrefix(canon, a) {
				prefix = true
			}
		}
		switch {
		case exact:
		case prefix:
			considering = append(considering, a)
		default:
			bad = append(bad, a)
		}
	}
	if len(bad) > 0 {
		return nil, &FieldError{Field: "invalid weekdays", Msg: strings.Join(bad, ", ")}
	}
	if len(considering) > 0 {
		return nil, &FieldError{
			Field: "considering weekdays",
			Msg:   strings.Join(considering, ", "),
			Class: ClassConsidered,
		}
	}
	return args, nil
}
