package store

import (
	"fmt"
	"sort"
	"time"

	"planner/internal/jobs"
	"planner/internal/model"
	"planner/internal/rules"
	"planner/internal/validate"
)

// ParseItem assembles a typed Item from a raw field-code map, running the
// field validators, the rule normalizer and the job resolver. All field
// errors are aggregated; unknown @-keys are hard errors.
func ParseItem(raw map[string]any) (*model.Item, error) {
	var errs []error
	item := &model.Item{}

	// Timezone first: it governs how the date-time fields parse.
	zone := ""
	if z, ok := raw["z"]; ok {
		s, err := validate.String(z, "timezone")
		if err != nil {
			errs = append(errs, err)
		} else {
			zone = s
			item.Timezone = s
		}
	}

	if t, ok := raw["itemtype"]; ok {
		s, err := validate.String(t, "itemtype")
		if err != nil {
			errs = append(errs, err)
		} else if kind, ok := model.TypeCodes[s]; ok {
			item.Kind = kind
		} else {
			errs = append(errs, &validate.FieldError{Field: "itemtype", Msg: fmt.Sprintf("unknown type code %q", s)})
		}
	} else {
		errs = append(errs, &validate.FieldError{Msg: "error: itemtype is required but missing"})
	}

	if s, ok := raw["summary"]; ok {
		v, err := validate.String(s, "summary")
		if err != nil {
			errs = append(errs, err)
		} else {
			item.Summary = v
		}
	} else {
		errs = append(errs, &validate.FieldError{Msg: "error: summary is required but missing"})
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		val := raw[key]
		switch key {
		case "itemtype", "summary", "z":
			// handled above
		case "s":
			t, kind, err := dateTimeField(val, zone, "starting")
			if err != nil {
				errs = append(errs, err)
			} else {
				item.Start = t
				item.StartKind = kind
			}
		case "+":
			ts, err := validate.DateTimeList(val, zone, "include")
			if err != nil {
				errs = append(errs, err)
			} else {
				item.Includes = ts
			}
		case "-":
			ts, err := validate.DateTimeList(val, zone, "exclude")
			if err != nil {
				errs = append(errs, err)
			} else {
				item.Excludes = ts
			}
		case "e":
			d, err := validate.Extent(val, "extent")
			if err != nil {
				errs = append(errs, err)
			} else {
				item.Extent = d
			}
		case "r":
			recs, err := rules.Normalize(val)
			if err != nil {
				errs = append(errs, err)
			} else {
				item.Rules = recs
			}
		case "j":
			// resolved below, after summary and start are known
		case "c":
			item.Calendar, errs = stringField(val, "calendar", errs)
		case "d":
			item.Description, errs = stringField(val, "description", errs)
		case "l":
			item.Location, errs = stringField(val, "location", errs)
		case "i":
			item.Index, errs = stringField(val, "index", errs)
		case "t":
			tags, err := validate.StringList(val, "tags")
			if err != nil {
				errs = append(errs, err)
			} else {
				item.Tags = tags
			}
		case "b":
			n, err := validate.Field("b", val)
			if err != nil {
				errs = append(errs, err)
			} else {
				item.Beginby = n.(int)
			}
		case "p":
			n, err := validate.Field("p", val)
			if err != nil {
				errs = append(errs, err)
			} else {
				item.Priority = n.(int)
			}
		default:
			if _, err := validate.Field(key, val); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if j, ok := raw["j"]; ok {
		res, err := jobs.Resolve(j, jobs.TaskContext{
			Summary: item.Summary,
			Dated:   item.StartKind != model.TimeNone,
		})
		if err != nil {
			errs = append(errs, err)
		} else {
			item.Jobs = res.Jobs
		}
	}

	if err := validate.Aggregate(errs); err != nil {
		return nil, err
	}
	return item, nil
}

func dateTimeField(val any, zone, label string) (time.Time, model.TimeKind, error) {
	return validate.DateTime(val, zone, label)
}

func stringField(val any, label string, errs []error) (string, []error) {
	s, err := validate.String(val, label)
	if err != nil {
		return "", append(errs, err)
	}
	return s, errs
}
