// Package expand materializes the concrete occurrences of an item within a
// closed time window, applying rule-set union, include/exclude overrides and
// day-boundary splitting for events that carry an extent.
package expand

import (
	"fmt"
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	appLog "planner/internal/log"
	"planner/internal/model"
	"planner/internal/rules"
)

// ExpansionError reports that the occurrence primitive rejected compiled
// parameters for an item. It is recoverable per item: batch callers skip the
// offending item and continue.
type ExpansionError struct {
	Summary string
	Freq    rrule.Frequency
	Err     error
}

func (e *ExpansionError) Error() string {
	return fmt.Sprintf("expand: %q (freq %d): %v", e.Summary, e.Freq, e.Err)
}

func (e *ExpansionError) Unwrap() error { return e.Err }

// Expand returns the ordered occurrences of item intersecting
// [windowStart, windowEnd], inclusive on both ends.
//
// A pure-date start is treated as midnight of that day. Excluded date-times
// are reconciled against the daylight-saving offset in effect at the item's
// start before removal, so exclusions saved across a DST transition still
// hit their instances. Included date-times are added verbatim.
func Expand(item model.Item, windowStart, windowEnd time.Time) ([]model.Occurrence, error) {
	if item.StartKind == model.TimeNone {
		return nil, nil
	}
	dtstart := item.Start
	_, startOffset := dtstart.Zone()

	var instances []time.Time

	switch {
	case len(item.Rules) > 0:
		var set rrule.Set
		for _, rec := range item.Rules {
			opt, err := rules.Compile(rec)
			if err != nil {
				return nil, &ExpansionError{Summary: item.Summary, Err: err}
			}
			opt.Dtstart = dtstart
			r, err := rrule.NewRRule(opt)
			if err != nil {
				return nil, &ExpansionError{Summary: item.Summary, Freq: opt.Freq, Err: err}
			}
			set.RRule(r)
		}

		for _, ex := range item.Excludes {
			if item.StartKind != model.TimeDate {
				// Cancel any UTC-offset difference between the exclusion and
				// the start so the exclusion still matches its instance.
				if _, exOffset := ex.Zone(); exOffset != startOffset {
					ex = ex.Add(time.Duration(exOffset-startOffset) * time.Second)
				}
			}
			set.ExDate(ex)
		}
		for _, inc := range item.Includes {
			set.RDate(inc)
		}

		instances = set.Between(windowStart, windowEnd, true)

	case len(item.Includes) > 0:
		candidates := append([]time.Time{dtstart}, item.Includes...)
		for _, c := range candidates {
			if !c.Before(windowStart) && !c.After(windowEnd) {
				instances = append(instances, c)
			}
		}
		sort.Slice(instances, func(i, j int) bool { return instances[i].Before(instances[j]) })

	default:
		if !dtstart.Before(windowStart) && !dtstart.After(windowEnd) {
			instances = []time.Time{dtstart}
		}
	}

	out := make([]model.Occurrence, 0, len(instances))
	for _, instance := range instances {
		// Multi-day splitting applies to events with an extent only.
		if item.Kind == model.KindEvent && item.Extent > 0 {
			for _, pair := range begEnds(instance, item.Extent) {
				end := pair[1]
				out = append(out, occurrence(item, pair[0], &end))
			}
		} else {
			out = append(out, occurrence(item, instance, nil))
		}
	}
	return out, nil
}

// ExpandItems expands a collection, skipping items whose rules the primitive
// rejects. Per-item failures are logged and surfaced in the error slice; the
// rest of the batch is unaffected. The combined result is ordered by start.
func ExpandItems(items []model.Item, windowStart, windowEnd time.Time) ([]model.Occurrence, []error) {
	var all []model.Occurrence
	var errs []error
	for _, item := range items {
		occ, err := Expand(item, windowStart, windowEnd)
		if err != nil {
			appLog.Error("expand: skipping item", err, "summary", item.Summary)
			errs = append(errs, err)
			continue
		}
		all = append(all, occ...)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Start.Before(all[j].Start) })
	return all, errs
}

func occurrence(item model.Item, start time.Time, end *time.Time) model.Occurrence {
	return model.Occurrence{
		ItemKind: item.Kind,
		Summary:  item.Summary,
		Start:    start,
		End:      end,
	}
}

// begEnds splits (start, start+extent) into day-bounded segments: every
// segment but the last ends at the last instant of its day, and segments are
// contiguous and chronological.
func begEnds(start time.Time, extent time.Duration) [][2]time.Time {
	var pairs [][2]time.Time
	beg := start
	ending := start.Add(extent)
	for dateOf(ending).After(dateOf(beg)) {
		pairs = append(pairs, [2]time.Time{beg, endOfDay(beg)})
		beg = dateOf(beg).AddDate(0, 0, 1)
	}
	return append(pairs, [2]time.Time{beg, ending})
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return dateOf(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
