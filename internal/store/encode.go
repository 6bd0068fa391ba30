package store

import (
	"time"

	"planner/internal/model"
	"planner/internal/period"
)

const (
	storedDateLayout     = "2006-01-02"
	storedDateTimeLayout = "2006-01-02 15:04"
)

// EncodeRule renders a normalized rule back into its stored field-code map.
// Re-normalizing the result yields the same record.
func EncodeRule(rec model.RuleRecord) map[string]any {
	out := map[string]any{
		"r": string(rec.Frequency),
		"i": rec.Interval,
	}
	if rec.Count > 0 {
		out["c"] = rec.Count
	}
	if !rec.Until.IsZero() {
		out["u"] = rec.Until.Format(storedDateTimeLayout)
	}
	putInts(out, "M", rec.Months)
	putInts(out, "m", rec.MonthDays)
	putInts(out, "W", rec.WeekNumbers)
	putInts(out, "h", rec.Hours)
	putInts(out, "n", rec.Minutes)
	putInts(out, "s", rec.SetPositions)
	putInts(out, "E", rec.EasterOffsets)
	if len(rec.Weekdays) > 0 {
		out["w"] = append([]string(nil), rec.Weekdays...)
	}
	return out
}

// EncodeItem renders a typed Item back into its stored field-code map.
func EncodeItem(item *model.Item) map[string]any {
	out := map[string]any{
		"itemtype": model.KindCodes[item.Kind],
		"summary":  item.Summary,
	}
	if item.StartKind != model.TimeNone {
		out["s"] = formatStored(item.Start, item.StartKind)
	}
	if item.Extent > 0 {
		out["e"] = period.Format(item.Extent)
	}
	if item.Timezone != "" {
		out["z"] = item.Timezone
	}
	if len(item.Rules) > 0 {
		recs := make([]map[string]any, 0, len(item.Rules))
		for _, r := range item.Rules {
			recs = append(recs, EncodeRule(r))
		}
		out["r"] = recs
	}
	putTimes(out, "+", item.Includes)
	putTimes(out, "-", item.Excludes)
	if len(item.Jobs) > 0 {
		jobs := make([]map[string]any, 0, len(item.Jobs))
		for _, j := range item.Jobs {
			jobs = append(jobs, encodeJob(j))
		}
		out["j"] = jobs
	}
	if item.Description != "" {
		out["d"] = item.Description
	}
	if item.Location != "" {
		out["l"] = item.Location
	}
	if item.Calendar != "" {
		out["c"] = item.Calendar
	}
	if item.Index != "" {
		out["i"] = item.Index
	}
	if len(item.Tags) > 0 {
		out["t"] = append([]string(nil), item.Tags...)
	}
	if item.Beginby > 0 {
		out["b"] = item.Beginby
	}
	if item.Priority > 0 {
		out["p"] = item.Priority
	}
	return out
}

// encodeJob stores a job's user-supplied fields; the derived status, closure
// and rewritten summary are recomputed on load, never persisted.
func encodeJob(j model.JobRecord) map[string]any {
	out := map[string]any{
		"i": j.ID,
		"j": j.Title,
	}
	if len(j.Prereqs) > 0 {
		out["p"] = append([]string(nil), j.Prereqs...)
	}
	if !j.Finish.IsZero() {
		out["f"] = j.Finish.Format(storedDateTimeLayout)
	}
	if j.Description != "" {
		out["d"] = j.Description
	}
	if j.Location != "" {
		out["l"] = j.Location
	}
	if j.Delegate != "" {
		out["n"] = j.Delegate
	}
	if j.Extent > 0 {
		out["e"] = period.Format(j.Extent)
	}
	if j.Beginby > 0 {
		out["b"] = j.Beginby
	}
	return out
}

func formatStored(t time.Time, kind model.TimeKind) string {
	if kind == model.TimeDate {
		return t.Format(storedDateLayout)
	}
	return t.Format(storedDateTimeLayout)
}

func putInts(m map[string]any, key string, vals []int) {
	if len(vals) > 0 {
		m[key] = append([]int(nil), vals...)
	}
}

func putTimes(m map[string]any, key string, vals []time.Time) {
	if len(vals) == 0 {
		return
	}
	out := make([]string, 0, len(vals))
	for _, t := range vals {
		out = append(out, t.Format(storedDateTimeLayout))
	}
	m[key] = out
}
