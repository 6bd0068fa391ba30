// Package jobs normalizes and resolves the job list of a task: mode
// detection, per-field validation, transitive prerequisite closure, cycle
// detection, the all-finished reset and per-job status assignment.
package jobs

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	appLog "planner/internal/log"
	"planner/internal/model"
	"planner/internal/validate"
)

// TaskContext carries the owning task's fields the resolver needs.
type TaskContext struct {
	// Summary is the task's own summary, used to rewrite job summaries.
	Summary string
	// Dated is true when the task has a start; only dated tasks may use the
	// schedule-relative job keys (&b, &s).
	Dated bool
}

// ReferenceError reports a prerequisite naming a job that is not present in
// the task.
type ReferenceError struct {
	ID string
}

func (e *ReferenceError) Error() string {
	return "invalid id given in &p: " + e.ID
}

// CycleError names every job that directly or indirectly requires itself.
type CycleError struct {
	IDs []string
}

func (e *CycleError) Error() string {
	return "error: circular dependency for jobs " + strings.Join(e.IDs, ", ")
}

// Resolution is the outcome of resolving a task's job list.
type Resolution struct {
	Jobs []model.JobRecord

	// CompletedAt is set when every job was finished, meaning the whole set
	// completed as a unit: the individual finish markers have been stripped
	// and this is the latest of them.
	CompletedAt *time.Time

	// Reminders are non-fatal notices (e.g. a missing &i in manual mode).
	Reminders []string
}

// Resolve validates raw job records (a list of maps keyed by &-keys)
// belonging to one task and derives prerequisite closures and statuses.
//
// Mode is detected from the first record only: if it carries neither an id
// nor prerequisites the task is in auto mode (ids 1, 2, 3, ... with a linear
// chain); otherwise every record must supply its own id. A missing id in
// manual mode is a reminder, not an error; ids in auto mode, duplicate ids
// and unknown prerequisite ids are hard errors.
func Resolve(raw any, ctx TaskContext) (*Resolution, error) {
	records, err := asRecordList(raw)
	if err != nil {
		return nil, err
	}

	var errs []error
	var reminders []string
	req := make(map[string][]string)
	byID := make(map[string]*model.JobRecord)

	auto := false
	count := 0
	for n, hsh := range records {
		if hsh == nil {
			continue
		}
		if _, ok := hsh["j"]; !ok {
			errs = append(errs, &validate.FieldError{Msg: "error: j is required but missing"})
		}

		if n == 0 {
			_, hasID := hsh["i"]
			_, hasPrereqs := hsh["p"]
			auto = !hasID && !hasPrereqs
		}

		rec := &model.JobRecord{}
		if auto {
			if _, ok := hsh["i"]; ok {
				errs = append(errs, &validate.FieldError{Msg: "error: &i should not be specified in auto mode"})
			}
			if _, ok := hsh["p"]; ok {
				errs = append(errs, &validate.FieldError{Msg: "error: &p should not be specified in auto mode"})
			}
			count++
			rec.ID = strconv.Itoa(count)
			if count > 1 {
				rec.Prereqs = []string{strconv.Itoa(count - 1)}
			} else {
				rec.Prereqs = []string{}
			}
			req[rec.ID] = rec.Prereqs
			byID[rec.ID] = rec
		} else {
			id, prereqs, ok := manualIdentity(hsh, req, &errs, &reminders)
			if ok {
				rec.ID = id
				rec.Prereqs = prereqs
				req[id] = prereqs
				byID[id] = rec
			}
		}

		validateJobFields(hsh, rec, ctx, &errs)
	}

	// Prerequisites must name jobs present in this task.
	ids := make([]string, 0, len(req))
	for id := range req {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, i := range ids {
		for _, j := range req[i] {
			if _, ok := req[j]; !ok {
				errs = append(errs, &ReferenceError{ID: j})
			}
		}
	}

	closure(ids, req)

	var cyclic []string
	for _, i := range ids {
		if contains(req[i], i) {
			cyclic = append(cyclic, i)
		}
	}
	if len(cyclic) > 0 {
		sort.Strings(cyclic)
		errs = append(errs, &CycleError{IDs: cyclic})
	}

	// Errors take priority over any derived state.
	if err := validate.Aggregate(errs); err != nil {
		return nil, err
	}

	completedAt := lastCompletion(ids, byID)
	if completedAt != nil {
		// The whole set finished as a unit: the individual markers are
		// presentation artifacts of the completed cycle, so strip them and
		// let the cycle restart fresh.
		for _, i := range ids {
			byID[i].Finish = time.Time{}
		}
	} else {
		// A finished job no longer blocks anything.
		for _, i := range ids {
			if byID[i].Finish.IsZero() {
				continue
			}
			for _, j := range ids {
				req[j] = remove(req[j], i)
			}
		}
	}

	var finished, available, waiting int
	for _, i := range ids {
		rec := byID[i]
		switch {
		case !rec.Finish.IsZero():
			rec.Status = model.StatusFinished
			finished++
		case len(req[i]) > 0:
			rec.Status = model.StatusWaiting
			waiting++
		default:
			rec.Status = model.StatusAvailable
			available++
		}
	}

	out := make([]model.JobRecord, 0, len(ids))
	for _, i := range ids {
		rec := byID[i]
		rec.Summary = fmt.Sprintf("%s %d/%d/%d: %s", ctx.Summary, finished, available, waiting, rec.Title)
		rec.Requires = append([]string(nil), req[i]...)
		sort.Strings(rec.Requires)
		out = append(out, *rec)
	}

	for _, r := range reminders {
		appLog.Warn("jobs: " + r)
	}

	return &Resolution{Jobs: out, CompletedAt: completedAt, Reminders: reminders}, nil
}

func asRecordList(raw any) ([]map[string]any, error) {
	switch v := raw.(type) {
	case []map[string]any:
		return v, nil
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, e := range v {
			m, ok := e.(map[string]any)
			if !ok {
				return nil, &validate.StructuralError{
					Msg: fmt.Sprintf("jobs must be records, cannot process %v", e),
				}
			}
			out = append(out, m)
		}
		return out, nil
	case map[string]any:
		return []map[string]any{v}, nil
	default:
		return nil, &validate.StructuralError{
			Msg: fmt.Sprintf("jobs must be a list of records, got %v", raw),
		}
	}
}

// manualIdentity extracts and checks the id and direct prerequisites of one
// record in manual mode. A missing id is downgraded to a reminder.
func manualIdentity(hsh map[string]any, req map[string][]string, errs *[]error, reminders *[]string) (string, []string, bool) {
	rawID, ok := hsh["i"]
	if !ok {
		*reminders = append(*reminders, "reminder: &i is required for each job in manual mode")
		return "", nil, false
	}
	id, err := validate.String(rawID, "id")
	if err != nil {
		*errs = append(*errs, err)
		return "", nil, false
	}
	if _, dup := req[id]; dup {
		*errs = append(*errs, &validate.FieldError{Msg: fmt.Sprintf("error: '&i %s' has already been used", id)})
		return "", nil, false
	}
	prereqs := []string{}
	if rawP, ok := hsh["p"]; ok {
		p, err := validate.StringList(rawP, "prereqs")
		if err != nil {
			*errs = append(*errs, err)
		} else {
			prereqs = p
		}
	}
	return id, prereqs, true
}

// validateJobFields runs the per-field validators over one record and fills
// the typed fields. The schedule-relative keys are only honored for dated
// tasks; keys outside the recognized table are carried past untouched.
func validateJobFields(hsh map[string]any, rec *model.JobRecord, ctx TaskContext, errs *[]error) {
	keys := make([]string, 0, len(hsh))
	for k := range hsh {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch key {
		case "i", "p":
			continue
		case "b", "s":
			if !ctx.Dated {
				continue
			}
		}
		if _, known := model.AmpJobKeys[key]; !known {
			appLog.Debug("jobs: ignoring unrecognized key", "key", key)
			continue
		}
		val, err := validate.JobField(key, hsh[key])
		if err != nil {
			*errs = append(*errs, err)
			continue
		}
		switch key {
		case "j":
			rec.Title = val.(string)
		case "d":
			rec.Description = val.(string)
		case "l":
			rec.Location = val.(string)
		case "n":
			rec.Delegate = val.(string)
		case "e":
			rec.Extent = val.(time.Duration)
		case "b":
			rec.Beginby = val.(int)
		case "f":
			rec.Finish = val.(time.Time)
		}
	}
}

// closure computes the transitive closure of req in place by fixpoint
// iteration. n passes are always enough for n jobs; the pass cap is a guard
// against implementation bugs, not an expected exit.
func closure(ids []string, req map[string][]string) {
	maxPasses := len(ids) + 1
	for pass := 0; pass < maxPasses; pass++ {
		changed := false
		for _, i := range ids {
			for _, j := range ids {
				if !contains(req[i], j) {
					continue
				}
				for _, k := range req[j] {
					if !contains(req[i], k) {
						req[i] = append(req[i], k)
						changed = true
					}
				}
			}
		}
		if !changed {
			return
		}
	}
}

// lastCompletion returns the latest finish time if every job is finished,
// nil otherwise.
func lastCompletion(ids []string, byID map[string]*model.JobRecord) *time.Time {
	var last *time.Time
	for _, i := range ids {
		f := byID[i].Finish
		if f.IsZero() {
			return nil
		}
		if last == nil || last.Before(f) {
			t := f
			last = &t
		}
	}
	return last
}

func contains(list []string, s string) bool {
	for _, e := range list {
		if e == s {
			return true
		}
	}
	return false
}

func remove(list []string, s string) []string {
	out := make([]string, 0, len(list))
	for _, e := range list {
		if e != s {
			out = append(out, e)
		}
	}
	return out
}
