// Package ics exports expanded occurrences as an iCalendar feed so other
// calendar clients can subscribe to the organizer's schedule.
package ics

import (
	"fmt"
	"hash/fnv"
	"time"

	ical "github.com/arran4/golang-ical"

	"planner/internal/model"
)

// Export serializes occurrences into a VCALENDAR payload. Each occurrence
// becomes one VEVENT; the UID is derived from the summary and the instance
// start, so re-exports of a shifted window update rather than duplicate.
// Occurrences without an end are exported as all-day events when they start
// at midnight, otherwise as zero-length events.
func Export(occs []model.Occurrence, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//planner//EN")

	for _, occ := range occs {
		h := fnv.New32a()
		h.Write([]byte(occ.Summary))
		uid := fmt.Sprintf("%08x-%s@planner", h.Sum32(), occ.Start.UTC().Format("20060102T150405Z"))
		ev := cal.AddEvent(uid)
		ev.SetDtStampTime(now)
		ev.SetSummary(occ.Summary)

		switch {
		case occ.End != nil:
			ev.SetStartAt(occ.Start)
			ev.SetEndAt(*occ.End)
		case isMidnight(occ.Start):
			ev.SetAllDayStartAt(occ.Start)
			ev.SetAllDayEndAt(occ.Start.AddDate(0, 0, 1))
		default:
			ev.SetStartAt(occ.Start)
			ev.SetEndAt(occ.Start)
		}
	}

	return cal.Serialize()
}

func isMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}
