// Package agenda renders expanded occurrences as a day-grouped text view.
// Display preferences are passed in explicitly; there is no ambient
// formatting state.
package agenda

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"planner/internal/model"
)

// Style holds the display preferences a rendering needs.
type Style struct {
	// TwelveHour selects 12-hour clock rendering ("9:00am") over 24-hour.
	TwelveHour bool
	// Location converts occurrence times for display; nil leaves them as-is.
	Location *time.Location
}

var kindMarks = map[model.Kind]string{
	model.KindEvent:   "*",
	model.KindTask:    "-",
	model.KindAction:  "~",
	model.KindNote:    "%",
	model.KindSomeday: "?",
	model.KindInbox:   "!",
}

// Render produces a day-grouped agenda for occurrences already ordered by
// start time (as the expander guarantees).
func Render(occs []model.Occurrence, style Style, now time.Time) string {
	var b strings.Builder
	lastDay := ""
	for _, occ := range occs {
		start := occ.Start
		if style.Location != nil {
			start = start.In(style.Location)
		}
		day := start.Format("Mon Jan 2 2006")
		if day != lastDay {
			if lastDay != "" {
				b.WriteByte('\n')
			}
			b.WriteString(day)
			b.WriteByte('\n')
			lastDay = day
		}
		b.WriteString("  ")
		b.WriteString(line(occ, start, style, now))
		b.WriteByte('\n')
	}
	return b.String()
}

func line(occ model.Occurrence, start time.Time, style Style, now time.Time) string {
	mark := kindMarks[occ.ItemKind]
	summary := SetSummary(occ.Summary, now)

	// A midnight start without an end is a date-only entry; show no clock.
	if occ.End == nil {
		if start.Hour() == 0 && start.Minute() == 0 && start.Second() == 0 {
			return fmt.Sprintf("%s %s", mark, summary)
		}
		return fmt.Sprintf("%s %s %s", clock(start, style), mark, summary)
	}

	end := *occ.End
	if style.Location != nil {
		end = end.In(style.Location)
	}
	return fmt.Sprintf("%s-%s %s %s", clock(start, style), clock(end, style), mark, summary)
}

func clock(t time.Time, style Style) string {
	if style.TwelveHour {
		return strings.ToLower(t.Format("3:04PM"))
	}
	return t.Format("15:04")
}

var anniversaryRe = regexp.MustCompile(`!(\d{4})!`)

// SetSummary replaces an embedded anniversary year marker with the ordinal
// number of years elapsed, e.g. "!1944! birthday" in 2018 -> "74th birthday".
func SetSummary(s string, now time.Time) string {
	m := anniversaryRe.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	start, err := strconv.Atoi(m[1])
	if err != nil {
		return s
	}
	return anniversaryRe.ReplaceAllString(s, Ordinal(now.Year()-start))
}

// Ordinal appends the English ordinal suffix: 1 -> "1st", 22 -> "22nd".
func Ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
