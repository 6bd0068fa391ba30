package agenda

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planner/internal/model"
)

func ts(h, m int) time.Time {
	return time.Date(2018, 3, 2, h, m, 0, 0, time.UTC)
}

func TestRenderGroupsByDay(t *testing.T) {
	end := ts(10, 30)
	next := time.Date(2018, 3, 3, 14, 0, 0, 0, time.UTC)
	occs := []model.Occurrence{
		{ItemKind: model.KindEvent, Summary: "standup", Start: ts(9, 0), End: &end},
		{ItemKind: model.KindTask, Summary: "file report", Start: ts(16, 0)},
		{ItemKind: model.KindEvent, Summary: "review", Start: next},
	}

	out := Render(occs, Style{Location: time.UTC}, time.Now())
	require.Contains(t, out, "Fri Mar 2 2018")
	require.Contains(t, out, "Sat Mar 3 2018")
	assert.Contains(t, out, "09:00-10:30 * standup")
	assert.Contains(t, out, "16:00 - file report")
}

func TestRenderTwelveHourClock(t *testing.T) {
	occs := []model.Occurrence{
		{ItemKind: model.KindTask, Summary: "call", Start: ts(16, 30)},
	}
	out := Render(occs, Style{TwelveHour: true, Location: time.UTC}, time.Now())
	assert.Contains(t, out, "4:30pm - call")
}

func TestRenderDateOnlyEntryHasNoClock(t *testing.T) {
	occs := []model.Occurrence{
		{ItemKind: model.KindNote, Summary: "holiday", Start: time.Date(2018, 3, 2, 0, 0, 0, 0, time.UTC)},
	}
	out := Render(occs, Style{Location: time.UTC}, time.Now())
	assert.Contains(t, out, "% holiday")
	assert.NotContains(t, out, "00:00")
}

func TestSetSummaryAnniversary(t *testing.T) {
	now := time.Date(2017, 11, 19, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "73rd birthday", SetSummary("!1944! birthday", now))
	assert.Equal(t, "39th anniversary", SetSummary("!1978! anniversary", now))
	assert.Equal(t, "plain summary", SetSummary("plain summary", now))
}

func TestOrdinal(t *testing.T) {
	cases := map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th", 13: "13th", 21: "21st", 40: "40th", 82: "82nd"}
	for n, want := range cases {
		assert.Equal(t, want, Ordinal(n), n)
	}
}
