package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planner/internal/model"
)

func TestExportTimedOccurrence(t *testing.T) {
	end := time.Date(2018, 3, 2, 10, 30, 0, 0, time.UTC)
	occs := []model.Occurrence{
		{ItemKind: model.KindEvent, Summary: "standup", Start: time.Date(2018, 3, 2, 9, 0, 0, 0, time.UTC), End: &end},
	}

	out := Export(occs, time.Date(2018, 3, 1, 0, 0, 0, 0, time.UTC))
	require.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "SUMMARY:standup")
	assert.Contains(t, out, "DTSTART:20180302T090000Z")
	assert.Contains(t, out, "DTEND:20180302T103000Z")
}

func TestExportAllDayOccurrence(t *testing.T) {
	occs := []model.Occurrence{
		{ItemKind: model.KindNote, Summary: "holiday", Start: time.Date(2018, 3, 2, 0, 0, 0, 0, time.UTC)},
	}

	out := Export(occs, time.Now())
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20180302")
}

func TestExportUIDsAreUniqueAndStable(t *testing.T) {
	start := time.Date(2018, 3, 2, 9, 0, 0, 0, time.UTC)
	occs := []model.Occurrence{
		{Summary: "a", Start: start},
		{Summary: "b", Start: start.AddDate(0, 0, 7)},
	}

	first := Export(occs, time.Unix(0, 0).UTC())
	second := Export(occs, time.Unix(0, 0).UTC())
	assert.Equal(t, first, second)

	uids := collectUIDs(first)
	require.Len(t, uids, 2)
	assert.NotEqual(t, uids[0], uids[1])
}

func TestExportUIDsSurviveWindowShift(t *testing.T) {
	start := time.Date(2018, 3, 2, 9, 0, 0, 0, time.UTC)
	occs := []model.Occurrence{
		{Summary: "a", Start: start},
		{Summary: "b", Start: start.AddDate(0, 0, 7)},
	}
	now := time.Unix(0, 0).UTC()

	full := collectUIDs(Export(occs, now))
	shifted := collectUIDs(Export(occs[1:], now))
	require.Len(t, shifted, 1)
	assert.Contains(t, full, shifted[0])
}

func collectUIDs(payload string) []string {
	var uids []string
	for _, line := range strings.Split(payload, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.HasPrefix(line, "UID:") {
			uids = append(uids, line)
		}
	}
	return uids
}
