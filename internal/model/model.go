package model

import "time"

// Kind classifies an item. The one-character codes used in stored form are
// defined in fields.go (TypeCodes).
type Kind string

const (
	KindEvent   Kind = "event"
	KindTask    Kind = "task"
	KindAction  Kind = "action"
	KindNote    Kind = "note"
	KindSomeday Kind = "someday"
	KindInbox   Kind = "inbox"
)

// TimeKind records how a start or finish value was given. A date-time that
// parses to exactly midnight degrades to a pure date.
type TimeKind int

const (
	TimeNone TimeKind = iota
	TimeDate
	TimeNaive
	TimeAware
)

// Frequency is the one-character repetition frequency code.
type Frequency string

const (
	FreqYearly   Frequency = "y"
	FreqMonthly  Frequency = "m"
	FreqWeekly   Frequency = "w"
	FreqDaily    Frequency = "d"
	FreqHourly   Frequency = "h"
	FreqMinutely Frequency = "n"
)

// RuleRecord is a normalized recurrence rule. List fields keep their element
// order; an empty slice means the field was not given. EasterOffsets is
// validated and carried but never forwarded to the occurrence primitive.
type RuleRecord struct {
	Frequency Frequency
	Interval  int // >= 1, defaulted to 1

	Count int       // 0 = unset
	Until time.Time // zero = unset

	Months       []int    // 1..12
	MonthDays    []int    // -31..31, 0 excluded
	WeekNumbers  []int    // 0..53
	Weekdays     []string // normalized tokens, e.g. "MO", "2SU", "-1FR"
	Hours        []int    // 0..23
	Minutes      []int    // 0..59
	SetPositions []int    // non-zero

	EasterOffsets []int
}

// Item is a schedulable entry: an event, task, note, etc. with an optional
// recurrence and an optional extent.
type Item struct {
	Kind    Kind
	Summary string

	Start     time.Time
	StartKind TimeKind

	Extent time.Duration // 0 = no extent

	Rules    []RuleRecord // unioned: an occurrence matches if ANY rule matches
	Includes []time.Time
	Excludes []time.Time

	Timezone string

	Jobs []JobRecord

	Description string
	Location    string
	Calendar    string
	Index       string
	Tags        []string
	Beginby     int
	Priority    int
}

// Occurrence is one concrete realization of an item within a window.
// End is nil unless the item is an event with an extent.
type Occurrence struct {
	ItemKind Kind
	Summary  string

	Start time.Time
	End   *time.Time
}

// JobStatus is derived by the resolver, never user-supplied.
type JobStatus string

const (
	StatusFinished  JobStatus = "f"
	StatusAvailable JobStatus = "a"
	StatusWaiting   JobStatus = "w"
)

// JobRecord is one resolved job of a task.
type JobRecord struct {
	ID    string
	Title string // the job's own summary (&j)

	// Summary is the display form: task summary, the finished/available/waiting
	// counts and the job title, e.g. "paint house 1/1/1: sand walls".
	Summary string

	Prereqs  []string // direct prerequisites as given (or inferred in auto mode)
	Requires []string // transitive closure with finished jobs removed

	Finish time.Time // zero = unfinished
	Status JobStatus

	Description string
	Location    string
	Delegate    string
	Extent      time.Duration
	Beginby     int
}
