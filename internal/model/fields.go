package model

// The stored form of an item is a flat map keyed by one-letter field codes
// (the historical @-key vocabulary), with the rule and job sub-records keyed
// by their own &-key vocabularies. These tables are the authoritative
// key -> description listing; any reimplementation of the stored form must
// keep the codes verbatim so existing items stay interpretable.

// TypeCodes maps the stored one-character item type to its Kind.
var TypeCodes = map[string]Kind{
	"*": KindEvent,
	"-": KindTask,
	"~": KindAction,
	"%": KindNote,
	"?": KindSomeday,
	"!": KindInbox,
}

// KindCodes is the reverse of TypeCodes.
var KindCodes = func() map[Kind]string {
	m := make(map[Kind]string, len(TypeCodes))
	for c, k := range TypeCodes {
		m[k] = c
	}
	return m
}()

// AtKeys lists the recognized item-level field codes.
var AtKeys = map[string]string{
	"+":        "include (list of date-times)",
	"-":        "exclude (list of date-times)",
	"a":        "alert (timeperiod: cmd, optional args*)",
	"b":        "beginby (integer number of days)",
	"c":        "calendar (string)",
	"d":        "description (string)",
	"e":        "extent (timeperiod)",
	"f":        "finish (datetime)",
	"g":        "goto (url or filepath)",
	"h":        "completions history (list of done:due datetimes)",
	"i":        "index (colon delimited string)",
	"j":        "job summary (string)",
	"l":        "location (string)",
	"m":        "memo (list of 'datetime, timeperiod, datetime')",
	"n":        "named delegate (string)",
	"o":        "overdue (r)estart, (s)kip or (k)eep)",
	"p":        "priority (integer)",
	"r":        "repetition frequency (y)early, (m)onthly, (w)eekly, (d)aily, (h)ourly, mi(n)utely",
	"s":        "starting date or datetime",
	"t":        "tags (list of strings)",
	"x":        "extraction key (string)",
	"z":        "timezone (string)",
	"itemtype": "itemtype (character)",
	"summary":  "summary (string)",
}

// AmpRuleKeys lists the &-keys recognized inside an @r rule record.
var AmpRuleKeys = map[string]string{
	"c": "count: integer number of repetitions",
	"E": "easter: number of days before (-), on (0) or after (+) Easter",
	"h": "hour: list of integers in 0 ... 23",
	"r": "frequency: character in y, m, w, d, h, n",
	"i": "interval: positive integer",
	"m": "monthday: list of integers 1 ... 31",
	"M": "month: list of integers in 1 ... 12",
	"n": "minute: list of integers in 0 ... 59",
	"s": "set position: integer",
	"u": "until: datetime",
	"w": "weekday: list from SU, MO, ..., SA",
	"W": "week number: list of integers in 1 ... 53",
}

// AmpJobKeys lists the &-keys recognized inside an @j job record.
var AmpJobKeys = map[string]string{
	"a": "alert: timeperiod: command, args*",
	"b": "beginby: integer number of days",
	"d": "description: string",
	"e": "extent: timeperiod",
	"f": "finish: datetime",
	"i": "unique id: integer or string",
	"j": "job summary (string)",
	"l": "location: string",
	"n": "named delegate (string)",
	"p": "prerequisites: comma separated list of ids of immediate prereqs",
	"s": "start/due: timeperiod before task start",
}
