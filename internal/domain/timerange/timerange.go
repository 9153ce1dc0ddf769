// Package timerange maps the dashboard's symbolic period selector to
// concrete query boundaries.
package timerange

import (
	"errors"
	"strings"
	"time"
)

type Range string

const (
	RangeToday  Range = "today"
	Range7Days  Range = "7days"
	Range30Days Range = "30days"
	Range90Days Range = "90days"
	RangeAll    Range = "all"
)

// Bucketed series for the "all" range are capped for query cost; total
// counts stay unbounded.
const allRangeActivityDays = 30

var ErrUnknownRange = errors.New("unknown time range")

func Parse(value string) (Range, error) {
	switch Range(strings.ToLower(strings.TrimSpace(value))) {
	case RangeToday:
		return RangeToday, nil
	case Range7Days:
		return Range7Days, nil
	case Range30Days:
		return Range30Days, nil
	case Range90Days:
		return Range90Days, nil
	case RangeAll, Range(""):
		return RangeAll, nil
	default:
		return RangeAll, ErrUnknownRange
	}
}

// Start returns the inclusive lower bound for queries filtered by this
// range, or nil when no lower bound applies. A nil start means "do not
// filter", never "filter from epoch". There is no upper bound; "now" is
// implicit.
func (r Range) Start(now time.Time) *time.Time {
	switch r {
	case RangeToday:
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return &midnight
	case Range7Days:
		t := now.AddDate(0, 0, -7)
		return &t
	case Range30Days:
		t := now.AddDate(0, 0, -30)
		return &t
	case Range90Days:
		t := now.AddDate(0, 0, -90)
		return &t
	default:
		return nil
	}
}

// Days is the width of the bucketed activity window for this range.
func (r Range) Days() int {
	switch r {
	case RangeToday:
		return 1
	case Range7Days:
		return 7
	case Range30Days:
		return 30
	case Range90Days:
		return 90
	default:
		return allRangeActivityDays
	}
}

func (r Range) Label() string {
	switch r {
	case RangeToday:
		return "Hoje"
	case Range7Days:
		return "7 Dias"
	case Range30Days:
		return "30 Dias"
	case Range90Days:
		return "90 Dias"
	default:
		return "Tudo"
	}
}

func All() []Range {
	return []Range{RangeToday, Range7Days, Range30Days, Range90Days, RangeAll}
}
