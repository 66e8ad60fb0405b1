package dataset

import (
	"regexp"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// isoLayouts are tried first; they are unambiguous and unaffected by the
// day-first convention.
var isoLayouts = []string{
	"2006-1-2",
	time.RFC3339Nano,
	"2006-1-2T15:04:05",
	"2006-1-2T15:04",
	"2006/1/2",
}

// dayFirstLayouts read ambiguous numeric dates as day before month.
var dayFirstLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2/1/06",
	"2-1-06",
	"2.1.06",
	"2 Jan 2006",
	"2 January 2006",
	"2-Jan-2006",
	"2-Jan-06",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"January 2 2006",
	"Mon, 2 Jan 2006",
}

// timeSuffix matches a trailing time of day, which is discarded.
var timeSuffix = regexp.MustCompile(`(?i)[\sT]+\d{1,2}:\d{2}(:\d{2}(\.\d+)?)?(\s*[ap]m)?(\s*(Z|[+-]\d{2}:?\d{2}))?$`)

// ParseDate parses a calendar date with day-first preference for ambiguous
// numeric forms. Any time of day is discarded. It returns false when the
// value is not a recognizable date.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	if t, ok := parseLayouts(value); ok {
		return t, true
	}
	if stripped := timeSuffix.ReplaceAllString(value, ""); stripped != value && stripped != "" {
		return parseLayouts(stripped)
	}
	return time.Time{}, false
}

func parseLayouts(value string) (time.Time, bool) {
	for _, layouts := range [][]string{isoLayouts, dayFirstLayouts} {
		for _, layout := range layouts {
			if t, err := time.Parse(layout, value); err == nil {
				return Date(t), true
			}
		}
	}
	return time.Time{}, false
}

// Date drops the time of day, keeping the wall-clock calendar date.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate formats a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
