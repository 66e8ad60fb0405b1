package dataset

import (
	"reflect"
	"testing"

	"github.com/gantt-tools/gantt-go/internal/table"
)

// FuzzParseDate ensures arbitrary cell text never panics and that any parsed
// date is a midnight UTC calendar date that formats back to itself.
func FuzzParseDate(f *testing.F) {
	f.Add("31/01/2024")
	f.Add("2024-02-01T10:30:00Z")
	f.Add("5 March 2024 10:00 pm")
	f.Add("13/13/2024")
	f.Add("")
	f.Add("\x00")

	f.Fuzz(func(t *testing.T, value string) {
		d, ok := ParseDate(value)
		if !ok {
			return
		}
		if !d.Equal(Date(d)) {
			t.Fatalf("ParseDate(%q) = %v carries a time of day", value, d)
		}
		again, ok := ParseDate(FormatDate(d))
		if !ok || !again.Equal(d) {
			t.Fatalf("ParseDate(%q) = %v does not round-trip through %q", value, d, FormatDate(d))
		}
	})
}

// FuzzNormalize checks that normalizing twice changes nothing.
func FuzzNormalize(f *testing.F) {
	f.Add("Design", "31/01/2024", "02/02/2024", "40%")
	f.Add("", "bad", "2024-01-01", "x")

	f.Fuzz(func(t *testing.T, activity, start, end, completion string) {
		tbl := table.New(ColActivity, ColStart, ColEnd, ColCompletion)
		if err := tbl.AddRow(activity, start, end, completion); err != nil {
			t.Fatal(err)
		}
		first, _, err := Normalize(tbl, DefaultNormalizeOptions())
		if err != nil {
			t.Fatal(err)
		}
		second, _, err := Normalize(first.Table(), DefaultNormalizeOptions())
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first.Rows(), second.Rows()) {
			t.Fatalf("rows changed on second pass: %v != %v", first.Rows(), second.Rows())
		}
	})
}
