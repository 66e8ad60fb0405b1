// Package dataset maps imported tables onto the canonical timeline schema,
// normalizes their rows and provides the row mutation API.
package dataset

// Canonical column names.
const (
	ColActivity   = "Activity"
	ColStart      = "Start Date"
	ColEnd        = "End Date"
	ColCompletion = "Completion"
	ColCategory   = "Category"
)

// MaxActivityLength is the default activity label limit, in characters.
const MaxActivityLength = 50

// RequiredColumns returns the required canonical columns in order.
func RequiredColumns() []string {
	return []string{ColActivity, ColStart, ColEnd}
}

// OptionalColumns returns the recognized optional columns in order.
func OptionalColumns() []string {
	return []string{ColCompletion, ColCategory}
}

// truncate returns the first limit characters of s.
func truncate(s string, limit int) (string, bool) {
	if limit <= 0 {
		return s, false
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s, false
	}
	return string(runes[:limit]), true
}
