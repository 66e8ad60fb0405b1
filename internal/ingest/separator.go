package ingest

import (
	"fmt"
	"strings"
)

// Separator is the field delimiter of pasted text. The zero value means
// "detect from the data".
type Separator rune

const (
	SepAuto      Separator = 0
	SepComma     Separator = ','
	SepTab       Separator = '\t'
	SepSemicolon Separator = ';'
)

// candidates is the sniffing candidate set in preference order.
var candidates = []Separator{SepComma, SepTab, SepSemicolon}

// DefaultSampleBytes caps how much text is inspected when sniffing.
const DefaultSampleBytes = 4096

// ParseSeparator parses a separator name or literal, case-insensitive.
func ParseSeparator(s string) (Separator, error) {
	if s == "\t" {
		return SepTab, nil
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return SepAuto, nil
	case "comma", ",":
		return SepComma, nil
	case "tab", `\t`:
		return SepTab, nil
	case "semicolon", ";":
		return SepSemicolon, nil
	}
	return SepAuto, fmt.Errorf("invalid separator: %q (want auto, comma, tab or semicolon)", s)
}

// String returns the separator name.
func (s Separator) String() string {
	switch s {
	case SepAuto:
		return "auto"
	case SepComma:
		return "comma"
	case SepTab:
		return "tab"
	case SepSemicolon:
		return "semicolon"
	default:
		return fmt.Sprintf("%q", rune(s))
	}
}

// IsAuto returns true if the separator should be sniffed.
func (s Separator) IsAuto() bool {
	return s == SepAuto
}

func (s Separator) valid() bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}

// Sample returns at most limit bytes of text, cut back to whole lines when
// the text was truncated.
func Sample(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return text
	}
	cut := text[:limit]
	if i := strings.LastIndexByte(cut, '\n'); i > 0 {
		return cut[:i]
	}
	return cut
}

// Sniff guesses the separator of a delimited-text sample. A candidate is
// consistent when every non-empty record contains it the same, non-zero,
// number of times outside quoted sections. The consistent candidate with
// the highest per-record count wins; ties go to the earlier candidate.
func Sniff(sample string) (Separator, error) {
	records := sampleRecords(sample)
	if len(records) == 0 {
		return SepAuto, &DelimiterDetectionError{Reason: "sample is empty"}
	}

	best := SepAuto
	bestCount := 0
	for _, cand := range candidates {
		count, ok := consistentCount(records, rune(cand))
		if ok && count > bestCount {
			best, bestCount = cand, count
		}
	}

	if best == SepAuto {
		return SepAuto, &DelimiterDetectionError{
			Reason: "no candidate separator (comma, tab, semicolon) occurs consistently",
		}
	}
	return best, nil
}

// sampleRecords splits a sample into records. A newline inside a quoted
// field does not end a record; a trailing record left open by a truncated
// sample is dropped unless it is the only one.
func sampleRecords(sample string) []string {
	sample = strings.TrimPrefix(sample, "\ufeff")
	var records []string
	add := func(rec string) {
		rec = strings.TrimRight(rec, "\r")
		if strings.TrimSpace(rec) != "" {
			records = append(records, rec)
		}
	}

	start := 0
	inQuote := false
	for i, r := range sample {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == '\n' && !inQuote:
			add(sample[start:i])
			start = i + 1
		}
	}
	if !inQuote || len(records) == 0 {
		add(sample[start:])
	}
	return records
}

func consistentCount(lines []string, sep rune) (int, bool) {
	want := -1
	for _, line := range lines {
		n := countOutsideQuotes(line, sep)
		if n == 0 {
			return 0, false
		}
		if want >= 0 && n != want {
			return 0, false
		}
		want = n
	}
	return want, want > 0
}

func countOutsideQuotes(line string, sep rune) int {
	n := 0
	inQuote := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == sep && !inQuote:
			n++
		}
	}
	return n
}
