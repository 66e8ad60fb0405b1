package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gantt-tools/gantt-go/internal/table"
)

const textSource = "CSV data"

// ReadDelimited parses delimited text with an explicit separator. The first
// record is the header. Records shorter than the header are padded with
// empty cells; longer records are a ParseError.
func ReadDelimited(text string, sep Separator) (*table.Table, error) {
	if !sep.valid() {
		return nil, &ParseError{Source: textSource, Err: fmt.Errorf("unsupported separator %s", sep)}
	}

	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(text, "\ufeff")))
	reader.Comma = rune(sep)
	reader.FieldsPerRecord = -1 // Checked against the header below

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &ParseError{Source: textSource, Err: ErrNoColumns}
	}
	if err != nil {
		return nil, &ParseError{Source: textSource, Err: err}
	}

	t := table.New(headerNames(header)...)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Source: textSource, Err: err}
		}
		if err := t.AddRow(record...); err != nil {
			line, _ := reader.FieldPos(0)
			return nil, &ParseError{Source: textSource, Err: fmt.Errorf("line %d: %w", line, err)}
		}
	}

	return t, nil
}

// ReadText parses pasted text, sniffing the separator from a sample of at
// most sampleBytes when sep is SepAuto.
func ReadText(text string, sep Separator, sampleBytes int) (*table.Table, Separator, error) {
	if sep.IsAuto() {
		if sampleBytes <= 0 {
			sampleBytes = DefaultSampleBytes
		}
		sniffed, err := Sniff(Sample(text, sampleBytes))
		if err != nil {
			return nil, SepAuto, err
		}
		sep = sniffed
	}

	t, err := ReadDelimited(text, sep)
	if err != nil {
		return nil, sep, err
	}
	return t, sep, nil
}

// headerNames cleans raw header cells: blank names become "Unnamed: <i>"
// and repeated names get ".1", ".2" suffixes.
func headerNames(raw []string) []string {
	names := make([]string, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, name := range raw {
		name = strings.TrimSpace(name)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		candidate := name
		for n := 1; seen[candidate]; n++ {
			candidate = name + "." + strconv.Itoa(n)
		}
		seen[candidate] = true
		names[i] = candidate
	}
	return names
}
