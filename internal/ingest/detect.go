package ingest

import (
	"bytes"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"

	"github.com/gantt-tools/gantt-go/internal/table"
)

// Kind is the detected format of uploaded bytes.
type Kind string

const (
	KindText        Kind = "text"
	KindSpreadsheet Kind = "spreadsheet"
	KindLegacyExcel Kind = "xls"
	KindUnknown     Kind = "unknown"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeXLS  = "application/vnd.ms-excel"
)

// Options controls how uploaded data is read.
type Options struct {
	Separator   Separator
	Sheet       string
	SampleBytes int
}

// Result is a parsed upload.
type Result struct {
	Table     *table.Table
	Kind      Kind
	Separator Separator
}

// Read parses uploaded bytes as a spreadsheet or delimited text depending
// on the detected format.
func Read(data []byte, filename string, opts Options) (*Result, error) {
	kind := DetectKind(data, filename)
	switch kind {
	case KindSpreadsheet:
		t, err := ReadSpreadsheet(bytes.NewReader(data), opts.Sheet)
		if err != nil {
			return nil, err
		}
		return &Result{Table: t, Kind: kind}, nil
	case KindText:
		t, sep, err := ReadText(string(data), opts.Separator, opts.SampleBytes)
		if err != nil {
			return nil, err
		}
		return &Result{Table: t, Kind: kind, Separator: sep}, nil
	case KindLegacyExcel:
		return nil, &ParseError{Source: spreadsheetSource, Err: errors.New("legacy .xls workbooks are not supported; save as .xlsx")}
	default:
		return nil, &ParseError{Source: filename, Err: errors.New("unrecognized file format")}
	}
}

// DetectKind classifies data by MIME sniffing, using the filename
// extension to break ties between zip containers and plain bytes.
func DetectKind(data []byte, filename string) Kind {
	mime := detectMIME(data)
	ext := strings.ToLower(filepath.Ext(filename))

	switch {
	case strings.HasPrefix(mime, mimeXLSX):
		return KindSpreadsheet
	case strings.HasPrefix(mime, mimeXLS):
		return KindLegacyExcel
	case strings.HasPrefix(mime, "application/zip") && (ext == ".xlsx" || ext == ".xlsm"):
		return KindSpreadsheet
	case strings.HasPrefix(mime, "text/"):
		return KindText
	}

	switch ext {
	case ".xlsx", ".xlsm":
		return KindSpreadsheet
	case ".xls":
		return KindLegacyExcel
	case ".csv", ".tsv", ".txt":
		return KindText
	}
	if len(data) > 0 && utf8.Valid(data) {
		return KindText
	}
	return KindUnknown
}

// detectMIME uses stdlib detection first and falls back to the broader
// mimetype library for containers and unknown binaries.
func detectMIME(data []byte) string {
	if len(data) == 0 {
		return "application/octet-stream"
	}
	mt := http.DetectContentType(data)
	if mt != "application/octet-stream" && mt != "application/zip" {
		return mt
	}
	return mimetype.Detect(data).String()
}
