package ingest

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/gantt-tools/gantt-go/internal/table"
)

const spreadsheetSource = "Excel file"

// ReadSpreadsheet parses the named sheet of an xlsx workbook, or the first
// sheet when sheet is empty. The first non-empty row is the header. Cells
// formatted as dates are converted from Excel serials to ISO text.
func ReadSpreadsheet(r io.Reader, sheet string) (*table.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &ParseError{Source: spreadsheetSource, Err: err}
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, &ParseError{Source: spreadsheetSource, Err: errors.New("workbook has no sheets")}
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &ParseError{Source: spreadsheetSource, Err: err}
	}

	// Skip leading blank rows
	start := 0
	for start < len(rows) && isBlankRow(rows[start]) {
		start++
	}
	if start == len(rows) {
		return nil, &ParseError{Source: spreadsheetSource, Err: ErrNoColumns}
	}

	width := 0
	for _, row := range rows[start:] {
		if len(row) > width {
			width = len(row)
		}
	}
	header := make([]string, width)
	copy(header, rows[start])

	dates := newDateCells(f, sheet)
	t := table.New(headerNames(header)...)
	for i := start + 1; i < len(rows); i++ {
		if isBlankRow(rows[i]) {
			continue
		}
		cells := make([]string, len(rows[i]))
		for c, value := range rows[i] {
			cells[c] = dates.convert(c+1, i+1, value)
		}
		if err := t.AddRow(cells...); err != nil {
			return nil, &ParseError{Source: spreadsheetSource, Err: fmt.Errorf("row %d: %w", i+1, err)}
		}
	}

	return t, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// dateCells converts raw serial values of date-formatted cells.
type dateCells struct {
	f        *excelize.File
	sheet    string
	date1904 bool
	styles   map[int]bool
}

func newDateCells(f *excelize.File, sheet string) *dateCells {
	d := &dateCells{f: f, sheet: sheet, styles: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

func (d *dateCells) convert(col, row int, value string) string {
	if value == "" {
		return value
	}
	serial, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return value
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil || !d.isDate(cell) {
		return value
	}
	t, err := excelize.ExcelDateToTime(serial, d.date1904)
	if err != nil {
		return value
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04:05")
}

func (d *dateCells) isDate(cell string) bool {
	styleID, err := d.f.GetCellStyle(d.sheet, cell)
	if err != nil || styleID == 0 {
		return false
	}
	if is, ok := d.styles[styleID]; ok {
		return is
	}
	style, err := d.f.GetStyle(styleID)
	is := err == nil && isDateStyle(style)
	d.styles[styleID] = is
	return is
}

// isDateStyle reports whether a cell style formats numbers as dates: the
// built-in date formats, or a custom code with day or year tokens.
func isDateStyle(style *excelize.Style) bool {
	if style == nil {
		return false
	}
	if style.CustomNumFmt != nil {
		return isDateFormatCode(*style.CustomNumFmt)
	}
	n := style.NumFmt
	return (n >= 14 && n <= 22) || (n >= 27 && n <= 36) || (n >= 45 && n <= 47) || (n >= 50 && n <= 58)
}

var formatLiterals = regexp.MustCompile(`"[^"]*"|\[[^\]]*\]|\\.`)

func isDateFormatCode(code string) bool {
	clean := strings.ToLower(formatLiterals.ReplaceAllString(code, ""))
	return strings.ContainsAny(clean, "yd")
}
