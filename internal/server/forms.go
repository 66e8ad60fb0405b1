package server

import (
	"mime/multipart"
	"strings"
	"time"

	"github.com/gantt-tools/gantt-go/internal/dataset"
	"github.com/gantt-tools/gantt-go/internal/ingest"
)

type importFileForm struct {
	File      *multipart.FileHeader `form:"file" binding:"required"`
	Separator string                `form:"separator" binding:"omitempty,oneof=auto comma tab semicolon"`
}

type importTextForm struct {
	Data      string `form:"data" binding:"required"`
	Separator string `form:"separator" binding:"omitempty,oneof=auto comma tab semicolon"`
}

// mapForm carries no binding tags: unselected roles surface as an
// incomplete mapping naming every missing role.
type mapForm struct {
	Activity string `form:"activity_col"`
	Start    string `form:"start_col"`
	End      string `form:"end_col"`
}

func (f mapForm) mapping() dataset.Mapping {
	return dataset.Mapping{
		Activity: strings.TrimSpace(f.Activity),
		Start:    strings.TrimSpace(f.Start),
		End:      strings.TrimSpace(f.End),
	}
}

type addForm struct {
	Activity   string `form:"activity"`
	Start      string `form:"start"`
	End        string `form:"end"`
	Completion string `form:"completion"`
	Category   string `form:"category" binding:"max=100"`
}

// row parses the form fields. Blank dates stay zero so the dataset reports
// them as missing fields.
func (f addForm) row() (start, end time.Time, opts []dataset.RowOption, err error) {
	if start, err = formDate("start date", f.Start); err != nil {
		return
	}
	if end, err = formDate("end date", f.End); err != nil {
		return
	}
	if c := strings.TrimSpace(f.Completion); c != "" {
		fraction, ok := dataset.ParseCompletion(c)
		if !ok {
			err = dataset.ErrInvalidCompletion
			return
		}
		opts = append(opts, dataset.WithCompletion(fraction))
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		opts = append(opts, dataset.WithCategory(c))
	}
	return
}

func formDate(field, value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	d, ok := dataset.ParseDate(value)
	if !ok {
		return time.Time{}, &InvalidDateError{Field: field, Value: value}
	}
	return d, nil
}

type removeForm struct {
	Activity string `form:"activity" binding:"required"`
}

type editForm struct {
	Data string `form:"data" binding:"required"`
}

// separator resolves a form separator, falling back to the configured one.
func separator(name string, fallback ingest.Separator) ingest.Separator {
	if name == "" {
		return fallback
	}
	sep, err := ingest.ParseSeparator(name)
	if err != nil {
		return fallback
	}
	return sep
}
