package server

import (
	"html/template"
	"strings"

	"github.com/gantt-tools/gantt-go/internal/dataset"
	"github.com/gantt-tools/gantt-go/internal/session"
)

var templateFuncs = template.FuncMap{
	"selected": func(a, b string) bool { return a == b },
}

// pageData is the view model of the editor page.
type pageData struct {
	Title      string
	Flashes    []session.Flash
	Columns    []string
	Mapping    dataset.Mapping
	Headers    []string
	Rows       [][]string
	Labels     []string
	EditCSV    string
	HasData    bool
	Dirty      bool
	Report     []string
	Separators []string
	Separator  string
	InlineImg  bool
	MaxUpload  int64
}

func (s *Server) page(sess *session.Session) pageData {
	ds := sess.Dataset()
	records := ds.Table().Records()

	var csv strings.Builder
	_ = ds.WriteCSV(&csv)

	data := pageData{
		Title:      s.cfg.Gantt.Chart.Title,
		Flashes:    sess.Flashes(),
		Columns:    sess.Columns(),
		Mapping:    sess.Mapping(),
		Headers:    records[0],
		Rows:       records[1:],
		Labels:     ds.Labels(),
		EditCSV:    csv.String(),
		HasData:    !ds.IsEmpty(),
		Dirty:      ds.IsDirty(),
		Separators: []string{"auto", "comma", "tab", "semicolon"},
		Separator:  s.cfg.Separator().String(),
		InlineImg:  s.renderer.Name() == "svg" || s.renderer.Name() == "png",
		MaxUpload:  s.cfg.Gantt.Server.MaxUploadBytes,
	}
	if report := sess.Report(); report != nil {
		data.Report = report.Messages()
	}
	return data
}
