package server

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gantt-tools/gantt-go/internal/chart"
	"github.com/gantt-tools/gantt-go/internal/dataset"
	"github.com/gantt-tools/gantt-go/internal/session"
)

// response is the JSON body returned to clients that ask for JSON.
type response struct {
	Message  string   `json:"message,omitempty"`
	Error    string   `json:"error,omitempty"`
	Code     string   `json:"code,omitempty"`
	Messages []string `json:"messages,omitempty"`
	Rows     int      `json:"rows"`
	Columns  []string `json:"columns"`
}

func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

// respond finishes a successful action: JSON clients get the message and
// the dataset shape, browsers are redirected back to the page with flashes.
func respond(c *gin.Context, level, message string, report *dataset.Report) {
	sess := currentSession(c)
	var notes []string
	if report != nil {
		notes = report.Messages()
	}

	if wantsJSON(c) {
		ds := sess.Dataset()
		c.JSON(http.StatusOK, response{
			Message:  message,
			Messages: notes,
			Rows:     ds.Len(),
			Columns:  sess.Columns(),
		})
		return
	}

	sess.AddFlash(level, message)
	for _, note := range notes {
		sess.AddFlash(session.FlashWarning, note)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// respondError reports a failed action. The session keeps its last good
// state either way.
func respondError(c *gin.Context, err error) {
	e := classify(err)
	_ = c.Error(err)

	value, ok := c.Get(sessionKey)
	if wantsJSON(c) || !ok {
		body := response{Error: e.Message, Code: e.Code}
		if sess, ok := value.(*session.Session); ok {
			body.Rows = sess.Dataset().Len()
			body.Columns = sess.Columns()
		}
		c.JSON(e.Status, body)
		return
	}

	value.(*session.Session).AddFlash(session.FlashError, e.Message)
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", s.page(currentSession(c)))
}

func (s *Server) importFile(c *gin.Context) {
	var form importFileForm
	if err := c.ShouldBind(&form); err != nil {
		respondError(c, err)
		return
	}

	f, err := form.File.Open()
	if err != nil {
		respondError(c, badRequest("failed to open upload", err))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		respondError(c, badRequest("failed to read upload", err))
		return
	}

	sess := currentSession(c)
	res, err := sess.ImportFile(data, form.File.Filename, separator(form.Separator, s.cfg.Separator()))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, session.FlashSuccess, importMessage(res), res.Report)
}

func (s *Server) importText(c *gin.Context) {
	var form importTextForm
	if err := c.ShouldBind(&form); err != nil {
		respondError(c, err)
		return
	}

	sess := currentSession(c)
	res, err := sess.ImportText(form.Data, separator(form.Separator, s.cfg.Separator()))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, session.FlashSuccess, importMessage(res), res.Report)
}

func importMessage(res *session.ImportResult) string {
	if res.AutoMapped {
		return fmt.Sprintf("Imported %d rows", res.Report.Kept)
	}
	return fmt.Sprintf("Imported %d rows with %d columns; map the columns to continue", res.Rows, len(res.Columns))
}

func (s *Server) mapColumns(c *gin.Context) {
	var form mapForm
	if err := c.ShouldBind(&form); err != nil {
		respondError(c, err)
		return
	}

	report, err := currentSession(c).Map(form.mapping())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, session.FlashSuccess, fmt.Sprintf("Mapped columns; %d rows ready", report.Kept), report)
}

func (s *Server) addRow(c *gin.Context) {
	var form addForm
	if err := c.ShouldBind(&form); err != nil {
		respondError(c, err)
		return
	}
	start, end, opts, err := form.row()
	if err != nil {
		respondError(c, err)
		return
	}

	if err := currentSession(c).AddActivity(form.Activity, start, end, opts...); err != nil {
		respondError(c, err)
		return
	}
	respond(c, session.FlashSuccess, "Activity added successfully", nil)
}

func (s *Server) removeRow(c *gin.Context) {
	sess := currentSession(c)
	// The empty-state form posts no label; report the empty dataset first.
	if sess.IsEmpty() {
		respondError(c, session.ErrEmptyDataset)
		return
	}

	var form removeForm
	if err := c.ShouldBind(&form); err != nil {
		respondError(c, err)
		return
	}

	n, err := sess.RemoveActivity(form.Activity)
	if err != nil {
		respondError(c, err)
		return
	}
	if n == 0 {
		respond(c, session.FlashWarning, fmt.Sprintf("No activity named %q", form.Activity), nil)
		return
	}
	respond(c, session.FlashSuccess, fmt.Sprintf("Removed %d rows for %q", n, form.Activity), nil)
}

func (s *Server) edit(c *gin.Context) {
	var form editForm
	if err := c.ShouldBind(&form); err != nil {
		respondError(c, err)
		return
	}

	report, err := currentSession(c).EditCSV(form.Data)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, session.FlashSuccess, fmt.Sprintf("Saved %d rows", report.Kept), report)
}

func (s *Server) exportCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := currentSession(c).ExportCSV(&buf); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", dataset.ExportFilename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (s *Server) chart(c *gin.Context) {
	s.renderChart(c, s.renderer)
}

func (s *Server) chartPNG(c *gin.Context) {
	s.renderChart(c, chart.PNG{})
}

// renderChart writes the chart inline, or as an attachment when the query
// carries download. Errors are always JSON since the caller is an image tag
// or a download link.
func (s *Server) renderChart(c *gin.Context, r chart.Renderer) {
	var buf bytes.Buffer
	if err := currentSession(c).Render(&buf, r, s.chartOptions()); err != nil {
		e := classify(err)
		_ = c.Error(err)
		c.JSON(e.Status, response{Error: e.Message, Code: e.Code})
		return
	}
	if _, ok := c.GetQuery("download"); ok {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "gantt_chart"+r.Extension()))
	}
	c.Data(http.StatusOK, r.ContentType(), buf.Bytes())
}
