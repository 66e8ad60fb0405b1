// Package chart renders a dataset as a Gantt-style timeline through
// interchangeable backends.
package chart

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/gantt-tools/gantt-go/internal/dataset"
)

// DefaultTitle is the chart title used when none is configured.
const DefaultTitle = "Gantt Chart"

// ErrUnknownBackend is returned by New for an unregistered backend name.
var ErrUnknownBackend = errors.New("unknown chart backend")

// ErrEmptyDataset is returned when there are no rows to draw.
var ErrEmptyDataset = dataset.ErrEmptyDataset

// Options controls chart rendering.
type Options struct {
	Title string
	// Width is the canvas width in pixels (points for pdf, columns for text).
	Width int
	// Height is the canvas height; zero sizes it to the number of lanes.
	Height int
	// Now positions the today marker.
	Now       time.Time
	ShowToday bool
}

// DefaultOptions returns the default rendering options.
func DefaultOptions() Options {
	return Options{
		Title:     DefaultTitle,
		Width:     1200,
		Now:       time.Now(),
		ShowToday: true,
	}
}

// Renderer draws a dataset in one output format.
type Renderer interface {
	// Name is the backend name used in configuration.
	Name() string
	// ContentType is the MIME type of the rendered output.
	ContentType() string
	// Extension is the file extension of the rendered output, with the dot.
	Extension() string
	Render(w io.Writer, ds *dataset.Dataset, opts Options) error
}

var backends = map[string]func() Renderer{
	"svg":  func() Renderer { return SVG{} },
	"png":  func() Renderer { return PNG{} },
	"pdf":  func() Renderer { return PDF{} },
	"text": func() Renderer { return Text{} },
}

// New returns the renderer registered under name.
func New(name string) (Renderer, error) {
	ctor, ok := backends[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownBackend, name, strings.Join(Backends(), ", "))
	}
	return ctor(), nil
}

// Backends returns the registered backend names, sorted.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForExtension returns the renderer whose output uses the file extension
// of path, or nil.
func ForExtension(path string) Renderer {
	lower := strings.ToLower(path)
	for _, name := range Backends() {
		r := backends[name]()
		if strings.HasSuffix(lower, r.Extension()) {
			return r
		}
	}
	return nil
}
