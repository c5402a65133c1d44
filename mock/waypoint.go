package mock

import (
	"io"

	"github.com/fwojciec/c2cgpx"
)

var (
	_ c2cgpx.DocumentFormatter = (*DocumentFormatter)(nil)
	_ c2cgpx.WaypointAssembler = (*WaypointAssembler)(nil)
	_ c2cgpx.Projection        = (*Projection)(nil)
	_ c2cgpx.Commenter         = (*Commenter)(nil)
	_ c2cgpx.WaypointWriter    = (*WaypointWriter)(nil)
)

// DocumentFormatter is a mock implementation of c2cgpx.DocumentFormatter.
type DocumentFormatter struct {
	FormatFn func(doc *c2cgpx.Document) (string, string, error)
}

func (f *DocumentFormatter) Format(doc *c2cgpx.Document) (string, string, error) {
	return f.FormatFn(doc)
}

// WaypointAssembler is a mock implementation of c2cgpx.WaypointAssembler.
type WaypointAssembler struct {
	AssembleFn func(doc *c2cgpx.Document) (*c2cgpx.Waypoint, error)
}

func (a *WaypointAssembler) Assemble(doc *c2cgpx.Document) (*c2cgpx.Waypoint, error) {
	return a.AssembleFn(doc)
}

// Projection is a mock implementation of c2cgpx.Projection.
type Projection struct {
	ToWGS84Fn func(x, y float64) (float64, float64)
}

func (p *Projection) ToWGS84(x, y float64) (float64, float64) {
	return p.ToWGS84Fn(x, y)
}

// Commenter is a mock implementation of c2cgpx.Commenter.
type Commenter struct {
	CommentFn func(html string) (string, error)
}

func (c *Commenter) Comment(html string) (string, error) {
	return c.CommentFn(html)
}

// WaypointWriter is a mock implementation of c2cgpx.WaypointWriter.
type WaypointWriter struct {
	WriteWaypointsFn func(w io.Writer, wps []*c2cgpx.Waypoint) (int, error)
}

func (ww *WaypointWriter) WriteWaypoints(w io.Writer, wps []*c2cgpx.Waypoint) (int, error) {
	return ww.WriteWaypointsFn(w, wps)
}
