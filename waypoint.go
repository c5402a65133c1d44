package c2cgpx

import (
	"io"
	"sort"
)

// Waypoint is a named, described geographic point derived from one Document.
type Waypoint struct {
	DocumentID int64
	Type       DocumentType

	// Lat and Lon are WGS84 degrees.
	Lat float64
	Lon float64

	Title       string
	Description string // HTML

	// Comment is an optional plain-text rendition of Description.
	Comment string

	Link string
}

// Projection converts projected coordinates into WGS84.
type Projection interface {
	ToWGS84(x, y float64) (lon, lat float64)
}

// Commenter derives a plain-text comment from an HTML description.
type Commenter interface {
	Comment(html string) (string, error)
}

// WaypointWriter serializes waypoints to an output format.
type WaypointWriter interface {
	// WriteWaypoints writes wps to w and returns the number written.
	WriteWaypoints(w io.Writer, wps []*Waypoint) (int, error)
}

// WaypointAssembler turns documents into waypoints.
type WaypointAssembler interface {
	// Assemble builds the waypoint of doc.
	// Returns EGEOMETRY for missing or malformed coordinates and ENOLOCALE
	// when doc has no usable locale.
	Assemble(doc *Document) (*Waypoint, error)
}

// Ensure Assembler implements WaypointAssembler at compile time.
var _ WaypointAssembler = (*Assembler)(nil)

// Assembler combines a document's projected location with its formatted text.
type Assembler struct {
	Formatter  DocumentFormatter
	Projection Projection

	// Commenter is optional. When nil waypoints carry no comment.
	Commenter Commenter
}

// Assemble implements WaypointAssembler.
func (a *Assembler) Assemble(doc *Document) (*Waypoint, error) {
	x, y, err := doc.Geometry.Point()
	if err != nil {
		return nil, Errorf(EGEOMETRY, "document %d (%s): field geometry.geom: %v", doc.ID, doc.Type, err)
	}
	lon, lat := a.Projection.ToWGS84(x, y)
	if !inWGS84(lon, lat) {
		return nil, Errorf(EGEOMETRY, "document %d (%s): field geometry.geom: (%v, %v) projects outside WGS84 bounds", doc.ID, doc.Type, x, y)
	}

	title, body, err := a.Formatter.Format(doc)
	if err != nil {
		return nil, err
	}

	wp := &Waypoint{
		DocumentID:  doc.ID,
		Type:        doc.Type,
		Lat:         lat,
		Lon:         lon,
		Title:       title,
		Description: body,
		Link:        doc.Type.Permalink(doc.ID),
	}

	if a.Commenter != nil {
		comment, err := a.Commenter.Comment(body)
		if err != nil {
			return nil, Errorf(EINTERNAL, "document %d (%s): comment: %v", doc.ID, doc.Type, err)
		}
		wp.Comment = comment
	}

	return wp, nil
}

// inWGS84 reports whether lon and lat are valid degrees. NaN is rejected.
func inWGS84(lon, lat float64) bool {
	return lon >= -180 && lon <= 180 && lat >= -90 && lat <= 90
}

// Skipped records a document left out of an export and why.
type Skipped struct {
	DocumentID int64
	Type       DocumentType
	Err        error
}

// Skippable reports whether err concerns a single document and the export
// may continue without it.
func Skippable(err error) bool {
	switch ErrorCode(err) {
	case ENOLOCALE, EGEOMETRY:
		return true
	}
	return false
}

// SortWaypoints orders wps by document id so output is reproducible.
func SortWaypoints(wps []*Waypoint) {
	sort.SliceStable(wps, func(i, j int) bool {
		return wps[i].DocumentID < wps[j].DocumentID
	})
}
