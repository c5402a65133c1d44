// Package etree writes waypoints as GPX 1.1 documents.
package etree

import (
	"io"
	"math"
	"strconv"

	"github.com/beevik/etree"
	"github.com/fwojciec/c2cgpx"
)

// GPX constants.
const (
	Namespace = "http://www.topografix.com/GPX/1/1"
	Schema    = "http://www.topografix.com/GPX/1/1 http://www.topografix.com/GPX/1/1/gpx.xsd"
	Creator   = "c2cgpx"
)

// Ensure WaypointWriter implements c2cgpx.WaypointWriter at compile time.
var _ c2cgpx.WaypointWriter = (*WaypointWriter)(nil)

// WaypointWriter serializes waypoints as a GPX document.
type WaypointWriter struct {
	// Name is written to the document metadata when set.
	Name string

	// Indent is the number of spaces per nesting level. Zero writes the
	// document on one line.
	Indent int
}

// NewWaypointWriter returns a WaypointWriter producing indented output.
func NewWaypointWriter() *WaypointWriter {
	return &WaypointWriter{Indent: 2}
}

// WriteWaypoints writes wps as one GPX document.
// Returns EINVALID if a waypoint lies outside WGS84 bounds; nothing is
// written in that case.
func (ww *WaypointWriter) WriteWaypoints(w io.Writer, wps []*c2cgpx.Waypoint) (int, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	gpx := doc.CreateElement("gpx")
	gpx.CreateAttr("version", "1.1")
	gpx.CreateAttr("creator", Creator)
	gpx.CreateAttr("xmlns", Namespace)
	gpx.CreateAttr("xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance")
	gpx.CreateAttr("xsi:schemaLocation", Schema)

	if ww.Name != "" {
		meta := gpx.CreateElement("metadata")
		meta.CreateElement("name").SetText(ww.Name)
	}

	for _, wp := range wps {
		if err := validate(wp); err != nil {
			return 0, err
		}
		appendWaypoint(gpx, wp)
	}

	if ww.Indent > 0 {
		doc.Indent(ww.Indent)
	}
	if _, err := doc.WriteTo(w); err != nil {
		return 0, err
	}
	return len(wps), nil
}

// appendWaypoint adds a wpt element. Children follow the order required
// by the GPX schema.
func appendWaypoint(gpx *etree.Element, wp *c2cgpx.Waypoint) {
	wpt := gpx.CreateElement("wpt")
	wpt.CreateAttr("lat", formatCoord(wp.Lat))
	wpt.CreateAttr("lon", formatCoord(wp.Lon))

	wpt.CreateElement("name").SetText(wp.Title)
	if wp.Comment != "" {
		wpt.CreateElement("cmt").SetText(wp.Comment)
	}
	if wp.Description != "" {
		wpt.CreateElement("desc").SetText(wp.Description)
	}
	if wp.Link != "" {
		link := wpt.CreateElement("link")
		link.CreateAttr("href", wp.Link)
		link.CreateElement("text").SetText(wp.Title)
	}
	if wp.Type != "" {
		wpt.CreateElement("type").SetText(string(wp.Type))
	}
}

func validate(wp *c2cgpx.Waypoint) error {
	if math.IsNaN(wp.Lat) || wp.Lat < -90 || wp.Lat > 90 {
		return c2cgpx.Errorf(c2cgpx.EINVALID, "waypoint %d: latitude %v out of range", wp.DocumentID, wp.Lat)
	}
	if math.IsNaN(wp.Lon) || wp.Lon < -180 || wp.Lon > 180 {
		return c2cgpx.Errorf(c2cgpx.EINVALID, "waypoint %d: longitude %v out of range", wp.DocumentID, wp.Lon)
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
