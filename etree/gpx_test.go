package etree_test

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/beevik/etree"
	"github.com/fwojciec/c2cgpx"
	c2cetree "github.com/fwojciec/c2cgpx/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readGPX(t *testing.T, b []byte) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(b))
	root := doc.Root()
	require.NotNil(t, root)
	return root
}

func TestWaypointWriter_WriteWaypoints(t *testing.T) {
	t.Parallel()

	t.Run("writes GPX 1.1 root", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n, err := c2cetree.NewWaypointWriter().WriteWaypoints(&buf, nil)

		require.NoError(t, err)
		assert.Equal(t, 0, n)
		assert.Contains(t, buf.String(), `<?xml version="1.0" encoding="UTF-8"?>`)

		root := readGPX(t, buf.Bytes())
		assert.Equal(t, "gpx", root.Tag)
		assert.Equal(t, "1.1", root.SelectAttrValue("version", ""))
		assert.Equal(t, c2cetree.Creator, root.SelectAttrValue("creator", ""))
		assert.Equal(t, c2cetree.Namespace, root.SelectAttrValue("xmlns", ""))
		assert.Empty(t, root.SelectElements("wpt"))
	})

	t.Run("writes one wpt per waypoint", func(t *testing.T) {
		t.Parallel()

		wps := []*c2cgpx.Waypoint{
			{
				DocumentID:  57964,
				Type:        c2cgpx.TypeRoute,
				Lat:         45.8786,
				Lon:         6.8873,
				Title:       "Arête des Cosmiques",
				Description: `<p> <a href="https://www.camptocamp.org/routes/57964">57964</a></p>`,
				Comment:     "Arête des Cosmiques",
				Link:        "https://www.camptocamp.org/routes/57964",
			},
			{DocumentID: 37134, Lat: -12.5, Lon: -77.25, Title: "Pic de Bure"},
		}

		var buf bytes.Buffer
		n, err := c2cetree.NewWaypointWriter().WriteWaypoints(&buf, wps)

		require.NoError(t, err)
		assert.Equal(t, 2, n)

		root := readGPX(t, buf.Bytes())
		elems := root.SelectElements("wpt")
		require.Len(t, elems, 2)

		first := elems[0]
		lat, err := strconv.ParseFloat(first.SelectAttrValue("lat", ""), 64)
		require.NoError(t, err)
		lon, err := strconv.ParseFloat(first.SelectAttrValue("lon", ""), 64)
		require.NoError(t, err)
		assert.Equal(t, 45.8786, lat)
		assert.Equal(t, 6.8873, lon)
		assert.Equal(t, "Arête des Cosmiques", first.SelectElement("name").Text())
		assert.Equal(t, "Arête des Cosmiques", first.SelectElement("cmt").Text())
		assert.Equal(t, wps[0].Description, first.SelectElement("desc").Text())
		assert.Equal(t, wps[0].Link, first.SelectElement("link").SelectAttrValue("href", ""))
		assert.Equal(t, "routes", first.SelectElement("type").Text())

		second := elems[1]
		assert.Equal(t, "-12.5", second.SelectAttrValue("lat", ""))
		assert.Equal(t, "-77.25", second.SelectAttrValue("lon", ""))
		assert.Nil(t, second.SelectElement("cmt"))
		assert.Nil(t, second.SelectElement("desc"))
		assert.Nil(t, second.SelectElement("link"))
	})

	t.Run("escapes HTML description", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		_, err := c2cetree.NewWaypointWriter().WriteWaypoints(&buf, []*c2cgpx.Waypoint{
			{DocumentID: 1, Title: "a", Description: "<b>Cotations</b> : 6a & 6b"},
		})

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "&lt;b&gt;Cotations&lt;/b&gt; : 6a &amp; 6b")
	})

	t.Run("orders wpt children per schema", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		_, err := c2cetree.NewWaypointWriter().WriteWaypoints(&buf, []*c2cgpx.Waypoint{
			{DocumentID: 1, Type: c2cgpx.TypeWaypoint, Title: "a", Comment: "c", Description: "d", Link: "https://www.camptocamp.org/waypoints/1"},
		})
		require.NoError(t, err)

		var tags []string
		for _, child := range readGPX(t, buf.Bytes()).SelectElement("wpt").ChildElements() {
			tags = append(tags, child.Tag)
		}
		assert.Equal(t, []string{"name", "cmt", "desc", "link", "type"}, tags)
	})

	t.Run("writes metadata name when set", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := &c2cetree.WaypointWriter{Name: "routes"}
		_, err := w.WriteWaypoints(&buf, nil)

		require.NoError(t, err)
		meta := readGPX(t, buf.Bytes()).SelectElement("metadata")
		require.NotNil(t, meta)
		assert.Equal(t, "routes", meta.SelectElement("name").Text())
	})

	t.Run("rejects coordinates out of range", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		_, err := c2cetree.NewWaypointWriter().WriteWaypoints(&buf, []*c2cgpx.Waypoint{
			{DocumentID: 9, Lat: 620000, Lon: 5340000},
		})

		require.Error(t, err)
		assert.Equal(t, c2cgpx.EINVALID, c2cgpx.ErrorCode(err))
		assert.Zero(t, buf.Len())
	})
}
