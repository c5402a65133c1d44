// Package mercator converts between spherical Web Mercator (EPSG:3857)
// and WGS84 coordinates.
package mercator

import (
	"math"

	"github.com/fwojciec/c2cgpx"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// MaxLatitude is the latitude at which the projection is square.
const MaxLatitude = 85.05112877980659

// Ensure WebMercator implements c2cgpx.Projection at compile time.
var _ c2cgpx.Projection = WebMercator{}

// WebMercator is the EPSG:3857 projection used by the camptocamp API.
type WebMercator struct{}

// ToWGS84 converts projected meters to longitude and latitude in degrees.
func (WebMercator) ToWGS84(x, y float64) (lon, lat float64) {
	p := project.Mercator.ToWGS84(orb.Point{x, y})
	return p.Lon(), p.Lat()
}

// FromWGS84 converts longitude and latitude in degrees to projected meters.
// Latitudes are clamped to MaxLatitude.
func (WebMercator) FromWGS84(lon, lat float64) (x, y float64) {
	lat = math.Max(-MaxLatitude, math.Min(MaxLatitude, lat))
	p := project.WGS84.ToMercator(orb.Point{lon, lat})
	return p.X(), p.Y()
}
