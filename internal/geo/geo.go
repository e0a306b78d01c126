package geo

import (
	"github.com/golang/geo/s2"

	"fieldroute/internal/model"
)

// EarthRadiusKm is Earth's mean radius in kilometers.
const EarthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two points in km.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lng1)
	p2 := s2.LatLngFromDegrees(lat2, lng2)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// Between returns the distance between two locations in km.
func Between(a, b model.Location) float64 {
	return DistanceKm(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

// ChainDistanceKm returns the straight-line distance of visiting the
// locations in the given order, starting from start when non-nil.
func ChainDistanceKm(start *model.Location, locs []model.Location) float64 {
	total := 0.0
	var cur *model.Location
	if start != nil {
		cur = start
	}
	for i := range locs {
		if cur != nil {
			total += Between(*cur, locs[i])
		}
		cur = &locs[i]
	}
	return total
}

// Region is a rectangular lat/lng region, e.g. a dense-urban core where
// traffic severity is escalated.
type Region struct {
	rect s2.Rect
}

// NewRegion builds a Region from the bounding corners in degrees.
func NewRegion(latLo, lngLo, latHi, lngHi float64) Region {
	return Region{rect: s2.RectFromLatLng(s2.LatLngFromDegrees(latLo, lngLo)).
		AddPoint(s2.LatLngFromDegrees(latHi, lngHi))}
}

// Contains reports whether the location lies inside the region.
func (r Region) Contains(loc model.Location) bool {
	return r.rect.ContainsLatLng(s2.LatLngFromDegrees(loc.Latitude, loc.Longitude))
}

// Empty reports whether the region covers no area.
func (r Region) Empty() bool {
	return r.rect.IsEmpty()
}
