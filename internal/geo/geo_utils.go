package geo

import (
	"github.com/golang/geo/s2"
)

// BoundingBox defines the corners of a lat/lon box. When the box crosses
// the antimeridian MinLon is greater than MaxLon.
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

// Contains checks whether the given latitude and longitude are within the bounding box
func (b BoundingBox) Contains(lat, lon float64) bool {
	if lat < b.MinLat || lat > b.MaxLat {
		return false
	}
	if b.MinLon <= b.MaxLon {
		return lon >= b.MinLon && lon <= b.MaxLon
	}
	return lon >= b.MinLon || lon <= b.MaxLon
}

// CrossesAntimeridian reports whether the box wraps past 180 degrees.
func (b BoundingBox) CrossesAntimeridian() bool {
	return b.MinLon > b.MaxLon
}

// Bounds computes the smallest box holding every point. The longitude span
// is taken from s2.Rect, so a set straddling the antimeridian gets a narrow
// wrapped box instead of one spanning the globe.
func Bounds(points []Coordinate) (BoundingBox, error) {
	if len(points) == 0 {
		return BoundingBox{}, ErrEmptyInput
	}

	rect := s2.EmptyRect()
	for _, p := range points {
		rect = rect.AddPoint(s2.LatLngFromDegrees(p.Lat, p.Long))
	}

	lo, hi := rect.Lo(), rect.Hi()
	return BoundingBox{
		MinLat: lo.Lat.Degrees(),
		MaxLat: hi.Lat.Degrees(),
		MinLon: lo.Lng.Degrees(),
		MaxLon: hi.Lng.Degrees(),
	}, nil
}

// IsValidLatLon returns true if the given latitude and longitude values
// fall within the valid geographic coordinate bounds.
//
// Note: This function treats the coordinate (0,0) as invalid, even though it
// is a valid location in the Gulf of Guinea. Stop feeds commonly use (0,0)
// as a placeholder for a missing location.
func IsValidLatLon(lat, lon float64) bool {
	if lat == 0 && lon == 0 {
		return false
	}
	return s2.LatLngFromDegrees(lat, lon).IsValid()
}

// InvalidPoints returns the positions of points failing IsValidLatLon.
func InvalidPoints(points []Coordinate) []int {
	var out []int
	for i, p := range points {
		if !IsValidLatLon(p.Lat, p.Long) {
			out = append(out, i)
		}
	}
	return out
}
