package geo

import (
	"github.com/golang/geo/s2"
)

const cellLevel = 10 // S2 cell level with 7–10 km spatial resolution

// CellToken returns a stable S2 cell token covering c at cellLevel. Points
// sharing a token are in the same neighbourhood, which lets GeoJSON
// consumers group tour stops without recomputing distances.
func CellToken(c Coordinate) string {
	ll := s2.LatLngFromDegrees(c.Lat, c.Long)
	return s2.CellIDFromLatLng(ll).Parent(cellLevel).ToToken()
}
