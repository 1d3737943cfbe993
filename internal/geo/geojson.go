package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func orbPoint(c Coordinate) orb.Point {
	return orb.Point{c.Long, c.Lat}
}

// FeatureCollection renders the tour as a LineString in visiting order
// followed by one Point feature per stop.
func (t Tour) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if len(t) == 0 {
		return fc
	}

	line := make(orb.LineString, len(t))
	for i, s := range t {
		line[i] = orbPoint(s.Coordinate)
	}
	route := geojson.NewFeature(line)
	route.Properties["kind"] = "route"
	route.Properties["keys"] = t.Keys()
	fc.Append(route)

	for i, s := range t {
		f := geojson.NewFeature(orbPoint(s.Coordinate))
		f.Properties["kind"] = "stop"
		f.Properties["key"] = s.Key
		f.Properties["order"] = i
		f.Properties["cell"] = CellToken(s.Coordinate)
		fc.Append(f)
	}
	return fc
}

// PointsFeatureCollection renders points as Point features keyed by their
// 0-based position.
func PointsFeatureCollection(points []Coordinate) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, p := range points {
		f := geojson.NewFeature(orbPoint(p))
		f.Properties["key"] = i
		f.Properties["cell"] = CellToken(p)
		fc.Append(f)
	}
	return fc
}
