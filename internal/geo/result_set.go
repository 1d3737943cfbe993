package geo

// Features is the combined distance and center of one point set.
type Features struct {
	Distance DistanceResult `json:"distance"`
	Center   Coordinate     `json:"center"`
}

// ResultSet memoises the distance and center of a fixed point set so that
// combined queries compute each at most once. It belongs to one caller.
type ResultSet struct {
	engine *Engine
	points []Coordinate
	units  []string

	distance    DistanceResult
	hasDistance bool
	center      Coordinate
	hasCenter   bool
}

func NewResultSet(engine *Engine, points []Coordinate, units ...string) *ResultSet {
	return &ResultSet{
		engine: engine,
		points: append([]Coordinate(nil), points...),
		units:  append([]string(nil), units...),
	}
}

// Distance returns the memoised pairwise distance. Failures are not cached.
func (rs *ResultSet) Distance() (DistanceResult, error) {
	if rs.hasDistance {
		return rs.distance, nil
	}
	d, err := rs.engine.Distance(rs.points, rs.units...)
	if err != nil {
		return nil, err
	}
	rs.distance, rs.hasDistance = d, true
	return d, nil
}

// Center returns the memoised centroid. Failures are not cached.
func (rs *ResultSet) Center() (Coordinate, error) {
	if rs.hasCenter {
		return rs.center, nil
	}
	c, err := Centroid(rs.points)
	if err != nil {
		return Coordinate{}, err
	}
	rs.center, rs.hasCenter = c, true
	return c, nil
}

func (rs *ResultSet) AllFeatures() (Features, error) {
	d, err := rs.Distance()
	if err != nil {
		return Features{}, err
	}
	c, err := rs.Center()
	if err != nil {
		return Features{}, err
	}
	return Features{Distance: d, Center: c}, nil
}
