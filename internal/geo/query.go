package geo

// Query collects the inputs for one computation. Every With method returns
// a new Query and leaves the receiver untouched, so a Query can be shared or
// extended without leaking points between requests.
type Query struct {
	points   []Coordinate
	main     *Coordinate
	diameter float64
	units    []string
}

// NewQuery returns an empty query.
func NewQuery() Query {
	return Query{}
}

func (q Query) clone() Query {
	out := q
	out.points = append([]Coordinate(nil), q.points...)
	out.units = append([]string(nil), q.units...)
	if q.main != nil {
		m := *q.main
		out.main = &m
	}
	return out
}

// edit applies fn to a PointSequence holding a copy of the query's points
// and returns a new Query with the result.
func (q Query) edit(fn func(s *PointSequence) error) (Query, error) {
	seq := NewPointSequence(q.points...)
	if err := fn(seq); err != nil {
		return q, err
	}
	out := q.clone()
	out.points = seq.points
	return out, nil
}

func (q Query) WithPoint(c Coordinate) Query {
	out, _ := q.edit(func(s *PointSequence) error {
		s.Append(c)
		return nil
	})
	return out
}

func (q Query) WithPoints(points ...Coordinate) Query {
	out, _ := q.edit(func(s *PointSequence) error {
		s.AppendAll(points)
		return nil
	})
	return out
}

// WithPointAt replaces the point at index i.
func (q Query) WithPointAt(i int, c Coordinate) (Query, error) {
	return q.edit(func(s *PointSequence) error {
		return s.ReplaceAt(i, c)
	})
}

// WithReplacedPoints discards the current points in favour of points.
func (q Query) WithReplacedPoints(points ...Coordinate) Query {
	out, _ := q.edit(func(s *PointSequence) error {
		s.Replace(points)
		return nil
	})
	return out
}

func (q Query) WithMainPoint(c Coordinate) Query {
	out := q.clone()
	out.main = &c
	return out
}

func (q Query) WithDiameter(d float64) Query {
	out := q.clone()
	out.diameter = d
	return out
}

func (q Query) WithUnits(units ...string) Query {
	out := q.clone()
	out.units = append([]string(nil), units...)
	return out
}

// Cleared returns an empty query.
func (q Query) Cleared() Query {
	return Query{}
}

func (q Query) Points() []Coordinate {
	return append([]Coordinate(nil), q.points...)
}

func (q Query) MainPoint() (Coordinate, bool) {
	if q.main == nil {
		return Coordinate{}, false
	}
	return *q.main, true
}

func (q Query) Diameter() float64 {
	return q.diameter
}

func (q Query) Units() []string {
	return append([]string(nil), q.units...)
}

func (q Query) requireMain() (Coordinate, error) {
	m, ok := q.MainPoint()
	if !ok {
		return Coordinate{}, ErrMissingMainPoint
	}
	return m, nil
}

// GetDistance measures the query's points. Units given here take precedence
// over the query's own units.
func (e *Engine) GetDistance(q Query, unitsOverride ...string) (DistanceResult, error) {
	units := q.units
	if len(unitsOverride) > 0 {
		units = unitsOverride
	}
	return e.Distance(q.points, units...)
}

func (e *Engine) GetCenter(q Query) (Coordinate, error) {
	return Centroid(q.points)
}

// IsInArea tests the query's first point against its main point and
// diameter.
func (e *Engine) IsInArea(q Query) (bool, error) {
	main, err := q.requireMain()
	if err != nil {
		return false, err
	}
	if len(q.points) == 0 {
		return false, ErrEmptyInput
	}
	return e.IsWithin(main, q.points[0], q.diameter)
}

func (e *Engine) GetClosest(q Query) (Stop, error) {
	main, err := q.requireMain()
	if err != nil {
		return Stop{}, err
	}
	return e.Closest(main, q.points)
}

func (e *Engine) GetFarthest(q Query) (Stop, error) {
	main, err := q.requireMain()
	if err != nil {
		return Stop{}, err
	}
	return e.Farthest(main, q.points)
}

func (e *Engine) GetOrderByNearestNeighbor(q Query) (Tour, error) {
	main, err := q.requireMain()
	if err != nil {
		return nil, err
	}
	return e.OrderByNearestNeighbor(main, q.points)
}

// AllFeatures returns the distance and center of the query's points.
func (e *Engine) AllFeatures(q Query) (Features, error) {
	return NewResultSet(e, q.points, q.units...).AllFeatures()
}
