package geo

import "fmt"

// Coordinate is a latitude/longitude pair in degrees.
//
// Values are not range checked. Out-of-range input flows through the
// trigonometry unchanged; use IsValidLatLon when a caller wants to warn.
type Coordinate struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

// Stop is a coordinate tagged with the key it was submitted under.
type Stop struct {
	Key        int        `json:"key"`
	Coordinate Coordinate `json:"point"`
}

// PointSequence is an ordered list of coordinates. Insertion order defines
// adjacency for distance labels. It is owned by a single caller and is not
// safe for concurrent use.
type PointSequence struct {
	points []Coordinate
}

// NewPointSequence returns a sequence holding a copy of points.
func NewPointSequence(points ...Coordinate) *PointSequence {
	s := &PointSequence{}
	s.AppendAll(points)
	return s
}

func (s *PointSequence) Append(c Coordinate) {
	s.points = append(s.points, c)
}

func (s *PointSequence) AppendAll(points []Coordinate) {
	s.points = append(s.points, points...)
}

// ReplaceAt overwrites the point at index i.
func (s *PointSequence) ReplaceAt(i int, c Coordinate) error {
	if i < 0 || i >= len(s.points) {
		return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, len(s.points))
	}
	s.points[i] = c
	return nil
}

// Replace swaps the whole sequence for a copy of points.
func (s *PointSequence) Replace(points []Coordinate) {
	s.points = append([]Coordinate(nil), points...)
}

func (s *PointSequence) Clear() {
	s.points = nil
}

func (s *PointSequence) Len() int {
	return len(s.points)
}

// At returns the point at index i. It panics when i is out of range, like a
// slice index.
func (s *PointSequence) At(i int) Coordinate {
	return s.points[i]
}

// Points returns a copy of the sequence contents.
func (s *PointSequence) Points() []Coordinate {
	return append([]Coordinate(nil), s.points...)
}
