package geo

import "math"

// Tour is a visiting order. The first stop is always the main point with
// key 0; the remaining keys are 1-based insertion positions.
type Tour []Stop

// Keys returns the stop keys in visiting order.
func (t Tour) Keys() []int {
	keys := make([]int, len(t))
	for i, s := range t {
		keys[i] = s.Key
	}
	return keys
}

// OrderByNearestNeighbor builds an open path from main by repeatedly moving
// to the closest unvisited point. Ties go to the earliest submitted point.
func (e *Engine) OrderByNearestNeighbor(main Coordinate, points []Coordinate) (Tour, error) {
	remaining := make([]Stop, len(points))
	for i, p := range points {
		remaining[i] = Stop{Key: i + 1, Coordinate: p}
	}

	tour := make(Tour, 0, len(points)+1)
	tour = append(tour, Stop{Key: 0, Coordinate: main})

	for len(remaining) > 0 {
		last := tour[len(tour)-1].Coordinate

		next := 0
		if len(remaining) > 1 {
			// Configured km factors are unbounded, so no finite starting
			// value is guaranteed to exceed every distance.
			shortest := math.Inf(1)
			for i, candidate := range remaining {
				km, err := e.Between(last, candidate.Coordinate, UnitKm)
				if err != nil {
					return nil, err
				}
				if km < shortest {
					shortest = km
					next = i
				}
			}
		}

		tour = append(tour, remaining[next])
		remaining = append(remaining[:next], remaining[next+1:]...)
	}
	return tour, nil
}

// Closest returns the point nearest to main, keyed by its 0-based position.
// The first of several equally near points wins.
func (e *Engine) Closest(main Coordinate, points []Coordinate) (Stop, error) {
	return e.pick(main, points, func(candidate, best float64) bool { return candidate < best })
}

// Farthest returns the point most distant from main, keyed by its 0-based
// position. The first of several equally distant points wins.
func (e *Engine) Farthest(main Coordinate, points []Coordinate) (Stop, error) {
	return e.pick(main, points, func(candidate, best float64) bool { return candidate > best })
}

func (e *Engine) pick(main Coordinate, points []Coordinate, better func(candidate, best float64) bool) (Stop, error) {
	if len(points) == 0 {
		return Stop{}, ErrEmptyInput
	}

	best := -1
	var bestKm float64
	for i, p := range points {
		km, err := e.Between(main, p, UnitKm)
		if err != nil {
			return Stop{}, err
		}
		if best < 0 || better(km, bestKm) {
			best = i
			bestKm = km
		}
	}
	return Stop{Key: best, Coordinate: points[best]}, nil
}
