package geo

import (
	"fmt"
	"math"
)

const (
	// nauticalMilesPerDegree and statuteMilesPerNautical convert a central
	// angle in degrees to statute miles.
	nauticalMilesPerDegree  = 60
	statuteMilesPerNautical = 1.1515
)

// DistanceResult maps a pair label such as "1-2" to a value per unit.
type DistanceResult map[string]map[string]float64

// Engine runs the distance based computations against one unit table and
// label prefix. It holds no per-request state and is safe to share.
type Engine struct {
	units     UnitTable
	keyPrefix string
}

// NewEngine returns an engine using units, or DefaultUnits when units is
// empty. Every distance label is prefixed with keyPrefix.
func NewEngine(units UnitTable, keyPrefix string) *Engine {
	if len(units) == 0 {
		units = DefaultUnits()
	}
	return &Engine{
		units:     units.Clone(),
		keyPrefix: keyPrefix,
	}
}

// Units returns a copy of the engine's unit table.
func (e *Engine) Units() UnitTable {
	return e.units.Clone()
}

// StatuteMiles returns the great-circle distance between a and b using the
// spherical law of cosines.
func StatuteMiles(a, b Coordinate) float64 {
	if a == b {
		return 0
	}

	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	sinTerm := math.Sin(lat1) * math.Sin(lat2)
	cosTerm := math.Cos(lat1) * math.Cos(lat2)
	deltaLong := toRadians(a.Long - b.Long)

	// Rounding can push near-identical points just past 1.
	arg := sinTerm + cosTerm*math.Cos(deltaLong)
	if arg > 1 {
		arg = 1
	} else if arg < -1 {
		arg = -1
	}

	degrees := toDegrees(math.Acos(arg))
	return degrees * nauticalMilesPerDegree * statuteMilesPerNautical
}

// Between returns the distance from a to b in unit.
func (e *Engine) Between(a, b Coordinate, unit string) (float64, error) {
	return e.units.Convert(StatuteMiles(a, b), unit)
}

// Distance measures every adjacent pair of points in each requested unit,
// defaulting to miles. Fewer than two points yield an empty result.
func (e *Engine) Distance(points []Coordinate, units ...string) (DistanceResult, error) {
	if len(units) == 0 {
		units = []string{UnitMile}
	}
	if err := e.units.Require(units...); err != nil {
		return nil, err
	}

	result := make(DistanceResult)
	for i := 0; i+1 < len(points); i++ {
		miles := StatuteMiles(points[i], points[i+1])

		values := make(map[string]float64, len(units))
		for _, unit := range units {
			values[unit] = miles * e.units[unit]
		}
		result[e.pairLabel(i)] = values
	}
	return result, nil
}

func (e *Engine) pairLabel(i int) string {
	return fmt.Sprintf("%s%d-%d", e.keyPrefix, i+1, i+2)
}

// IsWithin reports whether candidate lies farther than diameter kilometres
// from main. The strict comparison means a distance equal to diameter is
// false.
func (e *Engine) IsWithin(main, candidate Coordinate, diameter float64) (bool, error) {
	km, err := e.Between(main, candidate, UnitKm)
	if err != nil {
		return false, err
	}
	return km > diameter, nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
