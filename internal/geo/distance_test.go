package geo

import (
	"errors"
	"testing"

	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	jeddah = Coordinate{Lat: 22, Long: 37}
	tabuk  = Coordinate{Lat: 33, Long: 40}
)

func TestDistance_KnownPair(t *testing.T) {
	engine := NewEngine(nil, "")

	result, err := engine.Distance([]Coordinate{jeddah, tabuk}, "km")
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.InDelta(t, 1258.1691302281708, result["1-2"]["km"], 1e-6)
}

func TestDistance_DefaultsToMiles(t *testing.T) {
	engine := NewEngine(nil, "")

	result, err := engine.Distance([]Coordinate{jeddah, tabuk})
	require.NoError(t, err)

	assert.Equal(t, []string{"mile"}, keysOf(result["1-2"]))
	assert.InDelta(t, 1258.1691302281708/1.609344, result["1-2"]["mile"], 1e-6)
}

func TestDistance_Symmetry(t *testing.T) {
	pairs := [][2]Coordinate{
		{jeddah, tabuk},
		{{Lat: 40.9171863, Long: 14.1632638}, {Lat: 40.92945, Long: 14.44301}},
		{{Lat: -33.8688, Long: 151.2093}, {Lat: 51.5074, Long: -0.1278}},
		{{Lat: 89.9, Long: 0}, {Lat: -89.9, Long: 180}},
	}

	for _, p := range pairs {
		ab := StatuteMiles(p[0], p[1])
		ba := StatuteMiles(p[1], p[0])
		assert.InEpsilon(t, ab, ba, 1e-9, "distance should not depend on direction for %v", p)
	}
}

func TestDistance_IdentityIsZero(t *testing.T) {
	points := []Coordinate{
		jeddah,
		{Lat: 40.9171863, Long: 14.1632638},
		{Lat: 47.6062, Long: -122.3321},
		{Lat: 90, Long: 0},
		{Lat: -45.123456789, Long: 179.999999},
	}

	for _, p := range points {
		assert.Equal(t, 0.0, StatuteMiles(p, p), "distance from %v to itself", p)
	}
}

func TestDistance_NearIdenticalPointsStayFinite(t *testing.T) {
	a := Coordinate{Lat: 47.6062, Long: -122.3321}
	b := Coordinate{Lat: 47.6062, Long: -122.33210000000001}

	d := StatuteMiles(a, b)
	assert.False(t, d != d, "distance must not be NaN")
	assert.GreaterOrEqual(t, d, 0.0)
	assert.Less(t, d, 0.001)
}

func TestDistance_UnitScaling(t *testing.T) {
	engine := NewEngine(nil, "")
	points := []Coordinate{jeddah, tabuk}

	miles, err := engine.Distance(points, "mile")
	require.NoError(t, err)

	for unit, factor := range DefaultUnits() {
		t.Run(unit, func(t *testing.T) {
			scaled, err := engine.Distance(points, unit)
			require.NoError(t, err)
			assert.InEpsilon(t, miles["1-2"]["mile"]*factor, scaled["1-2"][unit], 1e-12)
		})
	}
}

func TestDistance_Labels(t *testing.T) {
	points := []Coordinate{jeddah, tabuk, {Lat: 24.7136, Long: 46.6753}, {Lat: 21.4858, Long: 39.1925}}

	t.Run("no prefix", func(t *testing.T) {
		result, err := NewEngine(nil, "").Distance(points, "km", "m")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"1-2", "2-3", "3-4"}, keysOf(result))
		for _, values := range result {
			assert.ElementsMatch(t, []string{"km", "m"}, keysOf(values))
		}
	})

	t.Run("with prefix", func(t *testing.T) {
		result, err := NewEngine(nil, "stop_").Distance(points[:2])
		require.NoError(t, err)
		assert.Equal(t, []string{"stop_1-2"}, keysOf(result))
	})
}

func TestDistance_FewerThanTwoPoints(t *testing.T) {
	engine := NewEngine(nil, "")

	for _, points := range [][]Coordinate{nil, {jeddah}} {
		result, err := engine.Distance(points, "km")
		require.NoError(t, err)
		assert.Empty(t, result)
	}
}

func TestDistance_UnknownUnit(t *testing.T) {
	engine := NewEngine(nil, "")

	result, err := engine.Distance([]Coordinate{jeddah, tabuk}, "km", "furlong")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownUnit))
	assert.Contains(t, err.Error(), "furlong")
	assert.Nil(t, result, "no partial result on failure")

	_, err = engine.Between(jeddah, tabuk, "league")
	assert.ErrorIs(t, err, ErrUnknownUnit)
}

func TestDistance_CustomUnitTable(t *testing.T) {
	units := UnitTable{"mile": 1, "km": 1.609344, "yd": 1760}
	engine := NewEngine(units, "")

	result, err := engine.Distance([]Coordinate{jeddah, tabuk}, "yd")
	require.NoError(t, err)
	assert.InDelta(t, 1258.1691302281708/1.609344*1760, result["1-2"]["yd"], 1e-3)

	_, err = engine.Distance([]Coordinate{jeddah, tabuk}, "cm")
	assert.ErrorIs(t, err, ErrUnknownUnit, "default units are replaced, not merged")

	units["yd"] = 0
	assert.Equal(t, 1760.0, engine.Units()["yd"], "engine keeps its own copy of the table")
}

func TestDistance_AgreesWithS2(t *testing.T) {
	// The law of cosines with 60 * 1.1515 miles per degree is a slightly
	// different sphere than s2's, so only rough agreement is expected.
	const earthRadiusKm = 6371.0
	a := s2.LatLngFromDegrees(jeddah.Lat, jeddah.Long)
	b := s2.LatLngFromDegrees(tabuk.Lat, tabuk.Long)
	expected := a.Distance(b).Radians() * earthRadiusKm

	km, err := NewEngine(nil, "").Between(jeddah, tabuk, "km")
	require.NoError(t, err)
	assert.InEpsilon(t, expected, km, 0.01)
}

func TestIsWithin(t *testing.T) {
	engine := NewEngine(nil, "")

	tests := []struct {
		name     string
		diameter float64
		want     bool
	}{
		{"smaller diameter", 1000, true},
		{"larger diameter", 2000, false},
		{"zero diameter", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.IsWithin(jeddah, tabuk, tt.diameter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("boundary is exclusive", func(t *testing.T) {
		km, err := engine.Between(jeddah, tabuk, "km")
		require.NoError(t, err)

		got, err := engine.IsWithin(jeddah, tabuk, km)
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("same point", func(t *testing.T) {
		got, err := engine.IsWithin(jeddah, jeddah, 0)
		require.NoError(t, err)
		assert.False(t, got)
	})
}

func TestUnitTable_Validate(t *testing.T) {
	tests := []struct {
		name    string
		units   UnitTable
		wantErr bool
	}{
		{"defaults", DefaultUnits(), false},
		{"minimal", UnitTable{"mile": 1, "km": 1.609344}, false},
		{"empty", UnitTable{}, true},
		{"missing km", UnitTable{"mile": 1, "m": 1609.344}, true},
		{"missing mile", UnitTable{"km": 1.609344}, true},
		{"zero factor", UnitTable{"mile": 1, "km": 0}, true},
		{"negative factor", UnitTable{"mile": 1, "km": 1.609344, "m": -1}, true},
		{"empty symbol", UnitTable{"mile": 1, "km": 1.609344, "": 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.units.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultUnits_AreConsistent(t *testing.T) {
	units := DefaultUnits()

	assert.InEpsilon(t, units["km"]*1000, units["m"], 1e-12)
	assert.InEpsilon(t, units["m"]*100, units["cm"], 1e-12)
	assert.InEpsilon(t, units["m"]*1000, units["mm"], 1e-12)
	assert.Equal(t, []string{"cm", "km", "m", "mile", "mm"}, units.Symbols())

	units["km"] = 5
	assert.Equal(t, 1.609344, DefaultUnits()["km"], "each call returns a fresh table")
}

func TestCentroid(t *testing.T) {
	t.Run("known pair", func(t *testing.T) {
		c, err := Centroid([]Coordinate{jeddah, tabuk})
		require.NoError(t, err)
		assert.InDelta(t, 27.508023496931166, c.Lat, 1e-6)
		assert.InDelta(t, 38.424795502212234, c.Long, 1e-6)
	})

	t.Run("single point", func(t *testing.T) {
		c, err := Centroid([]Coordinate{tabuk})
		require.NoError(t, err)
		assert.InDelta(t, tabuk.Lat, c.Lat, 1e-9)
		assert.InDelta(t, tabuk.Long, c.Long, 1e-9)
	})

	t.Run("antimeridian", func(t *testing.T) {
		c, err := Centroid([]Coordinate{{Lat: 0, Long: 179}, {Lat: 0, Long: -179}})
		require.NoError(t, err)
		assert.InDelta(t, 0, c.Lat, 1e-9)
		assert.InDelta(t, 180, abs(c.Long), 1e-9, "average of unit vectors does not collapse to 0")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Centroid(nil)
		assert.ErrorIs(t, err, ErrEmptyInput)
	})
}

func keysOf[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
