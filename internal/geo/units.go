package geo

import (
	"fmt"
	"sort"
)

const (
	UnitMile = "mile"
	UnitKm   = "km"
)

// UnitTable maps a unit symbol to its size relative to one statute mile.
type UnitTable map[string]float64

// DefaultUnits returns a fresh copy of the built-in unit table.
func DefaultUnits() UnitTable {
	return UnitTable{
		UnitMile: 1,
		UnitKm:   1.609344,
		"m":      1609.344,
		"cm":     160934.4,
		"mm":     1609344,
	}
}

// Clone returns a copy that can be handed out without sharing the map.
func (u UnitTable) Clone() UnitTable {
	out := make(UnitTable, len(u))
	for k, v := range u {
		out[k] = v
	}
	return out
}

// Convert scales a statute-mile value into unit.
func (u UnitTable) Convert(miles float64, unit string) (float64, error) {
	factor, ok := u[unit]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
	return miles * factor, nil
}

// Require checks that every symbol in units exists in the table.
func (u UnitTable) Require(units ...string) error {
	for _, unit := range units {
		if _, ok := u[unit]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
		}
	}
	return nil
}

// Validate checks a table supplied from configuration. Factors must be
// positive, and mile and km must be present because the containment, tour
// and closest/farthest operations always measure in km.
func (u UnitTable) Validate() error {
	if len(u) == 0 {
		return fmt.Errorf("unit table is empty")
	}
	for unit, factor := range u {
		if unit == "" {
			return fmt.Errorf("unit table contains an empty symbol")
		}
		if !(factor > 0) {
			return fmt.Errorf("unit %q has non-positive factor %v", unit, factor)
		}
	}
	return u.Require(UnitMile, UnitKm)
}

// Symbols returns the unit symbols in sorted order.
func (u UnitTable) Symbols() []string {
	out := make([]string, 0, len(u))
	for k := range u {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
