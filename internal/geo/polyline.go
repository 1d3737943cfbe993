package geo

import (
	"errors"
	"fmt"

	"github.com/twpayne/go-polyline"
)

// DecodePolyline decodes a Google encoded polyline into a point sequence.
func DecodePolyline(encoded string) ([]Coordinate, error) {
	if encoded == "" {
		return nil, errors.New("encoded polyline string is empty")
	}

	coords, rest, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to decode polyline: %w", err)
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("failed to decode polyline: %d trailing bytes", len(rest))
	}

	points := make([]Coordinate, len(coords))
	for i, c := range coords {
		points[i] = Coordinate{Lat: c[0], Long: c[1]}
	}
	return points, nil
}

// EncodePolyline encodes points as a Google encoded polyline.
func EncodePolyline(points []Coordinate) string {
	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = []float64{p.Lat, p.Long}
	}
	return string(polyline.EncodeCoords(coords))
}
