package geo

import "math"

// Centroid returns the spherical center of points: the direction of the mean
// of their unit vectors, converted back to degrees.
func Centroid(points []Coordinate) (Coordinate, error) {
	if len(points) == 0 {
		return Coordinate{}, ErrEmptyInput
	}

	var x, y, z float64
	for _, p := range points {
		lat := toRadians(p.Lat)
		long := toRadians(p.Long)
		x += math.Cos(lat) * math.Cos(long)
		y += math.Cos(lat) * math.Sin(long)
		z += math.Sin(lat)
	}

	n := float64(len(points))
	x /= n
	y /= n
	z /= n

	long := math.Atan2(y, x)
	lat := math.Atan2(z, math.Sqrt(x*x+y*y))

	return Coordinate{Lat: toDegrees(lat), Long: toDegrees(long)}, nil
}
