package astro

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	deg2rad = math.Pi / 180.0
	rad2deg = 180.0 / math.Pi
)

// SphericalToCartesian converts longitude and latitude (degrees) and a
// distance into a Cartesian vector. X points at (0, 0), Z at the pole.
func SphericalToCartesian(lonDeg, latDeg, distance float64) r3.Vec {
	sinLon, cosLon := math.Sincos(lonDeg * deg2rad)
	sinLat, cosLat := math.Sincos(latDeg * deg2rad)
	return r3.Vec{
		X: distance * cosLat * cosLon,
		Y: distance * cosLat * sinLon,
		Z: distance * sinLat,
	}
}

// CartesianToSpherical is the inverse of SphericalToCartesian. Longitude is
// wrapped to [0, 360).
func CartesianToSpherical(v r3.Vec) (lonDeg, latDeg, distance float64) {
	distance = r3.Norm(v)
	lonDeg = wrapDegrees(math.Atan2(v.Y, v.X) * rad2deg)
	latDeg = math.Atan2(v.Z, math.Hypot(v.X, v.Y)) * rad2deg
	return lonDeg, latDeg, distance
}

func wrapDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a -= 360
	}
	return a
}
