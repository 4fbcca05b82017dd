package astro

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSphericalToCartesian(t *testing.T) {
	tests := []struct {
		name         string
		lon, lat, d  float64
		wantX, wantY float64
		wantZ        float64
	}{
		{"origin direction", 0, 0, 1, 1, 0, 0},
		{"ninety east", 90, 0, 2, 0, 2, 0},
		{"north pole", 0, 90, 3, 0, 0, 3},
		{"south pole", 123, -90, 1, 0, 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := SphericalToCartesian(tt.lon, tt.lat, tt.d)
			if !scalar.EqualWithinAbs(v.X, tt.wantX, 1e-12) ||
				!scalar.EqualWithinAbs(v.Y, tt.wantY, 1e-12) ||
				!scalar.EqualWithinAbs(v.Z, tt.wantZ, 1e-12) {
				t.Errorf("got %+v, want (%v, %v, %v)", v, tt.wantX, tt.wantY, tt.wantZ)
			}
		})
	}
}

func TestCartesianToSpherical_WrapsLongitude(t *testing.T) {
	lon, lat, d := CartesianToSpherical(r3.Vec{X: 1, Y: -1, Z: 0})
	if !scalar.EqualWithinAbs(lon, 315, 1e-12) {
		t.Errorf("lon = %v, want 315", lon)
	}
	if lat != 0 {
		t.Errorf("lat = %v, want 0", lat)
	}
	if !scalar.EqualWithinAbs(d, math.Sqrt2, 1e-12) {
		t.Errorf("distance = %v, want sqrt(2)", d)
	}
}

func TestWrapDegrees(t *testing.T) {
	for in, want := range map[float64]float64{-1: 359, 360: 0, 725: 5, 0: 0, -720: 0} {
		if got := wrapDegrees(in); !scalar.EqualWithinAbs(got, want, 1e-12) {
			t.Errorf("wrapDegrees(%v) = %v, want %v", in, got, want)
		}
	}
}
