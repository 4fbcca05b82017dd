package astro

import "gonum.org/v1/gonum/mat"

// Galactic pole and longitude zero point. The B1950 values are the IAU
// definition in FK4NoETerms; the J2000 values are the FK5 equivalents that
// keep FK5 -> Galactic consistent with FK5 -> FK4 -> Galactic.
const (
	ngpRAB1950  = 192.25
	ngpDecB1950 = 27.4
	lon0B1950   = 123.0

	ngpRAJ2000  = 192.8594812065348
	ngpDecJ2000 = 27.12825118085622
	lon0J2000   = 122.9319185680026
)

// Frame bias of FK5 J2000 relative to ICRS (USNO circular 179), degrees.
const (
	biasEta0 = -19.9 / 3600000.0
	biasXi0  = 9.1 / 3600000.0
	biasDA0  = -22.9 / 3600000.0
)

var (
	fk5ToGalactic    = poleRotation(ngpRAJ2000, ngpDecJ2000, lon0J2000)
	fk4NoEToGalactic = poleRotation(ngpRAB1950, ngpDecB1950, lon0B1950)
	icrsToFK5        = compose(
		rotationMatrix(-biasEta0, axisX),
		rotationMatrix(biasXi0, axisY),
		rotationMatrix(biasDA0, axisZ),
	)
)

// poleRotation builds the equatorial -> Galactic rotation from the pole
// position and the longitude of the equatorial north pole.
func poleRotation(raPole, decPole, lon0 float64) *mat.Dense {
	return compose(
		rotationMatrix(180-lon0, axisZ),
		rotationMatrix(90-decPole, axisY),
		rotationMatrix(raPole, axisZ),
	)
}
