package astro

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	jdJ2000 = 2451545.0
	// J2000 expressed on the UTC scale, used by the 1980 obliquity polynomial.
	jdJ2000UTC = jdJ2000 - 64.184/86400.0

	// Aberration constant in degrees.
	aberrationConstantDeg = 0.0056932

	// Number of fixed-point iterations when adding E-terms back.
	eTermsIterations = 10
)

// jdB1950 is the Julian date of the FK4 equinox and default obstime.
var jdB1950 = besselianEpochJD(1950)

// b1950ToJ2000 is the FK4 (no E-terms, B1950) to FK5 (J2000) matrix from
// Murray 1989, A&A 218, 325, eq. 28.
var b1950ToJ2000 = mat.NewDense(3, 3, []float64{
	0.9999256794956877, -0.0111814832204662, -0.0048590038153592,
	0.0111814832391717, 0.9999374848933135, -0.0000271625947142,
	0.0048590037723143, -0.0000271702937440, 0.9999881946023742,
})

// fk4Correction accounts for FK4 being a rotating system; scaled by 1e-6
// per Julian century of obstime away from 1950.0.
var fk4Correction = mat.NewDense(3, 3, []float64{
	-0.0026455262, -1.1539918689, +2.1111346190,
	+1.1540628161, -0.0129042997, +0.0236021478,
	-2.1112979048, -0.0056024448, +0.0102587734,
})

func besselianEpochJD(year float64) float64 {
	return 2415020.31352 + (year-1900.0)*365.242198781
}

func julianYear(jd float64) float64 {
	return 2000.0 + (jd-jdJ2000)/365.25
}

// fk4BMatrix returns the FK4NoETerms -> FK5 rotation for an FK4 obstime.
func fk4BMatrix(obstimeJD float64) *mat.Dense {
	t := (julianYear(obstimeJD) - 1950.0) / 100.0
	var corr mat.Dense
	corr.Scale(1e-6*t, fk4Correction)
	var b mat.Dense
	b.Add(b1950ToJ2000, &corr)
	return &b
}

// polyval evaluates a polynomial with coefficients in decreasing power order.
func polyval(coeffs []float64, t float64) float64 {
	var v float64
	for _, c := range coeffs {
		v = v*t + c
	}
	return v
}

func earthEccentricity(jd float64) float64 {
	t := (jd - jdB1950) / 36525.0
	return polyval([]float64{-0.000000126, -0.00004193, 0.01673011}, t)
}

// meanLonOfPerigee returns the mean longitude of perigee of the solar orbit in degrees.
func meanLonOfPerigee(jd float64) float64 {
	t := (jd - jdB1950) / 36525.0
	return polyval([]float64{0.012, 1.65, 6190.67, 1015489.951}, t) / 3600.0
}

// obliquity1980 returns the IAU 1980 mean obliquity of the ecliptic in degrees.
func obliquity1980(jd float64) float64 {
	t := (jd - jdJ2000UTC) / 36525.0
	return polyval([]float64{0.001813, -0.00059, -46.815, 84381.448}, t) / 3600.0
}

// eTerms returns the E-terms of aberration vector for an FK4 equinox.
func eTerms(equinoxJD float64) r3.Vec {
	k := aberrationConstantDeg * deg2rad
	e := earthEccentricity(equinoxJD)
	sinG, cosG := math.Sincos(meanLonOfPerigee(equinoxJD) * deg2rad)
	sinO, cosO := math.Sincos(obliquity1980(equinoxJD) * deg2rad)
	return r3.Vec{
		X: e * k * sinG,
		Y: -e * k * cosG * cosO,
		Z: -e * k * cosG * sinO,
	}
}

// removeETerms maps an FK4 position to FK4NoETerms, keeping its length.
func removeETerms(v, a r3.Vec) r3.Vec {
	d := r3.Norm(v)
	if d == 0 {
		return v
	}
	r := r3.Scale(1/d, v)
	r = r3.Add(r3.Sub(r, a), r3.Scale(r3.Dot(a, r), r))
	return r3.Scale(d/r3.Norm(r), r)
}

// addETerms is the iterative inverse of removeETerms.
func addETerms(v, a r3.Vec) r3.Vec {
	d := r3.Norm(v)
	if d == 0 {
		return v
	}
	r0 := r3.Scale(1/d, v)
	r := r0
	for i := 0; i < eTermsIterations; i++ {
		r = r3.Scale(1/(1+r3.Dot(a, r)), r3.Add(a, r0))
	}
	return r3.Scale(d/r3.Norm(r), r)
}
