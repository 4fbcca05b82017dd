package astro

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// galactocentricRoll0 aligns the final z axis with the Galactic north pole.
const galactocentricRoll0 = 58.5986320306

// GalactocentricParams positions the Galactic centre relative to the Sun.
// Angles are degrees, lengths kpc.
type GalactocentricParams struct {
	GalcenRA       float64 `json:"galcen_ra_deg"`
	GalcenDec      float64 `json:"galcen_dec_deg"`
	GalcenDistance float64 `json:"galcen_distance_kpc"`
	ZSun           float64 `json:"z_sun_kpc"`
	Roll           float64 `json:"roll_deg"`
}

// DefaultGalactocentric returns the pre-v4.0 astropy parameter set: Sgr A*
// position from Reid & Brunthaler 2004, 8.3 kpc and a 27 pc solar height.
func DefaultGalactocentric() GalactocentricParams {
	return GalactocentricParams{
		GalcenRA:       266.4051,
		GalcenDec:      -28.936175,
		GalcenDistance: 8.3,
		ZSun:           0.027,
		Roll:           0,
	}
}

// Validate checks the parameters describe a usable frame.
func (p GalactocentricParams) Validate() error {
	if !(p.GalcenDistance > 0) {
		return fmt.Errorf("galcen_distance must be positive, got %v", p.GalcenDistance)
	}
	if math.Abs(p.ZSun) >= p.GalcenDistance {
		return errors.New("z_sun must be smaller than galcen_distance")
	}
	if p.GalcenDec < -90 || p.GalcenDec > 90 {
		return fmt.Errorf("galcen_dec must be within [-90, 90], got %v", p.GalcenDec)
	}
	return nil
}

// icrsToGalactocentric returns the affine map x_gc = A·x_icrs + offset.
func (p GalactocentricParams) icrsToGalactocentric() (*mat.Dense, r3.Vec) {
	r := compose(
		rotationMatrix(galactocentricRoll0-p.Roll, axisX),
		rotationMatrix(-p.GalcenDec, axisY),
		rotationMatrix(p.GalcenRA, axisZ),
	)
	h := rotationMatrix(-math.Asin(p.ZSun/p.GalcenDistance)*rad2deg, axisY)
	offset := r3.Scale(-1, apply(h, r3.Vec{X: p.GalcenDistance}))
	return compose(h, r), offset
}
