package coordhelpers

import "github.com/banshee-data/skylink/internal/astro"

// Galactocentric links Galactocentric Cartesian (x, y, z in kpc) with
// Galactic (l, b in degrees, distance in kpc).
type Galactocentric struct {
	*MultiLink
}

// NewGalactocentricToGalactic builds the helper using tr's Galactocentric parameters.
func NewGalactocentricToGalactic(tr *astro.Transformer) *Galactocentric {
	forward := func(args ...[]float64) ([][]float64, error) {
		l, b, d, err := tr.FromCartesian(astro.Galactocentric, astro.Galactic, args[0], args[1], args[2])
		if err != nil {
			return nil, err
		}
		return [][]float64{l, b, d}, nil
	}
	backward := func(args ...[]float64) ([][]float64, error) {
		x, y, z, err := tr.ToCartesian(astro.Galactic, astro.Galactocentric, args[0], args[1], args[2])
		if err != nil {
			return nil, err
		}
		return [][]float64{x, y, z}, nil
	}
	return &Galactocentric{MultiLink: newMultiLink("GalactocentricToGalactic", 3, forward, backward)}
}

// Display implements plugin.LinkHelper.
func (*Galactocentric) Display() string { return "Galactocentric <-> Galactic" }

// Category implements plugin.LinkHelper.
func (*Galactocentric) Category() string { return Category }

// Labels implements plugin.LinkHelper.
func (*Galactocentric) Labels() (inputs, outputs []string) {
	return []string{"x (kpc)", "y (kpc)", "z (kpc)"}, []string{"l (deg)", "b (deg)", "Distance (kpc)"}
}
