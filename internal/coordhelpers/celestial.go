package coordhelpers

import (
	"fmt"

	"github.com/banshee-data/skylink/internal/astro"
)

var (
	galacticLabels   = []string{"l", "b"}
	equatorialLabels = []string{"ra", "dec"}
)

// Celestial links longitude/latitude pairs between two celestial frames.
type Celestial struct {
	*MultiLink
	display   string
	frameIn   astro.Frame
	frameOut  astro.Frame
	labelsIn  []string
	labelsOut []string
}

func newCelestial(tr *astro.Transformer, name, display string, in, out astro.Frame) *Celestial {
	convert := func(from, to astro.Frame) conversion {
		return func(args ...[]float64) ([][]float64, error) {
			lon, lat, err := tr.ConvertLonLat(from, to, args[0], args[1])
			if err != nil {
				return nil, err
			}
			return [][]float64{lon, lat}, nil
		}
	}
	return &Celestial{
		MultiLink: newMultiLink(name, 2, convert(in, out), convert(out, in)),
		display:   display,
		frameIn:   in,
		frameOut:  out,
		labelsIn:  labelsFor(in),
		labelsOut: labelsFor(out),
	}
}

func labelsFor(f astro.Frame) []string {
	if f == astro.Galactic {
		return galacticLabels
	}
	return equatorialLabels
}

// Display is the human-readable description.
func (c *Celestial) Display() string { return c.display }

// Category implements plugin.LinkHelper.
func (c *Celestial) Category() string { return Category }

// Labels returns suggested column labels for the input and output frames.
func (c *Celestial) Labels() (inputs, outputs []string) {
	return append([]string(nil), c.labelsIn...), append([]string(nil), c.labelsOut...)
}

// Frames returns the input and output frames.
func (c *Celestial) Frames() (in, out astro.Frame) { return c.frameIn, c.frameOut }

func (c *Celestial) String() string {
	return fmt.Sprintf("%s (%v <-> %v)", c.Name(), c.frameIn, c.frameOut)
}

// NewGalacticToFK5 links Galactic (l, b) with FK5 (ra, dec).
func NewGalacticToFK5(tr *astro.Transformer) *Celestial {
	return newCelestial(tr, "Galactic_to_FK5", "Celestial Coordinates: Galactic <-> FK5 (J2000)", astro.Galactic, astro.FK5)
}

// NewFK4ToFK5 links FK4 (B1950) with FK5 (J2000).
func NewFK4ToFK5(tr *astro.Transformer) *Celestial {
	return newCelestial(tr, "FK4_to_FK5", "Celestial Coordinates: FK4 (B1950) <-> FK5 (J2000)", astro.FK4, astro.FK5)
}

// NewICRSToFK5 links ICRS with FK5 (J2000).
func NewICRSToFK5(tr *astro.Transformer) *Celestial {
	return newCelestial(tr, "ICRS_to_FK5", "Celestial Coordinates: ICRS <-> FK5 (J2000)", astro.ICRS, astro.FK5)
}

// NewGalacticToFK4 links Galactic with FK4 (B1950).
func NewGalacticToFK4(tr *astro.Transformer) *Celestial {
	return newCelestial(tr, "Galactic_to_FK4", "Celestial Coordinates: Galactic <-> FK4 (B1950)", astro.Galactic, astro.FK4)
}

// NewICRSToFK4 links ICRS with FK4 (B1950).
func NewICRSToFK4(tr *astro.Transformer) *Celestial {
	return newCelestial(tr, "ICRS_to_FK4", "Celestial Coordinates: ICRS <-> FK4 (B1950)", astro.ICRS, astro.FK4)
}

// NewICRSToGalactic links ICRS with Galactic.
func NewICRSToGalactic(tr *astro.Transformer) *Celestial {
	return newCelestial(tr, "ICRS_to_Galactic", "Celestial Coordinates: ICRS <-> Galactic", astro.ICRS, astro.Galactic)
}
