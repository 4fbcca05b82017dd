// Package astro converts coordinates between astronomical reference frames.
//
// Frames are nodes of a small directed graph whose edges are elementary
// steps (rotations, frame bias, E-terms of aberration, the Galactocentric
// affine map). A conversion walks the shortest path between two frames, so
// FK4 to Galactic goes through FK4NoETerms while ICRS to FK4 goes through
// FK5 first. Constants and step definitions follow the conventions used by
// astropy, which makes results agree with it to better than 1e-8 degrees.
package astro

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownFrame is returned for a frame name or value that is not supported.
	ErrUnknownFrame = errors.New("unknown frame")
	// ErrNoPath is returned when the frame graph has no route between two frames.
	ErrNoPath = errors.New("no transform path")
	// ErrShapeMismatch is returned when coordinate arrays have different lengths.
	ErrShapeMismatch = errors.New("coordinate arrays differ in length")
	// ErrDistanceRequired is returned when a unit-sphere conversion touches a
	// frame that needs a distance (Galactocentric).
	ErrDistanceRequired = errors.New("frame requires distance")
)

// Frame is a celestial or spatial reference frame.
type Frame int64

const (
	ICRS Frame = iota + 1
	FK5
	FK4
	FK4NoETerms
	Galactic
	Galactocentric
)

var frameNames = map[Frame]string{
	ICRS:           "icrs",
	FK5:            "fk5",
	FK4:            "fk4",
	FK4NoETerms:    "fk4noeterms",
	Galactic:       "galactic",
	Galactocentric: "galactocentric",
}

// Frames returns every supported frame in declaration order.
func Frames() []Frame {
	return []Frame{ICRS, FK5, FK4, FK4NoETerms, Galactic, Galactocentric}
}

// ID implements graph.Node.
func (f Frame) ID() int64 { return int64(f) }

func (f Frame) String() string {
	if name, ok := frameNames[f]; ok {
		return name
	}
	return fmt.Sprintf("frame(%d)", int64(f))
}

// Valid reports whether f is one of the supported frames.
func (f Frame) Valid() bool {
	_, ok := frameNames[f]
	return ok
}

// Cartesian reports whether points in f are only meaningful with a distance.
func (f Frame) Cartesian() bool { return f == Galactocentric }

// ParseFrame resolves a frame name case-insensitively.
func ParseFrame(name string) (Frame, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for f, n := range frameNames {
		if n == key {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFrame, name)
}
