package astro

import (
	"fmt"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

type step func(r3.Vec) r3.Vec

type edgeKey struct{ from, to Frame }

// Transformer converts positions between frames. It is immutable after
// construction and safe for concurrent use.
type Transformer struct {
	params GalactocentricParams
	graph  *simple.DirectedGraph
	steps  map[edgeKey]step
}

// NewTransformer builds the frame graph for the given Galactocentric parameters.
func NewTransformer(params GalactocentricParams) (*Transformer, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid galactocentric parameters: %w", err)
	}

	t := &Transformer{
		params: params,
		graph:  simple.NewDirectedGraph(),
		steps:  make(map[edgeKey]step),
	}
	for _, f := range Frames() {
		t.graph.AddNode(f)
	}

	t.addMatrixPair(ICRS, FK5, icrsToFK5)
	t.addMatrixPair(FK5, Galactic, fk5ToGalactic)
	t.addMatrixPair(FK4NoETerms, Galactic, fk4NoEToGalactic)
	t.addMatrixPair(FK4NoETerms, FK5, fk4BMatrix(jdB1950))

	a := eTerms(jdB1950)
	t.addPair(FK4, FK4NoETerms,
		func(v r3.Vec) r3.Vec { return removeETerms(v, a) },
		func(v r3.Vec) r3.Vec { return addETerms(v, a) },
	)

	rot, offset := params.icrsToGalactocentric()
	inv := transpose(rot)
	t.addPair(ICRS, Galactocentric,
		func(v r3.Vec) r3.Vec { return r3.Add(apply(rot, v), offset) },
		func(v r3.Vec) r3.Vec { return apply(inv, r3.Sub(v, offset)) },
	)
	return t, nil
}

// MustNewTransformer is NewTransformer for parameters known to be valid.
func MustNewTransformer(params GalactocentricParams) *Transformer {
	t, err := NewTransformer(params)
	if err != nil {
		panic(err)
	}
	return t
}

// Params returns the Galactocentric parameters the transformer was built with.
func (t *Transformer) Params() GalactocentricParams { return t.params }

func (t *Transformer) addMatrixPair(a, b Frame, m *mat.Dense) {
	inv := transpose(m)
	t.addPair(a, b,
		func(v r3.Vec) r3.Vec { return apply(m, v) },
		func(v r3.Vec) r3.Vec { return apply(inv, v) },
	)
}

func (t *Transformer) addPair(a, b Frame, forward, backward step) {
	t.graph.SetEdge(t.graph.NewEdge(a, b))
	t.graph.SetEdge(t.graph.NewEdge(b, a))
	t.steps[edgeKey{a, b}] = forward
	t.steps[edgeKey{b, a}] = backward
}

// Path returns the frames visited when converting from -> to, both ends included.
func (t *Transformer) Path(from, to Frame) ([]Frame, error) {
	if !from.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFrame, from)
	}
	if !to.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFrame, to)
	}
	if from == to {
		return []Frame{from}, nil
	}

	nodes, _ := path.DijkstraFrom(from, t.graph).To(to.ID())
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %v -> %v", ErrNoPath, from, to)
	}
	frames := make([]Frame, len(nodes))
	for i, n := range nodes {
		frames[i] = Frame(n.ID())
	}
	return frames, nil
}

func (t *Transformer) route(from, to Frame) ([]step, error) {
	frames, err := t.Path(from, to)
	if err != nil {
		return nil, err
	}
	steps := make([]step, 0, len(frames)-1)
	for i := 1; i < len(frames); i++ {
		s, ok := t.steps[edgeKey{frames[i-1], frames[i]}]
		if !ok {
			return nil, fmt.Errorf("%w: missing step %v -> %v", ErrNoPath, frames[i-1], frames[i])
		}
		steps = append(steps, s)
	}
	return steps, nil
}

func runSteps(steps []step, v r3.Vec) r3.Vec {
	for _, s := range steps {
		v = s(v)
	}
	return v
}

// Convert maps a single Cartesian position from one frame to another.
func (t *Transformer) Convert(from, to Frame, v r3.Vec) (r3.Vec, error) {
	steps, err := t.route(from, to)
	if err != nil {
		return r3.Vec{}, err
	}
	return runSteps(steps, v), nil
}

// ConvertLonLat converts directions on the unit sphere. Inputs and outputs
// are degrees; output longitudes are in [0, 360).
func (t *Transformer) ConvertLonLat(from, to Frame, lon, lat []float64) (lonOut, latOut []float64, err error) {
	if from.Cartesian() || to.Cartesian() {
		return nil, nil, fmt.Errorf("%w: %v -> %v", ErrDistanceRequired, from, to)
	}
	if err := checkShapes(lon, lat); err != nil {
		return nil, nil, err
	}
	steps, err := t.route(from, to)
	if err != nil {
		return nil, nil, err
	}

	lonOut = make([]float64, len(lon))
	latOut = make([]float64, len(lat))
	for i := range lon {
		v := runSteps(steps, SphericalToCartesian(lon[i], lat[i], 1))
		lonOut[i], latOut[i], _ = CartesianToSpherical(v)
	}
	return lonOut, latOut, nil
}

// ConvertSpherical converts spherical positions with distance.
func (t *Transformer) ConvertSpherical(from, to Frame, lon, lat, dist []float64) (lonOut, latOut, distOut []float64, err error) {
	if err := checkShapes(lon, lat, dist); err != nil {
		return nil, nil, nil, err
	}
	steps, err := t.route(from, to)
	if err != nil {
		return nil, nil, nil, err
	}

	lonOut = make([]float64, len(lon))
	latOut = make([]float64, len(lon))
	distOut = make([]float64, len(lon))
	for i := range lon {
		v := runSteps(steps, SphericalToCartesian(lon[i], lat[i], dist[i]))
		lonOut[i], latOut[i], distOut[i] = CartesianToSpherical(v)
	}
	return lonOut, latOut, distOut, nil
}

// FromCartesian converts Cartesian positions in from into spherical
// positions in to.
func (t *Transformer) FromCartesian(from, to Frame, x, y, z []float64) (lon, lat, dist []float64, err error) {
	if err := checkShapes(x, y, z); err != nil {
		return nil, nil, nil, err
	}
	steps, err := t.route(from, to)
	if err != nil {
		return nil, nil, nil, err
	}

	lon = make([]float64, len(x))
	lat = make([]float64, len(x))
	dist = make([]float64, len(x))
	for i := range x {
		v := runSteps(steps, r3.Vec{X: x[i], Y: y[i], Z: z[i]})
		lon[i], lat[i], dist[i] = CartesianToSpherical(v)
	}
	return lon, lat, dist, nil
}

// ToCartesian converts spherical positions in from into Cartesian positions in to.
func (t *Transformer) ToCartesian(from, to Frame, lon, lat, dist []float64) (x, y, z []float64, err error) {
	if err := checkShapes(lon, lat, dist); err != nil {
		return nil, nil, nil, err
	}
	steps, err := t.route(from, to)
	if err != nil {
		return nil, nil, nil, err
	}

	x = make([]float64, len(lon))
	y = make([]float64, len(lon))
	z = make([]float64, len(lon))
	for i := range lon {
		v := runSteps(steps, SphericalToCartesian(lon[i], lat[i], dist[i]))
		x[i], y[i], z[i] = v.X, v.Y, v.Z
	}
	return x, y, z, nil
}

func checkShapes(arrays ...[]float64) error {
	for i := 1; i < len(arrays); i++ {
		if len(arrays[i]) != len(arrays[0]) {
			return fmt.Errorf("%w: %d != %d", ErrShapeMismatch, len(arrays[i]), len(arrays[0]))
		}
	}
	return nil
}
