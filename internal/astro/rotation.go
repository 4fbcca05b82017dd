package astro

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	axisX = 0
	axisY = 1
	axisZ = 2
)

// rotationMatrix returns the passive rotation of the coordinate axes by
// angleDeg about the given axis. For z this is [[c s 0] [-s c 0] [0 0 1]].
func rotationMatrix(angleDeg float64, axis int) *mat.Dense {
	s, c := math.Sincos(angleDeg * deg2rad)
	a1 := (axis + 1) % 3
	a2 := (axis + 2) % 3

	m := mat.NewDense(3, 3, nil)
	m.Set(axis, axis, 1)
	m.Set(a1, a1, c)
	m.Set(a1, a2, s)
	m.Set(a2, a1, -s)
	m.Set(a2, a2, c)
	return m
}

// compose multiplies the matrices left to right: compose(A, B, C) = A·B·C.
func compose(ms ...mat.Matrix) *mat.Dense {
	out := mat.DenseCopyOf(ms[0])
	for _, m := range ms[1:] {
		var p mat.Dense
		p.Mul(out, m)
		out = &p
	}
	return out
}

func transpose(m mat.Matrix) *mat.Dense {
	return mat.DenseCopyOf(m.T())
}

// apply returns m·v.
func apply(m mat.Matrix, v r3.Vec) r3.Vec {
	var out mat.VecDense
	out.MulVec(m, mat.NewVecDense(3, []float64{v.X, v.Y, v.Z}))
	return r3.Vec{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}
