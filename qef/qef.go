// Package qef implements quadratic error function minimizers used to place
// Dual Contouring vertices. Given surface samples as position and normal
// pairs, a solver finds the point closest in the least squares sense to all
// planes through the positions perpendicular to the normals.
package qef

import (
	"math"

	"github.com/soypat/glgl/math/ms3"
	"gonum.org/v1/gonum/mat"
)

// Solver places a point minimizing the squared distance to the planes defined
// by position and normal pairs. pos and normals are of equal length and
// contain at least one element.
type Solver interface {
	Solve(pos, normals []ms3.Vec) ms3.Vec
}

// DefaultTolerance is the eigenvalue truncation threshold of SVD when its
// Tolerance is zero.
const DefaultTolerance = 0.1

var (
	_ Solver = SVD{}
	_ Solver = Regularized{}
	_ Solver = MassPoint{}
)

// SVD solves the QEF relative to the mass point of the positions using the
// pseudo-inverse of AᵀA. Eigenvalues with magnitude below Tolerance (or above
// its inverse) are discarded, which keeps under-constrained directions such as
// those of flat or edge-like features at the mass point.
type SVD struct {
	Tolerance float64
}

// Solve implements Solver.
func (s SVD) Solve(pos, normals []ms3.Vec) ms3.Vec {
	tol := s.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}
	mp := massPoint(pos)
	ata, atb := normalEquations(pos, normals, mp)
	var eig mat.EigenSym
	if !eig.Factorize(ata, true) {
		return mp
	}
	vals := eig.Values(nil)
	var v mat.Dense
	eig.VectorsTo(&v)

	// x = V · diag(pinv(λ)) · Vᵀ · Aᵀb
	var vtb mat.VecDense
	vtb.MulVec(v.T(), atb)
	for i, lambda := range vals {
		vtb.SetVec(i, vtb.AtVec(i)*pinv(lambda, tol))
	}
	var x mat.VecDense
	x.MulVec(&v, &vtb)
	return ms3.Add(mp, ms3.Vec{X: float32(x.AtVec(0)), Y: float32(x.AtVec(1)), Z: float32(x.AtVec(2))})
}

func pinv(x, tol float64) float64 {
	abs := math.Abs(x)
	if abs < tol || 1/abs < tol {
		return 0
	}
	return 1 / x
}

// Regularized solves the QEF by the normal equations biased toward the mass
// point: (AᵀA + λI)x = Aᵀb + λ·masspoint. Larger Lambda pulls vertices closer
// to the mass point. A zero Lambda uses 0.1.
type Regularized struct {
	Lambda float64
}

// Solve implements Solver.
func (r Regularized) Solve(pos, normals []ms3.Vec) ms3.Vec {
	lambda := r.Lambda
	if lambda <= 0 {
		lambda = 0.1
	}
	mp := massPoint(pos)
	// Working relative to the mass point turns the bias term into zero.
	ata, atb := normalEquations(pos, normals, mp)
	for i := 0; i < 3; i++ {
		ata.SetSym(i, i, ata.At(i, i)+lambda)
	}
	var chol mat.Cholesky
	if !chol.Factorize(ata) {
		return mp
	}
	var x mat.VecDense
	if err := chol.SolveVecTo(&x, atb); err != nil {
		return mp
	}
	return ms3.Add(mp, ms3.Vec{X: float32(x.AtVec(0)), Y: float32(x.AtVec(1)), Z: float32(x.AtVec(2))})
}

// MassPoint places the vertex at the average of the positions, ignoring normals.
type MassPoint struct{}

// Solve implements Solver.
func (MassPoint) Solve(pos, _ []ms3.Vec) ms3.Vec { return massPoint(pos) }

// Error returns the sum of squared distances from x to the planes defined by
// the position and normal pairs.
func Error(pos, normals []ms3.Vec, x ms3.Vec) float64 {
	var sum float64
	for i := range pos {
		d := float64(ms3.Dot(normals[i], ms3.Sub(x, pos[i])))
		sum += d * d
	}
	return sum
}

func massPoint(pos []ms3.Vec) ms3.Vec {
	if len(pos) == 0 {
		return ms3.Vec{}
	}
	var sum ms3.Vec
	for _, p := range pos {
		sum = ms3.Add(sum, p)
	}
	return ms3.Scale(1/float32(len(pos)), sum)
}

// normalEquations accumulates AᵀA and Aᵀb where the rows of A are the normals
// and b holds the plane offsets, all relative to origin.
func normalEquations(pos, normals []ms3.Vec, origin ms3.Vec) (*mat.SymDense, *mat.VecDense) {
	if len(pos) != len(normals) {
		panic("qef: position and normal length mismatch")
	}
	var ata [9]float64
	var atb [3]float64
	for i := range pos {
		n := [3]float64{float64(normals[i].X), float64(normals[i].Y), float64(normals[i].Z)}
		q := ms3.Sub(pos[i], origin)
		b := n[0]*float64(q.X) + n[1]*float64(q.Y) + n[2]*float64(q.Z)
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				ata[3*r+c] += n[r] * n[c]
			}
			atb[r] += n[r] * b
		}
	}
	return mat.NewSymDense(3, ata[:]), mat.NewVecDense(3, atb[:])
}
