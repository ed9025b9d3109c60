package qef

import (
	"math"
	"testing"

	"github.com/soypat/glgl/math/ms3"
)

func TestSolversCorner(t *testing.T) {
	// Three orthogonal planes meeting at (1,2,3), sampled away from the corner.
	pos := []ms3.Vec{{X: 1, Y: 0.5, Z: -1}, {X: -2, Y: 2, Z: 0}, {X: 0.25, Y: 7, Z: 3}}
	normals := []ms3.Vec{{X: 1}, {Y: 1}, {Z: 1}}
	want := ms3.Vec{X: 1, Y: 2, Z: 3}
	for _, test := range []struct {
		name string
		s    Solver
	}{
		{name: "svd", s: SVD{}},
		{name: "svdtol", s: SVD{Tolerance: 1e-3}},
		{name: "regularized", s: Regularized{Lambda: 1e-9}},
	} {
		got := test.s.Solve(pos, normals)
		if !vecEqualWithin(got, want, 1e-4) {
			t.Errorf("%s: got %v, want %v", test.name, got, want)
		}
		if e := Error(pos, normals, got); e > 1e-6 {
			t.Errorf("%s: residual error %g", test.name, e)
		}
	}
}

func TestSVDUnderconstrained(t *testing.T) {
	// Two parallel samples of the plane z=1. The free directions must stay at the mass point.
	pos := []ms3.Vec{{X: 0, Y: 0, Z: 1}, {X: 2, Y: 4, Z: 1}}
	normals := []ms3.Vec{{Z: 1}, {Z: 1}}
	got := SVD{}.Solve(pos, normals)
	want := ms3.Vec{X: 1, Y: 2, Z: 1}
	if !vecEqualWithin(got, want, 1e-5) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSVDEdgeFeature(t *testing.T) {
	// Planes x=0 and y=0 meet on the z axis. Solution must lie on the axis at
	// the mass point's z.
	pos := []ms3.Vec{{X: 0, Y: 1, Z: 2}, {X: 3, Y: 0, Z: 4}}
	normals := []ms3.Vec{ms3.Unit(ms3.Vec{X: -1}), {Y: 1}}
	got := SVD{}.Solve(pos, normals)
	want := ms3.Vec{Z: 3}
	if !vecEqualWithin(got, want, 1e-5) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRegularizedBias(t *testing.T) {
	// A single plane x=1: the regularized solution moves toward the plane
	// while staying at the mass point in the plane's directions.
	pos := []ms3.Vec{{X: 1, Y: 3, Z: -2}}
	normals := []ms3.Vec{{X: 1}}
	got := Regularized{Lambda: 1}.Solve(pos, normals)
	if !vecEqualWithin(got, pos[0], 1e-6) {
		t.Errorf("got %v, want %v", got, pos[0])
	}
}

func TestMassPoint(t *testing.T) {
	pos := []ms3.Vec{{X: 1}, {Y: 1}, {Z: 1}, {X: 2, Y: 2, Z: 2}}
	got := MassPoint{}.Solve(pos, nil)
	want := ms3.Vec{X: 0.75, Y: 0.75, Z: 0.75}
	if !vecEqualWithin(got, want, 1e-6) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPinv(t *testing.T) {
	for _, test := range []struct {
		x, want float64
	}{
		{x: 0, want: 0},
		{x: 0.05, want: 0},
		{x: 2, want: 0.5},
		{x: -4, want: -0.25},
		{x: 20, want: 0},
	} {
		got := pinv(test.x, DefaultTolerance)
		if got != test.want {
			t.Errorf("pinv(%g)=%g, want %g", test.x, got, test.want)
		}
	}
}

func BenchmarkSVD(b *testing.B) {
	pos := []ms3.Vec{{X: 1, Y: 0.5, Z: -1}, {X: -2, Y: 2, Z: 0}, {X: 0.25, Y: 7, Z: 3}, {X: 1, Y: 1, Z: 1}}
	normals := []ms3.Vec{{X: 1}, {Y: 1}, {Z: 1}, ms3.Unit(ms3.Vec{X: 1, Y: 1, Z: 1})}
	var s SVD
	for i := 0; i < b.N; i++ {
		s.Solve(pos, normals)
	}
}

func vecEqualWithin(a, b ms3.Vec, tol float64) bool {
	return math.Abs(float64(a.X-b.X)) <= tol &&
		math.Abs(float64(a.Y-b.Y)) <= tol &&
		math.Abs(float64(a.Z-b.Z)) <= tol
}
