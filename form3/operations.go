package form3

import (
	"errors"

	"github.com/soypat/glgl/math/ms3"
)

// Union joins the shapes.
func Union(s1, s2 SDF3) (SDF3, error) {
	if s1 == nil || s2 == nil {
		return nil, errors.New("nil argument to Union")
	}
	return &union{s1: s1, s2: s2}, nil
}

type union struct {
	s1, s2 SDF3
}

func (u *union) Evaluate(pos []ms3.Vec, dist []float32, userData any) error {
	return evaluateBinary(u.s1, u.s2, pos, dist, userData, minf)
}

func (u *union) Bounds() ms3.Box {
	return boxUnion(u.s1.Bounds(), u.s2.Bounds())
}

// Intersection keeps the space inside both shapes.
func Intersection(s1, s2 SDF3) (SDF3, error) {
	if s1 == nil || s2 == nil {
		return nil, errors.New("nil argument to Intersection")
	}
	return &intersect{s1: s1, s2: s2}, nil
}

type intersect struct {
	s1, s2 SDF3
}

func (s *intersect) Evaluate(pos []ms3.Vec, dist []float32, userData any) error {
	return evaluateBinary(s.s1, s.s2, pos, dist, userData, maxf)
}

func (s *intersect) Bounds() ms3.Box {
	a, b := s.s1.Bounds(), s.s2.Bounds()
	bb := ms3.Box{
		Min: ms3.MaxElem(a.Min, b.Min),
		Max: ms3.Vec{X: minf(a.Max.X, b.Max.X), Y: minf(a.Max.Y, b.Max.Y), Z: minf(a.Max.Z, b.Max.Z)},
	}
	// Disjoint shapes yield a degenerate box.
	bb.Max = ms3.MaxElem(bb.Min, bb.Max)
	return bb
}

// Difference is the SDF difference of a-b.
func Difference(a, b SDF3) (SDF3, error) {
	if a == nil || b == nil {
		return nil, errors.New("nil argument to Difference")
	}
	return &diff{s1: a, s2: b}, nil
}

type diff struct {
	s1, s2 SDF3
}

func (d *diff) Evaluate(pos []ms3.Vec, dist []float32, userData any) error {
	return evaluateBinary(d.s1, d.s2, pos, dist, userData, func(a, b float32) float32 {
		return maxf(a, -b)
	})
}

func (d *diff) Bounds() ms3.Box { return d.s1.Bounds() }

// evaluateBinary evaluates both shapes and merges the distances with op.
func evaluateBinary(s1, s2 SDF3, pos []ms3.Vec, dist []float32, userData any, op func(a, b float32) float32) error {
	vp := getVecPool(userData)
	d2 := vp.Float.Acquire(len(dist))
	defer vp.Float.Release(d2)
	err := s1.Evaluate(pos, dist, userData)
	if err != nil {
		return err
	}
	err = s2.Evaluate(pos, d2, userData)
	if err != nil {
		return err
	}
	for i := range dist {
		dist[i] = op(dist[i], d2[i])
	}
	return nil
}

// Translate moves the shape by to.
func Translate(s SDF3, to ms3.Vec) (SDF3, error) {
	if s == nil {
		return nil, errors.New("nil argument to Translate")
	}
	return &translate{s: s, p: to}, nil
}

type translate struct {
	s SDF3
	p ms3.Vec
}

func (t *translate) Evaluate(pos []ms3.Vec, dist []float32, userData any) error {
	vp := getVecPool(userData)
	transformed := vp.V3.Acquire(len(pos))
	defer vp.V3.Release(transformed)
	T := t.p
	for i, p := range pos {
		transformed[i] = ms3.Sub(p, T)
	}
	return t.s.Evaluate(transformed, dist, userData)
}

func (t *translate) Bounds() ms3.Box {
	bb := t.s.Bounds()
	return ms3.Box{Min: ms3.Add(bb.Min, t.p), Max: ms3.Add(bb.Max, t.p)}
}
