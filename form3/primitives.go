package form3

import (
	"errors"

	"github.com/soypat/glgl/math/ms3"
)

// NewSphere returns a sphere of radius r centred at the origin.
func NewSphere(r float32) (SDF3, error) {
	if r <= 0 {
		return nil, errors.New("zero or negative sphere radius")
	}
	return &sphere{r: r}, nil
}

type sphere struct {
	r float32
}

func (s *sphere) Evaluate(pos []ms3.Vec, dist []float32, userData any) error {
	r := s.r
	for i, p := range pos {
		dist[i] = ms3.Norm(p) - r
	}
	return nil
}

func (s *sphere) Bounds() ms3.Box {
	return ms3.Box{
		Min: ms3.Vec{X: -s.r, Y: -s.r, Z: -s.r},
		Max: ms3.Vec{X: s.r, Y: s.r, Z: s.r},
	}
}

// NewBox returns a box of dimensions x,y,z centred at the origin with edges
// rounded by round.
func NewBox(x, y, z, round float32) (SDF3, error) {
	if round < 0 || round > x/2 || round > y/2 || round > z/2 {
		return nil, errors.New("invalid box rounding value")
	} else if x <= 0 || y <= 0 || z <= 0 {
		return nil, errors.New("zero or negative box dimension")
	}
	return &box{dims: ms3.Vec{X: x, Y: y, Z: z}, round: round}, nil
}

type box struct {
	dims  ms3.Vec
	round float32
}

func (b *box) Evaluate(pos []ms3.Vec, dist []float32, userData any) error {
	d := ms3.Scale(0.5, b.dims)
	r := b.round
	for i, p := range pos {
		q := ms3.AddScalar(r, ms3.Sub(ms3.AbsElem(p), d))
		dist[i] = ms3.Norm(ms3.MaxElem(q, ms3.Vec{})) + minf(maxf(q.X, maxf(q.Y, q.Z)), 0.0) - r
	}
	return nil
}

func (b *box) Bounds() ms3.Box {
	return ms3.NewCenteredBox(ms3.Vec{}, b.dims)
}

// NewTorus returns a torus lying on the xy plane. rGreater is the outer
// radius and rRing the radius of the ring's cross section.
func NewTorus(rGreater, rRing float32) (SDF3, error) {
	if rRing <= 0 || rGreater <= 0 {
		return nil, errors.New("zero or negative torus radius")
	} else if rGreater <= 2*rRing {
		return nil, errors.New("torus ring radius too large for outer radius")
	}
	return &torus{rGreater: rGreater, rRing: rRing}, nil
}

type torus struct {
	rGreater float32
	rRing    float32
}

func (t *torus) Evaluate(pos []ms3.Vec, dist []float32, userData any) error {
	t1 := t.rGreater - t.rRing
	t2 := t.rRing
	for i, p := range pos {
		q1 := hypotf(p.X, p.Y) - t1
		dist[i] = hypotf(q1, p.Z) - t2
	}
	return nil
}

func (t *torus) Bounds() ms3.Box {
	R := t.rGreater
	return ms3.Box{
		Min: ms3.Vec{X: -R, Y: -R, Z: -t.rRing},
		Max: ms3.Vec{X: R, Y: R, Z: t.rRing},
	}
}
