package form3

import (
	"errors"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/soypat/glgl/math/ms3"
	"gonum.org/v1/gonum/spatial/r3"
)

// R3SDF is a double precision point-wise SDF such as those built with
// gonum's r3 vectors.
type R3SDF interface {
	Evaluate(p r3.Vec) float64
	Bounds() r3.Box
}

// FromR3 adapts a double precision SDF to batched single precision evaluation.
func FromR3(s R3SDF) (SDF3, error) {
	if s == nil {
		return nil, errors.New("nil R3SDF")
	}
	return &r3Adapter{s: s}, nil
}

type r3Adapter struct {
	s R3SDF
}

func (a *r3Adapter) Evaluate(pos []ms3.Vec, dist []float32, userData any) error {
	for i, p := range pos {
		dist[i] = float32(a.s.Evaluate(r3.Vec{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}))
	}
	return nil
}

func (a *r3Adapter) Bounds() ms3.Box {
	bb := a.s.Bounds()
	return ms3.Box{
		Min: ms3.Vec{X: float32(bb.Min.X), Y: float32(bb.Min.Y), Z: float32(bb.Min.Z)},
		Max: ms3.Vec{X: float32(bb.Max.X), Y: float32(bb.Max.Y), Z: float32(bb.Max.Z)},
	}
}

// FromSDFX adapts a github.com/deadsy/sdfx SDF3 to batched evaluation.
func FromSDFX(s sdf.SDF3) (SDF3, error) {
	if s == nil {
		return nil, errors.New("nil sdfx SDF3")
	}
	return &sdfxAdapter{s: s}, nil
}

type sdfxAdapter struct {
	s sdf.SDF3
}

func (a *sdfxAdapter) Evaluate(pos []ms3.Vec, dist []float32, userData any) error {
	for i, p := range pos {
		dist[i] = float32(a.s.Evaluate(v3.Vec{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}))
	}
	return nil
}

func (a *sdfxAdapter) Bounds() ms3.Box {
	bb := a.s.BoundingBox()
	return ms3.Box{
		Min: ms3.Vec{X: float32(bb.Min.X), Y: float32(bb.Min.Y), Z: float32(bb.Min.Z)},
		Max: ms3.Vec{X: float32(bb.Max.X), Y: float32(bb.Max.Y), Z: float32(bb.Max.Z)},
	}
}
