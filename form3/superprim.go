package form3

import (
	"errors"
	"fmt"
	"strings"

	"github.com/soypat/glgl/math/ms3"
)

// Kind names a super primitive preset.
type Kind uint8

const (
	Cube Kind = iota
	Cylinder
	Pill
	Corridor
	Torus
)

var kindNames = [...]string{
	Cube:     "cube",
	Cylinder: "cylinder",
	Pill:     "pill",
	Corridor: "corridor",
	Torus:    "torus",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Kinds returns all super primitive presets.
func Kinds() []Kind { return []Kind{Cube, Cylinder, Pill, Corridor, Torus} }

// ParseKind returns the Kind named s, ignoring case.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown shape %q, want one of %s", s, strings.Join(kindNames[:], ", "))
}

// SuperPrimitiveConfig parametrizes the super primitive. S holds the half
// extents along x, y and z followed by the shell thickness. R holds the
// rounding of the xy cross section and of the z profile.
type SuperPrimitiveConfig struct {
	S [4]float32
	R [2]float32
}

// ConfigForShape returns the super primitive parameters of a preset. Unknown
// kinds return the cube parameters.
func ConfigForShape(k Kind) SuperPrimitiveConfig {
	switch k {
	case Cylinder:
		return SuperPrimitiveConfig{S: [4]float32{1, 1, 1, 1}, R: [2]float32{1, 0}}
	case Pill:
		return SuperPrimitiveConfig{S: [4]float32{1, 1, 2, 1}, R: [2]float32{1, 1}}
	case Corridor:
		return SuperPrimitiveConfig{S: [4]float32{1, 1, 1, 0.25}, R: [2]float32{0.1, 0.1}}
	case Torus:
		return SuperPrimitiveConfig{S: [4]float32{1, 1, 0.25, 0.25}, R: [2]float32{1, 0.25}}
	}
	return SuperPrimitiveConfig{S: [4]float32{1, 1, 1, 1}}
}

// NewSuperPrimitive returns a super primitive uniformly scaled by scale. A
// single distance function yields boxes, cylinders, capsules, tori and
// hollow variants of them depending on cfg.
// See https://www.shadertoy.com/view/MsVGWG.
func NewSuperPrimitive(cfg SuperPrimitiveConfig, scale float32) (SDF3, error) {
	if scale <= 0 {
		return nil, errors.New("zero or negative super primitive scale")
	}
	for _, v := range cfg.S[:3] {
		if v <= 0 {
			return nil, errors.New("zero or negative super primitive extent")
		}
	}
	if cfg.S[3] < 0 || cfg.R[0] < 0 || cfg.R[1] < 0 {
		return nil, errors.New("negative super primitive thickness or rounding")
	}
	return &superprim{
		s:     ms3.Vec{X: cfg.S[0], Y: cfg.S[1], Z: cfg.S[2]},
		w:     cfg.S[3],
		r:     cfg.R,
		scale: scale,
	}, nil
}

type superprim struct {
	s     ms3.Vec
	w     float32
	r     [2]float32
	scale float32
}

func (sp *superprim) Evaluate(pos []ms3.Vec, dist []float32, userData any) error {
	inv := 1 / sp.scale
	for i, p := range pos {
		dist[i] = sp.scale * sp.eval(ms3.Scale(inv, p))
	}
	return nil
}

func (sp *superprim) eval(p ms3.Vec) float32 {
	d := ms3.Sub(ms3.AbsElem(p), sp.s)
	rx, ry := sp.r[0], sp.r[1]
	q := hypotf(maxf(d.X+rx, 0), maxf(d.Y+rx, 0)) + minf(-rx, maxf(d.X, d.Y))
	q = absf(q+sp.w) - sp.w
	return hypotf(maxf(q+ry, 0), maxf(d.Z+ry, 0)) + minf(-ry, maxf(q, d.Z))
}

func (sp *superprim) Bounds() ms3.Box {
	return ms3.NewCenteredBox(ms3.Vec{}, ms3.Scale(2*sp.scale, sp.s))
}
