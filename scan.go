package fastdc

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

const (
	// rootSamples is the number of evenly spaced parameters in [0,1) tested
	// along a crossing edge to locate the surface.
	rootSamples = 16
	// normalStep is the central difference step used to estimate the density gradient.
	normalStep = 0.001
)

// cellGrid maps integer grid coordinates of a cell to world space.
type cellGrid struct {
	n int
	// origin is the world position of grid point (0,0,0).
	origin ms3.Vec
	res    float32
}

// newCellGrid returns the grid of a cell of n³ voxels of size res centred on world.
func newCellGrid(world [3]int, n int, res float32) cellGrid {
	half := float32(n) / 2 * res
	return cellGrid{
		n: n,
		origin: ms3.Vec{
			X: float32(world[0]) - half,
			Y: float32(world[1]) - half,
			Z: float32(world[2]) - half,
		},
		res: res,
	}
}

func (g cellGrid) pos(x, y, z int) ms3.Vec {
	return ms3.Add(g.origin, ms3.Scale(g.res, ms3.Vec{X: float32(x), Y: float32(y), Z: float32(z)}))
}

// axisVec returns the vector of length res along the axis.
func (g cellGrid) axisVec(a Axis) ms3.Vec {
	switch a {
	case AxisX:
		return ms3.Vec{X: g.res}
	case AxisY:
		return ms3.Vec{Y: g.res}
	case AxisZ:
		return ms3.Vec{Z: g.res}
	}
	panic("invalid axis " + a.String())
}

type edgeRecord struct {
	id   EdgeID
	info EdgeInfo
}

// crossing is an edge with a detected sign change awaiting root search.
type crossing struct {
	id      EdgeID
	start   ms3.Vec
	axis    Axis
	winding bool
}

// slabScan holds the crossing edges and active voxels found in a z range of a cell.
// voxels may contain duplicates.
type slabScan struct {
	edges  []edgeRecord
	voxels []VoxelID
}

// scanSlab finds all crossing edges with base grid points in layers [z0,z1).
// Densities are sampled a layer of (n+1)² grid points at a time, keeping
// the current and next layer resident.
func scanSlab(s *sampler, g cellGrid, z0, z1 int, dst *slabScan) error {
	stride := g.n + 1
	cur := make([]float32, stride*stride)
	next := make([]float32, stride*stride)
	if err := sampleLayer(s, g, z0, cur); err != nil {
		return err
	}
	var pending []crossing
	for z := z0; z < z1; z++ {
		if err := sampleLayer(s, g, z+1, next); err != nil {
			return err
		}
		pending = pending[:0]
		for y := 0; y < g.n; y++ {
			for x := 0; x < g.n; x++ {
				i := y*stride + x
				outside := cur[i] >= 0
				if outside != (cur[i+1] >= 0) {
					pending = append(pending, crossing{id: EncodeEdgeID(AxisX, x, y, z), axis: AxisX, winding: outside})
				}
				if outside != (cur[i+stride] >= 0) {
					pending = append(pending, crossing{id: EncodeEdgeID(AxisY, x, y, z), axis: AxisY, winding: outside})
				}
				if outside != (next[i] >= 0) {
					pending = append(pending, crossing{id: EncodeEdgeID(AxisZ, x, y, z), axis: AxisZ, winding: outside})
				}
			}
		}
		if err := resolveCrossings(s, g, pending, dst); err != nil {
			return err
		}
		cur, next = next, cur
	}
	return nil
}

func sampleLayer(s *sampler, g cellGrid, z int, dst []float32) error {
	s.reset()
	for y := 0; y <= g.n; y++ {
		for x := 0; x <= g.n; x++ {
			s.add(g.pos(x, y, z))
		}
	}
	dist, err := s.evaluate()
	if err != nil {
		return err
	}
	copy(dst, dist)
	return nil
}

// resolveCrossings locates the surface point and normal of each crossing edge
// and records it along with the voxels sharing the edge.
func resolveCrossings(s *sampler, g cellGrid, pending []crossing, dst *slabScan) error {
	if len(pending) == 0 {
		return nil
	}
	// Root search: first strictly smallest |density| of the samples along the edge.
	s.reset()
	for k := range pending {
		c := &pending[k]
		x, y, z := c.id.Base().Decode()
		c.start = g.pos(x, y, z)
		step := g.axisVec(c.axis)
		for i := 0; i < rootSamples; i++ {
			s.add(ms3.Add(c.start, ms3.Scale(float32(i)/rootSamples, step)))
		}
	}
	dist, err := s.evaluate()
	if err != nil {
		return err
	}
	roots := make([]ms3.Vec, len(pending))
	for k, c := range pending {
		d := dist[k*rootSamples : (k+1)*rootSamples]
		best := 0
		for i := 1; i < rootSamples; i++ {
			if math32.Abs(d[i]) < math32.Abs(d[best]) {
				best = i
			}
		}
		roots[k] = ms3.Add(c.start, ms3.Scale(float32(best)/rootSamples, g.axisVec(c.axis)))
	}

	// Gradient by central differences around each root.
	s.reset()
	for _, p := range roots {
		s.add(ms3.Add(p, ms3.Vec{X: normalStep}))
		s.add(ms3.Sub(p, ms3.Vec{X: normalStep}))
		s.add(ms3.Add(p, ms3.Vec{Y: normalStep}))
		s.add(ms3.Sub(p, ms3.Vec{Y: normalStep}))
		s.add(ms3.Add(p, ms3.Vec{Z: normalStep}))
		s.add(ms3.Sub(p, ms3.Vec{Z: normalStep}))
	}
	dist, err = s.evaluate()
	if err != nil {
		return err
	}
	for k, c := range pending {
		d := dist[k*6 : k*6+6]
		grad := ms3.Vec{X: d[0] - d[1], Y: d[2] - d[3], Z: d[4] - d[5]}
		dst.edges = append(dst.edges, edgeRecord{
			id: c.id,
			info: EdgeInfo{
				Pos:     roots[k],
				Normal:  unitOrZero(ms3.Scale(1/(2*normalStep), grad)),
				Winding: c.winding,
			},
		})
		voxels, ok := edgeVoxels(c.id)
		for i, v := range voxels {
			if ok[i] {
				dst.voxels = append(dst.voxels, v)
			}
		}
	}
	return nil
}
