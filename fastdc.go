// Package fastdc extracts triangle meshes from density fields one cubic grid
// cell at a time using Dual Contouring.
//
// A cell of N³ voxels is scanned for grid edges whose endpoints differ in
// density sign. Every voxel touching such an edge receives a single vertex
// placed by minimizing the quadratic error to the surface planes of its
// edges. Finally each crossing edge shared by four placed voxels emits a quad.
// Voxels and edges are identified by compact 32 bit IDs so that only active
// cells are ever stored.
package fastdc

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

// SDF3 is a density field evaluated over batches of positions. Density is
// negative inside the shape and non-negative outside of it.
type SDF3 interface {
	// Evaluate stores the density at each of pos in dist. pos and dist are of
	// equal length. userData is passed through from the caller untouched.
	Evaluate(pos []ms3.Vec, dist []float32, userData any) error
}

// DensityFunc adapts a point density function to the SDF3 interface.
type DensityFunc func(p ms3.Vec) float32

// Evaluate implements SDF3.
func (f DensityFunc) Evaluate(pos []ms3.Vec, dist []float32, userData any) error {
	for i, p := range pos {
		dist[i] = f(p)
	}
	return nil
}

// EdgeInfo is the surface crossing found on a grid edge.
type EdgeInfo struct {
	// Pos is where density crosses zero along the edge.
	Pos ms3.Vec
	// Normal is the normalized density gradient at Pos.
	Normal ms3.Vec
	// Winding is true if density at the edge's base is non-negative.
	Winding bool
}

// Vertex is a mesh vertex.
type Vertex struct {
	Pos    ms3.Vec
	Normal ms3.Vec
}

// Triangle holds the indices of a triangle's vertices, counter-clockwise when
// viewed from outside of the surface.
type Triangle [3]uint32

// Mesh is the indexed triangle mesh of one cell. Vertices and Triangles are
// allocated with their worst case capacity and filled from index 0, so their
// lengths hold the number of elements used.
type Mesh struct {
	Vertices  []Vertex
	Triangles []Triangle
}

// NumVertices returns the number of vertices in the mesh.
func (m *Mesh) NumVertices() int { return len(m.Vertices) }

// NumTriangles returns the number of triangles in the mesh.
func (m *Mesh) NumTriangles() int { return len(m.Triangles) }

// IsEmpty returns true if the mesh has no triangles.
func (m *Mesh) IsEmpty() bool { return len(m.Triangles) == 0 }

// Triangles3 resolves the triangle indices into a triangle soup.
func (m *Mesh) Triangles3() []ms3.Triangle {
	tris := make([]ms3.Triangle, len(m.Triangles))
	for i, t := range m.Triangles {
		tris[i] = ms3.Triangle{m.Vertices[t[0]].Pos, m.Vertices[t[1]].Pos, m.Vertices[t[2]].Pos}
	}
	return tris
}

// Bounds returns the bounding box of the mesh vertices. An empty mesh has a zero box.
func (m *Mesh) Bounds() ms3.Box {
	if len(m.Vertices) == 0 {
		return ms3.Box{}
	}
	bb := ms3.Box{Min: m.Vertices[0].Pos, Max: m.Vertices[0].Pos}
	for _, v := range m.Vertices[1:] {
		bb.Min = minElem(bb.Min, v.Pos)
		bb.Max = ms3.MaxElem(bb.Max, v.Pos)
	}
	return bb
}

func minElem(a, b ms3.Vec) ms3.Vec {
	return ms3.Vec{X: math32.Min(a.X, b.X), Y: math32.Min(a.Y, b.Y), Z: math32.Min(a.Z, b.Z)}
}

// unitOrZero normalizes v. A zero length vector is returned unchanged.
func unitOrZero(v ms3.Vec) ms3.Vec {
	n := ms3.Norm(v)
	if n == 0 {
		return v
	}
	return ms3.Scale(1/n, v)
}
