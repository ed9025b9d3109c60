package fastdc

import (
	"github.com/soypat/fastdc/qef"
	"github.com/soypat/glgl/math/ms3"
)

// minVertexEdges is the number of crossing edges a voxel needs to receive a
// vertex. A single plane leaves the vertex unconstrained in two directions.
const minVertexEdges = 2

// placed is the outcome of vertex placement for one voxel.
type placed struct {
	vertex Vertex
	ok     bool
}

// placeVertices places one vertex per voxel of voxels[lo:hi] writing the
// result to dst at the same index. edges is only read.
func placeVertices(dst []placed, voxels []VoxelID, edges map[EdgeID]EdgeInfo, solver qef.Solver, lo, hi int) {
	var pos, normals [12]ms3.Vec
	for i := lo; i < hi; i++ {
		n := 0
		for k := 0; k < 12; k++ {
			edge, ok := voxelEdge(voxels[i], k)
			if !ok {
				continue
			}
			info, ok := edges[edge]
			if !ok {
				continue
			}
			pos[n] = info.Pos
			normals[n] = info.Normal
			n++
		}
		if n < minVertexEdges {
			dst[i] = placed{}
			continue
		}
		var sum ms3.Vec
		for _, nrm := range normals[:n] {
			sum = ms3.Add(sum, nrm)
		}
		dst[i] = placed{
			vertex: Vertex{
				Pos:    solver.Solve(pos[:n], normals[:n]),
				Normal: unitOrZero(ms3.Scale(1/float32(n), sum)),
			},
			ok: true,
		}
	}
}

// compactVertices appends the placed vertices to mesh in voxel order and
// returns the vertex index of each voxel that received one.
func compactVertices(mesh *Mesh, voxels []VoxelID, results []placed) map[VoxelID]uint32 {
	index := make(map[VoxelID]uint32, len(voxels))
	for i, r := range results {
		if !r.ok {
			continue
		}
		index[voxels[i]] = uint32(len(mesh.Vertices))
		mesh.Vertices = append(mesh.Vertices, r.vertex)
	}
	return index
}
