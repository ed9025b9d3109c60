package fastdc

// quad is the outcome of triangulating one edge.
type quad struct {
	tris [2]Triangle
	ok   bool
}

// triangulateEdges emits a quad for each of edgeIDs[lo:hi] shared by four
// placed vertices, writing the result to dst at the same index.
func triangulateEdges(dst []quad, edgeIDs []EdgeID, edges map[EdgeID]EdgeInfo, index map[VoxelID]uint32, lo, hi int) {
	for i := lo; i < hi; i++ {
		dst[i] = quad{}
		voxels, ok := edgeVoxels(edgeIDs[i])
		var v [4]uint32
		complete := true
		for k := range voxels {
			if !ok[k] {
				complete = false
				break
			}
			v[k], complete = index[voxels[k]]
			if !complete {
				break
			}
		}
		if !complete {
			continue
		}
		if edges[edgeIDs[i]].Winding {
			dst[i] = quad{tris: [2]Triangle{{v[0], v[1], v[3]}, {v[0], v[3], v[2]}}, ok: true}
		} else {
			dst[i] = quad{tris: [2]Triangle{{v[0], v[3], v[1]}, {v[0], v[2], v[3]}}, ok: true}
		}
	}
}

// compactTriangles appends the emitted quads to mesh in edge order.
func compactTriangles(mesh *Mesh, results []quad) {
	for _, q := range results {
		if q.ok {
			mesh.Triangles = append(mesh.Triangles, q.tris[0], q.tris[1])
		}
	}
}
