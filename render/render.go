// Package render consumes Dual Contouring meshes: it streams their
// triangles, writes them as binary STL or Wavefront OBJ and renders PNG
// previews.
package render

import (
	"errors"
	"io"

	"github.com/soypat/fastdc"
	"github.com/soypat/glgl/math/ms3"
)

// Renderer streams triangles. ReadTriangles returns io.EOF once all
// triangles have been read.
type Renderer interface {
	ReadTriangles(dst []ms3.Triangle) (n int, err error)
}

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like the io.ReadAll implementation.
func RenderAll(r Renderer) ([]ms3.Triangle, error) {
	var err error
	var nt int
	result := make([]ms3.Triangle, 0, 1<<12)
	buf := make([]ms3.Triangle, 1024)
	for {
		nt, err = r.ReadTriangles(buf)
		result = append(result, buf[:nt]...)
		if err != nil {
			break
		}
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}

// MeshRenderer streams the triangles of an indexed mesh.
type MeshRenderer struct {
	mesh *fastdc.Mesh
	next int
}

// NewMeshRenderer returns a Renderer over the triangles of mesh.
func NewMeshRenderer(mesh *fastdc.Mesh) (*MeshRenderer, error) {
	if mesh == nil {
		return nil, errors.New("nil mesh")
	}
	return &MeshRenderer{mesh: mesh}, nil
}

// ReadTriangles implements Renderer.
func (mr *MeshRenderer) ReadTriangles(dst []ms3.Triangle) (n int, err error) {
	if len(dst) == 0 {
		return 0, io.ErrShortBuffer
	}
	verts := mr.mesh.Vertices
	for _, t := range mr.mesh.Triangles[mr.next:] {
		if n == len(dst) {
			break
		}
		dst[n] = ms3.Triangle{verts[t[0]].Pos, verts[t[1]].Pos, verts[t[2]].Pos}
		n++
	}
	mr.next += n
	if mr.next == len(mr.mesh.Triangles) {
		return n, io.EOF
	}
	return n, nil
}

// Reset rewinds the renderer to the first triangle.
func (mr *MeshRenderer) Reset() { mr.next = 0 }
