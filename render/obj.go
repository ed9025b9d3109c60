package render

import (
	"bufio"
	"errors"
	"io"
	"strconv"

	"github.com/soypat/fastdc"
)

// WriteOBJ writes the mesh to w in Wavefront OBJ format with per vertex
// normals. Indices are shared so the mesh stays indexed.
func WriteOBJ(w io.Writer, mesh *fastdc.Mesh) error {
	if mesh == nil {
		return errors.New("nil mesh")
	}
	bw := bufio.NewWriter(w)
	var b []byte
	for _, v := range mesh.Vertices {
		b = appendOBJVec(b[:0], "v", v.Pos.Array())
		if _, err := bw.Write(b); err != nil {
			return err
		}
	}
	for _, v := range mesh.Vertices {
		b = appendOBJVec(b[:0], "vn", v.Normal.Array())
		if _, err := bw.Write(b); err != nil {
			return err
		}
	}
	for _, t := range mesh.Triangles {
		b = append(b[:0], 'f')
		for _, idx := range t {
			// OBJ indices start at 1.
			i := strconv.AppendUint(nil, uint64(idx)+1, 10)
			b = append(b, ' ')
			b = append(b, i...)
			b = append(b, '/', '/')
			b = append(b, i...)
		}
		b = append(b, '\n')
		if _, err := bw.Write(b); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func appendOBJVec(b []byte, kind string, v [3]float32) []byte {
	b = append(b, kind...)
	for _, f := range v {
		b = append(b, ' ')
		b = strconv.AppendFloat(b, float64(f), 'g', -1, 32)
	}
	return append(b, '\n')
}
