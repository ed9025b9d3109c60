package render

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

const (
	stlHeaderSize   = 84
	stlTriangleSize = 50
)

// CreateSTL writes the triangles of a Renderer to a binary STL file at path.
// Triangles are streamed so the model is never fully resident in memory.
func CreateSTL(path string, r Renderer) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	// Header is written last once the triangle count is known.
	_, err = file.Seek(stlHeaderSize, io.SeekStart)
	if err != nil {
		return err
	}
	rd := &stlReader{r: r}
	n, err := io.CopyBuffer(file, rd, make([]byte, stlTriangleSize*trianglesInBuffer))
	if err != nil {
		return err
	}
	if n/stlTriangleSize > math.MaxUint32 {
		return errors.New("amount of triangles in model exceeds STL design limits")
	}
	_, err = file.Seek(0, io.SeekStart)
	if err != nil {
		return err
	}
	var buf [stlHeaderSize]byte
	stlHeader{Count: uint32(n / stlTriangleSize)}.put(buf[:])
	_, err = file.Write(buf[:])
	if err != nil {
		return err
	}
	return file.Close()
}

// WriteSTL writes model triangles to a writer in binary STL format.
func WriteSTL(w io.Writer, model []ms3.Triangle) (int, error) {
	if len(model) == 0 {
		return 0, errors.New("empty triangle slice")
	}
	nt := int64(len(model)) // int64 cast so that next line works correctly on 32bit machines.
	if nt > math.MaxUint32 {
		return 0, errors.New("amount of triangles in model exceeds STL design limits")
	}
	var buf [stlHeaderSize]byte
	stlHeader{Count: uint32(nt)}.put(buf[:])
	n, err := w.Write(buf[:])
	if err != nil {
		return n, err
	} else if n != len(buf) {
		return n, io.ErrShortWrite
	}
	for _, triangle := range model {
		stlTriangleFrom(triangle).put(buf[:])
		ngot, err := w.Write(buf[:stlTriangleSize])
		n += ngot
		if err != nil {
			return n, err
		} else if ngot != stlTriangleSize {
			return n, io.ErrShortWrite
		}
	}
	return n, nil
}

// ReadSTL reads and validates the triangles of a binary STL file. When
// stored normals disagree with those calculated from the vertices the
// triangles are returned along with an error wrapping ErrNormalMismatch.
func ReadSTL(r io.Reader) (output []ms3.Triangle, readErr error) {
	var hbuf [stlHeaderSize]byte
	if _, err := io.ReadFull(r, hbuf[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, errors.New("encountered EOF while reading STL header")
		}
		return nil, errors.New("STL header read failed: " + err.Error())
	}
	header := stlHeader{Count: binary.LittleEndian.Uint32(hbuf[80:])}
	if header.Count == 0 {
		return nil, errors.New("STL header indicates 0 triangles present")
	}
	var (
		buf            [stlTriangleSize]byte
		d              stlTriangle
		i              int
		normMismatches int
	)
	defer func() {
		if readErr != nil && !errors.Is(readErr, ErrNormalMismatch) {
			readErr = fmt.Errorf("%d/%d STL triangles read: %w", i+1, header.Count, readErr)
		}
	}()
	output = make([]ms3.Triangle, 0, min(header.Count, 1<<20))
	for i = 0; i < int(header.Count); i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, err
		}
		d.get(buf[:])
		if err := d.validate(); err != nil {
			if !errors.Is(err, ErrNormalMismatch) {
				return nil, err
			}
			normMismatches++
			readErr = fmt.Errorf("%d triangles: %w", normMismatches, ErrNormalMismatch)
		}
		output = append(output, d.Triangle())
	}
	return output, readErr
}

const trianglesInBuffer = 1 << 10

// stlReader encodes the triangles of a Renderer as STL triangle records.
type stlReader struct {
	r   Renderer
	buf [trianglesInBuffer]ms3.Triangle
}

func (sr *stlReader) Read(b []byte) (int, error) {
	ntMax := min(len(b)/stlTriangleSize, len(sr.buf))
	if ntMax == 0 {
		return 0, errors.New("stlReader requires at least 50 bytes to write a single triangle")
	}
	var (
		err error
		it  int // Number of triangles written to byte buffer
		nt  int // number of triangles read during ReadTriangles
	)
	for it < ntMax && err == nil {
		nt, err = sr.r.ReadTriangles(sr.buf[:ntMax-it])
		for _, triangle := range sr.buf[:nt] {
			stlTriangleFrom(triangle).put(b[it*stlTriangleSize:])
			it++
		}
	}
	return it * stlTriangleSize, err
}

// stlHeader defines the STL file header.
type stlHeader struct {
	_     [80]uint8 // Header
	Count uint32    // Number of triangles
}

func (h stlHeader) put(b []byte) {
	_ = b[83] // early bounds check
	binary.LittleEndian.PutUint32(b[80:], h.Count)
}

// stlTriangle defines the triangle data within an STL file.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
	_       uint16 // Attribute byte count
}

func stlTriangleFrom(t ms3.Triangle) stlTriangle {
	var d stlTriangle
	if n := t.Normal(); ms3.Norm(n) > 0 {
		d.Normal = ms3.Unit(n).Array()
	}
	d.Vertex1 = t[0].Array()
	d.Vertex2 = t[1].Array()
	d.Vertex3 = t[2].Array()
	return d
}

func (t stlTriangle) put(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to marshal stlTriangle")
	}
	put3F32(b, t.Normal)
	put3F32(b[12:], t.Vertex1)
	put3F32(b[24:], t.Vertex2)
	put3F32(b[36:], t.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0) // Zero out attributes.
}

func (t *stlTriangle) get(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to unmarshal stlTriangle")
	}
	get3F32(b, &t.Normal)
	get3F32(b[12:], &t.Vertex1)
	get3F32(b[24:], &t.Vertex2)
	get3F32(b[36:], &t.Vertex3)
	// no attributes supported yet.
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(f[2]))
}

func get3F32(b []byte, f *[3]float32) {
	_ = b[11] // early bounds check
	f[0] = math.Float32frombits(binary.LittleEndian.Uint32(b))
	f[1] = math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	f[2] = math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}

// ErrNormalMismatch is reported by ReadSTL for triangles whose stored normal
// is not approximately equal to the normal calculated from their vertices.
// High resolution models may trigger it even when correct.
var ErrNormalMismatch = errors.New("STL triangle normal mismatch")

func (t stlTriangle) validate() error {
	const epsilon = 1e-12
	const normTol = 5e-2
	if bad3F32(t.Normal) {
		return errors.New("inf/NaN STL triangle normal")
	}
	if bad3F32(t.Vertex1) || bad3F32(t.Vertex2) || bad3F32(t.Vertex3) {
		return errors.New("inf/NaN STL triangle vertex")
	}
	if t.Triangle().IsDegenerate(epsilon) {
		return errors.New("triangle is degenerate")
	}
	gotNormal := vecFromArray(t.Normal)
	calcNormal := t.normalFromVertices()
	calcNormalNeg := ms3.Scale(-1, calcNormal)
	if !ms3.EqualElem(calcNormal, gotNormal, normTol) && !ms3.EqualElem(calcNormalNeg, gotNormal, normTol) {
		return ErrNormalMismatch
	}
	return nil
}

func vecFromArray(f [3]float32) ms3.Vec {
	return ms3.Vec{X: f[0], Y: f[1], Z: f[2]}
}

func (t stlTriangle) normalFromVertices() ms3.Vec {
	v1 := ms3.Scale(10, vecFromArray(t.Vertex1))
	v2 := ms3.Scale(10, vecFromArray(t.Vertex2))
	v3 := ms3.Scale(10, vecFromArray(t.Vertex3))
	return ms3.Unit(ms3.Cross(ms3.Sub(v2, v1), ms3.Sub(v3, v1)))
}

func (t stlTriangle) Triangle() ms3.Triangle {
	return ms3.Triangle{vecFromArray(t.Vertex1), vecFromArray(t.Vertex2), vecFromArray(t.Vertex3)}
}
