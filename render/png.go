package render

import (
	"errors"
	"image"
	"image/png"
	"io"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/soypat/glgl/math/ms3"
)

// View configures the camera of a PNG preview. The model is fit in a bi-unit
// cube centered at the origin before rendering so the camera is placed in
// those normalized coordinates.
type View struct {
	Eye, LookAt, Up ms3.Vec
	Near, Far       float64
	// Width and Height of the output image in pixels.
	Width, Height uint
	// Supersample renders at a multiple of the output size and downsamples
	// for antialiasing. Zero is treated as 1.
	Supersample uint
}

// DefaultView looks at the origin from an oblique corner.
func DefaultView() View {
	return View{
		Eye:         ms3.Vec{X: 3, Y: 3, Z: 2.5},
		Up:          ms3.Vec{Z: 1},
		Near:        1,
		Far:         10,
		Width:       800,
		Height:      600,
		Supersample: 2,
	}
}

// RenderPNG rasterizes triangles with a phong shader.
func RenderPNG(tris []ms3.Triangle, view View) (image.Image, error) {
	if len(tris) == 0 {
		return nil, errors.New("no triangles to render")
	} else if view.Width == 0 || view.Height == 0 {
		return nil, errors.New("zero sized view")
	} else if view.Near <= 0 || view.Far <= view.Near {
		return nil, errors.New("invalid view clipping planes")
	}
	scale := max(view.Supersample, 1)
	const fovy = 30 // vertical field of view in degrees.
	var (
		eye    = fauxglVec(view.Eye)
		center = fauxglVec(view.LookAt)
		up     = fauxglVec(view.Up)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
		color  = fauxgl.HexColor("#468966")
	)
	faces := make([]*fauxgl.Triangle, len(tris))
	for i, t := range tris {
		faces[i] = fauxgl.NewTriangleForPoints(fauxglVec(t[0]), fauxglVec(t[1]), fauxglVec(t[2]))
	}
	mesh := fauxgl.NewTriangleMesh(faces)
	mesh.BiUnitCube()

	context := fauxgl.NewContext(int(view.Width*scale), int(view.Height*scale))
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(view.Width) / float64(view.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	context.DrawMesh(mesh)

	img := context.Image()
	if scale > 1 {
		img = resize.Resize(view.Width, view.Height, img, resize.Bilinear)
	}
	return img, nil
}

// WritePNG renders triangles and writes the PNG encoded image to w.
func WritePNG(w io.Writer, tris []ms3.Triangle, view View) error {
	img, err := RenderPNG(tris, view)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// CreatePNG renders triangles to a PNG file at path.
func CreatePNG(path string, tris []ms3.Triangle, view View) error {
	img, err := RenderPNG(tris, view)
	if err != nil {
		return err
	}
	return fauxgl.SavePNG(path, img)
}

func fauxglVec(v ms3.Vec) fauxgl.Vector {
	return fauxgl.V(float64(v.X), float64(v.Y), float64(v.Z))
}
