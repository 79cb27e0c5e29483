// Package preview paints evaluated frame states into images. It stands in
// for the external compositing surface: it consumes engine output only,
// holds no state between frames, and knows nothing about timelines.
package preview

import (
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/dpetrovsky/kinoscope/internal/scene"
	"github.com/dpetrovsky/kinoscope/internal/system"
	"github.com/dpetrovsky/kinoscope/internal/transform"
)

// super is the supersampling factor: frames are painted at 2× and scaled
// down for cheap antialiasing.
const super = 2

// palette assigns flat colors to top-level elements in order.
var palette = []color.RGBA{
	{R: 0xe8, G: 0x6a, B: 0x5c, A: 0xff},
	{R: 0x5c, G: 0xb8, B: 0xe8, A: 0xff},
	{R: 0xf2, G: 0xc1, B: 0x4e, A: 0xff},
	{R: 0x7e, G: 0xd3, B: 0x8a, A: 0xff},
	{R: 0xb8, G: 0x8c, B: 0xe8, A: 0xff},
}

// Renderer rasterizes frame states at a fixed output size.
type Renderer struct {
	Width      int
	Height     int
	Background color.RGBA
	QuadSize   float64 // half-extent of an element quad, in scene units

	pool *system.FramePool // supersample buffers, reused across frames
}

// NewRenderer validates the output dimensions.
func NewRenderer(width, height int) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("preview: output size %dx%d must be positive", width, height)
	}
	return &Renderer{
		Width:      width,
		Height:     height,
		Background: color.RGBA{R: 0x12, G: 0x12, B: 0x16, A: 0xff},
		QuadSize:   40,
		pool:       system.NewFramePool(image.Rect(0, 0, width*super, height*super)),
	}, nil
}

// Render paints one frame state. The same state always produces the same
// pixels.
func (r *Renderer) Render(st scene.FrameState) *image.RGBA {
	var big *image.RGBA
	if r.pool != nil {
		big = r.pool.Get()
		defer r.pool.Put(big)
	} else {
		big = image.NewRGBA(image.Rect(0, 0, r.Width*super, r.Height*super))
	}
	stddraw.Draw(big, big.Bounds(), &image.Uniform{C: r.Background}, image.Point{}, stddraw.Src)

	for i, el := range st.Elements {
		r.paint(big, el, transform.Identity(), 1, palette[i%len(palette)])
	}

	out := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	xdraw.CatmullRom.Scale(out, out.Bounds(), big, big.Bounds(), xdraw.Src, nil)
	return out
}

// paint draws one element and recurses into its children with the
// composed matrix and inherited opacity.
func (r *Renderer) paint(dst *image.RGBA, el scene.ElementState, parent transform.Mat4, parentAlpha float64, col color.RGBA) {
	m := parent.Mul(el.Ops.Compose())
	alpha := parentAlpha * clamp01(el.Opacity)

	if alpha > 0 {
		r.fillQuad(dst, m, alpha, col)
	}
	for _, child := range el.Children {
		r.paint(dst, child, m, alpha, col)
	}
}

// fillQuad projects the element's quad corners, takes their bounding box
// in screen space and fills it with the element color at the given alpha.
func (r *Renderer) fillQuad(dst *image.RGBA, m transform.Mat4, alpha float64, col color.RGBA) {
	cx := float64(r.Width) * super / 2
	cy := float64(r.Height) * super / 2
	s := r.QuadSize

	corners := [4][2]float64{{-s, -s}, {s, -s}, {s, s}, {-s, s}}
	minX, minY := cx, cy
	maxX, maxY := cx, cy
	for i, c := range corners {
		x, y, _ := m.Apply(c[0], c[1], 0)
		sx := cx + x*super
		sy := cy - y*super // scene Y grows upward, screen Y downward
		if i == 0 {
			minX, maxX, minY, maxY = sx, sx, sy, sy
			continue
		}
		minX = min(minX, sx)
		maxX = max(maxX, sx)
		minY = min(minY, sy)
		maxY = max(maxY, sy)
	}

	rect := image.Rect(int(minX), int(minY), int(maxX)+1, int(maxY)+1).Intersect(dst.Bounds())
	if rect.Empty() {
		return
	}

	mask := &image.Uniform{C: color.Alpha{A: uint8(alpha*255 + 0.5)}}
	stddraw.DrawMask(dst, rect, &image.Uniform{C: col}, image.Point{}, mask, image.Point{}, stddraw.Over)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
