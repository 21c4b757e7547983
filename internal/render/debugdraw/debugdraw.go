// Package debugdraw draws physics chains, ray hits and visibility polygons
// on top of a frame through the render abstraction.
package debugdraw

import (
	"image/color"

	"github.com/jakecoffman/cp"

	"chosenoffset.com/tilekit/internal/core/shadows"
	"chosenoffset.com/tilekit/internal/physics"
	"chosenoffset.com/tilekit/internal/render"
)

// Options control colors and sizes
type Options struct {
	Palette         []color.Color // chain colors, cycled per chain body
	VertexColor     color.Color
	HitColor        color.Color
	NormalColor     color.Color
	VisibilityColor color.Color
	LineWidth       float32
	VertexRadius    float32
	NormalLength    float32
}

// DefaultOptions returns the colors used by the chain viewer
func DefaultOptions() Options {
	return Options{
		Palette: []color.Color{
			color.RGBA{R: 80, G: 220, B: 120, A: 255},
			color.RGBA{R: 90, G: 160, B: 255, A: 255},
			color.RGBA{R: 255, G: 170, B: 60, A: 255},
			color.RGBA{R: 230, G: 90, B: 200, A: 255},
		},
		VertexColor:     color.RGBA{R: 255, G: 255, B: 255, A: 255},
		HitColor:        color.RGBA{R: 255, G: 60, B: 60, A: 255},
		NormalColor:     color.RGBA{R: 255, G: 230, B: 80, A: 255},
		VisibilityColor: color.RGBA{R: 255, G: 240, B: 180, A: 60},
		LineWidth:       1,
		VertexRadius:    2,
		NormalLength:    12,
	}
}

// Drawer renders debug overlays for one physics world
type Drawer struct {
	renderer render.Renderer
	world    *physics.World
	opts     Options
}

// New creates a drawer. An empty palette falls back to the defaults.
func New(renderer render.Renderer, world *physics.World, opts Options) *Drawer {
	if len(opts.Palette) == 0 {
		opts.Palette = DefaultOptions().Palette
	}
	return &Drawer{renderer: renderer, world: world, opts: opts}
}

// DrawChains outlines every static chain body of the world, converting from
// meters back to pixels, and marks each vertex.
func (d *Drawer) DrawChains(dst render.Image) {
	for i, chain := range d.world.Chains() {
		clr := d.opts.Palette[i%len(d.opts.Palette)]
		for _, loop := range chain.Loops {
			d.drawLoop(dst, loop, clr)
		}
	}
}

func (d *Drawer) drawLoop(dst render.Image, loop []cp.Vector, clr color.Color) {
	n := len(loop)
	if n < 2 {
		return
	}

	for i := 0; i < n; i++ {
		a := d.world.ToPixels(loop[i])
		b := d.world.ToPixels(loop[(i+1)%n])
		d.renderer.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), d.opts.LineWidth, clr)
	}

	if d.opts.VertexRadius <= 0 {
		return
	}
	for _, v := range loop {
		p := d.world.ToPixels(v)
		d.renderer.FillCircle(dst, float32(p.X), float32(p.Y), d.opts.VertexRadius, d.opts.VertexColor)
	}
}

// DrawRayHit draws the ray from start to the hit point and the surface
// normal there
func (d *Drawer) DrawRayHit(dst render.Image, start cp.Vector, hit physics.RayHit) {
	d.renderer.StrokeLine(dst, float32(start.X), float32(start.Y), float32(hit.Point.X), float32(hit.Point.Y), d.opts.LineWidth, d.opts.HitColor)
	d.renderer.StrokeCircle(dst, float32(hit.Point.X), float32(hit.Point.Y), d.opts.VertexRadius*2, d.opts.LineWidth, d.opts.HitColor)

	end := hit.Point.Add(hit.Normal.Mult(float64(d.opts.NormalLength)))
	d.renderer.StrokeLine(dst, float32(hit.Point.X), float32(hit.Point.Y), float32(end.X), float32(end.Y), d.opts.LineWidth, d.opts.NormalColor)
}

// DrawVisibility fills the area visible from a viewer. Polygons with fewer
// than 3 points are ignored.
func (d *Drawer) DrawVisibility(dst render.Image, polygon []shadows.Point) {
	if len(polygon) < 3 {
		return
	}

	points := make([]render.Point, len(polygon))
	for i, p := range polygon {
		points[i] = render.Point{X: float32(p.X), Y: float32(p.Y)}
	}
	d.renderer.FillPolygon(dst, points, d.opts.VisibilityColor)
}

// DrawSegments outlines occluder segments with a short tick along their
// open-side normal
func (d *Drawer) DrawSegments(dst render.Image, segments []shadows.Segment) {
	for _, seg := range segments {
		clr := d.opts.Palette[seg.Loop%len(d.opts.Palette)]
		d.renderer.StrokeLine(dst, float32(seg.A.X), float32(seg.A.Y), float32(seg.B.X), float32(seg.B.Y), d.opts.LineWidth, clr)

		mx := (seg.A.X + seg.B.X) / 2
		my := (seg.A.Y + seg.B.Y) / 2
		tick := float64(d.opts.NormalLength) / 2
		d.renderer.StrokeLine(dst, float32(mx), float32(my), float32(mx+seg.Normal.X*tick), float32(my+seg.Normal.Y*tick), d.opts.LineWidth, d.opts.NormalColor)
	}
}

// DrawText prints lines of text from the top-left corner
func (d *Drawer) DrawText(dst render.Image, lines ...string) {
	for i, line := range lines {
		d.renderer.DrawText(dst, line, 4, 4+i*16)
	}
}
