// Package rendertest provides in-memory implementations of the render
// interfaces that record what was drawn, for tests that must not open a
// window.
package rendertest

import (
	"fmt"
	"image"
	"image/color"

	"chosenoffset.com/tilekit/internal/render"
)

func init() {
	if render.NewGeoM == nil {
		render.NewGeoM = func() render.GeoM { return NewGeoM() }
	}
}

// GeoM is an affine matrix [a b tx; c d ty]
type GeoM struct {
	A, B, C, D, TX, TY float64
}

// NewGeoM returns the identity matrix
func NewGeoM() *GeoM {
	return &GeoM{A: 1, D: 1}
}

// Translate shifts by (tx, ty)
func (g *GeoM) Translate(tx, ty float64) {
	g.TX += tx
	g.TY += ty
}

// Scale scales by (sx, sy)
func (g *GeoM) Scale(sx, sy float64) {
	g.A *= sx
	g.B *= sx
	g.TX *= sx
	g.C *= sy
	g.D *= sy
	g.TY *= sy
}

// Apply maps (x, y) through the matrix
func (g *GeoM) Apply(x, y float64) (float64, float64) {
	return g.A*x + g.B*y + g.TX, g.C*x + g.D*y + g.TY
}

// Draw is one DrawImage call
type Draw struct {
	Src  *Image
	GeoM *GeoM
}

// Image is an in-memory render.Image
type Image struct {
	Name     string
	Rect     image.Rectangle
	Parent   *Image
	Filled   color.Color
	Draws    []Draw
	Disposed bool
}

// NewImage creates an image of the given size
func NewImage(name string, width, height int) *Image {
	return &Image{Name: name, Rect: image.Rect(0, 0, width, height)}
}

// Bounds returns the bounds of the image
func (i *Image) Bounds() image.Rectangle { return i.Rect }

// Size returns the width and height of the image
func (i *Image) Size() (int, int) { return i.Rect.Dx(), i.Rect.Dy() }

// SubImage returns a view that remembers its parent
func (i *Image) SubImage(r image.Rectangle) render.Image {
	return &Image{Name: fmt.Sprintf("%s%v", i.Name, r), Rect: r.Intersect(i.Rect), Parent: i}
}

// Fill records the fill color
func (i *Image) Fill(clr color.Color) { i.Filled = clr }

// DrawImage records the draw
func (i *Image) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	d := Draw{Src: src.(*Image), GeoM: NewGeoM()}
	if opts != nil && opts.GeoM != nil {
		g := *opts.GeoM.(*GeoM)
		d.GeoM = &g
	}
	i.Draws = append(i.Draws, d)
}

// Dispose marks the image disposed
func (i *Image) Dispose() { i.Disposed = true }

// Line is one StrokeLine call
type Line struct {
	X0, Y0, X1, Y1 float32
	Color          color.Color
}

// Renderer records vector drawing
type Renderer struct {
	Images   []*Image
	Lines    []Line
	Circles  []render.Point
	Polygons [][]render.Point
	Texts    []string
}

// NewImage creates and remembers an image
func (r *Renderer) NewImage(width, height int) render.Image {
	img := NewImage(fmt.Sprintf("image%d", len(r.Images)), width, height)
	r.Images = append(r.Images, img)
	return img
}

// FillCircle records the circle center
func (r *Renderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	r.Circles = append(r.Circles, render.Point{X: x, Y: y})
}

// StrokeCircle records the circle center
func (r *Renderer) StrokeCircle(dst render.Image, x, y, radius float32, strokeWidth float32, clr color.Color) {
	r.Circles = append(r.Circles, render.Point{X: x, Y: y})
}

// StrokeLine records the line
func (r *Renderer) StrokeLine(dst render.Image, x0, y0, x1, y1 float32, strokeWidth float32, clr color.Color) {
	r.Lines = append(r.Lines, Line{X0: x0, Y0: y0, X1: x1, Y1: y1, Color: clr})
}

// FillPolygon records the polygon
func (r *Renderer) FillPolygon(dst render.Image, points []render.Point, clr color.Color) {
	r.Polygons = append(r.Polygons, append([]render.Point(nil), points...))
}

// DrawText records the text
func (r *Renderer) DrawText(dst render.Image, text string, x, y int) {
	r.Texts = append(r.Texts, text)
}

// Loader serves images by path from memory
type Loader struct {
	Images map[string]*Image
}

// LoadImage returns the registered image or an error
func (l *Loader) LoadImage(path string) (render.Image, error) {
	img, ok := l.Images[path]
	if !ok {
		return nil, fmt.Errorf("no image registered for %s", path)
	}
	return img, nil
}

// Input is a scripted render.InputManager
type Input struct {
	Pressed     map[render.Key]bool
	JustPressed map[render.Key]bool
	Buttons     map[render.MouseButton]bool
	X, Y        int
}

// IsKeyPressed reports whether key is held
func (in *Input) IsKeyPressed(key render.Key) bool { return in.Pressed[key] }

// IsKeyJustPressed reports whether key went down this frame
func (in *Input) IsKeyJustPressed(key render.Key) bool { return in.JustPressed[key] }

// GetCursorPosition returns the scripted cursor
func (in *Input) GetCursorPosition() (int, int) { return in.X, in.Y }

// IsMouseButtonPressed reports whether button is held
func (in *Input) IsMouseButtonPressed(button render.MouseButton) bool { return in.Buttons[button] }
