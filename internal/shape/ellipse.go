package shape

import (
	"image"
	"math"
)

// Ellipse is stored as a normalized center plus per-axis radii normalized
// against their own image dimension.
type Ellipse struct {
	common

	X, Y   float64
	RX, RY float64

	origin *image.Rectangle
}

func NewEllipse(imgW, imgH int) *Ellipse {
	return &Ellipse{common: newCommon(imgW, imgH)}
}

func (e *Ellipse) Kind() Kind { return KindEllipse }

// SetPixels replaces the geometry from a pixel-space center and radii. Each
// radius clamps to [MinRadius, dimension/2].
func (e *Ellipse) SetPixels(cx, cy, rx, ry int) {
	fw, fh := float64(e.imgW), float64(e.imgH)
	frx := math.Min(math.Max(float64(rx), MinRadius), fw/2)
	fry := math.Min(math.Max(float64(ry), MinRadius), fh/2)
	e.X = float64(cx) / fw
	e.Y = float64(cy) / fh
	e.RX = frx / fw
	e.RY = fry / fh
}

// Pixels returns the center and radii in image pixels.
func (e *Ellipse) Pixels() (cx, cy, rx, ry int) {
	fw, fh := float64(e.imgW), float64(e.imgH)
	cx = int(math.Round(e.X * fw))
	cy = int(math.Round(e.Y * fh))
	rx = int(math.Round(e.RX * fw))
	ry = int(math.Round(e.RY * fh))
	return
}

func (e *Ellipse) Bounds() image.Rectangle {
	cx, cy, rx, ry := e.Pixels()
	return image.Rect(cx-rx, cy-ry, cx+rx, cy+ry)
}

func (e *Ellipse) ContainsPoint(px, py int) bool {
	cx, cy, rx, ry := e.Pixels()
	if rx == 0 || ry == 0 {
		return false
	}
	dx := float64(px-cx) / float64(rx)
	dy := float64(py-cy) / float64(ry)
	return dx*dx+dy*dy <= 1
}

func (e *Ellipse) Move(dx, dy float64) {
	e.X += dx
	e.Y += dy
}

func (e *Ellipse) Handles() map[string]image.Point {
	b := e.Bounds()
	return map[string]image.Point{
		HandleTopLeft:     b.Min,
		HandleTopRight:    {X: b.Max.X, Y: b.Min.Y},
		HandleBottomLeft:  {X: b.Min.X, Y: b.Max.Y},
		HandleBottomRight: b.Max,
	}
}

func (e *Ellipse) BeginResize() {
	r := e.Bounds()
	e.origin = &r
}

func (e *Ellipse) ResizeFromHandle(handle string, dx, dy int) bool {
	if e.origin == nil {
		return false
	}
	r, ok := resolveBounds(*e.origin, handle, dx, dy, e.imgW, e.imgH)
	if !ok {
		return false
	}
	e.SetPixels(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2, r.Dx()/2, r.Dy()/2)
	return true
}

func (e *Ellipse) EndResize() { e.origin = nil }

func (e *Ellipse) Clone() Shape {
	dup := *e
	dup.origin = nil
	return &dup
}

func (e *Ellipse) Copy() Shape {
	dup := *e
	dup.origin = nil
	dup.id = NewID()
	return &dup
}
