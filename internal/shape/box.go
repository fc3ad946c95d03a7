package shape

import (
	"fmt"
	"image"
	"math"
)

// Box is a YOLO-style bounding box stored as a normalized center and size.
type Box struct {
	common

	// Center and size, all in [0,1] of the image dimensions.
	X, Y float64
	W, H float64

	origin *image.Rectangle
}

// NewBox returns an empty box for an image of the given size. Geometry is
// filled in by SetPixels as the drag proceeds.
func NewBox(imgW, imgH int) *Box {
	return &Box{common: newCommon(imgW, imgH)}
}

func (b *Box) Kind() Kind { return KindBox }

// SetPixels replaces the geometry from two pixel-space corners in either
// order.
func (b *Box) SetPixels(x1, y1, x2, y2 int) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	fw, fh := float64(b.imgW), float64(b.imgH)
	b.W = float64(x2-x1) / fw
	b.H = float64(y2-y1) / fh
	b.X = (float64(x1) + float64(x2-x1)/2) / fw
	b.Y = (float64(y1) + float64(y2-y1)/2) / fh
}

// Pixels returns the left, top, right and bottom edges in image pixels.
func (b *Box) Pixels() (x1, y1, x2, y2 int) {
	fw, fh := float64(b.imgW), float64(b.imgH)
	x1 = int(math.Round((b.X - b.W/2) * fw))
	y1 = int(math.Round((b.Y - b.H/2) * fh))
	x2 = int(math.Round((b.X + b.W/2) * fw))
	y2 = int(math.Round((b.Y + b.H/2) * fh))
	return
}

func (b *Box) Bounds() image.Rectangle {
	x1, y1, x2, y2 := b.Pixels()
	return image.Rect(x1, y1, x2, y2)
}

func (b *Box) ContainsPoint(px, py int) bool {
	x1, y1, x2, y2 := b.Pixels()
	return px >= x1 && px <= x2 && py >= y1 && py <= y2
}

func (b *Box) Move(dx, dy float64) {
	b.X += dx
	b.Y += dy
}

func (b *Box) Handles() map[string]image.Point {
	x1, y1, x2, y2 := b.Pixels()
	return map[string]image.Point{
		HandleTopLeft:     {X: x1, Y: y1},
		HandleTopRight:    {X: x2, Y: y1},
		HandleBottomLeft:  {X: x1, Y: y2},
		HandleBottomRight: {X: x2, Y: y2},
	}
}

func (b *Box) BeginResize() {
	r := b.Bounds()
	b.origin = &r
}

func (b *Box) ResizeFromHandle(handle string, dx, dy int) bool {
	if b.origin == nil {
		return false
	}
	r, ok := resolveBounds(*b.origin, handle, dx, dy, b.imgW, b.imgH)
	if !ok {
		return false
	}
	if r.Dx() < MinBoxSpan || r.Dy() < MinBoxSpan {
		return false
	}
	b.SetPixels(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
	return true
}

func (b *Box) EndResize() { b.origin = nil }

func (b *Box) Clone() Shape {
	dup := *b
	dup.origin = nil
	return &dup
}

func (b *Box) Copy() Shape {
	dup := *b
	dup.origin = nil
	dup.id = NewID()
	return &dup
}

// YOLO renders the box as a detection dataset line using the given class
// index.
func (b *Box) YOLO(classIndex int) string {
	return fmt.Sprintf("%d %.6f %.6f %.6f %.6f", classIndex, b.X, b.Y, b.W, b.H)
}
