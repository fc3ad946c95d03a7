package shape

import (
	"image"
	"math"
)

// Circle is stored as a normalized center plus a radius normalized against
// the larger image dimension.
type Circle struct {
	common

	X, Y float64
	R    float64

	origin *image.Rectangle
}

func NewCircle(imgW, imgH int) *Circle {
	return &Circle{common: newCommon(imgW, imgH)}
}

func (c *Circle) Kind() Kind { return KindCircle }

func (c *Circle) minDim() float64 {
	if c.imgW < c.imgH {
		return float64(c.imgW)
	}
	return float64(c.imgH)
}

// maxDim is the normalization base for the radius, so a circle keeps the
// same pixel radius on both axes of a non-square image.
func (c *Circle) maxDim() float64 {
	if c.imgW > c.imgH {
		return float64(c.imgW)
	}
	return float64(c.imgH)
}

// SetPixels replaces the geometry from a pixel-space center and radius. The
// radius clamps to [MinRadius, minDim/2].
func (c *Circle) SetPixels(cx, cy, r int) {
	min := c.minDim()
	fr := float64(r)
	if fr < MinRadius {
		fr = MinRadius
	}
	if fr > min/2 {
		fr = min / 2
	}
	c.X = float64(cx) / float64(c.imgW)
	c.Y = float64(cy) / float64(c.imgH)
	c.R = fr / c.maxDim()
}

// Pixels returns the center and radius in image pixels.
func (c *Circle) Pixels() (cx, cy, r int) {
	cx = int(math.Round(c.X * float64(c.imgW)))
	cy = int(math.Round(c.Y * float64(c.imgH)))
	r = int(math.Round(c.R * c.maxDim()))
	return
}

func (c *Circle) Bounds() image.Rectangle {
	cx, cy, r := c.Pixels()
	return image.Rect(cx-r, cy-r, cx+r, cy+r)
}

func (c *Circle) ContainsPoint(px, py int) bool {
	cx, cy, r := c.Pixels()
	dx, dy := float64(px-cx), float64(py-cy)
	return dx*dx+dy*dy <= float64(r)*float64(r)
}

func (c *Circle) Move(dx, dy float64) {
	c.X += dx
	c.Y += dy
}

func (c *Circle) Handles() map[string]image.Point {
	b := c.Bounds()
	return map[string]image.Point{
		HandleTopLeft:     b.Min,
		HandleTopRight:    {X: b.Max.X, Y: b.Min.Y},
		HandleBottomLeft:  {X: b.Min.X, Y: b.Max.Y},
		HandleBottomRight: b.Max,
	}
}

func (c *Circle) BeginResize() {
	r := c.Bounds()
	c.origin = &r
}

// ResizeFromHandle recomputes the circle from the dragged bounding box. The
// new radius is half the smaller span, so the circle stays a circle no matter
// how lopsided the drag is.
func (c *Circle) ResizeFromHandle(handle string, dx, dy int) bool {
	if c.origin == nil {
		return false
	}
	r, ok := resolveBounds(*c.origin, handle, dx, dy, c.imgW, c.imgH)
	if !ok {
		return false
	}
	span := r.Dx()
	if r.Dy() < span {
		span = r.Dy()
	}
	c.SetPixels(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2, span/2)
	return true
}

func (c *Circle) EndResize() { c.origin = nil }

func (c *Circle) Clone() Shape {
	dup := *c
	dup.origin = nil
	return &dup
}

func (c *Circle) Copy() Shape {
	dup := *c
	dup.origin = nil
	dup.id = NewID()
	return &dup
}
