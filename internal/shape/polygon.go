package shape

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"
)

// Polygon is an ordered normalized vertex list. It only becomes a hit-testable
// region once closed with at least three vertices.
type Polygon struct {
	common

	Points [][2]float64
	Closed bool

	origin [][2]float64
}

func NewPolygon(imgW, imgH int) *Polygon {
	return &Polygon{common: newCommon(imgW, imgH)}
}

func (p *Polygon) Kind() Kind { return KindPolygon }

// AddPixelPoint appends a vertex given in image pixels.
func (p *Polygon) AddPixelPoint(px, py int) {
	p.Points = append(p.Points, [2]float64{
		float64(px) / float64(p.imgW),
		float64(py) / float64(p.imgH),
	})
}

// Close finalizes the outline. It reports false and stays open when fewer
// than three vertices exist.
func (p *Polygon) Close() bool {
	if len(p.Points) < 3 {
		return false
	}
	p.Closed = true
	return true
}

// PixelPoints returns the vertices in image pixels.
func (p *Polygon) PixelPoints() []image.Point {
	pts := make([]image.Point, len(p.Points))
	for i, v := range p.Points {
		pts[i] = image.Point{
			X: int(math.Round(v[0] * float64(p.imgW))),
			Y: int(math.Round(v[1] * float64(p.imgH))),
		}
	}
	return pts
}

func (p *Polygon) Bounds() image.Rectangle {
	pts := p.PixelPoints()
	if len(pts) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: pts[0], Max: pts[0]}
	for _, pt := range pts[1:] {
		if pt.X < r.Min.X {
			r.Min.X = pt.X
		}
		if pt.Y < r.Min.Y {
			r.Min.Y = pt.Y
		}
		if pt.X > r.Max.X {
			r.Max.X = pt.X
		}
		if pt.Y > r.Max.Y {
			r.Max.Y = pt.Y
		}
	}
	return r
}

// ContainsPoint ray-casts against the closed outline. An open polygon never
// contains anything.
func (p *Polygon) ContainsPoint(px, py int) bool {
	if !p.Closed || len(p.Points) < 3 {
		return false
	}
	x := float64(px) / float64(p.imgW)
	y := float64(py) / float64(p.imgH)
	inside := false
	n := len(p.Points)
	j := n - 1
	for i := 0; i < n; i++ {
		xi, yi := p.Points[i][0], p.Points[i][1]
		xj, yj := p.Points[j][0], p.Points[j][1]
		if (yi > y) != (yj > y) &&
			x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}

func (p *Polygon) Move(dx, dy float64) {
	for i := range p.Points {
		p.Points[i][0] += dx
		p.Points[i][1] += dy
	}
}

// Handles exposes every vertex as a draggable handle named by index.
func (p *Polygon) Handles() map[string]image.Point {
	pts := p.PixelPoints()
	handles := make(map[string]image.Point, len(pts))
	for i, pt := range pts {
		handles[fmt.Sprintf("vertex_%d", i)] = pt
	}
	return handles
}

func (p *Polygon) BeginResize() {
	p.origin = make([][2]float64, len(p.Points))
	copy(p.origin, p.Points)
}

// ResizeFromHandle drags a single vertex relative to its captured position,
// clamped to the image frame.
func (p *Polygon) ResizeFromHandle(handle string, dx, dy int) bool {
	if p.origin == nil {
		return false
	}
	idx, err := strconv.Atoi(strings.TrimPrefix(handle, "vertex_"))
	if err != nil || !strings.HasPrefix(handle, "vertex_") || idx < 0 || idx >= len(p.origin) {
		return false
	}
	fw, fh := float64(p.imgW), float64(p.imgH)
	x := p.origin[idx][0] + float64(dx)/fw
	y := p.origin[idx][1] + float64(dy)/fh
	p.Points[idx][0] = math.Min(math.Max(x, 0), float64(p.imgW-1)/fw)
	p.Points[idx][1] = math.Min(math.Max(y, 0), float64(p.imgH-1)/fh)
	return true
}

func (p *Polygon) EndResize() { p.origin = nil }

func (p *Polygon) Clone() Shape {
	dup := *p
	dup.Points = make([][2]float64, len(p.Points))
	copy(dup.Points, p.Points)
	dup.origin = nil
	return &dup
}

func (p *Polygon) Copy() Shape {
	dup := p.Clone().(*Polygon)
	dup.id = NewID()
	return dup
}
