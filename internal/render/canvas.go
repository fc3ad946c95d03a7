// Package render rasterizes the annotated frame: the image scaled through
// the view transform, shape overlays in class colors, selection handles and
// the in-progress drawing preview.
package render

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/dualannot/internal/editor"
	"github.com/example/dualannot/internal/shape"
	"github.com/example/dualannot/internal/theme"
	"github.com/example/dualannot/internal/view"
)

const (
	checkerSize  = 16
	dashLen      = 4
	outlinePx    = 2
	labelPadding = 3
)

// ClassLookup resolves a class id to its display name and color.
type ClassLookup func(id string) (name string, col color.RGBA, ok bool)

// Canvas renders editor frames with a fixed theme.
type Canvas struct {
	Theme    *theme.Theme
	HandlePx int
	Classes  ClassLookup
}

// NewCanvas returns a renderer with the given theme. lookup may be nil, in
// which case every shape falls back to the preview color.
func NewCanvas(t *theme.Theme, handlePx int, lookup ClassLookup) *Canvas {
	if t == nil {
		t = theme.Default()
	}
	if handlePx < 2 {
		handlePx = 8
	}
	return &Canvas{Theme: t, HandlePx: handlePx, Classes: lookup}
}

// Frame paints one full frame into dst: backdrop, image, committed shapes,
// then the drawing preview on top.
func (c *Canvas) Frame(dst *image.RGBA, img image.Image, ed *editor.Editor) {
	drawCheckerboard(dst, dst.Bounds(), checkerSize, c.Theme.CheckerLight, c.Theme.CheckerDark)

	t := ed.View()
	if img != nil {
		dstRect := imageRect(t)
		xdraw.NearestNeighbor.Scale(dst, dstRect, img, img.Bounds(), xdraw.Over, nil)
	}

	for _, s := range ed.Shapes() {
		c.drawShape(dst, s, t, c.shapeColor(s))
		if s.Selected() {
			c.drawSelection(dst, s, t)
		}
	}

	if preview := ed.Preview(); preview != nil {
		c.drawShape(dst, preview, t, c.Theme.PreviewOutline)
		if cursor, ok := ed.PolygonCursor(); ok {
			c.drawRubberBand(dst, preview.(*shape.Polygon), cursor, t)
		}
	}
}

// Snapshot renders the image at native resolution with the committed shape
// overlays, independent of the current zoom and pan. Selection chrome and
// the drawing preview are left out; the result is meant for the image
// clipboard and file export.
func (c *Canvas) Snapshot(img image.Image, ed *editor.Editor) *image.RGBA {
	w, h := ed.ImageSize()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if img != nil {
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	}
	t := view.New(w, h)
	for _, s := range ed.Shapes() {
		c.drawShape(dst, s, t, c.shapeColor(s))
	}
	return dst
}

// imageRect is the widget-space rectangle the image occupies.
func imageRect(t *view.Transform) image.Rectangle {
	x0, y0 := t.ImageToWidget(0, 0)
	x1, y1 := t.ImageToWidget(float64(t.ImageW), float64(t.ImageH))
	return image.Rect(round(x0), round(y0), round(x1), round(y1))
}

func (c *Canvas) shapeColor(s shape.Shape) color.RGBA {
	if c.Classes != nil {
		if _, col, ok := c.Classes(s.ClassID()); ok {
			return col
		}
	}
	return c.Theme.PreviewOutline
}

func (c *Canvas) drawShape(dst *image.RGBA, s shape.Shape, t *view.Transform, col color.RGBA) {
	switch v := s.(type) {
	case *shape.Box:
		drawRect(dst, widgetRect(t, v.Bounds()), col, outlinePx)
	case *shape.Circle:
		cx, cy, r := v.Pixels()
		wx, wy := t.ImageToWidget(float64(cx), float64(cy))
		drawCircle(dst, round(wx), round(wy), round(float64(r)*t.Scale), col, outlinePx)
	case *shape.Ellipse:
		cx, cy, rx, ry := v.Pixels()
		wx, wy := t.ImageToWidget(float64(cx), float64(cy))
		drawEllipse(dst, round(wx), round(wy),
			round(float64(rx)*t.Scale), round(float64(ry)*t.Scale), col, outlinePx)
	case *shape.Polygon:
		c.drawPolygon(dst, v, t, col)
	}
	c.drawLabel(dst, s, t)
}

func (c *Canvas) drawPolygon(dst *image.RGBA, p *shape.Polygon, t *view.Transform, col color.RGBA) {
	pts := p.PixelPoints()
	if len(pts) == 0 {
		return
	}
	wpts := make([]image.Point, len(pts))
	for i, pt := range pts {
		wx, wy := t.ImageToWidget(float64(pt.X), float64(pt.Y))
		wpts[i] = image.Point{X: round(wx), Y: round(wy)}
	}
	for i := 1; i < len(wpts); i++ {
		drawLine(dst, wpts[i-1].X, wpts[i-1].Y, wpts[i].X, wpts[i].Y, col, outlinePx)
	}
	if p.Closed && len(wpts) >= 3 {
		last := wpts[len(wpts)-1]
		drawLine(dst, last.X, last.Y, wpts[0].X, wpts[0].Y, col, outlinePx)
	}
	// Vertex dots so an open outline is visible even with one point.
	for _, wp := range wpts {
		setThickPixel(dst, wp.X, wp.Y, 4, col)
	}
}

// drawRubberBand connects the last placed vertex to the pointer, and hints
// at the closing edge back to the first vertex.
func (c *Canvas) drawRubberBand(dst *image.RGBA, p *shape.Polygon, cursor image.Point, t *view.Transform) {
	pts := p.PixelPoints()
	if len(pts) == 0 {
		return
	}
	wx, wy := t.ImageToWidget(float64(cursor.X), float64(cursor.Y))
	last := pts[len(pts)-1]
	lx, ly := t.ImageToWidget(float64(last.X), float64(last.Y))
	drawLine(dst, round(lx), round(ly), round(wx), round(wy), c.Theme.PreviewOutline, 1)
}

func (c *Canvas) drawSelection(dst *image.RGBA, s shape.Shape, t *view.Transform) {
	r := widgetRect(t, s.Bounds()).Inset(-2)
	drawDashedRect(dst, r, dashLen, 1, c.Theme.SelectionOutline, color.RGBA{0, 0, 0, 255})
	half := c.HandlePx / 2
	for _, pt := range s.Handles() {
		wx, wy := t.ImageToWidget(float64(pt.X), float64(pt.Y))
		hr := image.Rect(round(wx)-half, round(wy)-half, round(wx)+half, round(wy)+half)
		fillRect(dst, hr, c.Theme.HandleFill)
		drawRect(dst, hr, c.Theme.HandleBorder, 1)
	}
}

func (c *Canvas) drawLabel(dst *image.RGBA, s shape.Shape, t *view.Transform) {
	if c.Classes == nil {
		return
	}
	name, col, ok := c.Classes(s.ClassID())
	if !ok || name == "" {
		return
	}
	b := widgetRect(t, s.Bounds())
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
	}
	d.Dot = fixed.P(b.Min.X+labelPadding, b.Min.Y-labelPadding)
	d.DrawString(name)
}

func widgetRect(t *view.Transform, r image.Rectangle) image.Rectangle {
	x0, y0 := t.ImageToWidget(float64(r.Min.X), float64(r.Min.Y))
	x1, y1 := t.ImageToWidget(float64(r.Max.X), float64(r.Max.Y))
	return image.Rect(round(x0), round(y0), round(x1), round(y1))
}

func round(v float64) int { return int(math.Round(v)) }
