package editor

import (
	"image"
	"math"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/dualannot/internal/classes"
	"github.com/example/dualannot/internal/shape"
)

// zoomStep is the scale factor applied per wheel notch.
const zoomStep = 1.1

// Mouse routes a pointer event. Wheel zooms around the cursor, the middle
// button pans, the left button drives the gesture machine.
func (e *Editor) Mouse(ev mouse.Event) {
	wx, wy := float64(ev.X), float64(ev.Y)
	switch ev.Button {
	case mouse.ButtonWheelUp:
		if ev.Direction == mouse.DirPress {
			e.view.ZoomAt(wx, wy, zoomStep)
		}
		return
	case mouse.ButtonWheelDown:
		if ev.Direction == mouse.DirPress {
			e.view.ZoomAt(wx, wy, 1/zoomStep)
		}
		return
	}
	switch {
	case ev.Button == mouse.ButtonMiddle && ev.Direction == mouse.DirPress:
		e.PanStart(wx, wy)
	case ev.Button == mouse.ButtonMiddle && ev.Direction == mouse.DirRelease:
		e.PanEnd()
	case ev.Button == mouse.ButtonLeft && ev.Direction == mouse.DirPress:
		e.PointerDown(wx, wy, ev.Modifiers&key.ModAlt != 0)
	case ev.Button == mouse.ButtonLeft && ev.Direction == mouse.DirRelease:
		e.PointerUp(wx, wy)
	case ev.Direction == mouse.DirNone:
		e.PointerMove(wx, wy)
	}
}

// PanStart begins a pan. Panning only starts from idle; a pan press during
// another gesture is ignored rather than aborting it.
func (e *Editor) PanStart(wx, wy float64) {
	if e.g.mode() != ModeIdle {
		return
	}
	e.g = &panning{lastX: wx, lastY: wy}
}

// PanEnd finishes a pan. No history entry: panning never touches shapes.
func (e *Editor) PanEnd() {
	if e.g.mode() == ModePanning {
		e.g = idle{}
	}
}

// PointerDown dispatches a primary press. The priority order is: confirm a
// floating paste, extend an in-progress polygon, grab a handle of the
// selection, alt-drag a copy, move the selection, select a shape, start
// drawing, deselect.
func (e *Editor) PointerDown(wx, wy float64, alt bool) {
	px, py := e.view.WidgetToImage(wx, wy)
	pt := image.Point{X: px, Y: py}
	e.pointer = pt

	switch g := e.g.(type) {
	case *pasting:
		e.confirmPaste(g)
		return
	case *drawingPolygon:
		e.polygonClick(g, pt)
		return
	}
	if e.g.mode() != ModeIdle {
		return
	}

	if sel := e.Selected(); sel != nil {
		if h := e.handleAt(sel, wx, wy); h != "" {
			sel.BeginResize()
			e.g = &resizing{
				target:   sel,
				handle:   h,
				start:    pt,
				original: sel.Clone(),
				before:   e.snapshot(),
			}
			return
		}
	}

	if alt {
		if src := e.shapeAt(px, py); src != nil {
			before := e.snapshot()
			clone := src.Copy()
			e.shapes = append(e.shapes, clone)
			e.selectOnly(clone)
			e.g = &dragCopying{clone: clone, source: src, last: pt, before: before}
			return
		}
	}

	if s := e.shapeAt(px, py); s != nil {
		if s.Selected() {
			e.g = &moving{target: s, last: pt, original: s.Clone(), before: e.snapshot()}
			return
		}
		e.selectOnly(s)
		return
	}

	if e.tool != ToolNone && e.task.Allows(e.tool) {
		e.beginDraw(pt)
		return
	}
	e.deselectAll()
}

// PointerMove advances whatever gesture is active.
func (e *Editor) PointerMove(wx, wy float64) {
	px, py := e.view.WidgetToImage(wx, wy)
	pt := image.Point{X: px, Y: py}
	e.pointer = pt

	switch g := e.g.(type) {
	case *panning:
		e.view.PanBy(wx-g.lastX, wy-g.lastY)
		g.lastX, g.lastY = wx, wy
	case *drawingBox:
		g.box.SetPixels(g.anchor.X, g.anchor.Y, px, py)
	case *drawingPolygon:
		g.cursor = pt
	case *drawingCircle:
		r := math.Hypot(float64(px-g.center.X), float64(py-g.center.Y))
		g.circle.SetPixels(g.center.X, g.center.Y, int(math.Round(r)))
	case *drawingEllipse:
		g.ellipse.SetPixels(g.center.X, g.center.Y,
			absInt(px-g.center.X), absInt(py-g.center.Y))
	case *resizing:
		g.target.ResizeFromHandle(g.handle, px-g.start.X, py-g.start.Y)
	case *moving:
		e.moveByPixels(g.target, px-g.last.X, py-g.last.Y)
		g.last = pt
	case *dragCopying:
		e.moveByPixels(g.clone, px-g.last.X, py-g.last.Y)
		g.last = pt
	case *pasting:
		e.centerAt(g.sh, px, py)
	}
}

// PointerUp commits the gestures that end on release. Polygon drawing
// survives releases; it ends on a closing click, Enter or Escape.
func (e *Editor) PointerUp(wx, wy float64) {
	px, py := e.view.WidgetToImage(wx, wy)
	e.pointer = image.Point{X: px, Y: py}

	switch g := e.g.(type) {
	case *drawingBox:
		r := g.box.Bounds()
		if r.Dx() < shape.MinBoxSpan || r.Dy() < shape.MinBoxSpan {
			e.statusf("box too small, discarded")
			e.g = idle{}
			return
		}
		e.commitDraw(g.box)
	case *drawingCircle:
		e.commitDraw(g.circle)
	case *drawingEllipse:
		e.commitDraw(g.ellipse)
	case *resizing:
		g.target.EndResize()
		e.hist.Commit(g.before)
		e.g = idle{}
	case *moving:
		e.hist.Commit(g.before)
		e.g = idle{}
	case *dragCopying:
		e.hist.Commit(g.before)
		e.g = idle{}
	}
}

func (e *Editor) beginDraw(pt image.Point) {
	if _, ok := e.currentClass(); !ok {
		e.statusf("select a class before drawing")
		return
	}
	e.deselectAll()
	switch e.tool {
	case ToolBox:
		b := shape.NewBox(e.imgW, e.imgH)
		b.SetPixels(pt.X, pt.Y, pt.X, pt.Y)
		e.g = &drawingBox{anchor: pt, box: b}
	case ToolPolygon:
		p := shape.NewPolygon(e.imgW, e.imgH)
		p.AddPixelPoint(pt.X, pt.Y)
		e.g = &drawingPolygon{poly: p, cursor: pt}
	case ToolCircle:
		c := shape.NewCircle(e.imgW, e.imgH)
		c.SetPixels(pt.X, pt.Y, 0)
		e.g = &drawingCircle{center: pt, circle: c}
	case ToolEllipse:
		el := shape.NewEllipse(e.imgW, e.imgH)
		el.SetPixels(pt.X, pt.Y, 0, 0)
		e.g = &drawingEllipse{center: pt, ellipse: el}
	}
}

// polygonClick closes the polygon when the click lands near the first
// vertex, otherwise appends a vertex.
func (e *Editor) polygonClick(g *drawingPolygon, pt image.Point) {
	pts := g.poly.PixelPoints()
	if len(pts) >= 3 {
		dx := float64(pt.X - pts[0].X)
		dy := float64(pt.Y - pts[0].Y)
		closePx := float64(e.params.PolygonClosePx)
		if dx*dx+dy*dy <= closePx*closePx {
			e.finishPolygon(g)
			return
		}
	}
	g.poly.AddPixelPoint(pt.X, pt.Y)
}

func (e *Editor) finishPolygon(g *drawingPolygon) bool {
	if !g.poly.Close() {
		e.statusf("polygon needs at least 3 points")
		return false
	}
	e.commitDraw(g.poly)
	return true
}

// commitDraw stamps the current class onto a finished shape, appends it and
// records the pre-commit state for undo.
func (e *Editor) commitDraw(s shape.Shape) {
	cls, ok := e.currentClass()
	if !ok {
		e.statusf("select a class before drawing")
		e.g = idle{}
		return
	}
	s.SetClassID(cls.ID)
	before := e.snapshot()
	e.shapes = append(e.shapes, s)
	e.selectOnly(s)
	e.hist.Commit(before)
	e.g = idle{}
}

func (e *Editor) currentClass() (*classes.Class, bool) {
	if e.classes == nil {
		return nil, false
	}
	return e.classes.Current()
}

func (e *Editor) moveByPixels(s shape.Shape, dx, dy int) {
	s.Move(float64(dx)/float64(e.imgW), float64(dy)/float64(e.imgH))
}

// centerAt moves a shape so its bounds center lands on the image point.
func (e *Editor) centerAt(s shape.Shape, px, py int) {
	b := s.Bounds()
	cx := b.Min.X + b.Dx()/2
	cy := b.Min.Y + b.Dy()/2
	e.moveByPixels(s, px-cx, py-cy)
}
