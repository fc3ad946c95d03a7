// Package editor is the interaction core of the annotation canvas: a
// single-threaded state machine that turns pointer and key events into shape
// edits, with snapshot undo/redo and single-selection discipline.
package editor

import (
	"fmt"
	"image"
	"math"

	"github.com/example/dualannot/internal/classes"
	"github.com/example/dualannot/internal/history"
	"github.com/example/dualannot/internal/shape"
	"github.com/example/dualannot/internal/view"
)

// Tool selects what a press on empty canvas starts drawing.
type Tool int

const (
	ToolNone Tool = iota
	ToolBox
	ToolPolygon
	ToolCircle
	ToolEllipse
)

func (t Tool) String() string {
	switch t {
	case ToolNone:
		return "none"
	case ToolBox:
		return "box"
	case ToolPolygon:
		return "polygon"
	case ToolCircle:
		return "circle"
	case ToolEllipse:
		return "ellipse"
	}
	return "unknown"
}

// Task gates which tools are available: detection annotates with boxes,
// segmentation with region shapes.
type Task int

const (
	TaskDetection Task = iota
	TaskSegmentation
)

func (t Task) String() string {
	if t == TaskSegmentation {
		return "segmentation"
	}
	return "detection"
}

// Allows reports whether the task permits drawing with the tool.
func (t Task) Allows(tool Tool) bool {
	switch tool {
	case ToolNone:
		return true
	case ToolBox:
		return t == TaskDetection
	case ToolPolygon, ToolCircle, ToolEllipse:
		return t == TaskSegmentation
	}
	return false
}

// Params are the geometry and interaction tunables.
type Params struct {
	// PolygonClosePx is the pixel distance to the first vertex within which
	// a click closes the polygon.
	PolygonClosePx int
	// HandlePx is the side of the square hit area around each handle.
	HandlePx int
	// HistoryDepth bounds the undo stack.
	HistoryDepth int
	// ZoomMin and ZoomMax bound the view scale. Zero means the view
	// defaults apply.
	ZoomMin float64
	ZoomMax float64
}

func DefaultParams() Params {
	return Params{
		PolygonClosePx: 20,
		HandlePx:       8,
		HistoryDepth:   history.DefaultDepth,
		ZoomMin:        view.DefaultMinScale,
		ZoomMax:        view.DefaultMaxScale,
	}
}

// ClassSource resolves the class stamped onto newly committed shapes.
type ClassSource interface {
	Current() (*classes.Class, bool)
}

// Option configures an Editor.
type Option func(*Editor)

// WithParams overrides the default tunables.
func WithParams(p Params) Option {
	return func(e *Editor) { e.params = p }
}

// WithClasses wires the class registry.
func WithClasses(src ClassSource) Option {
	return func(e *Editor) { e.classes = src }
}

// WithStatus wires a sink for one-line user-facing messages.
func WithStatus(fn func(string)) Option {
	return func(e *Editor) { e.status = fn }
}

// WithTask sets the starting annotation task.
func WithTask(t Task) Option {
	return func(e *Editor) { e.task = t }
}

// Editor owns the shape collection, the view transform and the active
// gesture. It is not safe for concurrent use; the event loop is the only
// caller.
type Editor struct {
	params  Params
	view    *view.Transform
	shapes  []shape.Shape
	g       gesture
	tool    Tool
	task    Task
	clip    shape.Shape
	hist    *history.Stack
	classes ClassSource
	status  func(string)

	imgW, imgH int
	// last pointer position in image pixels, used as the default paste
	// anchor.
	pointer image.Point
}

// New returns an idle editor over an image of the given size.
func New(imgW, imgH int, opts ...Option) *Editor {
	e := &Editor{
		params: DefaultParams(),
		g:      idle{},
		task:   TaskDetection,
		imgW:   imgW,
		imgH:   imgH,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.view = e.newView(imgW, imgH)
	e.hist = history.New(e.params.HistoryDepth)
	e.pointer = image.Point{X: imgW / 2, Y: imgH / 2}
	return e
}

func (e *Editor) Mode() Mode            { return e.g.mode() }
func (e *Editor) Tool() Tool            { return e.tool }
func (e *Editor) Task() Task            { return e.task }
func (e *Editor) View() *view.Transform { return e.view }
func (e *Editor) Shapes() []shape.Shape { return e.shapes }
func (e *Editor) CanUndo() bool         { return e.hist.CanUndo() }
func (e *Editor) CanRedo() bool         { return e.hist.CanRedo() }
func (e *Editor) HasClipboard() bool    { return e.clip != nil }
func (e *Editor) ImageSize() (int, int) { return e.imgW, e.imgH }

// Selected returns the selected shape, or nil.
func (e *Editor) Selected() shape.Shape {
	for _, s := range e.shapes {
		if s.Selected() {
			return s
		}
	}
	return nil
}

// Preview returns the in-progress drawing shape, or nil. The pasting
// provisional already lives in the collection and is not repeated here.
func (e *Editor) Preview() shape.Shape {
	switch g := e.g.(type) {
	case *drawingBox:
		return g.box
	case *drawingPolygon:
		return g.poly
	case *drawingCircle:
		return g.circle
	case *drawingEllipse:
		return g.ellipse
	}
	return nil
}

// PolygonCursor returns the rubber-band endpoint while a polygon is being
// drawn.
func (e *Editor) PolygonCursor() (image.Point, bool) {
	if g, ok := e.g.(*drawingPolygon); ok {
		return g.cursor, true
	}
	return image.Point{}, false
}

func (e *Editor) statusf(format string, args ...any) {
	if e.status != nil {
		e.status(fmt.Sprintf(format, args...))
	}
}

// snapshot deep-clones the collection for a history commit or gesture
// rollback.
func (e *Editor) snapshot() history.Snapshot {
	snap := make(history.Snapshot, len(e.shapes))
	for i, s := range e.shapes {
		snap[i] = s.Clone()
	}
	return snap
}

func (e *Editor) deselectAll() {
	for _, s := range e.shapes {
		s.SetSelected(false)
	}
}

func (e *Editor) selectOnly(target shape.Shape) {
	for _, s := range e.shapes {
		s.SetSelected(s == target)
	}
}

// shapeAt returns the topmost shape containing the image point. Later
// shapes draw on top, so the scan runs back to front.
func (e *Editor) shapeAt(px, py int) shape.Shape {
	for i := len(e.shapes) - 1; i >= 0; i-- {
		if e.shapes[i].ContainsPoint(px, py) {
			return e.shapes[i]
		}
	}
	return nil
}

// handleAt returns the handle of s whose hit square covers the pointer. The
// comparison runs in widget space so the grab tolerance stays a constant
// number of screen pixels at any zoom.
func (e *Editor) handleAt(s shape.Shape, wx, wy float64) string {
	half := float64(e.params.HandlePx) / 2
	if half < 1 {
		half = 1
	}
	for name, pt := range s.Handles() {
		hx, hy := e.view.ImageToWidget(float64(pt.X), float64(pt.Y))
		if math.Abs(wx-hx) <= half && math.Abs(wy-hy) <= half {
			return name
		}
	}
	return ""
}

func (e *Editor) removeShape(target shape.Shape) {
	for i, s := range e.shapes {
		if s == target {
			e.shapes = append(e.shapes[:i], e.shapes[i+1:]...)
			return
		}
	}
}

// replaceShape swaps target for repl in place, keeping z-order.
func (e *Editor) replaceShape(target, repl shape.Shape) {
	for i, s := range e.shapes {
		if s == target {
			e.shapes[i] = repl
			return
		}
	}
}

// SetTool switches the drawing tool, cancelling any in-progress gesture.
// Tools outside the current task are refused.
func (e *Editor) SetTool(t Tool) bool {
	if !e.task.Allows(t) {
		e.statusf("%s tool is not available in %s mode", t, e.task)
		return false
	}
	e.Cancel()
	e.tool = t
	return true
}

// SetTask switches between detection and segmentation. The tool resets to
// none and any gesture is cancelled; shapes of the other task stay in the
// collection.
func (e *Editor) SetTask(t Task) {
	if t == e.task {
		return
	}
	e.Cancel()
	e.task = t
	e.tool = ToolNone
	e.statusf("%s mode", t)
}

// SetImage replaces the image under annotation: shapes, history, clipboard
// and gesture all reset.
func (e *Editor) SetImage(imgW, imgH int) {
	if imgW < 1 || imgH < 1 {
		return
	}
	e.imgW, e.imgH = imgW, imgH
	e.shapes = nil
	e.clip = nil
	e.g = idle{}
	e.hist.Reset()
	e.view = e.newView(imgW, imgH)
	e.pointer = image.Point{X: imgW / 2, Y: imgH / 2}
}

// newView builds a transform with the configured zoom bounds. Zero params
// leave the view defaults in place.
func (e *Editor) newView(imgW, imgH int) *view.Transform {
	v := view.New(imgW, imgH)
	if e.params.ZoomMin > 0 {
		v.MinScale = e.params.ZoomMin
	}
	if e.params.ZoomMax > 0 {
		v.MaxScale = e.params.ZoomMax
	}
	return v
}

// LoadShapes replaces the collection, for example from a project file. The
// load is treated as the document's base state: history resets and nothing
// is selected.
func (e *Editor) LoadShapes(shapes []shape.Shape) {
	e.Cancel()
	e.shapes = shapes
	for _, s := range e.shapes {
		s.SetSelected(false)
		s.SetImageSize(e.imgW, e.imgH)
	}
	e.hist.Reset()
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
