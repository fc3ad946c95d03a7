package editor

import (
	"image"

	"github.com/example/dualannot/internal/history"
	"github.com/example/dualannot/internal/shape"
)

// Mode names the interaction state the editor is in. Exactly one gesture
// payload exists at a time; transitions replace it wholesale so no field
// from a previous gesture can leak into the next.
type Mode int

const (
	ModeIdle Mode = iota
	ModePanning
	ModeDrawing
	ModeResizing
	ModeMoving
	ModeDragCopying
	ModePasting
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModePanning:
		return "panning"
	case ModeDrawing:
		return "drawing"
	case ModeResizing:
		return "resizing"
	case ModeMoving:
		return "moving"
	case ModeDragCopying:
		return "drag_copying"
	case ModePasting:
		return "pasting"
	}
	return "unknown"
}

// gesture is the closed set of interaction payloads. Each concrete type
// carries only the fields its mode needs.
type gesture interface {
	mode() Mode
}

type idle struct{}

func (idle) mode() Mode { return ModeIdle }

// panning follows the pointer in widget space.
type panning struct {
	lastX, lastY float64
}

func (*panning) mode() Mode { return ModePanning }

// drawingBox rubber-bands a box from the anchor corner.
type drawingBox struct {
	anchor image.Point
	box    *shape.Box
}

func (*drawingBox) mode() Mode { return ModeDrawing }

// drawingPolygon accumulates vertices click by click. cursor tracks the
// pointer for the rubber-band segment to the last vertex.
type drawingPolygon struct {
	poly   *shape.Polygon
	cursor image.Point
}

func (*drawingPolygon) mode() Mode { return ModeDrawing }

// drawingCircle grows a circle around the press point.
type drawingCircle struct {
	center image.Point
	circle *shape.Circle
}

func (*drawingCircle) mode() Mode { return ModeDrawing }

// drawingEllipse grows an ellipse around the press point.
type drawingEllipse struct {
	center  image.Point
	ellipse *shape.Ellipse
}

func (*drawingEllipse) mode() Mode { return ModeDrawing }

// resizing drags one handle of the target. Deltas are measured from start
// and applied against the geometry the target captured at BeginResize.
// before is the collection snapshot committed to history on release;
// original restores the target if the gesture is cancelled.
type resizing struct {
	target   shape.Shape
	handle   string
	start    image.Point
	original shape.Shape
	before   history.Snapshot
}

func (*resizing) mode() Mode { return ModeResizing }

// moving translates the selected shape under the pointer.
type moving struct {
	target   shape.Shape
	last     image.Point
	original shape.Shape
	before   history.Snapshot
}

func (*moving) mode() Mode { return ModeMoving }

// dragCopying drags a fresh copy of source; cancelling removes the copy and
// restores the source's selection.
type dragCopying struct {
	clone  shape.Shape
	source shape.Shape
	last   image.Point
	before history.Snapshot
}

func (*dragCopying) mode() Mode { return ModeDragCopying }

// pasting floats a provisional clipboard copy under the pointer until it is
// confirmed or cancelled. before predates the provisional insert.
type pasting struct {
	sh     shape.Shape
	before history.Snapshot
}

func (*pasting) mode() Mode { return ModePasting }
