package shape

import (
	"image"

	"github.com/google/uuid"
)

// Kind identifies a shape variant in the tagged wire format.
type Kind string

const (
	KindBox     Kind = "box"
	KindPolygon Kind = "polygon"
	KindCircle  Kind = "circle"
	KindEllipse Kind = "ellipse"
)

// Minimum sizes in image pixels. A box resize that would collapse below
// MinBoxSpan is rejected outright; circle and ellipse radii clamp to
// MinRadius instead so the shape resists collapsing while the drag continues.
const (
	MinBoxSpan = 10
	MinRadius  = 5
)

// Corner handle names shared by box, circle and ellipse.
const (
	HandleTopLeft     = "top_left"
	HandleTopRight    = "top_right"
	HandleBottomLeft  = "bottom_left"
	HandleBottomRight = "bottom_right"
)

// Shape is the capability set shared by all annotation shapes. Geometry is
// stored normalized to [0,1] against the shape's own image dimensions, so a
// shape converts to pixels without consulting any canvas state.
type Shape interface {
	ID() string
	Kind() Kind
	ClassID() string
	SetClassID(id string)
	Selected() bool
	SetSelected(sel bool)
	ImageSize() (w, h int)
	SetImageSize(w, h int)

	// ContainsPoint reports whether the image-pixel point lies inside.
	ContainsPoint(px, py int) bool
	// Bounds returns the pixel-space bounding rectangle.
	Bounds() image.Rectangle
	// Move translates by a normalized delta. The model never clamps a move;
	// shapes may sit partially outside the frame and rendering clips them.
	Move(dx, dy float64)
	// Handles returns the named resize handles at their pixel positions.
	Handles() map[string]image.Point
	// BeginResize captures the pixel geometry that subsequent
	// ResizeFromHandle deltas are anchored to.
	BeginResize()
	// ResizeFromHandle applies a pixel delta, measured from the gesture
	// start, against the captured origin. It reports false and leaves the
	// geometry untouched when no origin is captured, the handle name is
	// unknown, or the result would collapse below the shape's minimum size.
	ResizeFromHandle(handle string, dx, dy int) bool
	// EndResize discards the captured origin.
	EndResize()

	// Clone returns a deep copy preserving the shape's id. Used for history
	// snapshots and gesture rollback.
	Clone() Shape
	// Copy returns a deep copy under a freshly generated id. Used for the
	// clipboard and drag-duplicate.
	Copy() Shape

	MarshalJSON() ([]byte, error)
}

// NewID returns a short unique shape id.
func NewID() string { return uuid.NewString()[:8] }

// common carries the identity and bookkeeping fields every shape shares.
type common struct {
	id       string
	classID  string
	imgW     int
	imgH     int
	selected bool
}

func newCommon(imgW, imgH int) common {
	if imgW < 1 {
		imgW = 1
	}
	if imgH < 1 {
		imgH = 1
	}
	return common{id: NewID(), imgW: imgW, imgH: imgH}
}

func (c *common) ID() string            { return c.id }
func (c *common) ClassID() string       { return c.classID }
func (c *common) SetClassID(id string)  { c.classID = id }
func (c *common) Selected() bool        { return c.selected }
func (c *common) SetSelected(sel bool)  { c.selected = sel }
func (c *common) ImageSize() (int, int) { return c.imgW, c.imgH }

func (c *common) SetImageSize(w, h int) {
	if w > 0 {
		c.imgW = w
	}
	if h > 0 {
		c.imgH = h
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// resolveBounds applies a corner-handle delta to the origin bounds, pushes a
// degenerate edge out by one pixel and clamps every edge to the image frame.
// ok is false for an unrecognized handle name.
func resolveBounds(origin image.Rectangle, handle string, dx, dy, imgW, imgH int) (image.Rectangle, bool) {
	left, top := origin.Min.X, origin.Min.Y
	right, bottom := origin.Max.X, origin.Max.Y
	switch handle {
	case HandleTopLeft:
		left += dx
		top += dy
	case HandleTopRight:
		right += dx
		top += dy
	case HandleBottomLeft:
		left += dx
		bottom += dy
	case HandleBottomRight:
		right += dx
		bottom += dy
	default:
		return image.Rectangle{}, false
	}
	left = clampInt(left, 0, imgW-1)
	right = clampInt(right, 0, imgW-1)
	top = clampInt(top, 0, imgH-1)
	bottom = clampInt(bottom, 0, imgH-1)
	if right <= left {
		right = left + 1
	}
	if bottom <= top {
		bottom = top + 1
	}
	return image.Rect(left, top, right, bottom), true
}
