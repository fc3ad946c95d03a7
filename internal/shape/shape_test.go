package shape

import (
	"encoding/json"
	"image"
	"math"
	"testing"
)

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestBoxSetPixelsNormalizes(t *testing.T) {
	b := NewBox(800, 600)
	// Corners given in reverse order still normalize the same way.
	b.SetPixels(300, 250, 100, 50)
	if math.Abs(b.X-0.25) > 1e-9 || math.Abs(b.Y-0.25) > 1e-9 {
		t.Errorf("center = (%v, %v), want (0.25, 0.25)", b.X, b.Y)
	}
	if math.Abs(b.W-0.25) > 1e-9 {
		t.Errorf("width = %v, want 0.25", b.W)
	}
	if math.Abs(b.H-float64(200)/600) > 1e-9 {
		t.Errorf("height = %v, want %v", b.H, float64(200)/600)
	}
}

func TestBoxPixelRoundTrip(t *testing.T) {
	cases := []struct{ x1, y1, x2, y2 int }{
		{100, 50, 300, 250},
		{0, 0, 799, 599},
		{13, 27, 461, 333},
		{5, 5, 17, 19},
	}
	b := NewBox(800, 600)
	for _, tc := range cases {
		b.SetPixels(tc.x1, tc.y1, tc.x2, tc.y2)
		x1, y1, x2, y2 := b.Pixels()
		for i, pair := range [][2]int{{x1, tc.x1}, {y1, tc.y1}, {x2, tc.x2}, {y2, tc.y2}} {
			if absInt(pair[0]-pair[1]) > 1 {
				t.Errorf("case %+v edge %d: got %d, want %d within 1px", tc, i, pair[0], pair[1])
			}
		}
	}
}

func TestBoxZeroDeltaResizeIsNoop(t *testing.T) {
	b := NewBox(800, 600)
	b.SetPixels(100, 100, 300, 300)
	before := b.Bounds()
	b.BeginResize()
	if !b.ResizeFromHandle(HandleBottomRight, 0, 0) {
		t.Fatal("zero delta resize rejected")
	}
	b.EndResize()
	if b.Bounds() != before {
		t.Errorf("bounds changed on zero delta: %v != %v", b.Bounds(), before)
	}
}

func TestBoxResizeAnchorsToOrigin(t *testing.T) {
	b := NewBox(800, 600)
	b.SetPixels(100, 100, 300, 300)
	b.BeginResize()
	// Two deltas from the same press; the second must apply to the captured
	// geometry, not to the result of the first.
	b.ResizeFromHandle(HandleBottomRight, 50, 50)
	b.ResizeFromHandle(HandleBottomRight, 20, 20)
	b.EndResize()
	got := b.Bounds()
	want := image.Rect(100, 100, 320, 320)
	if got != want {
		t.Errorf("bounds = %v, want %v", got, want)
	}
}

func TestBoxResizeRejectsBelowMinimum(t *testing.T) {
	b := NewBox(800, 600)
	b.SetPixels(100, 100, 300, 300)
	before := b.Bounds()
	b.BeginResize()
	if b.ResizeFromHandle(HandleBottomRight, -195, 0) {
		t.Error("resize below minimum span accepted")
	}
	if b.Bounds() != before {
		t.Errorf("rejected resize mutated geometry: %v", b.Bounds())
	}
}

func TestBoxResizeWithoutBeginRejected(t *testing.T) {
	b := NewBox(800, 600)
	b.SetPixels(100, 100, 300, 300)
	if b.ResizeFromHandle(HandleTopLeft, 10, 10) {
		t.Error("resize accepted without captured origin")
	}
}

func TestBoxResizeUnknownHandleRejected(t *testing.T) {
	b := NewBox(800, 600)
	b.SetPixels(100, 100, 300, 300)
	b.BeginResize()
	defer b.EndResize()
	if b.ResizeFromHandle("middle", 10, 10) {
		t.Error("unknown handle accepted")
	}
}

func TestBoxResizeClampsToFrame(t *testing.T) {
	b := NewBox(800, 600)
	b.SetPixels(600, 400, 780, 580)
	b.BeginResize()
	if !b.ResizeFromHandle(HandleBottomRight, 500, 500) {
		t.Fatal("resize rejected")
	}
	b.EndResize()
	r := b.Bounds()
	if r.Max.X > 800 || r.Max.Y > 600 {
		t.Errorf("bounds escaped the frame: %v", r)
	}
}

func TestCircleRadiusClamps(t *testing.T) {
	c := NewCircle(800, 600)
	c.SetPixels(400, 300, 2)
	if _, _, r := c.Pixels(); r != MinRadius {
		t.Errorf("radius = %d, want clamp to %d", r, MinRadius)
	}
	c.SetPixels(400, 300, 900)
	if _, _, r := c.Pixels(); r != 300 {
		t.Errorf("radius = %d, want clamp to half the smaller dimension", r)
	}
}

func TestCircleRadiusNormalizedByLargerDimension(t *testing.T) {
	c := NewCircle(800, 600)
	c.SetPixels(400, 300, 100)
	if c.R != 0.125 {
		t.Errorf("R = %v, want 0.125 (100/800)", c.R)
	}
	if _, _, r := c.Pixels(); r != 100 {
		t.Errorf("pixel radius = %d, want 100", r)
	}

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var rec struct {
		Radius float64 `json:"radius"`
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.Radius != 0.125 {
		t.Errorf("serialized radius = %v, want 0.125", rec.Radius)
	}
}

func TestCircleResizeCollapseClampsToMinimum(t *testing.T) {
	c := NewCircle(800, 600)
	c.SetPixels(400, 300, 100)
	c.BeginResize()
	// Drag the corner far past the opposite edge. The degenerate bounds push
	// out by a pixel and the radius floor takes over.
	if !c.ResizeFromHandle(HandleBottomRight, -400, -400) {
		t.Fatal("resize rejected")
	}
	c.EndResize()
	if _, _, r := c.Pixels(); r != MinRadius {
		t.Errorf("radius = %d, want %d", r, MinRadius)
	}
}

func TestCircleContainsPoint(t *testing.T) {
	c := NewCircle(800, 600)
	c.SetPixels(400, 300, 50)
	if !c.ContainsPoint(400, 300) {
		t.Error("center not contained")
	}
	if !c.ContainsPoint(440, 300) {
		t.Error("interior point not contained")
	}
	if c.ContainsPoint(460, 300) {
		t.Error("exterior point contained")
	}
}

func TestEllipseDegenerateEdgePushesOut(t *testing.T) {
	e := NewEllipse(800, 600)
	e.SetPixels(200, 200, 80, 60)
	e.BeginResize()
	// Collapse width completely. The right edge is forced one pixel past the
	// left edge instead of inverting.
	if !e.ResizeFromHandle(HandleBottomRight, -200, 0) {
		t.Fatal("resize rejected")
	}
	e.EndResize()
	_, _, rx, ry := e.Pixels()
	if rx != MinRadius {
		t.Errorf("rx = %d, want clamp to %d", rx, MinRadius)
	}
	if ry < MinRadius {
		t.Errorf("ry = %d collapsed below the floor", ry)
	}
}

func TestEllipseContainsPoint(t *testing.T) {
	e := NewEllipse(800, 600)
	e.SetPixels(400, 300, 100, 50)
	if !e.ContainsPoint(400, 300) {
		t.Error("center not contained")
	}
	if !e.ContainsPoint(490, 300) {
		t.Error("point inside the wide axis not contained")
	}
	if e.ContainsPoint(400, 390) {
		t.Error("point outside the short axis contained")
	}
}

func TestPolygonOpenNeverContains(t *testing.T) {
	p := NewPolygon(800, 600)
	p.AddPixelPoint(100, 100)
	p.AddPixelPoint(300, 100)
	p.AddPixelPoint(200, 300)
	if p.ContainsPoint(200, 150) {
		t.Error("open polygon reported containment")
	}
	if !p.Close() {
		t.Fatal("close rejected with three vertices")
	}
	if !p.ContainsPoint(200, 150) {
		t.Error("closed polygon missed an interior point")
	}
	if p.ContainsPoint(100, 300) {
		t.Error("closed polygon contained an exterior point")
	}
}

func TestPolygonCloseNeedsThreeVertices(t *testing.T) {
	p := NewPolygon(800, 600)
	p.AddPixelPoint(100, 100)
	p.AddPixelPoint(300, 100)
	if p.Close() {
		t.Error("closed with two vertices")
	}
	if p.Closed {
		t.Error("Closed flag set after rejected close")
	}
}

func TestPolygonVertexDrag(t *testing.T) {
	p := NewPolygon(800, 600)
	p.AddPixelPoint(100, 100)
	p.AddPixelPoint(300, 100)
	p.AddPixelPoint(200, 300)
	p.Close()
	p.BeginResize()
	if !p.ResizeFromHandle("vertex_1", 40, 20) {
		t.Fatal("vertex drag rejected")
	}
	if !p.ResizeFromHandle("vertex_1", 10, 10) {
		t.Fatal("second vertex drag rejected")
	}
	p.EndResize()
	pts := p.PixelPoints()
	if pts[1].X != 310 || pts[1].Y != 110 {
		t.Errorf("vertex = %v, want (310, 110) anchored to the captured position", pts[1])
	}
	if pts[0].X != 100 || pts[2].Y != 300 {
		t.Error("untouched vertices moved")
	}
	if p.ResizeFromHandle("vertex_9", 1, 1) {
		t.Error("out of range vertex accepted")
	}
}

func TestCloneKeepsIDCopyRegeneratesIt(t *testing.T) {
	shapes := []Shape{
		NewBox(800, 600),
		NewCircle(800, 600),
		NewEllipse(800, 600),
		NewPolygon(800, 600),
	}
	for _, s := range shapes {
		s.SetClassID("cls1")
		s.SetSelected(true)
		clone := s.Clone()
		if clone.ID() != s.ID() {
			t.Errorf("%s: clone id changed", s.Kind())
		}
		cp := s.Copy()
		if cp.ID() == s.ID() {
			t.Errorf("%s: copy kept the id", s.Kind())
		}
		if cp.ClassID() != "cls1" {
			t.Errorf("%s: copy dropped the class", s.Kind())
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	p := NewPolygon(800, 600)
	p.AddPixelPoint(100, 100)
	p.AddPixelPoint(300, 100)
	p.AddPixelPoint(200, 300)
	clone := p.Clone().(*Polygon)
	p.Points[0][0] = 0.9
	if clone.Points[0][0] == 0.9 {
		t.Error("clone shares the vertex slice")
	}
}

func TestCodecRoundTrip(t *testing.T) {
	box := NewBox(800, 600)
	box.SetPixels(100, 100, 300, 300)
	box.SetClassID("cls1")
	circle := NewCircle(800, 600)
	circle.SetPixels(400, 300, 50)
	ellipse := NewEllipse(800, 600)
	ellipse.SetPixels(400, 300, 100, 50)
	poly := NewPolygon(800, 600)
	poly.AddPixelPoint(100, 100)
	poly.AddPixelPoint(300, 100)
	poly.AddPixelPoint(200, 300)
	poly.Close()

	for _, s := range []Shape{box, circle, ellipse, poly} {
		data, err := json.Marshal(s)
		if err != nil {
			t.Fatalf("%s: marshal: %v", s.Kind(), err)
		}
		back, err := Unmarshal(data, 800, 600)
		if err != nil {
			t.Fatalf("%s: unmarshal: %v", s.Kind(), err)
		}
		if back.ID() != s.ID() || back.Kind() != s.Kind() || back.ClassID() != s.ClassID() {
			t.Errorf("%s: identity not preserved", s.Kind())
		}
		again, err := json.Marshal(back)
		if err != nil {
			t.Fatalf("%s: remarshal: %v", s.Kind(), err)
		}
		if string(again) != string(data) {
			t.Errorf("%s: round trip drifted:\n%s\n%s", s.Kind(), data, again)
		}
	}
}

func TestUnmarshalUnknownType(t *testing.T) {
	if _, err := Unmarshal([]byte(`{"type":"star"}`), 800, 600); err == nil {
		t.Error("unknown type accepted")
	}
}

func TestBoxYOLO(t *testing.T) {
	b := NewBox(800, 600)
	b.SetPixels(200, 150, 600, 450)
	got := b.YOLO(2)
	want := "2 0.500000 0.500000 0.500000 0.500000"
	if got != want {
		t.Errorf("YOLO line = %q, want %q", got, want)
	}
}
