package view

import (
	"math"
	"testing"
)

func TestWidgetToImageIdentity(t *testing.T) {
	tr := New(800, 600)
	if x, y := tr.WidgetToImage(100, 50); x != 100 || y != 50 {
		t.Errorf("identity mapping returned (%d, %d)", x, y)
	}
}

func TestWidgetToImageClampsToFrame(t *testing.T) {
	tr := New(800, 600)
	if x, y := tr.WidgetToImage(-20, 900); x != 0 || y != 599 {
		t.Errorf("clamped point = (%d, %d), want (0, 599)", x, y)
	}
}

func TestRoundTripWithPanAndZoom(t *testing.T) {
	tr := New(800, 600)
	tr.Scale = 2.5
	tr.OffsetX = 33
	tr.OffsetY = -17
	wx, wy := tr.ImageToWidget(200, 150)
	ix, iy := tr.WidgetToImage(wx, wy)
	if ix != 200 || iy != 150 {
		t.Errorf("round trip returned (%d, %d), want (200, 150)", ix, iy)
	}
}

func TestZoomAtKeepsCursorPointStationary(t *testing.T) {
	tr := New(800, 600)
	tr.OffsetX = 40
	tr.OffsetY = 25
	const wx, wy = 330.0, 210.0
	beforeX := (wx - tr.OffsetX) / tr.Scale
	beforeY := (wy - tr.OffsetY) / tr.Scale
	tr.ZoomAt(wx, wy, 1.6)
	afterX := (wx - tr.OffsetX) / tr.Scale
	afterY := (wy - tr.OffsetY) / tr.Scale
	if math.Abs(beforeX-afterX) > 1e-9 || math.Abs(beforeY-afterY) > 1e-9 {
		t.Errorf("point under cursor moved from (%v, %v) to (%v, %v)",
			beforeX, beforeY, afterX, afterY)
	}
	if tr.Scale != 1.6 {
		t.Errorf("scale = %v, want 1.6", tr.Scale)
	}
}

func TestZoomClampsToRange(t *testing.T) {
	tr := New(800, 600)
	tr.ZoomAt(0, 0, 100)
	if tr.Scale != tr.MaxScale {
		t.Errorf("scale = %v, want max %v", tr.Scale, tr.MaxScale)
	}
	tr.ZoomAt(0, 0, 1e-6)
	if tr.Scale != tr.MinScale {
		t.Errorf("scale = %v, want min %v", tr.Scale, tr.MinScale)
	}
}

func TestPanBy(t *testing.T) {
	tr := New(800, 600)
	tr.PanBy(12, -7)
	tr.PanBy(3, 2)
	if tr.OffsetX != 15 || tr.OffsetY != -5 {
		t.Errorf("offset = (%v, %v), want (15, -5)", tr.OffsetX, tr.OffsetY)
	}
}

func TestFitCentersImage(t *testing.T) {
	tr := New(800, 600)
	tr.Fit(400, 400)
	// Width is the limiting dimension: 400/800 * 0.9.
	if math.Abs(tr.Scale-0.45) > 1e-9 {
		t.Errorf("scale = %v, want 0.45", tr.Scale)
	}
	wantX := (400 - 800*0.45) / 2
	wantY := (400 - 600*0.45) / 2
	if math.Abs(tr.OffsetX-wantX) > 1e-9 || math.Abs(tr.OffsetY-wantY) > 1e-9 {
		t.Errorf("offset = (%v, %v), want (%v, %v)", tr.OffsetX, tr.OffsetY, wantX, wantY)
	}
}
