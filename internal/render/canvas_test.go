package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/dualannot/internal/classes"
	"github.com/example/dualannot/internal/editor"
	"github.com/example/dualannot/internal/theme"
)

func testEditor(t *testing.T) (*editor.Editor, *classes.Manager) {
	t.Helper()
	mgr := classes.NewManager()
	if _, err := mgr.Add("car", "#ff0000"); err != nil {
		t.Fatal(err)
	}
	ed := editor.New(200, 150, editor.WithClasses(mgr))
	return ed, mgr
}

func lookup(mgr *classes.Manager) ClassLookup {
	return func(id string) (string, color.RGBA, bool) {
		c, ok := mgr.Get(id)
		if !ok {
			return "", color.RGBA{}, false
		}
		return c.Name, c.Color, true
	}
}

func countColor(img *image.RGBA, want color.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == want {
				n++
			}
		}
	}
	return n
}

func TestFramePaintsBackdrop(t *testing.T) {
	ed, mgr := testEditor(t)
	c := NewCanvas(theme.Default(), 8, lookup(mgr))
	dst := image.NewRGBA(image.Rect(0, 0, 64, 64))
	c.Frame(dst, nil, ed)

	if countColor(dst, c.Theme.CheckerLight) == 0 {
		t.Error("no light checker cells painted")
	}
	if countColor(dst, c.Theme.CheckerDark) == 0 {
		t.Error("no dark checker cells painted")
	}
}

func TestFrameDrawsShapeInClassColor(t *testing.T) {
	ed, mgr := testEditor(t)
	ed.SetTool(editor.ToolBox)
	ed.PointerDown(40, 40, false)
	ed.PointerMove(120, 100)
	ed.PointerUp(120, 100)

	c := NewCanvas(theme.Default(), 8, lookup(mgr))
	dst := image.NewRGBA(image.Rect(0, 0, 200, 150))
	c.Frame(dst, nil, ed)

	red := color.RGBA{R: 0xff, A: 0xff}
	if countColor(dst, red) == 0 {
		t.Error("box outline not painted in its class color")
	}
	// The committed shape is selected, so handles must be visible.
	if countColor(dst, c.Theme.HandleFill) == 0 {
		t.Error("selection handles not painted")
	}
}

func TestSnapshotRendersNativeResolution(t *testing.T) {
	ed, mgr := testEditor(t)
	ed.SetTool(editor.ToolBox)
	ed.PointerDown(40, 40, false)
	ed.PointerMove(120, 100)
	ed.PointerUp(120, 100)
	// The snapshot must not follow the on-screen zoom.
	ed.View().ZoomAt(0, 0, 4)

	c := NewCanvas(theme.Default(), 8, lookup(mgr))
	snap := c.Snapshot(nil, ed)

	if got, want := snap.Bounds(), image.Rect(0, 0, 200, 150); got != want {
		t.Fatalf("snapshot bounds = %v, want %v", got, want)
	}
	red := color.RGBA{R: 0xff, A: 0xff}
	if snap.RGBAAt(40, 70) != red {
		t.Error("box outline not at its native-resolution position")
	}
	if countColor(snap, c.Theme.HandleFill) != 0 {
		t.Error("selection handles leaked into the snapshot")
	}
}

func TestFrameDrawsPreview(t *testing.T) {
	ed, mgr := testEditor(t)
	ed.SetTask(editor.TaskSegmentation)
	ed.SetTool(editor.ToolCircle)
	ed.PointerDown(100, 75, false)
	ed.PointerMove(130, 75)

	c := NewCanvas(theme.Default(), 8, lookup(mgr))
	dst := image.NewRGBA(image.Rect(0, 0, 200, 150))
	c.Frame(dst, nil, ed)

	if countColor(dst, c.Theme.PreviewOutline) == 0 {
		t.Error("in-progress circle not painted in the preview color")
	}
}
