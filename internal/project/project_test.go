package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/dualannot/internal/classes"
	"github.com/example/dualannot/internal/shape"
)

func buildSession(t *testing.T) (*classes.Manager, []shape.Shape) {
	t.Helper()
	mgr := classes.NewManager()
	car, err := mgr.Add("car", "#ff0000")
	if err != nil {
		t.Fatal(err)
	}
	box := shape.NewBox(800, 600)
	box.SetPixels(200, 150, 600, 450)
	box.SetClassID(car.ID)
	poly := shape.NewPolygon(800, 600)
	poly.AddPixelPoint(100, 100)
	poly.AddPixelPoint(300, 100)
	poly.AddPixelPoint(200, 300)
	poly.Close()
	poly.SetClassID(car.ID)
	return mgr, []shape.Shape{box, poly}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	mgr, shapes := buildSession(t)
	doc := New("frames/001.png", 800, 600)
	doc.SetClasses(mgr)
	if err := doc.SetShapes(shapes); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "session", "001.json")
	if err := Save(path, doc); err != nil {
		t.Fatal(err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if back.Image != "frames/001.png" || back.ImageWidth != 800 || back.ImageHeight != 600 {
		t.Errorf("header drifted: %+v", back)
	}

	restored, err := back.DecodeShapes()
	if err != nil {
		t.Fatal(err)
	}
	if len(restored) != 2 {
		t.Fatalf("restored %d shapes, want 2", len(restored))
	}
	if restored[0].ID() != shapes[0].ID() || restored[0].Kind() != shape.KindBox {
		t.Error("box identity lost")
	}
	p, ok := restored[1].(*shape.Polygon)
	if !ok || !p.Closed || len(p.Points) != 3 {
		t.Error("polygon geometry lost")
	}

	mgr2, err := back.DecodeClasses()
	if err != nil {
		t.Fatal(err)
	}
	if got := mgr2.ByName("car"); got == nil || classes.FormatHex(got.Color) != "#ff0000" {
		t.Error("class registry lost")
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("garbage file loaded")
	}
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file loaded")
	}
}

func TestDecodeShapesNeedsImageSize(t *testing.T) {
	d := New("x.png", 0, 0)
	if _, err := d.DecodeShapes(); err == nil {
		t.Error("decoded shapes with no image size")
	}
}

func TestExportDetection(t *testing.T) {
	mgr, shapes := buildSession(t)
	var sb strings.Builder
	n, err := ExportDetection(&sb, shapes, mgr)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("wrote %d lines, want 1 (polygon skipped)", n)
	}
	want := "0 0.500000 0.500000 0.500000 0.500000\n"
	if sb.String() != want {
		t.Errorf("export = %q, want %q", sb.String(), want)
	}
}

func TestExportDetectionUnknownClass(t *testing.T) {
	mgr, shapes := buildSession(t)
	shapes[0].SetClassID("ghost")
	var sb strings.Builder
	if _, err := ExportDetection(&sb, shapes, mgr); err == nil {
		t.Error("unknown class exported")
	}
}

func TestExportSegmentation(t *testing.T) {
	mgr, shapes := buildSession(t)
	circle := shape.NewCircle(800, 600)
	circle.SetPixels(400, 300, 60)
	cls, _ := mgr.Current()
	circle.SetClassID(cls.ID)
	shapes = append(shapes, circle)

	var sb strings.Builder
	n, err := ExportSegmentation(&sb, shapes, mgr)
	if err != nil {
		t.Fatal(err)
	}
	// The box is skipped; the polygon and the flattened circle export.
	if n != 2 {
		t.Fatalf("wrote %d lines, want 2", n)
	}
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	polyFields := strings.Fields(lines[0])
	if len(polyFields) != 1+3*2 {
		t.Errorf("polygon line has %d fields, want 7", len(polyFields))
	}
	circleFields := strings.Fields(lines[1])
	if len(circleFields) != 1+32*2 {
		t.Errorf("circle line has %d fields, want 65", len(circleFields))
	}
	if polyFields[0] != "0" || circleFields[0] != "0" {
		t.Error("class index wrong")
	}
}
