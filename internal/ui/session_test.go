package ui

import (
	"image"
	"testing"

	"golang.org/x/mobile/event/key"

	"github.com/example/dualannot/internal/classes"
	"github.com/example/dualannot/internal/editor"
)

func testSession(t *testing.T) *Session {
	t.Helper()
	mgr := classes.NewManager()
	if _, err := mgr.Add("car", ""); err != nil {
		t.Fatalf("adding class: %v", err)
	}
	if _, err := mgr.Add("person", ""); err != nil {
		t.Fatalf("adding class: %v", err)
	}
	ed := editor.New(640, 480, editor.WithClasses(mgr))
	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	return NewSession(ed, mgr, img)
}

func TestToolbarLayoutDoesNotOverlap(t *testing.T) {
	s := testSession(t)
	s.layoutToolbar()
	for i, a := range s.buttons {
		if a.Rect().Empty() {
			t.Fatalf("button %q has empty rect", a.Label)
		}
		for _, b := range s.buttons[i+1:] {
			if a.Rect().Overlaps(b.Rect()) {
				t.Errorf("buttons %q and %q overlap", a.Label, b.Label)
			}
		}
	}
}

func TestToolbarIncludesClassPalette(t *testing.T) {
	s := testSession(t)
	classRow := s.buttons[s.toolButtons:]
	if len(classRow) != 2 {
		t.Fatalf("class buttons = %d, want 2", len(classRow))
	}
	if classRow[0].Label != "car" || classRow[1].Label != "person" {
		t.Fatalf("class labels = %q, %q", classRow[0].Label, classRow[1].Label)
	}
	if classRow[0].Swatch.A == 0 {
		t.Fatal("class button missing color swatch")
	}
}

func TestShortcutSelectsTool(t *testing.T) {
	s := testSession(t)
	if !s.handleKey(key.Event{Rune: 'b', Direction: key.DirPress}) {
		t.Fatal("shortcut not handled")
	}
	if s.ed.Tool() != editor.ToolBox {
		t.Fatalf("tool = %v, want %v", s.ed.Tool(), editor.ToolBox)
	}
}

func TestShortcutIgnoresKeyRelease(t *testing.T) {
	s := testSession(t)
	if s.handleKey(key.Event{Rune: 'b', Direction: key.DirRelease}) {
		t.Fatal("release should not trigger shortcuts")
	}
}

func TestImageCopyShortcutBound(t *testing.T) {
	s := testSession(t)
	ev := key.Event{
		Rune:      'c',
		Modifiers: key.ModControl | key.ModShift,
		Direction: key.DirPress,
	}
	if !s.handleKey(ev) {
		t.Fatal("image copy shortcut not handled")
	}
	// Headless runs have no system clipboard, so the action must report that
	// instead of writing anywhere.
	if s.status != "system clipboard unavailable" {
		t.Fatalf("status = %q, want clipboard warning", s.status)
	}
}

func TestClassButtonChangesCurrent(t *testing.T) {
	s := testSession(t)
	second := s.buttons[s.toolButtons+1]
	second.Activate()
	cur, ok := s.mgr.Current()
	if !ok || cur.Name != "person" {
		t.Fatalf("current class = %v, want person", cur)
	}
	if !second.Active() {
		t.Fatal("selected class button should render active")
	}
}
