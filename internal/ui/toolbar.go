package ui

import (
	"image"

	"golang.org/x/mobile/event/key"

	"github.com/example/dualannot/internal/editor"
)

// buildToolbar assembles the two button rows: tools and actions on the
// first, the class palette on the second. Rectangles are assigned later by
// layoutToolbar once the window size is known.
func (s *Session) buildToolbar() {
	toolButton := func(label string, t editor.Tool) *Button {
		return &Button{
			Label:  label,
			Action: func() { s.ed.SetTool(t) },
			Active: func() bool { return s.ed.Tool() == t },
		}
	}

	s.buttons = []*Button{
		toolButton("Select", editor.ToolNone),
		toolButton("Box", editor.ToolBox),
		toolButton("Polygon", editor.ToolPolygon),
		toolButton("Circle", editor.ToolCircle),
		toolButton("Ellipse", editor.ToolEllipse),
		{
			Label:  "Mode",
			Action: s.toggleTask,
			Active: func() bool { return s.ed.Task() == editor.TaskSegmentation },
		},
		{Label: "Fit", Action: s.fitCanvas},
		{Label: "Undo", Action: func() { s.ed.Undo() }},
		{Label: "Redo", Action: func() { s.ed.Redo() }},
		{Label: "Delete", Action: func() { s.ed.Delete() }},
		{Label: "Save", Action: s.saveProject},
	}
	s.toolButtons = len(s.buttons)

	for _, c := range s.mgr.All() {
		s.buttons = append(s.buttons, &Button{
			Label:  c.Name,
			Swatch: c.Color,
			Action: func() { s.mgr.SetCurrent(c.ID) },
			Active: func() bool {
				cur, ok := s.mgr.Current()
				return ok && cur.ID == c.ID
			},
		})
	}
}

// layoutToolbar packs the tool buttons onto the first row and the class
// buttons onto the second, each sized to its label.
func (s *Session) layoutToolbar() {
	x := 2
	for _, b := range s.buttons[:s.toolButtons] {
		w := b.width()
		b.SetRect(image.Rect(x, 2, x+w, toolbarRowH-2))
		x += w + 4
	}
	x = 2
	for _, b := range s.buttons[s.toolButtons:] {
		w := b.width()
		b.SetRect(image.Rect(x, toolbarRowH+2, x+w, 2*toolbarRowH-2))
		x += w + 4
	}
}

func (s *Session) toggleTask() {
	if s.ed.Task() == editor.TaskDetection {
		s.ed.SetTask(editor.TaskSegmentation)
	} else {
		s.ed.SetTask(editor.TaskDetection)
	}
}

func (s *Session) zoomCenter(factor float64) {
	r := s.canvasRect()
	s.ed.View().ZoomAt(float64(r.Dx())/2, float64(r.Dy())/2, factor)
}

func (s *Session) bindShortcuts() {
	s.shortcuts = map[Shortcut]func(){
		{Rune: 'n'}: func() { s.ed.SetTool(editor.ToolNone) },
		{Rune: 'b'}: func() { s.ed.SetTool(editor.ToolBox) },
		{Rune: 'p'}: func() { s.ed.SetTool(editor.ToolPolygon) },
		{Rune: 'o'}: func() { s.ed.SetTool(editor.ToolCircle) },
		{Rune: 'e'}: func() { s.ed.SetTool(editor.ToolEllipse) },
		{Rune: 'm'}: s.toggleTask,
		{Rune: 'f'}: s.fitCanvas,
		{Rune: '+'}: func() { s.zoomCenter(1.25) },
		{Rune: '='}: func() { s.zoomCenter(1.25) },
		{Rune: '-'}: func() { s.zoomCenter(1 / 1.25) },
		{Rune: 'q'}: func() { s.quit = true },

		{Rune: 'c', Modifiers: key.ModControl}:                s.copySelection,
		{Rune: 'c', Modifiers: key.ModControl | key.ModShift}: s.copyImage,
		{Rune: 'C', Modifiers: key.ModControl | key.ModShift}: s.copyImage,
		{Rune: 'v', Modifiers: key.ModControl}:                s.pasteShape,
		{Rune: 'z', Modifiers: key.ModControl}:                func() { s.ed.Undo() },
		{Rune: 'y', Modifiers: key.ModControl}:                func() { s.ed.Redo() },
		{Rune: 's', Modifiers: key.ModControl}:                s.saveProject,

		{Code: key.CodeEscape}:          func() { s.ed.Cancel() },
		{Code: key.CodeReturnEnter}:     func() { s.ed.Confirm() },
		{Code: key.CodeDeleteForward}:   func() { s.ed.Delete() },
		{Code: key.CodeDeleteBackspace}: func() { s.ed.Delete() },
	}
}
