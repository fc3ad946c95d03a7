package editor

import (
	"github.com/example/dualannot/internal/history"
	"github.com/example/dualannot/internal/shape"
)

// Cancel aborts the active gesture without touching history. Drawing
// discards the preview, moving and resizing restore the shape's captured
// geometry, drag-copy removes the provisional copy and pasting removes the
// floating shape. In idle it clears the selection.
func (e *Editor) Cancel() {
	switch g := e.g.(type) {
	case idle:
		e.deselectAll()
		return
	case *resizing:
		g.target.EndResize()
		e.replaceShape(g.target, g.original)
	case *moving:
		e.replaceShape(g.target, g.original)
	case *dragCopying:
		e.removeShape(g.clone)
		e.selectOnly(g.source)
	case *pasting:
		e.removeShape(g.sh)
	}
	e.g = idle{}
}

// Confirm finishes the gestures that end on an explicit confirmation: a
// floating paste lands, an in-progress polygon closes. It reports whether
// anything was confirmed.
func (e *Editor) Confirm() bool {
	switch g := e.g.(type) {
	case *pasting:
		e.confirmPaste(g)
		return true
	case *drawingPolygon:
		return e.finishPolygon(g)
	}
	return false
}

func (e *Editor) confirmPaste(g *pasting) {
	e.hist.Commit(g.before)
	e.g = idle{}
	e.statusf("pasted %s", g.sh.Kind())
}

// Copy stores a fresh-id copy of the selection on the internal clipboard.
func (e *Editor) Copy() bool {
	sel := e.Selected()
	if sel == nil {
		e.statusf("nothing selected to copy")
		return false
	}
	e.clip = sel.Copy()
	e.statusf("copied %s", sel.Kind())
	return true
}

// LoadClipboard seeds the internal clipboard with a shape decoded from an
// outside source, such as the system clipboard.
func (e *Editor) LoadClipboard(sh shape.Shape) {
	if sh == nil {
		return
	}
	sh.SetImageSize(e.imgW, e.imgH)
	e.clip = sh
}

// Paste floats a copy of the clipboard shape under the last pointer
// position. The shape joins the collection immediately but history is only
// committed once the paste is confirmed.
func (e *Editor) Paste() bool {
	if e.g.mode() != ModeIdle {
		return false
	}
	if e.clip == nil {
		e.statusf("clipboard is empty")
		return false
	}
	before := e.snapshot()
	sh := e.clip.Copy()
	e.centerAt(sh, e.pointer.X, e.pointer.Y)
	e.shapes = append(e.shapes, sh)
	e.selectOnly(sh)
	e.g = &pasting{sh: sh, before: before}
	return true
}

// Delete removes the selected shape.
func (e *Editor) Delete() bool {
	if e.g.mode() != ModeIdle {
		return false
	}
	sel := e.Selected()
	if sel == nil {
		return false
	}
	before := e.snapshot()
	e.removeShape(sel)
	e.hist.Commit(before)
	e.statusf("deleted %s", sel.Kind())
	return true
}

// Undo restores the previous snapshot. Only available from idle so a live
// gesture can never interleave with a history swap. Selection does not
// survive the swap.
func (e *Editor) Undo() bool {
	if e.g.mode() != ModeIdle {
		return false
	}
	prev, ok := e.hist.Undo(history.Snapshot(e.shapes))
	if !ok {
		e.statusf("nothing to undo")
		return false
	}
	e.shapes = prev
	e.deselectAll()
	return true
}

// Redo reapplies the most recently undone snapshot.
func (e *Editor) Redo() bool {
	if e.g.mode() != ModeIdle {
		return false
	}
	next, ok := e.hist.Redo(history.Snapshot(e.shapes))
	if !ok {
		e.statusf("nothing to redo")
		return false
	}
	e.shapes = next
	e.deselectAll()
	return true
}
