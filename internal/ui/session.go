// Package ui runs the interactive annotation window: a shiny event loop
// feeding the editor state machine, with a toolbar, a class palette and a
// status line around the canvas.
package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"time"

	"golang.design/x/clipboard"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/dualannot/internal/classes"
	"github.com/example/dualannot/internal/editor"
	"github.com/example/dualannot/internal/notify"
	"github.com/example/dualannot/internal/render"
	"github.com/example/dualannot/internal/shape"
	"github.com/example/dualannot/internal/theme"
)

const (
	toolbarRowH = 28
	toolbarRows = 2
	statusH     = 20
	statusTTL   = 2 * time.Second

	defaultWinW = 1200
	defaultWinH = 800
)

// Shortcut identifies one keyboard binding. Rune matches printable keys,
// Code everything else.
type Shortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// Option configures a Session.
type Option func(*Session)

// WithNotifier wires desktop notifications.
func WithNotifier(n *notify.Notifier) Option {
	return func(s *Session) { s.notifier = n }
}

// WithTheme overrides the default theme.
func WithTheme(t *theme.Theme) Option {
	return func(s *Session) { s.theme = t }
}

// WithSave wires the project save action. The callback reports the path it
// wrote to.
func WithSave(fn func() (string, error)) Option {
	return func(s *Session) { s.save = fn }
}

// WithTitle overrides the window title.
func WithTitle(title string) Option {
	return func(s *Session) { s.title = title }
}

// WithHandlePx overrides the rendered handle size.
func WithHandlePx(px int) Option {
	return func(s *Session) { s.handlePx = px }
}

// Session owns the window and routes its events into the editor.
type Session struct {
	ed       *editor.Editor
	mgr      *classes.Manager
	img      image.Image
	theme    *theme.Theme
	canvas   *render.Canvas
	notifier *notify.Notifier
	save     func() (string, error)
	title    string
	handlePx int

	status      string
	statusAt    time.Time
	buttons     []*Button
	toolButtons int
	shortcuts   map[Shortcut]func()
	hover       image.Point
	winW, winH  int
	osClipboard bool
	quit        bool
}

// NewSession builds a session around an editor and its class registry.
func NewSession(ed *editor.Editor, mgr *classes.Manager, img image.Image, opts ...Option) *Session {
	s := &Session{
		ed:       ed,
		mgr:      mgr,
		img:      img,
		theme:    theme.Default(),
		title:    "DualAnnot",
		handlePx: editor.DefaultParams().HandlePx,
		winW:     defaultWinW,
		winH:     defaultWinH,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.canvas = render.NewCanvas(s.theme, s.handlePx, s.classLookup)
	s.buildToolbar()
	s.bindShortcuts()
	return s
}

func (s *Session) classLookup(id string) (string, color.RGBA, bool) {
	c, ok := s.mgr.Get(id)
	if !ok {
		return "", color.RGBA{}, false
	}
	return c.Name, c.Color, true
}

// SetStatus is the editor's status sink. Messages fade after statusTTL; the
// next repaint drops an expired one.
func (s *Session) SetStatus(msg string) {
	s.status = msg
	s.statusAt = time.Now()
}

// Run opens the window and blocks until it closes.
func (s *Session) Run() {
	if err := clipboard.Init(); err != nil {
		log.Printf("system clipboard unavailable: %v", err)
	} else {
		s.osClipboard = true
	}
	driver.Main(s.main)
}

func (s *Session) main(scr screen.Screen) {
	w, err := scr.NewWindow(&screen.NewWindowOptions{
		Width:  s.winW,
		Height: s.winH,
		Title:  s.title,
	})
	if err != nil {
		log.Printf("opening window: %v", err)
		return
	}
	defer w.Release()

	var buf screen.Buffer
	defer func() {
		if buf != nil {
			buf.Release()
		}
	}()

	s.fitCanvas()
	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			s.winW, s.winH = e.WidthPx, e.HeightPx
			if buf != nil {
				buf.Release()
				buf = nil
			}
			if s.winW > 0 && s.winH > 0 {
				buf, err = scr.NewBuffer(image.Pt(s.winW, s.winH))
				if err != nil {
					log.Printf("allocating buffer: %v", err)
					return
				}
				s.layoutToolbar()
			}
			w.Send(paint.Event{})
		case mouse.Event:
			if s.handleMouse(e) {
				w.Send(paint.Event{})
			}
			if s.quit {
				return
			}
		case key.Event:
			if s.handleKey(e) {
				w.Send(paint.Event{})
			}
			if s.quit {
				return
			}
		case paint.Event:
			if buf == nil {
				continue
			}
			s.drawFrame(buf.RGBA())
			w.Upload(image.Point{}, buf, buf.Bounds())
			w.Publish()
		}
	}
}

func (s *Session) toolbarHeight() int { return toolbarRowH * toolbarRows }

func (s *Session) canvasRect() image.Rectangle {
	return image.Rect(0, s.toolbarHeight(), s.winW, s.winH-statusH)
}

func (s *Session) fitCanvas() {
	r := s.canvasRect()
	s.ed.View().Fit(r.Dx(), r.Dy())
}

// handleMouse dispatches a pointer event to the toolbar or the canvas and
// reports whether a repaint is needed.
func (s *Session) handleMouse(e mouse.Event) bool {
	pt := image.Pt(int(e.X), int(e.Y))
	s.hover = pt

	if pt.Y < s.toolbarHeight() {
		if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
			for _, b := range s.buttons {
				if pt.In(b.Rect()) {
					b.Activate()
					return true
				}
			}
		}
		return true
	}

	// Canvas events arrive in canvas-local coordinates.
	e.Y -= float32(s.toolbarHeight())
	s.ed.Mouse(e)
	return true
}

func (s *Session) handleKey(e key.Event) bool {
	if e.Direction != key.DirPress {
		return false
	}
	if fn, ok := s.shortcuts[Shortcut{Rune: e.Rune, Modifiers: e.Modifiers}]; ok {
		fn()
		return true
	}
	if fn, ok := s.shortcuts[Shortcut{Code: e.Code, Modifiers: e.Modifiers}]; ok {
		fn()
		return true
	}
	return false
}

func (s *Session) drawFrame(dst *image.RGBA) {
	fillRect(dst, image.Rect(0, 0, s.winW, s.toolbarHeight()), s.theme.ToolbarBackground)
	for _, b := range s.buttons {
		state := ButtonIdle
		if s.hover.In(b.Rect()) {
			state = ButtonHover
		}
		b.Draw(dst, s.theme, state)
	}

	cr := s.canvasRect()
	if cr.Dx() > 0 && cr.Dy() > 0 {
		canvasBuf := image.NewRGBA(image.Rect(0, 0, cr.Dx(), cr.Dy()))
		s.canvas.Frame(canvasBuf, s.img, s.ed)
		draw.Draw(dst, cr, canvasBuf, image.Point{}, draw.Src)
	}

	s.drawStatus(dst)
}

func (s *Session) drawStatus(dst *image.RGBA) {
	r := image.Rect(0, s.winH-statusH, s.winW, s.winH)
	fillRect(dst, r, s.theme.StatusBackground)
	msg := s.status
	if msg != "" && time.Since(s.statusAt) > statusTTL {
		msg = ""
	}
	line := fmt.Sprintf("%s | tool: %s | %s", s.ed.Task(), s.ed.Tool(), msg)
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(s.theme.StatusText),
		Face: basicfont.Face7x13,
	}
	d.Dot = fixed.P(r.Min.X+6, r.Max.Y-6)
	d.DrawString(line)
}

// copySelection copies inside the editor and mirrors the shape's JSON onto
// the system clipboard so other tools can consume it.
func (s *Session) copySelection() {
	sel := s.ed.Selected()
	if !s.ed.Copy() {
		return
	}
	if s.osClipboard && sel != nil {
		if data, err := json.Marshal(sel); err == nil {
			clipboard.Write(clipboard.FmtText, data)
		}
	}
	if s.notifier != nil && sel != nil {
		s.notifier.Copy(string(sel.Kind()))
	}
}

// copyImage puts a PNG of the annotated image, rendered at native
// resolution, on the system clipboard.
func (s *Session) copyImage() {
	if !s.osClipboard {
		s.SetStatus("system clipboard unavailable")
		return
	}
	snap := s.canvas.Snapshot(s.img, s.ed)
	var buf bytes.Buffer
	if err := png.Encode(&buf, snap); err != nil {
		log.Printf("encoding clipboard image: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtImage, buf.Bytes())
	s.SetStatus("image copied")
	if s.notifier != nil {
		s.notifier.Copy("image")
	}
}

// pasteShape pastes the editor clipboard. When it is empty, a tagged shape
// record on the system clipboard is accepted instead.
func (s *Session) pasteShape() {
	if s.ed.Paste() {
		return
	}
	if !s.osClipboard || s.ed.HasClipboard() {
		return
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return
	}
	w, h := s.ed.ImageSize()
	sh, err := shape.Unmarshal(data, w, h)
	if err != nil {
		return
	}
	s.ed.LoadClipboard(sh)
	s.ed.Paste()
}

func (s *Session) saveProject() {
	if s.save == nil {
		s.SetStatus("no save target configured")
		return
	}
	path, err := s.save()
	if err != nil {
		s.SetStatus(fmt.Sprintf("save failed: %v", err))
		log.Printf("saving project: %v", err)
		return
	}
	s.SetStatus(fmt.Sprintf("saved %s", path))
	if s.notifier != nil {
		s.notifier.Save(path)
	}
}
