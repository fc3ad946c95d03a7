package ui

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/dualannot/internal/theme"
)

// ButtonState captures the pointer's relationship to a button.
type ButtonState int

const (
	ButtonIdle ButtonState = iota
	ButtonHover
	ButtonPressed
)

// Button is one toolbar cell: a label, an action and an optional active
// predicate that renders the button as latched (the current tool, the
// current class).
type Button struct {
	Label  string
	Action func()
	Active func() bool
	// Swatch, when non-zero, draws a color square before the label. Used
	// for class buttons.
	Swatch color.RGBA

	rect image.Rectangle
}

func (b *Button) Rect() image.Rectangle     { return b.rect }
func (b *Button) SetRect(r image.Rectangle) { b.rect = r }

func (b *Button) Activate() {
	if b.Action != nil {
		b.Action()
	}
}

// Draw paints the button into dst using the theme's button palette.
func (b *Button) Draw(dst *image.RGBA, t *theme.Theme, state ButtonState) {
	bg := t.ButtonBackground
	fg := t.ButtonText
	switch state {
	case ButtonHover:
		bg = t.ButtonBackgroundHover
		fg = t.ButtonTextHover
	case ButtonPressed:
		bg = t.ButtonBackgroundPress
		fg = t.ButtonTextPress
	}
	if b.Active != nil && b.Active() {
		bg = t.ButtonBackgroundPress
		fg = t.ButtonTextPress
	}
	fillRect(dst, b.rect, bg)
	outlineRect(dst, b.rect, t.ButtonBorder)

	x := b.rect.Min.X + 6
	if b.Swatch.A != 0 {
		sw := image.Rect(x, b.rect.Min.Y+6, x+12, b.rect.Min.Y+18)
		fillRect(dst, sw, b.Swatch)
		outlineRect(dst, sw, t.ButtonBorder)
		x += 16
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(fg),
		Face: basicfont.Face7x13,
	}
	d.Dot = fixed.P(x, b.rect.Min.Y+(b.rect.Dy()+basicfont.Face7x13.Ascent)/2-2)
	d.DrawString(b.Label)
}

// width returns the pixel width the button needs for its label.
func (b *Button) width() int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	w := d.MeasureString(b.Label).Ceil() + 12
	if b.Swatch.A != 0 {
		w += 16
	}
	return w
}

func fillRect(dst *image.RGBA, r image.Rectangle, col color.Color) {
	r = r.Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.Set(x, y, col)
		}
	}
}

func outlineRect(dst *image.RGBA, r image.Rectangle, col color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		dst.Set(x, r.Min.Y, col)
		dst.Set(x, r.Max.Y-1, col)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst.Set(r.Min.X, y, col)
		dst.Set(r.Max.X-1, y, col)
	}
}
