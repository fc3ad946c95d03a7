// Package view maps between widget pixels and image pixels for the current
// pan offset and zoom scale.
package view

import "math"

const (
	// DefaultMinScale and DefaultMaxScale bound the zoom range.
	DefaultMinScale = 0.1
	DefaultMaxScale = 10.0

	// fitMargin leaves breathing room around the image when fitting it to
	// the available area.
	fitMargin = 0.9
)

// Transform holds the widget-to-image mapping. widget = image*Scale + Offset.
type Transform struct {
	Scale            float64
	OffsetX, OffsetY float64
	ImageW, ImageH   int
	MinScale         float64
	MaxScale         float64
}

// New returns an identity mapping for an image of the given size.
func New(imgW, imgH int) *Transform {
	return &Transform{
		Scale:    1,
		ImageW:   imgW,
		ImageH:   imgH,
		MinScale: DefaultMinScale,
		MaxScale: DefaultMaxScale,
	}
}

// WidgetToImage converts a widget point to image pixels, clamped to the
// image frame so hit tests never index outside it.
func (t *Transform) WidgetToImage(wx, wy float64) (int, int) {
	ix := (wx - t.OffsetX) / t.Scale
	iy := (wy - t.OffsetY) / t.Scale
	px := clamp(int(ix), 0, t.ImageW-1)
	py := clamp(int(iy), 0, t.ImageH-1)
	return px, py
}

// ImageToWidget converts image pixels to an unclamped widget point.
func (t *Transform) ImageToWidget(ix, iy float64) (float64, float64) {
	return ix*t.Scale + t.OffsetX, iy*t.Scale + t.OffsetY
}

// PanBy shifts the view by a widget-space delta.
func (t *Transform) PanBy(dx, dy float64) {
	t.OffsetX += dx
	t.OffsetY += dy
}

// ZoomAt multiplies the scale, keeping the image point under the given
// widget point stationary.
func (t *Transform) ZoomAt(wx, wy, factor float64) {
	ix := (wx - t.OffsetX) / t.Scale
	iy := (wy - t.OffsetY) / t.Scale
	scale := t.Scale * factor
	scale = math.Min(math.Max(scale, t.MinScale), t.MaxScale)
	if scale == t.Scale {
		return
	}
	t.Scale = scale
	t.OffsetX = wx - ix*scale
	t.OffsetY = wy - iy*scale
}

// Fit rescales so the whole image sits inside the given widget area with a
// margin, centered.
func (t *Transform) Fit(availW, availH int) {
	if t.ImageW < 1 || t.ImageH < 1 || availW < 1 || availH < 1 {
		return
	}
	sx := float64(availW) / float64(t.ImageW)
	sy := float64(availH) / float64(t.ImageH)
	scale := math.Min(sx, sy) * fitMargin
	scale = math.Min(math.Max(scale, t.MinScale), t.MaxScale)
	t.Scale = scale
	t.OffsetX = (float64(availW) - float64(t.ImageW)*scale) / 2
	t.OffsetY = (float64(availH) - float64(t.ImageH)*scale) / 2
}

// Reset restores the identity mapping.
func (t *Transform) Reset() {
	t.Scale = 1
	t.OffsetX = 0
	t.OffsetY = 0
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
