// Package classes holds the annotation class registry: named labels with
// display colors, one of which is current and gets stamped onto each newly
// committed shape.
package classes

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/google/uuid"
)

// palette supplies colors for classes added without one, cycling in order.
var palette = []color.RGBA{
	{R: 0xe6, G: 0x19, B: 0x4b, A: 0xff},
	{R: 0x3c, G: 0xb4, B: 0x4b, A: 0xff},
	{R: 0xff, G: 0xe1, B: 0x19, A: 0xff},
	{R: 0x43, G: 0x63, B: 0xd8, A: 0xff},
	{R: 0xf5, G: 0x82, B: 0x31, A: 0xff},
	{R: 0x91, G: 0x1e, B: 0xb4, A: 0xff},
	{R: 0x46, G: 0xf0, B: 0xf0, A: 0xff},
	{R: 0xf0, G: 0x32, B: 0xe6, A: 0xff},
	{R: 0xbc, G: 0xf6, B: 0x0c, A: 0xff},
	{R: 0xfa, G: 0xbe, B: 0xbe, A: 0xff},
}

// Class is one annotation label.
type Class struct {
	ID    string
	Name  string
	Color color.RGBA
}

// Manager keeps classes in insertion order and tracks the current one.
type Manager struct {
	order   []string
	byID    map[string]*Class
	current string
}

func NewManager() *Manager {
	return &Manager{byID: make(map[string]*Class)}
}

// Add registers a class. hexColor may be empty, in which case the next
// palette color is used. The first class added becomes current.
func (m *Manager) Add(name, hexColor string) (*Class, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("class name is empty")
	}
	if m.ByName(name) != nil {
		return nil, fmt.Errorf("class %q already exists", name)
	}
	col := palette[len(m.order)%len(palette)]
	if hexColor != "" {
		parsed, err := ParseHex(hexColor)
		if err != nil {
			return nil, fmt.Errorf("class %q: %w", name, err)
		}
		col = parsed
	}
	c := &Class{ID: uuid.NewString()[:8], Name: name, Color: col}
	m.byID[c.ID] = c
	m.order = append(m.order, c.ID)
	if m.current == "" {
		m.current = c.ID
	}
	return c, nil
}

// Remove drops a class. Shapes referencing it keep their class id; lookups
// simply stop resolving.
func (m *Manager) Remove(id string) bool {
	if _, ok := m.byID[id]; !ok {
		return false
	}
	delete(m.byID, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	if m.current == id {
		m.current = ""
		if len(m.order) > 0 {
			m.current = m.order[0]
		}
	}
	return true
}

// Get resolves a class by id.
func (m *Manager) Get(id string) (*Class, bool) {
	c, ok := m.byID[id]
	return c, ok
}

// ByName resolves a class by name, or nil.
func (m *Manager) ByName(name string) *Class {
	for _, id := range m.order {
		if m.byID[id].Name == name {
			return m.byID[id]
		}
	}
	return nil
}

// All returns the classes in insertion order.
func (m *Manager) All() []*Class {
	out := make([]*Class, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out
}

// Index returns the position of a class id in insertion order, for dataset
// export formats that use numeric class indexes.
func (m *Manager) Index(id string) (int, bool) {
	for i, v := range m.order {
		if v == id {
			return i, true
		}
	}
	return 0, false
}

// SetCurrent marks the class new shapes are stamped with.
func (m *Manager) SetCurrent(id string) bool {
	if _, ok := m.byID[id]; !ok {
		return false
	}
	m.current = id
	return true
}

// Current returns the active class. ok is false when none is selected, which
// blocks drawing until the user picks one.
func (m *Manager) Current() (*Class, bool) {
	c, ok := m.byID[m.current]
	return c, ok
}

// ParseHex parses #rgb or #rrggbb into an opaque color.
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// FormatHex renders a color as #rrggbb.
func FormatHex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
