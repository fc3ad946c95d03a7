package classes

import "fmt"

// Record is the wire form of a class inside a project document.
type Record struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Records dumps the registry in insertion order.
func (m *Manager) Records() []Record {
	out := make([]Record, 0, len(m.order))
	for _, c := range m.All() {
		out = append(out, Record{ID: c.ID, Name: c.Name, Color: FormatHex(c.Color)})
	}
	return out
}

// FromRecords rebuilds a registry from stored records, preserving ids so
// shapes keep resolving. The first class becomes current.
func FromRecords(recs []Record) (*Manager, error) {
	m := NewManager()
	for i, rec := range recs {
		if rec.Name == "" {
			return nil, fmt.Errorf("class record %d has no name", i)
		}
		col := palette[i%len(palette)]
		if rec.Color != "" {
			parsed, err := ParseHex(rec.Color)
			if err != nil {
				return nil, fmt.Errorf("class %q: %w", rec.Name, err)
			}
			col = parsed
		}
		id := rec.ID
		if id == "" {
			return nil, fmt.Errorf("class %q has no id", rec.Name)
		}
		if _, ok := m.byID[id]; ok {
			return nil, fmt.Errorf("duplicate class id %q", id)
		}
		c := &Class{ID: id, Name: rec.Name, Color: col}
		m.byID[id] = c
		m.order = append(m.order, id)
		if m.current == "" {
			m.current = id
		}
	}
	return m, nil
}
