// Package project persists an annotation session as a single JSON document:
// the image reference, the class registry and every shape.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/dualannot/internal/classes"
	"github.com/example/dualannot/internal/shape"
)

// Document is the on-disk form of a session. Shapes are kept as raw tagged
// records so the document round-trips fields this build does not know about.
type Document struct {
	Image       string            `json:"image"`
	ImageWidth  int               `json:"image_width"`
	ImageHeight int               `json:"image_height"`
	Classes     []classes.Record  `json:"classes"`
	Shapes      []json.RawMessage `json:"shapes"`
}

// New returns an empty document for the given image.
func New(imagePath string, w, h int) *Document {
	return &Document{
		Image:       imagePath,
		ImageWidth:  w,
		ImageHeight: h,
		Classes:     []classes.Record{},
		Shapes:      []json.RawMessage{},
	}
}

// SetShapes encodes the live collection into the document.
func (d *Document) SetShapes(shapes []shape.Shape) error {
	d.Shapes = make([]json.RawMessage, 0, len(shapes))
	for _, s := range shapes {
		data, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("encoding shape %s: %w", s.ID(), err)
		}
		d.Shapes = append(d.Shapes, data)
	}
	return nil
}

// SetClasses snapshots the class registry into the document.
func (d *Document) SetClasses(m *classes.Manager) {
	d.Classes = m.Records()
}

// DecodeShapes rebuilds the shape collection against the document's image
// size.
func (d *Document) DecodeShapes() ([]shape.Shape, error) {
	if d.ImageWidth < 1 || d.ImageHeight < 1 {
		return nil, fmt.Errorf("document has no image size")
	}
	out := make([]shape.Shape, 0, len(d.Shapes))
	for i, raw := range d.Shapes {
		s, err := shape.Unmarshal(raw, d.ImageWidth, d.ImageHeight)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// DecodeClasses rebuilds the class registry.
func (d *Document) DecodeClasses() (*classes.Manager, error) {
	return classes.FromRecords(d.Classes)
}

// Save writes the document, creating parent directories as needed. The file
// lands via a temp-and-rename so a crash never leaves a torn document.
func Save(path string, d *Document) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding project: %w", err)
	}
	data = append(data, '\n')
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".dualannot-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing project: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing project: %w", err)
	}
	return nil
}

// Load reads a document from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing project %s: %w", path, err)
	}
	return &d, nil
}
