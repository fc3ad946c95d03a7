package shape

import (
	"encoding/json"
	"fmt"
)

// The wire records keep geometry normalized so a document survives the image
// being rescaled. Selection state is transient and never serialized.

type boxRecord struct {
	ID      string  `json:"id"`
	Type    Kind    `json:"type"`
	ClassID string  `json:"class_id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

type circleRecord struct {
	ID      string  `json:"id"`
	Type    Kind    `json:"type"`
	ClassID string  `json:"class_id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Radius  float64 `json:"radius"`
}

type ellipseRecord struct {
	ID      string  `json:"id"`
	Type    Kind    `json:"type"`
	ClassID string  `json:"class_id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	RadiusX float64 `json:"radius_x"`
	RadiusY float64 `json:"radius_y"`
}

type polygonRecord struct {
	ID      string       `json:"id"`
	Type    Kind         `json:"type"`
	ClassID string       `json:"class_id"`
	Points  [][2]float64 `json:"points"`
	Closed  bool         `json:"closed"`
}

func (b *Box) MarshalJSON() ([]byte, error) {
	return json.Marshal(boxRecord{
		ID: b.id, Type: KindBox, ClassID: b.classID,
		X: b.X, Y: b.Y, Width: b.W, Height: b.H,
	})
}

func (c *Circle) MarshalJSON() ([]byte, error) {
	return json.Marshal(circleRecord{
		ID: c.id, Type: KindCircle, ClassID: c.classID,
		X: c.X, Y: c.Y, Radius: c.R,
	})
}

func (e *Ellipse) MarshalJSON() ([]byte, error) {
	return json.Marshal(ellipseRecord{
		ID: e.id, Type: KindEllipse, ClassID: e.classID,
		X: e.X, Y: e.Y, RadiusX: e.RX, RadiusY: e.RY,
	})
}

func (p *Polygon) MarshalJSON() ([]byte, error) {
	pts := p.Points
	if pts == nil {
		pts = [][2]float64{}
	}
	return json.Marshal(polygonRecord{
		ID: p.id, Type: KindPolygon, ClassID: p.classID,
		Points: pts, Closed: p.Closed,
	})
}

// Unmarshal decodes one tagged shape record against the given image size.
func Unmarshal(data []byte, imgW, imgH int) (Shape, error) {
	var tag struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("decoding shape tag: %w", err)
	}
	switch tag.Type {
	case KindBox:
		var rec boxRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decoding box: %w", err)
		}
		b := NewBox(imgW, imgH)
		b.id = recID(rec.ID)
		b.classID = rec.ClassID
		b.X, b.Y, b.W, b.H = rec.X, rec.Y, rec.Width, rec.Height
		return b, nil
	case KindCircle:
		var rec circleRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decoding circle: %w", err)
		}
		c := NewCircle(imgW, imgH)
		c.id = recID(rec.ID)
		c.classID = rec.ClassID
		c.X, c.Y, c.R = rec.X, rec.Y, rec.Radius
		return c, nil
	case KindEllipse:
		var rec ellipseRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decoding ellipse: %w", err)
		}
		e := NewEllipse(imgW, imgH)
		e.id = recID(rec.ID)
		e.classID = rec.ClassID
		e.X, e.Y, e.RX, e.RY = rec.X, rec.Y, rec.RadiusX, rec.RadiusY
		return e, nil
	case KindPolygon:
		var rec polygonRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decoding polygon: %w", err)
		}
		p := NewPolygon(imgW, imgH)
		p.id = recID(rec.ID)
		p.classID = rec.ClassID
		p.Points = rec.Points
		p.Closed = rec.Closed
		return p, nil
	default:
		return nil, fmt.Errorf("unknown shape type %q", tag.Type)
	}
}

func recID(id string) string {
	if id == "" {
		return NewID()
	}
	return id
}
