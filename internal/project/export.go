package project

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/example/dualannot/internal/shape"
)

// ellipseSegments is the vertex count used when flattening circles and
// ellipses for segmentation export.
const ellipseSegments = 32

// ClassIndexer resolves a class id to its export index.
type ClassIndexer interface {
	Index(id string) (int, bool)
}

// ExportDetection writes one YOLO line per box. Non-box shapes are skipped;
// a shape whose class no longer resolves is an error rather than a silently
// mislabeled dataset.
func ExportDetection(w io.Writer, shapes []shape.Shape, idx ClassIndexer) (int, error) {
	written := 0
	for _, s := range shapes {
		b, ok := s.(*shape.Box)
		if !ok {
			continue
		}
		ci, ok := idx.Index(b.ClassID())
		if !ok {
			return written, fmt.Errorf("shape %s: unknown class %q", b.ID(), b.ClassID())
		}
		if _, err := fmt.Fprintln(w, b.YOLO(ci)); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// ExportSegmentation writes one YOLO segmentation line per region shape:
// the class index followed by the normalized outline vertices. Circles and
// ellipses are flattened to fixed-step outlines; boxes are skipped.
func ExportSegmentation(w io.Writer, shapes []shape.Shape, idx ClassIndexer) (int, error) {
	written := 0
	for _, s := range shapes {
		pts := outline(s)
		if pts == nil {
			continue
		}
		ci, ok := idx.Index(s.ClassID())
		if !ok {
			return written, fmt.Errorf("shape %s: unknown class %q", s.ID(), s.ClassID())
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "%d", ci)
		for _, p := range pts {
			fmt.Fprintf(&sb, " %.6f %.6f", p[0], p[1])
		}
		if _, err := fmt.Fprintln(w, sb.String()); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// outline returns the normalized vertex loop of a region shape, or nil when
// the shape does not export as a region.
func outline(s shape.Shape) [][2]float64 {
	switch v := s.(type) {
	case *shape.Polygon:
		if !v.Closed || len(v.Points) < 3 {
			return nil
		}
		return v.Points
	case *shape.Circle:
		imgW, imgH := v.ImageSize()
		maxDim := math.Max(float64(imgW), float64(imgH))
		return arc(v.X, v.Y, v.R*maxDim/float64(imgW), v.R*maxDim/float64(imgH))
	case *shape.Ellipse:
		return arc(v.X, v.Y, v.RX, v.RY)
	}
	return nil
}

func arc(cx, cy, rx, ry float64) [][2]float64 {
	pts := make([][2]float64, ellipseSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / ellipseSegments
		pts[i] = [2]float64{cx + rx*math.Cos(a), cy + ry*math.Sin(a)}
	}
	return pts
}
