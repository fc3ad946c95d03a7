package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/dualannot/internal/project"
	"github.com/example/dualannot/internal/shape"
)

type exportCmd struct {
	*root
	fs *flag.FlagSet

	projectPath string
	format      string
	output      string
}

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	x := &exportCmd{root: r, fs: fs}
	fs.Usage = usageFunc(x)
	fs.StringVar(&x.format, "format", "detection", "export format: detection or segmentation")
	fs.StringVar(&x.output, "o", "", "output file (default: project name with a .txt extension, - for stdout)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{of: x}
	}
	x.projectPath = fs.Arg(0)
	if x.format != "detection" && x.format != "segmentation" {
		return nil, fmt.Errorf("unknown export format %q (want detection or segmentation)", x.format)
	}
	if x.output == "" {
		x.output = strings.TrimSuffix(x.projectPath, filepath.Ext(x.projectPath)) + ".txt"
	}
	return x, nil
}

func (x *exportCmd) FlagSet() *flag.FlagSet {
	return x.fs
}

func (x *exportCmd) Run() error {
	doc, err := project.Load(x.projectPath)
	if err != nil {
		return fmt.Errorf("failed to load project %s: %w", x.projectPath, err)
	}
	mgr, err := doc.DecodeClasses()
	if err != nil {
		return fmt.Errorf("failed to decode classes: %w", err)
	}
	shapes, err := doc.DecodeShapes()
	if err != nil {
		return fmt.Errorf("failed to decode shapes: %w", err)
	}

	var w io.Writer
	if x.output == "-" {
		w = os.Stdout
	} else {
		f, err := os.Create(x.output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	n, err := x.export(w, shapes, mgr)
	if err != nil {
		return err
	}
	if x.output != "-" {
		fmt.Fprintf(os.Stderr, "exported %d annotations to %s\n", n, x.output)
		x.notifyExport(x.output)
	}
	return nil
}

func (x *exportCmd) export(w io.Writer, shapes []shape.Shape, idx project.ClassIndexer) (int, error) {
	if x.format == "segmentation" {
		return project.ExportSegmentation(w, shapes, idx)
	}
	return project.ExportDetection(w, shapes, idx)
}
