package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/example/dualannot/internal/classes"
	"github.com/example/dualannot/internal/editor"
	"github.com/example/dualannot/internal/project"
	"github.com/example/dualannot/internal/shape"
	"github.com/example/dualannot/internal/ui"
)

type editCmd struct {
	*root
	fs *flag.FlagSet

	imagePath   string
	projectPath string
	task        string
	newClasses  string
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	e := &editCmd{root: r, fs: fs}
	fs.Usage = usageFunc(e)
	fs.StringVar(&e.projectPath, "project", "", "project file to load and save (default: next to the image)")
	fs.StringVar(&e.task, "task", "", "starting task: detection or segmentation (default from config)")
	fs.StringVar(&e.newClasses, "classes", "object", "comma separated class names when creating a new project")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{of: e}
	}
	e.imagePath = fs.Arg(0)
	if e.projectPath == "" {
		e.projectPath = defaultProjectPath(e.imagePath, r.config.SaveDir)
	}
	return e, nil
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

// defaultProjectPath derives the project file from the image: same base name
// with a .json extension, placed in saveDir when one is configured.
func defaultProjectPath(imagePath, saveDir string) string {
	base := strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath)) + ".json"
	if saveDir != "" {
		return filepath.Join(saveDir, base)
	}
	return filepath.Join(filepath.Dir(imagePath), base)
}

func openImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

func (e *editCmd) resolveTask() (editor.Task, error) {
	name := e.task
	if name == "" {
		name = e.config.Editor.Task
	}
	switch name {
	case "", "detection":
		return editor.TaskDetection, nil
	case "segmentation":
		return editor.TaskSegmentation, nil
	default:
		return 0, fmt.Errorf("unknown task %q (want detection or segmentation)", name)
	}
}

// loadSession restores classes and shapes from an existing project file, or
// seeds a fresh document when none exists yet.
func (e *editCmd) loadSession(w, h int) (*project.Document, *classes.Manager, []shape.Shape, error) {
	if _, err := os.Stat(e.projectPath); err == nil {
		doc, err := project.Load(e.projectPath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to load project %s: %w", e.projectPath, err)
		}
		if doc.ImageWidth != w || doc.ImageHeight != h {
			fmt.Fprintf(os.Stderr, "warning: project was saved against a %dx%d image, current image is %dx%d\n",
				doc.ImageWidth, doc.ImageHeight, w, h)
			doc.ImageWidth, doc.ImageHeight = w, h
		}
		mgr, err := doc.DecodeClasses()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to decode classes: %w", err)
		}
		shapes, err := doc.DecodeShapes()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to decode shapes: %w", err)
		}
		return doc, mgr, shapes, nil
	}

	doc := project.New(e.imagePath, w, h)
	mgr := classes.NewManager()
	for _, name := range strings.Split(e.newClasses, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, err := mgr.Add(name, ""); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to add class %q: %w", name, err)
		}
	}
	return doc, mgr, nil, nil
}

func (e *editCmd) Run() error {
	img, err := openImage(e.imagePath)
	if err != nil {
		return err
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	task, err := e.resolveTask()
	if err != nil {
		return err
	}

	doc, mgr, loaded, err := e.loadSession(w, h)
	if err != nil {
		return err
	}

	var sess *ui.Session
	ed := editor.New(w, h,
		editor.WithParams(editor.Params{
			PolygonClosePx: e.config.Editor.PolygonClosePx,
			HandlePx:       e.config.Editor.HandlePx,
			HistoryDepth:   e.config.Editor.HistoryDepth,
			ZoomMin:        e.config.Editor.ZoomMin,
			ZoomMax:        e.config.Editor.ZoomMax,
		}),
		editor.WithClasses(mgr),
		editor.WithTask(task),
		editor.WithStatus(func(msg string) {
			if sess != nil {
				sess.SetStatus(msg)
			}
		}),
	)
	if len(loaded) > 0 {
		ed.LoadShapes(loaded)
	}

	save := func() (string, error) {
		if err := doc.SetShapes(ed.Shapes()); err != nil {
			return "", err
		}
		doc.SetClasses(mgr)
		if err := project.Save(e.projectPath, doc); err != nil {
			return "", err
		}
		return e.projectPath, nil
	}

	sess = ui.NewSession(ed, mgr, img,
		ui.WithNotifier(e.notifier),
		ui.WithTheme(e.activeTheme),
		ui.WithSave(save),
		ui.WithTitle(fmt.Sprintf("DualAnnot - %s", filepath.Base(e.imagePath))),
		ui.WithHandlePx(e.config.Editor.HandlePx),
	)
	sess.Run()
	return nil
}
