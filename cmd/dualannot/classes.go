package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/example/dualannot/internal/classes"
	"github.com/example/dualannot/internal/project"
)

type classesCmd struct {
	*root
	fs *flag.FlagSet

	projectPath string
	color       string
}

func parseClassesCmd(args []string, r *root) (*classesCmd, error) {
	fs := flag.NewFlagSet("classes", flag.ExitOnError)
	c := &classesCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.color, "color", "", "class color as #rrggbb (default: next palette color)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 2 {
		return nil, &UsageError{of: c}
	}
	c.projectPath = fs.Arg(0)
	return c, nil
}

func (c *classesCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *classesCmd) Run() error {
	doc, err := project.Load(c.projectPath)
	if err != nil {
		return fmt.Errorf("failed to load project %s: %w", c.projectPath, err)
	}
	mgr, err := doc.DecodeClasses()
	if err != nil {
		return fmt.Errorf("failed to decode classes: %w", err)
	}

	args := c.fs.Args()[1:]
	switch args[0] {
	case "list":
		return c.runList(mgr)
	case "add":
		if len(args) != 2 {
			return &UsageError{of: c}
		}
		return c.runAdd(doc, mgr, args[1])
	case "remove":
		if len(args) != 2 {
			return &UsageError{of: c}
		}
		return c.runRemove(doc, mgr, args[1])
	default:
		return fmt.Errorf("unknown classes command: %s", args[0])
	}
}

func (c *classesCmd) runList(mgr *classes.Manager) error {
	for i, cl := range mgr.All() {
		fmt.Printf("%d\t%s\t%s\n", i, cl.Name, classes.FormatHex(cl.Color))
	}
	return nil
}

func (c *classesCmd) runAdd(doc *project.Document, mgr *classes.Manager, name string) error {
	cl, err := mgr.Add(name, c.color)
	if err != nil {
		return fmt.Errorf("failed to add class: %w", err)
	}
	doc.SetClasses(mgr)
	if err := project.Save(c.projectPath, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "added class %s (%s)\n", cl.Name, classes.FormatHex(cl.Color))
	return nil
}

func (c *classesCmd) runRemove(doc *project.Document, mgr *classes.Manager, name string) error {
	cl := mgr.ByName(name)
	if cl == nil {
		return fmt.Errorf("no class named %q", name)
	}
	for _, raw := range doc.Shapes {
		if id, err := shapeClassID(raw); err == nil && id == cl.ID {
			return fmt.Errorf("class %q is still used by shapes, remove them first", name)
		}
	}
	if !mgr.Remove(cl.ID) {
		return fmt.Errorf("failed to remove class %q", name)
	}
	doc.SetClasses(mgr)
	if err := project.Save(c.projectPath, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "removed class %s\n", name)
	return nil
}

// shapeClassID peeks the class reference out of a raw shape record.
func shapeClassID(raw []byte) (string, error) {
	var peek struct {
		ClassID string `json:"class_id"`
	}
	if err := json.Unmarshal(raw, &peek); err != nil {
		return "", err
	}
	return peek.ClassID, nil
}
