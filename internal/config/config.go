package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/dualannot/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save   bool
	Export bool
	Copy   bool
}

// Editor holds interaction tunables.
type Editor struct {
	// PolygonClosePx is the pixel distance to the first vertex within which
	// a click closes the polygon.
	PolygonClosePx int
	// HandlePx is the side of the square hit area around resize handles.
	HandlePx int
	// HistoryDepth bounds the undo stack.
	HistoryDepth int
	// ZoomMin and ZoomMax bound the view scale.
	ZoomMin float64
	ZoomMax float64
	// Task is the starting annotation task: "detection" or "segmentation".
	Task string
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string
	Notify  Notify
	Editor  Editor
	Themes  map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme: "", // Default to empty to allow fallback to Env/Default
		Editor: Editor{
			PolygonClosePx: 20,
			HandlePx:       8,
			HistoryDepth:   50,
			ZoomMin:        0.1,
			ZoomMax:        10,
			Task:           "detection",
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	// Editor section
	sb.WriteString("[editor]\n")
	fmt.Fprintf(&sb, "polygon_close_px = %d\n", c.Editor.PolygonClosePx)
	fmt.Fprintf(&sb, "handle_px = %d\n", c.Editor.HandlePx)
	fmt.Fprintf(&sb, "history_depth = %d\n", c.Editor.HistoryDepth)
	fmt.Fprintf(&sb, "zoom_min = %g\n", c.Editor.ZoomMin)
	fmt.Fprintf(&sb, "zoom_max = %g\n", c.Editor.ZoomMax)
	fmt.Fprintf(&sb, "task = %s\n", c.Editor.Task)
	sb.WriteString("\n")

	// Notify section
	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Themes sections
	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		fmt.Fprintf(&sb, "Background: %s\n", toHex(t.Background))
		fmt.Fprintf(&sb, "Foreground: %s\n", toHex(t.Foreground))
		fmt.Fprintf(&sb, "ToolbarBackground: %s\n", toHex(t.ToolbarBackground))
		fmt.Fprintf(&sb, "ButtonBackground: %s\n", toHex(t.ButtonBackground))
		fmt.Fprintf(&sb, "ButtonBackgroundHover: %s\n", toHex(t.ButtonBackgroundHover))
		fmt.Fprintf(&sb, "ButtonBackgroundPress: %s\n", toHex(t.ButtonBackgroundPress))
		fmt.Fprintf(&sb, "ButtonText: %s\n", toHex(t.ButtonText))
		fmt.Fprintf(&sb, "ButtonTextHover: %s\n", toHex(t.ButtonTextHover))
		fmt.Fprintf(&sb, "ButtonTextPress: %s\n", toHex(t.ButtonTextPress))
		fmt.Fprintf(&sb, "ButtonBorder: %s\n", toHex(t.ButtonBorder))
		fmt.Fprintf(&sb, "CheckerLight: %s\n", toHex(t.CheckerLight))
		fmt.Fprintf(&sb, "CheckerDark: %s\n", toHex(t.CheckerDark))
		fmt.Fprintf(&sb, "SelectionOutline: %s\n", toHex(t.SelectionOutline))
		fmt.Fprintf(&sb, "HandleFill: %s\n", toHex(t.HandleFill))
		fmt.Fprintf(&sb, "HandleBorder: %s\n", toHex(t.HandleBorder))
		fmt.Fprintf(&sb, "PreviewOutline: %s\n", toHex(t.PreviewOutline))
		fmt.Fprintf(&sb, "StatusBackground: %s\n", toHex(t.StatusBackground))
		fmt.Fprintf(&sb, "StatusText: %s\n", toHex(t.StatusText))
		sb.WriteString("\n")
	}

	return sb.String()
}

func toHex(c interface{ RGBA() (r, g, b, a uint32) }) string {
	if rgba, ok := c.(color.RGBA); ok {
		if rgba.A == 255 {
			return fmt.Sprintf("#%02X%02X%02X", rgba.R, rgba.G, rgba.B)
		}
		return fmt.Sprintf("#%02X%02X%02X%02X", rgba.R, rgba.G, rgba.B, rgba.A)
	}

	r, g, b, a := c.RGBA()
	if a == 0 {
		return "#00000000"
	}
	r8 := uint8(r >> 8)
	g8 := uint8(g >> 8)
	b8 := uint8(b >> 8)
	a8 := uint8(a >> 8)

	if a8 == 255 {
		return fmt.Sprintf("#%02X%02X%02X", r8, g8, b8)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", r8, g8, b8, a8)
}
