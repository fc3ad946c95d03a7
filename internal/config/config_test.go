package config

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/projects

[editor]
polygon_close_px = 14
handle_px = 12
history_depth = 20
zoom_min = 0.25
zoom_max = 8
task = segmentation

[notify]
save = false
export = true
copy = true

[theme.my_custom_theme]
Background = #111111
Foreground = #FFFFFF
`
	r := strings.NewReader(input)
	cfg, err := Parse(r)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}

	if cfg.SaveDir != "/tmp/projects" {
		t.Errorf("Expected save_dir '/tmp/projects', got '%s'", cfg.SaveDir)
	}

	if cfg.Editor.PolygonClosePx != 14 {
		t.Errorf("Expected editor.polygon_close_px 14, got %d", cfg.Editor.PolygonClosePx)
	}
	if cfg.Editor.HandlePx != 12 {
		t.Errorf("Expected editor.handle_px 12, got %d", cfg.Editor.HandlePx)
	}
	if cfg.Editor.HistoryDepth != 20 {
		t.Errorf("Expected editor.history_depth 20, got %d", cfg.Editor.HistoryDepth)
	}
	if cfg.Editor.ZoomMin != 0.25 {
		t.Errorf("Expected editor.zoom_min 0.25, got %g", cfg.Editor.ZoomMin)
	}
	if cfg.Editor.ZoomMax != 8 {
		t.Errorf("Expected editor.zoom_max 8, got %g", cfg.Editor.ZoomMax)
	}
	if cfg.Editor.Task != "segmentation" {
		t.Errorf("Expected editor.task 'segmentation', got %q", cfg.Editor.Task)
	}

	if cfg.Notify.Save {
		t.Error("Expected notify.save to be false")
	}
	if !cfg.Notify.Export {
		t.Error("Expected notify.export to be true")
	}
	if !cfg.Notify.Copy {
		t.Error("Expected notify.copy to be true")
	}

	theme, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}

	if theme.Background.R != 0x11 || theme.Background.G != 0x11 || theme.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", theme.Background)
	}
}

func TestParseRejectsBadEditorValues(t *testing.T) {
	cases := []string{
		"[editor]\nhistory_depth = zero\n",
		"[editor]\nhandle_px = -3\n",
		"[editor]\ntask = classification\n",
		"[editor]\nzoom_min = 0\n",
		"[editor]\nzoom_max = fast\n",
	}
	for _, input := range cases {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("Parse accepted %q", input)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/projects

[editor]
polygon_close_px = 16
handle_px = 10
history_depth = 30
zoom_min = 0.5
zoom_max = 6
task = segmentation

[notify]
save = true
export = true
copy = false

[theme.custom]
Name = custom
Background = #000000
Foreground = #FFFFFF
SelectionOutline = #FFFF00
`
	// 1. Parse initial input
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	// 2. Generate string representation
	generated := cfg.String()

	// 3. Parse generated string
	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	// 4. Compare relevant fields
	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("SaveDir mismatch: %q vs %q", cfg.SaveDir, cfg2.SaveDir)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	if cfg.Editor != cfg2.Editor {
		t.Errorf("Editor mismatch: %+v vs %+v", cfg.Editor, cfg2.Editor)
	}

	// Check theme persistence
	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if t1.Background != t2.Background {
		t.Errorf("Theme background mismatch: %v vs %v", t1.Background, t2.Background)
	}
	if t1.SelectionOutline != t2.SelectionOutline {
		t.Errorf("Theme selection outline mismatch: %v vs %v", t1.SelectionOutline, t2.SelectionOutline)
	}
}
