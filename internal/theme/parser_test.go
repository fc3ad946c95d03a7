package theme

import (
	"image/color"
	"strings"
	"testing"
)

func TestParseOverridesDefaults(t *testing.T) {
	in := strings.NewReader(`Name: Test
# comment
SelectionOutline: #ff0000
HandleFill: #0f0
NoSuchKey: #112233
StatusText: #11223344
`)
	th, err := Parse(in)
	if err != nil {
		t.Fatalf("parsing theme: %v", err)
	}
	if th.Name != "Test" {
		t.Errorf("Name = %q", th.Name)
	}
	if th.SelectionOutline != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("SelectionOutline = %v", th.SelectionOutline)
	}
	if th.HandleFill != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("HandleFill = %v", th.HandleFill)
	}
	if th.StatusText != (color.RGBA{0x11, 0x22, 0x33, 0x44}) {
		t.Errorf("StatusText = %v", th.StatusText)
	}
	if th.Background != Default().Background {
		t.Errorf("unset key should keep default, got %v", th.Background)
	}
}

func TestParseRejectsBadColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("HandleFill: red\n")); err == nil {
		t.Fatal("expected error for non-hex color")
	}
	if _, err := Parse(strings.NewReader("HandleFill: #12\n")); err == nil {
		t.Fatal("expected error for short hex")
	}
}

func TestLoadEmbeddedTheme(t *testing.T) {
	l := NewLoader()
	th, err := l.Load("dark")
	if err != nil {
		t.Fatalf("loading embedded theme: %v", err)
	}
	if th.Name != "dark" {
		t.Fatalf("Name = %q, want dark", th.Name)
	}
}
