package theme

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"reflect"
	"strconv"
	"strings"
)

// Parse reads a theme definition: one "Key: #rrggbb" pair per line. Keys
// match the Theme field names; unknown keys are ignored so newer theme files
// keep loading on older builds. Missing keys keep their Default() value.
func Parse(r io.Reader) (*Theme, error) {
	t := Default()
	val := reflect.ValueOf(t).Elem()
	colorType := reflect.TypeOf(color.RGBA{})

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if key == "Name" {
			t.Name = value
			continue
		}
		field := val.FieldByName(key)
		if !field.IsValid() || field.Type() != colorType {
			continue
		}
		col, err := parseColor(value)
		if err != nil {
			return nil, fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		field.Set(reflect.ValueOf(col))
	}
	return t, scanner.Err()
}

// parseColor accepts #rgb, #rrggbb and #rrggbbaa.
func parseColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.RGBA{}, fmt.Errorf("color must start with #")
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, err
	}
	switch len(hex) {
	case 6:
		return color.RGBA{
			R: uint8(val >> 16),
			G: uint8(val >> 8),
			B: uint8(val),
			A: 255,
		}, nil
	case 8:
		return color.RGBA{
			R: uint8(val >> 24),
			G: uint8(val >> 16),
			B: uint8(val >> 8),
			A: uint8(val),
		}, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid hex length %d", len(hex))
}
