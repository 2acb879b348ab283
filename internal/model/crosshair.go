package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCrosshair is returned for a crosshair preset that does not exist.
var ErrUnknownCrosshair = errors.New("unknown crosshair preset")

// DefaultCrosshairColor is used when neither the preset nor the user picks a color.
const DefaultCrosshairColor = "#7CFC00"

// CrosshairPresets lists the built-in crosshair shapes by name.
var CrosshairPresets = map[string]Crosshair{
	"classic": {Preset: "classic", Size: 2, Gap: 1, Thickness: 1},
	"dot":     {Preset: "dot", Dot: true},
	"cross":   {Preset: "cross", Size: 3, Thickness: 1, Dot: true},
	"circle":  {Preset: "circle", Size: 1, Gap: 1, Thickness: 1, Dot: true},
}

// PresetNames returns the preset names in display order.
func PresetNames() []string {
	return []string{"classic", "dot", "cross", "circle"}
}

// ResolveCrosshair starts from the named preset (classic when empty) and keeps
// every explicitly set field of c. Negative sizes are clamped to zero.
func ResolveCrosshair(c Crosshair) (Crosshair, error) {
	name := strings.ToLower(strings.TrimSpace(c.Preset))
	if name == "" {
		name = "classic"
	}
	out, ok := CrosshairPresets[name]
	if !ok {
		return Crosshair{}, fmt.Errorf("%w %q", ErrUnknownCrosshair, c.Preset)
	}
	if c.Color != "" {
		out.Color = c.Color
	}
	if out.Color == "" {
		out.Color = DefaultCrosshairColor
	}
	if c.Size != 0 {
		out.Size = max(c.Size, 0)
	}
	if c.Gap != 0 {
		out.Gap = max(c.Gap, 0)
	}
	if c.Thickness != 0 {
		out.Thickness = max(c.Thickness, 0)
	}
	out.Dot = out.Dot || c.Dot
	return out, nil
}
