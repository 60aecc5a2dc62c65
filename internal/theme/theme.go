// Package theme loads the external theme collaborator named in spec §6: a
// table of named colors plus syntax slots, stored as TOML and decoded with
// github.com/pelletier/go-toml/v2. Colors accept either an X11-like name
// (resolved against a small built-in table) or an explicit { rgb = [r,g,b]
// } literal. The decoded Theme converts to pkg/goturbotui.Style values for
// the rendering pipeline.
package theme

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/termide/termide/internal/highlight"
	"github.com/termide/termide/pkg/goturbotui"
)

// Color is a theme color literal: either a named color or explicit RGB.
type Color struct {
	Name string  `toml:"name,omitempty"`
	RGB  [3]uint8 `toml:"rgb,omitempty"`
	named bool
}

// UnmarshalTOML supports both `key = "name"` and `key = { rgb = [r,g,b] }`
// forms by inspecting the decoded value's shape.
func (c *Color) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case string:
		c.Name = v
		c.named = true
		return nil
	case map[string]any:
		rgb, ok := v["rgb"]
		if !ok {
			return fmt.Errorf("color table missing rgb key")
		}
		arr, ok := rgb.([]any)
		if !ok || len(arr) != 3 {
			return fmt.Errorf("rgb must be a 3-element array")
		}
		for i, comp := range arr {
			n, ok := comp.(int64)
			if !ok {
				return fmt.Errorf("rgb component %d is not an integer", i)
			}
			c.RGB[i] = uint8(n)
		}
		return nil
	default:
		return fmt.Errorf("unsupported color literal %T", data)
	}
}

// Resolve converts the literal to a goturbotui.Color.
func (c Color) Resolve() goturbotui.Color {
	if c.named {
		if rgb, ok := namedColors[c.Name]; ok {
			return rgb
		}
		return goturbotui.ColorWhite
	}
	return goturbotui.RGB(c.RGB[0], c.RGB[1], c.RGB[2])
}

var namedColors = map[string]goturbotui.Color{
	"black":   goturbotui.ColorBlack,
	"red":     goturbotui.ColorRed,
	"green":   goturbotui.ColorGreen,
	"yellow":  goturbotui.ColorYellow,
	"blue":    goturbotui.ColorBlue,
	"magenta": goturbotui.ColorMagenta,
	"cyan":    goturbotui.ColorCyan,
	"white":   goturbotui.ColorWhite,
	"gray":    goturbotui.ColorGray,
	"grey":    goturbotui.ColorGray,
	"darkgray": goturbotui.ColorDarkGray,
}

// Theme is the decoded color table.
type Theme struct {
	Bg         Color `toml:"bg"`
	Fg         Color `toml:"fg"`
	AccentedBg Color `toml:"accented_bg"`
	AccentedFg Color `toml:"accented_fg"`
	SelectedBg Color `toml:"selected_bg"`
	SelectedFg Color `toml:"selected_fg"`
	Disabled   Color `toml:"disabled"`
	Success    Color `toml:"success"`
	Warning    Color `toml:"warning"`
	Error      Color `toml:"error"`

	Keyword  Color `toml:"keyword"`
	String   Color `toml:"string"`
	Comment  Color `toml:"comment"`
	Number   Color `toml:"number"`
	Operator Color `toml:"operator"`
	Function Color `toml:"function"`
	Type     Color `toml:"type"`
	Variable Color `toml:"variable"`
}

// Default returns a theme equivalent to the teacher's DefaultTurboTheme,
// generalized to the named-slot table TermIDE's spec defines.
func Default() Theme {
	named := func(n string) Color { return Color{Name: n, named: true} }
	return Theme{
		Bg:         named("blue"),
		Fg:         named("white"),
		AccentedBg: named("cyan"),
		AccentedFg: named("black"),
		SelectedBg: named("white"),
		SelectedFg: named("black"),
		Disabled:   named("darkgray"),
		Success:    named("green"),
		Warning:    named("yellow"),
		Error:      named("red"),
		Keyword:    named("magenta"),
		String:     named("green"),
		Comment:    named("darkgray"),
		Number:     named("cyan"),
		Operator:   named("white"),
		Function:   named("yellow"),
		Type:       named("cyan"),
		Variable:   named("white"),
	}
}

// Load reads and parses a theme TOML file, falling back to Default on any
// error; the error is also returned so the caller can log it as a warning.
func Load(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), err
	}
	t := Default()
	if err := toml.Unmarshal(data, &t); err != nil {
		return Default(), err
	}
	return t, nil
}

// Base returns the default text style (fg on bg).
func (t Theme) Base() goturbotui.Style {
	return goturbotui.NewStyle().WithForeground(t.Fg.Resolve()).WithBackground(t.Bg.Resolve())
}

// Accented returns the accented-border/focus style.
func (t Theme) Accented() goturbotui.Style {
	return goturbotui.NewStyle().WithForeground(t.AccentedFg.Resolve()).WithBackground(t.AccentedBg.Resolve())
}

// Selected returns the selection-highlight style.
func (t Theme) Selected() goturbotui.Style {
	return goturbotui.NewStyle().WithForeground(t.SelectedFg.Resolve()).WithBackground(t.SelectedBg.Resolve())
}

// SyntaxStyle maps a highlight.Style symbolic class to a concrete style.
func (t Theme) SyntaxStyle(s highlight.Style) goturbotui.Style {
	base := t.Base()
	switch s {
	case highlight.StyleKeyword:
		return base.WithForeground(t.Keyword.Resolve())
	case highlight.StyleString:
		return base.WithForeground(t.String.Resolve())
	case highlight.StyleComment:
		return base.WithForeground(t.Comment.Resolve())
	case highlight.StyleNumber:
		return base.WithForeground(t.Number.Resolve())
	case highlight.StyleOperator:
		return base.WithForeground(t.Operator.Resolve())
	case highlight.StyleFunction:
		return base.WithForeground(t.Function.Resolve())
	case highlight.StyleType:
		return base.WithForeground(t.Type.Resolve())
	case highlight.StyleVariable:
		return base.WithForeground(t.Variable.Resolve())
	default:
		return base
	}
}
