// Package config reads and writes the RC-format settings file: editor
// defaults, notification switches, the active theme, and inline theme
// definitions.
package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
	"time"

	"github.com/example/snapmark/internal/annotation"
	"github.com/example/snapmark/internal/scene"
	"github.com/example/snapmark/internal/theme"
)

// Editor holds the drawing defaults applied when a session starts.
type Editor struct {
	Tool      string
	Color     color.RGBA
	LineWidth float64
	FontSize  float64
	Filled    bool
	// Autosave is the draft debounce window in seconds; 0 disables drafts.
	Autosave int
}

// Notify selects which events raise a desktop notification.
type Notify struct {
	Capture bool
	Save    bool
	Copy    bool
}

// Config is the full settings file.
type Config struct {
	Theme   string
	SaveDir string
	Editor  Editor
	Notify  Notify
	Themes  map[string]*theme.Theme
}

// New returns the built-in defaults. Theme stays empty so the loader can
// fall back to the environment.
func New() *Config {
	st := scene.DefaultStyle()
	return &Config{
		Editor: Editor{
			Tool:      scene.ToolPen.String(),
			Color:     st.Color,
			LineWidth: st.LineWidth,
			FontSize:  st.FontSize,
			Filled:    st.Filled,
			Autosave:  2,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// Style converts the editor defaults into the style a scene starts with.
func (c *Config) Style() annotation.Style {
	return annotation.Style{
		Color:     c.Editor.Color,
		LineWidth: c.Editor.LineWidth,
		FontSize:  c.Editor.FontSize,
		Filled:    c.Editor.Filled,
	}
}

// Tool resolves the configured default tool, falling back to the pen for an
// unknown name.
func (c *Config) Tool() scene.Tool {
	if t, ok := scene.ParseTool(c.Editor.Tool); ok {
		return t
	}
	return scene.ToolPen
}

// AutosaveDelay converts the autosave setting to a duration; disabled
// reports zero.
func (c *Config) AutosaveDelay() time.Duration {
	if c.Editor.Autosave <= 0 {
		return 0
	}
	return time.Duration(c.Editor.Autosave) * time.Second
}

// String renders the configuration in the RC format Parse reads.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n[editor]\n")
	fmt.Fprintf(&sb, "tool = %s\n", c.Editor.Tool)
	fmt.Fprintf(&sb, "color = %s\n", theme.FormatColor(c.Editor.Color))
	fmt.Fprintf(&sb, "line_width = %g\n", c.Editor.LineWidth)
	fmt.Fprintf(&sb, "font_size = %g\n", c.Editor.FontSize)
	fmt.Fprintf(&sb, "filled = %v\n", c.Editor.Filled)
	fmt.Fprintf(&sb, "autosave = %d\n", c.Editor.Autosave)

	sb.WriteString("\n[notify]\n")
	fmt.Fprintf(&sb, "capture = %v\n", c.Notify.Capture)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		fmt.Fprintf(&sb, "Background: %s\n", theme.FormatColor(t.Background))
		fmt.Fprintf(&sb, "Foreground: %s\n", theme.FormatColor(t.Foreground))
		fmt.Fprintf(&sb, "ToolbarBackground: %s\n", theme.FormatColor(t.ToolbarBackground))
		fmt.Fprintf(&sb, "ButtonBackground: %s\n", theme.FormatColor(t.ButtonBackground))
		fmt.Fprintf(&sb, "ButtonBackgroundHover: %s\n", theme.FormatColor(t.ButtonBackgroundHover))
		fmt.Fprintf(&sb, "ButtonBackgroundPress: %s\n", theme.FormatColor(t.ButtonBackgroundPress))
		fmt.Fprintf(&sb, "ButtonText: %s\n", theme.FormatColor(t.ButtonText))
		fmt.Fprintf(&sb, "ButtonBorder: %s\n", theme.FormatColor(t.ButtonBorder))
		fmt.Fprintf(&sb, "CheckerLight: %s\n", theme.FormatColor(t.CheckerLight))
		fmt.Fprintf(&sb, "CheckerDark: %s\n", theme.FormatColor(t.CheckerDark))
		fmt.Fprintf(&sb, "SelectionDashA: %s\n", theme.FormatColor(t.SelectionDashA))
		fmt.Fprintf(&sb, "SelectionDashB: %s\n", theme.FormatColor(t.SelectionDashB))
		fmt.Fprintf(&sb, "HandleFill: %s\n", theme.FormatColor(t.HandleFill))
		sb.WriteString("\n")
	}

	return sb.String()
}
