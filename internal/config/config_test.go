package config

import (
	"image/color"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/screens

[editor]
tool = rectangle
color = #00FF00
line_width = 6
font_size = 24
filled = true
autosave = 5

[notify]
capture = true
save = false
copy = true

[theme.my_custom_theme]
Background = #111111
Foreground = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/screens" {
		t.Errorf("Expected save_dir '/tmp/screens', got '%s'", cfg.SaveDir)
	}

	if cfg.Editor.Tool != "rectangle" {
		t.Errorf("Expected tool 'rectangle', got '%s'", cfg.Editor.Tool)
	}
	if cfg.Editor.Color != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("Unexpected editor color: %+v", cfg.Editor.Color)
	}
	if cfg.Editor.LineWidth != 6 || cfg.Editor.FontSize != 24 {
		t.Errorf("Unexpected stroke settings: %+v", cfg.Editor)
	}
	if !cfg.Editor.Filled {
		t.Error("Expected filled = true")
	}
	if cfg.Editor.Autosave != 5 {
		t.Errorf("Expected autosave 5, got %d", cfg.Editor.Autosave)
	}

	if !cfg.Notify.Capture || cfg.Notify.Save || !cfg.Notify.Copy {
		t.Errorf("Unexpected notify settings: %+v", cfg.Notify)
	}

	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if th.Background.R != 0x11 || th.Background.G != 0x11 || th.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", th.Background)
	}
}

func TestParseRejectsBadEditorValues(t *testing.T) {
	for _, in := range []string{
		"[editor]\ntool = lasso\n",
		"[editor]\ncolor = green\n",
		"[editor]\nline_width = -2\n",
		"[editor]\nautosave = never\n",
	} {
		if _, err := Parse(strings.NewReader(in)); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/shots

[editor]
tool = arrow
color = #0000FF80
line_width = 2.5
font_size = 18
filled = false
autosave = 0

[notify]
capture = true
save = true
copy = false

[theme.custom]
Name = custom
Background = #000000
Foreground = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("SaveDir mismatch: %q vs %q", cfg.SaveDir, cfg2.SaveDir)
	}
	if cfg.Editor != cfg2.Editor {
		t.Errorf("Editor mismatch: %+v vs %+v", cfg.Editor, cfg2.Editor)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}

	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if t1.Background != t2.Background {
		t.Errorf("Theme background mismatch: %v vs %v", t1.Background, t2.Background)
	}
}

func TestDefaultsWhenSectionsMissing(t *testing.T) {
	cfg, err := Parse(strings.NewReader("save_dir = /x\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	def := New()
	if cfg.Editor != def.Editor {
		t.Errorf("missing [editor] should keep defaults, got %+v", cfg.Editor)
	}
	if cfg.Tool() != def.Tool() {
		t.Errorf("tool fallback mismatch")
	}
}
