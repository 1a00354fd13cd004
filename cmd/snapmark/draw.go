package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/example/snapmark/internal/annotation"
	"github.com/example/snapmark/internal/clipboard"
	"github.com/example/snapmark/internal/export"
	"github.com/example/snapmark/internal/scene"
	"github.com/example/snapmark/internal/theme"
)

// drawCmd adds one annotation to an image from the command line. The shape
// goes through the same model and renderer as the interactive editor, so the
// output pixels match what the editor would save.
type drawCmd struct {
	file          string
	output        string
	fromClipboard bool
	toClipboard   bool
	colorSpec     string
	style         annotation.Style
	shadow        bool
	shape         string
	coords        []float64
	text          string
	*root
	fs *flag.FlagSet
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func parseColor(s string) (color.RGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	if c, ok := colornames.Map[spec]; ok {
		return c, nil
	}
	if strings.HasPrefix(spec, "#") {
		return theme.ParseColor(spec)
	}
	return color.RGBA{}, fmt.Errorf("invalid color %q", s)
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	defaults := scene.DefaultStyle()
	if r != nil && r.config != nil {
		defaults = r.config.Style()
	}
	var width, textSize float64
	var filled bool
	fs.StringVar(&d.file, "file", "", "input image file")
	fs.StringVar(&d.output, "output", "", "output file path, .png or .pdf (defaults to the input file)")
	fs.BoolVar(&d.fromClipboard, "from-clipboard", false, "read the input image from the clipboard")
	fs.BoolVar(&d.fromClipboard, "from-clip", false, "read the input image from the clipboard (alias)")
	fs.BoolVar(&d.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.BoolVar(&d.toClipboard, "to-clip", false, "copy the result to the clipboard (alias)")
	fs.StringVar(&d.colorSpec, "color", "", "stroke or fill color name or hex value")
	fs.Float64Var(&width, "width", defaults.LineWidth, "stroke width in pixels")
	fs.Float64Var(&textSize, "text-size", defaults.FontSize, "text size in points")
	fs.BoolVar(&filled, "filled", defaults.Filled, "fill rectangles and ellipses instead of outlining them")
	fs.BoolVar(&d.shadow, "shadow", false, "add a drop shadow to the result")

	flagArgs, positionals, err := splitDrawArgs(args)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	if len(positionals) < 1 {
		return nil, &UsageError{of: d}
	}
	d.shape = strings.ToLower(positionals[0])
	remaining := positionals[1:]
	switch d.shape {
	case "line", "arrow", "rect", "ellipse", "blur":
		d.coords, err = expectFloats(remaining, 4, d.shape)
	case "circle":
		d.coords, err = expectFloats(remaining, 3, d.shape)
		if err == nil && d.coords[2] <= 0 {
			return nil, fmt.Errorf("radius must be positive")
		}
	case "pen":
		if len(remaining) < 4 || len(remaining)%2 != 0 {
			return nil, fmt.Errorf("pen requires an even number of coordinates, at least two points")
		}
		d.coords, err = expectFloats(remaining, len(remaining), d.shape)
	case "text":
		if len(remaining) < 3 {
			return nil, fmt.Errorf("text requires x y and content")
		}
		d.coords, err = expectFloats(remaining[:2], 2, d.shape)
		if err != nil {
			return nil, err
		}
		d.text = strings.Join(remaining[2:], " ")
		if strings.TrimSpace(d.text) == "" {
			return nil, fmt.Errorf("text content cannot be empty")
		}
	default:
		return nil, fmt.Errorf("unsupported shape %q", d.shape)
	}
	if err != nil {
		return nil, err
	}

	d.style = defaults
	if d.colorSpec != "" {
		c, err := parseColor(d.colorSpec)
		if err != nil {
			return nil, err
		}
		d.style.Color = c
	}
	if width >= 1 {
		d.style.LineWidth = width
	} else {
		d.style.LineWidth = 1
	}
	if textSize > 0 {
		d.style.FontSize = textSize
	}
	d.style.Filled = filled

	if d.fromClipboard {
		if d.output == "" {
			if d.file != "" {
				d.output = d.file
			} else {
				return nil, fmt.Errorf("output file is required when reading from the clipboard")
			}
		}
	} else {
		if d.file == "" {
			return nil, fmt.Errorf("input file is required")
		}
		if d.output == "" {
			d.output = d.file
		}
	}
	return d, nil
}

func (d *drawCmd) Run() error {
	src, err := d.loadSource()
	if err != nil {
		return err
	}
	sc := scene.New()
	sc.Style = d.style
	sc.Append(d.buildAnnotation())

	img := export.Image(src, sc, export.Options{Shadow: d.shadow})
	if err := export.Save(d.output, img); err != nil {
		return err
	}
	saved := d.output
	if abs, err := filepath.Abs(d.output); err == nil {
		saved = abs
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", saved)
	if d.root != nil {
		d.root.notifySave(saved)
	}
	if d.toClipboard {
		if err := export.ToClipboard(img); err != nil {
			return err
		}
		detail := filepath.Base(d.output)
		fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", detail)
		if d.root != nil {
			d.root.notifyCopy(detail)
		}
	}
	return nil
}

// buildAnnotation converts the parsed shape into the model value the
// renderer draws. Parsing already validated the coordinate counts.
func (d *drawCmd) buildAnnotation() annotation.Annotation {
	origin := annotation.Point{X: d.coords[0], Y: d.coords[1]}
	switch d.shape {
	case "pen":
		s := annotation.NewStroke(origin, d.style)
		for i := 2; i < len(d.coords); i += 2 {
			s.Points = append(s.Points, annotation.Point{X: d.coords[i], Y: d.coords[i+1]})
		}
		return s
	case "line":
		s := annotation.NewStroke(origin, d.style)
		s.Points = append(s.Points, annotation.Point{X: d.coords[2], Y: d.coords[3]})
		return s
	case "arrow":
		a := annotation.NewArrow(origin, d.style)
		annotation.SetEnd(a, d.coords[2], d.coords[3])
		return a
	case "rect":
		a := annotation.NewRectangle(origin, d.style)
		annotation.SetEnd(a, d.coords[2], d.coords[3])
		return a
	case "ellipse":
		a := annotation.NewEllipse(origin, d.style)
		annotation.SetEnd(a, d.coords[2], d.coords[3])
		return a
	case "circle":
		cx, cy, r := d.coords[0], d.coords[1], d.coords[2]
		a := annotation.NewEllipse(annotation.Point{X: cx - r, Y: cy - r}, d.style)
		annotation.SetEnd(a, cx+r, cy+r)
		return a
	case "text":
		return annotation.NewText(origin.X, origin.Y, d.text, d.style)
	case "blur":
		a := annotation.NewPixelate(origin)
		annotation.SetEnd(a, d.coords[2], d.coords[3])
		return a
	}
	return nil
}

func (d *drawCmd) loadSource() (image.Image, error) {
	if d.fromClipboard {
		img, err := clipboard.ReadImage()
		if err != nil {
			return nil, fmt.Errorf("read clipboard image: %w", err)
		}
		return img, nil
	}
	return loadImageFile(d.file)
}

func expectFloats(args []string, n int, shape string) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s requires %d numeric arguments", shape, n)
	}
	vals := make([]float64, n)
	for i, raw := range args {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", raw)
		}
		vals[i] = v
	}
	return vals, nil
}

var drawFlagNames = map[string]struct{}{
	"file":           {},
	"output":         {},
	"from-clipboard": {},
	"from-clip":      {},
	"to-clipboard":   {},
	"to-clip":        {},
	"color":          {},
	"width":          {},
	"text-size":      {},
	"filled":         {},
	"shadow":         {},
}

var drawBoolFlags = map[string]struct{}{
	"from-clipboard": {},
	"from-clip":      {},
	"to-clipboard":   {},
	"to-clip":        {},
	"filled":         {},
	"shadow":         {},
}

// splitDrawArgs separates recognised flags from shape operands so negative
// coordinates are not mistaken for flags.
func splitDrawArgs(args []string) ([]string, []string, error) {
	var flags []string
	var positionals []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			positionals = append(positionals, arg)
			continue
		}
		name := strings.TrimLeft(arg, "-")
		if name == "" {
			positionals = append(positionals, arg)
			continue
		}
		parts := strings.SplitN(name, "=", 2)
		base := strings.ToLower(parts[0])
		if _, ok := drawFlagNames[base]; !ok {
			positionals = append(positionals, arg)
			continue
		}
		// Normalise to single dash form for the flag parser.
		norm := "-" + base
		if len(parts) == 2 {
			flags = append(flags, norm+"="+parts[1])
			continue
		}
		if _, ok := drawBoolFlags[base]; ok {
			flags = append(flags, norm)
			continue
		}
		if i+1 >= len(args) {
			return nil, nil, fmt.Errorf("flag %s requires a value", arg)
		}
		flags = append(flags, norm, args[i+1])
		i++
	}
	return flags, positionals, nil
}
