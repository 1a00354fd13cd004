package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/example/snapmark/internal/config"
	"github.com/example/snapmark/internal/draft"
	"github.com/example/snapmark/internal/scene"
	"github.com/example/snapmark/internal/ui"
)

// annotateCmd captures or opens an image and runs the interactive editor on
// it.
type annotateCmd struct {
	mode    string
	file    string
	output  string
	display string
	restore bool
	shadow  bool
	*root
	fs *flag.FlagSet
}

func (a *annotateCmd) FlagSet() *flag.FlagSet {
	return a.fs
}

func parseAnnotateCmd(args []string, r *root) (*annotateCmd, error) {
	fs := flag.NewFlagSet("annotate", flag.ExitOnError)
	a := &annotateCmd{root: r, fs: fs}
	fs.Usage = usageFunc(a)
	fs.StringVar(&a.file, "file", "", "image file to annotate in file mode")
	fs.StringVar(&a.output, "output", "", "save target, .png or .pdf (default annotated.png in the save dir)")
	fs.StringVar(&a.display, "display", "", "monitor selector for screen mode: index, name or primary")
	fs.BoolVar(&a.restore, "restore", false, "reload the annotations from the last session's draft")
	fs.BoolVar(&a.shadow, "shadow", false, "add a drop shadow when exporting")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 {
		return nil, &UsageError{of: a}
	}
	a.mode = fs.Arg(0)
	return a, nil
}

func (a *annotateCmd) Run() error {
	img, detail, err := a.source()
	if err != nil {
		return fmt.Errorf("failed to capture %s: %w", a.mode, err)
	}
	if a.root != nil {
		a.root.notifyCapture(detail, img)
	}

	sc := scene.New()
	cfg := a.rootConfig()
	sc.Tool = cfg.Tool()
	sc.Style = cfg.Style()

	store := a.draftStore(cfg.AutosaveDelay())
	if a.restore && store != nil {
		doc, ok, err := store.Load()
		if err != nil {
			return fmt.Errorf("restore draft: %w", err)
		}
		if !ok {
			fmt.Fprintln(os.Stderr, "no draft to restore")
		} else {
			sc.LoadDocument(doc)
		}
	}

	output := a.output
	if output == "" {
		output = filepath.Join(cfg.SaveDir, "annotated.png")
	}

	app := ui.New(
		ui.WithImage(img),
		ui.WithScene(sc),
		ui.WithOutput(output),
		ui.WithTheme(a.root.activeTheme),
		ui.WithShadow(a.shadow),
		ui.WithDraftStore(store),
		ui.WithNotifier(a.root.notifier),
	)
	app.Run()
	return nil
}

func (a *annotateCmd) source() (*image.RGBA, string, error) {
	switch a.mode {
	case "screen":
		img, err := captureScreenshotFn(a.display)
		if err != nil {
			return nil, "", err
		}
		detail := "screen"
		if a.display != "" {
			detail = fmt.Sprintf("screen %s", a.display)
		}
		return img, detail, nil
	case "region":
		img, err := captureRegionFn()
		if err != nil {
			return nil, "", err
		}
		return img, "region", nil
	case "file":
		if a.file == "" {
			return nil, "", &UsageError{of: a}
		}
		img, err := loadImageFile(a.file)
		if err != nil {
			return nil, "", err
		}
		return img, filepath.Base(a.file), nil
	default:
		return nil, "", &UsageError{of: a}
	}
}

func (a *annotateCmd) rootConfig() *config.Config {
	if a.root != nil && a.root.config != nil {
		return a.root.config
	}
	return config.New()
}

// draftStore returns nil when autosave is disabled; the UI treats a nil
// store as "no drafts".
func (a *annotateCmd) draftStore(delay time.Duration) *draft.Store {
	if delay <= 0 {
		return nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: drafts disabled: %v\n", err)
		return nil
	}
	dir = filepath.Join(dir, "snapmark")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "warning: drafts disabled: %v\n", err)
		return nil
	}
	return draft.NewStore(dir, delay)
}

func loadImageFile(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var dec image.Image
	if filepath.Ext(path) == ".png" {
		dec, err = png.Decode(f)
	} else {
		dec, _, err = image.Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	img := image.NewRGBA(image.Rect(0, 0, dec.Bounds().Dx(), dec.Bounds().Dy()))
	draw.Draw(img, img.Bounds(), dec, dec.Bounds().Min, draw.Src)
	return img, nil
}
