package render

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/browser"
	"golang.org/x/term"

	"github.com/huangsam/pubviz/internal/contract"
	"github.com/huangsam/pubviz/internal/logger"
	"github.com/huangsam/pubviz/schema"
)

// Displayer shows an encoded chart image.
type Displayer interface {
	Show(ctx context.Context, image []byte, format schema.ImageFormat) error
}

// ViewerDisplay opens the image in the system viewer and blocks until the user presses Enter.
type ViewerDisplay struct {
	Open   func(path string) error // defaults to browser.OpenFile
	In     io.Reader               // defaults to os.Stdin
	Out    io.Writer               // defaults to os.Stderr
	Logger *logger.Logger
}

// Show implements Displayer.
func (v *ViewerDisplay) Show(ctx context.Context, image []byte, format schema.ImageFormat) error {
	open, in, out := v.Open, v.In, v.Out
	if open == nil {
		browser.Stdout, browser.Stderr = os.Stderr, os.Stderr
		open = browser.OpenFile
	}
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stderr
	}

	f, err := os.CreateTemp("", "pubviz-*."+string(format))
	if err != nil {
		return fmt.Errorf("create viewer file: %w", err)
	}
	path := f.Name()
	defer func() { _ = os.Remove(path) }()

	if _, err := f.Write(image); err != nil {
		_ = f.Close()
		return fmt.Errorf("write viewer file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write viewer file: %w", err)
	}

	if v.Logger != nil {
		v.Logger.Debugf("opening %s in the system viewer", path)
	}
	if err := open(path); err != nil {
		return fmt.Errorf("open viewer: %w", err)
	}

	_, _ = fmt.Fprintln(out, "Press Enter to close the chart.")
	done := make(chan struct{})
	go func() {
		_, _ = bufio.NewReader(in).ReadString('\n')
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// FileDisplay writes the image to Path.
type FileDisplay struct {
	Path   string
	Logger *logger.Logger
}

// Show implements Displayer.
func (d *FileDisplay) Show(_ context.Context, image []byte, _ schema.ImageFormat) error {
	if dir := filepath.Dir(d.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(d.Path, image, 0o644); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	if d.Logger != nil {
		d.Logger.Infof("chart written to %s", d.Path)
	}
	return nil
}

// NoneDisplay discards the image.
type NoneDisplay struct{}

// Show implements Displayer.
func (NoneDisplay) Show(context.Context, []byte, schema.ImageFormat) error {
	return nil
}

// NewDisplayer picks the display for cfg. Auto uses the viewer when stdout is a terminal.
func NewDisplayer(cfg *contract.Config, log *logger.Logger) Displayer {
	mode := cfg.Display
	if mode == schema.AutoDisplay {
		mode = schema.FileDisplay
		if term.IsTerminal(int(os.Stdout.Fd())) {
			mode = schema.ViewerDisplay
		}
	}
	switch mode {
	case schema.ViewerDisplay:
		return &ViewerDisplay{Logger: log}
	case schema.NoneDisplay:
		return NoneDisplay{}
	default:
		return &FileDisplay{Path: cfg.ImagePath(), Logger: log}
	}
}
