// Command focusframe computes the viewport for a frame file and optionally
// renders it to PNG.
//
//	focusframe [-debug] [-png out.png] [-size 512] frame.json
//	focusframe [-debug] [-png out.png] -sample
//
// A path of "-" reads the frame from stdin.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/inamate/focusframe/internal/focus"
	"github.com/inamate/focusframe/internal/preview"
	"github.com/inamate/focusframe/internal/scene"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		slog.Error("focusframe", "error", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("focusframe", flag.ContinueOnError)
	debug := fs.Bool("debug", false, "include the debug payload and overlay")
	pngPath := fs.String("png", "", "write a preview PNG to this path")
	size := fs.Int("size", 512, "preview edge length in pixels")
	sample := fs.Bool("sample", false, "frame the built-in sample scene instead of a file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var f *scene.Frame
	switch {
	case *sample:
		f = scene.NewSampleFrame()
	case fs.NArg() == 1:
		var err error
		if f, err = readFrame(fs.Arg(0), stdin); err != nil {
			return err
		}
	default:
		fs.Usage()
		return fmt.Errorf("expected one frame file, got %d arguments", fs.NArg())
	}
	if *debug {
		f.Debug = true
	}

	result := focus.Frame(f)

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	if *pngPath == "" {
		return nil
	}
	out, err := os.Create(*pngPath)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := preview.WritePNG(out, f, result.Viewport, result.Debug, *size); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close png: %w", err)
	}
	slog.Info("preview written", "path", *pngPath, "size", *size)
	return nil
}

func readFrame(path string, stdin io.Reader) (*scene.Frame, error) {
	r := stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open frame: %w", err)
		}
		defer file.Close()
		r = file
	}

	var f scene.Frame
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	return &f, nil
}
