// Command pdf2img converts each page of a PDF document into an image file.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/pflag"

	"github.com/efkopru/pdf-to-image/converter"
)

func main() {
	os.Exit(run())
}

func run() int {
	outDir := pflag.StringP("out-dir", "o", "", "Output directory. Defaults to <PDF name> folder.")
	dpi := pflag.Int("dpi", converter.DefaultDPI, "Render DPI.")
	quality := pflag.Int("quality", converter.DefaultQuality, "Quality for JPG/WEBP [1-100]. PNG ignores this.")
	start := pflag.Int("start", 0, "Start page (1-based, inclusive).")
	end := pflag.Int("end", 0, "End page (1-based, inclusive).")
	format := pflag.String("format", "jpg", "Output image format: jpg, jpeg, png or webp.")
	noOverwrite := pflag.Bool("no-overwrite", false, "Skip existing files instead of overwriting.")
	template := pflag.String("template", converter.DefaultTemplate, "Filename template with {stem} and {page} placeholders.")
	password := pflag.String("password", "", "Password for encrypted PDFs.")
	grayscale := pflag.Bool("grayscale", false, "Convert outputs to grayscale.")
	maxDim := pflag.Int("max-dim", 0, "Downscale so max dimension equals this value (px).")
	engine := pflag.String("engine", converter.EnginePDFium, "Rendering engine: pdfium or mupdf.")
	verbose := pflag.BoolP("verbose", "v", false, "Enable debug logging.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pdf2img <input.pdf> [options]\n\n")
		fmt.Fprintf(os.Stderr, "Converts each page of a PDF to an image file.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	setupLogging(*verbose)

	args := pflag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one input PDF is required")
		pflag.Usage()
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var bar *progressbar.ProgressBar
	opts := converter.Options{
		PDFPath:      args[0],
		OutDir:       *outDir,
		DPI:          *dpi,
		Quality:      *quality,
		Start:        *start,
		End:          *end,
		Format:       converter.Format(*format),
		SkipExisting: *noOverwrite,
		Template:     *template,
		Password:     *password,
		Grayscale:    *grayscale,
		MaxDim:       *maxDim,
		Engine:       *engine,
		Progress: func(done, total int) {
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetDescription("Rendering pages"),
					progressbar.OptionSetItsString("page"),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionShowCount(),
				)
			}
			_ = bar.Set(done)
		},
	}

	out, err := converter.Convert(ctx, opts)
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}
	switch {
	case err == nil:
		fmt.Printf("Saved images to: %s\n", out)
		return 0
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(os.Stderr, "Interrupted.")
		return 130
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
